package main

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcus/campaign-compliance/internal/types"
)

func writeBatchFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "batch.json")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	return path
}

func TestEvaluateBatchFile(t *testing.T) {
	path := writeBatchFile(t, `{
		"messages": [
			"Your order shipped. Reply STOP to opt out.",
			"Your order shipped."
		],
		"context": {
			"brand_name": "Acme",
			"privacy_url": "https://acme.example.com/privacy",
			"terms_url": "https://acme.example.com/terms"
		}
	}`)

	results, summary, err := evaluateBatchFile(path)

	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "message_1", results[0].SubmissionID)
	assert.Equal(t, types.StatusApprovable, results[0].Status)
	assert.Equal(t, types.StatusRejectionLikely, results[1].Status)
	assert.Equal(t, 2, summary.Total)
	assert.Equal(t, 1, summary.ApprovableCount)
	assert.InDelta(t, 50.0, summary.ApprovalRate, 0.001)
}

func TestEvaluateBatchFile_NoMessages(t *testing.T) {
	path := writeBatchFile(t, `{"messages": []}`)

	_, _, err := evaluateBatchFile(path)

	assert.ErrorContains(t, err, "no messages")
}

func TestEvaluateBatchFile_BadJSON(t *testing.T) {
	path := writeBatchFile(t, `{messages}`)

	_, _, err := evaluateBatchFile(path)

	assert.Error(t, err)
}

func TestBatchCommand_PrintsSummary(t *testing.T) {
	binaryPath := getBinaryPath(t)

	path := writeBatchFile(t, `{
		"messages": ["Reply STOP to opt out."],
		"context": {
			"privacy_url": "https://acme.example.com/privacy",
			"terms_url": "https://acme.example.com/terms"
		}
	}`)

	cmd := exec.Command(binaryPath, "batch", "--input", path)
	output, err := cmd.CombinedOutput()

	assert.NoError(t, err)
	assert.Contains(t, string(output), "BATCH SUMMARY")
	assert.Contains(t, string(output), "Approval rate:  100.00%")
}
