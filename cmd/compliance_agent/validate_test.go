package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSubmissionFile_BuiltinSchema(t *testing.T) {
	path := writeSubmissionFile(t, `{"brand_name": "Acme Dental"}`)

	assert.NoError(t, validateSubmissionFile(path, ""))
}

func TestValidateSubmissionFile_BuiltinSchemaRejectsUnknownField(t *testing.T) {
	path := writeSubmissionFile(t, `{"brand_nmae": "Acme"}`)

	assert.Error(t, validateSubmissionFile(path, ""))
}

func TestValidateSubmissionFile_CustomSchema(t *testing.T) {
	subPath := writeSubmissionFile(t, `{"brand_name": "Acme"}`)

	schemaPath := filepath.Join(t.TempDir(), "schema.json")
	schema := `{"type": "object", "required": ["brand_name", "use_case"]}`
	require.NoError(t, os.WriteFile(schemaPath, []byte(schema), 0644))

	err := validateSubmissionFile(subPath, schemaPath)

	assert.ErrorContains(t, err, "use_case")
}

func TestValidateSubmissionFile_MissingSchemaFile(t *testing.T) {
	subPath := writeSubmissionFile(t, `{}`)

	err := validateSubmissionFile(subPath, filepath.Join(t.TempDir(), "nope.json"))

	assert.ErrorContains(t, err, "failed to read schema file")
}
