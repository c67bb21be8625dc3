package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/marcus/campaign-compliance/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// clip truncates s to max runes, marking the cut with an ellipsis. Slicing by
// rune keeps multi-byte text valid after truncation.
func clip(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, clip(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintResult outputs a human-readable compliance report for one result.
func (p *Printer) PrintResult(result *types.ComplianceResult, final types.FinalRecommendation) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Status:     %s\n", result.Status))
	sb.WriteString(fmt.Sprintf("Score:      %d/100\n", result.Score))
	sb.WriteString(fmt.Sprintf("Confidence: %.2f\n", result.ConfidenceScore))
	sb.WriteString(fmt.Sprintf("Action:     %s (%s)\n", final.Action, final.Confidence))
	sb.WriteString("\n")
	sb.WriteString(final.Message)

	p.printBox("COMPLIANCE RESULT", sb.String())

	p.printViolations(result.Violations)
	p.printRecommendations(result.Recommendations)
}

func (p *Printer) printViolations(violations []types.Violation) {
	if len(violations) == 0 {
		p.printBox("VIOLATIONS", "No violations found")
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d violations:\n\n", len(violations)))

	count := min(len(violations), maxItemsToShow)
	for i := 0; i < count; i++ {
		v := violations[i]
		sb.WriteString(fmt.Sprintf("• %s\n", clip(v.Message, 45)))
		sb.WriteString(fmt.Sprintf("  Penalty: -%d", v.Penalty))
		if v.Section != "" {
			sb.WriteString(fmt.Sprintf("  Section: %s", v.Section))
		}
		sb.WriteString("\n")
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(violations) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more violations", len(violations)-maxItemsToShow))
	}

	p.printBox("VIOLATIONS", sb.String())
}

func (p *Printer) printRecommendations(recommendations []string) {
	if len(recommendations) == 0 {
		return
	}

	var sb strings.Builder
	count := min(len(recommendations), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("• %s\n", clip(recommendations[i], 50)))
	}
	if len(recommendations) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("... and %d more\n", len(recommendations)-maxItemsToShow))
	}

	p.printBox("RECOMMENDATIONS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSummary outputs the aggregate view of a batch evaluation.
func (p *Printer) PrintSummary(summary *types.Summary) {
	if summary == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Messages:       %d\n", summary.Total))
	sb.WriteString(fmt.Sprintf("Approvable:     %d\n", summary.ApprovableCount))
	sb.WriteString(fmt.Sprintf("Likely reject:  %d\n", summary.RejectionCount))
	sb.WriteString(fmt.Sprintf("Approval rate:  %.2f%%\n", summary.ApprovalRate))
	sb.WriteString(fmt.Sprintf("Average score:  %.1f\n", summary.AverageScore))

	if len(summary.CommonViolations) > 0 {
		sb.WriteString("\nCommon violations:\n")
		shown := 0
		for prefix, count := range summary.CommonViolations {
			sb.WriteString(fmt.Sprintf("  %s: %d\n", prefix, count))
			shown++
			if shown == maxItemsToShow {
				break
			}
		}
	}

	p.printBox("BATCH SUMMARY", strings.TrimSuffix(sb.String(), "\n"))
}
