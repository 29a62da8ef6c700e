package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SummaryLine is one question's outcome in the markdown summary.
type SummaryLine struct {
	QuestionID       int
	OpenStatus       string
	SubmissionStatus string
}

// WriteSummary renders the latest-run markdown report, replacing any previous
// one.
func WriteSummary(path string, lines []SummaryLine, submitted int, utcISO, usISO string) error {
	var b strings.Builder
	b.WriteString("# Metacbot Latest Summary\n\n")
	fmt.Fprintf(&b, "- Run UTC: %s\n", utcISO)
	fmt.Fprintf(&b, "- Run America/New_York: %s\n", usISO)
	fmt.Fprintf(&b, "- Questions processed: %d\n", len(lines))
	fmt.Fprintf(&b, "- Submissions made: %d\n", submitted)
	b.WriteString("\n## Questions\n")
	for _, line := range lines {
		fmt.Fprintf(&b, "- Q%d: %s | submission=%s\n", line.QuestionID, line.OpenStatus, line.SubmissionStatus)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating report directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("writing summary: %w", err)
	}
	return nil
}
