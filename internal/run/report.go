package run

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Report writes the human-readable final summary.
func (s *Summary) Report(w io.Writer) {
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)
	red := color.New(color.FgRed)

	green.Fprintf(w, "✅ Done! Deleted %d of %d tweets\n", s.Deleted, s.Eligible)

	if s.Skipped > 0 {
		yellow.Fprintf(w, "🥸 Skipped %d tweets (dry run)\n", s.Skipped)
	}

	if s.Failed > 0 {
		red.Fprintf(w, "🚨 %d tweets failed to delete:\n", s.Failed)
		for _, f := range s.Failures {
			fmt.Fprintf(w, "  %s: %s\n", f.PostID, f.Reason)
		}
	}
}
