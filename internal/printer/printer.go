package printer

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/brademus/ada-lab/internal/orchestrator"
)

func init() {
	// Force color output even when not connected to TTY
	// Users can disable with NO_COLOR environment variable
	if os.Getenv("NO_COLOR") == "" {
		color.NoColor = false
	}
}

var (
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed, color.Bold)
)

// Success prints a success message in green with a checkmark prefix
func Success(format string, a ...any) {
	green.Printf("✓ "+format, a...)
}

// Info prints an informational message in the default color
func Info(format string, a ...any) {
	fmt.Printf(format, a...)
}

// Warning prints a warning message in yellow
func Warning(format string, a ...any) {
	yellow.Printf("⚠ "+format, a...)
}

// Error prints an error message in red to stderr
func Error(format string, a ...any) {
	red.Fprintf(os.Stderr, format, a...)
}

// Summary prints the per-client batch results as a table.
func Summary(s orchestrator.BatchSummary) {
	fmt.Printf("%-20s %-8s %8s %8s %8s %8s %11s\n",
		"CLIENT", "STATUS", "DRAFTED", "SENT", "REPLIES", "MEETINGS", "REPLY RATE")
	for _, r := range s.Results {
		if r.Status == orchestrator.StatusFailed {
			fmt.Printf("%-20s ", r.Slug)
			red.Printf("%-8s", r.Status)
			fmt.Printf(" %s\n", r.Err)
			continue
		}
		fmt.Printf("%-20s ", r.Slug)
		green.Printf("%-8s", r.Status)
		fmt.Printf(" %8d %8d %8d %8d %10.2f%%\n",
			r.Metrics.Drafted, r.Metrics.Sent, r.Metrics.Replies, r.Metrics.Meetings,
			r.Metrics.ReplyRate*100)
	}
	if failed := s.Failed(); failed > 0 {
		Warning("%d of %d clients failed\n", failed, len(s.Results))
	}
}
