package telemetry

import (
	"fmt"
	"io"
	"time"

	"github.com/robinvdvleuten/payments/output"
)

// slowThreshold marks stages that are highlighted in styled reports.
const slowThreshold = 100 * time.Millisecond

// formatTimingTree outputs the timing tree in a hierarchical format.
// Example output:
//
//	process transactions.csv: 125ms
//	├─ loader.open transactions.csv: 1ms
//	├─ ledger.process: 118ms (1000000 records, 8.5M/s)
//	└─ report.csv: 6ms (1200 clients)
func formatTimingTree(w io.Writer, root *timerNode, styles *output.Styles) {
	line := fmt.Sprintf("%s: %s", root.name, formatDuration(root.duration()))
	if styles != nil {
		line = fmt.Sprintf("%s: %s", styles.Keyword(root.name), formatDuration(root.duration()))
	}
	_, _ = fmt.Fprintln(w, line+formatItems(root))

	for i, child := range root.children {
		formatNode(w, child, "", i == len(root.children)-1, styles)
	}
}

// formatNode recursively formats a node and its children.
func formatNode(w io.Writer, node *timerNode, prefix string, isLast bool, styles *output.Styles) {
	duration := node.duration()

	branch, extension := "├─ ", "│  "
	if isLast {
		branch, extension = "└─ ", "   "
	}

	timing := formatDuration(duration)
	treeChars := prefix + branch
	if styles != nil {
		treeChars = styles.Dim(treeChars)
		if duration >= slowThreshold {
			timing = styles.Warning(timing)
		} else {
			timing = styles.Dim(timing)
		}
	}
	_, _ = fmt.Fprintf(w, "%s%s: %s%s\n", treeChars, node.name, timing, formatItems(node))

	childPrefix := prefix + extension
	for i, child := range node.children {
		formatNode(w, child, childPrefix, i == len(node.children)-1, styles)
	}
}

// formatDuration formats a duration for display.
// Shows milliseconds for < 1s, seconds for >= 1s.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		ms := float64(d) / float64(time.Millisecond)
		return fmt.Sprintf("%.0fms", ms)
	}
	s := float64(d) / float64(time.Second)
	return fmt.Sprintf("%.2fs", s)
}

// formatItems renders the item count of a node and its throughput.
func formatItems(node *timerNode) string {
	if node.items == 0 {
		return ""
	}

	duration := node.duration()
	if duration <= 0 {
		return fmt.Sprintf(" (%d items)", node.items)
	}

	return fmt.Sprintf(" (%d items, %s/s)", node.items, formatRate(float64(node.items)/duration.Seconds()))
}

func formatRate(rate float64) string {
	switch {
	case rate >= 1e6:
		return fmt.Sprintf("%.1fM", rate/1e6)
	case rate >= 1e3:
		return fmt.Sprintf("%.1fk", rate/1e3)
	default:
		return fmt.Sprintf("%.0f", rate)
	}
}
