package report

import (
	"bufio"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/robinvdvleuten/payments/ledger"
)

// columnGap separates table columns.
const columnGap = "  "

// encodeTable writes snapshots as aligned columns. The client column is
// left-aligned, amounts are right-aligned.
func (e *Encoder) encodeTable(w io.Writer, snapshots []ledger.Snapshot) error {
	rows := make([][]string, 0, len(snapshots))
	for _, s := range snapshots {
		rows = append(rows, e.row(s))
	}

	widths := make([]int, len(Header))
	for i, name := range Header {
		widths[i] = runewidth.StringWidth(name)
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}

	bw := bufio.NewWriter(w)

	header := e.tableLine(Header, widths)
	if e.styles != nil {
		header = e.styles.Keyword(header)
	}
	bw.WriteString(header)
	bw.WriteByte('\n')

	for i, row := range rows {
		line := e.tableLine(row, widths)
		if e.styles != nil && snapshots[i].Locked {
			line = e.styles.Locked(line)
		}
		bw.WriteString(line)
		bw.WriteByte('\n')
	}

	return bw.Flush()
}

func (e *Encoder) tableLine(cells []string, widths []int) string {
	var sb strings.Builder
	for i, cell := range cells {
		if i > 0 {
			sb.WriteString(columnGap)
		}
		if i == 0 {
			sb.WriteString(runewidth.FillRight(cell, widths[i]))
		} else {
			sb.WriteString(runewidth.FillLeft(cell, widths[i]))
		}
	}
	return strings.TrimRight(sb.String(), " ")
}
