package ui

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/gubarz/snipmd/internal/document"
	"github.com/gubarz/snipmd/internal/snippet"
)

const (
	statusFound     = "found"
	statusMissing   = "missing"
	statusMalformed = "malformed"
)

type reportRow struct {
	line   int
	status string
	mode   string
	info   string
	target string
}

func reportRows(report *document.Report) []reportRow {
	rows := make([]reportRow, 0, len(report.Entries)+len(report.Faults))
	for _, e := range report.Entries {
		d := e.Directive
		status := statusFound
		if !d.FileExists {
			status = statusMissing
		}
		info := d.Path.Ext
		if lang := d.Options[snippet.OptLang]; lang != "" {
			info = lang
		}
		rows = append(rows, reportRow{
			line:   e.Line,
			status: status,
			mode:   string(d.Flags.Transclusion.Mode()),
			info:   info + d.Flags.Meta,
			target: d.TargetPath,
		})
	}

	for _, err := range report.Faults {
		row := reportRow{status: statusMalformed, target: err.Error()}
		var de *snippet.DirectiveError
		if errors.As(err, &de) {
			row.line = de.Line
			row.target = de.Err.Error()
		}
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].line < rows[j].line })
	return rows
}

func statusStyle(status string) lipgloss.Style {
	switch status {
	case statusMissing:
		return styles.Missing
	case statusMalformed:
		return styles.Error
	default:
		return styles.Found
	}
}

// RenderReport formats the directives of one document as a table followed
// by a summary line
func RenderReport(report *document.Report) string {
	rows := reportRows(report)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(styles.Border).
		Headers("LINE", "STATUS", "MODE", "INFO", "TARGET").
		StyleFunc(func(row, col int) lipgloss.Style {
			cell := lipgloss.NewStyle().Padding(0, 1)
			if row == table.HeaderRow {
				return styles.Header.Inherit(cell)
			}
			if col == 1 && row >= 0 && row < len(rows) {
				return statusStyle(rows[row].status).Inherit(cell)
			}
			if col == 2 {
				return styles.Mode.Inherit(cell)
			}
			return cell
		})

	for _, r := range rows {
		t.Row(strconv.Itoa(r.line), r.status, r.mode, r.info, r.target)
	}

	var b strings.Builder
	b.WriteString(styles.PreviewHeader.Render(report.Document.Path))
	b.WriteString("\n")
	if len(rows) > 0 {
		b.WriteString(t.String())
		b.WriteString("\n")
	}
	b.WriteString(styles.Dim.Render(fmt.Sprintf("%d directives, %d missing, %d malformed",
		len(report.Entries), report.Missing(), len(report.Faults))))
	b.WriteString("\n")
	return b.String()
}
