package ui

import (
	"fmt"
	"strings"

	"fleetgrid/internal/telemetry"
)

// renderTable materializes only the windowed rows into viewport lines. Rows
// are laid out at their window offsets inside a virtual canvas; the visible
// slice [scrollOffset, scrollOffset+viewportLines) is then cut out of it.
func (m *Model) renderTable() string {
	width := max(1, m.tableWidth)
	if m.win.Empty() {
		msg := "no rows yet"
		if m.filter.Query() != "" {
			msg = "no rows match \"" + m.filter.Query() + "\""
		}
		return padLines(nil, m.viewportLines, width, dimFg.Render("  "+msg))
	}

	ih := m.cfg.ItemHeight
	lines := make([]string, 0, len(m.win.Rows)*ih)
	for _, row := range m.win.Rows {
		rec, ok := m.filter.Record(row.Index)
		if !ok {
			continue
		}
		lines = append(lines, m.rowLines(rec, row.Index == m.cursor, width)...)
	}

	// The first window row sits at Rows[0].Offset on the virtual canvas, so
	// the viewport starts this many lines into what was materialized.
	top := m.scrollOffset - m.win.Rows[0].Offset
	top = max(0, min(top, len(lines)))
	end := min(len(lines), top+m.viewportLines)
	visible := lines[top:end]
	return padLines(visible, m.viewportLines, width, "")
}

func (m *Model) rowLines(rec telemetry.Record, isCursor bool, width int) []string {
	ih := m.cfg.ItemHeight
	style := plainRowStyle
	if isCursor {
		style = cursorRowStyle
	}
	inner := max(1, width-2)

	out := make([]string, 0, ih)
	title := fmt.Sprintf("%-14s %s", rec.ID, rec.Identity)
	out = append(out, style.Render(fit(title, inner-12)+" "+statusBadge(rec.Status)))
	if ih >= 2 {
		desc := fmt.Sprintf("%4dms  load %3d%%  #%s", rec.Latency, rec.Load, rec.Hash)
		out = append(out, style.Render(dimFg.Render(fit(desc, inner))))
	}
	for len(out) < ih {
		out = append(out, style.Render(""))
	}
	return out[:ih]
}

// fit truncates or pads s to exactly w cells. Row content is ASCII, so byte
// length is fine here.
func fit(s string, w int) string {
	if w < 1 {
		return ""
	}
	if len(s) > w {
		if w <= 1 {
			return s[:w]
		}
		return s[:w-1] + "…"
	}
	return s + strings.Repeat(" ", w-len(s))
}

func padLines(lines []string, height, width int, first string) string {
	var b strings.Builder
	b.Grow((width + 1) * height)
	for i := 0; i < height; i++ {
		switch {
		case i < len(lines):
			b.WriteString(lines[i])
		case i == len(lines) && first != "":
			b.WriteString(first)
		}
		if i < height-1 {
			b.WriteRune('\n')
		}
	}
	return b.String()
}
