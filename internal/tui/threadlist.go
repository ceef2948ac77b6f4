package tui

import (
	"fmt"
	"strings"

	"github.com/nixlim/threadscope/internal/threads"
)

const (
	pidColumnWidth    = 8
	statusColumnWidth = 14
	defaultWidth      = 80
	minPathWidth      = 10
)

// renderThreads renders the header, the thread grid and the footer.
func (m Model) renderThreads() string {
	st := m.surface.styles
	w := m.width
	if w <= 0 {
		w = defaultWidth
	}

	var lines []string
	lines = append(lines, m.renderHeader(w))

	if m.filter.Focused() {
		lines = append(lines, " "+m.filter.View())
	} else if v := m.filter.Value(); v != "" {
		lines = append(lines, st.dim.Render(" Filter: "+v+"  (esc to clear)"))
	}

	pathW := w - pidColumnWidth - statusColumnWidth - 3
	if pathW < minPathWidth {
		pathW = minPathWidth
	}

	titles := threads.ColumnTitles
	titles[m.order.column] = m.order.label()
	lines = append(lines, st.columnHeader.Render(formatCells(titles[threads.ColumnPID], titles[threads.ColumnStatus], titles[threads.ColumnPath], pathW)))

	rows := m.visibleRows()
	switch {
	case len(rows) == 0 && m.table.Len() > 0:
		lines = append(lines, st.dim.Render(" No threads match filter"))
	case len(rows) == 0:
		lines = append(lines, st.dim.Render(" No threads"))
	}

	for _, r := range m.viewport(rows) {
		lines = append(lines, m.renderRow(r.row, r.index == m.cursor, pathW))
	}

	lines = append(lines, "")
	if m.message != "" {
		if m.messageErr {
			lines = append(lines, st.errorText.Render(" "+m.message))
		} else {
			lines = append(lines, st.message.Render(" "+m.message))
		}
	}
	lines = append(lines, " "+m.help.ShortHelpView(m.keys.ShortHelp()))

	return strings.Join(lines, "\n")
}

func (m Model) renderHeader(w int) string {
	title := " threadscope"
	if m.title != "" {
		title += "  " + m.title
	}

	switch m.coord.State() {
	case threads.StateNoSession:
		title += "  [no session]"
	case threads.StateInFlight:
		title += "  [operation in progress]"
	case threads.StateInitial:
		title += "  [waiting]"
	}
	if m.gate.Pending() {
		title += "  [refresh pending]"
	}

	title += fmt.Sprintf("  %d threads", m.table.Len())
	if pad := w - len([]rune(title)); pad > 0 {
		title += strings.Repeat(" ", pad)
	}
	return m.surface.styles.header.Render(title)
}

func (m Model) renderRow(r threads.Row, selected bool, pathW int) string {
	st := m.surface.styles
	line := formatCells(r.Column(threads.ColumnPID), r.Status, r.Path, pathW)

	switch {
	case !m.surface.enabled:
		return st.dim.Render(line)
	case selected:
		return st.cursor.Bold(r.Bold).Render(line)
	case r.Bold:
		return st.current.Render(line)
	}

	if s, ok := st.status[r.Status]; ok {
		return st.row.Render(formatCell(r.Column(threads.ColumnPID), pidColumnWidth)) + " " +
			s.Render(formatCell(r.Status, statusColumnWidth)) + " " +
			st.row.Render(truncate(r.Path, pathW))
	}
	return st.row.Render(line)
}

type indexedRow struct {
	index int
	row   threads.Row
}

// viewport returns the rows that fit on screen, scrolled so the cursor stays
// visible.
func (m Model) viewport(rows []threads.Row) []indexedRow {
	// header, filter, column header, blank, message, help
	avail := len(rows)
	if m.height > 0 {
		avail = m.height - 6
		if avail < 1 {
			avail = 1
		}
	}

	start := 0
	if m.cursor >= avail {
		start = m.cursor - avail + 1
	}
	end := start + avail
	if end > len(rows) {
		end = len(rows)
	}

	out := make([]indexedRow, 0, end-start)
	for i := start; i < end; i++ {
		out = append(out, indexedRow{index: i, row: rows[i]})
	}
	return out
}

func (m Model) renderHelp() string {
	st := m.surface.styles
	w := m.width
	if w <= 0 {
		w = defaultWidth
	}

	h := m.help
	h.ShowAll = true

	lines := []string{
		m.renderHeader(w),
		"",
		st.columnHeader.Render(" Keys"),
		"",
		h.View(m.keys),
		"",
		st.dim.Render(" Thread list updates are paused while this screen is open."),
		st.dim.Render(" Press ? or esc to return."),
	}
	return strings.Join(lines, "\n")
}

func formatCells(pid, status, path string, pathW int) string {
	return formatCell(pid, pidColumnWidth) + " " + formatCell(status, statusColumnWidth) + " " + truncate(path, pathW)
}

func formatCell(s string, w int) string {
	s = truncate(s, w)
	if n := len([]rune(s)); n < w {
		s += strings.Repeat(" ", w-n)
	}
	return " " + s
}

func truncate(s string, w int) string {
	r := []rune(s)
	if len(r) <= w {
		return s
	}
	if w <= 1 {
		return string(r[:w])
	}
	return string(r[:w-1]) + "…"
}
