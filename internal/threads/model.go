package threads

import "strconv"

// Column indexes of a Row, in display order.
const (
	ColumnPID = iota
	ColumnStatus
	ColumnPath

	columnCount
)

// ColumnTitles are the fixed header labels.
var ColumnTitles = [columnCount]string{"PID", "Status", "Path"}

// Row is the display form of one Snapshot.
type Row struct {
	PID    int64
	Status string
	Path   string
	// Bold marks the current thread.
	Bold bool
}

// Columns returns the row's display strings in column order.
func (r Row) Columns() [columnCount]string {
	return [columnCount]string{strconv.FormatInt(r.PID, 10), r.Status, r.Path}
}

// Column returns one display string. Out of range indexes yield "".
func (r Row) Column(i int) string {
	switch i {
	case ColumnPID:
		return strconv.FormatInt(r.PID, 10)
	case ColumnStatus:
		return r.Status
	case ColumnPath:
		return r.Path
	default:
		return ""
	}
}

func rowFromSnapshot(s Snapshot) Row {
	return Row{
		PID:    s.PID,
		Status: Translate(s.Status),
		Path:   s.Path,
		Bold:   s.Current,
	}
}

// Delta counts what a reconciliation touched.
type Delta struct {
	Changed  int
	Appended int
	Removed  int
}

// Empty reports whether the reconciliation left the model untouched.
func (d Delta) Empty() bool {
	return d.Changed == 0 && d.Appended == 0 && d.Removed == 0
}

// TableModel is the ordered row collection behind the thread grid. Rows keep
// their position across reconciliations so the view's cursor stays on the same
// rank when the thread list is unchanged.
type TableModel struct {
	rows []Row
}

// NewTableModel returns an empty model.
func NewTableModel() *TableModel {
	return &TableModel{}
}

// Reconcile makes the model mirror snaps: row i is overwritten from snaps[i]
// and rows past len(snaps) are dropped. Order is kept as given.
func (m *TableModel) Reconcile(snaps []Snapshot) Delta {
	var d Delta
	for i, s := range snaps {
		row := rowFromSnapshot(s)
		if i < len(m.rows) {
			if m.rows[i] != row {
				m.rows[i] = row
				d.Changed++
			}
			continue
		}
		m.rows = append(m.rows, row)
		d.Appended++
	}

	if len(m.rows) > len(snaps) {
		d.Removed = len(m.rows) - len(snaps)
		clear(m.rows[len(snaps):])
		m.rows = m.rows[:len(snaps)]
	}
	return d
}

// Clear removes every row.
func (m *TableModel) Clear() Delta {
	d := Delta{Removed: len(m.rows)}
	m.rows = nil
	return d
}

// Len returns the number of rows.
func (m *TableModel) Len() int {
	return len(m.rows)
}

// Row returns row i and whether it exists.
func (m *TableModel) Row(i int) (Row, bool) {
	if i < 0 || i >= len(m.rows) {
		return Row{}, false
	}
	return m.rows[i], true
}

// Rows returns a copy of all rows in model order.
func (m *TableModel) Rows() []Row {
	if len(m.rows) == 0 {
		return nil
	}
	out := make([]Row, len(m.rows))
	copy(out, m.rows)
	return out
}
