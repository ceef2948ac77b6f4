package tui

import (
	"cmp"
	"slices"

	"golang.org/x/text/cases"

	"github.com/nixlim/threadscope/internal/threads"
)

// sortState orders the visible rows. It only affects presentation; the
// table model keeps the session's order.
type sortState struct {
	column int
	desc   bool
}

func sortColumnIndex(name string) int {
	switch name {
	case "status":
		return threads.ColumnStatus
	case "path":
		return threads.ColumnPath
	default:
		return threads.ColumnPID
	}
}

func (s sortState) next() sortState {
	s.column = (s.column + 1) % len(threads.ColumnTitles)
	return s
}

func (s sortState) label() string {
	arrow := "↑"
	if s.desc {
		arrow = "↓"
	}
	return threads.ColumnTitles[s.column] + " " + arrow
}

// apply returns a sorted copy of rows. Equal keys keep their relative order.
func (s sortState) apply(rows []threads.Row) []threads.Row {
	out := slices.Clone(rows)
	fold := cases.Fold()

	slices.SortStableFunc(out, func(a, b threads.Row) int {
		var c int
		if s.column == threads.ColumnPID {
			c = cmp.Compare(a.PID, b.PID)
		} else {
			c = cmp.Compare(fold.String(a.Column(s.column)), fold.String(b.Column(s.column)))
		}
		if s.desc {
			c = -c
		}
		return c
	})
	return out
}
