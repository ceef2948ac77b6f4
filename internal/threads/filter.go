package threads

import (
	"strings"

	"golang.org/x/text/cases"
)

// Accepts reports whether row should be shown for the filter token: an empty
// token matches everything, otherwise any column must contain the token,
// ignoring case.
func Accepts(row Row, token string) bool {
	if token == "" {
		return true
	}
	return acceptsFolded(row, fold(token))
}

// Visible returns the rows accepted by token, in model order.
func Visible(rows []Row, token string) []Row {
	if token == "" {
		return rows
	}
	folded := fold(token)
	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		if acceptsFolded(r, folded) {
			out = append(out, r)
		}
	}
	return out
}

func acceptsFolded(row Row, folded string) bool {
	for i := ColumnPID; i < columnCount; i++ {
		if strings.Contains(fold(row.Column(i)), folded) {
			return true
		}
	}
	return false
}

// fold applies Unicode case folding. A fresh Caser per call since Casers keep
// internal state.
func fold(s string) string {
	return cases.Fold().String(s)
}
