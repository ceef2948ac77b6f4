// Package output prints a one-shot thread listing for scripts and pipes.
package output

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/segmentio/cli"

	"github.com/nixlim/threadscope/internal/threads"
)

type Format string

const (
	Text Format = "text"
	JSON Format = "json"
	YAML Format = "yaml"
)

// ParseFormat accepts text, json or yaml in any case.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case Text, JSON, YAML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want text, json or yaml)", s)
	}
}

// threadItem is the structured form of one row.
type threadItem struct {
	PID     int64  `json:"pid"     yaml:"pid"`
	Status  string `json:"status"  yaml:"status"`
	Path    string `json:"path"    yaml:"path"`
	Current bool   `json:"current" yaml:"current"`
}

// Collect runs a single refresh against session and returns the rows that
// pass filter. With no session the result is empty.
func Collect(session threads.Session, filter string, observer threads.Observer) []threads.Row {
	opts := []threads.CoordinatorOption{threads.WithGate(threads.AlwaysRefresh)}
	if observer != nil {
		opts = append(opts, threads.WithObserver(observer))
	}
	c := threads.NewCoordinator(session, threads.NewTableModel(), opts...)
	c.OnRefreshTrigger()
	return threads.Visible(c.Model().Rows(), filter)
}

// Render writes rows to out in format.
func Render(out io.Writer, format Format, rows []threads.Row) error {
	if format == Text {
		return renderText(out, rows)
	}

	items := make([]threadItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, threadItem{
			PID:     r.PID,
			Status:  r.Status,
			Path:    r.Path,
			Current: r.Bold,
		})
	}

	printer, err := cli.Format(string(format), out)
	if err != nil {
		return err
	}
	defer printer.Flush()
	printer.Print(items)
	return nil
}

func renderText(out io.Writer, rows []threads.Row) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(out, "No threads")
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	header := strings.ToUpper(strings.Join(threads.ColumnTitles[:], "\t"))
	if _, err := fmt.Fprintln(tw, " \t"+header); err != nil {
		return err
	}
	for _, r := range rows {
		mark := " "
		if r.Bold {
			mark = "*"
		}
		if _, err := fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", mark, r.PID, r.Status, r.Path); err != nil {
			return err
		}
	}
	return tw.Flush()
}
