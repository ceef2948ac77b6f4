//go:build !linux

package session

import "github.com/nixlim/threadscope/internal/threads"

const supported = false

func readThreads(string, int, int64) ([]threads.Snapshot, error) {
	return nil, ErrUnsupported
}
