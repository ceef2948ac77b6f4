//go:build linux

package session

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/nixlim/threadscope/internal/threads"
)

const supported = true

// readThreads lists /proc/[pid]/task in ascending tid order. Threads that
// exit between the directory read and the stat read are skipped.
func readThreads(root string, pid int, current int64) ([]threads.Snapshot, error) {
	taskDir := filepath.Join(root, strconv.Itoa(pid), "task")
	entries, err := os.ReadDir(taskDir)
	if err != nil {
		return nil, fmt.Errorf("read task dir for pid %d: %w", pid, err)
	}

	tids := make([]int64, 0, len(entries))
	for _, entry := range entries {
		tid, err := strconv.ParseInt(entry.Name(), 10, 64)
		if err != nil || tid <= 0 {
			continue
		}
		tids = append(tids, tid)
	}
	slices.Sort(tids)

	exe, _ := os.Readlink(filepath.Join(root, strconv.Itoa(pid), "exe"))

	snaps := make([]threads.Snapshot, 0, len(tids))
	for _, tid := range tids {
		data, err := os.ReadFile(filepath.Join(taskDir, strconv.FormatInt(tid, 10), "stat"))
		if err != nil {
			continue
		}
		comm, state, err := parseStat(data)
		if err != nil {
			continue
		}

		path := exe
		if path == "" {
			path = "[" + comm + "]"
		}
		snaps = append(snaps, threads.Snapshot{
			PID:     tid,
			Status:  mapState(state),
			Path:    path,
			Current: tid == current,
		})
	}
	return snaps, nil
}

// parseStat extracts comm and the state character from a stat line of the
// form "tid (comm) S ...". comm may itself contain spaces and parentheses,
// so the last ')' ends it.
func parseStat(data []byte) (comm string, state byte, err error) {
	open := bytes.IndexByte(data, '(')
	end := bytes.LastIndexByte(data, ')')
	if open < 0 || end < open {
		return "", 0, fmt.Errorf("malformed stat: %q", truncate(data))
	}
	rest := bytes.TrimLeft(data[end+1:], " ")
	if len(rest) == 0 {
		return "", 0, fmt.Errorf("stat has no state field: %q", truncate(data))
	}
	return string(data[open+1 : end]), rest[0], nil
}

// mapState converts a procfs state character to a thread status code.
func mapState(c byte) threads.Status {
	switch c {
	case 'R':
		return threads.StatusRunning
	case 'S', 'D', 'I', 'W', 'P':
		return threads.StatusSleeping
	case 'T':
		return threads.StatusStopped
	case 't':
		return threads.StatusRaisedEvent
	case 'Z':
		return threads.StatusZombie
	case 'X', 'x':
		return threads.StatusDead
	default:
		return threads.StatusUnknown
	}
}

func truncate(data []byte) string {
	s := strings.TrimSpace(string(data))
	if len(s) > 64 {
		return s[:64] + "..."
	}
	return s
}
