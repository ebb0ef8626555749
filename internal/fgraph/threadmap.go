package fgraph

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/polarvid/rt-thread/internal/xerrors"
)

// ThreadInfo is a thread's display name and the monotonically assigned
// display id the trace format expects (spec §4.6's "stack name parser").
type ThreadInfo struct {
	Name      string
	DisplayID int
}

// LoadThreadMap reads a whitespace-separated "<hex_addr> <name>" pair per
// line, assigning display ids starting at 10 in file order (spec §4.6).
// The returned map is keyed by tid, which on this platform is the same
// address space the name file uses as its key.
func LoadThreadMap(r io.Reader) (map[uint64]ThreadInfo, error) {
	out := make(map[uint64]ThreadInfo)
	scanner := bufio.NewScanner(r)
	nextID := 10
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, fmt.Errorf("%w: thread map line %d: want 2 fields, got %d", xerrors.ErrMalformedInput, lineNo, len(fields))
		}
		tid, err := strconv.ParseUint(fields[0], 16, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: thread map line %d: %v", xerrors.ErrMalformedInput, lineNo, err)
		}
		out[tid] = ThreadInfo{Name: fields[1], DisplayID: nextID}
		nextID++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read thread map: %w", err)
	}
	return out, nil
}

// Lookup resolves tid against the name map, returning UnknownTid when the
// reference behavior of requiring full coverage is violated (spec §4.7:
// "the reference behavior is to require the name map to cover every
// observed tid").
func Lookup(names map[uint64]ThreadInfo, tid uint64) (ThreadInfo, error) {
	info, ok := names[tid]
	if !ok {
		return ThreadInfo{}, fmt.Errorf("%w: tid %d", xerrors.ErrUnknownTid, tid)
	}
	return info, nil
}
