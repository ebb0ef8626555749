package fgraph

import (
	"os"
	"sort"

	"github.com/fatih/color"
	"github.com/xyproto/env/v2"
)

// record is one emitted trace line, keyed by the timestamp it sorts on
// (spec §4.7 step 3: "re-sorts emitted records by their own timestamp").
type record struct {
	timestamp uint64
	line      string
}

// stackEntry is a pushed Event plus the cpu that observed it, so a drained
// exit can still report which CPU observed it even after the originating
// per-tid stack has been popped far past the triggering event.
type stackEntry struct {
	event Event
	cpu   int
}

// Merge sorts events by entry time, replays them against a per-tid
// call-depth stack, and returns the fully formatted, timestamp-sorted
// trace text (spec §4.7). names must cover every tid referenced by
// events or Merge returns UnknownTid.
func Merge(events []Event, names map[uint64]ThreadInfo) (string, error) {
	sorted := append([]Event(nil), events...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].EntryTime < sorted[j].EntryTime })

	stacks := make(map[uint64][]stackEntry)
	var tidOrder []uint64
	seenTid := make(map[uint64]bool)

	var records []record
	lastExitByTid := make(map[uint64]uint64)
	verbose := env.Bool("RTT_FGRAPH_VERBOSE")

	for _, e := range sorted {
		if !seenTid[e.Tid] {
			seenTid[e.Tid] = true
			tidOrder = append(tidOrder, e.Tid)
		}
		stack := stacks[e.Tid]

		for len(stack) > 0 && stack[len(stack)-1].event.ExitTime < e.EntryTime {
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			line, err := formatExit(top.event, top.cpu, len(stack), names)
			if err != nil {
				return "", err
			}
			records = append(records, record{timestamp: top.event.ExitTime, line: line})
			lastExitByTid[e.Tid] = top.event.ExitTime
		}

		if verbose {
			if prev, ok := lastExitByTid[e.Tid]; ok && e.ExitTime < prev {
				color.New(color.FgYellow).Fprintf(os.Stderr, "fgraph: tid %d exit_time moved backward: %d < %d\n", e.Tid, e.ExitTime, prev)
			}
		}

		entryLine, err := formatEntry(e, len(stack), names)
		if err != nil {
			return "", err
		}
		records = append(records, record{timestamp: e.EntryTime, line: entryLine})

		stack = append(stack, stackEntry{event: e, cpu: e.CPU})
		stacks[e.Tid] = stack
	}

	for _, tid := range tidOrder {
		stack := stacks[tid]
		for len(stack) > 0 {
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			line, err := formatExit(top.event, top.cpu, len(stack), names)
			if err != nil {
				return "", err
			}
			records = append(records, record{timestamp: top.event.ExitTime, line: line})
		}
	}

	sort.SliceStable(records, func(i, j int) bool { return records[i].timestamp < records[j].timestamp })

	out := make([]byte, 0, len(records)*96)
	for _, r := range records {
		out = append(out, r.line...)
	}
	return string(out), nil
}
