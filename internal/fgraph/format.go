package fgraph

import "fmt"

// entryTmpl and exitTmpl match the funcgraph_entry/funcgraph_exit lines of
// the trace format being imitated (spec §4.8), field-for-field with the
// ported fgraph-parser.py templates.
const (
	entryTmpl = "%s-%d [%03d] %3d.%09d: funcgraph_entry:       func:0x%x depth:%d\n"
	exitTmpl  = "%s-%d [%03d] %3d.%09d: funcgraph_exit:        func:0x%x depth:%d overrun:0 calltime:0x%x rettime=0x%x\n"
)

func splitTime(ns uint64) (seconds, nanos int64) {
	return int64(ns / 1_000_000_000), int64(ns % 1_000_000_000)
}

func formatEntry(e Event, depth int, names map[uint64]ThreadInfo) (string, error) {
	info, err := Lookup(names, e.Tid)
	if err != nil {
		return "", err
	}
	sec, nsec := splitTime(e.EntryTime)
	return fmt.Sprintf(entryTmpl, info.Name, info.DisplayID, e.CPU, sec, nsec, e.EntryAddress, depth), nil
}

func formatExit(e Event, cpu, depth int, names map[uint64]ThreadInfo) (string, error) {
	info, err := Lookup(names, e.Tid)
	if err != nil {
		return "", err
	}
	sec, nsec := splitTime(e.ExitTime)
	return fmt.Sprintf(exitTmpl, info.Name, info.DisplayID, cpu, sec, nsec, e.EntryAddress, depth, e.EntryTime, e.ExitTime), nil
}
