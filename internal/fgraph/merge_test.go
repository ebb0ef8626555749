package fgraph

import (
	"strings"
	"testing"
)

func names(tids ...uint64) map[uint64]ThreadInfo {
	out := make(map[uint64]ThreadInfo)
	for i, tid := range tids {
		out[tid] = ThreadInfo{Name: "thr", DisplayID: 10 + i}
	}
	return out
}

// TestMergeNestingSingleCPU implements spec scenario S3.
func TestMergeNestingSingleCPU(t *testing.T) {
	events := []Event{
		{EntryAddress: 0xA, EntryTime: 100, ExitTime: 200, Tid: 7, CPU: 0},
		{EntryAddress: 0xB, EntryTime: 120, ExitTime: 180, Tid: 7, CPU: 0},
		{EntryAddress: 0xC, EntryTime: 210, ExitTime: 300, Tid: 7, CPU: 0},
	}
	out, err := Merge(events, names(7))
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 6 {
		t.Fatalf("got %d lines, want 6:\n%s", len(lines), out)
	}

	checks := []struct {
		substr string
	}{
		{"func:0xa depth:0"},
		{"func:0xb depth:1"},
		{"func:0xb depth:1"},
		{"func:0xa depth:0"},
		{"func:0xc depth:0"},
		{"func:0xc depth:0"},
	}
	for i, c := range checks {
		if !strings.Contains(lines[i], c.substr) {
			t.Fatalf("line %d = %q, want substring %q", i, lines[i], c.substr)
		}
	}
	if !strings.Contains(lines[0], "funcgraph_entry") || !strings.Contains(lines[1], "funcgraph_entry") {
		t.Fatalf("expected lines 0,1 to be entries")
	}
	if !strings.Contains(lines[2], "funcgraph_exit") || !strings.Contains(lines[3], "funcgraph_exit") {
		t.Fatalf("expected lines 2,3 to be exits")
	}
}

// TestMergeCrossCPUInterleave implements spec scenario S4.
func TestMergeCrossCPUInterleave(t *testing.T) {
	events := []Event{
		{EntryAddress: 0xA, EntryTime: 100, ExitTime: 300, Tid: 1, CPU: 0},
		{EntryAddress: 0xB, EntryTime: 150, ExitTime: 250, Tid: 2, CPU: 1},
	}
	out, err := Merge(events, names(1, 2))
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4:\n%s", len(lines), out)
	}
	want := []string{
		"func:0xa depth:0", // entry A @100
		"func:0xb depth:0", // entry B @150
		"func:0xb depth:0", // exit B @250
		"func:0xa depth:0", // exit A @300
	}
	for i, w := range want {
		if !strings.Contains(lines[i], w) {
			t.Fatalf("line %d = %q, want substring %q", i, lines[i], w)
		}
	}
}

// TestMergeOneEntryOnePerExit covers invariant 6: exactly one entry and one
// exit per input event, with exit calltime/rettime equal to the input
// entry/exit times.
func TestMergeOneEntryOnePerExit(t *testing.T) {
	events := []Event{
		{EntryAddress: 0xDEAD, EntryTime: 10, ExitTime: 20, Tid: 9, CPU: 2},
	}
	out, err := Merge(events, names(9))
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if strings.Count(out, "funcgraph_entry") != 1 {
		t.Fatalf("expected exactly one entry line:\n%s", out)
	}
	if strings.Count(out, "funcgraph_exit") != 1 {
		t.Fatalf("expected exactly one exit line:\n%s", out)
	}
	if !strings.Contains(out, "calltime:0xa") || !strings.Contains(out, "rettime=0x14") {
		t.Fatalf("exit calltime/rettime mismatch:\n%s", out)
	}
}

func TestMergeUnknownTid(t *testing.T) {
	events := []Event{
		{EntryAddress: 1, EntryTime: 1, ExitTime: 2, Tid: 99, CPU: 0},
	}
	_, err := Merge(events, names())
	if err == nil {
		t.Fatalf("expected UnknownTid error")
	}
}
