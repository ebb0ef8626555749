package fgraph

import (
	"strings"
	"testing"
)

func TestLoadThreadMapAssignsSequentialIDs(t *testing.T) {
	input := "1000 idle\n2000 tshell\n"
	m, err := LoadThreadMap(strings.NewReader(input))
	if err != nil {
		t.Fatalf("LoadThreadMap: %v", err)
	}
	if len(m) != 2 {
		t.Fatalf("got %d entries, want 2", len(m))
	}
	idle, ok := m[0x1000]
	if !ok || idle.Name != "idle" || idle.DisplayID != 10 {
		t.Fatalf("idle entry wrong: %+v", idle)
	}
	tshell, ok := m[0x2000]
	if !ok || tshell.Name != "tshell" || tshell.DisplayID != 11 {
		t.Fatalf("tshell entry wrong: %+v", tshell)
	}
}

func TestLoadThreadMapMalformedLine(t *testing.T) {
	_, err := LoadThreadMap(strings.NewReader("not-a-valid-line\n"))
	if err == nil {
		t.Fatalf("expected malformed input error")
	}
}

func TestLookupUnknownTid(t *testing.T) {
	_, err := Lookup(map[uint64]ThreadInfo{}, 42)
	if err == nil {
		t.Fatalf("expected UnknownTid error")
	}
}
