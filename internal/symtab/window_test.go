package symtab

import "testing"

func TestSelectWindowBaseFromFirstTextEntry(t *testing.T) {
	entries := []SymbolEntry{
		{Symbol: []byte("data1"), Addr: 0x100000000, Class: 'D'},
		{Symbol: []byte("func1"), Addr: 0x0800_1000, Class: 'T'},
		{Symbol: []byte("func2"), Addr: 0x0800_2000, Class: 'T'},
	}
	base, windowed, skipped, ok := SelectWindow(entries)
	if !ok {
		t.Fatalf("expected ok=true")
	}
	if base != 0 {
		t.Fatalf("base = %#x, want 0", base)
	}
	if len(windowed) != 2 {
		t.Fatalf("windowed len = %d, want 2 (data1 lies outside the 4GiB window at base 0)", len(windowed))
	}
	if skipped != 1 {
		t.Fatalf("skipped = %d, want 1", skipped)
	}
}

func TestSelectWindowDropsOutOfWindowEntries(t *testing.T) {
	entries := []SymbolEntry{
		{Symbol: []byte("func1"), Addr: 0x0800_1000, Class: 'T'},
		{Symbol: []byte("far"), Addr: 0x1_0800_1000, Class: 'T'},
	}
	base, windowed, skipped, ok := SelectWindow(entries)
	if !ok {
		t.Fatalf("expected ok=true")
	}
	if base != 0 {
		t.Fatalf("base = %#x, want 0", base)
	}
	if len(windowed) != 1 {
		t.Fatalf("windowed len = %d, want 1", len(windowed))
	}
	if skipped != 1 {
		t.Fatalf("skipped = %d, want 1", skipped)
	}
}

func TestSelectWindowNoTextEntry(t *testing.T) {
	entries := []SymbolEntry{
		{Symbol: []byte("data1"), Addr: 0x1000, Class: 'D'},
	}
	_, _, _, ok := SelectWindow(entries)
	if ok {
		t.Fatalf("expected ok=false when no class-T entry exists")
	}
}
