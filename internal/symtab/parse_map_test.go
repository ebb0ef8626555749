package symtab

import (
	"strings"
	"testing"
)

const mapFixture = `Archive member included to satisfy reference by file

Linker script and memory map

.text           0x08000000     0x8000 load address 0x08000000
 *(.text)
0x08000000 0x00000100 rtthread.o
    0x08000000  rt_thread_create
    0x08000040  rt_object_init
0x08000100 0x00000050 scheduler.o
    0x08000100  rt_schedule
 *(__patchable_function_entries)
0x08100000 0x00000010 rtthread.o
    0x08100000  some_data
`

func TestParseMapBasic(t *testing.T) {
	result, err := ParseMap(strings.NewReader(mapFixture))
	if err != nil {
		t.Fatalf("ParseMap: %v", err)
	}
	if result.TextBase != 0x08000000 || result.TextSize != 0x8000 {
		t.Fatalf("text base/size wrong: %#x/%#x", result.TextBase, result.TextSize)
	}
	if len(result.Entries) != 3 {
		t.Fatalf("got %d entries, want 3: %+v", len(result.Entries), result.Entries)
	}
	if string(result.Entries[0].Symbol) != "rt_thread_create" || result.Entries[0].Addr != 0x08000000 {
		t.Fatalf("entry 0 wrong: %+v", result.Entries[0])
	}
	if result.Entries[0].Class != 'T' {
		t.Fatalf("map dialect entries must be class T, got %q", result.Entries[0].Class)
	}
}

func TestParseMapMissingAnchor(t *testing.T) {
	_, err := ParseMap(strings.NewReader("nothing relevant\n"))
	if err == nil {
		t.Fatalf("expected error for missing anchor")
	}
}

func TestParseMapMissingTerminator(t *testing.T) {
	truncated := `Linker script and memory map

.text           0x08000000     0x8000 load address 0x08000000
0x08000000 0x00000100 rtthread.o
    0x08000000  rt_thread_create
`
	_, err := ParseMap(strings.NewReader(truncated))
	if err == nil {
		t.Fatalf("expected error for missing __patchable_function_entries terminator")
	}
}
