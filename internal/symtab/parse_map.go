package symtab

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/polarvid/rt-thread/internal/xerrors"
)

// MapResult carries the linker map's own .text base/size alongside the
// parsed entries. The blob encoder never reads TextBase/TextSize for the
// window base (§5); they are provenance only, surfaced through --verbose
// diagnostics.
type MapResult struct {
	Entries  []SymbolEntry
	TextBase uint64
	TextSize uint64
}

var (
	hexWord       = `0x[0-9a-fA-F]+`
	textSectionRe = regexp.MustCompile(`\.text\s+(` + hexWord + `)\s+(` + hexWord + `)`)
	blockHeaderRe = regexp.MustCompile(`^\s*(` + hexWord + `)\s+(` + hexWord + `)\s+(\S+\.o)\s*$`)
	blockLineRe   = regexp.MustCompile(`^\s+(` + hexWord + `)\s+([A-Za-z_][A-Za-z0-9_]*)\s*$`)
)

// ParseMap reads the linker map dialect (spec §4.1): skip to the literal
// line "Linker script and memory map", skip to the .text section header to
// capture text_base/text_size, then read indented (addr, symbol) blocks
// until "*(__patchable_function_entries)".
func ParseMap(r io.Reader) (*MapResult, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if !skipUntil(scanner, func(line string) bool {
		return strings.TrimSpace(line) == "Linker script and memory map"
	}) {
		return nil, fmt.Errorf("%w: map file missing \"Linker script and memory map\" anchor", xerrors.ErrMalformedInput)
	}

	result := &MapResult{}
	found := false
	for scanner.Scan() {
		m := textSectionRe.FindStringSubmatch(scanner.Text())
		if m == nil {
			continue
		}
		base, err := strconv.ParseUint(strings.TrimPrefix(m[1], "0x"), 16, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: bad .text base %q", xerrors.ErrMalformedInput, m[1])
		}
		size, err := strconv.ParseUint(strings.TrimPrefix(m[2], "0x"), 16, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: bad .text size %q", xerrors.ErrMalformedInput, m[2])
		}
		result.TextBase, result.TextSize = base, size
		found = true
		break
	}
	if !found {
		return nil, fmt.Errorf("%w: map file has no .text section line", xerrors.ErrMalformedInput)
	}

	var (
		entries  []SymbolEntry
		pending  []SymbolEntry
		inBlock  bool
		stopSeen bool
	)
	flush := func() {
		if len(pending) > 0 {
			entries = append(entries, pending...)
		}
		pending = nil
		inBlock = false
	}

	for scanner.Scan() {
		line := scanner.Text()
		if strings.Contains(line, "*(__patchable_function_entries)") {
			stopSeen = true
			break
		}
		if m := blockHeaderRe.FindStringSubmatch(line); m != nil {
			flush()
			inBlock = true
			continue
		}
		if inBlock {
			if m := blockLineRe.FindStringSubmatch(line); m != nil {
				addr, err := strconv.ParseUint(strings.TrimPrefix(m[1], "0x"), 16, 64)
				if err != nil {
					return nil, fmt.Errorf("%w: bad symbol address %q", xerrors.ErrMalformedInput, m[1])
				}
				pending = append(pending, SymbolEntry{
					Symbol: []byte(m[2]),
					Addr:   addr,
					Class:  'T',
				})
				continue
			}
			flush()
		}
	}
	flush()
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if !stopSeen {
		return nil, fmt.Errorf("%w: map file missing __patchable_function_entries terminator", xerrors.ErrMalformedInput)
	}

	result.Entries = entries
	return result, nil
}
