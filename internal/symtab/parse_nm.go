package symtab

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/polarvid/rt-thread/internal/xerrors"
)

// ParseNM reads the BSD/SysV nm-style table dialect (spec §4.1): skip until
// a line containing "Symbols from", skip the following blank/header/blank
// triple, then split every remaining non-empty line on '|' into exactly
// seven fields (symbol | value | class | type | size | line | section).
func ParseNM(r io.Reader) ([]SymbolEntry, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if !skipUntil(scanner, func(line string) bool {
		return strings.Contains(line, "Symbols from")
	}) {
		return nil, fmt.Errorf("%w: nm file has no \"Symbols from\" anchor", xerrors.ErrMalformedInput)
	}
	for i := 0; i < 3; i++ {
		if !scanner.Scan() {
			return nil, fmt.Errorf("%w: nm file truncated after anchor", xerrors.ErrMalformedInput)
		}
	}

	var entries []SymbolEntry
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Split(line, "|")
		if len(fields) != 7 {
			return nil, fmt.Errorf("%w: nm line has %d fields, want 7: %q", xerrors.ErrMalformedInput, len(fields), line)
		}
		symbol := strings.TrimSpace(fields[0])
		value := strings.TrimSpace(fields[1])
		class := strings.TrimSpace(fields[2])
		if symbol == "" || len(class) != 1 {
			return nil, fmt.Errorf("%w: nm line has bad symbol/class: %q", xerrors.ErrMalformedInput, line)
		}
		addr, err := strconv.ParseUint(value, 16, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: nm line has bad address %q: %v", xerrors.ErrMalformedInput, value, err)
		}
		entries = append(entries, SymbolEntry{
			Symbol: []byte(symbol),
			Addr:   addr,
			Class:  class[0],
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// skipUntil advances scanner past lines until pred matches one (inclusive);
// it returns false if the stream ends first.
func skipUntil(scanner *bufio.Scanner, pred func(string) bool) bool {
	for scanner.Scan() {
		if pred(scanner.Text()) {
			return true
		}
	}
	return false
}
