package symtab

// SelectWindow finds the first retained entry whose class uppercases to 'T'
// and derives base = entry.Addr & 0xFFFFFFFF00000000 (spec §4.4 step 1).
// Entries outside that 4GiB window are dropped (ErrWindowOverflow,
// documented limitation); skipped reports how many were dropped so the
// caller can log a single diagnostic rather than one per entry.
func SelectWindow(entries []SymbolEntry) (base uint64, windowed []SymbolEntry, skipped int, ok bool) {
	for _, e := range entries {
		if upper(e.Class) == 'T' {
			base = e.Addr & 0xFFFFFFFF00000000
			ok = true
			break
		}
	}
	if !ok {
		return 0, nil, 0, false
	}
	windowed = make([]SymbolEntry, 0, len(entries))
	for _, e := range entries {
		if e.Addr&0xFFFFFFFF00000000 == base {
			windowed = append(windowed, e)
		} else {
			skipped++
		}
	}
	return base, windowed, skipped, true
}
