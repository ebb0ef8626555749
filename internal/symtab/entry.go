// Package symtab parses linker-produced symbol listings and reduces them to
// the filtered, windowed sequence of entries the blob encoder consumes.
package symtab

import "regexp"

// SymbolEntry is a single filtered symbol (spec §3: SymbolEntry).
//
// Symbol may contain bytes >= 0x80 after the compressor rewrites it; OftIdx
// and SytIdx are populated by the blob encoder, not by the parser or filter.
type SymbolEntry struct {
	Symbol     []byte
	Addr       uint64
	Class      byte
	OftIdx     int
	SytIdx     int
}

// defaultDenyRules rejects compiler-generated noise symbols. The first rule
// matches the RT-Thread toolchain's numbered __FUNCTION__ locals.
var defaultDenyRules = []*regexp.Regexp{
	regexp.MustCompile(`^__FUNCTION__\.\d+`),
}

// Filter is a pure predicate over SymbolEntry with no state beyond its
// configured deny rules (spec §4.2).
type Filter struct {
	denyRules []*regexp.Regexp
}

// NewFilter builds a Filter from caller-supplied deny-rule patterns. A nil
// or empty slice falls back to defaultDenyRules.
func NewFilter(patterns []string) (*Filter, error) {
	if len(patterns) == 0 {
		return &Filter{denyRules: defaultDenyRules}, nil
	}
	rules := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, err
		}
		rules = append(rules, re)
	}
	return &Filter{denyRules: rules}, nil
}

// Accept reports whether e should be retained: class A/D/B (case-
// insensitive) is rejected, as is any symbol matching a deny rule.
func (f *Filter) Accept(e SymbolEntry) bool {
	switch upper(e.Class) {
	case 'A', 'D', 'B':
		return false
	}
	for _, rule := range f.denyRules {
		if rule.MatchString(string(e.Symbol)) {
			return false
		}
	}
	return true
}

// Apply filters entries in place, preserving order.
func (f *Filter) Apply(entries []SymbolEntry) []SymbolEntry {
	out := entries[:0]
	for _, e := range entries {
		if f.Accept(e) {
			out = append(out, e)
		}
	}
	return out
}

func upper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - ('a' - 'A')
	}
	return b
}
