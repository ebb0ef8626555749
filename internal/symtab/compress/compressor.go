// Package compress implements the dictionary-based substring compressor
// of §4.3: 127 greedy rounds reassign byte codes 0x80..0xFE to the
// highest-value non-overlapping substrings across a corpus of symbol
// names, rewriting each symbol's bytes in place.
package compress

const (
	// WindowLimit bounds the length of substrings considered during the
	// initial split (L=5 in spec §4.3).
	WindowLimit = 5
	// LocalRadius bounds the re-split window applied around a splice
	// point (radius 3 in spec §4.3 step 2).
	LocalRadius = 3
	// MaxCodes is the number of byte codes the compressor may assign.
	MaxCodes = 127
	// FirstCode is the first reassigned byte value (0x80).
	FirstCode = 0x80
	// LastCode is the last reassigned byte value (0xFE); FirstCode+126.
	LastCode = FirstCode + MaxCodes - 1
)

// Report summarizes one Compress call for the diagnostic stream (spec
// §4.3 Termination and reporting).
type Report struct {
	TotalBefore int
	TotalAfter  int
	CodesUsed   int
	Exhausted   bool
}

// Ratio returns TotalAfter/TotalBefore, or 1 if the corpus was empty.
func (r Report) Ratio() float64 {
	if r.TotalBefore == 0 {
		return 1
	}
	return float64(r.TotalAfter) / float64(r.TotalBefore)
}

// Compress rewrites each buffer in buffers in place, reassigning bytes
// 0x80..0xFE to the highest-value substrings found across the whole
// corpus, and returns a compression Report. If fewer than MaxCodes tokens
// with at least two occurrences ever exist, Report.Exhausted is set and
// the loop stops early (spec's DictionaryExhausted, non-fatal).
func Compress(buffers [][]byte, strategy Strategy) ([][]byte, Report) {
	nodes := make([]*node, len(buffers))
	dict := newDictionary()

	totalBefore := 0
	for i, b := range buffers {
		nodes[i] = newNode(i, b)
		totalBefore += len(b)
	}

	for _, n := range nodes {
		for _, sp := range splitInitial(n.buffer, strategy) {
			dict.register(n.addView(sp.start, sp.length))
		}
	}

	codesUsed := 0
	exhausted := false
	for code := FirstCode; code <= LastCode; code++ {
		best, ok := dict.best()
		if !ok {
			exhausted = true
			break
		}
		for len(best.occurrence) > 0 {
			applyOne(dict, best.occurrence[0], byte(code))
		}
		codesUsed++
	}

	totalAfter := 0
	for i, n := range nodes {
		buffers[i] = n.buffer
		totalAfter += len(n.buffer)
	}

	return buffers, Report{
		TotalBefore: totalBefore,
		TotalAfter:  totalAfter,
		CodesUsed:   codesUsed,
		Exhausted:   exhausted,
	}
}

// applyOne substitutes one occurrence of a chosen token with code: it
// invalidates every view on the parent node that overlaps the match,
// shifts the remaining views to account for the buffer shrinking, splices
// the buffer, and re-splits locally around the splice point so the
// dictionary never references a stale start index (spec §4.3's explicit
// correctness requirement, and §3's CompressionNode/Token invariant).
func applyOne(dict *dictionary, v *view, code byte) {
	n := v.node
	start, end := v.start, v.start+v.length

	remaining := n.views[:0]
	for _, ov := range n.views {
		if ov.overlaps(start, end) {
			dict.remove(ov, string(ov.bytes()))
			continue
		}
		remaining = append(remaining, ov)
	}
	n.views = remaining

	delta := v.length - 1
	for _, ov := range n.views {
		if ov.start >= end {
			ov.start -= delta
		}
	}

	tail := append([]byte(nil), n.buffer[end:]...)
	n.buffer = append(n.buffer[:start:start], code)
	n.buffer = append(n.buffer, tail...)

	for _, sp := range localResplit(n.buffer, start, LocalRadius) {
		dict.register(n.addView(sp.start, sp.length))
	}
}
