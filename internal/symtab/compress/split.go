package compress

// Strategy selects how a node's buffer is initially split into candidate
// substrings (§5: StrategyUnderscoreAware restores a splitting mode present
// in the original Python source but not used by the windowed strategy
// below, which is the default).
type Strategy int

const (
	// StrategyWindowed is the required setup of §4.3: every substring
	// of length 2..=WindowLimit.
	StrategyWindowed Strategy = iota
	// StrategyUnderscoreAware splits on identifier-boundary underscores
	// first (matching extract_sym.py's CompressNode.split_legacy), biasing
	// the dictionary toward whole identifier fragments rather than
	// arbitrary byte runs.
	StrategyUnderscoreAware
)

type span struct {
	start, length int
}

// splitInitial computes a node's starting set of candidate substrings.
func splitInitial(buf []byte, strategy Strategy) []span {
	switch strategy {
	case StrategyUnderscoreAware:
		if spans := splitUnderscoreAware(buf); len(spans) > 0 {
			return spans
		}
		return splitWindowed(buf, WindowLimit)
	default:
		return splitWindowed(buf, WindowLimit)
	}
}

// splitWindowed generates every substring of length 2..=limit (spec §4.3
// Setup), bounding initial cost to O(|buf| * limit).
func splitWindowed(buf []byte, limit int) []span {
	n := len(buf)
	var spans []span
	for start := 0; start < n; start++ {
		maxLen := limit
		if n-start < maxLen {
			maxLen = n - start
		}
		for length := 2; length <= maxLen; length++ {
			spans = append(spans, span{start: start, length: length})
		}
	}
	return spans
}

// splitUnderscoreAware finds meaningful underscore-delimited boundaries
// (skipping a leading underscore run) and emits every substring spanning
// from one boundary to a later one, dropping degenerate single-underscore
// trailers. Ported from extract_sym.py's CompressNode.split_legacy.
func splitUnderscoreAware(buf []byte) []span {
	n := len(buf)
	var bounds []int
	splitIdx := -1
	for i := 0; i < n; i++ {
		if buf[i] != '_' {
			splitIdx = i
			for {
				found := false
				for j := splitIdx; j < n; j++ {
					if buf[j] == '_' || buf[j] > 127 {
						splitIdx = j
						found = true
						break
					}
				}
				if !found {
					break
				}
				bounds = append(bounds, splitIdx)
				splitIdx++
			}
			break
		}
	}
	if len(bounds) == 0 {
		return nil
	}
	bounds = append(bounds, n)

	var spans []span
	startIndex := -1
	for si := 0; si < len(bounds); si++ {
		for ei := si; ei < len(bounds); ei++ {
			endIndex := bounds[ei]
			if startIndex+2 >= endIndex || endIndex == n-1 {
				break
			}
			length := endIndex - startIndex
			if startIndex+1+length > n {
				length = n - startIndex - 1
			}
			spans = append(spans, span{start: startIndex + 1, length: length})
		}
		startIndex = bounds[si]
	}
	return spans
}

// localResplit regenerates every substring of length 2..=WindowLimit whose
// start falls in [pos-LocalRadius+1, pos] ("begins in") or whose end falls
// in [pos, pos+LocalRadius] ("ends in"), per spec §4.3 step 2's re-split
// rule. Duplicate (start, length) pairs are suppressed.
func localResplit(buf []byte, pos, radius int) []span {
	n := len(buf)
	seen := make(map[span]bool)
	var spans []span
	add := func(start, length int) {
		if length < 2 || length > WindowLimit {
			return
		}
		if start < 0 || start+length > n {
			return
		}
		sp := span{start: start, length: length}
		if seen[sp] {
			return
		}
		seen[sp] = true
		spans = append(spans, sp)
	}

	for start := pos - radius + 1; start <= pos; start++ {
		for length := 2; length <= WindowLimit; length++ {
			add(start, length)
		}
	}
	for end := pos; end <= pos+radius; end++ {
		for length := 2; length <= WindowLimit; length++ {
			add(end-length, length)
		}
	}
	return spans
}
