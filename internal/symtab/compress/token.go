package compress

// token groups every view, across all nodes, that currently shares one
// substring's bytes (spec §3: CompressionToken). key is materialized once
// at registration time from the view's bytes.
type token struct {
	key        string
	occurrence []*view
}

// value is the bytes reclaimed by substituting every occurrence with one
// code byte: |occurrences| * |bytes|.
func (t *token) value() int {
	return len(t.occurrence) * len(t.key)
}

// dictionary is the compressor's working set. order tracks first-insertion
// so tie-breaking on value is deterministic ("first-inserted wins", spec
// §4.3 step 1), independent of Go's randomized map iteration.
type dictionary struct {
	tokens map[string]*token
	order  []string
}

func newDictionary() *dictionary {
	return &dictionary{tokens: make(map[string]*token)}
}

func (d *dictionary) register(v *view) {
	key := string(v.bytes())
	t, ok := d.tokens[key]
	if !ok {
		t = &token{key: key}
		d.tokens[key] = t
		d.order = append(d.order, key)
	}
	t.occurrence = append(t.occurrence, v)
}

// remove drops v from the token registered under key, deleting the token
// entirely once its occurrence list is empty.
func (d *dictionary) remove(v *view, key string) {
	t, ok := d.tokens[key]
	if !ok {
		return
	}
	for i, o := range t.occurrence {
		if o == v {
			t.occurrence = append(t.occurrence[:i], t.occurrence[i+1:]...)
			break
		}
	}
	if len(t.occurrence) == 0 {
		delete(d.tokens, key)
	}
}

// best returns the token maximizing value(), considering only tokens with
// at least two occurrences (a single-occurrence substitution isn't a
// dictionary entry worth a code, per spec §4.3's DictionaryExhausted
// condition). Ties break by first-inserted.
func (d *dictionary) best() (*token, bool) {
	var (
		bestTok *token
		bestVal = -1
	)
	for _, key := range d.order {
		t, ok := d.tokens[key]
		if !ok || len(t.occurrence) < 2 {
			continue
		}
		if val := t.value(); val > bestVal {
			bestVal = val
			bestTok = t
		}
	}
	if bestTok == nil {
		return nil, false
	}
	return bestTok, true
}
