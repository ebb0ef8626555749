package blob

import (
	"bytes"
	"sort"

	"github.com/polarvid/rt-thread/internal/symtab"
)

const (
	// Magic is the fixed KSYMTBL header magic number.
	Magic = 0x20233202
	// HeaderWords is the fixed header size in 32-bit words.
	HeaderWords = 10
	// HeaderSz is HeaderWords in bytes.
	HeaderSz = HeaderWords * 4
)

// Offsets records where each interior section begins, relative to the
// blob's base (spec §4.4 step 9).
type Offsets struct {
	O2S, S2O, OFT, SYT, STR int
}

// Blob is the fully laid-out KSYMTBL: a flat sequence of 32-bit words
// whose interior sections are addressed by byte offset, not pointer (spec
// §3: KSYMTBL Blob).
type Blob struct {
	Words   []uint32
	N       int
	Base    uint64
	Offsets Offsets
}

func alignUp4(x int) int { return (x + 3) &^ 3 }

// Encode lays out the five interior sections and the header for a set of
// filtered, windowed entries sharing the same 4GiB base (spec §4.4).
// windowed is not mutated; Encode sorts local copies for the OFT and SYT
// orderings and records each entry's resulting OftIdx/SytIdx on those
// copies only.
func Encode(base uint64, windowed []symtab.SymbolEntry, bigEndian bool) *Blob {
	n := len(windowed)

	byAddr := append([]symtab.SymbolEntry(nil), windowed...)
	sort.SliceStable(byAddr, func(i, j int) bool { return byAddr[i].Addr < byAddr[j].Addr })
	for i := range byAddr {
		byAddr[i].OftIdx = i
	}

	oft := make([]uint32, n)
	for i, e := range byAddr {
		oft[i] = uint32(e.Addr & 0xFFFFFFFF)
	}

	byName := append([]symtab.SymbolEntry(nil), byAddr...)
	sort.SliceStable(byName, func(i, j int) bool {
		return bytes.Compare(byName[i].Symbol, byName[j].Symbol) < 0
	})

	var str bytes.Buffer
	syt := make([]uint32, n)
	for i := range byName {
		byName[i].SytIdx = i
		syt[i] = uint32(str.Len())
		str.WriteByte(byName[i].Class)
		str.Write(byName[i].Symbol)
		str.WriteByte(0)
	}
	for str.Len()%4 != 0 {
		str.WriteByte(0)
	}

	o2s := make([]uint16, n)
	s2o := make([]uint16, n)
	for _, e := range byName {
		o2s[e.OftIdx] = uint16(e.SytIdx)
		s2o[e.SytIdx] = uint16(e.OftIdx)
	}

	o2sWords := packPairs(o2s, bigEndian)
	s2oWords := packPairs(s2o, bigEndian)
	strWords := packStrWords(str.Bytes())

	offO2S := alignUp4(HeaderSz)
	offS2O := alignUp4(offO2S + len(o2sWords)*4)
	offOFT := alignUp4(offS2O + len(s2oWords)*4)
	offSYT := alignUp4(offOFT + len(oft)*4)
	offSTR := alignUp4(offSYT + len(syt)*4)
	totalSize := offSTR + len(strWords)*4

	header := []uint32{
		Magic,
		uint32(n),
		uint32(totalSize),
		uint32(base & 0xFFFFFFFF),
		uint32(base >> 32),
		uint32(offO2S),
		uint32(offS2O),
		uint32(offOFT),
		uint32(offSYT),
		uint32(offSTR),
	}

	words := make([]uint32, 0, totalSize/4)
	words = append(words, header...)
	words = appendAt(words, offO2S, o2sWords)
	words = appendAt(words, offS2O, s2oWords)
	words = appendAt(words, offOFT, oft)
	words = appendAt(words, offSYT, syt)
	words = appendAt(words, offSTR, strWords)

	return &Blob{
		Words: words,
		N:     n,
		Base:  base,
		Offsets: Offsets{
			O2S: offO2S,
			S2O: offS2O,
			OFT: offOFT,
			SYT: offSYT,
			STR: offSTR,
		},
	}
}

// appendAt pads words with zero words up to byteOffset/4, then appends
// section. Every section boundary here is already 4-byte aligned by
// construction, so this is a no-op pad in practice; it exists so a future
// section with odd byte width still lands correctly.
func appendAt(words []uint32, byteOffset int, section []uint32) []uint32 {
	wantLen := byteOffset / 4
	for len(words) < wantLen {
		words = append(words, 0)
	}
	return append(words, section...)
}

// Bytes renders the blob as a flat little-endian byte slice, matching
// what an on-device reader would map the .ksymtbl section to.
func (b *Blob) Bytes() []byte {
	out := make([]byte, len(b.Words)*4)
	for i, w := range b.Words {
		out[i*4+0] = byte(w)
		out[i*4+1] = byte(w >> 8)
		out[i*4+2] = byte(w >> 16)
		out[i*4+3] = byte(w >> 24)
	}
	return out
}
