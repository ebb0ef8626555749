package blob

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
)

// wrapperTmpl renders the C source a build embeds in the kernel image: a
// static uint32_t array placed in the .ksymtbl section, initialized with
// designated initializers at each section's word offset. Ported from
// extract_sym.py's wrap_src template; FLOOR/MERGE keep their original
// names since the on-device reader (outside this module's scope) expects
// them verbatim in kernel build logs.
var wrapperTmpl = template.Must(template.New("ksymtbl").Parse(`// Code generated by symtab-compile. DO NOT EDIT.
// Build ID: {{.BuildID}}
#include <stdint.h>
#include <stddef.h>

#ifdef __ORDER_LITTLE_ENDIAN__
#define MERGE(id1, id2)          ((id2) << 16 | ((id1) & 0xffff))
#else
#define MERGE(id1, id2)          ((id1) << 16 | ((id2) & 0xffff))
#endif /* __ORDER_LITTLE_ENDIAN__ */

#define ALIGN_REQ (4)
#define FLOOR(val) (((size_t)(val) + (ALIGN_REQ)-1) & ~((ALIGN_REQ)-1))
#define SYMBOL_CNT {{.N}}

#define HEADER_SZ (10 * sizeof(uint32_t))

#define O2S_SZ (SYMBOL_CNT * sizeof(uint16_t))
#define S2O_SZ (SYMBOL_CNT * sizeof(uint16_t))
#define OFT_SZ (SYMBOL_CNT * sizeof(uint32_t))
#define SYT_SZ (SYMBOL_CNT * sizeof(uint32_t))

#define OFF_O2S FLOOR(HEADER_SZ)
#define OFF_S2O FLOOR(OFF_O2S + O2S_SZ)
#define OFF_OFT FLOOR(OFF_S2O + S2O_SZ)
#define OFF_SYT FLOOR(OFF_OFT + OFT_SZ)
#define OFF_STR FLOOR(OFF_SYT + SYT_SZ)

uint32_t
__attribute__((section(".ksymtbl")))
ksymtbl_blob[] = {
    // MAGIC NUMBER
    0x{{printf "%x" .Magic}},
    // SYMBOL COUNT
    {{.N}},
    // TOTAL SIZE
    0x{{printf "%x" .TotalSize}},
    // OFFSET BASE LOW
    0x{{printf "%x" .BaseLo}},
    // OFFSET BASE HIGH
    0x{{printf "%x" .BaseHi}},

    OFF_O2S, // offset to o2s section
    OFF_S2O, // offset to s2o section
    OFF_OFT, // offset to offset table section
    OFF_SYT, // offset to symbol table section
    OFF_STR, // offset to strings section

    // skip padding
    [OFF_O2S/sizeof(ksymtbl_blob[0])] = {{.O2S}}
    // skip padding
    [OFF_S2O/sizeof(ksymtbl_blob[0])] = {{.S2O}}
    // skip padding
    [OFF_OFT/sizeof(ksymtbl_blob[0])] = {{.OFT}}
    // skip padding
    [OFF_SYT/sizeof(ksymtbl_blob[0])] = {{.SYT}}
    // skip padding
    [OFF_STR/sizeof(ksymtbl_blob[0])] = {{.STR}}
};
`))

type wrapperData struct {
	BuildID   string
	Magic     uint32
	N         int
	TotalSize int
	BaseLo    uint32
	BaseHi    uint32
	O2S, S2O, OFT, SYT, STR string
}

// wordsLiteral renders a run of words as comma-separated C hex literals,
// one trailing newline per group of 8 for readability in generated diffs.
func wordsLiteral(words []uint32) string {
	var b strings.Builder
	for i, w := range words {
		fmt.Fprintf(&b, "0x%x, ", w)
		if (i+1)%8 == 0 {
			b.WriteString("\n    ")
		}
	}
	return strings.TrimRight(b.String(), " \n") + ","
}

// RenderWrapper renders the C source embedding blob, tagged with buildID
// (spec's Supplemented Features: a build identifier replaces the
// original's untracked anonymous blob for reproducibility auditing).
func RenderWrapper(blb *Blob, buildID string) ([]byte, error) {
	data := wrapperData{
		BuildID:   buildID,
		Magic:     Magic,
		N:         blb.N,
		TotalSize: len(blb.Words) * 4,
		BaseLo:    uint32(blb.Base & 0xFFFFFFFF),
		BaseHi:    uint32(blb.Base >> 32),
		O2S:       wordsLiteral(blb.Words[blb.Offsets.O2S/4 : blb.Offsets.S2O/4]),
		S2O:       wordsLiteral(blb.Words[blb.Offsets.S2O/4 : blb.Offsets.OFT/4]),
		OFT:       wordsLiteral(blb.Words[blb.Offsets.OFT/4 : blb.Offsets.SYT/4]),
		SYT:       wordsLiteral(blb.Words[blb.Offsets.SYT/4 : blb.Offsets.STR/4]),
		STR:       wordsLiteral(blb.Words[blb.Offsets.STR/4:]),
	}

	var buf bytes.Buffer
	if err := wrapperTmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render ksymtbl wrapper: %w", err)
	}
	return buf.Bytes(), nil
}
