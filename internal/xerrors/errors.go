// Package xerrors collects the sentinel error kinds shared by the symtab
// and fgraph subsystems (spec §7). Callers compare with errors.Is; the CLI
// entry points translate them to process exit codes.
package xerrors

import "errors"

var (
	// ErrMissingInput means the named input file does not exist.
	ErrMissingInput = errors.New("missing input")

	// ErrMalformedInput means a required anchor line or field count was
	// absent from the input.
	ErrMalformedInput = errors.New("malformed input")

	// ErrUnknownTid means an event referenced a tid absent from the
	// thread name map.
	ErrUnknownTid = errors.New("unknown tid")

	// ErrDictionaryExhausted means the compressor ran out of tokens with
	// at least two occurrences before assigning all 127 codes. Non-fatal:
	// the blob is still emitted with whatever remapping was achieved.
	ErrDictionaryExhausted = errors.New("dictionary exhausted")

	// ErrWindowOverflow marks an accepted entry whose high 32 address
	// bits differ from the chosen base. The entry is silently skipped;
	// this is a documented limitation, not a fatal condition.
	ErrWindowOverflow = errors.New("entry outside 4GiB window")
)
