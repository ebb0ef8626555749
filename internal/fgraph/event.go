// Package fgraph merges per-CPU binary call-event streams into a single
// timestamp-ordered function-graph trace (§4.6-4.8).
package fgraph

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/polarvid/rt-thread/internal/xerrors"
)

// recordSize is the fixed width of one on-disk event: four little-endian
// u64 fields (spec §4.6).
const recordSize = 32

// Event is a single observed function call lifetime (spec §3: Event).
type Event struct {
	EntryAddress uint64
	EntryTime    uint64
	ExitTime     uint64
	Tid          uint64
	CPU          int
}

// DecodeStream reads every fixed-width record from r, tagging each with
// cpu. A short final read silently ends the stream for this CPU, per
// spec §4.6 ("no validation beyond length is performed").
func DecodeStream(r io.Reader, cpu int) ([]Event, error) {
	br := bufio.NewReader(r)
	var events []Event
	buf := make([]byte, recordSize)
	for {
		n, err := io.ReadFull(br, buf)
		if n == recordSize {
			events = append(events, Event{
				EntryAddress: binary.LittleEndian.Uint64(buf[0:8]),
				EntryTime:    binary.LittleEndian.Uint64(buf[8:16]),
				ExitTime:     binary.LittleEndian.Uint64(buf[16:24]),
				Tid:          binary.LittleEndian.Uint64(buf[24:32]),
				CPU:          cpu,
			})
		}
		if err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				return events, nil
			}
			return events, fmt.Errorf("decode cpu %d stream: %w", cpu, err)
		}
	}
}

// LoadAllStreams reads logging-<cpu>.bin for cpu = 0, 1, … under dir until
// open fails, concatenating every decoded event (spec §4.6).
func LoadAllStreams(dir string) ([]Event, error) {
	var all []Event
	for cpu := 0; ; cpu++ {
		path := fmt.Sprintf("%s/logging-%d.bin", dir, cpu)
		f, err := os.Open(path)
		if err != nil {
			if cpu == 0 {
				return nil, fmt.Errorf("%w: %s", xerrors.ErrMissingInput, path)
			}
			break
		}
		events, derr := DecodeStream(f, cpu)
		f.Close()
		if derr != nil {
			return nil, derr
		}
		all = append(all, events...)
	}
	return all, nil
}
