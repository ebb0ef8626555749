package fgraph

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func encodeEvent(entryAddr, entryTime, exitTime, tid uint64) []byte {
	buf := make([]byte, 32)
	binary.LittleEndian.PutUint64(buf[0:8], entryAddr)
	binary.LittleEndian.PutUint64(buf[8:16], entryTime)
	binary.LittleEndian.PutUint64(buf[16:24], exitTime)
	binary.LittleEndian.PutUint64(buf[24:32], tid)
	return buf
}

func TestDecodeStreamFullRecords(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(encodeEvent(0x1000, 100, 200, 7))
	buf.Write(encodeEvent(0x2000, 150, 250, 8))

	events, err := DecodeStream(&buf, 3)
	if err != nil {
		t.Fatalf("DecodeStream: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	if events[0].CPU != 3 || events[1].CPU != 3 {
		t.Fatalf("expected both events tagged cpu 3")
	}
	if events[0].EntryAddress != 0x1000 || events[0].Tid != 7 {
		t.Fatalf("event 0 decoded wrong: %+v", events[0])
	}
}

func TestDecodeStreamShortFinalRead(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(encodeEvent(1, 1, 2, 1))
	buf.Write([]byte{0x01, 0x02, 0x03})

	events, err := DecodeStream(&buf, 0)
	if err != nil {
		t.Fatalf("DecodeStream: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1 (short trailing read discarded)", len(events))
	}
}
