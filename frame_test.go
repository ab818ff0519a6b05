package ulog

import (
	"bytes"
	"math/rand"
	"testing"
)

func TestEncodeFrameWorkedExample(t *testing.T) {
	// log(INFO, "hi") at id=0x0010, zero arguments.
	p := packet{id: 0x0010}
	got := encodeFrame(nil, p)
	want := []byte{3, 0x10, 0x00, sentinel}
	if !bytes.Equal(got, want) {
		t.Fatalf("encodeFrame(id=0x10) = % X, want % X", got, want)
	}
}

func TestEncodeFrameEndsInExactlyOneSentinel(t *testing.T) {
	cases := []packet{
		{id: 0x0011, n: 1, data: [maxDataBytes]byte{0x2A}},
		{id: idOverrun, n: 1, data: [maxDataBytes]byte{0x01}},
		{id: 0x0013 | idContinuation, n: 2, data: [maxDataBytes]byte{0x78, 0x56}},
	}
	for _, p := range cases {
		frame := encodeFrame(nil, p)
		if len(frame) == 0 || frame[len(frame)-1] != sentinel {
			t.Fatalf("encodeFrame(%+v) does not end in the sentinel: % X", p, frame)
		}
		if bytes.Count(frame[:len(frame)-1], []byte{sentinel}) != 0 {
			t.Fatalf("encodeFrame(%+v) has a sentinel byte before the final terminator: % X", p, frame)
		}
	}
}

func TestFrameRoundTripIdentity(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 1000; i++ {
		raw := make([]byte, rng.Intn(maxRawLen+1))
		rng.Read(raw)

		var dst []byte
		dst = encodeCOBS(dst, raw)

		var d decoder
		var got []byte
		for _, b := range dst {
			if out, ok := d.feed(b); ok {
				got = out
			}
		}
		if !bytes.Equal(got, raw) {
			t.Fatalf("round trip failed for raw=% X: got % X", raw, got)
		}
	}
}

func TestFrameRoundTripWithEmbeddedSentinels(t *testing.T) {
	raw := []byte{sentinel, 0x01, sentinel, sentinel, 0x00}
	var dst []byte
	dst = encodeCOBS(dst, raw)

	var d decoder
	var got []byte
	for _, b := range dst {
		if out, ok := d.feed(b); ok {
			got = out
		}
	}
	if !bytes.Equal(got, raw) {
		t.Fatalf("round trip with embedded sentinels failed: got % X, want % X", got, raw)
	}
}

func TestDecoderResyncsAfterOversizedFrame(t *testing.T) {
	var d decoder
	for i := 0; i < len(d.buf)+5; i++ {
		if _, ok := d.feed(0x42); ok {
			t.Fatal("decoder should not produce a frame from an unterminated overlong run")
		}
	}
	// A sentinel after overflow should not crash and should resync.
	d.feed(sentinel)

	raw := []byte{0x01, 0x02}
	var dst []byte
	dst = encodeCOBS(dst, raw)
	var got []byte
	for _, b := range dst {
		if out, ok := d.feed(b); ok {
			got = out
		}
	}
	if !bytes.Equal(got, raw) {
		t.Fatalf("decoder failed to resync after overflow: got % X, want % X", got, raw)
	}
}

func TestOverrunFramePayload(t *testing.T) {
	p := overrunPacket(1)
	id := idOverrun
	raw := []byte{byte(id), byte(id >> 8), 1}
	frame := encodeFrame(nil, p)
	var dst []byte
	dst = encodeCOBS(dst, raw)
	if !bytes.Equal(frame, dst) {
		t.Fatalf("overrun frame = % X, want % X", frame, dst)
	}
}
