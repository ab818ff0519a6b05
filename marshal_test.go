package ulog

import (
	"bytes"
	"math"
	"testing"
)

func TestNumericArgChunksLittleEndian(t *testing.T) {
	cases := []struct {
		name string
		arg  Arg
		want []byte
	}{
		{"u8", U8(0x2A), []byte{0x2A}},
		{"s8 negative", S8(-1), []byte{0xFF}},
		{"bool true", Bool(true), []byte{1}},
		{"bool false", Bool(false), []byte{0}},
		{"u16", U16(0x1234), []byte{0x34, 0x12}},
		{"s16 negative", S16(-2), []byte{0xFE, 0xFF}},
		{"ptr16", Ptr16(0xBEEF), []byte{0xEF, 0xBE}},
		{"u32", U32(0xDEADBEEF), []byte{0xEF, 0xBE, 0xAD, 0xDE}},
		{"s32 negative", S32(-1), []byte{0xFF, 0xFF, 0xFF, 0xFF}},
	}
	for _, c := range cases {
		chunks := c.arg.chunks(16)
		if len(chunks) != 1 {
			t.Fatalf("%s: got %d chunks, want 1", c.name, len(chunks))
		}
		if !bytes.Equal(chunks[0], c.want) {
			t.Fatalf("%s: chunk = % X, want % X", c.name, chunks[0], c.want)
		}
	}
}

func TestFloat32ArgIsIEEEBitsLittleEndian(t *testing.T) {
	chunks := Float32(1.5).chunks(16)
	if len(chunks) != 1 {
		t.Fatalf("got %d chunks, want 1", len(chunks))
	}
	bits := math.Float32bits(1.5)
	want := []byte{byte(bits), byte(bits >> 8), byte(bits >> 16), byte(bits >> 24)}
	if !bytes.Equal(chunks[0], want) {
		t.Fatalf("chunk = % X, want % X", chunks[0], want)
	}
}

func TestStringChunkingBoundaries(t *testing.T) {
	cases := []struct {
		s          string
		wantChunks int
	}{
		{"", 1},
		{"a", 1},
		{"ab", 1},
		{"abc", 1},
		{"abcd", 2},      // L=4 (k=1): k+1 = 2
		{"abcde", 2},     // L=5 (k=1): k+1 = 2
		{"abcdefg", 2},   // L=7 (k=1): k+1 = 2
		{"abcdefgh", 3},  // L=8 (k=2): k+1 = 3
	}
	for _, c := range cases {
		chunks := strArg(c.s).chunks(64)
		if len(chunks) != c.wantChunks {
			t.Errorf("chunks(%q) = %d chunks, want %d", c.s, len(chunks), c.wantChunks)
		}
		for _, ch := range chunks {
			if len(ch) > 4 {
				t.Errorf("chunks(%q) produced a chunk of length %d > 4", c.s, len(ch))
			}
		}
	}
}

func TestEmptyStringProducesSingleZeroByteChunk(t *testing.T) {
	chunks := strArg("").chunks(16)
	if len(chunks) != 1 || !bytes.Equal(chunks[0], []byte{0}) {
		t.Fatalf("chunks(\"\") = %v, want a single [0] chunk", chunks)
	}
}

func TestShortStringTerminatorMergesIntoLastChunk(t *testing.T) {
	// "AB" -> worked example 5: data bytes 41 42 00 in one packet.
	chunks := strArg("AB").chunks(16)
	if len(chunks) != 1 {
		t.Fatalf("chunks(\"AB\") = %d chunks, want 1", len(chunks))
	}
	want := []byte{'A', 'B', 0}
	if !bytes.Equal(chunks[0], want) {
		t.Fatalf("chunks(\"AB\") = % X, want % X", chunks[0], want)
	}
}

func TestStringTruncation(t *testing.T) {
	long := "this string is definitely longer than sixteen bytes"
	chunks := strArg(long).chunks(16)

	// 16 kept bytes chunk into 4 groups of 4, plus one marker chunk.
	if len(chunks) != 5 {
		t.Fatalf("chunks(long) = %d chunks, want 5", len(chunks))
	}
	marker := chunks[len(chunks)-1]
	want := []byte{'.', '.', '.', 0}
	if !bytes.Equal(marker, want) {
		t.Fatalf("truncation marker = % X, want % X", marker, want)
	}

	var kept []byte
	for _, c := range chunks[:len(chunks)-1] {
		kept = append(kept, c...)
	}
	if !bytes.Equal(kept, []byte(long[:16])) {
		t.Fatalf("kept prefix = %q, want %q", kept, long[:16])
	}
}

func TestStringNotTruncatedWhenExactlyAtLimit(t *testing.T) {
	s := "0123456789abcdef" // exactly 16 bytes
	chunks := strArg(s).chunks(16)
	last := chunks[len(chunks)-1]
	if bytes.Equal(last, []byte{'.', '.', '.', 0}) {
		t.Fatal("a string exactly at MaxStrLen must not be truncated")
	}
}

func TestBuildPacketsContinuationFlag(t *testing.T) {
	packets := buildPackets(0x0013, []Arg{U16(0x1234), U16(0x5678)}, 16)
	if len(packets) != 2 {
		t.Fatalf("got %d packets, want 2", len(packets))
	}
	if packets[0].id != 0x0013 {
		t.Errorf("packet 0 id = 0x%04X, want 0x0013 (CONTINUATION clear)", packets[0].id)
	}
	if packets[1].id != 0x0013|idContinuation {
		t.Errorf("packet 1 id = 0x%04X, want CONTINUATION set", packets[1].id)
	}
	if !bytes.Equal(packets[0].data[:packets[0].n], []byte{0x34, 0x12}) {
		t.Errorf("packet 0 data = % X, want 34 12", packets[0].data[:packets[0].n])
	}
	if !bytes.Equal(packets[1].data[:packets[1].n], []byte{0x78, 0x56}) {
		t.Errorf("packet 1 data = % X, want 78 56", packets[1].data[:packets[1].n])
	}
}

func TestBuildPacketsZeroArityProducesOnePacketNoData(t *testing.T) {
	packets := buildPackets(0x0010, nil, 16)
	if len(packets) != 1 {
		t.Fatalf("got %d packets, want 1", len(packets))
	}
	if packets[0].n != 0 {
		t.Errorf("packet 0 carries %d data bytes, want 0", packets[0].n)
	}
}

func TestBuildPacketsEightArgumentsProduceContinuationOnAllButFirst(t *testing.T) {
	args := make([]Arg, 8)
	for i := range args {
		args[i] = U8(byte(i))
	}
	packets := buildPackets(0x0020, args, 16)
	if len(packets) != 8 {
		t.Fatalf("got %d packets, want 8", len(packets))
	}
	if packets[0].id&idContinuation != 0 {
		t.Error("packet 0 must not carry CONTINUATION")
	}
	for i := 1; i < 8; i++ {
		if packets[i].id&idContinuation == 0 {
			t.Errorf("packet %d must carry CONTINUATION", i)
		}
	}
}

func TestTraitsOfMatchesArgTypes(t *testing.T) {
	args := []Arg{U8(1), S16(-1), Str("x")}
	traits := traitsOf(args)
	want := []ArgTrait{TraitU8, TraitS16, TraitStr}
	for i, tr := range want {
		if traits[i] != tr {
			t.Errorf("traits[%d] = %v, want %v", i, traits[i], tr)
		}
	}
}
