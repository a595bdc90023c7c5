// This is free and unencumbered software released into the public domain.
//
// Anyone is free to copy, modify, publish, use, compile, sell, or
// distribute this software, either in source code form or as a compiled
// binary, for any purpose, commercial or non-commercial, and by any
// means.
//
// In jurisdictions that recognize copyright laws, the author or authors
// of this software dedicate any and all copyright interest in the
// software to the public domain. We make this dedication for the benefit
// of the public at large and to the detriment of our heirs and
// successors. We intend this dedication to be an overt act of
// relinquishment in perpetuity of all present and future rights to this
// software under copyright law.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND,
// EXPRESS OR IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF
// MERCHANTABILITY, FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT.
// IN NO EVENT SHALL THE AUTHORS BE LIABLE FOR ANY CLAIM, DAMAGES OR
// OTHER LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE,
// ARISING FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR
// OTHER DEALINGS IN THE SOFTWARE.
//
// For more information, please refer to <https://unlicense.org>

package bitstring

import (
	"bytes"
	"testing"
)

func TestFromBytesRoundTripsThroughPack(t *testing.T) {
	in := []byte{0xde, 0xad, 0xbe, 0xef}
	b := FromBytes(in)
	if b.Len() != 32 {
		t.Fatalf("expected 32 bits, got %d", b.Len())
	}
	if out := b.Pack(); !bytes.Equal(out, in) {
		t.Fatalf("Pack() = %x, want %x", out, in)
	}
}

func TestUnpackRejectsShortPayload(t *testing.T) {
	if _, err := Unpack([]byte{0xff}, 9); err == nil {
		t.Fatalf("expected error for a payload shorter than the declared bit length")
	}
}

func TestUnpackIgnoresPaddingBits(t *testing.T) {
	// 0b1010_1111 truncated to 4 bits should read as 0b1010, regardless
	// of what the trailing nibble holds.
	a, err := Unpack([]byte{0xaf}, 4)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Unpack([]byte{0xa0}, 4)
	if err != nil {
		t.Fatal(err)
	}
	if !a.Equal(b) {
		t.Fatalf("decoders must ignore undefined trailing bits")
	}
}

func TestBitMSBFirst(t *testing.T) {
	b := FromBytes([]byte{0x80})
	if b.Bit(0) != 1 {
		t.Fatalf("bit 0 should be the MSB of byte 0")
	}
	for i := 1; i < 8; i++ {
		if b.Bit(i) != 0 {
			t.Fatalf("bit %d should be 0", i)
		}
	}
}

func TestIsRight(t *testing.T) {
	if FromBytes([]byte{0x00}).IsRight() {
		t.Fatalf("leading 0 bit must not be is_right")
	}
	if !FromBytes([]byte{0x80}).IsRight() {
		t.Fatalf("leading 1 bit must be is_right")
	}
}

func TestSliceAndPrefix(t *testing.T) {
	b := FromBytes([]byte{0xf0}) // 1111 0000
	prefix := b.Prefix(4)
	suffix := b.Slice(4)
	if prefix.Len() != 4 || suffix.Len() != 4 {
		t.Fatalf("unexpected lengths: prefix=%d suffix=%d", prefix.Len(), suffix.Len())
	}
	for i := 0; i < 4; i++ {
		if prefix.Bit(i) != 1 {
			t.Fatalf("prefix bit %d should be 1", i)
		}
		if suffix.Bit(i) != 0 {
			t.Fatalf("suffix bit %d should be 0", i)
		}
	}
}

func TestLCP(t *testing.T) {
	x := FromBytes([]byte{0b10110000})
	y := FromBytes([]byte{0b10100000})
	if n := LCP(x, y); n != 3 {
		t.Fatalf("LCP = %d, want 3", n)
	}
}

func TestLCPCappedByShorterOperand(t *testing.T) {
	x := FromBytes([]byte{0xff})
	y := x.Prefix(3)
	if n := LCP(x, y); n != 3 {
		t.Fatalf("LCP = %d, want 3 (capped by the shorter operand)", n)
	}
}

func TestEmptyBitStringHasNoBits(t *testing.T) {
	if Empty.Len() != 0 {
		t.Fatalf("Empty must have zero length")
	}
	if len(Empty.Pack()) != 0 {
		t.Fatalf("Empty must pack to zero bytes")
	}
}
