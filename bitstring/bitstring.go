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

// Package bitstring implements the immutable, variable-length,
// MSB-first bit sequence used to label edges in a path-compressed
// binary trie. Conversions between a BitString and its canonical
// left-justified byte packing are the wire format every trie node
// codec relies on.
package bitstring

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
)

// MaxBits bounds the bit-length field carried by the node codec: two
// bytes, big-endian.
const MaxBits = 1<<16 - 1

// BitString is a read-only view over a sequence of bits, bit 0 being
// the most significant bit of the logical string. The zero value is
// the empty bit string.
type BitString struct {
	length int
	bits   *bitset.BitSet
}

// Empty is the zero-length BitString.
var Empty = BitString{}

// FromBytes interprets data as a big-endian, MSB-first bit string of
// exactly 8*len(data) bits.
func FromBytes(data []byte) BitString {
	bs := bitset.New(uint(len(data)) * 8)
	for i, b := range data {
		for j := 0; j < 8; j++ {
			if b&(0x80>>uint(j)) != 0 {
				bs.Set(uint(i*8 + j))
			}
		}
	}
	return BitString{length: len(data) * 8, bits: bs}
}

// Unpack decodes a BitString of the given bit length from its
// left-justified, MSB-first packed byte form, as produced by Pack.
// Bits beyond length in the final byte are ignored, matching the
// decoder convention that trailing padding bits carry no meaning.
func Unpack(packed []byte, length int) (BitString, error) {
	if length < 0 || length > MaxBits {
		return BitString{}, fmt.Errorf("bitstring: length %d out of range [0, %d]", length, MaxBits)
	}
	nbyte := byteLen(length)
	if len(packed) < nbyte {
		return BitString{}, fmt.Errorf("bitstring: packed payload too short: need %d bytes, got %d", nbyte, len(packed))
	}
	bs := bitset.New(uint(length))
	for i := 0; i < length; i++ {
		byteIdx, bitIdx := i/8, i%8
		if packed[byteIdx]&(0x80>>uint(bitIdx)) != 0 {
			bs.Set(uint(i))
		}
	}
	return BitString{length: length, bits: bs}, nil
}

func byteLen(nbit int) int {
	return (nbit + 7) / 8
}

// Len returns the number of bits in the string.
func (b BitString) Len() int { return b.length }

// Bit returns the bit at index i (0 = most significant), as 0 or 1.
// It panics if i is out of range.
func (b BitString) Bit(i int) byte {
	if i < 0 || i >= b.length {
		panic(fmt.Sprintf("bitstring: bit index %d out of range [0, %d)", i, b.length))
	}
	if b.bits.Test(uint(i)) {
		return 1
	}
	return 0
}

// IsRight reports whether the first bit is 1. Calling it on the empty
// BitString panics; callers must special-case nil edges before asking
// which side they start on.
func (b BitString) IsRight() bool {
	return b.Bit(0) == 1
}

// Slice returns the suffix bits[from:].
func (b BitString) Slice(from int) BitString {
	if from < 0 || from > b.length {
		panic(fmt.Sprintf("bitstring: slice start %d out of range [0, %d]", from, b.length))
	}
	n := b.length - from
	bs := bitset.New(uint(n))
	for i := 0; i < n; i++ {
		if b.bits.Test(uint(from + i)) {
			bs.Set(uint(i))
		}
	}
	return BitString{length: n, bits: bs}
}

// Prefix returns bits[:n]. It shares the receiver's underlying bitset
// since BitString is never mutated after construction.
func (b BitString) Prefix(n int) BitString {
	if n < 0 || n > b.length {
		panic(fmt.Sprintf("bitstring: prefix length %d out of range [0, %d]", n, b.length))
	}
	return BitString{length: n, bits: b.bits}
}

// Pack returns the canonical left-justified, MSB-first byte encoding:
// ⌈len/8⌉ bytes, with undefined trailing bits in the final byte beyond
// Len() left as zero.
func (b BitString) Pack() []byte {
	out := make([]byte, byteLen(b.length))
	for i := 0; i < b.length; i++ {
		if b.bits.Test(uint(i)) {
			out[i/8] |= 0x80 >> uint(i%8)
		}
	}
	return out
}

// Equal reports whether two BitStrings have identical length and bits.
func (b BitString) Equal(other BitString) bool {
	if b.length != other.length {
		return false
	}
	for i := 0; i < b.length; i++ {
		if b.Bit(i) != other.Bit(i) {
			return false
		}
	}
	return true
}

// LCP returns the length of the longest common prefix of x and y,
// capped at min(x.Len(), y.Len()).
func LCP(x, y BitString) int {
	n := x.length
	if y.length < n {
		n = y.length
	}
	i := 0
	for ; i < n; i++ {
		if x.Bit(i) != y.Bit(i) {
			break
		}
	}
	return i
}
