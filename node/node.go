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

// Package node implements the canonical byte encoding of Monotree's two
// node shapes. A node's identity is the hash of exactly these bytes;
// any two implementations that serialize the same logical node the
// same way are wire-compatible.
package node

import (
	"encoding/binary"
	"fmt"

	"github.com/thyeem/monotree/bitstring"
)

// Tag is the trailing byte distinguishing soft from hard nodes.
type Tag byte

const (
	TagSoft Tag = 0x00
	TagHard Tag = 0x01
)

func encEdge(b bitstring.BitString) []byte {
	var lenField [2]byte
	binary.BigEndian.PutUint16(lenField[:], uint16(b.Len()))
	out := make([]byte, 0, 2+len(b.Pack()))
	out = append(out, lenField[:]...)
	out = append(out, b.Pack()...)
	return out
}

// EncodeSoft serializes a soft node: childHash ‖ enc_edge(edge) ‖ 0x00.
func EncodeSoft(childHash []byte, edge bitstring.BitString) []byte {
	out := make([]byte, 0, len(childHash)+2+len(edge.Pack())+1)
	out = append(out, childHash...)
	out = append(out, encEdge(edge)...)
	out = append(out, byte(TagSoft))
	return out
}

// EncodeHard serializes a hard node from its two sides, already ordered
// left/right by leading bit: enc_L ‖ enc_R ‖ 0x01, where enc_L carries
// its hash first and enc_R carries its hash last.
func EncodeHard(leftHash []byte, leftEdge bitstring.BitString, rightEdge bitstring.BitString, rightHash []byte) []byte {
	encL := make([]byte, 0, len(leftHash)+2+len(leftEdge.Pack()))
	encL = append(encL, leftHash...)
	encL = append(encL, encEdge(leftEdge)...)

	encR := make([]byte, 0, 2+len(rightEdge.Pack())+len(rightHash))
	encR = append(encR, encEdge(rightEdge)...)
	encR = append(encR, rightHash...)

	out := make([]byte, 0, len(encL)+len(encR)+1)
	out = append(out, encL...)
	out = append(out, encR...)
	out = append(out, byte(TagHard))
	return out
}

// ErrCorrupt reports a node whose serialized form cannot be a valid
// soft or hard node: an unrecognized tag byte, a truncated payload, or
// an edge bit-length exceeding 8N.
type ErrCorrupt struct {
	Reason string
}

func (e *ErrCorrupt) Error() string { return fmt.Sprintf("node: corrupt encoding: %s", e.Reason) }

func corrupt(format string, args ...interface{}) error {
	return &ErrCorrupt{Reason: fmt.Sprintf(format, args...)}
}
