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

package node

import (
	"encoding/binary"

	"github.com/thyeem/monotree/bitstring"
)

// Decoded is the parsed shape of a stored node, exposing both sides
// uniformly so callers can pick left/right without re-testing the tag.
type Decoded struct {
	Tag Tag

	// Populated for a soft node; for a hard node these alias Left*.
	ChildHash []byte
	ChildEdge bitstring.BitString

	LeftHash  []byte
	LeftEdge  bitstring.BitString
	RightHash []byte
	RightEdge bitstring.BitString
}

// IsHard reports whether the decoded node has two children.
func (d Decoded) IsHard() bool { return d.Tag == TagHard }

// Select returns (childHash, childEdge, siblingHash, siblingEdge) for
// the side matching isRight. For a soft node the sibling is nil/the
// empty edge regardless of isRight.
func (d Decoded) Select(isRight bool) (childHash []byte, childEdge bitstring.BitString, sibHash []byte, sibEdge bitstring.BitString) {
	if d.Tag == TagSoft {
		return d.ChildHash, d.ChildEdge, nil, bitstring.Empty
	}
	if isRight {
		return d.RightHash, d.RightEdge, d.LeftHash, d.LeftEdge
	}
	return d.LeftHash, d.LeftEdge, d.RightHash, d.RightEdge
}

// Decode parses raw as a Monotree node whose hashes are n bytes wide.
// It returns ErrCorrupt if the tag byte is unrecognized, the payload is
// short or overlong for its declared edge lengths, or an edge's bit
// length exceeds 8n; no edge in a well-formed trie over 8n-bit keys
// can be longer than a full key.
func Decode(raw []byte, n int) (Decoded, error) {
	if len(raw) < 1 {
		return Decoded{}, corrupt("empty node payload")
	}
	tag := Tag(raw[len(raw)-1])
	switch tag {
	case TagSoft:
		return decodeSoft(raw, n)
	case TagHard:
		return decodeHard(raw, n)
	default:
		return Decoded{}, corrupt("unrecognized tag byte 0x%02x", byte(tag))
	}
}

func decodeSoft(raw []byte, n int) (Decoded, error) {
	if len(raw) < n+2+1 {
		return Decoded{}, corrupt("soft node shorter than minimum frame")
	}
	childHash := raw[:n]
	length := int(binary.BigEndian.Uint16(raw[n : n+2]))
	if err := checkEdgeLen(length, n); err != nil {
		return Decoded{}, err
	}
	nbyte := byteLen(length)
	end := n + 2 + nbyte
	if len(raw) != end+1 {
		return Decoded{}, corrupt("soft node length mismatch: want %d bytes, got %d", end+1, len(raw))
	}
	edge, err := bitstring.Unpack(raw[n+2:end], length)
	if err != nil {
		return Decoded{}, corrupt("soft node edge: %v", err)
	}
	return Decoded{
		Tag:       TagSoft,
		ChildHash: append([]byte(nil), childHash...),
		ChildEdge: edge,
	}, nil
}

func decodeHard(raw []byte, n int) (Decoded, error) {
	if len(raw) < n+2+1 {
		return Decoded{}, corrupt("hard node shorter than minimum frame")
	}
	leftHash := raw[:n]
	lLen := int(binary.BigEndian.Uint16(raw[n : n+2]))
	if err := checkEdgeLen(lLen, n); err != nil {
		return Decoded{}, err
	}
	lNbyte := byteLen(lLen)
	offset := n + 2 + lNbyte
	if len(raw) < offset+2 {
		return Decoded{}, corrupt("hard node truncated before right edge length")
	}
	leftEdge, err := bitstring.Unpack(raw[n+2:offset], lLen)
	if err != nil {
		return Decoded{}, corrupt("hard node left edge: %v", err)
	}

	rLen := int(binary.BigEndian.Uint16(raw[offset : offset+2]))
	if err := checkEdgeLen(rLen, n); err != nil {
		return Decoded{}, err
	}
	rNbyte := byteLen(rLen)
	rightPacked := offset + 2
	rightHashStart := rightPacked + rNbyte
	if len(raw) != rightHashStart+n+1 {
		return Decoded{}, corrupt("hard node length mismatch: want %d bytes, got %d", rightHashStart+n+1, len(raw))
	}
	rightEdge, err := bitstring.Unpack(raw[rightPacked:rightHashStart], rLen)
	if err != nil {
		return Decoded{}, corrupt("hard node right edge: %v", err)
	}
	rightHash := raw[rightHashStart : rightHashStart+n]

	return Decoded{
		Tag:       TagHard,
		LeftHash:  append([]byte(nil), leftHash...),
		LeftEdge:  leftEdge,
		RightHash: append([]byte(nil), rightHash...),
		RightEdge: rightEdge,
	}, nil
}

func checkEdgeLen(length, n int) error {
	if length <= 0 {
		return corrupt("edge bit length must be positive, got %d", length)
	}
	if length > 8*n {
		return corrupt("edge bit length %d exceeds 8N=%d", length, 8*n)
	}
	return nil
}

func byteLen(nbit int) int { return (nbit + 7) / 8 }
