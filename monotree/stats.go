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

package monotree

import (
	"github.com/thyeem/monotree/bitstring"
)

// PathStats summarizes one root-to-leaf descent, used by the benchmark
// harness to contrast Monotree's path-compressed depth against the
// SMT baselines' fixed H-level walk.
type PathStats struct {
	Hops       int // nodes visited
	SoftHops   int // of which were soft (single-edge) nodes
	HardHops   int // of which were hard (two-edge) nodes
	BitsWalked int // total edge bits consumed across the descent
}

// Stat walks key under root exactly as Get does, but returns descent
// statistics instead of the leaf hash. It returns the zero PathStats
// for an empty tree or an absent key.
func (t *Tree) Stat(root, key []byte) (PathStats, error) {
	if err := t.checkShape(key); err != nil {
		return PathStats{}, err
	}
	if isNilHash(root) {
		return PathStats{}, nil
	}

	var stats PathStats
	h := root
	bits := bitstring.FromBytes(key)
	for {
		d, err := t.read(h)
		if err != nil {
			return PathStats{}, err
		}
		stats.Hops++
		if d.IsHard() {
			stats.HardHops++
		} else {
			stats.SoftHops++
		}

		isRight := bits.IsRight()
		childHash, edgeBits, _, _ := d.Select(isRight)
		k := bitstring.LCP(edgeBits, bits)
		stats.BitsWalked += k

		switch {
		case k == bits.Len():
			return stats, nil
		case k == edgeBits.Len():
			h = childHash
			bits = bits.Slice(k)
		default:
			return stats, nil
		}
	}
}
