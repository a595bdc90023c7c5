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
	"github.com/thyeem/monotree/node"
)

// Step is one element of a Merkle proof: enough information, combined
// with the running child hash, to reconstruct a visited node's hash.
type Step struct {
	Prefix byte
	Cut    []byte
}

// Prove returns the proof for key under root, deepest step last. An
// empty tree yields an empty proof, which verifies only for leaf = Nil.
func (t *Tree) Prove(root, key []byte) ([]Step, error) {
	if err := t.checkShape(key); err != nil {
		return nil, err
	}
	if isNilHash(root) {
		return nil, nil
	}

	var steps []Step
	h := root
	bits := bitstring.FromBytes(key)
	for {
		raw, err := t.store.Get(h)
		if err != nil {
			return nil, err
		}
		if raw == nil {
			return nil, ErrBrokenTrie
		}
		d, err := node.Decode(raw, t.n)
		if err != nil {
			return nil, ErrBrokenTrie
		}

		isRight := bits.IsRight()
		childHash, edgeBits, _, _ := d.Select(isRight)
		k := bitstring.LCP(edgeBits, bits)

		step := cutFor(d, raw, t.n, isRight)

		switch {
		case k == bits.Len():
			steps = append(steps, step)
			return steps, nil
		case k == edgeBits.Len():
			steps = append(steps, step)
			h = childHash
			bits = bits.Slice(k)
		default:
			// Mismatch before either side is exhausted: the key isn't
			// present under this root, and the mismatching node
			// contributes no step.
			return steps, nil
		}
	}
}

// cutFor builds the (prefix, cut) pair for the node just visited.
func cutFor(d node.Decoded, raw []byte, n int, isRight bool) Step {
	if d.Tag == node.TagSoft || !isRight {
		cut := append([]byte(nil), raw[n:]...)
		return Step{Prefix: 0x00, Cut: cut}
	}
	// Hard node, descended right: everything before the trailing
	// right-child hash, with the tag byte reattached.
	cut := append([]byte(nil), raw[:len(raw)-n-1]...)
	cut = append(cut, 0x01)
	return Step{Prefix: 0x01, Cut: cut}
}
