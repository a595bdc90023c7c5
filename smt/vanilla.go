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

package smt

import (
	"bytes"

	"github.com/thyeem/monotree/digest"
	"github.com/thyeem/monotree/store"
)

// Vanilla is a fixed-depth binary Merkle tree of height H = 8N; every
// path from root to leaf walks exactly H nodes.
type Vanilla struct {
	base
}

// NewVanilla builds the empty-tree chain h_0 = Nil, h_{i+1} = H(h_i ‖
// h_i) for i = 0..H-1, persists every (h_{i+1} -> h_i ‖ h_i) pair, and
// returns the tree together with h_H, the empty tree's root.
func NewVanilla(s store.NodeStore, hasher digest.Hasher) (*Vanilla, []byte, error) {
	n := hasher.Size()
	t := &Vanilla{base{store: s, hash: hasher, n: n, h: 8 * n}}

	h := Nil
	for i := 0; i < t.h; i++ {
		next, err := t.commit(h, h)
		if err != nil {
			return nil, nil, err
		}
		h = next
	}
	return t, h, nil
}

// N returns the fixed hash/key width.
func (t *Vanilla) N() int { return t.n }

// H returns the tree height in bits (8N).
func (t *Vanilla) H() int { return t.h }

// Get walks H levels from root, selecting the left or right half of
// each level's concatenated children by the corresponding key bit
// (MSB first, level 0 at the top).
func (t *Vanilla) Get(root, key []byte) ([]byte, error) {
	if err := t.checkShape(key); err != nil {
		return nil, err
	}
	cur := root
	for i := 0; i < t.h; i++ {
		left, right, err := t.readLevel(cur)
		if err != nil {
			return nil, err
		}
		if keyBit(key, t.h, i) == 1 {
			cur = right
		} else {
			cur = left
		}
	}
	return cur, nil
}

// Prove returns the H sibling hashes on the root-to-leaf path for key,
// ordered shallowest (level 0) first.
func (t *Vanilla) Prove(root, key []byte) ([][]byte, error) {
	if err := t.checkShape(key); err != nil {
		return nil, err
	}
	sibs := make([][]byte, t.h)
	cur := root
	for i := 0; i < t.h; i++ {
		left, right, err := t.readLevel(cur)
		if err != nil {
			return nil, err
		}
		if keyBit(key, t.h, i) == 1 {
			sibs[i] = left
			cur = right
		} else {
			sibs[i] = right
			cur = left
		}
	}
	return sibs, nil
}

// Insert collects the H-sibling proof for key, then rehashes from leaf
// to root combining with each stored sibling on the side its key bit
// selects, writing every new internal node.
func (t *Vanilla) Insert(root, key, leaf []byte) ([]byte, error) {
	if err := t.checkShape(key, leaf); err != nil {
		return nil, err
	}
	sibs, err := t.Prove(root, key)
	if err != nil {
		return nil, err
	}
	return t.rehash(key, leaf, sibs)
}

func (t *Vanilla) rehash(key, leaf []byte, sibs [][]byte) ([]byte, error) {
	h := leaf
	for i := t.h - 1; i >= 0; i-- {
		sib := sibs[i]
		var next []byte
		var err error
		if keyBit(key, t.h, i) == 1 {
			next, err = t.commit(sib, h)
		} else {
			next, err = t.commit(h, sib)
		}
		if err != nil {
			return nil, err
		}
		h = next
	}
	return h, nil
}

// Verify recomputes the root from (key, leaf, proof) without touching
// the store, mirroring Insert's rehash.
func (t *Vanilla) Verify(root, key, leaf []byte, proof [][]byte) bool {
	if len(proof) != t.h {
		return false
	}
	h := append([]byte(nil), leaf...)
	for i := t.h - 1; i >= 0; i-- {
		sib := proof[i]
		var raw []byte
		if keyBit(key, t.h, i) == 1 {
			raw = concat(sib, h)
		} else {
			raw = concat(h, sib)
		}
		h = t.hash.Sum(raw)
	}
	return bytes.Equal(h, root)
}
