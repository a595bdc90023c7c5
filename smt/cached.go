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

// Cached is a Vanilla tree augmented with a precomputed nilchain: the
// sequence of all-nil subtree roots at every level, letting lookups,
// proofs and inserts short-circuit once the descent provably enters an
// empty subtree.
type Cached struct {
	base
	nilchain [][]byte // nilchain[h] = Nil; nilchain[0] = empty-tree root
}

// NewCached builds nilchain[H] = Nil, nilchain[i] = H(nilchain[i+1] ‖
// nilchain[i+1]), persisting each pair, and returns the tree together
// with nilchain[0], the empty tree's root.
func NewCached(s store.NodeStore, hasher digest.Hasher) (*Cached, []byte, error) {
	n := hasher.Size()
	h := 8 * n
	t := &Cached{base: base{store: s, hash: hasher, n: n, h: h}}

	chain := make([][]byte, h+1)
	chain[h] = Nil
	for i := h - 1; i >= 0; i-- {
		next, err := t.commit(chain[i+1], chain[i+1])
		if err != nil {
			return nil, nil, err
		}
		chain[i] = next
	}
	t.nilchain = chain
	return t, chain[0], nil
}

// N returns the fixed hash/key width.
func (t *Cached) N() int { return t.n }

// H returns the tree height in bits (8N).
func (t *Cached) H() int { return t.h }

// Get walks down from root, returning Nil the instant the current node
// matches the level's nilchain entry instead of reading the store for
// the remainder of the (all-nil) subtree.
func (t *Cached) Get(root, key []byte) ([]byte, error) {
	if err := t.checkShape(key); err != nil {
		return nil, err
	}
	cur := root
	for i := 0; i < t.h; i++ {
		if bytes.Equal(cur, t.nilchain[i]) {
			return Nil, nil
		}
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

// Prove returns the sibling hashes down to the point where the
// descent enters a provably all-nil subtree, omitting every deeper
// level.
func (t *Cached) Prove(root, key []byte) ([][]byte, error) {
	if err := t.checkShape(key); err != nil {
		return nil, err
	}
	var sibs [][]byte
	cur := root
	for i := 0; i < t.h; i++ {
		if bytes.Equal(cur, t.nilchain[i]) {
			break
		}
		left, right, err := t.readLevel(cur)
		if err != nil {
			return nil, err
		}
		if keyBit(key, t.h, i) == 1 {
			sibs = append(sibs, left)
			cur = right
		} else {
			sibs = append(sibs, right)
			cur = left
		}
	}
	return sibs, nil
}

// pad extends a possibly-truncated proof of length m < H out to H
// entries, filling levels [m, H) with nilchain[i+1]: inside a provably
// all-nil subtree both children at every level equal that level's
// nilchain entry.
func (t *Cached) pad(proof [][]byte) [][]byte {
	full := make([][]byte, t.h)
	copy(full, proof)
	for i := len(proof); i < t.h; i++ {
		full[i] = t.nilchain[i+1]
	}
	return full
}

// Insert collects a (possibly truncated) proof, pads missing upper
// siblings from nilchain, and rehashes leaf to root exactly as Vanilla
// does, writing every node on the new path.
func (t *Cached) Insert(root, key, leaf []byte) ([]byte, error) {
	if err := t.checkShape(key, leaf); err != nil {
		return nil, err
	}
	proof, err := t.Prove(root, key)
	if err != nil {
		return nil, err
	}
	full := t.pad(proof)

	h := leaf
	for i := t.h - 1; i >= 0; i-- {
		sib := full[i]
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

// Verify pads a possibly-truncated proof with nilchain entries and
// rehashes exactly as Insert does, without touching the store.
func (t *Cached) Verify(root, key, leaf []byte, proof [][]byte) bool {
	if len(proof) > t.h {
		return false
	}
	full := t.pad(proof)
	h := append([]byte(nil), leaf...)
	for i := t.h - 1; i >= 0; i-- {
		sib := full[i]
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
