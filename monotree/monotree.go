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

// Package monotree implements the path-compressed binary Merkle trie:
// a radix tree over fixed-width hash keys whose edges are labeled with
// variable-length bit strings and whose nodes are content-addressed.
package monotree

import (
	"fmt"

	"github.com/thyeem/monotree/bitstring"
	"github.com/thyeem/monotree/digest"
	"github.com/thyeem/monotree/node"
	"github.com/thyeem/monotree/store"
)

// Nil is the canonical empty-tree / no-subtree root: the zero-length
// byte string, distinct from an N-zero-byte hash.
var Nil = []byte{}

func isNilHash(h []byte) bool { return len(h) == 0 }

// Tree binds a NodeStore and a Hash to a fixed key width N. A Tree
// carries no root of its own; callers hold opaque root hashes and pass
// them into Get/Insert/Prove, so one Tree can serve many independent
// versioned roots backed by the same store.
type Tree struct {
	store store.NodeStore
	hash  digest.Hasher
	n     int
}

// New binds a NodeStore and Hasher into a Tree whose keys and leaves
// must be exactly hasher.Size() bytes wide.
func New(s store.NodeStore, h digest.Hasher) *Tree {
	return &Tree{store: s, hash: h, n: h.Size()}
}

// N returns the fixed hash/key width this tree was constructed with.
func (t *Tree) N() int { return t.n }

func (t *Tree) checkShape(bufs ...[]byte) error {
	for _, b := range bufs {
		if len(b) != t.n {
			return ErrShapeMismatch
		}
	}
	return nil
}

// Get looks up key under root, returning the stored leaf hash, or Nil
// if the key is absent.
func (t *Tree) Get(root, key []byte) ([]byte, error) {
	if err := t.checkShape(key); err != nil {
		return nil, err
	}
	if isNilHash(root) {
		return Nil, nil
	}

	h := root
	bits := bitstring.FromBytes(key)
	for {
		d, err := t.read(h)
		if err != nil {
			return nil, err
		}
		isRight := bits.IsRight()
		childHash, edgeBits, _, _ := d.Select(isRight)
		k := bitstring.LCP(edgeBits, bits)

		switch {
		case k == bits.Len():
			return childHash, nil
		case k == edgeBits.Len():
			h = childHash
			bits = bits.Slice(k)
		default:
			return Nil, nil
		}
	}
}

// Insert binds key to leaf under root, returning the new root hash.
// Root may be Nil to start a fresh tree.
func (t *Tree) Insert(root, key, leaf []byte) ([]byte, error) {
	if err := t.checkShape(key, leaf); err != nil {
		return nil, err
	}
	bits := bitstring.FromBytes(key)
	if isNilHash(root) {
		return t.putSoft(leaf, bits)
	}
	return t.insert(root, bits, leaf)
}

func (t *Tree) insert(h []byte, bits bitstring.BitString, leaf []byte) ([]byte, error) {
	d, err := t.read(h)
	if err != nil {
		return nil, err
	}
	isRight := bits.IsRight()
	childHash, edgeBits, sibHash, sibEdge := d.Select(isRight)
	k := bitstring.LCP(edgeBits, bits)

	switch {
	case k == 0:
		// A. full mismatch: old edge becomes the sibling of the new one.
		return t.putNode(leaf, bits, childHash, edgeBits)
	case k == bits.Len():
		// B. full key consumed: replace the subtree under the same edge.
		return t.putNode(leaf, edgeBits, sibHash, sibEdge)
	case k == edgeBits.Len():
		// C. edge fully consumed: recurse past it.
		newChild, err := t.insert(childHash, bits.Slice(k), leaf)
		if err != nil {
			return nil, err
		}
		return t.putNode(newChild, edgeBits, sibHash, sibEdge)
	default:
		// D. partial mismatch: split the edge at k.
		inner, err := t.putNode(childHash, edgeBits.Slice(k), leaf, bits.Slice(k))
		if err != nil {
			return nil, err
		}
		return t.putNode(inner, edgeBits.Prefix(k), sibHash, sibEdge)
	}
}

// read fetches and decodes the node at h, translating store absence
// and codec failure into ErrBrokenTrie.
func (t *Tree) read(h []byte) (node.Decoded, error) {
	raw, err := t.store.Get(h)
	if err != nil {
		return node.Decoded{}, fmt.Errorf("monotree: %w", err)
	}
	if raw == nil {
		return node.Decoded{}, ErrBrokenTrie
	}
	d, err := node.Decode(raw, t.n)
	if err != nil {
		return node.Decoded{}, fmt.Errorf("%w: %v", ErrBrokenTrie, err)
	}
	return d, nil
}

// putNode emits a soft node when the second side is absent, otherwise
// a hard node with the two sides ordered by leading bit.
func (t *Tree) putNode(hash1 []byte, edge1 bitstring.BitString, hash2 []byte, edge2 bitstring.BitString) ([]byte, error) {
	if isNilHash(hash2) {
		return t.putSoft(hash1, edge1)
	}

	var leftHash, rightHash []byte
	var leftEdge, rightEdge bitstring.BitString
	if edge1.IsRight() {
		leftHash, leftEdge = hash2, edge2
		rightHash, rightEdge = hash1, edge1
	} else {
		leftHash, leftEdge = hash1, edge1
		rightHash, rightEdge = hash2, edge2
	}

	raw := node.EncodeHard(leftHash, leftEdge, rightEdge, rightHash)
	return t.commit(raw)
}

func (t *Tree) putSoft(childHash []byte, edge bitstring.BitString) ([]byte, error) {
	raw := node.EncodeSoft(childHash, edge)
	return t.commit(raw)
}

func (t *Tree) commit(raw []byte) ([]byte, error) {
	h := t.hash.Sum(raw)
	if err := t.store.Put(h, raw); err != nil {
		return nil, fmt.Errorf("monotree: %w", err)
	}
	return h, nil
}
