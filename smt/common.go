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

// Package smt implements the two fixed-depth Sparse-Merkle-Tree
// baselines used to contrast against monotree's path-compressed trie:
// VanillaSMT walks all H levels unconditionally, CachedSMT short
// circuits on provably all-nil subtrees.
package smt

import (
	"errors"
	"fmt"

	"github.com/holiman/uint256"
	"github.com/thyeem/monotree/digest"
	"github.com/thyeem/monotree/store"
)

// Nil is the canonical empty-subtree sentinel, matching monotree.Nil:
// the zero-length byte string, distinct from an N-zero-byte hash.
var Nil = []byte{}

// ErrBrokenTrie mirrors monotree.ErrBrokenTrie for the SMT baselines:
// a level's stored node is missing or its value doesn't decode to two
// children.
var ErrBrokenTrie = errors.New("smt: broken trie")

// ErrShapeMismatch mirrors monotree.ErrShapeMismatch.
var ErrShapeMismatch = errors.New("smt: shape mismatch")

func isNilHash(h []byte) bool { return len(h) == 0 }

func concat(a, b []byte) []byte {
	out := make([]byte, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}

// keyBit returns bit i (0 = most significant) of an N-byte key,
// H = 8N bits wide. Keys are read through a holiman/uint256.Int rather
// than a bit-by-bit byte walk: at the default N = 32 a key saturates
// exactly one uint256 word. Keys wider than 32 bytes are unsupported.
func keyBit(key []byte, h, i int) uint {
	z := new(uint256.Int).SetBytes(key)
	return uint(z.Bit(uint(h - 1 - i)))
}

// Stored node values carry a one-byte child-presence flag ahead of the
// concatenated children. A node's hash preimage is the plain
// concatenation (a nil child contributes nothing), so a bottom-level
// node holding a single non-nil leaf would otherwise be unreadable:
// its n stored bytes give no way to tell which side the leaf sits on.
// The flag never enters the hash; every root and proof equation is
// over the bare concatenation.
const (
	flagLeft  = 0x01
	flagRight = 0x02
)

func encodeLevel(left, right []byte) []byte {
	var flag byte
	if !isNilHash(left) {
		flag |= flagLeft
	}
	if !isNilHash(right) {
		flag |= flagRight
	}
	out := make([]byte, 0, 1+len(left)+len(right))
	out = append(out, flag)
	out = append(out, left...)
	return append(out, right...)
}

// base is the shared state of both SMT variants: a store, a hash, the
// fixed key width N and tree height H = 8N.
type base struct {
	store store.NodeStore
	hash  digest.Hasher
	n     int
	h     int
}

func (b *base) checkShape(bufs ...[]byte) error {
	for _, buf := range bufs {
		if len(buf) != b.n {
			return ErrShapeMismatch
		}
	}
	return nil
}

func (b *base) readLevel(h []byte) ([]byte, []byte, error) {
	raw, err := b.store.Get(h)
	if err != nil {
		return nil, nil, err
	}
	if raw == nil {
		return nil, nil, ErrBrokenTrie
	}
	if len(raw) < 1 {
		return nil, nil, fmt.Errorf("%w: empty node value", ErrBrokenTrie)
	}
	flag, body := raw[0], raw[1:]
	left, right := Nil, Nil
	if flag&flagLeft != 0 {
		if len(body) < b.n {
			return nil, nil, fmt.Errorf("%w: node value truncated", ErrBrokenTrie)
		}
		left, body = body[:b.n], body[b.n:]
	}
	if flag&flagRight != 0 {
		if len(body) < b.n {
			return nil, nil, fmt.Errorf("%w: node value truncated", ErrBrokenTrie)
		}
		right, body = body[:b.n], body[b.n:]
	}
	if flag&^(flagLeft|flagRight) != 0 || len(body) != 0 {
		return nil, nil, fmt.Errorf("%w: malformed node value", ErrBrokenTrie)
	}
	return left, right, nil
}

func (b *base) commit(left, right []byte) ([]byte, error) {
	h := b.hash.Sum(concat(left, right))
	if err := b.store.Put(h, encodeLevel(left, right)); err != nil {
		return nil, err
	}
	return h, nil
}
