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

// Package digest provides the pluggable cryptographic hash used to
// content-address trie and tree nodes. The default instantiation is a
// keyed, 256-bit blake2b digest; callers may swap in any other
// fixed-width Hasher, including the SNARK-friendly MiMC hash in this
// package for zk-circuit-compatible deployments.
package digest

import (
	"fmt"

	"golang.org/x/crypto/blake2b"
)

// Hasher is a deterministic, fixed-width, collision-resistant digest
// function. Every call with the same input must return a byte string
// of exactly Size() bytes.
type Hasher interface {
	Size() int
	Sum(data []byte) []byte
}

type blake2bHasher struct {
	size int
	key  []byte
}

// Keyed returns a Hasher backed by blake2b, producing digests of
// nbyte bytes. The key doubles as a domain-separation tag: passing a
// distinct key per node shape (soft/hard/leaf) prevents an attacker
// from replaying one node type's serialization as another's.
func Keyed(nbyte int, key []byte) Hasher {
	if nbyte <= 0 || nbyte > blake2b.Size {
		panic(fmt.Sprintf("digest: invalid blake2b output size %d", nbyte))
	}
	if len(key) > blake2b.Size {
		panic(fmt.Sprintf("digest: blake2b key longer than %d bytes", blake2b.Size))
	}
	return &blake2bHasher{size: nbyte, key: key}
}

// New256 returns the default unkeyed 256-bit blake2b Hasher.
func New256() Hasher {
	return Keyed(32, nil)
}

func (h *blake2bHasher) Size() int { return h.size }

func (h *blake2bHasher) Sum(data []byte) []byte {
	d, err := blake2b.New(h.size, h.key)
	if err != nil {
		// Only nbyte outside [1, 64] or a key longer than 64 bytes
		// can cause this, both rejected at construction time.
		panic(err)
	}
	d.Write(data)
	return d.Sum(nil)
}
