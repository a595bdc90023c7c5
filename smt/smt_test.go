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
	"math/rand"
	"testing"

	"github.com/thyeem/monotree/digest"
	"github.com/thyeem/monotree/store"
)

func randomKey(r *rand.Rand, n int) []byte {
	b := make([]byte, n)
	r.Read(b)
	return b
}

func TestVanillaEmptyTreeGet(t *testing.T) {
	tr, root, err := NewVanilla(store.NewMemoryStore(), digest.Keyed(4, []byte("v")))
	if err != nil {
		t.Fatal(err)
	}
	v, err := tr.Get(root, make([]byte, 4))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(v, Nil) {
		t.Fatalf("Get on empty tree = %x, want Nil", v)
	}
}

func TestVanillaRoundTripAndProof(t *testing.T) {
	tr, root, err := NewVanilla(store.NewMemoryStore(), digest.Keyed(4, []byte("v")))
	if err != nil {
		t.Fatal(err)
	}
	r := rand.New(rand.NewSource(11))

	var keys [][]byte
	for i := 0; i < 30; i++ {
		k := randomKey(r, 4)
		keys = append(keys, k)
		newRoot, err := tr.Insert(root, k, k)
		if err != nil {
			t.Fatal(err)
		}
		root = newRoot
	}
	for _, k := range keys {
		v, err := tr.Get(root, k)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(v, k) {
			t.Fatalf("Get(%x) = %x, want %x", k, v, k)
		}
		proof, err := tr.Prove(root, k)
		if err != nil {
			t.Fatal(err)
		}
		if !tr.Verify(root, k, v, proof) {
			t.Fatalf("proof for %x did not verify", k)
		}
	}
}

func TestCachedMatchesVanilla(t *testing.T) {
	hasher := digest.Keyed(4, []byte("cmp"))
	vanilla, vroot, err := NewVanilla(store.NewMemoryStore(), hasher)
	if err != nil {
		t.Fatal(err)
	}
	cached, croot, err := NewCached(store.NewMemoryStore(), hasher)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(vroot, croot) {
		t.Fatalf("empty-tree roots differ: vanilla=%x cached=%x", vroot, croot)
	}

	r := rand.New(rand.NewSource(12))
	var keys [][]byte
	for i := 0; i < 40; i++ {
		keys = append(keys, randomKey(r, 4))
	}
	for _, k := range keys {
		var err error
		vroot, err = vanilla.Insert(vroot, k, k)
		if err != nil {
			t.Fatal(err)
		}
		croot, err = cached.Insert(croot, k, k)
		if err != nil {
			t.Fatal(err)
		}
	}
	if !bytes.Equal(vroot, croot) {
		t.Fatalf("roots diverge after inserts: vanilla=%x cached=%x", vroot, croot)
	}

	for _, k := range keys {
		vv, err := vanilla.Get(vroot, k)
		if err != nil {
			t.Fatal(err)
		}
		cv, err := cached.Get(croot, k)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(vv, cv) {
			t.Fatalf("value mismatch for %x: vanilla=%x cached=%x", k, vv, cv)
		}

		if !vanilla.Verify(vroot, k, vv, mustProve(t, vanilla.Prove(vroot, k))) {
			t.Fatalf("vanilla proof for %x did not verify", k)
		}
		cp, err := cached.Prove(croot, k)
		if err != nil {
			t.Fatal(err)
		}
		if !cached.Verify(croot, k, cv, cp) {
			t.Fatalf("cached proof for %x did not verify", k)
		}
	}
}

func mustProve(t *testing.T, proof [][]byte, err error) [][]byte {
	t.Helper()
	if err != nil {
		t.Fatal(err)
	}
	return proof
}

func TestCachedProofShorterThanVanillaForSparseKeys(t *testing.T) {
	hasher := digest.Keyed(4, []byte("sparse"))
	cached, root, err := NewCached(store.NewMemoryStore(), hasher)
	if err != nil {
		t.Fatal(err)
	}
	k := make([]byte, 4)
	root, err = cached.Insert(root, k, k)
	if err != nil {
		t.Fatal(err)
	}

	// A key sharing no prefix with k at the root should need a proof
	// covering only the shallow levels before the nilchain takes over.
	other := []byte{0xff, 0xff, 0xff, 0xff}
	proof, err := cached.Prove(root, other)
	if err != nil {
		t.Fatal(err)
	}
	if len(proof) >= cached.H() {
		t.Fatalf("expected a truncated proof shorter than H=%d, got %d", cached.H(), len(proof))
	}
	v, err := cached.Get(root, other)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(v, Nil) {
		t.Fatalf("Get(other) = %x, want Nil", v)
	}
	if !cached.Verify(root, other, Nil, proof) {
		t.Fatalf("truncated proof for absent key did not verify")
	}
}

func TestShapeMismatch(t *testing.T) {
	tr, root, err := NewVanilla(store.NewMemoryStore(), digest.Keyed(4, []byte("shape")))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := tr.Get(root, []byte("too-short")); err != ErrShapeMismatch {
		t.Fatalf("expected ErrShapeMismatch, got %v", err)
	}
}
