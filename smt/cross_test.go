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
	"github.com/thyeem/monotree/monotree"
	"github.com/thyeem/monotree/store"
)

// TestMonotreeAgreesWithVanillaOnValues checks that the trie and the
// fixed-depth tree agree on every inserted key's value, though their
// roots differ by construction.
func TestMonotreeAgreesWithVanillaOnValues(t *testing.T) {
	hasher := digest.Keyed(4, []byte("equiv"))

	mt := monotree.New(store.NewMemoryStore(), hasher)
	vt, vroot, err := NewVanilla(store.NewMemoryStore(), hasher)
	if err != nil {
		t.Fatal(err)
	}

	r := rand.New(rand.NewSource(21))
	mroot := monotree.Nil
	var keys [][]byte
	for i := 0; i < 200; i++ {
		k := randomKeyN(r, 4)
		keys = append(keys, k)

		mroot, err = mt.Insert(mroot, k, k)
		if err != nil {
			t.Fatal(err)
		}
		vroot, err = vt.Insert(vroot, k, k)
		if err != nil {
			t.Fatal(err)
		}
	}

	for _, k := range keys {
		mv, err := mt.Get(mroot, k)
		if err != nil {
			t.Fatal(err)
		}
		vv, err := vt.Get(vroot, k)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(mv, vv) || !bytes.Equal(mv, k) {
			t.Fatalf("value mismatch for %x: monotree=%x vanilla=%x", k, mv, vv)
		}
	}
}

func randomKeyN(r *rand.Rand, n int) []byte {
	b := make([]byte, n)
	r.Read(b)
	return b
}

// TestMonotreeWritesFewerThanVanilla checks that a path-compressed
// trie issues strictly fewer backend writes than a fixed-depth tree
// for the same non-trivial key set, since its depth is bounded by
// hard-node splits rather than H.
func TestMonotreeWritesFewerThanVanilla(t *testing.T) {
	hasher := digest.Keyed(32, []byte("writes"))

	mstore := store.NewMemoryStore()
	mt := monotree.New(mstore, hasher)

	vstore := store.NewMemoryStore()
	vt, vroot, err := NewVanilla(vstore, hasher)
	if err != nil {
		t.Fatal(err)
	}
	baseline := vstore.Writes() // H writes already spent building the empty-tree chain

	r := rand.New(rand.NewSource(22))
	mroot := monotree.Nil
	for i := 0; i < 500; i++ {
		k := randomKeyN(r, 32)
		mroot, err = mt.Insert(mroot, k, k)
		if err != nil {
			t.Fatal(err)
		}
		vroot, err = vt.Insert(vroot, k, k)
		if err != nil {
			t.Fatal(err)
		}
	}
	_ = vroot

	monotreeWrites := mstore.Writes()
	vanillaWrites := vstore.Writes() - baseline
	if monotreeWrites >= vanillaWrites {
		t.Fatalf("expected monotree writes (%d) < vanilla SMT writes (%d)", monotreeWrites, vanillaWrites)
	}
}
