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

// benchs times and counts store writes for inserting into an existing
// Monotree against an existing VanillaSMT built from the same keys.
// The write counters matter as much as the wall clock: a
// path-compressed trie should beat the fixed-depth tree on both.
package main

import (
	"crypto/rand"
	"fmt"
	"os"
	"runtime/pprof"
	"time"

	"github.com/thyeem/monotree/digest"
	"github.com/thyeem/monotree/monotree"
	"github.com/thyeem/monotree/smt"
	"github.com/thyeem/monotree/store"
)

func main() {
	benchmarkInsertInExisting()
}

func benchmarkInsertInExisting() {
	f, _ := os.Create("cpu.prof")
	g, _ := os.Create("mem.prof")
	_ = pprof.StartCPUProfile(f)
	defer pprof.StopCPUProfile()
	defer func() { _ = pprof.WriteHeapProfile(g) }()

	const n = 100000      // existing leaves in each tree
	const toInsert = 10000 // leaves inserted afterwards, timed

	hasher := digest.New256()
	keys := make([][]byte, n)
	moreKeys := make([][]byte, toInsert)

	for round := 0; round < 4; round++ {
		for i := 0; i < n+toInsert; i++ {
			key := make([]byte, hasher.Size())
			if _, err := rand.Read(key); err != nil {
				panic(err)
			}
			if i < n {
				keys[i] = key
			} else {
				moreKeys[i-n] = key
			}
		}
		fmt.Printf("round %d: generated key set\n", round)

		mstore := store.NewMemoryStore()
		mt := monotree.New(mstore, hasher)
		mroot := monotree.Nil

		vstore := store.NewMemoryStore()
		vt, vroot, err := smt.NewVanilla(vstore, hasher)
		if err != nil {
			panic(err)
		}
		baselineVanillaWrites := vstore.Writes()

		for _, k := range keys {
			if mroot, err = mt.Insert(mroot, k, k); err != nil {
				panic(err)
			}
			if vroot, err = vt.Insert(vroot, k, k); err != nil {
				panic(err)
			}
		}

		start := time.Now()
		for _, k := range moreKeys {
			if mroot, err = mt.Insert(mroot, k, k); err != nil {
				panic(err)
			}
		}
		monotreeElapsed := time.Since(start)

		start = time.Now()
		for _, k := range moreKeys {
			if vroot, err = vt.Insert(vroot, k, k); err != nil {
				panic(err)
			}
		}
		vanillaElapsed := time.Since(start)

		fmt.Printf("monotree: took %v and %d store writes to insert %d leaves\n",
			monotreeElapsed, mstore.Writes(), toInsert)
		fmt.Printf("vanillaSMT: took %v and %d store writes to insert %d leaves\n",
			vanillaElapsed, vstore.Writes()-baselineVanillaWrites, toInsert)
	}
}
