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

// orderfuzz repeatedly builds Monotrees from the same random key set
// in forward, shuffled and sorted order and panics if their roots ever
// diverge. Run it as a standing regression check on root determinism;
// it only stops on failure or interrupt.
package main

import (
	"bytes"
	"crypto/rand"
	"fmt"
	"math/big"
	"sort"

	"github.com/thyeem/monotree/digest"
	"github.com/thyeem/monotree/monotree"
	"github.com/thyeem/monotree/store"
)

type keyList [][]byte

func (k keyList) Len() int           { return len(k) }
func (k keyList) Less(i, j int) bool { return bytes.Compare(k[i], k[j]) < 0 }
func (k keyList) Swap(i, j int)      { k[i], k[j] = k[j], k[i] }

const keysPerAttempt = 5000

func main() {
	for attempt := 0; ; attempt++ {
		fmt.Println("attempt #", attempt)

		keys := randomKeys(keysPerAttempt, 32)

		forwardRoot := buildRoot(keys)

		shuffled := append(keyList(nil), keys...)
		shuffleInPlace(shuffled)
		shuffledRoot := buildRoot(shuffled)

		sort.Sort(keyList(keys))
		sortedRoot := buildRoot(keys)

		if !bytes.Equal(forwardRoot, shuffledRoot) {
			panic("order independence violated: forward != shuffled root")
		}
		if !bytes.Equal(forwardRoot, sortedRoot) {
			panic("order independence violated: forward != sorted root")
		}
	}
}

func buildRoot(keys keyList) []byte {
	tr := monotree.New(store.NewMemoryStore(), digest.New256())
	root := monotree.Nil
	for _, k := range keys {
		var err error
		root, err = tr.Insert(root, k, k)
		if err != nil {
			panic(err)
		}
	}
	return root
}

// randomKeys draws n independent random byte-width-wide keys. A
// collision among n << 2^(8*width) draws is astronomically unlikely,
// and insert is idempotent besides, so no dedup pass is needed.
func randomKeys(n, width int) keyList {
	keys := make(keyList, n)
	for i := range keys {
		k := make([]byte, width)
		if _, err := rand.Read(k); err != nil {
			panic(err)
		}
		keys[i] = k
	}
	return keys
}

func shuffleInPlace(keys keyList) {
	for i := len(keys) - 1; i > 0; i-- {
		j := randIntn(i + 1)
		keys[i], keys[j] = keys[j], keys[i]
	}
}

func randIntn(n int) int {
	max := big.NewInt(int64(n))
	v, err := rand.Int(rand.Reader, max)
	if err != nil {
		panic(err)
	}
	return int(v.Int64())
}
