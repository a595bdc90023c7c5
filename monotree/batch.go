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

import "fmt"

// BatchInsert chunks keys/leaves into groups of batchSize and, for
// each group, wraps the sequential inserts in BeginBatch/CommitBatch.
// The final root is identical to inserting the same pairs one at a
// time, for any batchSize >= 1.
func (t *Tree) BatchInsert(root []byte, keys, leaves [][]byte, batchSize int) ([]byte, error) {
	if len(keys) != len(leaves) {
		return nil, fmt.Errorf("monotree: keys/leaves length mismatch: %d != %d", len(keys), len(leaves))
	}
	if batchSize < 1 {
		batchSize = 1
	}

	for start := 0; start < len(keys); start += batchSize {
		end := start + batchSize
		if end > len(keys) {
			end = len(keys)
		}

		t.store.BeginBatch()
		for i := start; i < end; i++ {
			newRoot, err := t.Insert(root, keys[i], leaves[i])
			if err != nil {
				return nil, err
			}
			root = newRoot
		}
		if err := t.store.CommitBatch(); err != nil {
			return nil, fmt.Errorf("monotree: %w", err)
		}
	}
	return root, nil
}
