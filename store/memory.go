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

package store

import "sync"

// MemoryStore is an in-process NodeStore backed by a plain map, with
// read/write counters exposed for tests that compare access patterns
// across implementations (e.g. a path-compressed trie should issue
// strictly fewer writes than a fixed-depth tree for the same key set).
type MemoryStore struct {
	mu     sync.RWMutex
	data   map[string][]byte
	reads  int64
	writes int64

	batchMode bool
	overlay   map[string][]byte
	tombstone map[string]struct{}
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (m *MemoryStore) Get(k []byte) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reads++

	key := string(k)
	if m.batchMode {
		if _, deleted := m.tombstone[key]; deleted {
			return nil, nil
		}
		if v, ok := m.overlay[key]; ok {
			return v, nil
		}
	}
	return m.data[key], nil
}

func (m *MemoryStore) Put(k, v []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writes++

	key := string(k)
	if m.batchMode {
		delete(m.tombstone, key)
		m.overlay[key] = v
		return nil
	}
	m.data[key] = v
	return nil
}

func (m *MemoryStore) Delete(k []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := string(k)
	if m.batchMode {
		delete(m.overlay, key)
		m.tombstone[key] = struct{}{}
		return nil
	}
	delete(m.data, key)
	return nil
}

func (m *MemoryStore) BeginBatch() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.batchMode = true
	m.overlay = make(map[string][]byte)
	m.tombstone = make(map[string]struct{})
}

func (m *MemoryStore) CommitBatch() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k := range m.tombstone {
		delete(m.data, k)
	}
	for k, v := range m.overlay {
		m.data[k] = v
	}
	m.batchMode = false
	m.overlay = nil
	m.tombstone = nil
	return nil
}

// Reads returns the number of Get calls observed so far.
func (m *MemoryStore) Reads() int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.reads
}

// Writes returns the number of Put calls observed so far.
func (m *MemoryStore) Writes() int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.writes
}

// Len returns the number of committed entries, excluding anything
// still sitting in an open batch overlay.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}
