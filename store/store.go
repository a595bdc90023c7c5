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

// Package store defines the content-addressed node-store capability
// that every trie/tree implementation in this module is built on:
// get/put/delete by hash, plus an optional buffered batch mode with
// read-your-writes semantics.
package store

import "errors"

// ErrStoreFailure wraps a backend I/O failure from Put, Get, Delete or
// CommitBatch. It is always fatal; callers should not retry blindly.
var ErrStoreFailure = errors.New("store: backend failure")

// NodeStore is a narrow capability interface over a content-addressed
// byte-string map. Implementations include an in-process MemoryStore
// and a badger-backed DiskStore; any embedded ordered key/value engine
// can be wrapped the same way.
//
// Outside batch mode every operation is immediate. Between BeginBatch
// and CommitBatch, Put and Delete are buffered in an overlay, and Get
// observes that overlay before falling through to the backend
// (read-your-writes). Implementations that don't support batching may
// make BeginBatch/CommitBatch no-ops, but then Get must still be
// immediate-consistent with preceding Put calls, which holds trivially.
type NodeStore interface {
	// Get returns the bytes previously stored under k, or nil if k is
	// absent. A nil, nil return is not an error; it is the caller's job
	// to decide whether an absent key signals trie corruption.
	Get(k []byte) ([]byte, error)

	// Put stores v under k. Writes are idempotent: re-putting the same
	// (k, v) pair already held by a content-addressed store is a no-op.
	Put(k, v []byte) error

	// Delete removes k. Core insert/lookup never call this; it exists
	// for future garbage collection of orphaned nodes.
	Delete(k []byte) error

	// BeginBatch opens a buffered write window. Puts and deletes issued
	// before the matching CommitBatch are not required to reach the
	// backend until CommitBatch returns.
	BeginBatch()

	// CommitBatch flushes the buffered window opened by BeginBatch.
	CommitBatch() error
}
