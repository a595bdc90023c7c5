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

import (
	"sync"

	"github.com/VictoriaMetrics/fastcache"
	badger "github.com/dgraph-io/badger/v2"
	lru "github.com/hashicorp/golang-lru"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
)

var (
	diskGetTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "monotree",
		Subsystem: "diskstore",
		Name:      "get_total",
		Help:      "Number of Get calls served by DiskStore, partitioned by hit source.",
	}, []string{"source"})

	diskPutTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "monotree",
		Subsystem: "diskstore",
		Name:      "put_total",
		Help:      "Number of Put calls committed to the badger backend.",
	})

	diskBatchTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "monotree",
		Subsystem: "diskstore",
		Name:      "batch_commits_total",
		Help:      "Number of CommitBatch calls that flushed a buffered write window.",
	})
)

func init() {
	prometheus.MustRegister(diskGetTotal, diskPutTotal, diskBatchTotal)
}

// DiskStore is a NodeStore backed by an embedded badger LSM.
// Write-buffer sizing and compaction tuning are badger's own concern
// and are not re-exposed here.
//
// Two caches sit in front of the backend: cleanCache is a long-lived
// LRU of hash -> node bytes for committed reads (content-addressed data
// never goes stale, so it never needs invalidation), and batchCache is
// a fastcache instance scoped to the lifetime of one open batch,
// serving as the read-through cache a batch keeps over the backing
// store.
type DiskStore struct {
	db  *badger.DB
	log zerolog.Logger

	cleanCache *lru.Cache

	// reads collapses concurrent cache-miss lookups for the same hash
	// into a single badger transaction; content-addressed data is
	// immutable once written, so sharing one in-flight read across
	// callers is always correct.
	reads singleflight.Group

	mu         sync.Mutex
	batchMode  bool
	overlay    map[string][]byte
	tombstone  map[string]struct{}
	batchCache *fastcache.Cache
}

// DiskStoreOption configures a DiskStore at construction time.
type DiskStoreOption func(*DiskStore)

// WithCleanCacheSize overrides the default clean-node LRU capacity.
func WithCleanCacheSize(n int) DiskStoreOption {
	return func(d *DiskStore) {
		c, err := lru.New(n)
		if err != nil {
			panic(err)
		}
		d.cleanCache = c
	}
}

// WithLogger overrides the default zerolog logger.
func WithLogger(l zerolog.Logger) DiskStoreOption {
	return func(d *DiskStore) { d.log = l }
}

const defaultCleanCacheSize = 1 << 16 // entries

// OpenDiskStore opens (or creates) a badger database rooted at dir.
func OpenDiskStore(dir string, opts ...DiskStoreOption) (*DiskStore, error) {
	db, err := badger.Open(badger.DefaultOptions(dir).WithLogger(nil))
	if err != nil {
		return nil, err
	}
	clean, err := lru.New(defaultCleanCacheSize)
	if err != nil {
		return nil, err
	}
	d := &DiskStore{
		db:         db,
		log:        log.With().Str("component", "diskstore").Logger(),
		cleanCache: clean,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// Close releases the underlying badger handle.
func (d *DiskStore) Close() error {
	return d.db.Close()
}

func (d *DiskStore) Get(k []byte) ([]byte, error) {
	// The nil (empty) hash never names a stored node; badger also
	// rejects empty keys outright.
	if len(k) == 0 {
		return nil, nil
	}
	key := string(k)

	d.mu.Lock()
	inBatch := d.batchMode
	if inBatch {
		if _, deleted := d.tombstone[key]; deleted {
			d.mu.Unlock()
			diskGetTotal.WithLabelValues("tombstone").Inc()
			return nil, nil
		}
		if v, ok := d.overlay[key]; ok {
			d.mu.Unlock()
			diskGetTotal.WithLabelValues("overlay").Inc()
			return v, nil
		}
		if v := d.batchCache.Get(nil, k); v != nil {
			d.mu.Unlock()
			diskGetTotal.WithLabelValues("batch_cache").Inc()
			return v, nil
		}
	}
	d.mu.Unlock()

	if v, ok := d.cleanCache.Get(key); ok {
		diskGetTotal.WithLabelValues("clean_cache").Inc()
		return v.([]byte), nil
	}

	result, err, _ := d.reads.Do(key, func() (interface{}, error) {
		var val []byte
		err := d.db.View(func(txn *badger.Txn) error {
			item, err := txn.Get(k)
			if err == badger.ErrKeyNotFound {
				return nil
			}
			if err != nil {
				return err
			}
			return item.Value(func(v []byte) error {
				val = append([]byte(nil), v...)
				return nil
			})
		})
		return val, err
	})
	if err != nil {
		d.log.Error().Err(err).Msg("badger read failed")
		return nil, ErrStoreFailure
	}
	val, _ := result.([]byte)

	diskGetTotal.WithLabelValues("backend").Inc()
	if val != nil {
		d.cleanCache.Add(key, val)
	}
	if inBatch && val != nil {
		d.mu.Lock()
		d.batchCache.Set(k, val)
		d.mu.Unlock()
	}
	return val, nil
}

func (d *DiskStore) Put(k, v []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	key := string(k)
	if d.batchMode {
		delete(d.tombstone, key)
		d.overlay[key] = v
		d.batchCache.Set(k, v)
		return nil
	}

	if err := d.db.Update(func(txn *badger.Txn) error {
		return txn.Set(k, v)
	}); err != nil {
		d.log.Error().Err(err).Msg("badger write failed")
		return ErrStoreFailure
	}
	diskPutTotal.Inc()
	d.cleanCache.Add(key, v)
	return nil
}

func (d *DiskStore) Delete(k []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	key := string(k)
	if d.batchMode {
		delete(d.overlay, key)
		d.tombstone[key] = struct{}{}
		d.batchCache.Del(k)
		return nil
	}

	if err := d.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(k)
	}); err != nil {
		d.log.Error().Err(err).Msg("badger delete failed")
		return ErrStoreFailure
	}
	d.cleanCache.Remove(key)
	return nil
}

func (d *DiskStore) BeginBatch() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.batchMode = true
	d.overlay = make(map[string][]byte)
	d.tombstone = make(map[string]struct{})
	d.batchCache = fastcache.New(32 * 1024 * 1024)
}

func (d *DiskStore) CommitBatch() error {
	d.mu.Lock()
	overlay, tombstone := d.overlay, d.tombstone
	d.mu.Unlock()

	err := d.db.Update(func(txn *badger.Txn) error {
		for k := range tombstone {
			if err := txn.Delete([]byte(k)); err != nil {
				return err
			}
		}
		for k, v := range overlay {
			if err := txn.Set([]byte(k), v); err != nil {
				return err
			}
		}
		return nil
	})

	d.mu.Lock()
	defer d.mu.Unlock()
	if err != nil {
		d.log.Error().Err(err).Msg("badger batch commit failed")
		return ErrStoreFailure
	}
	for k := range tombstone {
		d.cleanCache.Remove(k)
	}
	for k, v := range overlay {
		d.cleanCache.Add(k, v)
	}
	d.batchMode = false
	d.overlay = nil
	d.tombstone = nil
	d.batchCache.Reset()
	d.batchCache = nil
	diskBatchTotal.Inc()
	return nil
}
