package keyValueDb

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/cockroachdb/pebble"
)

// PebbleDB is a pebble-backed implementation of DB, used as the module's
// persistent key-value backend.
type PebbleDB struct {
	mu sync.RWMutex
	db *pebble.DB
}

// PebbleOptions configures OpenPebble.
type PebbleOptions struct {
	Path            string
	CacheBytes      int64
	CreateIfMissing bool
}

// DefaultPebbleOptions returns sensible defaults for a single-node deployment.
func DefaultPebbleOptions(path string) PebbleOptions {
	return PebbleOptions{
		Path:            path,
		CacheBytes:      64 << 20,
		CreateIfMissing: true,
	}
}

// OpenPebble opens (creating if requested) a pebble-backed DB at opts.Path.
func OpenPebble(opts PebbleOptions) (*PebbleDB, error) {
	if opts.CreateIfMissing {
		if err := os.MkdirAll(opts.Path, 0o755); err != nil {
			return nil, fmt.Errorf("keyValueDb: create dir %s: %w", opts.Path, err)
		}
	}

	pebbleOpts := &pebble.Options{
		Cache: pebble.NewCache(opts.CacheBytes),
	}

	db, err := pebble.Open(opts.Path, pebbleOpts)
	if err != nil {
		return nil, fmt.Errorf("keyValueDb: open pebble at %s: %w", opts.Path, err)
	}

	return &PebbleDB{db: db}, nil
}

// Close releases the underlying pebble handle.
func (p *PebbleDB) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.db == nil {
		return nil
	}
	err := p.db.Close()
	p.db = nil
	return err
}

func (p *PebbleDB) Read(ctx context.Context, key []byte) ([]byte, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.db == nil {
		return nil, ErrDBClosed
	}

	value, closer, err := p.db.Get(key)
	if err != nil {
		if err == pebble.ErrNotFound {
			return nil, ErrKeyNotFound
		}
		return nil, err
	}
	defer closer.Close()

	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

func (p *PebbleDB) Write(ctx context.Context, key []byte, value []byte) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.db == nil {
		return ErrDBClosed
	}
	return p.db.Set(key, value, pebble.Sync)
}

func (p *PebbleDB) Delete(ctx context.Context, key []byte) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.db == nil {
		return ErrDBClosed
	}
	return p.db.Delete(key, pebble.Sync)
}

func (p *PebbleDB) Batch(ctx context.Context, ops []BatchOperation) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.db == nil {
		return ErrDBClosed
	}

	batch := p.db.NewBatch()
	defer batch.Close()

	for _, op := range ops {
		switch op.Type {
		case BatchPut:
			if err := batch.Set(op.Key, op.Value, nil); err != nil {
				return fmt.Errorf("%w: %v", ErrBatchOperationFailed, err)
			}
		case BatchDelete:
			if err := batch.Delete(op.Key, nil); err != nil {
				return fmt.Errorf("%w: %v", ErrBatchOperationFailed, err)
			}
		}
	}

	return batch.Commit(pebble.Sync)
}

func (p *PebbleDB) Iterator(ctx context.Context, start, end []byte) (Iterator, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.db == nil {
		return nil, ErrDBClosed
	}

	it, err := p.db.NewIter(&pebble.IterOptions{LowerBound: start, UpperBound: end})
	if err != nil {
		return nil, err
	}
	it.First()
	return &pebbleIterator{iter: it, started: true}, nil
}

// Snapshot returns a point-in-time, read-only view of the database. The
// returned snapshot must be closed by the caller.
func (p *PebbleDB) Snapshot() (*PebbleSnapshot, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.db == nil {
		return nil, ErrDBClosed
	}
	return &PebbleSnapshot{snap: p.db.NewSnapshot()}, nil
}

// PebbleSnapshot is a read-only, point-in-time view backed by a
// pebble.Snapshot. It never permits writes.
type PebbleSnapshot struct {
	mu   sync.Mutex
	snap *pebble.Snapshot
}

// Read looks up key as of the moment the snapshot was taken.
func (s *PebbleSnapshot) Read(ctx context.Context, key []byte) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snap == nil {
		return nil, ErrDBClosed
	}

	value, closer, err := s.snap.Get(key)
	if err != nil {
		if err == pebble.ErrNotFound {
			return nil, ErrKeyNotFound
		}
		return nil, err
	}
	defer closer.Close()

	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

// Close releases the snapshot.
func (s *PebbleSnapshot) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snap == nil {
		return nil
	}
	err := s.snap.Close()
	s.snap = nil
	return err
}

type pebbleIterator struct {
	iter    *pebble.Iterator
	started bool
	err     error
}

func (it *pebbleIterator) Next() bool {
	if it.started {
		it.started = false
		return it.iter.Valid()
	}
	return it.iter.Next()
}

func (it *pebbleIterator) Key() []byte   { return it.iter.Key() }
func (it *pebbleIterator) Value() []byte { return it.iter.Value() }
func (it *pebbleIterator) Error() error  { return it.iter.Error() }
func (it *pebbleIterator) Close() error  { return it.iter.Close() }

var _ DB = (*PebbleDB)(nil)
