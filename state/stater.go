// Copyright (c) 2026 The VeriFund developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"sync"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/adysingh5711/VeriFund/cache"
	"github.com/adysingh5711/VeriFund/kv"
)

const defaultCacheSize = 16384

// Stater creates states over one kv store and shares the committed-read cache among them.
type Stater struct {
	db      kv.Store
	storage kv.Store
	cache   *cache.LRU

	// mu orders cache fills against commits. A value read from the store is
	// cached only if no commit landed since the read began.
	mu  sync.Mutex
	gen uint64
}

// NewStater create a new stater. cacheSize <= 0 selects the default.
func NewStater(db kv.Store, cacheSize int) *Stater {
	if cacheSize <= 0 {
		cacheSize = defaultCacheSize
	}
	c, _ := cache.NewLRU(cacheSize)
	return &Stater{
		db:      db,
		storage: StorageBucket.NewStore(db),
		cache:   c,
	}
}

// NewState create a new state object on top of committed storage.
func (s *Stater) NewState() *State {
	return newState(s, s.load)
}

// NewSnapshotState creates a state that reads one consistent view of committed
// storage, unaffected by later commits. The returned func releases the view.
func (s *Stater) NewSnapshotState() (*State, func()) {
	snap := s.db.Snapshot()
	getter := StorageBucket.NewGetter(snap)
	return newState(s, func(key storageKey) (rlp.RawValue, error) {
		return readSlot(getter, key)
	}), snap.Release
}

// Store returns the underlying kv store.
func (s *Stater) Store() kv.Store {
	return s.db
}

func (s *Stater) generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen
}

func (s *Stater) load(key storageKey) (rlp.RawValue, error) {
	gen := s.generation()
	v, err := s.cache.GetOrLoadWith(key, func(any) (any, error) {
		return readSlot(s.storage, key)
	}, func(k, v any) {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.gen == gen {
			s.cache.Add(k, v)
		}
	})
	if err != nil {
		return nil, err
	}
	return v.(rlp.RawValue), nil
}

// committed publishes the values of a written batch to the cache.
func (s *Stater) committed(changes map[storageKey]rlp.RawValue) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, v := range changes {
		s.cache.Add(k, v)
	}
	s.gen++
}

// CacheStats reports and resets hit/miss counts of the committed-read cache.
func (s *Stater) CacheStats() (hit, miss int64) {
	return s.cache.Stats()
}

func readSlot(getter kv.Getter, key storageKey) (rlp.RawValue, error) {
	val, err := getter.Get(key.bytes())
	if err != nil {
		if getter.IsNotFound(err) {
			return rlp.RawValue(nil), nil
		}
		return nil, errors.Wrap(err, "load storage")
	}
	return rlp.RawValue(val), nil
}
