// Copyright (c) 2026 The VeriFund developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package cache

import (
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru"
)

// LRU is a fixed size LRU cache which also counts hits and misses.
type LRU struct {
	*lru.Cache
	hit, miss atomic.Int64
}

// NewLRU create a LRU cache instance.
// maxSize should be > 0, or an error returned.
func NewLRU(maxSize int) (*LRU, error) {
	c, err := lru.New(maxSize)
	if err != nil {
		return nil, err
	}
	return &LRU{Cache: c}, nil
}

// Loader defines loader to load value.
type Loader func(key any) (any, error)

// GetOrLoad first try to get from cache, do load if missed.
func (l *LRU) GetOrLoad(key any, loader Loader) (any, error) {
	return l.GetOrLoadWith(key, loader, func(key, val any) { l.Add(key, val) })
}

// GetOrLoadWith is like GetOrLoad, but a missed value enters the cache only
// through store, which may drop it.
func (l *LRU) GetOrLoadWith(key any, loader Loader, store func(key, val any)) (any, error) {
	if v, ok := l.Get(key); ok {
		l.hit.Add(1)
		return v, nil
	}
	l.miss.Add(1)
	v, err := loader(key)
	if err != nil {
		return nil, err
	}
	store(key, v)
	return v, nil
}

// Stats returns the hit and miss counts and resets them.
func (l *LRU) Stats() (hit, miss int64) {
	return l.hit.Swap(0), l.miss.Swap(0)
}
