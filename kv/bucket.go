// Copyright (c) 2026 The VeriFund developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package kv

import (
	"sync"

	"github.com/syndtr/goleveldb/leveldb/util"
)

// Bucket is a key prefix that partitions one store into logical namespaces.
// The state trie, the transaction log and the genesis marker each own one.
type Bucket string

var keyPool = sync.Pool{
	New: func() any { return new([]byte) },
}

// withKey calls fn with the bucket-prefixed form of key. The prefixed slice
// is pooled and must not be retained by fn.
func (b Bucket) withKey(key []byte, fn func(full []byte)) {
	p := keyPool.Get().(*[]byte)
	*p = append(append((*p)[:0], b...), key...)
	fn(*p)
	keyPool.Put(p)
}

type bucketGetter struct {
	b   Bucket
	src Getter
}

func (g *bucketGetter) Get(key []byte) (val []byte, err error) {
	g.b.withKey(key, func(full []byte) { val, err = g.src.Get(full) })
	return
}

func (g *bucketGetter) Has(key []byte) (has bool, err error) {
	g.b.withKey(key, func(full []byte) { has, err = g.src.Has(full) })
	return
}

func (g *bucketGetter) IsNotFound(err error) bool { return g.src.IsNotFound(err) }

type bucketPutter struct {
	b   Bucket
	dst Putter
}

func (p *bucketPutter) Put(key, val []byte) (err error) {
	p.b.withKey(key, func(full []byte) { err = p.dst.Put(full, val) })
	return
}

func (p *bucketPutter) Delete(key []byte) (err error) {
	p.b.withKey(key, func(full []byte) { err = p.dst.Delete(full) })
	return
}

// NewGetter scopes reads of src to the bucket.
func (b Bucket) NewGetter(src Getter) Getter {
	return &bucketGetter{b, src}
}

// NewPutter scopes writes to dst to the bucket.
func (b Bucket) NewPutter(dst Putter) Putter {
	return &bucketPutter{b, dst}
}

// NewBulk scopes a batch to the bucket. Several buckets may share the
// same underlying batch, which is still flushed once by Write.
func (b Bucket) NewBulk(src Bulk) Bulk {
	return &struct {
		Putter
		WriteFunc
	}{b.NewPutter(src), src.Write}
}

// NewStore scopes every operation of src to the bucket.
func (b Bucket) NewStore(src Store) Store {
	return &bucketStore{
		bucketGetter: bucketGetter{b, src},
		bucketPutter: bucketPutter{b, src},
		src:          src,
	}
}

type bucketStore struct {
	bucketGetter
	bucketPutter
	src Store
}

func (s *bucketStore) Snapshot() Snapshot {
	snap := s.src.Snapshot()
	return &struct {
		Getter
		ReleaseFunc
	}{s.bucketGetter.b.NewGetter(snap), snap.Release}
}

func (s *bucketStore) Bulk() Bulk {
	return s.bucketGetter.b.NewBulk(s.src.Bulk())
}

// Iterate walks the keys of the bucket within r. Keys are yielded without
// the bucket prefix; an empty limit means the end of the bucket.
func (s *bucketStore) Iterate(r Range) Iterator {
	b := s.bucketGetter.b
	scoped := Range{Start: append([]byte(b), r.Start...)}
	if len(r.Limit) == 0 {
		scoped.Limit = util.BytesPrefix([]byte(b)).Limit
	} else {
		scoped.Limit = append([]byte(b), r.Limit...)
	}
	return &bucketIterator{Iterator: s.src.Iterate(scoped), prefixLen: len(b)}
}

type bucketIterator struct {
	Iterator
	prefixLen int
}

func (it *bucketIterator) Key() []byte { return it.Iterator.Key()[it.prefixLen:] }
