// Copyright (c) 2026 The VeriFund developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"errors"
	"sync"
	"testing"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adysingh5711/VeriFund/kv"
	"github.com/adysingh5711/VeriFund/lvldb"
	"github.com/adysingh5711/VeriFund/vf"
)

func newStater(t *testing.T) *Stater {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewStater(db, 0)
}

func TestStateReadWrite(t *testing.T) {
	st := newStater(t).NewState()

	addr := vf.BytesToAddress([]byte("account1"))
	key := vf.BytesToBytes32([]byte("key"))

	v, err := st.GetStorage(addr, key)
	assert.NoError(t, err)
	assert.True(t, v.IsZero())

	value := vf.BytesToBytes32([]byte("value"))
	st.SetStorage(addr, key, value)

	v, err = st.GetStorage(addr, key)
	assert.NoError(t, err)
	assert.Equal(t, value, v)

	st.SetStorage(addr, key, vf.Bytes32{})
	raw, err := st.GetRawStorage(addr, key)
	assert.NoError(t, err)
	assert.Empty(t, raw)
}

func TestStateStructuredStorage(t *testing.T) {
	st := newStater(t).NewState()
	addr := vf.BytesToAddress([]byte("a"))
	key := vf.BytesToBytes32([]byte("list"))

	type pair struct {
		A uint64
		B string
	}
	require.NoError(t, st.EncodeStorage(addr, key, func() ([]byte, error) {
		return rlp.EncodeToBytes(&pair{1, "x"})
	}))

	var got pair
	require.NoError(t, st.DecodeStorage(addr, key, func(raw []byte) error {
		return rlp.DecodeBytes(raw, &got)
	}))
	assert.Equal(t, pair{1, "x"}, got)

	raw, _ := st.GetRawStorage(addr, key)
	h, err := st.GetStorage(addr, key)
	assert.NoError(t, err)
	assert.Equal(t, vf.Blake2b(raw), h)

	err = st.EncodeStorage(addr, key, func() ([]byte, error) { return nil, errors.New("bad") })
	var stateErr *Error
	assert.ErrorAs(t, err, &stateErr)
}

func TestStateRevert(t *testing.T) {
	st := newStater(t).NewState()
	addr := vf.BytesToAddress([]byte("a"))
	key := vf.BytesToBytes32([]byte("k"))

	st.SetStorage(addr, key, vf.BytesToBytes32([]byte{1}))
	chk := st.NewCheckpoint()
	st.SetStorage(addr, key, vf.BytesToBytes32([]byte{2}))
	st.RevertTo(chk)

	v, err := st.GetStorage(addr, key)
	assert.NoError(t, err)
	assert.Equal(t, vf.BytesToBytes32([]byte{1}), v)

	// reverting everything still leaves a writable state
	st.RevertTo(0)
	st.SetStorage(addr, key, vf.BytesToBytes32([]byte{3}))
	v, _ = st.GetStorage(addr, key)
	assert.Equal(t, vf.BytesToBytes32([]byte{3}), v)
}

func TestStageCommit(t *testing.T) {
	stater := newStater(t)
	addr := vf.BytesToAddress([]byte("a"))
	k1 := vf.BytesToBytes32([]byte("k1"))
	k2 := vf.BytesToBytes32([]byte("k2"))

	st := stater.NewState()
	st.SetStorage(addr, k1, vf.BytesToBytes32([]byte{1}))
	st.SetStorage(addr, k2, vf.BytesToBytes32([]byte{2}))
	st.SetStorage(addr, k2, vf.BytesToBytes32([]byte{3}))

	stage := st.Stage()
	assert.Equal(t, 2, stage.Len())

	extraBucket := kv.Bucket("x")
	require.NoError(t, stage.Commit(func(p kv.Putter) error {
		return extraBucket.NewPutter(p).Put([]byte("log"), []byte("entry"))
	}))

	fresh := stater.NewState()
	v, err := fresh.GetStorage(addr, k2)
	assert.NoError(t, err)
	assert.Equal(t, vf.BytesToBytes32([]byte{3}), v)

	extra, err := extraBucket.NewGetter(stater.Store()).Get([]byte("log"))
	assert.NoError(t, err)
	assert.Equal(t, []byte("entry"), extra)

	// deleting a slot removes it from the store
	fresh.SetStorage(addr, k1, vf.Bytes32{})
	require.NoError(t, fresh.Stage().Commit(nil))
	has, err := StorageBucket.NewGetter(stater.Store()).Has(append(addr.Bytes(), k1[:]...))
	assert.NoError(t, err)
	assert.False(t, has)
}

func TestStageCommitAbortsOnExtraError(t *testing.T) {
	stater := newStater(t)
	addr := vf.BytesToAddress([]byte("a"))
	key := vf.BytesToBytes32([]byte("k"))

	st := stater.NewState()
	st.SetStorage(addr, key, vf.BytesToBytes32([]byte{9}))
	err := st.Stage().Commit(func(kv.Putter) error { return errors.New("log failed") })
	assert.EqualError(t, err, "log failed")

	v, err := stater.NewState().GetStorage(addr, key)
	assert.NoError(t, err)
	assert.True(t, v.IsZero())
}

func TestStageHashIsOrderIndependent(t *testing.T) {
	stater := newStater(t)
	addr := vf.BytesToAddress([]byte("a"))
	k1 := vf.BytesToBytes32([]byte("k1"))
	k2 := vf.BytesToBytes32([]byte("k2"))

	s1 := stater.NewState()
	s1.SetStorage(addr, k1, vf.BytesToBytes32([]byte{1}))
	s1.SetStorage(addr, k2, vf.BytesToBytes32([]byte{2}))

	s2 := stater.NewState()
	s2.SetStorage(addr, k2, vf.BytesToBytes32([]byte{2}))
	s2.SetStorage(addr, k1, vf.BytesToBytes32([]byte{1}))

	assert.Equal(t, s1.Stage().Hash(), s2.Stage().Hash())
}

// slowStore holds its first Get after the value was read, until resume is closed.
type slowStore struct {
	kv.Store
	once   sync.Once
	read   chan struct{}
	resume chan struct{}
}

func (s *slowStore) Get(key []byte) ([]byte, error) {
	val, err := s.Store.Get(key)
	s.once.Do(func() {
		close(s.read)
		<-s.resume
	})
	return val, err
}

func TestCacheIgnoresReadsOverlappingCommit(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	defer db.Close()

	store := &slowStore{Store: db, read: make(chan struct{}), resume: make(chan struct{})}
	stater := NewStater(store, 0)
	addr := vf.BytesToAddress([]byte("a"))
	key := vf.BytesToBytes32([]byte("k"))
	value := vf.BytesToBytes32([]byte("committed"))

	type result struct {
		v   vf.Bytes32
		err error
	}
	done := make(chan result, 1)
	go func() {
		v, err := stater.NewState().GetStorage(addr, key)
		done <- result{v, err}
	}()
	<-store.read

	st := stater.NewState()
	st.SetStorage(addr, key, value)
	require.NoError(t, st.Stage().Commit(nil))
	close(store.resume)

	res := <-done
	require.NoError(t, res.err)
	assert.True(t, res.v.IsZero())

	v, err := stater.NewState().GetStorage(addr, key)
	assert.NoError(t, err)
	assert.Equal(t, value, v)
}

func TestSnapshotState(t *testing.T) {
	stater := newStater(t)
	addr := vf.BytesToAddress([]byte("a"))
	k1 := vf.BytesToBytes32([]byte("k1"))
	k2 := vf.BytesToBytes32([]byte("k2"))

	st := stater.NewState()
	st.SetStorage(addr, k1, vf.BytesToBytes32([]byte{1}))
	require.NoError(t, st.Stage().Commit(nil))

	snap, release := stater.NewSnapshotState()
	defer release()

	st = stater.NewState()
	st.SetStorage(addr, k1, vf.BytesToBytes32([]byte{2}))
	st.SetStorage(addr, k2, vf.BytesToBytes32([]byte{2}))
	require.NoError(t, st.Stage().Commit(nil))

	v, err := snap.GetStorage(addr, k1)
	assert.NoError(t, err)
	assert.Equal(t, vf.BytesToBytes32([]byte{1}), v)
	v, err = snap.GetStorage(addr, k2)
	assert.NoError(t, err)
	assert.True(t, v.IsZero())

	v, err = stater.NewState().GetStorage(addr, k1)
	assert.NoError(t, err)
	assert.Equal(t, vf.BytesToBytes32([]byte{2}), v)
}
