// Copyright (c) 2026 The VeriFund developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package eventdb_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adysingh5711/VeriFund/eventdb"
	"github.com/adysingh5711/VeriFund/tx"
	"github.com/adysingh5711/VeriFund/vf"
)

var (
	addrA = vf.BytesToAddress([]byte("A"))
	addrB = vf.BytesToAddress([]byte("B"))
	t0    = vf.BytesToBytes32([]byte("topic0"))
	t1    = vf.BytesToBytes32([]byte("topic1"))
)

func fill(t *testing.T, db *eventdb.EventDB) {
	for seq := uint64(1); seq <= 20; seq++ {
		addr := addrA
		if seq%2 == 0 {
			addr = addrB
		}
		receipt := &tx.Receipt{
			TxID:   vf.Uint64ToBytes32(seq),
			Origin: vf.BytesToAddress([]byte("origin")),
			Time:   seq * 10,
			Events: []*tx.Event{
				{Address: addr, Name: "Transfer", Topics: []vf.Bytes32{t0, t1}, Data: json.RawMessage(`{"n":1}`)},
				{Address: addr, Name: "Paused", Data: json.RawMessage(`{}`)},
			},
		}
		require.NoError(t, db.Insert(eventdb.NewEvents(seq, receipt)))
	}
}

func TestEventDB(t *testing.T) {
	db, err := eventdb.NewMem()
	require.NoError(t, err)
	defer db.Close()

	seq, err := db.NewestSeq()
	require.NoError(t, err)
	assert.Zero(t, seq)

	fill(t, db)
	seq, err = db.NewestSeq()
	require.NoError(t, err)
	assert.Equal(t, uint64(20), seq)

	ctx := context.Background()
	all, err := db.Filter(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 40)
	assert.Equal(t, uint64(1), all[0].Seq)
	assert.Equal(t, uint32(1), all[1].Index)
	assert.JSONEq(t, `{"n":1}`, string(all[0].Data))
	assert.Equal(t, t1, *all[0].Topics[1])
	assert.Nil(t, all[1].Topics[0])

	events, err := db.Filter(ctx, &eventdb.Filter{
		Address: &addrA,
		Name:    "Transfer",
		Topics:  [2]*vf.Bytes32{&t0, nil},
		Range:   &eventdb.Range{Unit: eventdb.Seq, From: 1, To: 10},
		Order:   eventdb.DESC,
		Options: &eventdb.Options{Limit: 3},
	})
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, []uint64{9, 7, 5}, []uint64{events[0].Seq, events[1].Seq, events[2].Seq})
	for _, ev := range events {
		assert.Equal(t, addrA, ev.Address)
	}

	events, err = db.Filter(ctx, &eventdb.Filter{
		Name:  "Paused",
		Range: &eventdb.Range{Unit: eventdb.Time, From: 195},
	})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, uint64(200), events[0].Time)

	events, err = db.Filter(ctx, &eventdb.Filter{Options: &eventdb.Options{Offset: 38, Limit: 10}})
	require.NoError(t, err)
	assert.Len(t, events, 2)

	_, err = db.Filter(ctx, &eventdb.Filter{Range: &eventdb.Range{Unit: "block"}})
	assert.Error(t, err)
}

func TestInsertReplaces(t *testing.T) {
	db, err := eventdb.NewMem()
	require.NoError(t, err)
	defer db.Close()

	fill(t, db)
	fill(t, db)
	all, err := db.Filter(context.Background(), &eventdb.Filter{Options: &eventdb.Options{Limit: eventdb.MaxLimit}})
	require.NoError(t, err)
	assert.Len(t, all, 40)
}
