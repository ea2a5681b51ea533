// Copyright (c) 2026 The VeriFund developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/adysingh5711/VeriFund/kv"
	"github.com/adysingh5711/VeriFund/lvldb"
	"github.com/adysingh5711/VeriFund/state"
	"github.com/adysingh5711/VeriFund/vf"
)

// Bucket keeps the genesis marker.
var Bucket = kv.Bucket("g")

var markerKey = []byte("genesis")

// Builder helper to build genesis state.
type Builder struct {
	launchTime uint64
	stateProcs []func(state *state.State) error
}

// LaunchTime set launch time.
func (b *Builder) LaunchTime(t uint64) *Builder {
	b.launchTime = t
	return b
}

// State add a state process
func (b *Builder) State(proc func(state *state.State) error) *Builder {
	b.stateProcs = append(b.stateProcs, proc)
	return b
}

// ComputeID runs the state processes on an empty in-memory store and
// derives the genesis id from the resulting changes.
func (b *Builder) ComputeID() (vf.Bytes32, error) {
	db, err := lvldb.NewMem()
	if err != nil {
		return vf.Bytes32{}, err
	}
	defer db.Close()

	stage, err := b.stage(state.NewStater(db, 0))
	if err != nil {
		return vf.Bytes32{}, err
	}
	return b.id(stage), nil
}

func (b *Builder) stage(stater *state.Stater) (*state.Stage, error) {
	st := stater.NewState()
	for _, proc := range b.stateProcs {
		if err := proc(st); err != nil {
			return nil, errors.Wrap(err, "state process")
		}
	}
	return st.Stage(), nil
}

func (b *Builder) id(stage *state.Stage) vf.Bytes32 {
	return vf.Blake2b(stage.Hash().Bytes(), vf.Uint64ToBytes32(b.launchTime).Bytes())
}

// Build applies the state processes to an empty store and commits them with the genesis marker.
// A store that already holds a genesis is left untouched once its id matches the builder's.
func (b *Builder) Build(stater *state.Stater) (*Genesis, error) {
	data, err := Bucket.NewGetter(stater.Store()).Get(markerKey)
	if err == nil {
		var stored Genesis
		if err := rlp.DecodeBytes(data, &stored); err != nil {
			return nil, errors.Wrap(err, "decode genesis")
		}
		id, err := b.ComputeID()
		if err != nil {
			return nil, err
		}
		if stored.ID != id {
			return nil, errors.Errorf("genesis mismatch: stored %v, built %v", stored.ID, id)
		}
		return &stored, nil
	}
	if !stater.Store().IsNotFound(err) {
		return nil, errors.Wrap(err, "load genesis")
	}

	stage, err := b.stage(stater)
	if err != nil {
		return nil, err
	}
	gene := &Genesis{
		ID:         b.id(stage),
		LaunchTime: b.launchTime,
	}
	if err := stage.Commit(func(putter kv.Putter) error {
		data, err := rlp.EncodeToBytes(gene)
		if err != nil {
			return err
		}
		return Bucket.NewPutter(putter).Put(markerKey, data)
	}); err != nil {
		return nil, errors.Wrap(err, "commit genesis")
	}
	logger.Info("genesis committed", "id", gene.ID, "changes", stage.Len())
	return gene, nil
}
