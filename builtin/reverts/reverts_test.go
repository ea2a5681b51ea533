// Copyright (c) 2026 The VeriFund developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reverts

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrRevert(t *testing.T) {
	err := New(AlreadyVoted, "round %d", 3)
	assert.Equal(t, "AlreadyVoted: round 3", err.Error())
	assert.Equal(t, AlreadyVoted, err.Kind())
	assert.Equal(t, "round 3", err.Message())

	wrapped := fmt.Errorf("commit: %w", err)
	assert.True(t, errors.Is(wrapped, AlreadyVoted))
	assert.False(t, errors.Is(wrapped, InvalidCommitment))
	assert.True(t, IsRevertErr(wrapped))
	assert.Equal(t, AlreadyVoted, KindOf(wrapped))

	assert.Equal(t, "Paused", New(Paused, "").Error())
}

func TestIsRevertErr(t *testing.T) {
	assert.False(t, IsRevertErr(nil))
	assert.False(t, IsRevertErr("string"))
	assert.False(t, IsRevertErr(errors.New("disk failure")))
	assert.Equal(t, Kind(""), KindOf(errors.New("disk failure")))

	var nilRevert *ErrRevert
	assert.False(t, IsRevertErr(nilRevert))
}
