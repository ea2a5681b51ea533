// Copyright (c) 2026 The VeriFund developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package cache

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLRUGetOrLoad(t *testing.T) {
	c, err := NewLRU(2)
	require.NoError(t, err)

	loads := 0
	loader := func(key any) (any, error) {
		loads++
		return key.(int) * 10, nil
	}

	v, err := c.GetOrLoad(1, loader)
	assert.NoError(t, err)
	assert.Equal(t, 10, v)

	v, err = c.GetOrLoad(1, loader)
	assert.NoError(t, err)
	assert.Equal(t, 10, v)
	assert.Equal(t, 1, loads)

	hit, miss := c.Stats()
	assert.Equal(t, int64(1), hit)
	assert.Equal(t, int64(1), miss)

	hit, miss = c.Stats()
	assert.Zero(t, hit)
	assert.Zero(t, miss)
}

func TestLRULoaderError(t *testing.T) {
	c, err := NewLRU(1)
	require.NoError(t, err)

	_, err = c.GetOrLoad("k", func(any) (any, error) { return nil, errors.New("load failed") })
	assert.EqualError(t, err, "load failed")
	assert.Equal(t, 0, c.Len())
}

func TestNewLRUInvalidSize(t *testing.T) {
	_, err := NewLRU(0)
	assert.Error(t, err)
}

func TestLRUGetOrLoadWithDrop(t *testing.T) {
	c, err := NewLRU(2)
	require.NoError(t, err)

	v, err := c.GetOrLoadWith("k", func(any) (any, error) { return "v", nil }, func(any, any) {})
	assert.NoError(t, err)
	assert.Equal(t, "v", v)
	assert.Equal(t, 0, c.Len())
}
