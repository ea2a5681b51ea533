// Copyright (c) 2026 The VeriFund developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"math/big"
	"strings"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTerminalHandlerLevels(t *testing.T) {
	var (
		out   bytes.Buffer
		level slog.LevelVar
	)
	level.Set(slog.LevelInfo)
	l := NewLogger(NewTerminalHandlerWithLevel(&out, &level, false))

	l.Debug("hidden")
	assert.Zero(t, out.Len())

	l.Info("released milestone", "project", 1, "amount", big.NewInt(1_000_000))
	line := out.String()
	assert.True(t, strings.HasPrefix(line, "INFO "))
	assert.Contains(t, line, "released milestone")
	assert.Contains(t, line, "project=1")
	assert.Contains(t, line, "amount=1,000,000")
}

func TestJSONHandlerRendersNumbers(t *testing.T) {
	var out bytes.Buffer
	l := NewLogger(JSONHandler(&out))

	l.Info("staked", "amount", uint256.NewInt(42), "total", big.NewInt(7))

	var rec map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &rec))
	assert.Equal(t, "info", rec["lvl"])
	assert.Equal(t, "42", rec["amount"])
	assert.Equal(t, "7", rec["total"])
}

func TestWithContextFollowsRoot(t *testing.T) {
	pkgLogger := WithContext("pkg", "test")
	prev := Root()
	t.Cleanup(func() { SetDefault(prev) })

	var out bytes.Buffer
	SetDefault(NewLogger(LogfmtHandler(&out)))
	pkgLogger.Warn("hello", "k", "v")

	assert.Contains(t, out.String(), "pkg=test")
	assert.Contains(t, out.String(), "k=v")
	assert.Contains(t, out.String(), "lvl=warn")
}

func TestAppendNumbers(t *testing.T) {
	assert.Equal(t, "99999", string(appendUint64(nil, 99999, false)))
	assert.Equal(t, "100,000", string(appendUint64(nil, 100000, false)))
	assert.Equal(t, "-1,234,567", string(appendInt64(nil, -1234567)))

	huge, _ := new(big.Int).SetString("123456789012345678901234567890", 10)
	assert.Equal(t, "123,456,789,012,345,678,901,234,567,890", string(appendBigInt(nil, huge)))
}

func TestFromLegacyLevel(t *testing.T) {
	assert.Equal(t, LevelCrit, FromLegacyLevel(0))
	assert.Equal(t, slog.LevelInfo, FromLegacyLevel(3))
	assert.Equal(t, LevelTrace, FromLegacyLevel(9))
}
