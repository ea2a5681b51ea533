// Copyright (c) 2026 The VeriFund developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package utils

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapHandlerFunc(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{nil, http.StatusOK},
		{BadRequest(errors.New("bad")), http.StatusBadRequest},
		{NotFound(errors.New("gone")), http.StatusNotFound},
		{HTTPError(errors.New("nope"), http.StatusForbidden), http.StatusForbidden},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		WrapHandlerFunc(func(w http.ResponseWriter, r *http.Request) error {
			return tt.err
		})(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, tt.status, rec.Code)
		if tt.err != nil {
			assert.Contains(t, rec.Body.String(), tt.err.Error())
		}
	}
}

func TestJSON(t *testing.T) {
	var v struct{ A int }
	require.NoError(t, ParseJSON(strings.NewReader(`{"A":1}`), &v))
	assert.Equal(t, 1, v.A)
	assert.Error(t, ParseJSON(strings.NewReader(`{"B":1}`), &v), "unknown fields rejected")

	rec := httptest.NewRecorder()
	require.NoError(t, WriteJSON(rec, M{"ok": true}))
	assert.Equal(t, JSONContentType, rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
}

func TestParams(t *testing.T) {
	v, err := ParseUint64("0x10", "id")
	require.NoError(t, err)
	assert.Equal(t, uint64(16), v)
	_, err = ParseUint64("-1", "id")
	assert.ErrorContains(t, err, "id")

	token, err := ParseToken("native")
	require.NoError(t, err)
	assert.True(t, token.IsZero())
	_, err = ParseAddress("0x12", "who")
	assert.Error(t, err)
}
