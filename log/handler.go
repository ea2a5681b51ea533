// Copyright (c) 2026 The VeriFund developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/big"
	"reflect"
	"sync"
	"time"

	"github.com/holiman/uint256"
)

// discardHandler drops every record. It backs the root logger until
// SetDefault installs a real one.
type discardHandler struct{}

func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (h discardHandler) WithGroup(string) slog.Handler           { return h }
func (h discardHandler) WithAttrs([]slog.Attr) slog.Handler      { return h }

// TerminalHandler writes one human readable line per record:
//
//	LEVL [01-02|15:04:05.000] message                 key=value key=value
//
// Numbers are grouped by thousands and levels are colored when useColor is set.
type TerminalHandler struct {
	mu       sync.Mutex
	wr       io.Writer
	lvl      *slog.LevelVar
	useColor bool
	attrs    []slog.Attr

	// widest value seen per key, used to align columns across lines
	fieldPadding map[string]int
	buf          []byte
}

// NewTerminalHandlerWithLevel creates a terminal handler that emits records
// at or above the level held by lvl. lvl may be changed at runtime.
func NewTerminalHandlerWithLevel(wr io.Writer, lvl *slog.LevelVar, useColor bool) *TerminalHandler {
	return &TerminalHandler{
		wr:           wr,
		lvl:          lvl,
		useColor:     useColor,
		fieldPadding: make(map[string]int),
	}
}

func (h *TerminalHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.buf = h.format(h.buf[:0], r, h.useColor)
	_, err := h.wr.Write(h.buf)
	return err
}

func (h *TerminalHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.lvl.Level()
}

// WithGroup is not supported; groups are flattened into the record.
func (h *TerminalHandler) WithGroup(string) slog.Handler { return h }

func (h *TerminalHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(append(merged, h.attrs...), attrs...)
	return &TerminalHandler{
		wr:           h.wr,
		lvl:          h.lvl,
		useColor:     h.useColor,
		attrs:        merged,
		fieldPadding: make(map[string]int),
	}
}

// JSONHandler emits every record as a JSON object.
func JSONHandler(wr io.Writer) slog.Handler {
	var lvl slog.LevelVar
	lvl.Set(levelMaxVerbosity)
	return JSONHandlerWithLevel(wr, &lvl)
}

// JSONHandlerWithLevel emits records at or above lvl as JSON objects.
func JSONHandlerWithLevel(wr io.Writer, lvl *slog.LevelVar) slog.Handler {
	return slog.NewJSONHandler(wr, &slog.HandlerOptions{
		Level:       lvl,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr { return replaceAttr(a, false) },
	})
}

// LogfmtHandler emits every record as logfmt key=value pairs.
func LogfmtHandler(wr io.Writer) slog.Handler {
	var lvl slog.LevelVar
	lvl.Set(levelMaxVerbosity)
	return slog.NewTextHandler(wr, &slog.HandlerOptions{
		Level:       &lvl,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr { return replaceAttr(a, true) },
	})
}

// replaceAttr renames the time and level keys to t and lvl, and renders
// big numbers and Stringers as plain strings.
func replaceAttr(a slog.Attr, text bool) slog.Attr {
	switch a.Key {
	case slog.TimeKey:
		if a.Value.Kind() != slog.KindTime {
			break
		}
		if text {
			return slog.String("t", a.Value.Time().Format(timeFormat))
		}
		return slog.Attr{Key: "t", Value: a.Value}
	case slog.LevelKey:
		if l, ok := a.Value.Any().(slog.Level); ok {
			return slog.String("lvl", LevelString(l))
		}
	}

	switch v := a.Value.Any().(type) {
	case time.Time:
		if text {
			a.Value = slog.StringValue(v.Format(timeFormat))
		}
	case *big.Int:
		a.Value = slog.StringValue(nilOr(v == nil, v))
	case *uint256.Int:
		if v == nil {
			a.Value = slog.StringValue("<nil>")
		} else {
			a.Value = slog.StringValue(v.Dec())
		}
	case fmt.Stringer:
		isNil := v == nil || (reflect.ValueOf(v).Kind() == reflect.Pointer && reflect.ValueOf(v).IsNil())
		a.Value = slog.StringValue(nilOr(isNil, v))
	}
	return a
}

func nilOr(isNil bool, v fmt.Stringer) string {
	if isNil {
		return "<nil>"
	}
	return v.String()
}
