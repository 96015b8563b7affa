// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLHooks(t *testing.T) {
	t.Run("hooks log queries in debug mode", func(t *testing.T) {
		h := &Hooks{}

		ctx := context.Background()
		query := "SELECT n.Z_PK FROM ZICNOTEDATA n WHERE n.Z_PK = ?"
		args := []any{123}

		ctxWithTime, err := h.Before(ctx, query, args...)
		require.NoError(t, err)
		assert.NotNil(t, ctxWithTime)

		beginTime := ctxWithTime.Value(hookCtxKey{})
		require.NotNil(t, beginTime)
		_, ok := beginTime.(time.Time)
		assert.True(t, ok, "begin time should be time.Time")

		time.Sleep(time.Millisecond)

		ctxAfter, err := h.After(ctxWithTime, query, args...)
		require.NoError(t, err)
		assert.NotNil(t, ctxAfter)
	})
}

func TestHooksBeforeStoresStartTime(t *testing.T) {
	h := &Hooks{}

	ctx, err := h.Before(context.Background(), "SELECT 1", nil)
	if err != nil {
		t.Fatalf("Before: %v", err)
	}

	begin, ok := ctx.Value(hookCtxKey{}).(time.Time)
	if !ok {
		t.Fatal("expected begin context value to be a time.Time")
	}
	if begin.After(time.Now()) {
		t.Error("begin time should not be in the future")
	}
}

func TestHooksAfterMissingBeginDoesNotPanic(t *testing.T) {
	h := &Hooks{}

	if _, err := h.After(context.Background(), "SELECT 1", nil); err != nil {
		t.Fatalf("After: %v", err)
	}
}
