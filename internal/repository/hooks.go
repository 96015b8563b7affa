// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package repository

import (
	"context"
	"time"

	"github.com/sakrist/ancrate/pkg/log"
)

// slowQueryThreshold flags a query against the notes store as worth a
// warning. The store is a single local sqlite file read by one connection,
// so anything past this is almost always a missing index on a large
// ZICNOTEDATA table rather than network latency.
const slowQueryThreshold = 250 * time.Millisecond

type hookCtxKey struct{}

// Hooks satisfies sqlhooks.Hooks for the notes-reader connection.
type Hooks struct{}

// Before logs the query about to run against the notes store and stashes
// the start time for After to measure against.
func (h *Hooks) Before(ctx context.Context, query string, args ...interface{}) (context.Context, error) {
	log.Debugf("notes store query: %s %q", query, args)
	return context.WithValue(ctx, hookCtxKey{}, time.Now()), nil
}

// After reports how long the query took, warning if it crossed
// slowQueryThreshold.
func (h *Hooks) After(ctx context.Context, query string, args ...interface{}) (context.Context, error) {
	begin, _ := ctx.Value(hookCtxKey{}).(time.Time)
	elapsed := time.Since(begin)
	if elapsed > slowQueryThreshold {
		log.Warnf("slow notes store query (%s): %s", elapsed, query)
	} else {
		log.Debugf("notes store query took %s", elapsed)
	}
	return ctx, nil
}
