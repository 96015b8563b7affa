// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package repository

import "errors"

var (
	// SourceUnavailable means the store file does not exist.
	SourceUnavailable = errors.New("repository: source store does not exist")

	// SourceUnreadable means opening the store failed for a reason other
	// than non-existence (permission denied, lock contention).
	SourceUnreadable = errors.New("repository: source store could not be opened")

	// QueryFailed means both the primary and the fallback query errored.
	QueryFailed = errors.New("repository: query failed")

	// SchemaMismatch means a required column or table is missing from the
	// store. Fatal for the reader; there is no further fallback.
	SchemaMismatch = errors.New("repository: store schema does not match expected layout")
)
