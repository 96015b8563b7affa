// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package config

import (
	"bytes"
	"encoding/json"

	"github.com/sakrist/ancrate/pkg/log"
	"github.com/sakrist/ancrate/pkg/schema"
)

// Validate checks instance against the named schema kind, logging and
// exiting on failure. Exposed for callers that validate a config document
// obtained from somewhere other than Init's own file read (e.g. an
// in-memory default, or a test fixture).
func Validate(kind schema.Kind, instance json.RawMessage) {
	if err := schema.Validate(kind, bytes.NewReader(instance)); err != nil {
		log.Fatalf("validate config: %v", err)
	}
}
