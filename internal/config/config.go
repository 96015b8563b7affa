// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package config

import (
	"bytes"
	"encoding/json"
	"log"
	"os"

	"github.com/sakrist/ancrate/pkg/schema"
)

// Keys holds the CLI's optional config-file settings, pre-populated with
// the same defaults cmd/ancrate falls back to when no -config flag is
// given or no matching flag was set explicitly.
var Keys schema.ProgramConfig = schema.ProgramConfig{
	Limit:    50,
	LogLevel: "info",
	LogDate:  false,
	Validate: false,
}

// Init loads flagConfigFile, if present, validates it against the embedded
// config schema, and decodes it into Keys. A missing file is not an error —
// the CLI runs on flag defaults alone. An existing but invalid file is
// fatal, matching the ambient stack's own config loading behavior.
func Init(flagConfigFile string) {
	if flagConfigFile == "" {
		return
	}

	raw, err := os.ReadFile(flagConfigFile)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Fatal(err)
		}
		return
	}

	if err := schema.Validate(schema.Config, bytes.NewReader(raw)); err != nil {
		log.Fatalf("validate config: %v\n", err)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&Keys); err != nil {
		log.Fatal(err)
	}
}
