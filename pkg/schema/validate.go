// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package schema

import (
	"embed"
	"encoding/json"
	"fmt"
	"io"
	"net/url"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

type Kind int

const (
	Config Kind = iota + 1
)

//go:embed schemas/*
var schemaFiles embed.FS

func Load(s string) (io.ReadCloser, error) {
	u, err := url.Parse(s)
	if err != nil {
		return nil, err
	}
	return schemaFiles.Open(u.Host + u.Path)
}

func init() {
	jsonschema.Loaders["embedfs"] = Load
}

// Validate checks r (a JSON document) against the schema identified by k.
func Validate(k Kind, r io.Reader) error {
	var s *jsonschema.Schema
	var err error

	switch k {
	case Config:
		s, err = jsonschema.Compile("embedFS://schemas/config.schema.json")
	default:
		return fmt.Errorf("pkg/schema: unknown schema kind %d", k)
	}
	if err != nil {
		return err
	}

	var v interface{}
	if err := json.NewDecoder(r).Decode(&v); err != nil {
		return fmt.Errorf("pkg/schema: decode instance: %w", err)
	}

	if err := s.Validate(v); err != nil {
		return fmt.Errorf("pkg/schema: validate: %w", err)
	}
	return nil
}
