// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package blobcodec sniffs and decompresses the opaque blobs stored in the
// notes database. It never fails hard: a blob that cannot be decompressed is
// returned unchanged so the caller's decoder can attempt to parse it as-is.
package blobcodec

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/gzip"
)

var gzipMagic = [2]byte{0x1f, 0x8b}

// IsGzip reports whether blob begins with the gzip magic bytes.
func IsGzip(blob []byte) bool {
	return len(blob) >= 2 && blob[0] == gzipMagic[0] && blob[1] == gzipMagic[1]
}

// Canonicalize returns the canonical decoded-body buffer for blob: if blob
// is gzip-framed it is decompressed, otherwise it is returned unchanged.
// Decompression failure is recoverable — the original bytes are returned so
// the protobuf decoder can still attempt to parse them.
func Canonicalize(blob []byte) []byte {
	if !IsGzip(blob) {
		return blob
	}

	zr, err := gzip.NewReader(bytes.NewReader(blob))
	if err != nil {
		return blob
	}
	defer zr.Close()

	var out bytes.Buffer
	if _, err := io.Copy(&out, zr); err != nil {
		return blob
	}

	return out.Bytes()
}
