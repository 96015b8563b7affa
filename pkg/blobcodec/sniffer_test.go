// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package blobcodec

import (
	"bytes"
	"testing"

	"github.com/klauspost/compress/gzip"
)

func gzipBytes(t *testing.T, raw []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(raw); err != nil {
		t.Fatalf("gzip write: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("gzip close: %v", err)
	}
	return buf.Bytes()
}

func TestCanonicalizePassesThroughRaw(t *testing.T) {
	raw := []byte("not gzipped at all")
	got := Canonicalize(raw)
	if !bytes.Equal(got, raw) {
		t.Errorf("expected raw bytes untouched, got %q", got)
	}
}

func TestCanonicalizeDecompressesGzip(t *testing.T) {
	raw := []byte("hello notes world")
	wrapped := gzipBytes(t, raw)

	got := Canonicalize(wrapped)
	if !bytes.Equal(got, raw) {
		t.Errorf("got %q, want %q", got, raw)
	}
}

func TestCanonicalizeRecoversFromBadGzip(t *testing.T) {
	broken := []byte{0x1f, 0x8b, 0x00, 0x01, 0x02}
	got := Canonicalize(broken)
	if !bytes.Equal(got, broken) {
		t.Errorf("expected original bytes on decompress failure, got %q", got)
	}
}

func TestIsGzip(t *testing.T) {
	if IsGzip([]byte{0x1f}) {
		t.Error("single byte should not be detected as gzip")
	}
	if !IsGzip([]byte{0x1f, 0x8b, 0x08, 0x00}) {
		t.Error("expected gzip magic to be detected")
	}
	if IsGzip([]byte{0x50, 0x4b, 0x03, 0x04}) {
		t.Error("zip magic should not be detected as gzip")
	}
}
