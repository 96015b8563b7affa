// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package wireformat

import (
	"bytes"
	"errors"
	"testing"

	"google.golang.org/protobuf/encoding/protowire"
)

func appendBytesField(b []byte, num protowire.Number, v []byte) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, v)
}

func appendVarintField(b []byte, num protowire.Number, v uint64) []byte {
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

func buildChecklist(uuid []byte, done int32) []byte {
	var b []byte
	if uuid != nil {
		b = appendBytesField(b, fieldChecklistUUID, uuid)
	}
	b = appendVarintField(b, fieldChecklistDone, uint64(uint32(done)))
	return b
}

func buildParagraphStyle(styleType int32, checklist []byte) []byte {
	var b []byte
	b = appendVarintField(b, fieldParaStyleType, uint64(uint32(styleType)))
	if checklist != nil {
		b = appendBytesField(b, fieldParaChecklist, checklist)
	}
	return b
}

func buildRun(length uint32, paragraphStyle []byte, bold bool) []byte {
	var b []byte
	b = appendVarintField(b, fieldRunLength, uint64(length))
	if paragraphStyle != nil {
		b = appendBytesField(b, fieldRunParagraphStyle, paragraphStyle)
	}
	if bold {
		b = appendVarintField(b, fieldRunFontWeight, 1)
	}
	return b
}

func buildNote(text string, runs ...[]byte) []byte {
	var b []byte
	b = appendBytesField(b, fieldNoteText, []byte(text))
	for _, r := range runs {
		b = appendBytesField(b, fieldNoteAttributeRun, r)
	}
	return b
}

func buildDocument(version int32, note []byte) []byte {
	var b []byte
	b = appendVarintField(b, fieldDocumentVersion, uint64(uint32(version)))
	b = appendBytesField(b, fieldDocumentNote, note)
	return b
}

func buildContainer(document []byte) []byte {
	var b []byte
	return appendBytesField(b, fieldContainerDocument, document)
}

func TestDecodeContainer(t *testing.T) {
	note := buildNote("hello world")
	doc := buildDocument(3, note)
	container := buildContainer(doc)

	got, err := Decode(container)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got.Version != 3 {
		t.Errorf("Version = %d, want 3", got.Version)
	}
	if got.Note.NoteText != "hello world" {
		t.Errorf("NoteText = %q", got.Note.NoteText)
	}
}

func TestDecodeDirectDocument(t *testing.T) {
	note := buildNote("direct document")
	doc := buildDocument(1, note)

	got, err := Decode(doc)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got.Note.NoteText != "direct document" {
		t.Errorf("NoteText = %q", got.Note.NoteText)
	}
}

func TestDecodeBareNote(t *testing.T) {
	note := buildNote("bare note")

	got, err := Decode(note)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got.Note.NoteText != "bare note" {
		t.Errorf("NoteText = %q", got.Note.NoteText)
	}
	if got.Version != 0 {
		t.Errorf("Version = %d, want 0 for bare note", got.Version)
	}
}

func TestDecodeAttributeRunsAndChecklist(t *testing.T) {
	uuid := bytes.Repeat([]byte{0xab}, 16)
	checklist := buildChecklist(uuid, 1)
	para := buildParagraphStyle(0, checklist)
	run := buildRun(5, para, true)
	note := buildNote("Pay bills", run)

	got, err := Decode(note)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(got.Note.AttributeRuns) != 1 {
		t.Fatalf("AttributeRuns len = %d, want 1", len(got.Note.AttributeRuns))
	}
	r := got.Note.AttributeRuns[0]
	if r.Length != 5 {
		t.Errorf("Length = %d, want 5", r.Length)
	}
	if r.FontWeight == nil || *r.FontWeight != 1 {
		t.Errorf("FontWeight = %v, want 1", r.FontWeight)
	}
	if r.ParagraphStyle == nil || r.ParagraphStyle.Checklist == nil {
		t.Fatalf("expected paragraph style with checklist")
	}
	if !bytes.Equal(r.ParagraphStyle.Checklist.UUID, uuid) {
		t.Errorf("checklist UUID mismatch")
	}
	if r.ParagraphStyle.Checklist.Done == nil || *r.ParagraphStyle.Checklist.Done != 1 {
		t.Errorf("checklist Done = %v, want 1", r.ParagraphStyle.Checklist.Done)
	}
}

func TestDecodeFailsOnGarbage(t *testing.T) {
	garbage := []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}
	_, err := Decode(garbage)
	if !errors.Is(err, ErrDecodeFailed) {
		t.Fatalf("err = %v, want ErrDecodeFailed", err)
	}
}

func TestDecodeFailsOnEmpty(t *testing.T) {
	_, err := Decode(nil)
	if !errors.Is(err, ErrDecodeFailed) {
		t.Fatalf("err = %v, want ErrDecodeFailed", err)
	}
}

func TestDecodeSkipsUnknownFields(t *testing.T) {
	note := buildNote("has extras")
	note = appendVarintField(note, 99, 42)
	note = appendBytesField(note, 100, []byte("unexpected"))

	doc := buildDocument(1, note)

	got, err := Decode(doc)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got.Note.NoteText != "has extras" {
		t.Errorf("NoteText = %q", got.Note.NoteText)
	}
}

func TestDecodeTruncatedRunToleratesPartialFields(t *testing.T) {
	run := buildRun(10, nil, true)
	truncated := run[:len(run)-1]
	note := buildNote("truncated run", truncated)

	got, err := Decode(note)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got.Note.NoteText != "truncated run" {
		t.Errorf("NoteText = %q", got.Note.NoteText)
	}
	if len(got.Note.AttributeRuns) != 1 {
		t.Fatalf("AttributeRuns len = %d, want 1", len(got.Note.AttributeRuns))
	}
}
