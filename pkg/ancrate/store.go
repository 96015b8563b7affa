// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package ancrate is the public library API: it wires the storage reader,
// blob sniffer, protobuf decoder, checklist extractor, and Markdown
// reconstructor into one pipeline per note, without imposing any scheduling
// or concurrency model of its own.
package ancrate

import (
	"context"

	"github.com/sakrist/ancrate/internal/repository"
	"github.com/sakrist/ancrate/pkg/blobcodec"
	"github.com/sakrist/ancrate/pkg/checklist"
	"github.com/sakrist/ancrate/pkg/log"
	"github.com/sakrist/ancrate/pkg/markdown"
	"github.com/sakrist/ancrate/pkg/schema"
	"github.com/sakrist/ancrate/pkg/wireformat"
)

// StoreHandle is a read-only handle on one notes store.
type StoreHandle struct {
	reader *repository.NotesReader
}

// OpenStore opens path read-only. It returns repository.SourceUnavailable
// if the file does not exist, or repository.SourceUnreadable if opening it
// otherwise fails.
func OpenStore(path string) (*StoreHandle, error) {
	conn, err := repository.Connect(path)
	if err != nil {
		return nil, err
	}
	return &StoreHandle{reader: repository.NewNotesReader(conn)}, nil
}

// ListNotes runs the store's fixed query and streams rows on the returned
// channel, closing it when done; any query error is sent once on the error
// channel. The caller drives consumption and cancellation: this function
// starts no goroutine of its own beyond the one needed to not block on an
// unbuffered channel, and respects ctx only between rows (the underlying
// query itself is not cancellable mid-flight).
func (h *StoreHandle) ListNotes(ctx context.Context, limit int) (<-chan schema.RawNote, <-chan error) {
	out := make(chan schema.RawNote)
	errs := make(chan error, 1)

	go func() {
		defer close(out)
		defer close(errs)

		rows, err := h.reader.ListNotes(limit)
		if err != nil {
			errs <- err
			return
		}

		for _, row := range rows {
			select {
			case <-ctx.Done():
				return
			case out <- row:
			}
		}
	}()

	return out, errs
}

// DecodeFallback is returned by DecodeNote when the note's body could not
// be decoded as any of the three recognized wire messages. It is not an
// error: the note still appears in output, flagged as undecodable.
type DecodeFallback struct {
	Content string
}

const undecodableMarker = "[Encrypted Note - Cannot decrypt without password]"

// DecodeNote canonicalizes raw.BodyBlob (gzip or not) and attempts the
// three-stage protobuf decode. On success it returns the decoded Document.
// On failure it returns a DecodeFallback carrying the note's snippet, or
// the literal undecodable marker if the snippet is also empty.
func DecodeNote(raw schema.RawNote) (*schema.Document, *DecodeFallback) {
	canonical := blobcodec.Canonicalize(raw.BodyBlob)

	doc, err := wireformat.Decode(canonical)
	if err == nil {
		return doc, nil
	}

	log.Notef("note %d: decode failed, falling back to snippet: %v", raw.ID, err)

	content := raw.Snippet
	if content == "" {
		content = undecodableMarker
	}
	return nil, &DecodeFallback{Content: content}
}

// ExtractChecklists returns doc.Note's checklist items, sorted by their
// position in the note text.
func ExtractChecklists(doc *schema.Document) []schema.ChecklistItem {
	if doc == nil {
		return nil
	}
	return checklist.Extract(doc.Note)
}

// NoteForMarkdown pairs one note's decode outcome with its title for
// ToMarkdown.
type NoteForMarkdown struct {
	Title    string
	Document *schema.Document
	Fallback *DecodeFallback
}

// ToMarkdown reconstructs Markdown for each note and joins them with the
// multi-note separator. A note whose Document is nil uses its Fallback
// content as a plain body under a heading made from the note's title.
func ToMarkdown(notes []NoteForMarkdown) string {
	bodies := make([]string, 0, len(notes))
	for _, n := range notes {
		if n.Document != nil {
			bodies = append(bodies, markdown.Reconstruct(n.Document.Note, n.Title))
			continue
		}

		fallback := ""
		if n.Fallback != nil {
			fallback = n.Fallback.Content
		}
		bodies = append(bodies, markdown.Reconstruct(schema.Note{NoteText: fallback}, n.Title))
	}
	return markdown.JoinNotes(bodies)
}
