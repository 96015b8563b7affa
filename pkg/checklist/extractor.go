// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package checklist walks a decoded note's attribute runs and reconstructs
// its checklist items: runs that share a checklist UUID belong to the same
// item even when they are not formatted identically (e.g. part of the text
// is bold).
package checklist

import (
	"encoding/hex"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/sakrist/ancrate/pkg/schema"
)

// Extract returns the checklist items found in note, ordered by their
// starting position in the note text. Runs belonging to the same checklist
// UUID are merged into a single item; within a merged item, the last run
// written wins for the completion flag, matching how the source app treats
// checklist state as a property of the line rather than of any one run.
func Extract(note schema.Note) []schema.ChecklistItem {
	type accumulator struct {
		uuid       []byte
		text       strings.Builder
		isDone     bool
		lineNumber int
		rangeStart int
		rangeEnd   int
	}

	byID := make(map[string]*accumulator)
	var order []string

	offset := 0
	lineNumber := 0

	for _, run := range note.AttributeRuns {
		runText := sliceRunes(note.NoteText, offset, offset+int(run.Length))
		lineNumber += strings.Count(runText, "\n")

		if run.ParagraphStyle != nil && run.ParagraphStyle.Checklist != nil {
			cl := run.ParagraphStyle.Checklist
			id := itemID(cl.UUID)

			acc, ok := byID[id]
			if !ok {
				acc = &accumulator{
					uuid:       cl.UUID,
					lineNumber: lineNumber,
					rangeStart: offset,
				}
				byID[id] = acc
				order = append(order, id)
			}

			acc.text.WriteString(runText)
			acc.rangeEnd = offset + int(run.Length)
			if cl.Done != nil {
				acc.isDone = *cl.Done != 0
			}
		}

		offset += int(run.Length)
	}

	items := make([]schema.ChecklistItem, 0, len(order))
	for _, id := range order {
		acc := byID[id]
		text := strings.TrimSpace(acc.text.String())
		if text == "" {
			continue
		}
		items = append(items, schema.ChecklistItem{
			ID:          id,
			Text:        text,
			IsCompleted: acc.isDone,
			UUID:        acc.uuid,
			LineNumber:  acc.lineNumber,
			RangeStart:  acc.rangeStart,
			RangeEnd:    acc.rangeEnd,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].RangeStart < items[j].RangeStart
	})

	return items
}

// itemID renders a checklist UUID as a stable string key. Well-formed
// 16-byte UUIDs are formatted in canonical form; anything else (the source
// app has been seen to emit short or empty identifiers on corrupt notes)
// falls back to hex with a "raw:" prefix so two distinct malformed values
// never collide with a valid UUID by coincidence.
func itemID(raw []byte) string {
	if len(raw) == 16 {
		id, err := uuid.FromBytes(raw)
		if err == nil {
			return id.String()
		}
	}
	return "raw:" + hex.EncodeToString(raw)
}

// sliceRunes returns the substring of s spanning the code-point range
// [start, end), clamped to s's bounds. Run lengths are used as code-point
// counts exactly as the decoder reports them; no UTF-16 conversion is done.
// Clamping here protects against a run whose declared length runs past the
// end of the note text.
func sliceRunes(s string, start, end int) string {
	runes := []rune(s)
	if start < 0 {
		start = 0
	}
	if end > len(runes) {
		end = len(runes)
	}
	if start >= end || start > len(runes) {
		return ""
	}
	return string(runes[start:end])
}
