// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package markdown

import (
	"testing"

	"github.com/sakrist/ancrate/pkg/schema"
)

func ptr32(v int32) *int32 { return &v }

func TestReconstructPlainText(t *testing.T) {
	note := schema.Note{
		NoteText:      "Hello world",
		AttributeRuns: []schema.AttributeRun{{Length: 11}},
	}
	got := Reconstruct(note, "Greet")
	want := "# Greet\n\nHello world"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestReconstructChecklist(t *testing.T) {
	note := schema.Note{
		NoteText: "Buy milk\nBuy eggs",
		AttributeRuns: []schema.AttributeRun{
			{Length: 9, ParagraphStyle: &schema.ParagraphStyle{Checklist: &schema.Checklist{UUID: []byte("uuid-a"), Done: ptr32(1)}}},
			{Length: 8, ParagraphStyle: &schema.ParagraphStyle{Checklist: &schema.Checklist{UUID: []byte("uuid-b"), Done: ptr32(0)}}},
		},
	}
	got := Reconstruct(note, "Groceries")
	want := "# Groceries\n\n- [x] Buy milk\n- [ ] Buy eggs"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestReconstructHeadingAndBold(t *testing.T) {
	note := schema.Note{
		NoteText: "Title\nbody",
		AttributeRuns: []schema.AttributeRun{
			{Length: 6, ParagraphStyle: &schema.ParagraphStyle{StyleType: ptr32(0)}},
			{Length: 4, FontWeight: ptr32(1)},
		},
	}
	got := Reconstruct(note, "Ignored")
	want := "# Title\n**body**"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestReconstructZeroRunsYieldsTitleAndText(t *testing.T) {
	note := schema.Note{NoteText: "plain note body", AttributeRuns: nil}
	got := Reconstruct(note, "Untitled")
	want := "# Untitled\n\nplain note body"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestReconstructEmptyTextYieldsOnlyTitle(t *testing.T) {
	note := schema.Note{
		NoteText:      "",
		AttributeRuns: []schema.AttributeRun{{Length: 0, FontWeight: ptr32(1)}},
	}
	got := Reconstruct(note, "Empty")
	want := "# Empty\n\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestReconstructClampsOverrunLength(t *testing.T) {
	note := schema.Note{
		NoteText:      "short",
		AttributeRuns: []schema.AttributeRun{{Length: 500}},
	}
	got := Reconstruct(note, "Clamp")
	want := "# Clamp\n\nshort"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestReconstructMergesIdenticalSignatureRuns(t *testing.T) {
	note := schema.Note{
		NoteText: "abcd",
		AttributeRuns: []schema.AttributeRun{
			{Length: 2, FontWeight: ptr32(1)},
			{Length: 2, FontWeight: ptr32(1)},
		},
	}
	merged := Reconstruct(note, "X")

	combined := schema.Note{
		NoteText:      "abcd",
		AttributeRuns: []schema.AttributeRun{{Length: 4, FontWeight: ptr32(1)}},
	}
	single := Reconstruct(combined, "X")

	if merged != single {
		t.Errorf("split-run output %q differs from combined-run output %q", merged, single)
	}
}

func TestReconstructCodeBlockSingleLine(t *testing.T) {
	note := schema.Note{
		NoteText:      "x := 1",
		AttributeRuns: []schema.AttributeRun{{Length: 6, ParagraphStyle: &schema.ParagraphStyle{StyleType: ptr32(4)}}},
	}
	got := Reconstruct(note, "Snippet")
	want := "# Snippet\n\n`x := 1`"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestReconstructListItemWithIndent(t *testing.T) {
	note := schema.Note{
		NoteText: "one\ntwo",
		AttributeRuns: []schema.AttributeRun{
			{Length: 7, ParagraphStyle: &schema.ParagraphStyle{StyleType: ptr32(100), IndentAmount: ptr32(1)}},
		},
	}
	got := Reconstruct(note, "List")
	want := "# List\n\n  - one\n  - two"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestReconstructBlockQuote(t *testing.T) {
	note := schema.Note{
		NoteText:      "quoted",
		AttributeRuns: []schema.AttributeRun{{Length: 6, ParagraphStyle: &schema.ParagraphStyle{BlockQuote: ptr32(1)}}},
	}
	got := Reconstruct(note, "Q")
	want := "# Q\n\n> quoted"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestReconstructSkipsStylingOnPunctuationOnly(t *testing.T) {
	note := schema.Note{
		NoteText:      "...",
		AttributeRuns: []schema.AttributeRun{{Length: 3, FontWeight: ptr32(1)}},
	}
	got := Reconstruct(note, "Dots")
	want := "# Dots\n\n..."
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestJoinNotes(t *testing.T) {
	got := JoinNotes([]string{"# A\n\nfirst", "# B\n\nsecond"})
	want := "# A\n\nfirst\n\n---\n\n# B\n\nsecond"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
