// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package schema

import "time"

// RawNote is one row produced by the storage reader. It owns body_blob;
// downstream stages only ever read it.
type RawNote struct {
	ID          int64     `db:"id"`
	Title       string    `db:"title"`
	Snippet     string    `db:"snippet"`
	CreatedAt   time.Time `db:"created_at"`
	ModifiedAt  time.Time `db:"modified_at"`
	FolderName  string    `db:"folder_name"`
	BodyBlob    []byte    `db:"body_blob"`
	CryptoIV    []byte    `db:"crypto_iv"`
	CryptoTag   []byte    `db:"crypto_tag"`
}

// Document is the outer envelope produced by the protobuf decoder.
type Document struct {
	Version int32
	Note    Note
}

// Note holds the plain text and the ordered styling runs over it.
type Note struct {
	NoteText      string
	AttributeRuns []AttributeRun
}

// AttributeRun is a styled span over Note.NoteText. Length is always
// present; every other field is optional and "absent" is semantically
// distinct from "present with zero value".
type AttributeRun struct {
	Length uint32

	ParagraphStyle *ParagraphStyle
	FontWeight     *int32
	EmphasisStyle  *int32
	Underlined     *int32
	Strikethrough  *int32
	Superscript    *int32
	Link           *string
}

// ParagraphStyle is the paragraph-level portion of an AttributeRun.
type ParagraphStyle struct {
	StyleType     *int32
	IndentAmount  *int32
	Checklist     *Checklist
	BlockQuote    *int32
}

// Checklist binds a run to a checkbox item by UUID identity.
type Checklist struct {
	UUID []byte
	Done *int32
}

// ChecklistItem is the checklist extractor's derived output: one entry per
// distinct checklist UUID found among a note's attribute runs, except UUIDs
// whose combined text is blank.
type ChecklistItem struct {
	ID          string
	Text        string
	IsCompleted bool
	UUID        []byte
	LineNumber  int
	RangeStart  int
	RangeEnd    int
}

// ProgramConfig is the CLI's optional JSON configuration file format.
type ProgramConfig struct {
	Store     string `json:"store"`
	Limit     int    `json:"limit"`
	Out       string `json:"out"`
	LogLevel  string `json:"loglevel"`
	LogDate   bool   `json:"logdate"`
	Validate  bool   `json:"validate"`
	MetricsAddr string `json:"metrics-addr"`
}
