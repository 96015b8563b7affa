// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package wireformat decodes the length-delimited, varint-tagged protobuf
// messages the notes application uses to store a note's rich-text body. It
// deliberately does not use generated (protoc-gen-go) message types: the
// decoder's entire job is to tolerate a message that does not perfectly
// match the schema (truncated runs, unknown fields, a missing wrapper), and
// a generated struct's Unmarshal fails closed on exactly those cases.
//
// Field numbers below are fixed by the external source format. They are
// consulted the same way a generated .pb.go file's constants would be; there
// is no .proto file shipped with this repository; these are reverse
// engineered from known-good sample notes.
package wireformat

// NoteStoreProto (outer container).
const (
	fieldContainerDocument = 2
)

// Document.
const (
	fieldDocumentVersion = 1
	fieldDocumentNote    = 2
)

// Note.
const (
	fieldNoteText          = 2
	fieldNoteAttributeRun  = 5
)

// AttributeRun.
const (
	fieldRunLength         = 1
	fieldRunParagraphStyle = 2
	fieldRunFontWeight     = 5
	fieldRunEmphasisStyle  = 7
	fieldRunUnderlined     = 8
	fieldRunStrikethrough  = 9
	fieldRunSuperscript    = 10
	fieldRunLink           = 12
)

// ParagraphStyle.
const (
	fieldParaStyleType    = 1
	fieldParaIndentAmount = 4
	fieldParaChecklist    = 6
	fieldParaBlockQuote   = 9
)

// Checklist.
const (
	fieldChecklistUUID = 1
	fieldChecklistDone = 3
)
