// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package wireformat

import (
	"google.golang.org/protobuf/encoding/protowire"

	"github.com/sakrist/ancrate/pkg/schema"
)

// Decode attempts, in order: outer container, direct Document, bare Note.
// The first successful attempt wins. If all three fail, ErrDecodeFailed is
// returned and the caller falls back to snippet-only content.
func Decode(buf []byte) (*schema.Document, error) {
	if doc, ok := decodeContainer(buf); ok {
		return doc, nil
	}
	if doc, ok := decodeDocumentTop(buf); ok {
		return doc, nil
	}
	if doc, ok := decodeNoteAsDocument(buf); ok {
		return doc, nil
	}
	return nil, ErrDecodeFailed
}

// decodeContainer tries buf as NoteStoreProto{ document: Document }.
func decodeContainer(buf []byte) (*schema.Document, bool) {
	var docBytes []byte
	found := false

	b := buf
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			break
		}
		b = b[n:]

		if num == fieldContainerDocument && typ == protowire.BytesType {
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				break
			}
			docBytes = v
			found = true
			b = b[n:]
			continue
		}

		n = protowire.ConsumeFieldValue(num, typ, b)
		if n < 0 {
			break
		}
		b = b[n:]
	}

	if !found {
		return nil, false
	}

	doc, ok := decodeDocumentMessage(docBytes)
	if !ok || doc == nil {
		return nil, false
	}
	return doc, true
}

// decodeDocumentTop tries buf directly as a Document message.
func decodeDocumentTop(buf []byte) (*schema.Document, bool) {
	return decodeDocumentMessage(buf)
}

// decodeNoteAsDocument tries buf as a bare Note, wrapping success as
// Document{ Note: <that Note> }.
func decodeNoteAsDocument(buf []byte) (*schema.Document, bool) {
	note, ok := decodeNoteMessage(buf)
	if !ok {
		return nil, false
	}
	return &schema.Document{Note: *note}, true
}

func decodeDocumentMessage(buf []byte) (*schema.Document, bool) {
	if len(buf) == 0 {
		return nil, false
	}

	var version int32
	var noteBytes []byte
	haveNote := false

	b := buf
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			break
		}
		b = b[n:]

		switch {
		case num == fieldDocumentVersion && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, false
			}
			version = int32(v)
			b = b[n:]

		case num == fieldDocumentNote && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, false
			}
			noteBytes = v
			haveNote = true
			b = b[n:]

		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return nil, false
			}
			b = b[n:]
		}
	}

	if !haveNote {
		return nil, false
	}

	note, ok := decodeNoteMessage(noteBytes)
	if !ok {
		return nil, false
	}

	return &schema.Document{Version: version, Note: *note}, true
}

func decodeNoteMessage(buf []byte) (*schema.Note, bool) {
	if len(buf) == 0 {
		return nil, false
	}

	note := &schema.Note{}
	sawAnything := false

	b := buf
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			break
		}
		b = b[n:]

		switch {
		case num == fieldNoteText && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return note, sawAnything
			}
			note.NoteText = string(v)
			sawAnything = true
			b = b[n:]

		case num == fieldNoteAttributeRun && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return note, sawAnything
			}
			if run, ok := decodeAttributeRunMessage(v); ok {
				note.AttributeRuns = append(note.AttributeRuns, *run)
				sawAnything = true
			}
			b = b[n:]

		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return note, sawAnything
			}
			b = b[n:]
		}
	}

	if !sawAnything {
		return nil, false
	}
	return note, true
}

func decodeAttributeRunMessage(buf []byte) (*schema.AttributeRun, bool) {
	run := &schema.AttributeRun{}

	b := buf
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			break
		}
		b = b[n:]

		switch {
		case num == fieldRunLength && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return run, true
			}
			run.Length = uint32(v)
			b = b[n:]

		case num == fieldRunParagraphStyle && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return run, true
			}
			if ps, ok := decodeParagraphStyleMessage(v); ok {
				run.ParagraphStyle = ps
			}
			b = b[n:]

		case num == fieldRunFontWeight && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return run, true
			}
			w := int32(v)
			run.FontWeight = &w
			b = b[n:]

		case num == fieldRunEmphasisStyle && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return run, true
			}
			e := int32(v)
			run.EmphasisStyle = &e
			b = b[n:]

		case num == fieldRunUnderlined && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return run, true
			}
			u := int32(v)
			run.Underlined = &u
			b = b[n:]

		case num == fieldRunStrikethrough && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return run, true
			}
			s := int32(v)
			run.Strikethrough = &s
			b = b[n:]

		case num == fieldRunSuperscript && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return run, true
			}
			sup := int32(v)
			run.Superscript = &sup
			b = b[n:]

		case num == fieldRunLink && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return run, true
			}
			link := string(v)
			run.Link = &link
			b = b[n:]

		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return run, true
			}
			b = b[n:]
		}
	}

	return run, true
}

func decodeParagraphStyleMessage(buf []byte) (*schema.ParagraphStyle, bool) {
	ps := &schema.ParagraphStyle{}

	b := buf
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			break
		}
		b = b[n:]

		switch {
		case num == fieldParaStyleType && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return ps, true
			}
			st := int32(v)
			ps.StyleType = &st
			b = b[n:]

		case num == fieldParaIndentAmount && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return ps, true
			}
			ind := int32(v)
			ps.IndentAmount = &ind
			b = b[n:]

		case num == fieldParaChecklist && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return ps, true
			}
			if cl, ok := decodeChecklistMessage(v); ok {
				ps.Checklist = cl
			}
			b = b[n:]

		case num == fieldParaBlockQuote && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return ps, true
			}
			bq := int32(v)
			ps.BlockQuote = &bq
			b = b[n:]

		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return ps, true
			}
			b = b[n:]
		}
	}

	return ps, true
}

func decodeChecklistMessage(buf []byte) (*schema.Checklist, bool) {
	cl := &schema.Checklist{}

	b := buf
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			break
		}
		b = b[n:]

		switch {
		case num == fieldChecklistUUID && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return cl, true
			}
			uuid := make([]byte, len(v))
			copy(uuid, v)
			cl.UUID = uuid
			b = b[n:]

		case num == fieldChecklistDone && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return cl, true
			}
			d := int32(v)
			cl.Done = &d
			b = b[n:]

		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return cl, true
			}
			b = b[n:]
		}
	}

	return cl, true
}
