// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package markdown folds a decoded note's run sequence over its text into a
// Markdown string. The algorithm runs in two passes: grouping consecutive
// runs that carry identical formatting, then emitting each group according
// to a fixed precedence of paragraph-level rules, falling back to inline
// character styling.
package markdown

import (
	"bytes"
	"strings"
	"unicode"

	"github.com/sakrist/ancrate/pkg/schema"
)

// noteSeparator joins multiple notes folded into one Markdown document.
const noteSeparator = "\n\n---\n\n"

// Reconstruct renders note as Markdown. If the body does not already begin
// with a heading, title is prepended as an H1.
func Reconstruct(note schema.Note, title string) string {
	body := reconstructBody(note)
	if strings.HasPrefix(body, "#") {
		return body
	}
	return "# " + title + "\n\n" + body
}

// JoinNotes concatenates already-reconstructed note bodies with the
// multi-note separator.
func JoinNotes(bodies []string) string {
	return strings.Join(bodies, noteSeparator)
}

func reconstructBody(note schema.Note) string {
	groups := groupRuns(note)
	runes := []rune(note.NoteText)

	var out strings.Builder
	for _, g := range groups {
		text := sliceClamped(runes, g.start, g.end)
		emitGroup(&out, g, text)
	}
	return out.String()
}

type runGroup struct {
	start, end int

	paragraphStyle *schema.ParagraphStyle
	fontWeight     *int32
	emphasisStyle  *int32
	underlined     *int32
	strikethrough  *int32
	superscript    *int32
	link           *string
}

// groupRuns merges consecutive runs that share a formatting signature, per
// the rule: paragraph styles match on checklist UUID, style_type and
// block_quote (indent is cosmetic and is not part of the grouping key), and
// every character attribute matches field by field.
func groupRuns(note schema.Note) []runGroup {
	total := len([]rune(note.NoteText))

	if len(note.AttributeRuns) == 0 {
		return []runGroup{{start: 0, end: total}}
	}

	var groups []runGroup
	offset := 0

	for _, run := range note.AttributeRuns {
		start := offset
		if start > total {
			start = total
		}
		end := offset + int(run.Length)
		if end > total {
			end = total
		}

		if n := len(groups); n > 0 && sameSignature(groups[n-1], run) {
			groups[n-1].end = end
		} else {
			groups = append(groups, runGroup{
				start:          start,
				end:            end,
				paragraphStyle: run.ParagraphStyle,
				fontWeight:     run.FontWeight,
				emphasisStyle:  run.EmphasisStyle,
				underlined:     run.Underlined,
				strikethrough:  run.Strikethrough,
				superscript:    run.Superscript,
				link:           run.Link,
			})
		}

		offset += int(run.Length)
	}

	return groups
}

func sameSignature(g runGroup, run schema.AttributeRun) bool {
	if !paragraphStyleEqual(g.paragraphStyle, run.ParagraphStyle) {
		return false
	}
	return int32PtrEqual(g.fontWeight, run.FontWeight) &&
		int32PtrEqual(g.emphasisStyle, run.EmphasisStyle) &&
		int32PtrEqual(g.underlined, run.Underlined) &&
		int32PtrEqual(g.strikethrough, run.Strikethrough) &&
		int32PtrEqual(g.superscript, run.Superscript) &&
		stringPtrEqual(g.link, run.Link)
}

func paragraphStyleEqual(a, b *schema.ParagraphStyle) bool {
	if a == nil && b == nil {
		return true
	}
	if (a == nil) != (b == nil) {
		return false
	}
	if !bytes.Equal(checklistUUID(a), checklistUUID(b)) {
		return false
	}
	return int32PtrEqual(a.StyleType, b.StyleType) && int32PtrEqual(a.BlockQuote, b.BlockQuote)
}

func checklistUUID(ps *schema.ParagraphStyle) []byte {
	if ps == nil || ps.Checklist == nil {
		return nil
	}
	return ps.Checklist.UUID
}

func int32PtrEqual(a, b *int32) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return *a == *b
}

func stringPtrEqual(a, b *string) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return *a == *b
}

func sliceClamped(runes []rune, start, end int) string {
	if start < 0 {
		start = 0
	}
	if end > len(runes) {
		end = len(runes)
	}
	if start > end {
		start = end
	}
	return string(runes[start:end])
}

func ensureNewline(out *strings.Builder) {
	if out.Len() > 0 && !strings.HasSuffix(out.String(), "\n") {
		out.WriteString("\n")
	}
}

// emitGroup applies the paragraph-rule precedence table to one group's
// text: checklist, heading, code, list, block quote, in that order, falling
// back to inline character styling when nothing paragraph-level matches.
func emitGroup(out *strings.Builder, g runGroup, rawText string) {
	text := rawText
	startOfLine := out.Len() == 0 || strings.HasSuffix(out.String(), "\n") || strings.HasPrefix(text, "\n")
	if strings.HasPrefix(text, "\n") {
		text = text[1:]
	}
	// A group boundary that falls on a source newline still needs that
	// newline reproduced after a single-line paragraph rule fires, so the
	// next group's own start-of-line check sees it.
	trailingNewline := strings.HasSuffix(text, "\n")

	ps := g.paragraphStyle

	if startOfLine && ps != nil && ps.Checklist != nil {
		if trimmed := strings.TrimSpace(text); trimmed != "" {
			ensureNewline(out)
			marker := "[ ]"
			if ps.Checklist.Done != nil && *ps.Checklist.Done != 0 {
				marker = "[x]"
			}
			out.WriteString("- " + marker + " " + trimmed)
			if trailingNewline {
				out.WriteString("\n")
			}
			return
		}
	}

	if startOfLine && ps != nil && ps.StyleType != nil && isHeadingStyle(*ps.StyleType) {
		ensureNewline(out)
		out.WriteString(headingPrefix(*ps.StyleType))
		out.WriteString(strings.TrimSuffix(text, "\n"))
		if trailingNewline {
			out.WriteString("\n")
		}
		return
	}

	if ps != nil && ps.StyleType != nil && *ps.StyleType == 4 {
		ensureNewline(out)
		emitCode(out, text)
		return
	}

	if ps != nil && ps.StyleType != nil && isListStyle(*ps.StyleType) {
		ensureNewline(out)
		emitList(out, text, *ps.StyleType, indentOf(ps))
		return
	}

	if startOfLine && ps != nil && ps.BlockQuote != nil && *ps.BlockQuote > 0 {
		ensureNewline(out)
		out.WriteString("> " + strings.TrimSuffix(text, "\n"))
		if trailingNewline {
			out.WriteString("\n")
		}
		return
	}

	out.WriteString(applyCharacterStyling(text, g))
}

func isHeadingStyle(styleType int32) bool {
	return styleType == 0 || styleType == 1 || styleType == 2
}

func headingPrefix(styleType int32) string {
	switch styleType {
	case 0:
		return "# "
	case 1:
		return "## "
	default:
		return "### "
	}
}

func isListStyle(styleType int32) bool {
	if styleType >= 100 && styleType <= 103 {
		return true
	}
	if styleType >= 200 && styleType <= 203 {
		return true
	}
	return styleType > 50
}

func listMarker(styleType int32) string {
	switch styleType {
	case 100:
		return "- "
	case 101:
		return "* "
	case 102:
		return "1. "
	case 103:
		return "- "
	case 200:
		return "1. "
	case 201:
		return "1) "
	case 202:
		return "a. "
	case 203:
		return "i. "
	default:
		return "- "
	}
}

func indentOf(ps *schema.ParagraphStyle) int {
	if ps.IndentAmount == nil {
		return 0
	}
	return int(*ps.IndentAmount)
}

func emitCode(out *strings.Builder, text string) {
	if strings.Contains(text, "\n") {
		out.WriteString("```\n" + text + "\n```")
		return
	}
	out.WriteString("`" + text + "`")
}

// emitList applies the list prefix to each non-empty line of text, leaving
// blank lines untouched so vertical spacing in the source note survives.
func emitList(out *strings.Builder, text string, styleType int32, indent int) {
	prefix := strings.Repeat("  ", indent) + listMarker(styleType)
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line != "" {
			out.WriteString(prefix + line)
		}
		if i != len(lines)-1 {
			out.WriteString("\n")
		}
	}
}

// applyCharacterStyling wraps text with inline Markdown/HTML markup for
// whichever character attributes g carries, innermost first: link, bold,
// italic, strikethrough, underline, then superscript/subscript. Styling is
// skipped for text that is empty or made up only of punctuation and
// whitespace, to avoid fragmenting markup around bare delimiters.
func applyCharacterStyling(text string, g runGroup) string {
	if isPunctOrSpaceOnly(text) {
		return text
	}

	result := text
	if g.link != nil && *g.link != "" {
		result = "[" + result + "](" + *g.link + ")"
	}
	if g.fontWeight != nil && *g.fontWeight > 0 {
		result = "**" + result + "**"
	}
	if g.emphasisStyle != nil && *g.emphasisStyle > 0 {
		result = "_" + result + "_"
	}
	if g.strikethrough != nil && *g.strikethrough > 0 {
		result = "~~" + result + "~~"
	}
	if g.underlined != nil && *g.underlined > 0 {
		result = "<u>" + result + "</u>"
	}
	if g.superscript != nil {
		switch {
		case *g.superscript > 0:
			result = "<sup>" + result + "</sup>"
		case *g.superscript < 0:
			result = "<sub>" + result + "</sub>"
		}
	}
	return result
}

func isPunctOrSpaceOnly(s string) bool {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return true
	}
	for _, r := range trimmed {
		if !unicode.IsPunct(r) && !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}
