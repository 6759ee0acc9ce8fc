// Package richtext implements the inline formatting engine behind meditation
// content fields. Text is held as a sequence of styled spans with a current
// selection; formatting operations split spans at the selection boundaries
// and toggle or set attributes on the covered range. Values serialize to a
// small HTML-ish styled string, the same opaque format the journal persists.
package richtext

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoSelection is returned by operations that require a non-empty selection.
var ErrNoSelection = errors.New("no text selected")

// ErrInvalidSelection is returned when a selection range falls outside the text.
var ErrInvalidSelection = errors.New("selection out of range")

// Style holds the inline attributes of one span of text. Empty Color and
// Highlight mean the attribute is unset.
type Style struct {
	Bold      bool
	Italic    bool
	Underline bool
	Color     string
	Highlight string
}

func (s Style) isZero() bool {
	return !s.Bold && !s.Italic && !s.Underline && s.Color == "" && s.Highlight == ""
}

type span struct {
	text  []rune
	style Style
}

// Editor is a styled text buffer with a selection. The zero value is an
// empty editor with an empty selection at offset 0.
type Editor struct {
	spans    []span
	selStart int
	selEnd   int
}

// New returns an editor holding plain unstyled text.
func New(text string) *Editor {
	e := &Editor{}
	if text != "" {
		e.spans = []span{{text: []rune(text)}}
	}
	return e
}

// Len returns the text length in runes.
func (e *Editor) Len() int {
	n := 0
	for _, s := range e.spans {
		n += len(s.text)
	}
	return n
}

// Text returns the plain text without any formatting.
func (e *Editor) Text() string {
	var b strings.Builder
	for _, s := range e.spans {
		b.WriteString(string(s.text))
	}
	return b.String()
}

// Select sets the selection to the rune range [start, end).
func (e *Editor) Select(start, end int) error {
	if start < 0 || end < start || end > e.Len() {
		return fmt.Errorf("%w: [%d, %d) over %d runes", ErrInvalidSelection, start, end, e.Len())
	}
	e.selStart, e.selEnd = start, end
	return nil
}

// SelectAll selects the entire text.
func (e *Editor) SelectAll() {
	e.selStart, e.selEnd = 0, e.Len()
}

// Selection returns the current selection bounds.
func (e *Editor) Selection() (start, end int) {
	return e.selStart, e.selEnd
}

// HasSelection reports whether the selection covers at least one rune.
func (e *Editor) HasSelection() bool {
	return e.selEnd > e.selStart
}

// InsertText inserts plain text at the selection, replacing any selected
// range. Inserted text takes the style of the span it lands in. The
// selection collapses to the end of the insertion.
func (e *Editor) InsertText(text string) {
	if e.HasSelection() {
		e.deleteRange(e.selStart, e.selEnd)
		e.selEnd = e.selStart
	}
	if text == "" {
		return
	}

	runes := []rune(text)
	offset := 0
	for i := range e.spans {
		if e.selStart <= offset+len(e.spans[i].text) {
			at := e.selStart - offset
			s := &e.spans[i]
			s.text = append(s.text[:at], append(runes, s.text[at:]...)...)
			e.selStart += len(runes)
			e.selEnd = e.selStart
			return
		}
		offset += len(e.spans[i].text)
	}
	e.spans = append(e.spans, span{text: runes})
	e.selStart += len(runes)
	e.selEnd = e.selStart
}

func (e *Editor) deleteRange(start, end int) {
	e.splitAt(start)
	e.splitAt(end)
	var kept []span
	offset := 0
	for _, s := range e.spans {
		if offset < start || offset >= end {
			kept = append(kept, s)
		}
		offset += len(s.text)
	}
	e.spans = kept
}

// splitAt splits the span containing the rune offset so that a span boundary
// falls exactly at pos.
func (e *Editor) splitAt(pos int) {
	offset := 0
	for i, s := range e.spans {
		if pos > offset && pos < offset+len(s.text) {
			at := pos - offset
			left := span{text: s.text[:at], style: s.style}
			right := span{text: s.text[at:], style: s.style}
			e.spans = append(e.spans[:i], append([]span{left, right}, e.spans[i+1:]...)...)
			return
		}
		offset += len(s.text)
	}
}

// restyle applies fn to every span covered by the current selection.
func (e *Editor) restyle(fn func(*Style)) {
	e.splitAt(e.selStart)
	e.splitAt(e.selEnd)
	offset := 0
	for i := range e.spans {
		if offset >= e.selStart && offset < e.selEnd {
			fn(&e.spans[i].style)
		}
		offset += len(e.spans[i].text)
	}
	e.merge()
}

// merge joins adjacent spans with equal styles.
func (e *Editor) merge() {
	if len(e.spans) < 2 {
		return
	}
	merged := e.spans[:1]
	for _, s := range e.spans[1:] {
		last := &merged[len(merged)-1]
		if s.style == last.style {
			last.text = append(last.text, s.text...)
		} else {
			merged = append(merged, s)
		}
	}
	e.spans = merged
}

// selectionHas reports whether every rune in the selection satisfies pred.
// An empty selection reports false.
func (e *Editor) selectionHas(pred func(Style) bool) bool {
	if !e.HasSelection() {
		return false
	}
	offset := 0
	for _, s := range e.spans {
		spanEnd := offset + len(s.text)
		if spanEnd > e.selStart && offset < e.selEnd && !pred(s.style) {
			return false
		}
		offset = spanEnd
	}
	return true
}

// ApplyBold toggles bold on the selection. If the whole selection is already
// bold it is cleared, otherwise set. An empty selection is a no-op.
func (e *Editor) ApplyBold() {
	set := !e.selectionHas(func(s Style) bool { return s.Bold })
	e.restyle(func(s *Style) { s.Bold = set })
}

// ApplyItalic toggles italic on the selection.
func (e *Editor) ApplyItalic() {
	set := !e.selectionHas(func(s Style) bool { return s.Italic })
	e.restyle(func(s *Style) { s.Italic = set })
}

// ApplyUnderline toggles underline on the selection.
func (e *Editor) ApplyUnderline() {
	set := !e.selectionHas(func(s Style) bool { return s.Underline })
	e.restyle(func(s *Style) { s.Underline = set })
}

// ApplyColor sets the text color of the selection. It requires a non-empty
// selection.
func (e *Editor) ApplyColor(color string) error {
	if !e.HasSelection() {
		return ErrNoSelection
	}
	e.restyle(func(s *Style) { s.Color = color })
	return nil
}

// ApplyHighlight sets the background color of the selection. It requires a
// non-empty selection.
func (e *Editor) ApplyHighlight(color string) error {
	if !e.HasSelection() {
		return ErrNoSelection
	}
	e.restyle(func(s *Style) { s.Highlight = color })
	return nil
}

// ClearFormatting removes every attribute from the selection.
func (e *Editor) ClearFormatting() {
	e.restyle(func(s *Style) { *s = Style{} })
}
