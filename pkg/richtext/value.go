package richtext

import "strings"

// Value serializes the buffer into the styled string persisted with a
// meditation. Plain spans are emitted as escaped text; styled spans are
// wrapped in <b>, <i>, <u> and a <span style="..."> carrying color and
// background-color declarations.
func (e *Editor) Value() string {
	var b strings.Builder
	for _, s := range e.spans {
		writeSpan(&b, s)
	}
	return b.String()
}

func writeSpan(b *strings.Builder, s span) {
	if len(s.text) == 0 {
		return
	}
	var closers []string
	if s.style.Bold {
		b.WriteString("<b>")
		closers = append(closers, "</b>")
	}
	if s.style.Italic {
		b.WriteString("<i>")
		closers = append(closers, "</i>")
	}
	if s.style.Underline {
		b.WriteString("<u>")
		closers = append(closers, "</u>")
	}
	if s.style.Color != "" || s.style.Highlight != "" {
		b.WriteString(`<span style="`)
		b.WriteString(styleAttr(s.style))
		b.WriteString(`">`)
		closers = append(closers, "</span>")
	}
	b.WriteString(escape(string(s.text)))
	for i := len(closers) - 1; i >= 0; i-- {
		b.WriteString(closers[i])
	}
}

func styleAttr(s Style) string {
	var parts []string
	if s.Color != "" {
		parts = append(parts, "color: "+s.Color)
	}
	if s.Highlight != "" {
		parts = append(parts, "background-color: "+s.Highlight)
	}
	return strings.Join(parts, "; ")
}

func escape(text string) string {
	text = strings.ReplaceAll(text, "&", "&amp;")
	text = strings.ReplaceAll(text, "<", "&lt;")
	text = strings.ReplaceAll(text, ">", "&gt;")
	return text
}

func unescape(text string) string {
	text = strings.ReplaceAll(text, "&lt;", "<")
	text = strings.ReplaceAll(text, "&gt;", ">")
	text = strings.ReplaceAll(text, "&amp;", "&")
	return text
}

// Load parses a previously serialized value into an editor. Recognized tags
// (<b>, <i>, <u>, <span style="...">) become span attributes; any other
// markup is kept verbatim as text, since stored values are never sanitized.
func Load(value string) *Editor {
	e := &Editor{}
	var stack []Style
	current := Style{}

	flush := func(text string) {
		if text == "" {
			return
		}
		e.spans = append(e.spans, span{text: []rune(unescape(text)), style: current})
	}

	rest := value
	for {
		lt := strings.IndexByte(rest, '<')
		if lt < 0 {
			flush(rest)
			break
		}
		flush(rest[:lt])
		rest = rest[lt:]

		gt := strings.IndexByte(rest, '>')
		if gt < 0 {
			flush(rest)
			break
		}
		tag := rest[:gt+1]

		next, ok := applyTag(tag, current)
		if !ok {
			// Unrecognized markup passes through as literal text.
			e.spans = append(e.spans, span{text: []rune(tag), style: current})
			rest = rest[gt+1:]
			continue
		}
		if strings.HasPrefix(tag, "</") {
			if len(stack) > 0 {
				current = stack[len(stack)-1]
				stack = stack[:len(stack)-1]
			} else {
				current = Style{}
			}
		} else {
			stack = append(stack, current)
			current = next
		}
		rest = rest[gt+1:]
	}

	e.merge()
	return e
}

// applyTag returns the style in effect inside tag, or ok=false when the tag
// is not one the serializer emits.
func applyTag(tag string, current Style) (Style, bool) {
	switch tag {
	case "<b>", "</b>":
		current.Bold = !strings.HasPrefix(tag, "</")
		return current, true
	case "<i>", "</i>":
		current.Italic = !strings.HasPrefix(tag, "</")
		return current, true
	case "<u>", "</u>":
		current.Underline = !strings.HasPrefix(tag, "</")
		return current, true
	case "</span>":
		current.Color = ""
		current.Highlight = ""
		return current, true
	}
	if !strings.HasPrefix(tag, `<span style="`) || !strings.HasSuffix(tag, `">`) {
		return current, false
	}
	attr := strings.TrimSuffix(strings.TrimPrefix(tag, `<span style="`), `">`)
	for _, decl := range strings.Split(attr, ";") {
		name, val, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		switch strings.TrimSpace(name) {
		case "color":
			current.Color = strings.TrimSpace(val)
		case "background-color":
			current.Highlight = strings.TrimSpace(val)
		}
	}
	return current, true
}
