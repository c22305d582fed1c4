// Package markup implements the inline style convention shared by widgets and
// the view layer. Widgets emit plain text with paired [[EFFECT_<NAME>]] tags;
// Parse turns that text into styled spans without touching any terminal state.
package markup

import "strings"

const (
	tagOpen  = "[[EFFECT_"
	tagClose = "]]"
)

// Effect names understood by Parse.
const (
	Reverse   = "REVERSE"
	Bold      = "BOLD"
	Underline = "UNDERLINE"

	ColorGreen     = "COLOR_GREEN"
	ColorRed       = "COLOR_RED"
	ColorBlue      = "COLOR_BLUE"
	ColorYellow    = "COLOR_YELLOW"
	ColorGreenGrey = "COLOR_GREEN_GREY"
)

var known = map[string]bool{
	Reverse:        true,
	Bold:           true,
	Underline:      true,
	ColorGreen:     true,
	ColorRed:       true,
	ColorBlue:      true,
	ColorYellow:    true,
	ColorGreenGrey: true,
}

// Attrs is the attribute set active for a span. Color is empty when the
// consumer's default text color applies.
type Attrs struct {
	Reverse   bool
	Bold      bool
	Underline bool
	Color     string
}

// Span is a run of text sharing one attribute set. Text may contain newlines.
type Span struct {
	Text  string
	Attrs Attrs
}

// Tag returns the marker for name.
func Tag(name string) string {
	return tagOpen + name + tagClose
}

// Wrap surrounds text with a pair of name markers. Empty text is returned
// unchanged so no empty pair is emitted.
func Wrap(name, text string) string {
	if text == "" {
		return text
	}
	t := Tag(name)
	return t + text + t
}

func isColor(name string) bool {
	return strings.HasPrefix(name, "COLOR_")
}

// state tracks toggled effects and the color stack while scanning.
type state struct {
	effects map[string]bool
	colors  []string
}

func (s *state) apply(name string) {
	if !known[name] {
		return
	}
	if isColor(name) {
		if n := len(s.colors); n > 0 && s.colors[n-1] == name {
			s.colors = s.colors[:n-1]
			return
		}
		s.colors = append(s.colors, name)
		return
	}
	if s.effects[name] {
		delete(s.effects, name)
		return
	}
	s.effects[name] = true
}

func (s *state) attrs() Attrs {
	a := Attrs{
		Reverse:   s.effects[Reverse],
		Bold:      s.effects[Bold],
		Underline: s.effects[Underline],
	}
	if n := len(s.colors); n > 0 {
		a.Color = s.colors[n-1]
	}
	return a
}

// scan walks text calling emit for every literal run and tag for every marker.
// An opening sequence with no closing "]]" is treated as literal text.
func scan(text string, emit func(string), tag func(string)) {
	for text != "" {
		i := strings.Index(text, tagOpen)
		if i < 0 {
			emit(text)
			return
		}
		rest := text[i+len(tagOpen):]
		j := strings.Index(rest, tagClose)
		if j < 0 {
			emit(text)
			return
		}
		if i > 0 {
			emit(text[:i])
		}
		tag(rest[:j])
		text = rest[j+len(tagClose):]
	}
}

// Parse splits text into spans. Effects toggle on each occurrence; colors
// stack, a repeated top color pops it. Unknown tags are dropped.
func Parse(text string) []Span {
	st := &state{effects: make(map[string]bool)}
	var spans []Span
	scan(text,
		func(s string) {
			a := st.attrs()
			if n := len(spans); n > 0 && spans[n-1].Attrs == a {
				spans[n-1].Text += s
				return
			}
			spans = append(spans, Span{Text: s, Attrs: a})
		},
		st.apply,
	)
	return spans
}

// Strip returns the visible text with every marker removed.
func Strip(text string) string {
	var b strings.Builder
	scan(text, func(s string) { b.WriteString(s) }, func(string) {})
	return b.String()
}

// Balanced reports whether every effect and color opened in text is closed
// again before the end.
func Balanced(text string) bool {
	st := &state{effects: make(map[string]bool)}
	scan(text, func(string) {}, st.apply)
	return len(st.effects) == 0 && len(st.colors) == 0
}

// Lines splits spans at newlines, keeping attributes, so each returned slice
// is one rendered line.
func Lines(spans []Span) [][]Span {
	lines := [][]Span{nil}
	for _, sp := range spans {
		parts := strings.Split(sp.Text, "\n")
		for i, p := range parts {
			if i > 0 {
				lines = append(lines, nil)
			}
			if p != "" {
				last := len(lines) - 1
				lines[last] = append(lines[last], Span{Text: p, Attrs: sp.Attrs})
			}
		}
	}
	return lines
}
