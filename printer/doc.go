package printer

import "strings"

// Doc is a width-aware layout tree. Rendering measures each group's flat
// width and either keeps it on one line or breaks its soft lines.
type Doc interface {
	isDoc()
}

type textDoc struct{ s string }

type concatDoc struct{ docs []Doc }

// lineDoc renders as flat text while its enclosing group fits on one line and
// as a line break otherwise. A hard line always breaks.
type lineDoc struct {
	flat string
	hard bool
}

type indentDoc struct {
	cols int
	doc  Doc
}

type groupDoc struct {
	doc    Doc
	broken bool
}

type ifBreakDoc struct{ brk, flat Doc }

// fillDoc lays words out greedily, breaking between words when the next word
// would overflow the print width.
type fillDoc struct{ words []string }

// verbatimDoc emits raw text. Its line breaks are rewritten to the configured
// style, its lines are not prefixed with the current indentation, and
// trailing whitespace is trimmed like everywhere else.
type verbatimDoc struct{ s string }

func (textDoc) isDoc()     {}
func (concatDoc) isDoc()   {}
func (lineDoc) isDoc()     {}
func (indentDoc) isDoc()   {}
func (groupDoc) isDoc()    {}
func (ifBreakDoc) isDoc()  {}
func (fillDoc) isDoc()     {}
func (verbatimDoc) isDoc() {}

// Text emits s literally. It must not contain line breaks.
func Text(s string) Doc { return textDoc{s: s} }

// Concat joins docs in order.
func Concat(docs ...Doc) Doc { return concatDoc{docs: docs} }

// HardLine always breaks the line.
func HardLine() Doc { return lineDoc{hard: true} }

// SoftLine breaks only when the enclosing group does not fit.
func SoftLine() Doc { return lineDoc{} }

// SpaceOrLine renders as a single space when flat and as a line break when
// the group breaks.
func SpaceOrLine() Doc { return lineDoc{flat: " "} }

// LineFlat renders as s when flat and as a line break when the group breaks.
func LineFlat(s string) Doc { return lineDoc{flat: s} }

// Indent renders child lines indented by cols more columns, or one tab when
// tabs are requested.
func Indent(cols int, doc Doc) Doc { return indentDoc{cols: cols, doc: doc} }

// Group tries to render doc on a single line and breaks its soft lines when
// the flat form would exceed the print width.
func Group(doc Doc) Doc { return groupDoc{doc: doc} }

// GroupBroken is a group that always renders in broken form.
func GroupBroken(doc Doc) Doc { return groupDoc{doc: doc, broken: true} }

// IfBreak renders brk in broken groups and flat in flat ones.
func IfBreak(brk, flat Doc) Doc { return ifBreakDoc{brk: brk, flat: flat} }

// Fill word-wraps words at the print width using single spaces.
func Fill(words []string) Doc { return fillDoc{words: words} }

// Verbatim emits pre-formatted text whose lines keep their own leading
// whitespace.
func Verbatim(s string) Doc { return verbatimDoc{s: s} }

type frame struct {
	indent string
	flat   bool
	doc    Doc
}

type renderer struct {
	opts  *Options
	lines []string
	line  []rune
	col   int
}

// Render lays out a doc and returns the output lines, without a final line
// break.
func Render(doc Doc, opts *Options) []string {
	r := &renderer{opts: opts}
	r.render(doc)
	r.flushLine()
	return r.lines
}

func (r *renderer) write(s string) {
	for _, c := range s {
		r.line = append(r.line, c)
	}
	r.col += len([]rune(s))
}

func (r *renderer) flushLine() {
	s := string(r.line)
	if r.opts.TrimTrailingWhitespaces {
		s = strings.TrimRight(s, " \t")
	}
	r.lines = append(r.lines, s)
	r.line = r.line[:0]
	r.col = 0
}

func (r *renderer) newline(indent string) {
	r.flushLine()
	r.write(indent)
}

func (r *renderer) indentUnit(cols int) string {
	if cols <= 0 {
		return ""
	}
	if r.opts.UseTabs {
		return "\t"
	}
	return strings.Repeat(" ", cols)
}

func (r *renderer) render(doc Doc) {
	stack := []frame{{doc: doc}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		switch t := f.doc.(type) {
		case textDoc:
			r.write(t.s)
		case concatDoc:
			for i := len(t.docs) - 1; i >= 0; i-- {
				stack = append(stack, frame{indent: f.indent, flat: f.flat, doc: t.docs[i]})
			}
		case lineDoc:
			if f.flat && !t.hard {
				r.write(t.flat)
			} else {
				r.newline(f.indent)
			}
		case indentDoc:
			stack = append(stack, frame{indent: f.indent + r.indentUnit(t.cols), flat: f.flat, doc: t.doc})
		case groupDoc:
			flat := f.flat || (!t.broken && r.fits(t.doc))
			stack = append(stack, frame{indent: f.indent, flat: flat, doc: t.doc})
		case ifBreakDoc:
			if f.flat {
				stack = append(stack, frame{indent: f.indent, flat: f.flat, doc: t.flat})
			} else {
				stack = append(stack, frame{indent: f.indent, flat: f.flat, doc: t.brk})
			}
		case fillDoc:
			for i, w := range t.words {
				if i > 0 {
					if r.col+1+len([]rune(w)) > r.opts.PrintWidth {
						r.newline(f.indent)
					} else {
						r.write(" ")
					}
				}
				r.write(w)
			}
		case verbatimDoc:
			r.writeVerbatim(t.s)
		}
	}
}

func (r *renderer) writeVerbatim(s string) {
	lines := splitLines(s)
	for i, ln := range lines {
		if i > 0 {
			r.newline("")
		}
		r.write(ln)
	}
}

// fits reports whether the flat rendering of doc fits in the remaining width
// of the current line.
func (r *renderer) fits(doc Doc) bool {
	w, ok := flatWidth(doc)
	return ok && r.col+w <= r.opts.PrintWidth
}

// flatWidth measures the single-line width of doc. It reports false when doc
// cannot be rendered flat at all.
func flatWidth(doc Doc) (int, bool) {
	switch t := doc.(type) {
	case textDoc:
		return len([]rune(t.s)), true
	case concatDoc:
		sum := 0
		for _, d := range t.docs {
			w, ok := flatWidth(d)
			if !ok {
				return 0, false
			}
			sum += w
		}
		return sum, true
	case lineDoc:
		if t.hard {
			return 0, false
		}
		return len([]rune(t.flat)), true
	case indentDoc:
		return flatWidth(t.doc)
	case groupDoc:
		if t.broken {
			return 0, false
		}
		return flatWidth(t.doc)
	case ifBreakDoc:
		return flatWidth(t.flat)
	case fillDoc:
		sum := 0
		for i, w := range t.words {
			if i > 0 {
				sum++
			}
			sum += len([]rune(w))
		}
		return sum, true
	case verbatimDoc:
		if strings.ContainsAny(t.s, "\r\n") {
			return 0, false
		}
		return len([]rune(t.s)), true
	}
	return 0, true
}

// splitLines splits on any of the three line break forms.
func splitLines(s string) []string {
	var out []string
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\n':
			out = append(out, s[start:i])
			start = i + 1
		case '\r':
			out = append(out, s[start:i])
			if i+1 < len(s) && s[i+1] == '\n' {
				i++
			}
			start = i + 1
		}
	}
	return append(out, s[start:])
}
