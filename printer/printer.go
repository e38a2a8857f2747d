// Package printer renders a parsed YAML stream under a width-aware layout.
// It walks the typed AST views, builds a layout tree from the primitives in
// doc.go and serializes it with the configured line break and indentation.
package printer

import (
	"strings"

	"github.com/g-plane/pretty-yaml/ast"
	"github.com/g-plane/pretty-yaml/cst"
	"github.com/g-plane/pretty-yaml/token"
)

type printer struct {
	opts *Options
	tree *cst.Tree
}

// PrintTree renders a parsed stream under the given options. It never fails;
// errors recorded in the tree are ignored because they are already embedded
// in the tree content.
func PrintTree(stream *ast.Stream, opts *Options) []byte {
	if opts == nil {
		o := DefaultOptions()
		opts = &o
	}
	p := &printer{opts: opts, tree: stream.Tree()}
	lines := Render(p.printStream(stream), opts)
	for len(lines) > 0 && strings.TrimRight(lines[len(lines)-1], " \t") == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 {
		return []byte{}
	}
	lb := opts.lineBreak()
	return []byte(strings.Join(lines, lb) + lb)
}

func (p *printer) lineOf(n *cst.Node) int {
	if n == nil {
		return -1
	}
	return p.tree.Position(n.Offset()).Line
}

func indexOf(children []*cst.Node, n *cst.Node) int {
	for i, c := range children {
		if c == n {
			return i
		}
	}
	return -1
}

func subtreeHas(n *cst.Node, kind token.Kind) bool {
	if n.Kind() == kind {
		return true
	}
	for _, c := range n.Children() {
		if subtreeHas(c, kind) {
			return true
		}
	}
	return false
}

func isBlockNode(n ast.Node) bool {
	switch n.(type) {
	case *ast.BlockMap, *ast.BlockSeq:
		return true
	}
	return false
}

// splitComments partitions a trivia run into the comment still on the current
// line and the comments on their own lines below it.
func (p *printer) splitComments(tokens []*cst.Node) (inline string, own []string) {
	sawNewline := false
	for _, t := range tokens {
		switch t.Kind() {
		case token.NewlineType:
			sawNewline = true
		case token.CommentType:
			if !sawNewline && inline == "" {
				inline = p.formatComment(t.Text())
			} else {
				own = append(own, p.formatComment(t.Text()))
			}
		}
	}
	return inline, own
}

// triviaDocs renders the comments and collapsed blank lines of a trivia run
// preceding an element. Every comment doc ends with a hard line so the
// element follows on its own line.
func (p *printer) triviaDocs(trivia []*cst.Node, allowLeadingBlank bool) []Doc {
	var out []Doc
	newlines := 0
	emitted := false
	for _, t := range trivia {
		switch t.Kind() {
		case token.NewlineType:
			newlines++
		case token.CommentType:
			if newlines >= 2 && (emitted || allowLeadingBlank) {
				out = append(out, HardLine())
			}
			out = append(out, Text(p.formatComment(t.Text())), HardLine())
			emitted = true
			newlines = 0
		}
	}
	if newlines >= 2 && (emitted || allowLeadingBlank) {
		out = append(out, HardLine())
	}
	return out
}

func (p *printer) isIgnoreComment(text string) bool {
	if p.opts.IgnoreCommentDirective == "" {
		return false
	}
	body := strings.TrimSpace(strings.TrimPrefix(text, "#"))
	return body == p.opts.IgnoreCommentDirective
}

func (p *printer) hasIgnoreComment(trivia []*cst.Node) bool {
	for _, t := range trivia {
		if t.Kind() == token.CommentType && p.isIgnoreComment(t.Text()) {
			return true
		}
	}
	return false
}

// verbatimNode emits the original source slice of a node, trimmed of
// trailing whitespace, with line breaks rewritten to the configured style.
func verbatimNode(n *cst.Node) Doc {
	return Verbatim(strings.TrimRight(n.Text(), " \t\r\n"))
}

func (p *printer) printNode(n ast.Node) Doc {
	switch t := n.(type) {
	case *ast.Scalar:
		return p.printScalar(t)
	case *ast.Alias:
		return Text("*" + t.Name())
	case *ast.BlockMap:
		return p.printBlockMap(t)
	case *ast.BlockSeq:
		return p.printBlockSeq(t)
	case *ast.FlowMap:
		return p.printFlowMap(t)
	case *ast.FlowSeq:
		return p.printFlowSeq(t)
	case *ast.Properties:
		return p.printProperties(t)
	}
	return Text("")
}

func (p *printer) printStream(s *ast.Stream) Doc {
	var parts []Doc
	first := true
	var run []*cst.Node
	for _, c := range s.CST().Children() {
		switch {
		case c.Kind() == token.ByteOrderMarkType:
			parts = append(parts, Text("\uFEFF"))
		case c.Kind().IsTrivia():
			run = append(run, c)
		case c.Kind() == token.DocumentType:
			if !first {
				parts = append(parts, HardLine())
			}
			ignored := p.hasIgnoreComment(run)
			parts = append(parts, p.triviaDocs(run, !first)...)
			doc := ast.Wrap(p.tree, c).(*ast.Document)
			if ignored {
				parts = append(parts, verbatimNode(c))
			} else {
				parts = append(parts, p.printDocument(doc))
			}
			run = nil
			first = false
		default:
			// stray token produced by error recovery
			if !first {
				parts = append(parts, HardLine())
			}
			parts = append(parts, p.triviaDocs(run, !first)...)
			parts = append(parts, Text(c.Text()))
			run = nil
			first = false
		}
	}
	// comments after the last document
	newlines := 0
	emitted := !first
	for _, t := range run {
		switch t.Kind() {
		case token.NewlineType:
			newlines++
		case token.CommentType:
			if emitted {
				parts = append(parts, HardLine())
				if newlines >= 2 {
					parts = append(parts, HardLine())
				}
			}
			parts = append(parts, Text(p.formatComment(t.Text())))
			emitted = true
			newlines = 0
		}
	}
	return Concat(parts...)
}

func (p *printer) printDocument(d *ast.Document) Doc {
	var parts []Doc
	prevEndLine := -1
	emitted := false
	newlines := 0
	ignoreNext := false
	sep := func(startLine int) bool {
		// reports whether the element continues the current output line
		if emitted && startLine == prevEndLine {
			parts = append(parts, Text(" "))
			return true
		}
		if emitted {
			parts = append(parts, HardLine())
			if newlines >= 2 {
				parts = append(parts, HardLine())
			}
		}
		return false
	}
	for _, c := range d.CST().Children() {
		if c.Kind().IsTrivia() {
			switch c.Kind() {
			case token.NewlineType:
				newlines++
			case token.CommentType:
				startLine := p.lineOf(c)
				if emitted && startLine == prevEndLine {
					parts = append(parts, Text(" "), Text(p.formatComment(c.Text())))
				} else {
					sep(startLine)
					parts = append(parts, Text(p.formatComment(c.Text())))
				}
				if p.isIgnoreComment(c.Text()) {
					ignoreNext = true
				}
				prevEndLine = startLine
				emitted = true
				newlines = 0
			}
			continue
		}
		startLine := p.lineOf(c.FirstToken())
		endLine := p.lineOf(c.LastToken())
		var doc Doc
		switch c.Kind() {
		case token.DocumentHeaderType:
			doc = Text("---")
		case token.DocumentEndType:
			doc = Text("...")
		case token.DirectiveNodeType:
			doc = p.printDirective(ast.Wrap(p.tree, c).(*ast.Directive))
		default:
			if ignoreNext {
				doc = verbatimNode(c)
				ignoreNext = false
			} else if n := ast.Wrap(p.tree, c); n != nil {
				doc = p.printNode(n)
			} else {
				doc = Text(c.Text())
			}
		}
		sep(startLine)
		parts = append(parts, doc)
		prevEndLine = endLine
		emitted = true
		newlines = 0
	}
	return Concat(parts...)
}

func (p *printer) printDirective(d *ast.Directive) Doc {
	words := []string{"%" + d.Name()}
	words = append(words, d.Params()...)
	doc := Text(strings.Join(words, " "))
	if inline, _ := p.splitComments(allTrivia(d.CST().Children())); inline != "" {
		return Concat(doc, Text(" "), Text(inline))
	}
	return doc
}

func allTrivia(children []*cst.Node) []*cst.Node {
	var out []*cst.Node
	for _, c := range children {
		if c.Kind().IsTrivia() {
			out = append(out, c)
		}
	}
	return out
}

func (p *printer) printProperties(pr *ast.Properties) Doc {
	var words []string
	ch := pr.CST().Children()
	for i := 0; i < len(ch); i++ {
		switch ch[i].Kind() {
		case token.AnchorType:
			w := "&"
			if i+1 < len(ch) && ch[i+1].Kind() == token.AnchorNameType {
				w += ch[i+1].Text()
				i++
			}
			words = append(words, w)
		case token.TagType:
			words = append(words, ch[i].Text())
		}
	}
	return Text(strings.Join(words, " "))
}

func (p *printer) printBlockMap(m *ast.BlockMap) Doc {
	var parts []Doc
	first := true
	for _, e := range m.Entries() {
		lead := ast.LeadingTrivia(m.CST(), e.CST())
		if !first {
			parts = append(parts, HardLine())
		}
		ignored := p.hasIgnoreComment(lead)
		parts = append(parts, p.triviaDocs(lead, !first)...)
		if ignored {
			parts = append(parts, verbatimNode(e.CST()))
		} else {
			parts = append(parts, p.printBlockMapEntry(e))
		}
		first = false
	}
	return Concat(parts...)
}

func (p *printer) printBlockSeq(s *ast.BlockSeq) Doc {
	var parts []Doc
	first := true
	for _, e := range s.Entries() {
		lead := ast.LeadingTrivia(s.CST(), e.CST())
		if !first {
			parts = append(parts, HardLine())
		}
		ignored := p.hasIgnoreComment(lead)
		parts = append(parts, p.triviaDocs(lead, !first)...)
		if ignored {
			parts = append(parts, verbatimNode(e.CST()))
		} else {
			parts = append(parts, p.printBlockSeqEntry(e))
		}
		first = false
	}
	return Concat(parts...)
}

func (p *printer) printBlockMapEntry(e *ast.BlockMapEntry) Doc {
	ch := e.CST().Children()
	colonIdx := -1
	for i, c := range ch {
		if c.Kind() == token.MappingValueType {
			colonIdx = i
			break
		}
	}
	key := e.Key()
	kprops := e.KeyProperties()
	v := e.Value()
	vprops := e.ValueProperties()
	valueIdx := -1
	if v != nil {
		valueIdx = indexOf(ch, v.CST())
	}

	var parts []Doc
	if e.IsExplicit() {
		parts = append(parts, Text("?"))
		if kprops != nil || key != nil {
			var keyFirst *cst.Node
			if kprops != nil {
				keyFirst = kprops.CST().FirstToken()
			} else {
				keyFirst = key.CST().FirstToken()
			}
			qTok := ch[0]
			if p.lineOf(keyFirst) == p.lineOf(qTok) {
				parts = append(parts, Text(" "))
				if kprops != nil {
					parts = append(parts, p.printProperties(kprops))
					if key != nil {
						parts = append(parts, Text(" "))
					}
				}
				if key != nil {
					parts = append(parts, Indent(2, p.printNode(key)))
				}
			} else {
				var inner []Doc
				inner = append(inner, HardLine())
				if kprops != nil {
					inner = append(inner, p.printProperties(kprops))
					if key != nil {
						inner = append(inner, Text(" "))
					}
				}
				if key != nil {
					inner = append(inner, p.printNode(key))
				}
				parts = append(parts, Indent(p.opts.IndentWidth, Concat(inner...)))
			}
		}
		if colonIdx >= 0 {
			parts = append(parts, HardLine(), Text(":"))
			parts = append(parts, p.entryValueDocs(ch, colonIdx, valueIdx, vprops, v)...)
		}
	} else {
		if kprops != nil {
			parts = append(parts, p.printProperties(kprops))
			if key != nil {
				parts = append(parts, Text(" "))
			}
		}
		if key != nil {
			parts = append(parts, p.printNode(key))
		}
		if colonIdx >= 0 {
			parts = append(parts, Text(":"))
			parts = append(parts, p.entryValueDocs(ch, colonIdx, valueIdx, vprops, v)...)
		}
	}
	if valueIdx >= 0 {
		if inline, _ := p.splitComments(allTrivia(ch[valueIdx+1:])); inline != "" {
			parts = append(parts, Text(" "), Text(inline))
		}
	}
	return Concat(parts...)
}

// entryValueDocs renders everything after a mapping ':' — the comments that
// followed the colon, the value properties and the value itself, with block
// collection values moved to the next line at the configured indentation.
func (p *printer) entryValueDocs(ch []*cst.Node, colonIdx, valueIdx int, vprops *ast.Properties, v ast.Node) []Doc {
	end := valueIdx
	if end < 0 {
		end = len(ch)
	}
	inline, own := p.splitComments(allTrivia(ch[colonIdx+1 : end]))

	var docs []Doc
	switch {
	case v == nil:
		if vprops != nil {
			docs = append(docs, Text(" "), p.printProperties(vprops))
		}
		if inline != "" {
			docs = append(docs, Text(" "), Text(inline))
		}
		for _, cm := range own {
			docs = append(docs, Indent(p.opts.IndentWidth, Concat(HardLine(), Text(cm))))
		}
	case isBlockNode(v):
		if vprops != nil {
			docs = append(docs, Text(" "), p.printProperties(vprops))
		}
		if inline != "" {
			docs = append(docs, Text(" "), Text(inline))
		}
		ind := p.opts.IndentWidth
		if _, isSeq := v.(*ast.BlockSeq); isSeq && !p.opts.IndentBlockSequenceInMap {
			ind = 0
		}
		inner := []Doc{HardLine()}
		for _, cm := range own {
			inner = append(inner, Text(cm), HardLine())
		}
		inner = append(inner, p.printNode(v))
		docs = append(docs, Indent(ind, Concat(inner...)))
	case len(own) > 0:
		if inline != "" {
			docs = append(docs, Text(" "), Text(inline))
		}
		inner := []Doc{HardLine()}
		for _, cm := range own {
			inner = append(inner, Text(cm), HardLine())
		}
		if vprops != nil {
			inner = append(inner, p.printProperties(vprops), Text(" "))
		}
		inner = append(inner, p.printNode(v))
		docs = append(docs, Indent(p.opts.IndentWidth, Concat(inner...)))
	default:
		docs = append(docs, Text(" "))
		if vprops != nil {
			docs = append(docs, p.printProperties(vprops), Text(" "))
		}
		docs = append(docs, p.printNode(v))
		if inline != "" {
			docs = append(docs, Text(" "), Text(inline))
		}
	}
	return docs
}

func (p *printer) printBlockSeqEntry(e *ast.BlockSeqEntry) Doc {
	ch := e.CST().Children()
	dash := e.DashToken()
	v := e.Value()
	props := e.Properties()
	valueIdx := -1
	if v != nil {
		valueIdx = indexOf(ch, v.CST())
	}
	end := valueIdx
	if end < 0 {
		end = len(ch)
	}
	inline, own := p.splitComments(allTrivia(ch[1:end]))

	var parts []Doc
	sameLine := v != nil && len(own) == 0 && p.lineOf(v.CST().FirstToken()) == p.lineOf(dash)
	switch {
	case v == nil:
		parts = append(parts, Text("-"))
		if props != nil {
			parts = append(parts, Text(" "), p.printProperties(props))
		}
		if inline != "" {
			parts = append(parts, Text(" "), Text(inline))
		}
		for _, cm := range own {
			parts = append(parts, Indent(p.opts.IndentWidth, Concat(HardLine(), Text(cm))))
		}
	case sameLine && isBlockNode(v):
		lead, ind := "- ", 2
		if _, isMap := v.(*ast.BlockMap); isMap && p.opts.DashSpacing == DashSpacingIndent && p.opts.IndentWidth > 2 {
			lead = "-" + strings.Repeat(" ", p.opts.IndentWidth-1)
			ind = p.opts.IndentWidth
		}
		parts = append(parts, Text(lead))
		if props != nil {
			parts = append(parts, p.printProperties(props), Text(" "))
		}
		parts = append(parts, Indent(ind, p.printNode(v)))
	case sameLine:
		parts = append(parts, Text("- "))
		if props != nil {
			parts = append(parts, p.printProperties(props), Text(" "))
		}
		parts = append(parts, Indent(2, p.printNode(v)))
	default:
		parts = append(parts, Text("-"))
		propsInline := props != nil && p.lineOf(props.CST().FirstToken()) == p.lineOf(dash)
		if propsInline {
			parts = append(parts, Text(" "), p.printProperties(props))
		}
		if inline != "" {
			parts = append(parts, Text(" "), Text(inline))
		}
		inner := []Doc{HardLine()}
		for _, cm := range own {
			inner = append(inner, Text(cm), HardLine())
		}
		if props != nil && !propsInline {
			inner = append(inner, p.printProperties(props), Text(" "))
		}
		inner = append(inner, p.printNode(v))
		parts = append(parts, Indent(p.opts.IndentWidth, Concat(inner...)))
	}
	if valueIdx >= 0 {
		if tin, _ := p.splitComments(allTrivia(ch[valueIdx+1:])); tin != "" {
			parts = append(parts, Text(" "), Text(tin))
		}
	}
	return Concat(parts...)
}

func (p *printer) printFlowSeq(s *ast.FlowSeq) Doc {
	return p.printFlowCollection(s.CST(), "[", "]", p.opts.BracketSpacing, p.opts.flowSequencePreferSingleLine())
}

func (p *printer) printFlowMap(m *ast.FlowMap) Doc {
	return p.printFlowCollection(m.CST(), "{", "}", p.opts.BraceSpacing, p.opts.flowMapPreferSingleLine())
}

func (p *printer) printFlowCollection(node *cst.Node, open, close string, spacing, preferSingle bool) Doc {
	var entries []*cst.Node
	for _, c := range node.Children() {
		if c.Kind().IsEntry() {
			entries = append(entries, c)
		}
	}
	hasComment := subtreeHas(node, token.CommentType)
	if len(entries) == 0 && !hasComment {
		return Text(open + close)
	}
	leadingBreak := false
	if len(entries) > 0 {
		for _, t := range ast.LeadingTrivia(node, entries[0]) {
			if t.Kind() == token.NewlineType {
				leadingBreak = true
			}
		}
	} else {
		leadingBreak = subtreeHas(node, token.NewlineType)
	}
	broken := hasComment || (!preferSingle && leadingBreak)
	sp := ""
	if spacing {
		sp = " "
	}

	var inner []Doc
	inner = append(inner, LineFlat(sp))
	if len(entries) == 0 {
		for i, t := range allComments(node.Children()) {
			if i > 0 {
				inner = append(inner, HardLine())
			}
			inner = append(inner, Text(p.formatComment(t)))
		}
	}
	for i, ec := range entries {
		for _, cm := range allComments(ast.LeadingTrivia(node, ec)) {
			inner = append(inner, Text(p.formatComment(cm)), HardLine())
		}
		inner = append(inner, p.printFlowEntry(ec))
		last := i == len(entries)-1
		if !last {
			inner = append(inner, Text(","))
		} else if p.opts.TrailingComma {
			inner = append(inner, IfBreak(Text(","), Text("")))
		}
		trail := ast.TrailingTrivia(node, ec)
		tin, down := p.splitComments(trail)
		if tin != "" {
			inner = append(inner, Text(" "), Text(tin))
		}
		for _, cm := range down {
			inner = append(inner, HardLine(), Text(cm))
		}
		if !last {
			inner = append(inner, LineFlat(" "))
		}
	}
	grp := Concat(Text(open), Indent(p.opts.IndentWidth, Concat(inner...)), LineFlat(sp), Text(close))
	if broken {
		return GroupBroken(grp)
	}
	return Group(grp)
}

func allComments(tokens []*cst.Node) []string {
	var out []string
	for _, t := range tokens {
		if t.Kind() == token.CommentType {
			out = append(out, t.Text())
		}
	}
	return out
}

func (p *printer) printFlowEntry(ec *cst.Node) Doc {
	switch t := ast.Wrap(p.tree, ec).(type) {
	case *ast.FlowSeqEntry:
		if pair := t.Pair(); pair != nil {
			return p.printFlowPair(pair)
		}
		var parts []Doc
		if pr := t.Properties(); pr != nil {
			parts = append(parts, p.printProperties(pr))
			if t.Value() != nil {
				parts = append(parts, Text(" "))
			}
		}
		if v := t.Value(); v != nil {
			parts = append(parts, p.printNode(v))
		}
		return Concat(parts...)
	case *ast.FlowMapEntry:
		return p.printFlowPair(t)
	}
	return Text("")
}

func (p *printer) printFlowPair(e *ast.FlowMapEntry) Doc {
	ch := e.CST().Children()
	key := e.Key()
	v := e.Value()
	var parts []Doc
	if e.IsExplicit() {
		parts = append(parts, Text("?"))
		if key != nil || e.KeyProperties() != nil {
			parts = append(parts, Text(" "))
		}
	}
	if kp := e.KeyProperties(); kp != nil {
		parts = append(parts, p.printProperties(kp))
		if key != nil {
			parts = append(parts, Text(" "))
		}
	}
	if key != nil {
		parts = append(parts, p.printNode(key))
	}
	if e.HasColon() {
		parts = append(parts, Text(":"))
		colonIdx := -1
		for i, c := range ch {
			if c.Kind() == token.MappingValueType {
				colonIdx = i
				break
			}
		}
		end := len(ch)
		if v != nil {
			end = indexOf(ch, v.CST())
		}
		inline, own := p.splitComments(allTrivia(ch[colonIdx+1 : end]))
		if inline != "" {
			parts = append(parts, Text(" "), Text(inline))
		}
		for _, cm := range own {
			parts = append(parts, HardLine(), Text(cm))
		}
		if v != nil {
			if inline != "" || len(own) > 0 {
				parts = append(parts, HardLine())
			} else {
				parts = append(parts, Text(" "))
			}
			if vp := e.ValueProperties(); vp != nil {
				parts = append(parts, p.printProperties(vp), Text(" "))
			}
			parts = append(parts, p.printNode(v))
		}
	}
	return Concat(parts...)
}

func (p *printer) printScalar(s *ast.Scalar) Doc {
	switch s.Style() {
	case ast.LiteralStyle, ast.FoldedStyle:
		return p.printBlockScalar(s)
	case ast.SingleQuotedStyle, ast.DoubleQuotedStyle:
		tks := s.TextTokens()
		if len(tks) == 0 {
			return Text("")
		}
		raw := tks[0].Text()
		if strings.ContainsAny(raw, "\r\n") {
			return Verbatim(raw)
		}
		return Text(p.requote(raw, s.Style()))
	}
	return p.printPlainScalar(s)
}

func (p *printer) printPlainScalar(s *ast.Scalar) Doc {
	tks := s.TextTokens()
	if len(tks) == 0 {
		return Text("")
	}
	if len(tks) == 1 {
		txt := tks[0].Text()
		if p.opts.TrimTrailingZero {
			txt = trimTrailingZero(txt)
		}
		if p.opts.ProseWrap == ProseWrapAlways &&
			strings.Contains(txt, " ") && len([]rune(txt)) > p.opts.PrintWidth {
			return Fill(strings.Fields(txt))
		}
		return Text(txt)
	}
	// multi-line plain scalars pass through with their original layout
	var sb strings.Builder
	firstLine := true
	for _, c := range s.CST().Children() {
		switch c.Kind() {
		case token.PlainTextType:
			if firstLine {
				sb.WriteString(c.Text())
				firstLine = false
			} else {
				col := p.tree.Position(c.Offset()).Column - 1
				sb.WriteString(strings.Repeat(" ", col))
				sb.WriteString(c.Text())
			}
		case token.NewlineType:
			sb.WriteString("\n")
		}
	}
	return Verbatim(sb.String())
}

func (p *printer) printBlockScalar(s *ast.Scalar) Doc {
	header := s.HeaderToken()
	if header == nil {
		return Text("")
	}
	parts := []Doc{Text(header.Text())}
	if inline, _ := p.splitComments(allTrivia(s.CST().Children())); inline != "" {
		parts = append(parts, Text(" "), Text(inline))
	}
	if body := s.BodyToken(); body != nil {
		parts = append(parts, Verbatim("\n"+stripOneTrailingBreak(body.Text())))
	}
	return Concat(parts...)
}

func stripOneTrailingBreak(s string) string {
	switch {
	case strings.HasSuffix(s, "\r\n"):
		return s[:len(s)-2]
	case strings.HasSuffix(s, "\n"), strings.HasSuffix(s, "\r"):
		return s[:len(s)-1]
	}
	return s
}
