package parser

import (
	"fmt"

	"github.com/g-plane/pretty-yaml/cst"
	"github.com/g-plane/pretty-yaml/scanner"
	"github.com/g-plane/pretty-yaml/token"
)

// Parse parses source text into a lossless concrete syntax tree. A tree is
// always produced, even when fatal errors are recorded; joining the text of
// every leaf reproduces the source exactly. Callers inspect the tree's error
// list to decide whether the result is usable.
func Parse(src string) *cst.Tree {
	p := &parser{
		cur: scanner.New(src),
		b:   cst.NewBuilder(src),
	}
	p.parseStream()
	return p.b.Finish()
}

type parser struct {
	cur *scanner.Cursor
	b   *cst.Builder
}

// content is the result of trivia lookahead: the relative offset of the next
// content character, its zero-based column and the character itself.
type content struct {
	off int
	col int
	ch  rune
}

func (p *parser) at(i int) rune {
	return p.cur.Peek(i)
}

func (p *parser) col0() int {
	return p.cur.Column() - 1
}

func (p *parser) emit(kind token.Kind, n int) {
	p.b.Token(kind, n)
	p.cur.Advance(n)
}

func (p *parser) errorAt(code cst.ErrorCode, start, end int, msg string, sev cst.Severity) {
	p.b.Error(cst.SyntaxError{Code: code, Start: start, End: end, Message: msg, Severity: sev})
}

func (p *parser) countBlanks(from int) int {
	n := from
	for scanner.IsBlank(p.at(n)) {
		n++
	}
	return n - from
}

// isDelimAt reports whether the lookahead position holds whitespace, a line
// break or the end of the source. Block structure indicators ('-', '?', ':')
// only act as indicators when followed by such a delimiter.
func (p *parser) isDelimAt(i int) bool {
	r := p.at(i)
	return r == scanner.EOF || scanner.IsBlank(r) || scanner.IsLineBreak(r)
}

func (p *parser) isDocMarkerAt(i, col int) bool {
	if col != 0 {
		return false
	}
	r := p.at(i)
	if r != '-' && r != '.' {
		return false
	}
	if p.at(i+1) != r || p.at(i+2) != r {
		return false
	}
	return p.isDelimAt(i + 3)
}

func (p *parser) isDocMarkerNow(c rune) bool {
	return p.at(0) == c && p.isDocMarkerAt(0, p.col0())
}

func (p *parser) isDocMarkerAhead(info content) bool {
	return p.isDocMarkerAt(info.off, info.col)
}

// peek scans past blanks, line breaks and (optionally) comments without
// consuming anything and reports where the next content character sits.
func (p *parser) peek(skipComments bool) content {
	i := 0
	col := p.col0()
	for {
		r := p.at(i)
		switch {
		case scanner.IsBlank(r):
			i++
			col++
		case r == '#' && skipComments:
			for p.at(i) != scanner.EOF && !scanner.IsLineBreak(p.at(i)) {
				i++
			}
		case r == '\r' && p.at(i+1) == '\n':
			i += 2
			col = 0
		case scanner.IsLineBreak(r):
			i++
			col = 0
		default:
			return content{off: i, col: col, ch: r}
		}
	}
}

func (p *parser) peekContent() content {
	return p.peek(true)
}

func (p *parser) peekPlainContinuation() content {
	return p.peek(false)
}

// emitTrivia consumes the trivia the preceding lookahead skipped, classifying
// it into whitespace, newline and comment tokens.
func (p *parser) emitTrivia(off int) {
	target := p.b.Pos() + off
	for p.b.Pos() < target {
		r := p.at(0)
		switch {
		case scanner.IsBlank(r):
			atLineStart := p.cur.Column() == 1
			n := 0
			sawTab := false
			for scanner.IsBlank(p.at(n)) {
				if p.at(n) == '\t' {
					sawTab = true
				}
				n++
			}
			if atLineStart && sawTab && !p.isDelimAt(n) {
				p.errorAt(cst.InvalidIndentation, p.b.Pos(), p.b.Pos()+n,
					"found a tab character where an indentation space is expected", cst.Recovered)
			}
			p.emit(token.WhitespaceType, n)
		case scanner.IsLineBreak(r):
			p.emit(token.NewlineType, p.cur.MatchLineBreak())
		case r == '#':
			p.scanComment()
		default:
			return
		}
	}
}

func (p *parser) scanComment() {
	n := 0
	for p.at(n) != scanner.EOF && !scanner.IsLineBreak(p.at(n)) {
		n++
	}
	p.emit(token.CommentType, n)
}

// scanInlineTrivia consumes blanks and, optionally, a trailing comment on the
// current line. It never crosses a line break.
func (p *parser) scanInlineTrivia(withComment bool) {
	if n := p.countBlanks(0); n > 0 {
		p.emit(token.WhitespaceType, n)
	}
	if withComment && p.at(0) == '#' {
		p.scanComment()
	}
}

func (p *parser) parseStream() {
	p.b.StartNode(token.StreamType)
	if p.at(0) == rune(token.ByteOrderMarkCharacter) {
		p.emit(token.ByteOrderMarkType, 1)
	}
	for {
		info := p.peekContent()
		p.emitTrivia(info.off)
		if info.ch == scanner.EOF {
			break
		}
		before := p.b.Pos()
		p.parseDocument()
		if p.b.Pos() == before {
			p.errorAt(cst.UnexpectedCharacter, before, before+1,
				fmt.Sprintf("unexpected character %q", p.at(0)), cst.Recovered)
			p.emit(token.PlainTextType, 1)
		}
	}
	p.b.FinishNode()
}

func (p *parser) parseDocument() {
	p.b.StartNode(token.DocumentType)
	for p.at(0) == '%' && p.col0() == 0 {
		p.parseDirective()
		info := p.peekContent()
		if info.ch == scanner.EOF {
			p.emitTrivia(info.off)
			p.b.FinishNode()
			return
		}
		p.emitTrivia(info.off)
	}
	if p.isDocMarkerNow('-') {
		p.emit(token.DocumentHeaderType, 3)
		p.scanInlineTrivia(true)
		info := p.peekContent()
		if info.ch != scanner.EOF && !p.isDocMarkerAhead(info) {
			p.emitTrivia(info.off)
			p.parseBlockNode(-1)
		}
	} else if !p.isDocMarkerNow('.') {
		p.parseBlockNode(-1)
	}
	info := p.peekContent()
	if info.ch == '.' && p.isDocMarkerAhead(info) {
		p.emitTrivia(info.off)
		p.emit(token.DocumentEndType, 3)
		p.scanInlineTrivia(true)
	}
	p.b.FinishNode()
}

func (p *parser) parseDirective() {
	p.b.StartNode(token.DirectiveNodeType)
	start := p.b.Pos()
	p.emit(token.DirectiveType, 1)
	n := 0
	for !p.isDelimAt(n) {
		n++
	}
	if n == 0 {
		p.errorAt(cst.DirectiveSyntax, start, start+1, "directive name is missing", cst.Recovered)
	} else {
		p.emit(token.DirectiveNameType, n)
	}
	for {
		nb := p.countBlanks(0)
		r := p.at(nb)
		if r == scanner.EOF || scanner.IsLineBreak(r) {
			if nb > 0 {
				p.emit(token.WhitespaceType, nb)
			}
			break
		}
		if nb == 0 {
			// parameters must be separated by blanks
			p.errorAt(cst.DirectiveSyntax, p.b.Pos(), p.b.Pos()+1, "malformed directive", cst.Recovered)
			break
		}
		p.emit(token.WhitespaceType, nb)
		if p.at(0) == '#' {
			p.scanComment()
			break
		}
		m := 0
		for !p.isDelimAt(m) {
			m++
		}
		p.emit(token.DirectiveParamType, m)
	}
	p.b.FinishNode()
}

// parseBlockNode parses one node in block context whose content must be
// indented more than n. The cursor sits at the first content character.
func (p *parser) parseBlockNode(n int) {
	cp := p.b.Checkpoint()
	sawProps := p.parseProperties(n)
	if sawProps {
		r := p.at(0)
		if r == scanner.EOF || scanner.IsLineBreak(r) || scanner.IsBlank(r) || r == '#' {
			info := p.peekContent()
			if info.ch == scanner.EOF || info.col <= n || p.isDocMarkerAhead(info) {
				return // the properties decorate an empty node
			}
			p.emitTrivia(info.off)
		}
	}
	c := p.col0()
	switch r := p.at(0); {
	case r == scanner.EOF:
		return
	case r == '*':
		p.parseAlias()
		p.maybePromoteEntry(cp, c, true)
	case r == '|' || r == '>':
		p.parseBlockScalar(n)
	case r == '[':
		p.parseFlowSeq()
		p.maybePromoteEntry(cp, c, true)
	case r == '{':
		p.parseFlowMap()
		p.maybePromoteEntry(cp, c, true)
	case r == '\'' || r == '"':
		p.parseQuoted()
		p.maybePromoteEntry(cp, c, true)
	case r == '-' && p.isDelimAt(1):
		p.parseBlockSeq(c)
	case r == '?' && p.isDelimAt(1):
		p.b.StartNodeAt(cp, token.BlockMapType)
		p.parseBlockMapEntry(c)
		p.parseBlockMapRest(c)
		p.b.FinishNode()
	case r == ':' && p.isDelimAt(1):
		p.b.StartNodeAt(cp, token.BlockMapType)
		p.parseBlockMapEntry(c)
		p.parseBlockMapRest(c)
		p.b.FinishNode()
	default:
		p.parsePlainBlock(cp, c, n)
	}
}

// parseProperties parses an anchor and a tag in either order. It reports
// whether a Properties node was produced.
func (p *parser) parseProperties(n int) bool {
	if p.at(0) != '&' && p.at(0) != '!' {
		return false
	}
	p.b.StartNode(token.PropertiesType)
	for {
		switch p.at(0) {
		case '&':
			p.emit(token.AnchorType, 1)
			m := 0
			for isAnchorChar(p.at(m)) {
				m++
			}
			if m > 0 {
				p.emit(token.AnchorNameType, m)
			} else {
				p.errorAt(cst.UnexpectedCharacter, p.b.Pos(), p.b.Pos()+1, "anchor name is missing", cst.Recovered)
			}
		case '!':
			p.scanTag()
		default:
			p.b.FinishNode()
			return true
		}
		nb := p.countBlanks(0)
		next := p.at(nb)
		if next == '&' || next == '!' {
			if nb > 0 {
				p.emit(token.WhitespaceType, nb)
			}
			continue
		}
		if nb > 0 && next != scanner.EOF && !scanner.IsLineBreak(next) && next != '#' {
			// content follows on the same line
			p.emit(token.WhitespaceType, nb)
			p.b.FinishNode()
			return true
		}
		// the property ends its line; another property may continue below
		info := p.peekContent()
		if (info.ch == '&' || info.ch == '!') && info.col > n {
			p.emitTrivia(info.off)
			continue
		}
		p.b.FinishNode()
		return true
	}
}

func (p *parser) scanTag() {
	p.b.StartNode(token.TagType)
	if p.at(1) == '<' {
		// verbatim tag !<uri>
		m := 2
		for p.at(m) != scanner.EOF && p.at(m) != '>' && !scanner.IsLineBreak(p.at(m)) {
			m++
		}
		if p.at(m) == '>' {
			m++
		} else {
			p.errorAt(cst.UnexpectedCharacter, p.b.Pos(), p.b.Pos()+m, "unterminated verbatim tag", cst.Recovered)
		}
		p.emit(token.TagHandleType, m)
		p.b.FinishNode()
		return
	}
	full := 1
	for isTagChar(p.at(full)) {
		full++
	}
	split := 1
	for i := 1; i < full; i++ {
		if p.at(i) == '!' {
			split = i + 1
		}
	}
	p.emit(token.TagHandleType, split)
	if full > split {
		p.emit(token.TagSuffixType, full-split)
	}
	p.b.FinishNode()
}

func (p *parser) parseAlias() {
	p.b.StartNode(token.AliasNodeType)
	p.emit(token.AliasType, 1)
	m := 0
	for isAnchorChar(p.at(m)) {
		m++
	}
	if m > 0 {
		p.emit(token.AliasNameType, m)
	} else {
		p.errorAt(cst.UnexpectedCharacter, p.b.Pos(), p.b.Pos()+1, "alias name is missing", cst.Recovered)
	}
	p.b.FinishNode()
}

func (p *parser) parseQuoted() {
	q := p.at(0)
	start := p.b.Pos()
	kind := token.SingleQuotedType
	if q == '"' {
		kind = token.DoubleQuotedType
	}
	m := 1
	terminated := false
scan:
	for {
		r := p.at(m)
		switch {
		case r == scanner.EOF:
			break scan
		case q == '\'' && r == '\'':
			if p.at(m+1) == '\'' {
				m += 2
				continue
			}
			m++
			terminated = true
			break scan
		case q == '"' && r == '\\':
			if p.at(m+1) == scanner.EOF {
				m++
				continue
			}
			if !isValidEscape(p.at(m + 1)) {
				p.errorAt(cst.InvalidEscapeSequence, start+m, start+m+2, "invalid escape sequence", cst.Recovered)
			}
			m += 2
		case q == '"' && r == '"':
			m++
			terminated = true
			break scan
		default:
			m++
		}
	}
	if !terminated {
		p.errorAt(cst.UnterminatedQuotedScalar, start, start+m,
			"could not find the end character of the quoted scalar", cst.Fatal)
	}
	p.b.StartNode(token.ScalarType)
	p.emit(kind, m)
	p.b.FinishNode()
}

func (p *parser) parseBlockScalar(n int) {
	p.b.StartNode(token.ScalarType)
	m := 1
	explicit := -1
	for {
		r := p.at(m)
		if r == '+' || r == '-' {
			m++
			continue
		}
		if r >= '1' && r <= '9' && explicit < 0 {
			explicit = int(r - '0')
			m++
			continue
		}
		break
	}
	p.emit(token.BlockScalarHeaderType, m)
	p.scanInlineTrivia(true)
	if r := p.at(0); r != scanner.EOF && !scanner.IsLineBreak(r) {
		start := p.b.Pos()
		junk := 0
		for p.at(junk) != scanner.EOF && !scanner.IsLineBreak(p.at(junk)) {
			junk++
		}
		p.errorAt(cst.UnexpectedCharacter, start, start+junk,
			"unexpected content after the block scalar header", cst.Recovered)
		p.emit(token.PlainTextType, junk)
	}
	if lb := p.cur.MatchLineBreak(); lb > 0 {
		p.emit(token.NewlineType, lb)
	} else {
		p.b.FinishNode()
		return
	}
	contentIndent := -1
	if explicit >= 0 {
		contentIndent = n + explicit
	}
	if body := p.measureBlockScalarBody(n, contentIndent); body > 0 {
		p.emit(token.BlockScalarBodyType, body)
	}
	p.b.FinishNode()
}

// measureBlockScalarBody returns the length of the scalar body: every
// following line that is blank or indented more than n (at least
// contentIndent when an explicit indentation indicator was given).
func (p *parser) measureBlockScalarBody(n, contentIndent int) int {
	i := 0
	for p.at(i) != scanner.EOF {
		j := i
		ind := 0
		for scanner.IsBlank(p.at(j)) {
			j++
			ind++
		}
		r := p.at(j)
		blankLine := r == scanner.EOF || scanner.IsLineBreak(r)
		ok := blankLine
		if !ok {
			if contentIndent >= 0 {
				ok = ind >= contentIndent
			} else {
				ok = ind > n
			}
			if ok && ind == 0 && p.isDocMarkerAt(j, 0) {
				ok = false
			}
		}
		if !ok {
			break
		}
		for p.at(j) != scanner.EOF && !scanner.IsLineBreak(p.at(j)) {
			j++
		}
		if p.at(j) == '\r' && p.at(j+1) == '\n' {
			j += 2
		} else if p.at(j) != scanner.EOF {
			j++
		}
		i = j
	}
	return i
}

// scanPlainLine consumes plain scalar text on the current line up to an
// unambiguous terminator and reports how many code points were consumed.
// Trailing blanks are left unconsumed.
func (p *parser) scanPlainLine(ctx Context) int {
	m := 0
	keep := 0
	for {
		r := p.at(m)
		if r == scanner.EOF || scanner.IsLineBreak(r) {
			break
		}
		if r == '#' && m > 0 && scanner.IsBlank(p.at(m-1)) {
			break
		}
		if r == ':' {
			next := p.at(m + 1)
			if next == scanner.EOF || scanner.IsBlank(next) || scanner.IsLineBreak(next) ||
				(ctx.InFlow() && token.IsFlowIndicator(next)) {
				break
			}
		}
		if ctx.InFlow() && token.IsFlowIndicator(r) {
			break
		}
		m++
		if !scanner.IsBlank(r) {
			keep = m
		}
	}
	if keep > 0 {
		p.emit(token.PlainTextType, keep)
	}
	return keep
}

// plainContinues reports whether the content found by lookahead can be a
// continuation line of a multi-line plain scalar.
func (p *parser) plainContinues(info content) bool {
	r := info.ch
	switch r {
	case scanner.EOF, '#', ',', '[', ']', '{', '}', '&', '*', '!', '|', '>', '\'', '"', '%', '@', '`':
		return false
	case '-', '?', ':':
		return !p.isDelimAt(info.off + 1)
	}
	return true
}

func (p *parser) parsePlainBlock(cp cst.Checkpoint, c, n int) {
	switch r := p.at(0); r {
	case '@', '`':
		p.errorAt(cst.UnexpectedCharacter, p.b.Pos(), p.b.Pos()+1,
			fmt.Sprintf("%q is a reserved character", r), cst.Recovered)
	case ',', ']', '}':
		p.errorAt(cst.UnexpectedCharacter, p.b.Pos(), p.b.Pos()+1,
			fmt.Sprintf("unexpected character %q in block context", r), cst.Recovered)
	}
	p.b.StartNode(token.ScalarType)
	if p.scanPlainLine(BlockKey) == 0 {
		p.errorAt(cst.UnexpectedCharacter, p.b.Pos(), p.b.Pos()+1,
			fmt.Sprintf("unexpected character %q", p.at(0)), cst.Recovered)
		p.emit(token.PlainTextType, 1)
	}
	nb := p.countBlanks(0)
	if p.at(nb) == ':' && p.isDelimAt(nb+1) {
		// the scalar was an implicit mapping key
		p.b.FinishNode()
		p.promoteEntry(cp, c)
		return
	}
	for {
		info := p.peekPlainContinuation()
		if info.ch == scanner.EOF || info.col <= n || p.isDocMarkerAhead(info) || !p.plainContinues(info) {
			break
		}
		p.emitTrivia(info.off)
		if p.scanPlainLine(BlockIn) == 0 {
			break
		}
	}
	p.b.FinishNode()
}

// promoteEntry retroactively wraps the children recorded since cp into a
// BlockMapEntry inside a BlockMap, consumes the ':' indicator, then parses the
// value and any further entries at the key column.
func (p *parser) promoteEntry(cp cst.Checkpoint, keyCol int) {
	p.b.StartNodeAt(cp, token.BlockMapType)
	p.b.StartNodeAt(cp, token.BlockMapEntryType)
	if nb := p.countBlanks(0); nb > 0 {
		p.emit(token.WhitespaceType, nb)
	}
	p.emit(token.MappingValueType, 1)
	p.parseBlockMapValue(keyCol)
	p.scanInlineTrivia(true)
	p.b.FinishNode()
	p.parseBlockMapRest(keyCol)
	p.b.FinishNode()
}

// maybePromoteEntry promotes a just-parsed node to a mapping key when a ':'
// indicator follows. Keys in the JSON-like styles (quoted scalars, flow
// collections, aliases) do not require a space after the colon.
func (p *parser) maybePromoteEntry(cp cst.Checkpoint, keyCol int, jsonLike bool) {
	nb := p.countBlanks(0)
	if p.at(nb) != ':' {
		return
	}
	if !jsonLike && !p.isDelimAt(nb+1) {
		return
	}
	p.promoteEntry(cp, keyCol)
}

func (p *parser) parseBlockMapRest(m int) {
	for {
		info := p.peekContent()
		if info.ch == scanner.EOF || info.col != m || p.isDocMarkerAhead(info) {
			break
		}
		if info.ch == '-' && p.isDelimAt(info.off+1) {
			break
		}
		p.emitTrivia(info.off)
		before := p.b.Pos()
		p.parseBlockMapEntry(m)
		if p.b.Pos() == before {
			break
		}
	}
}

func (p *parser) parseBlockMapEntry(m int) {
	p.b.StartNode(token.BlockMapEntryType)
	switch {
	case p.at(0) == '?' && p.isDelimAt(1):
		p.emit(token.MappingKeyType, 1)
		p.parseExplicitKeyAndValue(m)
	case p.at(0) == ':' && p.isDelimAt(1):
		p.emit(token.MappingValueType, 1)
		p.parseBlockMapValue(m)
	default:
		p.parseProperties(m)
		jsonLike := false
		switch r := p.at(0); {
		case r == '*':
			p.parseAlias()
			jsonLike = true
		case r == '\'' || r == '"':
			p.parseQuoted()
			jsonLike = true
		case r == '[':
			p.parseFlowSeq()
			jsonLike = true
		case r == '{':
			p.parseFlowMap()
			jsonLike = true
		case r == scanner.EOF || scanner.IsLineBreak(r):
			// properties alone; no key on this line
		default:
			p.b.StartNode(token.ScalarType)
			if p.scanPlainLine(BlockKey) == 0 {
				p.errorAt(cst.UnexpectedCharacter, p.b.Pos(), p.b.Pos()+1,
					fmt.Sprintf("unexpected character %q", p.at(0)), cst.Recovered)
				p.emit(token.PlainTextType, 1)
			}
			p.b.FinishNode()
		}
		nb := p.countBlanks(0)
		if p.at(nb) == ':' && (jsonLike || p.isDelimAt(nb+1)) {
			if nb > 0 {
				p.emit(token.WhitespaceType, nb)
			}
			p.emit(token.MappingValueType, 1)
			p.parseBlockMapValue(m)
		} else {
			p.errorAt(cst.UnexpectedCharacter, p.b.Pos(), p.b.Pos()+1,
				"could not find expected ':' for a mapping entry", cst.Recovered)
		}
	}
	p.scanInlineTrivia(true)
	p.b.FinishNode()
}

func (p *parser) parseExplicitKeyAndValue(m int) {
	nb := p.countBlanks(0)
	r := p.at(nb)
	if r != scanner.EOF && !scanner.IsLineBreak(r) && r != '#' {
		if nb > 0 {
			p.emit(token.WhitespaceType, nb)
		}
		p.parseBlockNode(m)
	} else {
		p.scanInlineTrivia(true)
		info := p.peekContent()
		if info.ch != scanner.EOF && info.col > m && !p.isDocMarkerAhead(info) {
			p.emitTrivia(info.off)
			p.parseBlockNode(m)
		}
	}
	info := p.peekContent()
	if info.ch == ':' && info.col == m && p.isDelimAt(info.off+1) {
		p.emitTrivia(info.off)
		p.emit(token.MappingValueType, 1)
		p.parseBlockMapValue(m)
	}
}

func (p *parser) parseBlockMapValue(m int) {
	nb := p.countBlanks(0)
	r := p.at(nb)
	if r != scanner.EOF && !scanner.IsLineBreak(r) && r != '#' {
		if nb > 0 {
			p.emit(token.WhitespaceType, nb)
		}
		p.parseBlockNode(m)
		return
	}
	p.scanInlineTrivia(true)
	info := p.peekContent()
	if info.ch == scanner.EOF || p.isDocMarkerAhead(info) {
		return
	}
	if info.col > m {
		p.emitTrivia(info.off)
		p.parseBlockNode(m)
	} else if info.col == m && info.ch == '-' && p.isDelimAt(info.off+1) {
		// a block sequence may sit at the same indentation as its key
		p.emitTrivia(info.off)
		p.parseBlockSeq(m)
	}
}

func (p *parser) parseBlockSeq(m int) {
	p.b.StartNode(token.BlockSeqType)
	for {
		p.parseBlockSeqEntry(m)
		info := p.peekContent()
		if info.ch != '-' || info.col != m || !p.isDelimAt(info.off+1) || p.isDocMarkerAhead(info) {
			break
		}
		p.emitTrivia(info.off)
	}
	p.b.FinishNode()
}

func (p *parser) parseBlockSeqEntry(m int) {
	p.b.StartNode(token.BlockSeqEntryType)
	p.emit(token.SequenceEntryType, 1)
	nb := p.countBlanks(0)
	r := p.at(nb)
	if r != scanner.EOF && !scanner.IsLineBreak(r) && r != '#' {
		if nb > 0 {
			p.emit(token.WhitespaceType, nb)
		}
		p.parseBlockNode(m)
	} else {
		p.scanInlineTrivia(true)
		info := p.peekContent()
		if info.ch != scanner.EOF && info.col > m && !p.isDocMarkerAhead(info) {
			p.emitTrivia(info.off)
			p.parseBlockNode(m)
		}
	}
	p.scanInlineTrivia(true)
	p.b.FinishNode()
}

func (p *parser) skipFlowTrivia() {
	for {
		if nb := p.countBlanks(0); nb > 0 {
			p.emit(token.WhitespaceType, nb)
			continue
		}
		if lb := p.cur.MatchLineBreak(); lb > 0 {
			p.emit(token.NewlineType, lb)
			continue
		}
		if p.at(0) == '#' {
			p.scanComment()
			continue
		}
		return
	}
}

func (p *parser) parseFlowSeq() {
	start := p.b.Pos()
	p.b.StartNode(token.FlowSeqType)
	p.emit(token.SequenceStartType, 1)
	for {
		p.skipFlowTrivia()
		r := p.at(0)
		if r == scanner.EOF || r == '}' || p.isDocMarkerNow('-') || p.isDocMarkerNow('.') {
			p.errorAt(cst.UnterminatedFlowCollection, start, start+1,
				"could not find the flow sequence end character ']'", cst.Fatal)
			break
		}
		if r == ']' {
			p.emit(token.SequenceEndType, 1)
			break
		}
		if r == ',' {
			p.emit(token.CollectEntryType, 1)
			continue
		}
		before := p.b.Pos()
		p.parseFlowSeqEntry()
		if p.b.Pos() == before {
			p.errorAt(cst.UnexpectedCharacter, before, before+1,
				fmt.Sprintf("unexpected character %q in flow sequence", p.at(0)), cst.Recovered)
			p.emit(token.PlainTextType, 1)
		}
	}
	p.b.FinishNode()
}

func (p *parser) parseFlowSeqEntry() {
	p.b.StartNode(token.FlowSeqEntryType)
	cp := p.b.Checkpoint()
	p.parseFlowNode()
	p.maybeFlowPair(cp)
	p.b.FinishNode()
}

// maybeFlowPair turns a just-parsed flow node into a single-key flow pair
// when a ':' indicator follows.
func (p *parser) maybeFlowPair(cp cst.Checkpoint) {
	nb := p.countBlanks(0)
	if p.at(nb) != ':' {
		return
	}
	next := p.at(nb + 1)
	if !(next == scanner.EOF || scanner.IsBlank(next) || scanner.IsLineBreak(next) || token.IsFlowIndicator(next)) {
		return
	}
	p.b.StartNodeAt(cp, token.FlowMapEntryType)
	if nb > 0 {
		p.emit(token.WhitespaceType, nb)
	}
	p.emit(token.MappingValueType, 1)
	p.skipFlowTrivia()
	if r := p.at(0); r != scanner.EOF && r != ',' && r != ']' && r != '}' {
		p.parseFlowNode()
	}
	p.b.FinishNode()
}

func (p *parser) parseFlowMap() {
	start := p.b.Pos()
	p.b.StartNode(token.FlowMapType)
	p.emit(token.MappingStartType, 1)
	for {
		p.skipFlowTrivia()
		r := p.at(0)
		if r == scanner.EOF || r == ']' || p.isDocMarkerNow('-') || p.isDocMarkerNow('.') {
			p.errorAt(cst.UnterminatedFlowCollection, start, start+1,
				"could not find the flow mapping end character '}'", cst.Fatal)
			break
		}
		if r == '}' {
			p.emit(token.MappingEndType, 1)
			break
		}
		if r == ',' {
			p.emit(token.CollectEntryType, 1)
			continue
		}
		before := p.b.Pos()
		p.parseFlowMapEntry()
		if p.b.Pos() == before {
			p.errorAt(cst.UnexpectedCharacter, before, before+1,
				fmt.Sprintf("unexpected character %q in flow mapping", p.at(0)), cst.Recovered)
			p.emit(token.PlainTextType, 1)
		}
	}
	p.b.FinishNode()
}

func (p *parser) parseFlowMapEntry() {
	p.b.StartNode(token.FlowMapEntryType)
	if p.at(0) == '?' && (p.isDelimAt(1) || token.IsFlowIndicator(p.at(1))) {
		p.emit(token.MappingKeyType, 1)
		p.skipFlowTrivia()
	}
	if r := p.at(0); r != scanner.EOF && r != ',' && r != '}' && r != ']' &&
		!(r == ':' && (p.isDelimAt(1) || token.IsFlowIndicator(p.at(1)))) {
		p.parseFlowNode()
	}
	nb := p.countBlanks(0)
	if p.at(nb) == ':' {
		next := p.at(nb + 1)
		if next == scanner.EOF || scanner.IsBlank(next) || scanner.IsLineBreak(next) || token.IsFlowIndicator(next) {
			if nb > 0 {
				p.emit(token.WhitespaceType, nb)
			}
			p.emit(token.MappingValueType, 1)
			p.skipFlowTrivia()
			if r := p.at(0); r != scanner.EOF && r != ',' && r != '}' && r != ']' {
				p.parseFlowNode()
			}
		}
	}
	p.b.FinishNode()
}

func (p *parser) parseFlowNode() {
	p.parseFlowProperties()
	switch r := p.at(0); {
	case r == '*':
		p.parseAlias()
	case r == '[':
		p.parseFlowSeq()
	case r == '{':
		p.parseFlowMap()
	case r == '\'' || r == '"':
		p.parseQuoted()
	case r == scanner.EOF || r == ',' || r == ']' || r == '}':
		// empty node
	case r == ':' && (p.isDelimAt(1) || token.IsFlowIndicator(p.at(1))):
		// empty node before a ':' indicator
	default:
		p.parseFlowPlain()
	}
}

func (p *parser) parseFlowProperties() {
	if p.at(0) != '&' && p.at(0) != '!' {
		return
	}
	p.b.StartNode(token.PropertiesType)
	for {
		switch p.at(0) {
		case '&':
			p.emit(token.AnchorType, 1)
			m := 0
			for isAnchorChar(p.at(m)) {
				m++
			}
			if m > 0 {
				p.emit(token.AnchorNameType, m)
			}
		case '!':
			p.scanTag()
		default:
			p.b.FinishNode()
			return
		}
		p.skipFlowTrivia()
	}
}

func (p *parser) parseFlowPlain() {
	p.b.StartNode(token.ScalarType)
	if p.scanPlainLine(FlowIn) == 0 {
		p.errorAt(cst.UnexpectedCharacter, p.b.Pos(), p.b.Pos()+1,
			fmt.Sprintf("unexpected character %q", p.at(0)), cst.Recovered)
		p.emit(token.PlainTextType, 1)
	}
	for {
		info := p.peekPlainContinuation()
		if info.ch == scanner.EOF || info.col == 0 || p.isDocMarkerAhead(info) || !p.plainContinues(info) {
			break
		}
		if token.IsFlowIndicator(info.ch) {
			break
		}
		p.emitTrivia(info.off)
		if p.scanPlainLine(FlowIn) == 0 {
			break
		}
	}
	p.b.FinishNode()
}

func isAnchorChar(r rune) bool {
	if r == scanner.EOF || scanner.IsBlank(r) || scanner.IsLineBreak(r) {
		return false
	}
	if token.IsFlowIndicator(r) {
		return false
	}
	return r != ':' && r != '#'
}

func isTagChar(r rune) bool {
	if r == scanner.EOF || scanner.IsBlank(r) || scanner.IsLineBreak(r) {
		return false
	}
	return !token.IsFlowIndicator(r)
}

func isValidEscape(r rune) bool {
	switch r {
	case '0', 'a', 'b', 't', 'n', 'v', 'f', 'r', 'e', ' ', '"', '/', '\\',
		'N', '_', 'L', 'P', 'x', 'u', 'U', '\t', '\n', '\r':
		return true
	}
	return false
}
