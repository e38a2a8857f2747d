// Package ast offers typed, trivia-filtered views over the concrete syntax
// tree. The views own nothing; they borrow into the green nodes built by the
// parser.
package ast

import (
	"github.com/g-plane/pretty-yaml/cst"
	"github.com/g-plane/pretty-yaml/token"
)

// Node is any typed view over a CST branch.
type Node interface {
	CST() *cst.Node
	Tree() *cst.Tree
}

type base struct {
	tree *cst.Tree
	node *cst.Node
}

func (b base) CST() *cst.Node  { return b.node }
func (b base) Tree() *cst.Tree { return b.tree }

// Wrap returns the typed view matching the kind of a CST branch, or nil for
// tokens and unknown kinds.
func Wrap(tree *cst.Tree, node *cst.Node) Node {
	if node == nil {
		return nil
	}
	b := base{tree: tree, node: node}
	switch node.Kind() {
	case token.StreamType:
		return &Stream{b}
	case token.DocumentType:
		return &Document{b}
	case token.PropertiesType:
		return &Properties{b}
	case token.BlockMapType:
		return &BlockMap{b}
	case token.BlockMapEntryType:
		return &BlockMapEntry{b}
	case token.BlockSeqType:
		return &BlockSeq{b}
	case token.BlockSeqEntryType:
		return &BlockSeqEntry{b}
	case token.FlowMapType:
		return &FlowMap{b}
	case token.FlowMapEntryType:
		return &FlowMapEntry{b}
	case token.FlowSeqType:
		return &FlowSeq{b}
	case token.FlowSeqEntryType:
		return &FlowSeqEntry{b}
	case token.ScalarType:
		return &Scalar{b}
	case token.AliasNodeType:
		return &Alias{b}
	case token.DirectiveNodeType:
		return &Directive{b}
	}
	return nil
}

func findToken(n *cst.Node, kind token.Kind) *cst.Node {
	for _, c := range n.Children() {
		if c.Kind() == kind {
			return c
		}
	}
	return nil
}

// LeadingTrivia returns the trivia tokens directly preceding child within
// parent, back to (and excluding) the previous non-trivia child.
func LeadingTrivia(parent, child *cst.Node) []*cst.Node {
	var run []*cst.Node
	for _, c := range parent.Children() {
		if c == child {
			return run
		}
		if c.Kind().IsTrivia() {
			run = append(run, c)
		} else {
			run = nil
		}
	}
	return nil
}

// TrailingTrivia returns the trivia tokens directly following child within
// parent, up to (and excluding) the next non-trivia child.
func TrailingTrivia(parent, child *cst.Node) []*cst.Node {
	var run []*cst.Node
	seen := false
	for _, c := range parent.Children() {
		if c == child {
			seen = true
			continue
		}
		if !seen {
			continue
		}
		if c.Kind().IsTrivia() {
			run = append(run, c)
		} else {
			break
		}
	}
	return run
}

// Stream is the root view: an optional byte order mark and a list of
// documents.
type Stream struct{ base }

// NewStream wraps the root of a parsed tree.
func NewStream(tree *cst.Tree) *Stream {
	return &Stream{base{tree: tree, node: tree.Root}}
}

func (s *Stream) HasBOM() bool {
	return findToken(s.node, token.ByteOrderMarkType) != nil
}

func (s *Stream) Documents() []*Document {
	var docs []*Document
	for _, c := range s.node.Children() {
		if c.Kind() == token.DocumentType {
			docs = append(docs, &Document{base{tree: s.tree, node: c}})
		}
	}
	return docs
}

// Document is one YAML document: directives, an optional explicit header, a
// body node and an optional end marker.
type Document struct{ base }

func (d *Document) Directives() []*Directive {
	var out []*Directive
	for _, c := range d.node.Children() {
		if c.Kind() == token.DirectiveNodeType {
			out = append(out, &Directive{base{tree: d.tree, node: c}})
		}
	}
	return out
}

func (d *Document) HasHeader() bool {
	return findToken(d.node, token.DocumentHeaderType) != nil
}

func (d *Document) HeaderToken() *cst.Node {
	return findToken(d.node, token.DocumentHeaderType)
}

func (d *Document) HasEnd() bool {
	return findToken(d.node, token.DocumentEndType) != nil
}

// Properties returns the node properties decorating the body, if any.
func (d *Document) Properties() *Properties {
	for _, c := range d.node.Children() {
		if c.Kind() == token.PropertiesType {
			return &Properties{base{tree: d.tree, node: c}}
		}
	}
	return nil
}

// Body returns the document's content node, or nil for an empty document.
func (d *Document) Body() Node {
	for _, c := range d.node.Children() {
		if c.Kind().IsNode() && c.Kind() != token.DirectiveNodeType && c.Kind() != token.PropertiesType {
			return Wrap(d.tree, c)
		}
	}
	return nil
}

// Directive is a %NAME param... line.
type Directive struct{ base }

func (d *Directive) Name() string {
	if tk := findToken(d.node, token.DirectiveNameType); tk != nil {
		return tk.Text()
	}
	return ""
}

func (d *Directive) Params() []string {
	var out []string
	for _, c := range d.node.Children() {
		if c.Kind() == token.DirectiveParamType {
			out = append(out, c.Text())
		}
	}
	return out
}

// Properties is the tag/anchor pair decorating a node, in source order.
type Properties struct{ base }

// Anchor returns the anchor name without the '&', or "".
func (p *Properties) Anchor() string {
	if tk := findToken(p.node, token.AnchorNameType); tk != nil {
		return tk.Text()
	}
	return ""
}

// Tag returns the full tag text (handle plus suffix), or "".
func (p *Properties) Tag() string {
	for _, c := range p.node.Children() {
		if c.Kind() == token.TagType {
			return c.Text()
		}
	}
	return ""
}

// BlockMap is an indentation-structured mapping.
type BlockMap struct{ base }

func (m *BlockMap) Entries() []*BlockMapEntry {
	var out []*BlockMapEntry
	for _, c := range m.node.Children() {
		if c.Kind() == token.BlockMapEntryType {
			out = append(out, &BlockMapEntry{base{tree: m.tree, node: c}})
		}
	}
	return out
}

// BlockMapEntry is a single key/value pair of a block mapping.
type BlockMapEntry struct{ base }

// IsExplicit reports whether the entry uses the '?' explicit-key form.
func (e *BlockMapEntry) IsExplicit() bool {
	return findToken(e.node, token.MappingKeyType) != nil
}

func (e *BlockMapEntry) colonIndex() int {
	for i, c := range e.node.Children() {
		if c.Kind() == token.MappingValueType {
			return i
		}
	}
	return -1
}

// Key returns the key node, or nil for an empty key.
func (e *BlockMapEntry) Key() Node {
	colon := e.colonIndex()
	for i, c := range e.node.Children() {
		if colon >= 0 && i >= colon {
			break
		}
		if c.Kind().IsNode() && c.Kind() != token.PropertiesType {
			return Wrap(e.tree, c)
		}
	}
	return nil
}

// KeyProperties returns the properties decorating the key, if any.
func (e *BlockMapEntry) KeyProperties() *Properties {
	colon := e.colonIndex()
	for i, c := range e.node.Children() {
		if colon >= 0 && i >= colon {
			break
		}
		if c.Kind() == token.PropertiesType {
			return &Properties{base{tree: e.tree, node: c}}
		}
	}
	return nil
}

// Value returns the value node, or nil for an empty value.
func (e *BlockMapEntry) Value() Node {
	colon := e.colonIndex()
	if colon < 0 {
		return nil
	}
	for _, c := range e.node.Children()[colon+1:] {
		if c.Kind().IsNode() && c.Kind() != token.PropertiesType {
			return Wrap(e.tree, c)
		}
	}
	return nil
}

// ValueProperties returns the properties decorating the value, if any.
func (e *BlockMapEntry) ValueProperties() *Properties {
	colon := e.colonIndex()
	if colon < 0 {
		return nil
	}
	for _, c := range e.node.Children()[colon+1:] {
		if c.Kind() == token.PropertiesType {
			return &Properties{base{tree: e.tree, node: c}}
		}
	}
	return nil
}

// BlockSeq is an indentation-structured sequence.
type BlockSeq struct{ base }

func (s *BlockSeq) Entries() []*BlockSeqEntry {
	var out []*BlockSeqEntry
	for _, c := range s.node.Children() {
		if c.Kind() == token.BlockSeqEntryType {
			out = append(out, &BlockSeqEntry{base{tree: s.tree, node: c}})
		}
	}
	return out
}

// BlockSeqEntry is one "- value" entry.
type BlockSeqEntry struct{ base }

// Value returns the entry's node, or nil for an empty entry.
func (e *BlockSeqEntry) Value() Node {
	for _, c := range e.node.Children() {
		if c.Kind().IsNode() && c.Kind() != token.PropertiesType {
			return Wrap(e.tree, c)
		}
	}
	return nil
}

// Properties returns the properties decorating the entry value, if any.
func (e *BlockSeqEntry) Properties() *Properties {
	for _, c := range e.node.Children() {
		if c.Kind() == token.PropertiesType {
			return &Properties{base{tree: e.tree, node: c}}
		}
	}
	return nil
}

// DashToken returns the '-' indicator token.
func (e *BlockSeqEntry) DashToken() *cst.Node {
	return findToken(e.node, token.SequenceEntryType)
}

// FlowMap is a {...} mapping.
type FlowMap struct{ base }

func (m *FlowMap) Entries() []*FlowMapEntry {
	var out []*FlowMapEntry
	for _, c := range m.node.Children() {
		if c.Kind() == token.FlowMapEntryType {
			out = append(out, &FlowMapEntry{base{tree: m.tree, node: c}})
		}
	}
	return out
}

// FlowMapEntry is a key/value pair of a flow mapping or a single-key flow
// pair inside a flow sequence.
type FlowMapEntry struct{ base }

func (e *FlowMapEntry) IsExplicit() bool {
	return findToken(e.node, token.MappingKeyType) != nil
}

// HasColon reports whether the entry carries a ':' indicator.
func (e *FlowMapEntry) HasColon() bool {
	return findToken(e.node, token.MappingValueType) != nil
}

func (e *FlowMapEntry) colonIndex() int {
	for i, c := range e.node.Children() {
		if c.Kind() == token.MappingValueType {
			return i
		}
	}
	return -1
}

func (e *FlowMapEntry) Key() Node {
	colon := e.colonIndex()
	for i, c := range e.node.Children() {
		if colon >= 0 && i >= colon {
			break
		}
		if c.Kind().IsNode() && c.Kind() != token.PropertiesType {
			return Wrap(e.tree, c)
		}
	}
	return nil
}

func (e *FlowMapEntry) KeyProperties() *Properties {
	colon := e.colonIndex()
	for i, c := range e.node.Children() {
		if colon >= 0 && i >= colon {
			break
		}
		if c.Kind() == token.PropertiesType {
			return &Properties{base{tree: e.tree, node: c}}
		}
	}
	return nil
}

func (e *FlowMapEntry) Value() Node {
	colon := e.colonIndex()
	if colon < 0 {
		return nil
	}
	for _, c := range e.node.Children()[colon+1:] {
		if c.Kind().IsNode() && c.Kind() != token.PropertiesType {
			return Wrap(e.tree, c)
		}
	}
	return nil
}

func (e *FlowMapEntry) ValueProperties() *Properties {
	colon := e.colonIndex()
	if colon < 0 {
		return nil
	}
	for _, c := range e.node.Children()[colon+1:] {
		if c.Kind() == token.PropertiesType {
			return &Properties{base{tree: e.tree, node: c}}
		}
	}
	return nil
}

// FlowSeq is a [...] sequence.
type FlowSeq struct{ base }

func (s *FlowSeq) Entries() []*FlowSeqEntry {
	var out []*FlowSeqEntry
	for _, c := range s.node.Children() {
		if c.Kind() == token.FlowSeqEntryType {
			out = append(out, &FlowSeqEntry{base{tree: s.tree, node: c}})
		}
	}
	return out
}

// FlowSeqEntry is one element of a flow sequence. Its value may be a
// single-key flow pair.
type FlowSeqEntry struct{ base }

// Pair returns the single-key flow pair the entry wraps, or nil.
func (e *FlowSeqEntry) Pair() *FlowMapEntry {
	for _, c := range e.node.Children() {
		if c.Kind() == token.FlowMapEntryType {
			return &FlowMapEntry{base{tree: e.tree, node: c}}
		}
	}
	return nil
}

func (e *FlowSeqEntry) Value() Node {
	for _, c := range e.node.Children() {
		if c.Kind().IsNode() && c.Kind() != token.PropertiesType {
			return Wrap(e.tree, c)
		}
	}
	return nil
}

func (e *FlowSeqEntry) Properties() *Properties {
	for _, c := range e.node.Children() {
		if c.Kind() == token.PropertiesType {
			return &Properties{base{tree: e.tree, node: c}}
		}
	}
	return nil
}

// ScalarStyle enumerates the five scalar presentation styles.
type ScalarStyle int

const (
	PlainStyle ScalarStyle = iota
	SingleQuotedStyle
	DoubleQuotedStyle
	LiteralStyle
	FoldedStyle
)

func (s ScalarStyle) String() string {
	switch s {
	case PlainStyle:
		return "plain"
	case SingleQuotedStyle:
		return "single-quoted"
	case DoubleQuotedStyle:
		return "double-quoted"
	case LiteralStyle:
		return "literal"
	case FoldedStyle:
		return "folded"
	}
	return ""
}

// Scalar is any scalar node; the style is derived from its tokens.
type Scalar struct{ base }

func (s *Scalar) Style() ScalarStyle {
	for _, c := range s.node.Children() {
		switch c.Kind() {
		case token.SingleQuotedType:
			return SingleQuotedStyle
		case token.DoubleQuotedType:
			return DoubleQuotedStyle
		case token.BlockScalarHeaderType:
			if len(c.Text()) > 0 && c.Text()[0] == '>' {
				return FoldedStyle
			}
			return LiteralStyle
		}
	}
	return PlainStyle
}

// TextTokens returns the scalar's text tokens in order. A multi-line plain
// scalar has one token per physical line.
func (s *Scalar) TextTokens() []*cst.Node {
	var out []*cst.Node
	for _, c := range s.node.Children() {
		switch c.Kind() {
		case token.PlainTextType, token.SingleQuotedType, token.DoubleQuotedType:
			out = append(out, c)
		}
	}
	return out
}

// HeaderToken returns the block scalar header ("|", ">-", ...), or nil.
func (s *Scalar) HeaderToken() *cst.Node {
	return findToken(s.node, token.BlockScalarHeaderType)
}

// BodyToken returns the verbatim block scalar body, or nil.
func (s *Scalar) BodyToken() *cst.Node {
	return findToken(s.node, token.BlockScalarBodyType)
}

// IsMultiline reports whether the scalar spans several source lines.
func (s *Scalar) IsMultiline() bool {
	switch s.Style() {
	case LiteralStyle, FoldedStyle:
		return true
	case PlainStyle:
		return len(s.TextTokens()) > 1
	}
	tks := s.TextTokens()
	if len(tks) == 0 {
		return false
	}
	for _, r := range tks[0].Text() {
		if r == '\n' || r == '\r' {
			return true
		}
	}
	return false
}

// Alias is a *name reference.
type Alias struct{ base }

// Name returns the alias name without the '*'.
func (a *Alias) Name() string {
	if tk := findToken(a.node, token.AliasNameType); tk != nil {
		return tk.Text()
	}
	return ""
}
