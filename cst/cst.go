package cst

import (
	"strings"

	"github.com/g-plane/pretty-yaml/token"
)

// Node is an immutable green node: either a token carrying a slice of the
// source text, or a branch whose text is the concatenation of its children.
type Node struct {
	kind     token.Kind
	text     string
	offset   int
	end      int
	children []*Node
}

// Kind returns the syntax kind of the node.
func (n *Node) Kind() token.Kind {
	return n.kind
}

// IsToken reports whether the node is a token rather than a branch.
func (n *Node) IsToken() bool {
	return !n.kind.IsNode()
}

// Offset returns the code point offset of the first character of the node.
func (n *Node) Offset() int {
	return n.offset
}

// End returns the code point offset just past the last character of the node.
func (n *Node) End() int {
	return n.end
}

// Children returns the ordered child list of a branch, or nil for a token.
func (n *Node) Children() []*Node {
	return n.children
}

// Text returns the source text covered by the node. For a branch this is the
// concatenation of every descendant token, which by construction equals the
// original source slice.
func (n *Node) Text() string {
	if n.IsToken() {
		return n.text
	}
	var sb strings.Builder
	n.writeText(&sb)
	return sb.String()
}

func (n *Node) writeText(sb *strings.Builder) {
	if n.IsToken() {
		sb.WriteString(n.text)
		return
	}
	for _, c := range n.children {
		c.writeText(sb)
	}
}

// FirstToken returns the first token beneath the node, or nil for an empty
// branch.
func (n *Node) FirstToken() *Node {
	if n.IsToken() {
		return n
	}
	for _, c := range n.children {
		if tk := c.FirstToken(); tk != nil {
			return tk
		}
	}
	return nil
}

// LastToken returns the last token beneath the node, or nil for an empty
// branch.
func (n *Node) LastToken() *Node {
	if n.IsToken() {
		return n
	}
	for i := len(n.children) - 1; i >= 0; i-- {
		if tk := n.children[i].LastToken(); tk != nil {
			return tk
		}
	}
	return nil
}

// Severity distinguishes errors the parser recovered from and errors that
// abort formatting.
type Severity int

const (
	Recovered Severity = iota
	Fatal
)

func (s Severity) String() string {
	if s == Fatal {
		return "fatal"
	}
	return "recovered"
}

// ErrorCode identifies the shape of a syntax error.
type ErrorCode int

const (
	UnexpectedCharacter ErrorCode = iota
	UnterminatedFlowCollection
	UnterminatedQuotedScalar
	InvalidIndentation
	InvalidEscapeSequence
	DirectiveSyntax
)

func (c ErrorCode) String() string {
	switch c {
	case UnexpectedCharacter:
		return "UnexpectedCharacter"
	case UnterminatedFlowCollection:
		return "UnterminatedFlowCollection"
	case UnterminatedQuotedScalar:
		return "UnterminatedQuotedScalar"
	case InvalidIndentation:
		return "InvalidIndentation"
	case InvalidEscapeSequence:
		return "InvalidEscapeSequence"
	case DirectiveSyntax:
		return "DirectiveSyntax"
	}
	return ""
}

// SyntaxError is a recorded parse error. Start and End are code point offsets
// into the source.
type SyntaxError struct {
	Code     ErrorCode
	Start    int
	End      int
	Message  string
	Severity Severity
}

// Tree is the result of a parse: the root green node, the recorded errors and
// the source the offsets point into.
type Tree struct {
	Root   *Node
	Errors []SyntaxError

	src       []rune
	lineIndex []int // offsets of line starts, built lazily
}

// Source returns the original source text.
func (t *Tree) Source() string {
	return string(t.src)
}

// HasFatalError reports whether any recorded error is fatal.
func (t *Tree) HasFatalError() bool {
	return t.FirstFatal() != nil
}

// FirstFatal returns the first fatal error, or nil.
func (t *Tree) FirstFatal() *SyntaxError {
	for i := range t.Errors {
		if t.Errors[i].Severity == Fatal {
			return &t.Errors[i]
		}
	}
	return nil
}

// Position derives the line/column pair of a code point offset.
func (t *Tree) Position(offset int) *token.Position {
	if t.lineIndex == nil {
		t.lineIndex = []int{0}
		for i := 0; i < len(t.src); i++ {
			switch t.src[i] {
			case '\n':
				t.lineIndex = append(t.lineIndex, i+1)
			case '\r':
				if i+1 < len(t.src) && t.src[i+1] == '\n' {
					continue
				}
				t.lineIndex = append(t.lineIndex, i+1)
			}
		}
	}
	lo, hi := 0, len(t.lineIndex)
	for lo+1 < hi {
		mid := (lo + hi) / 2
		if t.lineIndex[mid] <= offset {
			lo = mid
		} else {
			hi = mid
		}
	}
	return &token.Position{
		Line:   lo + 1,
		Column: offset - t.lineIndex[lo] + 1,
		Offset: offset,
	}
}
