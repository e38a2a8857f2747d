package cst

import (
	"fmt"

	"github.com/g-plane/pretty-yaml/token"
)

// Checkpoint marks a position in the builder's pending child list so a node
// can be wrapped around already-built children retroactively.
type Checkpoint int

type parentFrame struct {
	kind       token.Kind
	firstChild int
}

// Builder assembles a green tree bottom-up. Tokens consume consecutive slices
// of the source, so the finished tree reproduces the input exactly.
type Builder struct {
	src      []rune
	pos      int
	children []*Node
	parents  []parentFrame
	errs     []SyntaxError
}

// NewBuilder returns a builder over src.
func NewBuilder(src string) *Builder {
	return &Builder{src: []rune(src)}
}

// Pos returns the code point offset of the next token.
func (b *Builder) Pos() int {
	return b.pos
}

// Checkpoint records the current position in the pending child list.
func (b *Builder) Checkpoint() Checkpoint {
	return Checkpoint(len(b.children))
}

// StartNode opens a branch node; subsequent tokens and finished nodes become
// its children until FinishNode.
func (b *Builder) StartNode(kind token.Kind) {
	b.StartNodeAt(b.Checkpoint(), kind)
}

// StartNodeAt opens a branch node that adopts every pending child added since
// the checkpoint. It is the retroactive-wrapping primitive used for
// mapping-key promotion.
func (b *Builder) StartNodeAt(cp Checkpoint, kind token.Kind) {
	if int(cp) > len(b.children) {
		panic(fmt.Sprintf("cst: checkpoint %d is ahead of the child list (%d)", cp, len(b.children)))
	}
	if len(b.parents) > 0 && int(cp) < b.parents[len(b.parents)-1].firstChild {
		panic(fmt.Sprintf("cst: checkpoint %d crosses an open node boundary", cp))
	}
	b.parents = append(b.parents, parentFrame{kind: kind, firstChild: int(cp)})
}

// Token appends a token of n code points taken from the current source
// position.
func (b *Builder) Token(kind token.Kind, n int) {
	if b.pos+n > len(b.src) {
		panic(fmt.Sprintf("cst: token of length %d overruns the source at %d", n, b.pos))
	}
	b.children = append(b.children, &Node{
		kind:   kind,
		text:   string(b.src[b.pos : b.pos+n]),
		offset: b.pos,
		end:    b.pos + n,
	})
	b.pos += n
}

// FinishNode closes the most recently opened branch node.
func (b *Builder) FinishNode() {
	if len(b.parents) == 0 {
		panic("cst: FinishNode without a matching StartNode")
	}
	frame := b.parents[len(b.parents)-1]
	b.parents = b.parents[:len(b.parents)-1]

	kids := make([]*Node, len(b.children)-frame.firstChild)
	copy(kids, b.children[frame.firstChild:])
	node := &Node{kind: frame.kind, children: kids}
	if len(kids) > 0 {
		node.offset = kids[0].offset
		node.end = kids[len(kids)-1].end
	} else {
		node.offset = b.pos
		node.end = b.pos
	}
	b.children = append(b.children[:frame.firstChild], node)
}

// Error records a syntax error.
func (b *Builder) Error(err SyntaxError) {
	b.errs = append(b.errs, err)
}

// Finish validates that the whole source was consumed and every node closed,
// then returns the built tree.
func (b *Builder) Finish() *Tree {
	if len(b.parents) != 0 {
		panic("cst: Finish with unclosed nodes")
	}
	if b.pos != len(b.src) {
		panic(fmt.Sprintf("cst: %d of %d source code points consumed", b.pos, len(b.src)))
	}
	if len(b.children) != 1 {
		panic(fmt.Sprintf("cst: expected a single root node, got %d", len(b.children)))
	}
	return &Tree{
		Root:   b.children[0],
		Errors: b.errs,
		src:    b.src,
	}
}
