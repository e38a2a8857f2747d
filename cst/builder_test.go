package cst_test

import (
	"testing"

	"github.com/g-plane/pretty-yaml/cst"
	"github.com/g-plane/pretty-yaml/token"
)

func TestBuilderRoundTrip(t *testing.T) {
	src := "a: b"
	b := cst.NewBuilder(src)
	b.StartNode(token.StreamType)
	b.StartNode(token.ScalarType)
	b.Token(token.PlainTextType, 1)
	b.FinishNode()
	b.Token(token.MappingValueType, 1)
	b.Token(token.WhitespaceType, 1)
	b.StartNode(token.ScalarType)
	b.Token(token.PlainTextType, 1)
	b.FinishNode()
	b.FinishNode()
	tree := b.Finish()

	if got := tree.Root.Text(); got != src {
		t.Fatalf("joined leaf text = %q, expected %q", got, src)
	}
	if tree.Root.Kind() != token.StreamType {
		t.Fatalf("unexpected root kind %s", tree.Root.Kind())
	}
	if n := len(tree.Root.Children()); n != 4 {
		t.Fatalf("expected 4 children, got %d", n)
	}
}

func TestBuilderCheckpointWrap(t *testing.T) {
	b := cst.NewBuilder("ab")
	b.StartNode(token.StreamType)
	cp := b.Checkpoint()
	b.Token(token.PlainTextType, 1)
	b.StartNodeAt(cp, token.ScalarType)
	b.Token(token.PlainTextType, 1)
	b.FinishNode()
	b.FinishNode()
	tree := b.Finish()

	kids := tree.Root.Children()
	if len(kids) != 1 {
		t.Fatalf("expected the wrapped node only, got %d children", len(kids))
	}
	if kids[0].Kind() != token.ScalarType {
		t.Fatalf("unexpected wrapped kind %s", kids[0].Kind())
	}
	if kids[0].Text() != "ab" {
		t.Fatalf("wrapped text = %q, expected %q", kids[0].Text(), "ab")
	}
	if kids[0].Offset() != 0 || kids[0].End() != 2 {
		t.Fatalf("unexpected range [%d,%d)", kids[0].Offset(), kids[0].End())
	}
}

func TestBuilderNestedWrapAtSameCheckpoint(t *testing.T) {
	b := cst.NewBuilder("k")
	b.StartNode(token.StreamType)
	cp := b.Checkpoint()
	b.StartNode(token.ScalarType)
	b.Token(token.PlainTextType, 1)
	b.FinishNode()
	b.StartNodeAt(cp, token.BlockMapType)
	b.StartNodeAt(cp, token.BlockMapEntryType)
	b.FinishNode()
	b.FinishNode()
	b.FinishNode()
	tree := b.Finish()

	m := tree.Root.Children()[0]
	if m.Kind() != token.BlockMapType {
		t.Fatalf("expected BlockMap, got %s", m.Kind())
	}
	e := m.Children()[0]
	if e.Kind() != token.BlockMapEntryType {
		t.Fatalf("expected BlockMapEntry, got %s", e.Kind())
	}
	if e.Children()[0].Kind() != token.ScalarType {
		t.Fatalf("expected Scalar inside the entry, got %s", e.Children()[0].Kind())
	}
}

func TestBuilderErrors(t *testing.T) {
	b := cst.NewBuilder("x")
	b.StartNode(token.StreamType)
	b.Error(cst.SyntaxError{
		Code:     cst.UnexpectedCharacter,
		Start:    0,
		End:      1,
		Message:  "boom",
		Severity: cst.Recovered,
	})
	b.Token(token.PlainTextType, 1)
	b.FinishNode()
	tree := b.Finish()

	if len(tree.Errors) != 1 {
		t.Fatalf("expected 1 error, got %d", len(tree.Errors))
	}
	if tree.HasFatalError() {
		t.Fatal("recovered error reported as fatal")
	}
}

func TestTreePosition(t *testing.T) {
	b := cst.NewBuilder("ab\ncd\r\nef")
	b.StartNode(token.StreamType)
	b.Token(token.PlainTextType, 9)
	b.FinishNode()
	tree := b.Finish()

	tests := []struct {
		offset int
		line   int
		column int
	}{
		{0, 1, 1},
		{1, 1, 2},
		{3, 2, 1},
		{7, 3, 1},
		{8, 3, 2},
	}
	for _, tt := range tests {
		pos := tree.Position(tt.offset)
		if pos.Line != tt.line || pos.Column != tt.column {
			t.Errorf("Position(%d) = %d:%d, expected %d:%d", tt.offset, pos.Line, pos.Column, tt.line, tt.column)
		}
	}
}
