package scanner_test

import (
	"testing"

	"github.com/g-plane/pretty-yaml/scanner"
)

func TestCursorAdvance(t *testing.T) {
	c := scanner.New("ab\ncd\r\nef")
	if c.Line() != 1 || c.Column() != 1 {
		t.Fatalf("unexpected start position: line=%d column=%d", c.Line(), c.Column())
	}
	c.Advance(2)
	if c.Column() != 3 {
		t.Fatalf("expected column 3, got %d", c.Column())
	}
	c.Advance(1) // '\n'
	if c.Line() != 2 || c.Column() != 1 {
		t.Fatalf("expected 2:1, got %d:%d", c.Line(), c.Column())
	}
	c.Advance(2) // "cd"
	c.Advance(2) // "\r\n" counts as one line break
	if c.Line() != 3 || c.Column() != 1 {
		t.Fatalf("expected 3:1, got %d:%d", c.Line(), c.Column())
	}
	if c.Peek(0) != 'e' || c.Peek(1) != 'f' {
		t.Fatalf("unexpected lookahead: %q %q", c.Peek(0), c.Peek(1))
	}
	c.Advance(2)
	if !c.EOF() {
		t.Fatal("expected EOF")
	}
	if c.Peek(0) != scanner.EOF {
		t.Fatalf("expected EOF sentinel, got %q", c.Peek(0))
	}
}

func TestCursorLoneCarriageReturn(t *testing.T) {
	c := scanner.New("a\rb")
	c.Advance(2)
	if c.Line() != 2 || c.Column() != 1 {
		t.Fatalf("expected 2:1 after lone CR, got %d:%d", c.Line(), c.Column())
	}
}

func TestMatchLineBreak(t *testing.T) {
	tests := []struct {
		src  string
		want int
	}{
		{"\n", 1},
		{"\r", 1},
		{"\r\n", 2},
		{"x", 0},
		{"", 0},
	}
	for _, tt := range tests {
		if got := scanner.New(tt.src).MatchLineBreak(); got != tt.want {
			t.Errorf("MatchLineBreak(%q) = %d, expected %d", tt.src, got, tt.want)
		}
	}
}

func TestLineIndent(t *testing.T) {
	c := scanner.New("  ab\n\tcd")
	if c.LineIndent() != 2 {
		t.Fatalf("expected indent 2, got %d", c.LineIndent())
	}
	c.Advance(5) // to the second line
	if c.LineIndent() != 1 {
		t.Fatalf("expected indent 1 (tab counts as one column), got %d", c.LineIndent())
	}
}

func TestColumnCountsCodePoints(t *testing.T) {
	c := scanner.New("日本語x")
	c.Advance(3)
	if c.Column() != 4 {
		t.Fatalf("expected column 4, got %d", c.Column())
	}
	if c.Peek(0) != 'x' {
		t.Fatalf("expected 'x', got %q", c.Peek(0))
	}
}
