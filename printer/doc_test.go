package printer

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func renderOpts(width int) *Options {
	o := DefaultOptions()
	o.PrintWidth = width
	return &o
}

func TestGroupFitsOnOneLine(t *testing.T) {
	doc := Group(Concat(Text("ab"), SpaceOrLine(), Text("cd")))
	got := Render(doc, renderOpts(10))
	if diff := cmp.Diff([]string{"ab cd"}, got); diff != "" {
		t.Fatalf("unexpected lines (-want +got):\n%s", diff)
	}
}

func TestGroupBreaksWhenTooWide(t *testing.T) {
	doc := Group(Concat(Text("ab"), SpaceOrLine(), Text("cd")))
	got := Render(doc, renderOpts(3))
	if diff := cmp.Diff([]string{"ab", "cd"}, got); diff != "" {
		t.Fatalf("unexpected lines (-want +got):\n%s", diff)
	}
}

func TestIndentAppliesToBrokenLines(t *testing.T) {
	doc := GroupBroken(Concat(
		Text("x"),
		Indent(2, Concat(HardLine(), Text("y"))),
		HardLine(),
		Text("z"),
	))
	got := Render(doc, renderOpts(80))
	if diff := cmp.Diff([]string{"x", "  y", "z"}, got); diff != "" {
		t.Fatalf("unexpected lines (-want +got):\n%s", diff)
	}
}

func TestIndentUsesTabs(t *testing.T) {
	o := renderOpts(80)
	o.UseTabs = true
	doc := GroupBroken(Concat(Text("x"), Indent(2, Concat(HardLine(), Text("y")))))
	got := Render(doc, o)
	if diff := cmp.Diff([]string{"x", "\ty"}, got); diff != "" {
		t.Fatalf("unexpected lines (-want +got):\n%s", diff)
	}
}

func TestIfBreak(t *testing.T) {
	mk := func() Doc {
		return Concat(Text("a"), SpaceOrLine(), Text("b"), IfBreak(Text(","), Text("")))
	}
	flat := Render(Group(mk()), renderOpts(80))
	if diff := cmp.Diff([]string{"a b"}, flat); diff != "" {
		t.Fatalf("flat form (-want +got):\n%s", diff)
	}
	broken := Render(GroupBroken(mk()), renderOpts(80))
	if diff := cmp.Diff([]string{"a", "b,"}, broken); diff != "" {
		t.Fatalf("broken form (-want +got):\n%s", diff)
	}
}

func TestHardLineForcesGroupBreak(t *testing.T) {
	doc := Group(Concat(Text("a"), HardLine(), Text("b"), SpaceOrLine(), Text("c")))
	got := Render(doc, renderOpts(80))
	if diff := cmp.Diff([]string{"a", "b", "c"}, got); diff != "" {
		t.Fatalf("unexpected lines (-want +got):\n%s", diff)
	}
}

func TestTrailingWhitespaceTrimmed(t *testing.T) {
	doc := Concat(Text("a   "), HardLine(), Text("b"))
	got := Render(doc, renderOpts(80))
	if diff := cmp.Diff([]string{"a", "b"}, got); diff != "" {
		t.Fatalf("unexpected lines (-want +got):\n%s", diff)
	}
}

func TestTrailingWhitespaceKept(t *testing.T) {
	o := renderOpts(80)
	o.TrimTrailingWhitespaces = false
	doc := Concat(Text("a   "), HardLine(), Text("b"))
	got := Render(doc, o)
	if diff := cmp.Diff([]string{"a   ", "b"}, got); diff != "" {
		t.Fatalf("unexpected lines (-want +got):\n%s", diff)
	}
}

func TestVerbatimKeepsOwnIndentation(t *testing.T) {
	doc := GroupBroken(Concat(Text("head"), Indent(2, Concat(HardLine(), Text("x"), Verbatim("\n      raw\n   lines")))))
	got := Render(doc, renderOpts(80))
	if diff := cmp.Diff([]string{"head", "  x", "      raw", "   lines"}, got); diff != "" {
		t.Fatalf("unexpected lines (-want +got):\n%s", diff)
	}
}

func TestFillWrapsWords(t *testing.T) {
	doc := Fill([]string{"aaa", "bbb", "ccc", "ddd"})
	got := Render(doc, renderOpts(7))
	if diff := cmp.Diff([]string{"aaa bbb", "ccc ddd"}, got); diff != "" {
		t.Fatalf("unexpected lines (-want +got):\n%s", diff)
	}
}

func TestWidthCountsCodePoints(t *testing.T) {
	doc := Group(Concat(Text("日本語"), SpaceOrLine(), Text("x")))
	got := Render(doc, renderOpts(5))
	if diff := cmp.Diff([]string{"日本語 x"}, got); diff != "" {
		t.Fatalf("unexpected lines (-want +got):\n%s", diff)
	}
}
