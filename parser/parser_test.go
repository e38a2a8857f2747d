package parser_test

import (
	"strings"
	"testing"

	"github.com/g-plane/pretty-yaml/ast"
	"github.com/g-plane/pretty-yaml/cst"
	"github.com/g-plane/pretty-yaml/parser"
	"github.com/g-plane/pretty-yaml/token"
)

// Every parse must reproduce its input byte for byte when the leaf texts are
// joined, whatever the input looks like.
func TestRoundTrip(t *testing.T) {
	sources := []string{
		"",
		"\n",
		"a",
		"a: b\n",
		"a: b",
		"- a\n-  b\n",
		"-  a\n-     b",
		"a:\n  b: c\n",
		"a:\n- x\n- y\n",
		"key:\n  - 1\n  - 2\n",
		"[1, 2, 3]\n",
		"[1,\n2,\n3]",
		"{k1: v1,\n k2: v2}",
		"{ a: 1, b: 2 }\n",
		"{a: , b}\n",
		"[a: b, c]\n",
		"# comment only\n",
		"a: 1 # trailing\nb: 2\n",
		"a: 1\n\n\nb: 2\n",
		"---\na: b\n",
		"---\na: b\n...\n",
		"--- a\n--- b\n",
		"%YAML 1.2\n---\na: 1\n",
		"%TAG !e! tag:example.com,2000:\n---\n!e!foo bar\n",
		"...\n",
		"a: &anchor b\nc: *anchor\n",
		"&a !tag value\n",
		"!tag &a value\n",
		"- !!str 1\n",
		"a: !<verbatim:tag> x\n",
		"<<: *base\n",
		"? complex\n: value\n",
		"? a\n",
		": only value\n",
		"a: |\n  line1\n  line2\n",
		"a: |-\n  keep\n",
		"a: |+2\n   over\n\n",
		"a: >\n  folded\n  text\n\n  more\n",
		"a: >1-\n  deep\n",
		"|\n  root literal\n",
		"plain multi\n  line scalar\n",
		"desc: first\n  second\n  third\n",
		"'single'\n",
		"\"double \\\" escape\"\n",
		"'it''s'\n",
		"\"multi\nline\"\n",
		"a: 'b: c'\n",
		"a: \"1:1\"\n",
		"a: b#not-comment\n",
		"a: b #comment\n",
		"    indented: doc\n",
		"a\rb\n",
		"a: b\r\nc: d\r\n",
		"\uFEFFbom: true\n",
		"a:\n\tb\n",
		"@reserved\n",
		"`reserved\n",
		"]stray\n",
		"a: {foo}\n",
		"a: {foo,bar}\n",
		"[a, [b, [c]]]\n",
		"{a: {b: {c: d}}}\n",
		"[\n  # comment in flow\n  x,\n]\n",
		"- - nested\n",
		"-\n  key: value\n",
		"- &x\n  y\n",
		"-\n",
		"- \n",
		"a:\n",
		"a :\tb\n",
		"::\n",
		"x: :y\n",
		"{",
		"[",
		"'unterminated",
		"\"unterminated",
		"[1, 2",
		"{a: b",
		"[}\n",
		"{]\n",
		"%\n",
		"a: # only comment\n",
		"# c1\n\n# c2\na: 1\n# tail\n",
	}
	for _, src := range sources {
		src := src
		t.Run(strings.ReplaceAll(src, "\n", "\\n"), func(t *testing.T) {
			tree := parser.Parse(src)
			if got := tree.Root.Text(); got != src {
				t.Fatalf("round trip failed:\n  input:  %q\n  output: %q", src, got)
			}
		})
	}
}

func TestParseBlockMap(t *testing.T) {
	tree := parser.Parse("a: b\nc: d\n")
	if len(tree.Errors) != 0 {
		t.Fatalf("unexpected errors: %+v", tree.Errors)
	}
	stream := ast.NewStream(tree)
	docs := stream.Documents()
	if len(docs) != 1 {
		t.Fatalf("expected 1 document, got %d", len(docs))
	}
	m, ok := docs[0].Body().(*ast.BlockMap)
	if !ok {
		t.Fatalf("expected a block map body, got %T", docs[0].Body())
	}
	entries := m.Entries()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	key, ok := entries[0].Key().(*ast.Scalar)
	if !ok {
		t.Fatalf("expected a scalar key, got %T", entries[0].Key())
	}
	if got := key.TextTokens()[0].Text(); got != "a" {
		t.Fatalf("key text = %q, expected %q", got, "a")
	}
	value, ok := entries[1].Value().(*ast.Scalar)
	if !ok {
		t.Fatalf("expected a scalar value, got %T", entries[1].Value())
	}
	if got := value.TextTokens()[0].Text(); got != "d" {
		t.Fatalf("value text = %q, expected %q", got, "d")
	}
}

func TestParseBlockSeq(t *testing.T) {
	tree := parser.Parse("- a\n- b\n")
	stream := ast.NewStream(tree)
	s, ok := stream.Documents()[0].Body().(*ast.BlockSeq)
	if !ok {
		t.Fatalf("expected a block sequence body, got %T", stream.Documents()[0].Body())
	}
	if len(s.Entries()) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(s.Entries()))
	}
}

func TestParseFlow(t *testing.T) {
	tree := parser.Parse("{k: [1, 2]}\n")
	stream := ast.NewStream(tree)
	m, ok := stream.Documents()[0].Body().(*ast.FlowMap)
	if !ok {
		t.Fatalf("expected a flow map body, got %T", stream.Documents()[0].Body())
	}
	entries := m.Entries()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	seq, ok := entries[0].Value().(*ast.FlowSeq)
	if !ok {
		t.Fatalf("expected a flow sequence value, got %T", entries[0].Value())
	}
	if len(seq.Entries()) != 2 {
		t.Fatalf("expected 2 sequence entries, got %d", len(seq.Entries()))
	}
}

func TestParseScalarStyles(t *testing.T) {
	tests := []struct {
		src   string
		style ast.ScalarStyle
	}{
		{"plain\n", ast.PlainStyle},
		{"'single'\n", ast.SingleQuotedStyle},
		{"\"double\"\n", ast.DoubleQuotedStyle},
		{"|\n  x\n", ast.LiteralStyle},
		{">\n  x\n", ast.FoldedStyle},
	}
	for _, tt := range tests {
		tree := parser.Parse(tt.src)
		stream := ast.NewStream(tree)
		sc, ok := stream.Documents()[0].Body().(*ast.Scalar)
		if !ok {
			t.Fatalf("%q: expected a scalar body, got %T", tt.src, stream.Documents()[0].Body())
		}
		if sc.Style() != tt.style {
			t.Errorf("%q: style = %s, expected %s", tt.src, sc.Style(), tt.style)
		}
	}
}

func TestParseProperties(t *testing.T) {
	tree := parser.Parse("a: &x !tag v\n")
	stream := ast.NewStream(tree)
	m := stream.Documents()[0].Body().(*ast.BlockMap)
	e := m.Entries()[0]
	props := e.ValueProperties()
	if props == nil {
		t.Fatal("expected value properties")
	}
	if props.Anchor() != "x" {
		t.Fatalf("anchor = %q, expected %q", props.Anchor(), "x")
	}
	if props.Tag() != "!tag" {
		t.Fatalf("tag = %q, expected %q", props.Tag(), "!tag")
	}
}

func TestMappingKeyPromotion(t *testing.T) {
	// the scalar is only known to be a key after the ':' is seen
	tree := parser.Parse("key: value\n")
	m, ok := ast.NewStream(tree).Documents()[0].Body().(*ast.BlockMap)
	if !ok {
		t.Fatal("expected the scalar to be promoted into a block map entry")
	}
	if m.Entries()[0].Key() == nil {
		t.Fatal("expected a key")
	}
}

func TestUnterminatedFlowIsFatal(t *testing.T) {
	for _, src := range []string{"{", "[", "[1, 2", "{a: b"} {
		tree := parser.Parse(src)
		fatal := tree.FirstFatal()
		if fatal == nil {
			t.Errorf("%q: expected a fatal error", src)
			continue
		}
		if fatal.Code != cst.UnterminatedFlowCollection {
			t.Errorf("%q: code = %s, expected %s", src, fatal.Code, cst.UnterminatedFlowCollection)
		}
	}
}

func TestUnterminatedQuoteIsFatal(t *testing.T) {
	for _, src := range []string{"'abc", "\"abc"} {
		tree := parser.Parse(src)
		fatal := tree.FirstFatal()
		if fatal == nil {
			t.Errorf("%q: expected a fatal error", src)
			continue
		}
		if fatal.Code != cst.UnterminatedQuotedScalar {
			t.Errorf("%q: code = %s, expected %s", src, fatal.Code, cst.UnterminatedQuotedScalar)
		}
	}
}

func TestTabIndentationIsRecovered(t *testing.T) {
	tree := parser.Parse("a:\n\tb\n")
	if tree.HasFatalError() {
		t.Fatal("tab indentation must not be fatal")
	}
	found := false
	for _, e := range tree.Errors {
		if e.Code == cst.InvalidIndentation {
			found = true
		}
	}
	if !found {
		t.Fatal("expected an InvalidIndentation error")
	}
}

func TestMultiDocumentStream(t *testing.T) {
	tree := parser.Parse("---\na: 1\n---\nb: 2\n")
	docs := ast.NewStream(tree).Documents()
	if len(docs) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(docs))
	}
	for i, d := range docs {
		if !d.HasHeader() {
			t.Errorf("document %d: expected an explicit header", i)
		}
	}
}

func TestDirectives(t *testing.T) {
	tree := parser.Parse("%YAML 1.2\n---\na: 1\n")
	doc := ast.NewStream(tree).Documents()[0]
	dirs := doc.Directives()
	if len(dirs) != 1 {
		t.Fatalf("expected 1 directive, got %d", len(dirs))
	}
	if dirs[0].Name() != "YAML" {
		t.Fatalf("directive name = %q, expected %q", dirs[0].Name(), "YAML")
	}
	if params := dirs[0].Params(); len(params) != 1 || params[0] != "1.2" {
		t.Fatalf("directive params = %v, expected [1.2]", params)
	}
}

func TestBlockScalarBodyIsVerbatim(t *testing.T) {
	tree := parser.Parse("a: |\n  one\n  two\n")
	m := ast.NewStream(tree).Documents()[0].Body().(*ast.BlockMap)
	sc, ok := m.Entries()[0].Value().(*ast.Scalar)
	if !ok {
		t.Fatalf("expected a scalar value, got %T", m.Entries()[0].Value())
	}
	body := sc.BodyToken()
	if body == nil {
		t.Fatal("expected a body token")
	}
	if body.Text() != "  one\n  two\n" {
		t.Fatalf("body = %q", body.Text())
	}
	if body.Kind() != token.BlockScalarBodyType {
		t.Fatalf("unexpected body kind %s", body.Kind())
	}
}

func TestSequenceUnderMapKey(t *testing.T) {
	// dashes may sit at the key's own indentation
	tree := parser.Parse("key:\n- a\n- b\nother: x\n")
	m := ast.NewStream(tree).Documents()[0].Body().(*ast.BlockMap)
	entries := m.Entries()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	seq, ok := entries[0].Value().(*ast.BlockSeq)
	if !ok {
		t.Fatalf("expected a block sequence value, got %T", entries[0].Value())
	}
	if len(seq.Entries()) != 2 {
		t.Fatalf("expected 2 sequence entries, got %d", len(seq.Entries()))
	}
}
