// Package prettyyaml formats YAML documents. It parses the full YAML 1.2
// surface syntax into a lossless concrete syntax tree, then renders the tree
// under a width-aware layout, preserving comments, blank lines and multi-line
// scalar content.
package prettyyaml

import (
	"github.com/g-plane/pretty-yaml/ast"
	"github.com/g-plane/pretty-yaml/cst"
	"github.com/g-plane/pretty-yaml/parser"
	"github.com/g-plane/pretty-yaml/printer"
)

// Format parses src and renders it under opts. A nil opts uses the defaults.
// Recovered parse errors do not prevent formatting; the first fatal error is
// returned as a *FormatError together with the full error list.
func Format(src []byte, opts *Options) ([]byte, error) {
	o := resolve(opts)
	if err := o.Validate(); err != nil {
		return nil, err
	}
	tree := parser.Parse(string(src))
	if fatal := tree.FirstFatal(); fatal != nil {
		return nil, newFormatError(tree, fatal)
	}
	return printer.PrintTree(ast.NewStream(tree), &o), nil
}

// Parse exposes the lossless syntax tree for consumers that want the tree
// directly. The tree is returned even on fatal errors so callers can still
// inspect it; err is non-nil when a fatal error was recorded.
func Parse(src []byte) (*cst.Tree, error) {
	tree := parser.Parse(string(src))
	if fatal := tree.FirstFatal(); fatal != nil {
		return tree, newFormatError(tree, fatal)
	}
	return tree, nil
}

// PrintTree renders an already-parsed stream. It never fails; errors recorded
// during parsing are ignored because their text is part of the tree.
func PrintTree(stream *ast.Stream, opts *Options) []byte {
	o := resolve(opts)
	return printer.PrintTree(stream, &o)
}

func resolve(opts *Options) Options {
	if opts == nil {
		return DefaultOptions()
	}
	return *opts
}
