package prettyyaml

import (
	"github.com/g-plane/pretty-yaml/cst"
	"github.com/g-plane/pretty-yaml/errors"
)

// FormatError is returned when the parser records a fatal error. It carries
// the full error list from the parse; Error renders the first fatal error
// with an annotated source excerpt.
type FormatError struct {
	// Errors is every error recorded during the parse, recovered ones
	// included.
	Errors []cst.SyntaxError
	// First is the fatal error that aborted formatting.
	First cst.SyntaxError

	rendered *errors.SyntaxError
}

func newFormatError(tree *cst.Tree, fatal *cst.SyntaxError) *FormatError {
	pos := tree.Position(fatal.Start)
	return &FormatError{
		Errors:   tree.Errors,
		First:    *fatal,
		rendered: errors.ErrSyntax(fatal.Message, tree.Source(), pos.Line, pos.Column),
	}
}

func (e *FormatError) Error() string {
	return e.rendered.Error()
}
