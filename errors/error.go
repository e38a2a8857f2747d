// Package errors carries the error plumbing shared by the parser facade and
// the CLI: wrapping with stack frames and syntax errors that render an
// annotated source excerpt.
package errors

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/xerrors"
)

var (
	// ColoredErr renders syntax error messages with color.
	ColoredErr = true
	// WithSourceCode renders syntax errors with an annotated source excerpt.
	WithSourceCode = true
)

// Wrapf wraps err with a message and a stack frame.
func Wrapf(err error, msg string, args ...interface{}) error {
	return &wrapError{
		err:     xerrors.Errorf(msg, args...),
		nextErr: err,
		frame:   xerrors.Caller(1),
	}
}

type wrapError struct {
	err     error
	nextErr error
	frame   xerrors.Frame
}

func (e *wrapError) Error() string {
	if e.nextErr == nil {
		return e.err.Error()
	}
	return fmt.Sprintf("%s: %s", e.err.Error(), e.nextErr.Error())
}

func (e *wrapError) Unwrap() error {
	return e.nextErr
}

func (e *wrapError) Format(state fmt.State, verb rune) {
	xerrors.FormatError(e, state, verb)
}

func (e *wrapError) FormatError(p xerrors.Printer) error {
	p.Print(e.err)
	if p.Detail() {
		e.frame.Format(p)
	}
	return e.nextErr
}

// ErrSyntax creates a syntax error pointing into source. Line and column
// start from 1.
func ErrSyntax(msg, source string, line, column int) *SyntaxError {
	return &SyntaxError{
		msg:    msg,
		source: source,
		line:   line,
		column: column,
		frame:  xerrors.Caller(1),
	}
}

// SyntaxError is a parse error with enough context to render the offending
// source lines.
type SyntaxError struct {
	msg    string
	source string
	line   int
	column int
	frame  xerrors.Frame
}

func (e *SyntaxError) Format(state fmt.State, verb rune) {
	xerrors.FormatError(e, state, verb)
}

func (e *SyntaxError) FormatError(p xerrors.Printer) error {
	p.Print(e.Error())
	if p.Detail() {
		e.frame.Format(p)
	}
	return nil
}

// Line returns the 1-based line of the error.
func (e *SyntaxError) Line() int { return e.line }

// Column returns the 1-based column of the error.
func (e *SyntaxError) Column() int { return e.column }

// Message returns the bare message without position or excerpt.
func (e *SyntaxError) Message() string { return e.msg }

func (e *SyntaxError) Error() string {
	pos := fmt.Sprintf("[%d:%d] ", e.line, e.column)
	msg := "syntax error: " + pos + e.msg
	if ColoredErr {
		msg = color.New(color.FgHiRed).Sprint(msg)
	}
	if WithSourceCode {
		if excerpt := annotate(e.source, e.line, e.column); excerpt != "" {
			return msg + "\n" + excerpt
		}
	}
	return msg
}

// annotate renders the error line, up to three lines before and after it, and
// a caret under the error column.
func annotate(source string, line, column int) string {
	if source == "" {
		return ""
	}
	lines := splitSourceLines(source)
	if line < 1 || line > len(lines) {
		return ""
	}
	minLine := line - 3
	if minLine < 1 {
		minLine = 1
	}
	maxLine := line + 3
	if maxLine > len(lines) {
		maxLine = len(lines)
	}
	header := func(num int) string {
		marker := "  "
		if num == line {
			marker = "> "
		}
		h := fmt.Sprintf("%s%2d | ", marker, num)
		if ColoredErr {
			return color.New(color.Bold, color.FgHiWhite).Sprint(h)
		}
		return h
	}
	var sb strings.Builder
	for num := minLine; num <= maxLine; num++ {
		sb.WriteString(header(num))
		sb.WriteString(lines[num-1])
		sb.WriteString("\n")
		if num == line {
			prefix := len(fmt.Sprintf("  %2d | ", num))
			sb.WriteString(strings.Repeat(" ", prefix+column-1))
			sb.WriteString("^\n")
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

func splitSourceLines(s string) []string {
	var out []string
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\n':
			out = append(out, s[start:i])
			start = i + 1
		case '\r':
			out = append(out, s[start:i])
			if i+1 < len(s) && s[i+1] == '\n' {
				i++
			}
			start = i + 1
		}
	}
	return append(out, s[start:])
}
