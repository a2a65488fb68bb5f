package dsl

import (
	"errors"
	"fmt"
	"strings"
)

// Error is an error annotated with a source position.
type Error struct {
	At  Pos
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%v: %v", e.At, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Span returns the source position the error points at.
func (e *Error) Span() Pos { return e.At }

func errorAt(at Pos, format string, args ...any) *Error {
	return &Error{At: at, Err: fmt.Errorf(format, args...)}
}

// WrapAt annotates err with a source position.
func WrapAt(at Pos, err error) *Error {
	return &Error{At: at, Err: err}
}

type spanned interface {
	error
	Span() Pos
}

// Diagnostic renders err against the source text it was produced from. For
// position-carrying errors the offending line is shown with a caret:
//
//	error: duplicate edge definition
//	  |
//	3 | Foo -> Bar;
//	  |     ^
//
// Other errors render as their message.
func Diagnostic(src string, err error) string {
	var se spanned
	if !errors.As(err, &se) {
		return "error: " + err.Error()
	}

	at := se.Span()
	lines := strings.Split(src, "\n")
	if at.Line < 1 || at.Line > len(lines) {
		return "error: " + err.Error()
	}
	line := strings.TrimRight(lines[at.Line-1], "\r")

	var b strings.Builder
	fmt.Fprintf(&b, "error: %v\n", underlying(se))
	gutter := fmt.Sprintf("%d", at.Line)
	pad := strings.Repeat(" ", len(gutter))
	fmt.Fprintf(&b, "%s |\n", pad)
	fmt.Fprintf(&b, "%s | %s\n", gutter, line)
	caret := at.Col - 1
	if caret < 0 {
		caret = 0
	}
	if caret > len(line) {
		caret = len(line)
	}
	fmt.Fprintf(&b, "%s | %s^", pad, strings.Repeat(" ", caret))
	return b.String()
}

func underlying(err error) error {
	if e, ok := err.(*Error); ok {
		return e.Err
	}
	return err
}
