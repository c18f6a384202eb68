/*
Package scanner defines an interface for scanners to be used with the parsers
of this module.

Two scanner implementations are provided: (1) a thin wrapper over the Go std lib
'text/scanner', which splits type declarations of grammar files, and (2) an
adapter for lexmachine, living in sub-package `lexmach`, used for synopsis text.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package scanner

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"text/scanner"

	"github.com/npillmayer/cmdsyn"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'cmdsyn.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("cmdsyn.scanner")
}

// Token types of the Go tokenizer which clients have to know about.
const (
	EOF   = scanner.EOF
	Ident = scanner.Ident
	Int   = scanner.Int
)

// Tokenizer is a scanner interface.
type Tokenizer interface {
	NextToken() cmdsyn.Token
	SetErrorHandler(func(error))
}

// LogError is the default error handler of tokenizers.
func LogError(e error) {
	tracer().Errorf("scanner error: %v", e)
}

// --- Go tokenizer ----------------------------------------------------------

// GoScanner tokenizes input with Go's text/scanner. Comments are skipped.
// Create one with GoTokenizer.
type GoScanner struct {
	sc    scanner.Scanner
	Error func(error) // error handler
}

var _ Tokenizer = (*GoScanner)(nil)

// GoTokenizer creates a tokenizer accepting tokens similar to the Go language.
// sourceID is used as file name in error messages.
func GoTokenizer(sourceID string, input io.Reader) *GoScanner {
	t := &GoScanner{Error: LogError}
	t.sc.Init(input)
	t.sc.Filename = sourceID
	t.sc.Error = func(s *scanner.Scanner, msg string) {
		t.Error(fmt.Errorf("%s: %s", s.Position, msg))
	}
	return t
}

// SetErrorHandler sets an error handler for the scanner.
func (t *GoScanner) SetErrorHandler(h func(error)) {
	if h == nil {
		h = LogError
	}
	t.Error = h
}

// NextToken is part of the Tokenizer interface.
func (t *GoScanner) NextToken() cmdsyn.Token {
	r := t.sc.Scan()
	return MakeDefaultToken(cmdsyn.TokType(r), t.sc.TokenText(),
		cmdsyn.Span{uint64(t.sc.Position.Offset), uint64(t.sc.Pos().Offset)})
}

// ErrDeclaration is returned for type declarations which do not have the
// form 'Name(ARG, …)'.
var ErrDeclaration = errors.New("malformed declaration")

// Declaration splits a type declaration 'Name(ARG1, ARG2, …)' into the type
// name and its argument names. Lexemes between separators are joined, so
// names like 'file-name' survive although the Go tokenizer splits them.
func Declaration(sourceID, text string) (string, []string, error) {
	var scanErr error
	tok := GoTokenizer(sourceID, strings.NewReader(text))
	tok.SetErrorHandler(func(e error) {
		if scanErr == nil {
			scanErr = e
		}
	})
	var name string
	var args []string
	var part strings.Builder
	state := 0 // 0 = type name, 1 = arguments, 2 = done
	for t := tok.NextToken(); t.TokType() != EOF; t = tok.NextToken() {
		switch {
		case state == 0 && t.Lexeme() == "(":
			name = part.String()
			part.Reset()
			state = 1
		case state == 1 && (t.Lexeme() == "," || t.Lexeme() == ")"):
			if part.Len() > 0 {
				args = append(args, part.String())
			}
			part.Reset()
			if t.Lexeme() == ")" {
				state = 2
			}
		case state == 2:
			return "", nil, fmt.Errorf("%w: trailing input %q", ErrDeclaration, t.Lexeme())
		default:
			part.WriteString(t.Lexeme())
		}
	}
	if scanErr != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrDeclaration, scanErr)
	}
	if state != 2 || name == "" || len(args) == 0 {
		return "", nil, ErrDeclaration
	}
	tracer().Debugf("%s: type %s(%s)", sourceID, name, strings.Join(args, ", "))
	return name, args, nil
}

// --- Default tokens --------------------------------------------------------

// DefaultToken is a very unsophisticated token type, used by the Go
// tokenizer as well as the lexmachine scanner.
type DefaultToken struct {
	kind   cmdsyn.TokType
	lexeme string
	span   cmdsyn.Span
}

// MakeDefaultToken creates a token.
func MakeDefaultToken(typ cmdsyn.TokType, lexeme string, span cmdsyn.Span) DefaultToken {
	return DefaultToken{
		kind:   typ,
		lexeme: lexeme,
		span:   span,
	}
}

func (t DefaultToken) TokType() cmdsyn.TokType {
	return t.kind
}

// Value is always nil; synopsis tokens carry no semantic value.
func (t DefaultToken) Value() interface{} {
	return nil
}

func (t DefaultToken) Lexeme() string {
	return t.lexeme
}

func (t DefaultToken) Span() cmdsyn.Span {
	return t.span
}

func (t DefaultToken) String() string {
	return fmt.Sprintf("%q@%s", t.lexeme, t.span)
}
