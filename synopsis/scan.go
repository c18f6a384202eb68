package synopsis

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"fmt"
	"strings"
	"sync"

	"github.com/npillmayer/cmdsyn"
	"github.com/npillmayer/cmdsyn/scanner"
	"github.com/npillmayer/cmdsyn/scanner/lexmach"
	"github.com/timtadh/lexmachine"
)

// Token types of the synopsis scanner. Literals use their character value.
const (
	tokEOF      = scanner.EOF
	tokLongFlag = iota
	tokFlag
	tokDash
	tokNonTerm
	tokWord
	tokEllipsis
	tokDot
)

// The tokens representing literal one-char lexemes
var literals = []string{"[", "]", "|", "="}

var tokenIds = map[string]int{
	"LONGFLAG": tokLongFlag,
	"FLAG":     tokFlag,
	"DASH":     tokDash,
	"NONTERM":  tokNonTerm,
	"WORD":     tokWord,
	"ELLIPSIS": tokEllipsis,
	"DOT":      tokDot,
	"[":        '[',
	"]":        ']',
	"|":        '|',
	"=":        '=',
}

func tokenName(t cmdsyn.TokType) string {
	switch t {
	case tokEOF:
		return "end of input"
	case tokLongFlag:
		return "long flag"
	case tokFlag:
		return "flag"
	case tokNonTerm:
		return "non-terminal"
	case tokDash, tokWord, tokDot:
		return "argument"
	case tokEllipsis:
		return "'...'"
	}
	return fmt.Sprintf("'%c'", rune(t))
}

// Input is normalized to single spaces before scanning, therefore the
// character classes only have to exclude ' '.
const (
	wordTail = `([^ \[\]\|=\.]|\.[^ \[\]\|=\.])*`
)

func initLexer(lexer *lexmachine.Lexer) {
	lexer.Add([]byte(`( |\t|\n|\r)+`), lexmach.Skip)
	lexer.Add([]byte(`\.\.\.`), makeToken("ELLIPSIS"))
	lexer.Add([]byte(`\-\-[^ \-\[\]\|=\.:]`+wordTail), makeToken("LONGFLAG"))
	lexer.Add([]byte(`\-[^ \-\[\]\|=\.]`+wordTail), makeToken("FLAG"))
	lexer.Add([]byte(`\-\-?`), makeToken("DASH"))
	lexer.Add([]byte(`:[^ :\[\]\|]+:`), makeToken("NONTERM"))
	lexer.Add([]byte(`[^ \-\[\]\|=\.:]`+wordTail), makeToken("WORD"))
	lexer.Add([]byte(`\.[^ \.\[\]\|=]`+wordTail), makeToken("WORD"))
	lexer.Add([]byte(`:[^ \[\]\|=\.]*`), makeToken("WORD"))
	lexer.Add([]byte(`\.`), makeToken("DOT"))
}

func makeToken(s string) lexmachine.Action {
	id, ok := tokenIds[s]
	if !ok {
		panic(fmt.Errorf("unknown token: %s", s))
	}
	return lexmach.MakeToken(s, id)
}

var lexer *lexmach.LMAdapter
var lexerErr error

var startOnce sync.Once // monitors one-time creation of the lexer

// synopsisLexer returns the process-wide lexer. The DFA is read-only after
// compilation and may be used by concurrent scanners.
func synopsisLexer() (*lexmach.LMAdapter, error) {
	startOnce.Do(func() {
		tracer().Infof("Creating synopsis lexer")
		lexer, lexerErr = lexmach.NewLMAdapter(initLexer, literals, nil, tokenIds)
	})
	return lexer, lexerErr
}

// normalize collapses runs of white space to a single space.
func normalize(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// tokenize splits a normalized input into tokens. The token list is
// terminated by an EOF token. Input the DFA cannot match results in a
// SyntaxError.
func tokenize(input string) ([]cmdsyn.Token, error) {
	lm, err := synopsisLexer()
	if err != nil {
		return nil, err
	}
	scan, err := lm.Scanner(input)
	if err != nil {
		return nil, err
	}
	var scanErr *SyntaxError
	var pos uint64
	scan.SetErrorHandler(func(e error) {
		if scanErr == nil {
			scanErr = &SyntaxError{Input: input, Pos: int(pos), Msg: e.Error()}
		}
	})
	var tokens []cmdsyn.Token
	for {
		tok := scan.NextToken()
		if tok.TokType() == tokEOF {
			tokens = append(tokens, scanner.MakeDefaultToken(tokEOF, "",
				cmdsyn.Span{uint64(len(input)), uint64(len(input))}))
			break
		}
		pos = tok.Span().To()
		if tok.TokType() == tokDot {
			tokens, tok = joinDot(tokens, tok)
		}
		tokens = append(tokens, tok)
	}
	if scanErr != nil {
		return nil, scanErr
	}
	return tokens, nil
}

// joinDot turns a single dot into a word. A dot directly following a word
// becomes part of it, as in 'path.' or '..'.
func joinDot(tokens []cmdsyn.Token, dot cmdsyn.Token) ([]cmdsyn.Token, cmdsyn.Token) {
	if n := len(tokens); n > 0 {
		prev := tokens[n-1]
		if prev.TokType() == tokWord && prev.Span().To() == dot.Span().From() {
			span := cmdsyn.Span{prev.Span().From(), dot.Span().To()}
			return tokens[:n-1], scanner.MakeDefaultToken(tokWord, prev.Lexeme()+".", span)
		}
	}
	return tokens, scanner.MakeDefaultToken(tokWord, ".", dot.Span())
}
