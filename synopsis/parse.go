package synopsis

import (
	"fmt"
	"strings"

	"github.com/npillmayer/cmdsyn"
	"github.com/npillmayer/cmdsyn/syntax"
)

// SyntaxError is returned if a synopsis does not match the synopsis grammar.
// Pos is a byte offset into the white-space normalized Input.
type SyntaxError struct {
	Input string
	Pos   int
	Msg   string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at position %d of %q: %s", e.Pos, e.Input, e.Msg)
}

// Parser is a recursive descent parser for synopses.
// A Parser is stateless apart from its dictionary and may be used concurrently.
type Parser struct {
	dict *syntax.Dictionary
}

// NewParser creates a parser which resolves arguments with dict.
// dict may be nil.
func NewParser(dict *syntax.Dictionary) *Parser {
	return &Parser{dict: dict}
}

// Dictionary returns the dictionary of this parser.
func (p *Parser) Dictionary() *syntax.Dictionary {
	return p.dict
}

// ParseSequence parses a synopsis. The result is an *syntax.Alternatives node
// if the synopsis contains top-level alternatives, otherwise it is a
// *syntax.Sequence (possibly with zero or one child).
func (p *Parser) ParseSequence(text string) (syntax.Node, error) {
	input := normalize(text)
	tokens, err := tokenize(input)
	if err != nil {
		tracer().Debugf("synopsis %q: %v", input, err)
		return nil, err
	}
	ps := &parse{dict: p.dict, input: input, tokens: tokens}
	node, err := ps.group(0)
	if err != nil {
		tracer().Debugf("synopsis %q: %v", input, err)
		return nil, err
	}
	tracer().Debugf("synopsis %q => %v", input, node)
	return node, nil
}

// ParseOption parses a single option fragment, e.g. '--color[=WHEN]' from a
// description header. A sequence with a single child is replaced by the
// child. An empty fragment is a syntax error.
func (p *Parser) ParseOption(text string) (syntax.Node, error) {
	node, err := p.ParseSequence(text)
	if err != nil {
		return nil, err
	}
	if seq, ok := node.(*syntax.Sequence); ok {
		switch len(seq.Children) {
		case 0:
			return nil, &SyntaxError{Input: normalize(text), Msg: "empty option"}
		case 1:
			return seq.Children[0], nil
		}
	}
	return node, nil
}

// ParseCommand parses a line of the form '<name> <synopsis>'.
func (p *Parser) ParseCommand(line string) (*syntax.Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, &SyntaxError{Input: line, Msg: "missing command name"}
	}
	name := fields[0]
	root, err := p.ParseSequence(strings.Join(fields[1:], " "))
	if err != nil {
		return nil, fmt.Errorf("command %s: %w", name, err)
	}
	return &syntax.Command{Name: name, Root: root}, nil
}

// Parse parses a synopsis without a dictionary.
func Parse(text string) (syntax.Node, error) {
	return NewParser(nil).ParseSequence(text)
}

// --- Recursive descent -----------------------------------------------------

// parse holds the state of a single parser run.
type parse struct {
	dict   *syntax.Dictionary
	input  string
	tokens []cmdsyn.Token // terminated by EOF
	pos    int
}

func (ps *parse) peek() cmdsyn.Token {
	return ps.tokens[ps.pos]
}

func (ps *parse) peekType() cmdsyn.TokType {
	return ps.tokens[ps.pos].TokType()
}

// lookahead returns the type of the token n positions ahead.
func (ps *parse) lookahead(n int) cmdsyn.TokType {
	if ps.pos+n >= len(ps.tokens) {
		return tokEOF
	}
	return ps.tokens[ps.pos+n].TokType()
}

func (ps *parse) next() cmdsyn.Token {
	tok := ps.tokens[ps.pos]
	if tok.TokType() != tokEOF {
		ps.pos++
	}
	return tok
}

func (ps *parse) errorf(tok cmdsyn.Token, format string, args ...interface{}) error {
	return &SyntaxError{
		Input: ps.input,
		Pos:   int(tok.Span().From()),
		Msg:   fmt.Sprintf(format, args...),
	}
}

// group parses a list of alternatives, each being a sequence of items.
// On depth 0 it stops at EOF, on deeper levels at a closing ']', which is
// left for the caller to consume.
func (ps *parse) group(depth int) (syntax.Node, error) {
	alts := [][]syntax.Node{nil}
	cur := 0
	for {
		tok := ps.peek()
		switch tok.TokType() {
		case tokEOF:
			if depth > 0 {
				return nil, ps.errorf(tok, "missing ']'")
			}
			return ps.makeGroup(alts, tok)
		case ']':
			if depth == 0 {
				return nil, ps.errorf(tok, "unmatched ']'")
			}
			return ps.makeGroup(alts, tok)
		case '|':
			if len(alts[cur]) == 0 {
				return nil, ps.errorf(tok, "empty alternative")
			}
			ps.next()
			alts = append(alts, nil)
			cur++
		default:
			item, err := ps.item(depth)
			if err != nil {
				return nil, err
			}
			alts[cur] = append(alts[cur], item)
		}
	}
}

func (ps *parse) makeGroup(alts [][]syntax.Node, at cmdsyn.Token) (syntax.Node, error) {
	if len(alts) == 1 {
		return syntax.NewSequence(alts[0]...), nil
	}
	children := make([]syntax.Node, len(alts))
	for i, alt := range alts {
		switch len(alt) {
		case 0:
			return nil, ps.errorf(at, "empty alternative")
		case 1:
			children[i] = alt[0]
		default:
			children[i] = syntax.NewSequence(alt...)
		}
	}
	return syntax.NewAlternatives(children...), nil
}

// item parses a single item of a sequence.
func (ps *parse) item(depth int) (syntax.Node, error) {
	tok := ps.peek()
	switch tok.TokType() {
	case '[':
		ps.next()
		inner, err := ps.group(depth + 1)
		if err != nil {
			return nil, err
		}
		if seq, ok := inner.(*syntax.Sequence); ok && len(seq.Children) == 0 {
			return nil, ps.errorf(tok, "empty optional group")
		}
		ps.next() // ']'
		opt := &syntax.Optional{Inner: inner}
		opt.IsList = ps.ellipsis()
		return opt, nil
	case tokLongFlag:
		return ps.longFlag()
	case tokFlag:
		ps.next()
		return syntax.NewFlag(tok.Lexeme()), nil
	case tokNonTerm:
		ps.next()
		name := strings.Trim(tok.Lexeme(), ":")
		return &syntax.NonTerminalRef{Name: name, IsList: ps.ellipsis()}, nil
	case tokWord, tokDash:
		return ps.argument()
	case tokEllipsis:
		return nil, ps.errorf(tok, "'...' without preceding argument")
	}
	return nil, ps.errorf(tok, "unexpected %s", tokenName(tok.TokType()))
}

// ellipsis consumes an optional '...'.
func (ps *parse) ellipsis() bool {
	if ps.peekType() == tokEllipsis {
		ps.next()
		return true
	}
	return false
}

func (ps *parse) argument() (*syntax.Argument, error) {
	tok := ps.next()
	if t := tok.TokType(); t != tokWord && t != tokDash {
		return nil, ps.errorf(tok, "expected argument, found %s", tokenName(t))
	}
	return syntax.NewArgument(ps.dict, tok.Lexeme(), ps.ellipsis()), nil
}

// longFlag parses '--name', '--name=ARG' and '--name[=ARG]'.
func (ps *parse) longFlag() (syntax.Node, error) {
	tok := ps.next()
	lf := syntax.NewLongFlag(tok.Lexeme())
	switch ps.peekType() {
	case '=':
		ps.next()
		arg, err := ps.argument()
		if err != nil {
			return nil, err
		}
		lf.WithArgument(arg, false)
	case '[':
		if ps.lookahead(1) != '=' {
			break // an optional group following the flag
		}
		ps.next()
		ps.next()
		arg, err := ps.argument()
		if err != nil {
			return nil, err
		}
		if closing := ps.next(); closing.TokType() != ']' {
			return nil, ps.errorf(closing, "expected ']', found %s", tokenName(closing.TokType()))
		}
		if ps.ellipsis() {
			arg.IsList = true
		}
		lf.WithArgument(arg, true)
	}
	return lf, nil
}
