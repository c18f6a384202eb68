package grammar

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/npillmayer/cmdsyn/scanner"
	"github.com/npillmayer/cmdsyn/synopsis"
	"github.com/npillmayer/cmdsyn/syntax"
)

// File is the result of loading a grammar file.
type File struct {
	Commands     []*syntax.Command        // in order of appearance
	Types        map[string]string        // argument name → semantic type
	Constants    map[string]string        // argument name → literal symbol
	NonTerminals map[string][]syntax.Node // name → alternatives
	Dict         *syntax.Dictionary       // built from Types and Constants
	Failures     []error                  // lines which have been skipped
}

// LineError is recorded for every line of a grammar file which could not be
// processed.
type LineError struct {
	Line int // 1-based
	Text string
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// Errors for malformed lines of a grammar file.
var (
	ErrMalformedType     = errors.New("malformed type declaration")
	ErrMalformedConstant = errors.New("malformed constant declaration")
	ErrOutsideBlock      = errors.New("indented line outside of a block")
	ErrUnknownBlock      = errors.New("unknown block")
	ErrEmptyDefinition   = errors.New("non-terminal without alternatives")
)

// LoadFile loads a grammar file from disk.
func LoadFile(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	g, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("grammar file %s: %w", path, err)
	}
	return g, nil
}

// Load reads a grammar file. An error is returned for I/O errors only;
// malformed lines are recorded in File.Failures.
func Load(r io.Reader) (*File, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, err
	}
	return Parse(lines), nil
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	return lines, sc.Err()
}

// --- Phase 1: blocks ------------------------------------------------------

type blockKind int8

const (
	commandBlock blockKind = iota
	typeBlock
	constantBlock
	nonTerminalBlock
)

type line struct {
	no   int // 1-based
	text string
}

type block struct {
	no    int // line number of the header
	kind  blockKind
	name  string // of a non-terminal
	lines []line
}

// indentation returns the count of leading spaces and tabs.
func indentation(s string) int {
	return len(s) - len(strings.TrimLeft(s, " \t"))
}

func (g *File) fail(no int, text string, err error) {
	tracer().Infof("grammar line %d skipped: %v", no, err)
	g.Failures = append(g.Failures, &LineError{Line: no, Text: text, Err: err})
}

// collect splits lines into blocks.
func (g *File) collect(lines []string) []*block {
	var blocks []*block
	var current *block
	for i, l := range lines {
		no := i + 1
		text := strings.TrimSpace(l)
		if text == "" {
			continue
		}
		if indentation(l) > 0 {
			if current == nil {
				g.fail(no, l, ErrOutsideBlock)
				continue
			}
			current.lines = append(current.lines, line{no, text})
			continue
		}
		current = g.header(no, text)
		if current != nil {
			blocks = append(blocks, current)
		}
	}
	return blocks
}

// header starts a new block at an unindented line. Text following a keyword
// on the same line is the first line of the block.
func (g *File) header(no int, text string) *block {
	if k := strings.Index(text, ":="); k >= 0 {
		b := &block{no: no, kind: nonTerminalBlock, name: strings.Trim(strings.TrimSpace(text[:k]), ":")}
		if b.name == "" {
			g.fail(no, text, fmt.Errorf("%w: missing non-terminal name", ErrUnknownBlock))
			return nil
		}
		if rest := strings.TrimSpace(text[k+2:]); rest != "" {
			b.lines = append(b.lines, line{no, rest})
		}
		return b
	}
	keyword := strings.Fields(text)[0]
	b := &block{no: no}
	switch keyword {
	case "PrimitiveCmd":
		b.kind = commandBlock
	case "type":
		b.kind = typeBlock
	case "constant":
		b.kind = constantBlock
	default:
		g.fail(no, text, fmt.Errorf("%w: %q", ErrUnknownBlock, keyword))
		return nil
	}
	if rest := strings.TrimSpace(text[len(keyword):]); rest != "" {
		b.lines = append(b.lines, line{no, rest})
	}
	return b
}

// --- Phase 2 and 3 ----------------------------------------------------------

// Parse processes the lines of a grammar file.
func Parse(lines []string) *File {
	g := &File{
		Types:        make(map[string]string),
		Constants:    make(map[string]string),
		NonTerminals: make(map[string][]syntax.Node),
	}
	blocks := g.collect(lines)
	for _, b := range blocks { // dictionaries first
		switch b.kind {
		case typeBlock:
			for _, l := range b.lines {
				g.declareType(l)
			}
		case constantBlock:
			for _, l := range b.lines {
				g.declareConstant(l)
			}
		}
	}
	g.Dict = syntax.NewDictionary(g.Types, g.Constants)
	parser := synopsis.NewParser(g.Dict)
	for _, b := range blocks {
		switch b.kind {
		case commandBlock:
			for _, l := range b.lines {
				cmd, err := parser.ParseCommand(l.text)
				if err != nil {
					g.fail(l.no, l.text, err)
					continue
				}
				g.Commands = append(g.Commands, cmd)
			}
		case nonTerminalBlock:
			g.define(parser, b)
		}
	}
	tracer().Infof("grammar: %d commands, %d non-terminals, %d dictionary entries, %d failures",
		len(g.Commands), len(g.NonTerminals), g.Dict.Len(), len(g.Failures))
	return g
}

// declareType processes a line 'typeName(arg1, arg2, …)'.
func (g *File) declareType(l line) {
	typeName, args, err := scanner.Declaration(fmt.Sprintf("line %d", l.no), l.text)
	if err != nil {
		g.fail(l.no, l.text, fmt.Errorf("%w: %v", ErrMalformedType, err))
		return
	}
	for _, arg := range args {
		if t, ok := g.Types[arg]; ok && t != typeName {
			tracer().Infof("grammar line %d: type of %s changed from %s to %s", l.no, arg, t, typeName)
		}
		g.Types[arg] = typeName
	}
}

// declareConstant processes a line 'argName symbol'.
func (g *File) declareConstant(l line) {
	fields := strings.Fields(l.text)
	if len(fields) != 2 {
		g.fail(l.no, l.text, ErrMalformedConstant)
		return
	}
	g.Constants[fields[0]] = fields[1]
}

// define parses the alternatives of a non-terminal. Repeated definitions
// of the same name add alternatives.
func (g *File) define(parser *synopsis.Parser, b *block) {
	alts := g.NonTerminals[b.name]
	for _, l := range b.lines {
		node, err := parser.ParseSequence(l.text)
		if err != nil {
			g.fail(l.no, l.text, fmt.Errorf("non-terminal %s: %w", b.name, err))
			continue
		}
		alts = append(alts, node)
	}
	if len(alts) == 0 {
		g.fail(b.no, b.name, fmt.Errorf("%w: %s", ErrEmptyDefinition, b.name))
	}
	g.NonTerminals[b.name] = alts
}

// Command returns the first command with a given name, or nil.
func (g *File) Command(name string) *syntax.Command {
	for _, cmd := range g.Commands {
		if cmd.Name == name {
			return cmd
		}
	}
	return nil
}

// Parser returns a synopsis parser which resolves arguments with the
// dictionary of g.
func (g *File) Parser() *synopsis.Parser {
	return synopsis.NewParser(g.Dict)
}
