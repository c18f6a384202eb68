package syntax

import (
	"fmt"
	"strings"
)

// Kind is a category type for syntax nodes.
type Kind int8

// Node kinds; one for each concrete node type.
const (
	NoKind Kind = iota
	FlagKind
	LongFlagKind
	OptionalKind
	ArgumentKind
	NonTerminalKind
	SequenceKind
	AlternativesKind
)

var kindNames = []string{"<none>", "Flag", "LongFlag", "Optional", "Argument",
	"NonTerminal", "Sequence", "Alternatives"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Node is a node of a synopsis syntax tree. The set of node types is closed,
// clients may use exhaustive type switches over
//
//    *Flag, *LongFlag, *Optional, *Argument, *NonTerminalRef, *Sequence, *Alternatives
//
// String returns the synopsis form of a node, i.e. a string which will parse to a
// structurally equal tree.
type Node interface {
	Kind() Kind
	String() string
	isNode()
}

// Semantic types which are not taken from a type dictionary.
const (
	TypeConstant = "Constant"
	TypeUnknown  = "Unknown"
)

// --- Flags -----------------------------------------------------------------

// Flag is a single-letter flag, like '-a'. Name holds the letter without the
// leading dash.
type Flag struct {
	Name string
}

// flagAliases lets grammar authors spell out flag characters which are
// unsafe in markup.
var flagAliases = map[string]string{
	"ONE":         "1",
	"TWO":         "2",
	"THREE":       "3",
	"EXCLAMATION": "!",
	"DOLLAR":      "$",
	"AT":          "@",
}

// NewFlag creates a flag node from a lexeme like "-a" or "a".
// Symbolic names (ONE, TWO, THREE, EXCLAMATION, DOLLAR, AT) are replaced
// by the character they stand for.
func NewFlag(letter string) *Flag {
	letter = strings.TrimPrefix(letter, "-")
	if a, ok := flagAliases[letter]; ok {
		letter = a
	}
	return &Flag{Name: letter}
}

func (f *Flag) Kind() Kind { return FlagKind }
func (f *Flag) isNode()    {}

func (f *Flag) String() string {
	return "-" + f.Name
}

// LongFlag is a flag like '--color', optionally taking an argument.
//
//    --verbose          HasArgument=false
//    --output=FILE      HasArgument=true, ArgumentOptional=false
//    --color[=WHEN]     HasArgument=true, ArgumentOptional=true
//
type LongFlag struct {
	Name             string
	HasArgument      bool
	ArgumentOptional bool
	Argument         *Argument // nil if !HasArgument
}

// NewLongFlag creates a long flag node without an argument. name may carry
// the leading dashes.
func NewLongFlag(name string) *LongFlag {
	return &LongFlag{Name: strings.TrimPrefix(name, "--")}
}

// WithArgument attaches an argument to a long flag and returns the flag.
func (lf *LongFlag) WithArgument(arg *Argument, optional bool) *LongFlag {
	lf.Argument = arg
	lf.HasArgument = arg != nil
	lf.ArgumentOptional = optional && arg != nil
	return lf
}

func (lf *LongFlag) Kind() Kind { return LongFlagKind }
func (lf *LongFlag) isNode()    {}

func (lf *LongFlag) String() string {
	if !lf.HasArgument || lf.Argument == nil {
		return "--" + lf.Name
	}
	if lf.ArgumentOptional {
		return fmt.Sprintf("--%s[=%s]", lf.Name, lf.Argument)
	}
	return fmt.Sprintf("--%s=%s", lf.Name, lf.Argument)
}

// --- Arguments -------------------------------------------------------------

// Argument is an operand or an option argument, like 'FILE'. Type is the
// semantic type, resolved at construction time from a dictionary.
//
// For constants, Name holds the literal symbol and Lexeme holds the name as
// it appeared in the synopsis text. Lexeme is empty otherwise.
type Argument struct {
	Name   string
	Type   string
	IsList bool
	Lexeme string
}

// NewArgument creates an argument node and resolves its semantic type
// with dict. dict may be nil, in which case every argument is of type Unknown.
func NewArgument(dict *Dictionary, token string, isList bool) *Argument {
	name, typ := dict.Resolve(token)
	arg := &Argument{Name: name, Type: typ, IsList: isList}
	if name != token {
		arg.Lexeme = token
	}
	return arg
}

func (a *Argument) Kind() Kind { return ArgumentKind }
func (a *Argument) isNode()    {}

func (a *Argument) String() string {
	s := a.Name
	if a.Lexeme != "" {
		s = a.Lexeme
	}
	if a.IsList {
		s += " ..."
	}
	return s
}

// NonTerminalRef references a named grammar fragment, written ':name:'.
type NonTerminalRef struct {
	Name   string
	IsList bool
}

func (nt *NonTerminalRef) Kind() Kind { return NonTerminalKind }
func (nt *NonTerminalRef) isNode()    {}

func (nt *NonTerminalRef) String() string {
	s := ":" + nt.Name + ":"
	if nt.IsList {
		s += " ..."
	}
	return s
}

// --- Groups ----------------------------------------------------------------

// Optional is a group in square brackets. IsList is set for groups followed
// by an ellipsis, like '[-v]...'.
type Optional struct {
	Inner  Node
	IsList bool
}

func (o *Optional) Kind() Kind { return OptionalKind }
func (o *Optional) isNode()    {}

func (o *Optional) String() string {
	var inner string
	if o.Inner != nil {
		inner = o.Inner.String()
	}
	s := "[" + inner + "]"
	if o.IsList {
		s += " ..."
	}
	return s
}

// Sequence is an ordered list of nodes, all of which have to appear.
type Sequence struct {
	Children []Node
}

// NewSequence creates a sequence node.
func NewSequence(children ...Node) *Sequence {
	return &Sequence{Children: children}
}

func (s *Sequence) Kind() Kind { return SequenceKind }
func (s *Sequence) isNode()    {}

func (s *Sequence) String() string {
	return joinNodes(s.Children, " ")
}

// Alternatives is a list of mutually exclusive nodes, written 'a | b'.
// A well-formed Alternatives node has at least two children.
type Alternatives struct {
	Children []Node
}

// NewAlternatives creates an alternatives node.
func NewAlternatives(children ...Node) *Alternatives {
	return &Alternatives{Children: children}
}

func (a *Alternatives) Kind() Kind { return AlternativesKind }
func (a *Alternatives) isNode()    {}

// Alternatives other than at top level live inside an Optional, so the
// flat form without parens re-parses to the same tree.
func (a *Alternatives) String() string {
	b := strings.Builder{}
	for i, ch := range a.Children {
		if i > 0 {
			b.WriteString(" | ")
		}
		if seq, ok := ch.(*Sequence); ok && len(seq.Children) == 1 {
			// a single-child sequence would be unwrapped by the parser
			b.WriteString(seq.Children[0].String())
			continue
		}
		b.WriteString(ch.String())
	}
	return b.String()
}

func joinNodes(nodes []Node, sep string) string {
	parts := make([]string, len(nodes))
	for i, n := range nodes {
		parts[i] = n.String()
	}
	return strings.Join(parts, sep)
}

// --- Commands --------------------------------------------------------------

// Command is the syntax of a single command. Root is usually a Sequence.
type Command struct {
	Name string
	Root Node
}

func (c *Command) String() string {
	if c.Root == nil {
		return c.Name
	}
	if s := c.Root.String(); s != "" {
		return c.Name + " " + s
	}
	return c.Name
}

// Check at compile time that all node types implement Node.
var (
	_ Node = (*Flag)(nil)
	_ Node = (*LongFlag)(nil)
	_ Node = (*Optional)(nil)
	_ Node = (*Argument)(nil)
	_ Node = (*NonTerminalRef)(nil)
	_ Node = (*Sequence)(nil)
	_ Node = (*Alternatives)(nil)
)
