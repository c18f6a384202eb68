package grammar

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/cnf/structhash"
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/stacks/arraystack"
	"github.com/emirpasic/gods/utils"
	"github.com/npillmayer/cmdsyn/syntax"
)

// ErrCycle is returned by Inline for recursive non-terminal definitions.
var ErrCycle = errors.New("cyclic non-terminal definition")

// Names returns the names of all non-terminals, sorted.
func (g *File) Names() []string {
	set := treeset.NewWith(utils.StringComparator)
	for name := range g.NonTerminals {
		set.Add(name)
	}
	return toStrings(set.Values())
}

// Unresolved returns the names of all non-terminals which are referenced by
// a command or by another non-terminal, but are not defined. The result is
// sorted.
func (g *File) Unresolved() []string {
	set := treeset.NewWith(utils.StringComparator)
	check := func(n syntax.Node) {
		for _, name := range syntax.NonTerminals(n) {
			if _, ok := g.NonTerminals[name]; !ok {
				set.Add(name)
			}
		}
	}
	for _, cmd := range g.Commands {
		check(cmd.Root)
	}
	for _, alts := range g.NonTerminals {
		for _, alt := range alts {
			check(alt)
		}
	}
	return toStrings(set.Values())
}

func toStrings(values []interface{}) []string {
	s := make([]string, len(values))
	for i, v := range values {
		s[i] = v.(string)
	}
	return s
}

// Inline returns a copy of a syntax tree with references to non-terminals
// replaced by their definitions, recursively. A non-terminal with more than
// one alternative is replaced by a syntax.Alternatives node. A list-valued
// reference ':X: ...' expands to 'X [X] ...'.
//
// References to undefined non-terminals are left in place.
// If a non-terminal is reached again while it is being expanded,
// Inline fails with an error wrapping ErrCycle.
func (g *File) Inline(n syntax.Node) (syntax.Node, error) {
	visiting := arraystack.New()
	return g.inline(n, visiting)
}

func (g *File) inline(n syntax.Node, visiting *arraystack.Stack) (syntax.Node, error) {
	switch n := n.(type) {
	case nil:
		return nil, nil
	case *syntax.Flag:
		return &syntax.Flag{Name: n.Name}, nil
	case *syntax.LongFlag:
		lf := *n
		if n.Argument != nil {
			arg := *n.Argument
			lf.Argument = &arg
		}
		return &lf, nil
	case *syntax.Argument:
		arg := *n
		return &arg, nil
	case *syntax.Optional:
		inner, err := g.inline(n.Inner, visiting)
		if err != nil {
			return nil, err
		}
		return &syntax.Optional{Inner: inner, IsList: n.IsList}, nil
	case *syntax.Sequence:
		children, err := g.inlineAll(n.Children, visiting)
		if err != nil {
			return nil, err
		}
		return syntax.NewSequence(children...), nil
	case *syntax.Alternatives:
		children, err := g.inlineAll(n.Children, visiting)
		if err != nil {
			return nil, err
		}
		return syntax.NewAlternatives(children...), nil
	case *syntax.NonTerminalRef:
		return g.expand(n, visiting)
	}
	return nil, fmt.Errorf("unknown syntax node %v", n)
}

func (g *File) inlineAll(nodes []syntax.Node, visiting *arraystack.Stack) ([]syntax.Node, error) {
	result := make([]syntax.Node, len(nodes))
	for i, ch := range nodes {
		c, err := g.inline(ch, visiting)
		if err != nil {
			return nil, err
		}
		result[i] = c
	}
	return result, nil
}

func (g *File) expand(ref *syntax.NonTerminalRef, visiting *arraystack.Stack) (syntax.Node, error) {
	alts, ok := g.NonTerminals[ref.Name]
	if !ok || len(alts) == 0 {
		tracer().Debugf("non-terminal %s is undefined", ref.Name)
		return &syntax.NonTerminalRef{Name: ref.Name, IsList: ref.IsList}, nil
	}
	for _, v := range visiting.Values() {
		if v.(string) == ref.Name {
			return nil, fmt.Errorf("%w: %s", ErrCycle, cyclePath(visiting, ref.Name))
		}
	}
	visiting.Push(ref.Name)
	defer visiting.Pop()
	var body syntax.Node
	if len(alts) == 1 {
		b, err := g.inline(alts[0], visiting)
		if err != nil {
			return nil, err
		}
		body = b
	} else {
		children, err := g.inlineAll(alts, visiting)
		if err != nil {
			return nil, err
		}
		body = syntax.NewAlternatives(children...)
	}
	if !ref.IsList {
		return body, nil
	}
	again, err := g.inline(body, visiting) // second copy, no aliasing
	if err != nil {
		return nil, err
	}
	return syntax.NewSequence(body, &syntax.Optional{Inner: again, IsList: true}), nil
}

// cyclePath prints the names on the stack, bottom first, followed by name.
func cyclePath(visiting *arraystack.Stack, name string) string {
	values := visiting.Values() // top of stack first
	path := make([]string, 0, len(values)+1)
	for i := len(values) - 1; i >= 0; i-- {
		path = append(path, values[i].(string))
	}
	path = append(path, name)
	return strings.Join(path, " → ")
}

// Fingerprint returns a hash value over commands, dictionaries and
// non-terminals of g. Loading the same file twice results in equal
// fingerprints.
func (g *File) Fingerprint() string {
	snapshot := struct {
		Commands     []string
		Types        map[string]string
		Constants    map[string]string
		NonTerminals map[string]string
	}{
		Types:        g.Types,
		Constants:    g.Constants,
		NonTerminals: make(map[string]string, len(g.NonTerminals)),
	}
	for _, cmd := range g.Commands {
		snapshot.Commands = append(snapshot.Commands, encode(cmd))
	}
	for name, alts := range g.NonTerminals {
		snapshot.NonTerminals[name] = encode(alts)
	}
	h, err := structhash.Hash(snapshot, 1)
	if err != nil {
		tracer().Errorf("cannot hash grammar: %v", err)
		return ""
	}
	return h
}

func encode(v interface{}) string {
	b, err := json.Marshal(v)
	if err != nil {
		tracer().Errorf("cannot encode %v: %v", v, err)
	}
	return string(b)
}
