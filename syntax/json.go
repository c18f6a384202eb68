package syntax

import (
	"encoding/json"
	"fmt"
)

// Syntax trees are exchanged as JSON. Every node carries a discriminator
// field 'type', which lets consumers re-construct a tree without relying on
// positional structure:
//
//    flag_option          Flag
//    long_flag_option     LongFlag
//    optional_option      Optional
//    argument_option      Argument
//    nonterminal_option   NonTerminalRef
//    compound_options     Sequence
//    exclusive_options    Alternatives
//    command              Command
//
const (
	TagFlag         = "flag_option"
	TagLongFlag     = "long_flag_option"
	TagOptional     = "optional_option"
	TagArgument     = "argument_option"
	TagNonTerminal  = "nonterminal_option"
	TagSequence     = "compound_options"
	TagAlternatives = "exclusive_options"
	TagCommand      = "command"
)

type jsonFlag struct {
	Type string `json:"type"`
	Name string `json:"flag_name"`
}

type jsonLongFlag struct {
	Type        string          `json:"type"`
	Name        string          `json:"flag_name"`
	ArgExists   bool            `json:"arg_exists"`
	ArgOptional bool            `json:"arg_optional"`
	Argument    json.RawMessage `json:"argument,omitempty"`
}

type jsonOptional struct {
	Type   string          `json:"type"`
	Inner  json.RawMessage `json:"cmd"`
	IsList bool            `json:"is_list,omitempty"`
}

type jsonArgument struct {
	Type    string `json:"type"`
	Name    string `json:"arg_name"`
	ArgType string `json:"arg_type"`
	IsList  bool   `json:"isList"`
	Lexeme  string `json:"lexeme,omitempty"`
}

type jsonNonTerminal struct {
	Type   string `json:"type"`
	Name   string `json:"name"`
	IsList bool   `json:"isList"`
}

type jsonGroup struct {
	Type     string            `json:"type"`
	Children []json.RawMessage `json:"commands"`
}

type jsonCommand struct {
	Type string          `json:"type"`
	Name string          `json:"name"`
	Root json.RawMessage `json:"option"`
}

// MarshalJSON is part of interface json.Marshaler.
func (f *Flag) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonFlag{Type: TagFlag, Name: f.Name})
}

// MarshalJSON is part of interface json.Marshaler.
func (lf *LongFlag) MarshalJSON() ([]byte, error) {
	j := jsonLongFlag{
		Type:        TagLongFlag,
		Name:        lf.Name,
		ArgExists:   lf.HasArgument,
		ArgOptional: lf.ArgumentOptional,
	}
	if lf.Argument != nil {
		arg, err := lf.Argument.MarshalJSON()
		if err != nil {
			return nil, err
		}
		j.Argument = arg
	}
	return json.Marshal(j)
}

// MarshalJSON is part of interface json.Marshaler.
func (o *Optional) MarshalJSON() ([]byte, error) {
	inner, err := marshalNode(o.Inner)
	if err != nil {
		return nil, err
	}
	return json.Marshal(jsonOptional{Type: TagOptional, Inner: inner, IsList: o.IsList})
}

// MarshalJSON is part of interface json.Marshaler.
func (a *Argument) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonArgument{
		Type:    TagArgument,
		Name:    a.Name,
		ArgType: a.Type,
		IsList:  a.IsList,
		Lexeme:  a.Lexeme,
	})
}

// MarshalJSON is part of interface json.Marshaler.
func (nt *NonTerminalRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonNonTerminal{Type: TagNonTerminal, Name: nt.Name, IsList: nt.IsList})
}

// MarshalJSON is part of interface json.Marshaler.
func (s *Sequence) MarshalJSON() ([]byte, error) {
	return marshalGroup(TagSequence, s.Children)
}

// MarshalJSON is part of interface json.Marshaler.
func (a *Alternatives) MarshalJSON() ([]byte, error) {
	return marshalGroup(TagAlternatives, a.Children)
}

// MarshalJSON is part of interface json.Marshaler.
func (c *Command) MarshalJSON() ([]byte, error) {
	root, err := marshalNode(c.Root)
	if err != nil {
		return nil, err
	}
	return json.Marshal(jsonCommand{Type: TagCommand, Name: c.Name, Root: root})
}

// UnmarshalJSON is part of interface json.Unmarshaler.
func (c *Command) UnmarshalJSON(data []byte) error {
	var j jsonCommand
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	if j.Type != TagCommand {
		return fmt.Errorf("expected JSON type %q, got %q", TagCommand, j.Type)
	}
	c.Name = j.Name
	if len(j.Root) == 0 || string(j.Root) == "null" {
		c.Root = nil
		return nil
	}
	root, err := UnmarshalNode(j.Root)
	if err != nil {
		return fmt.Errorf("command %s: %w", j.Name, err)
	}
	c.Root = root
	return nil
}

func marshalNode(n Node) (json.RawMessage, error) {
	if isNil(n) {
		return json.RawMessage("null"), nil
	}
	return json.Marshal(n)
}

func marshalGroup(tag string, children []Node) ([]byte, error) {
	j := jsonGroup{Type: tag, Children: make([]json.RawMessage, len(children))}
	for i, ch := range children {
		b, err := marshalNode(ch)
		if err != nil {
			return nil, err
		}
		j.Children[i] = b
	}
	return json.Marshal(j)
}

// UnmarshalNode re-constructs a syntax tree from its JSON representation.
// The concrete node type is selected by the 'type' discriminator.
func UnmarshalNode(data []byte) (Node, error) {
	var disc struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &disc); err != nil {
		return nil, err
	}
	switch disc.Type {
	case TagFlag:
		var j jsonFlag
		if err := json.Unmarshal(data, &j); err != nil {
			return nil, err
		}
		return &Flag{Name: j.Name}, nil
	case TagLongFlag:
		var j jsonLongFlag
		if err := json.Unmarshal(data, &j); err != nil {
			return nil, err
		}
		lf := &LongFlag{Name: j.Name, HasArgument: j.ArgExists, ArgumentOptional: j.ArgOptional}
		if j.ArgExists && len(j.Argument) > 0 {
			n, err := UnmarshalNode(j.Argument)
			if err != nil {
				return nil, err
			}
			arg, ok := n.(*Argument)
			if !ok {
				return nil, fmt.Errorf("long flag --%s: argument has type %s", j.Name, n.Kind())
			}
			lf.Argument = arg
		}
		return lf, nil
	case TagOptional:
		var j jsonOptional
		if err := json.Unmarshal(data, &j); err != nil {
			return nil, err
		}
		opt := &Optional{IsList: j.IsList}
		if len(j.Inner) > 0 && string(j.Inner) != "null" {
			inner, err := UnmarshalNode(j.Inner)
			if err != nil {
				return nil, err
			}
			opt.Inner = inner
		}
		return opt, nil
	case TagArgument:
		var j jsonArgument
		if err := json.Unmarshal(data, &j); err != nil {
			return nil, err
		}
		return &Argument{Name: j.Name, Type: j.ArgType, IsList: j.IsList, Lexeme: j.Lexeme}, nil
	case TagNonTerminal:
		var j jsonNonTerminal
		if err := json.Unmarshal(data, &j); err != nil {
			return nil, err
		}
		return &NonTerminalRef{Name: j.Name, IsList: j.IsList}, nil
	case TagSequence, TagAlternatives:
		var j jsonGroup
		if err := json.Unmarshal(data, &j); err != nil {
			return nil, err
		}
		children := make([]Node, 0, len(j.Children))
		for _, raw := range j.Children {
			ch, err := UnmarshalNode(raw)
			if err != nil {
				return nil, err
			}
			children = append(children, ch)
		}
		if disc.Type == TagSequence {
			return &Sequence{Children: children}, nil
		}
		if len(children) < 2 {
			return nil, fmt.Errorf("%s: need at least 2 alternatives, have %d",
				TagAlternatives, len(children))
		}
		return &Alternatives{Children: children}, nil
	}
	return nil, fmt.Errorf("unknown syntax node type %q", disc.Type)
}
