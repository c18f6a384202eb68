package manpage

import (
	"encoding/json"
	"fmt"

	"github.com/npillmayer/cmdsyn/syntax"
)

// Page is the syntax summary of a command, extracted from its man page.
type Page struct {
	Aliases     []string          // non-empty, first one is the command name
	Description string            // one-line description from NAME
	Overview    string            // DESCRIPTION text before the first option
	RawSynopsis string            // SYNOPSIS lines, trimmed
	Synopses    []syntax.Node     // one per invocation form
	Options     []DescriptionPair // option descriptions
	Diagnostics []error           // dropped fragments and sections
}

// Name returns the canonical name of the command.
func (p *Page) Name() string {
	if len(p.Aliases) == 0 {
		return ""
	}
	return p.Aliases[0]
}

// Commands returns the synopsis forms of p as commands.
func (p *Page) Commands() []*syntax.Command {
	cmds := make([]*syntax.Command, len(p.Synopses))
	for i, s := range p.Synopses {
		cmds[i] = &syntax.Command{Name: p.Name(), Root: s}
	}
	return cmds
}

func (p *Page) diagnose(err error) {
	tracer().Infof("%s: %v", p.Name(), err)
	p.Diagnostics = append(p.Diagnostics, err)
}

// DescriptionPair binds an option description to the options it describes.
// Option is always Aliases[0]; Name is the synopsis form of Option.
//
// The header '-h, --help' results in Aliases [Flag(h), LongFlag(help)].
type DescriptionPair struct {
	Name        string
	Option      syntax.Node
	Aliases     []syntax.Node
	Description string
}

// TagDescriptionPair is the JSON discriminator for description pairs.
const TagDescriptionPair = "option_description_pair"

type jsonPair struct {
	Type        string            `json:"type"`
	Name        string            `json:"name"`
	Option      json.RawMessage   `json:"option"`
	Aliases     []json.RawMessage `json:"allOptions"`
	Description string            `json:"description"`
}

// MarshalJSON is part of interface json.Marshaler.
func (dp DescriptionPair) MarshalJSON() ([]byte, error) {
	j := jsonPair{Type: TagDescriptionPair, Name: dp.Name, Description: dp.Description}
	var err error
	if j.Option, err = json.Marshal(dp.Option); err != nil {
		return nil, err
	}
	j.Aliases = make([]json.RawMessage, len(dp.Aliases))
	for i, a := range dp.Aliases {
		if j.Aliases[i], err = json.Marshal(a); err != nil {
			return nil, err
		}
	}
	return json.Marshal(j)
}

// UnmarshalJSON is part of interface json.Unmarshaler.
func (dp *DescriptionPair) UnmarshalJSON(data []byte) error {
	var j jsonPair
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	if j.Type != TagDescriptionPair {
		return fmt.Errorf("expected JSON type %q, got %q", TagDescriptionPair, j.Type)
	}
	dp.Name, dp.Description = j.Name, j.Description
	dp.Aliases = make([]syntax.Node, 0, len(j.Aliases))
	for _, raw := range j.Aliases {
		n, err := syntax.UnmarshalNode(raw)
		if err != nil {
			return err
		}
		dp.Aliases = append(dp.Aliases, n)
	}
	if len(dp.Aliases) > 0 {
		dp.Option = dp.Aliases[0]
		return nil
	}
	n, err := syntax.UnmarshalNode(j.Option)
	if err != nil {
		return err
	}
	dp.Option = n
	dp.Aliases = []syntax.Node{n}
	return nil
}

type jsonPage struct {
	Aliases     []string          `json:"aliases"`
	Description string            `json:"description"`
	Overview    string            `json:"overview,omitempty"`
	RawSynopsis string            `json:"rawSynopsis"`
	Synopses    []json.RawMessage `json:"optionLists"`
	Options     []DescriptionPair `json:"optionDesc"`
	Diagnostics []string          `json:"diagnostics,omitempty"`
}

// MarshalJSON is part of interface json.Marshaler.
func (p *Page) MarshalJSON() ([]byte, error) {
	j := jsonPage{
		Aliases:     p.Aliases,
		Description: p.Description,
		Overview:    p.Overview,
		RawSynopsis: p.RawSynopsis,
		Synopses:    make([]json.RawMessage, len(p.Synopses)),
		Options:     p.Options,
	}
	if j.Options == nil {
		j.Options = []DescriptionPair{}
	}
	for i, s := range p.Synopses {
		b, err := json.Marshal(s)
		if err != nil {
			return nil, err
		}
		j.Synopses[i] = b
	}
	for _, d := range p.Diagnostics {
		j.Diagnostics = append(j.Diagnostics, d.Error())
	}
	return json.Marshal(j)
}

// UnmarshalJSON is part of interface json.Unmarshaler.
// Diagnostics are not restored.
func (p *Page) UnmarshalJSON(data []byte) error {
	var j jsonPage
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	p.Aliases, p.Description, p.Overview = j.Aliases, j.Description, j.Overview
	p.RawSynopsis, p.Options = j.RawSynopsis, j.Options
	p.Synopses = make([]syntax.Node, 0, len(j.Synopses))
	for _, raw := range j.Synopses {
		n, err := syntax.UnmarshalNode(raw)
		if err != nil {
			return err
		}
		p.Synopses = append(p.Synopses, n)
	}
	return nil
}
