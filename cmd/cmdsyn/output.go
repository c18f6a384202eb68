package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/npillmayer/cmdsyn/manpage"
	"github.com/npillmayer/cmdsyn/syntax"
	"github.com/pterm/pterm"
	"gopkg.in/yaml.v3"
)

// emit writes v to w in the configured format. For format 'tree', render is
// called instead.
func emit(w io.Writer, format string, v interface{}, render func()) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, v)
	case FormatYAML:
		return writeYAML(w, v)
	}
	render()
	return nil
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// writeYAML converts v to YAML. Syntax nodes know how to encode themselves
// to JSON only, so we go through a generic JSON value first.
func writeYAML(w io.Writer, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	var generic interface{}
	if err = json.Unmarshal(data, &generic); err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err = enc.Encode(generic); err != nil {
		return err
	}
	return enc.Close()
}

// --- Trees -----------------------------------------------------------------

func nodeLabel(n syntax.Node) string {
	switch n := n.(type) {
	case *syntax.Flag:
		return "-" + n.Name
	case *syntax.LongFlag:
		switch {
		case n.HasArgument && n.ArgumentOptional:
			return "--" + n.Name + " [=]"
		case n.HasArgument:
			return "--" + n.Name + " ="
		}
		return "--" + n.Name
	case *syntax.Optional:
		return listLabel("[ ]", n.IsList)
	case *syntax.Argument:
		return listLabel(n.Name+" : "+n.Type, n.IsList)
	case *syntax.NonTerminalRef:
		return n.String()
	case *syntax.Sequence:
		return "sequence"
	case *syntax.Alternatives:
		return "alternatives"
	}
	return fmt.Sprintf("%v", n)
}

func listLabel(label string, isList bool) string {
	if isList {
		return label + " ..."
	}
	return label
}

// leveledNodes appends a tree as a leveled list, as expected by pterm.
func leveledNodes(n syntax.Node, ll pterm.LeveledList, level int) pterm.LeveledList {
	syntax.Walk(n, func(n syntax.Node, depth int) bool {
		ll = append(ll, pterm.LeveledListItem{
			Level: level + depth,
			Text:  nodeLabel(n),
		})
		return true
	})
	return ll
}

func renderTree(label string, n syntax.Node) {
	pterm.Println(label)
	ll := leveledNodes(n, pterm.LeveledList{}, 0)
	tracer().Debugf("|ll| = %d", len(ll))
	pterm.DefaultTree.WithRoot(pterm.NewTreeFromLeveledList(ll)).Render()
}

func renderCommand(cmd *syntax.Command) {
	renderTree(cmd.Name+" "+cmd.Root.String(), cmd.Root)
}

// --- Man pages -------------------------------------------------------------

const maxDescriptionWidth = 60

// optionTable lists the options of a page with their descriptions.
func optionTable(page *manpage.Page) pterm.TableData {
	data := pterm.TableData{{"Option", "Aliases", "Description"}}
	for _, dp := range page.Options {
		var aliases []string
		for i, a := range dp.Aliases {
			if i > 0 {
				aliases = append(aliases, a.String())
			}
		}
		data = append(data, []string{
			dp.Name,
			strings.Join(aliases, ", "),
			abbreviate(dp.Description, maxDescriptionWidth),
		})
	}
	return data
}

func abbreviate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-1]) + "…"
}

func renderPage(page *manpage.Page) {
	pterm.Info.Println(page.Name() + " - " + page.Description)
	if len(page.Aliases) > 1 {
		pterm.Println("aliases: " + strings.Join(page.Aliases[1:], ", "))
	}
	for _, cmd := range page.Commands() {
		renderCommand(cmd)
	}
	if len(page.Options) > 0 {
		pterm.DefaultTable.WithHasHeader().WithData(optionTable(page)).Render()
	}
	for _, d := range page.Diagnostics {
		pterm.Error.Println(d.Error())
	}
}
