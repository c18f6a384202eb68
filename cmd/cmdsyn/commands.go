package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/npillmayer/cmdsyn/batch"
	"github.com/npillmayer/cmdsyn/grammar"
	"github.com/npillmayer/cmdsyn/manpage"
	"github.com/npillmayer/cmdsyn/syntax"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// --- grammar ---------------------------------------------------------------

type grammarView struct {
	Commands     []*syntax.Command        `json:"commands"`
	Types        map[string]string        `json:"types"`
	Constants    map[string]string        `json:"constants"`
	NonTerminals map[string][]syntax.Node `json:"nonTerminals"`
	Unresolved   []string                 `json:"unresolved,omitempty"`
	Failures     []string                 `json:"failures,omitempty"`
	Fingerprint  string                   `json:"fingerprint"`
}

func newGrammarCmd(a *app) *cobra.Command {
	var inline, check bool
	cmd := &cobra.Command{
		Use:   "grammar FILE",
		Short: "Load a grammar file and print commands, types, constants and non-terminals",
		Args:  exactlyOne("grammar file"),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.loadGrammar(args[0]); err != nil {
				return err
			}
			view := viewGrammar(a.grammar, inline)
			err := emit(os.Stdout, a.conf.Format, view, func() { renderGrammar(view) })
			if err != nil {
				return err
			}
			if check && (len(view.Unresolved) > 0 || len(view.Failures) > 0) {
				return fmt.Errorf("grammar %s: %d failures, %d unresolved non-terminals",
					args[0], len(view.Failures), len(view.Unresolved))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&inline, "inline", false, "expand non-terminals in commands")
	cmd.Flags().BoolVar(&check, "check", false, "fail on malformed lines and undefined non-terminals")
	return cmd
}

func viewGrammar(g *grammar.File, inline bool) *grammarView {
	view := &grammarView{
		Commands:     g.Commands,
		Types:        g.Types,
		Constants:    g.Constants,
		NonTerminals: g.NonTerminals,
		Unresolved:   g.Unresolved(),
		Fingerprint:  g.Fingerprint(),
	}
	for _, f := range g.Failures {
		view.Failures = append(view.Failures, f.Error())
	}
	if !inline {
		return view
	}
	view.Commands = make([]*syntax.Command, len(g.Commands))
	for i, cmd := range g.Commands {
		view.Commands[i] = cmd
		root, err := g.Inline(cmd.Root)
		if err != nil {
			view.Failures = append(view.Failures, fmt.Sprintf("command %s: %v", cmd.Name, err))
			continue
		}
		view.Commands[i] = &syntax.Command{Name: cmd.Name, Root: root}
	}
	return view
}

func renderGrammar(view *grammarView) {
	for _, cmd := range view.Commands {
		renderCommand(cmd)
	}
	if len(view.Types)+len(view.Constants) > 0 {
		data := pterm.TableData{{"Argument", "Type", "Constant"}}
		for _, arg := range sortedKeys(view.Types) {
			data = append(data, []string{arg, view.Types[arg], ""})
		}
		for _, arg := range sortedKeys(view.Constants) {
			data = append(data, []string{arg, syntax.TypeConstant, view.Constants[arg]})
		}
		pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	}
	for _, name := range sortedKeys(view.NonTerminals) {
		for _, alt := range view.NonTerminals[name] {
			renderTree(":"+name+": := "+alt.String(), alt)
		}
	}
	for _, name := range view.Unresolved {
		pterm.Error.Println("undefined non-terminal :" + name + ":")
	}
	for _, f := range view.Failures {
		pterm.Error.Println(f)
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// --- man -------------------------------------------------------------------

func newManCmd(a *app) *cobra.Command {
	var examples bool
	cmd := &cobra.Command{
		Use:   "man PAGE...",
		Short: "Extract syntax summaries from plain text man pages",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			collected := make(map[*manpage.Page][]string)
			opts := []manpage.Option{manpage.WithParser(a.parser())}
			if examples {
				opts = append(opts, manpage.WithExamplesHandler(func(p *manpage.Page, body []string) {
					collected[p] = body
				}))
			}
			var pages []*manpage.Page
			var failed int
			for _, path := range args {
				page, err := manpage.ExtractFile(path, opts...)
				if err != nil {
					pterm.Error.Println(err.Error())
					failed++
					continue
				}
				pages = append(pages, page)
			}
			var v interface{} = pages
			if len(pages) == 1 {
				v = pages[0]
			}
			err := emit(os.Stdout, a.conf.Format, v, func() {
				for _, page := range pages {
					renderPage(page)
					if body, ok := collected[page]; ok {
						pterm.Println(strings.Join(body, "\n"))
					}
				}
			})
			if err == nil && failed > 0 {
				err = fmt.Errorf("%d of %d man pages failed", failed, len(args))
			}
			return err
		},
	}
	cmd.Flags().BoolVar(&examples, "examples", false, "print the EXAMPLES section of each page")
	return cmd
}

// --- batch -----------------------------------------------------------------

type batchEntry struct {
	Path  string        `json:"path"`
	Page  *manpage.Page `json:"page,omitempty"`
	Error string        `json:"error,omitempty"`
}

func newBatchCmd(a *app) *cobra.Command {
	var strict bool
	cmd := &cobra.Command{
		Use:   "batch DIR",
		Short: "Extract all man pages (*.N.txt) of a directory in parallel",
		Args:  exactlyOne("directory"),
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := batch.ExtractDir(cmd.Context(), args[0],
				batch.Workers(a.conf.Workers),
				batch.WithExtractOptions(manpage.WithParser(a.parser())))
			if results == nil && err != nil {
				return err
			}
			entries := make([]batchEntry, len(results))
			for i, r := range results {
				entries[i] = batchEntry{Path: r.Path, Page: r.Page}
				if r.Err != nil {
					entries[i].Error = r.Err.Error()
				}
			}
			if e := emit(os.Stdout, a.conf.Format, entries, func() { renderBatch(entries) }); e != nil {
				return e
			}
			if err != nil {
				return err
			}
			if failed := batch.Failed(results); strict && len(failed) > 0 {
				return fmt.Errorf("%d of %d man pages failed", len(failed), len(results))
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&a.flags.Workers, "workers", "w", 0, "number of pages processed concurrently")
	cmd.Flags().BoolVar(&strict, "strict", false, "fail if any man page fails")
	return cmd
}

func renderBatch(entries []batchEntry) {
	data := pterm.TableData{{"File", "Command", "Synopses", "Options", "Diagnostics"}}
	for _, e := range entries {
		if e.Page == nil {
			data = append(data, []string{filepath.Base(e.Path), "", "", "", e.Error})
			continue
		}
		data = append(data, []string{
			filepath.Base(e.Path),
			e.Page.Name(),
			strconv.Itoa(len(e.Page.Synopses)),
			strconv.Itoa(len(e.Page.Options)),
			strconv.Itoa(len(e.Page.Diagnostics)),
		})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

// --- parse -----------------------------------------------------------------

func newParseCmd(a *app) *cobra.Command {
	var asOption, asCommand, inline bool
	cmd := &cobra.Command{
		Use:   "parse SYNOPSIS...",
		Short: "Parse a synopsis fragment",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if asOption && asCommand {
				return errors.New("flags --option and --command are mutually exclusive")
			}
			input := strings.Join(args, " ")
			c, err := a.parseInput(input, asOption, asCommand)
			if err != nil {
				return err
			}
			if inline {
				if c.Root, err = a.inline(c.Root); err != nil {
					return err
				}
			}
			if c.Name == "" {
				return emit(os.Stdout, a.conf.Format, c.Root, func() {
					renderTree(c.Root.String(), c.Root)
				})
			}
			return emit(os.Stdout, a.conf.Format, c, func() { renderCommand(c) })
		},
	}
	cmd.Flags().BoolVar(&asOption, "option", false, "parse as an option fragment")
	cmd.Flags().BoolVar(&asCommand, "command", false, "first word is the command name")
	cmd.Flags().BoolVar(&inline, "inline", false, "expand non-terminals (needs a grammar)")
	return cmd
}

// parseInput parses a line of input. The result carries an empty command
// name unless asCommand is set.
func (a *app) parseInput(input string, asOption, asCommand bool) (*syntax.Command, error) {
	p := a.parser()
	switch {
	case asCommand:
		return p.ParseCommand(input)
	case asOption:
		n, err := p.ParseOption(input)
		if err != nil {
			return nil, err
		}
		return &syntax.Command{Root: n}, nil
	}
	n, err := p.ParseSequence(input)
	if err != nil {
		return nil, err
	}
	return &syntax.Command{Root: n}, nil
}

func (a *app) inline(n syntax.Node) (syntax.Node, error) {
	if a.grammar == nil {
		return nil, errors.New("no grammar loaded, cannot expand non-terminals")
	}
	return a.grammar.Inline(n)
}
