package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/schuko/tracing"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func newReplCmd(a *app) *cobra.Command {
	var initf string
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Enter synopsis fragments interactively",
		Long: `repl reads synopsis fragments and prints their syntax trees.
Lines starting with a colon and not ending in one are directives:

  :load FILE       load a grammar file
  :format FORMAT   switch output format [tree|json|yaml]
  :inline          toggle expansion of non-terminals
  :quit            leave the REPL`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			repl, err := readline.New("cmdsyn> ")
			if err != nil {
				return err
			}
			defer repl.Close()
			intp := &Intp{app: a, format: a.conf.Format, repl: repl}
			pterm.Info.Println("Welcome to the cmdsyn REPL")
			tracer().Infof("Quit with <ctrl>D")
			intp.loadInitFile(initf)
			intp.REPL()
			return nil
		},
	}
	cmd.Flags().StringVar(&initf, "init", "", "file with lines to evaluate at start")
	return cmd
}

// Intp is our interpreter object
type Intp struct {
	*app
	format string
	expand bool
	repl   *readline.Instance
}

func (intp *Intp) loadInitFile(filename string) {
	if filename == "" {
		return
	}
	f, err := os.Open(filename)
	if err != nil {
		tracer().Errorf("Unable to open init file: %s", filename)
		return
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if _, err := intp.Eval(line); err != nil {
			tracer().Errorf("Error line %d: %v", lineno, err)
		}
	}
	if err := scanner.Err(); err != nil {
		tracer().Errorf("Error while reading init file: %v", err)
	}
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF or interrupt
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		quit, err := intp.Eval(line)
		if err != nil {
			pterm.Error.Println(err.Error())
			continue
		}
		if quit {
			break
		}
	}
	println("Good bye!")
}

// Eval evaluates a line of input, which is either a directive or a synopsis
// fragment.
func (intp *Intp) Eval(line string) (bool, error) {
	if isDirective(line) {
		return intp.directive(strings.Fields(line))
	}
	level := tracer().GetTraceLevel()
	tracer().SetTraceLevel(tracing.LevelError)
	c, err := intp.parseInput(line, false, false)
	tracer().SetTraceLevel(level)
	if err != nil {
		return false, err
	}
	if intp.expand {
		if c.Root, err = intp.inline(c.Root); err != nil {
			return false, err
		}
	}
	return false, emit(os.Stdout, intp.format, c.Root, func() {
		renderTree(c.Root.String(), c.Root)
	})
}

// isDirective is true for lines like ':load FILE', but not for lines starting
// with a non-terminal like ':FILE: ...'.
func isDirective(line string) bool {
	first := strings.Fields(line)[0]
	return len(first) > 1 && first[0] == ':' && !strings.HasSuffix(first, ":")
}

func (intp *Intp) directive(args []string) (bool, error) {
	switch args[0] {
	case ":quit", ":q":
		return true, nil
	case ":load":
		if len(args) != 2 {
			return false, fmt.Errorf("usage: :load FILE")
		}
		if err := intp.loadGrammar(args[1]); err != nil {
			return false, err
		}
		pterm.Info.Println(fmt.Sprintf("%d commands, %d types, %d constants, %d non-terminals",
			len(intp.grammar.Commands), len(intp.grammar.Types),
			len(intp.grammar.Constants), len(intp.grammar.NonTerminals)))
	case ":format":
		if len(args) != 2 {
			return false, fmt.Errorf("usage: :format [tree|json|yaml]")
		}
		conf := Config{Format: args[1]}
		if err := conf.validate(); err != nil {
			return false, err
		}
		intp.format = conf.Format
	case ":inline":
		intp.expand = !intp.expand
		pterm.Info.Println(fmt.Sprintf("inline = %v", intp.expand))
	default:
		return false, fmt.Errorf("unknown directive %s", args[0])
	}
	return false, nil
}
