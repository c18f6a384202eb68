package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/npillmayer/cmdsyn/grammar"
	"github.com/npillmayer/cmdsyn/synopsis"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// app carries the settings shared by all sub-commands.
type app struct {
	configFile string
	conf       *Config
	flags      Config // values given on the command line
	grammar    *grammar.File
}

func main() {
	tracing.SetTraceSelector(tracing.SelectorForAdapter(gologadapter.GetAdapter()))
	initDisplay()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd(&app{}).ExecuteContext(ctx)
	stop()
	if err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(1)
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "cmdsyn",
		Short: "Extract the invocation syntax of Unix commands",
		Long: `cmdsyn turns man pages and grammar files into syntax trees of
flags, long flags, arguments, optional groups and alternatives.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}
	pf := root.PersistentFlags()
	pf.StringVar(&a.configFile, "config", "", "config file (default: ~/.cmdsyn.yaml)")
	pf.StringVar(&a.flags.Trace, "trace", "", "trace level [Debug|Info|Error]")
	pf.StringVarP(&a.flags.Format, "format", "f", "", "output format [tree|json|yaml]")
	pf.StringVarP(&a.flags.Grammar, "grammar", "g", "", "grammar file providing types and constants")
	root.AddCommand(
		newGrammarCmd(a),
		newManCmd(a),
		newBatchCmd(a),
		newParseCmd(a),
		newReplCmd(a),
	)
	return root
}

// setup merges configuration file and flags, then configures tracing and
// loads the grammar file, if any.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	conf, err := LoadConfig(a.configFile)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("trace") {
		conf.Trace = a.flags.Trace
	}
	if flags.Changed("format") {
		conf.Format = a.flags.Format
	}
	if flags.Changed("grammar") {
		conf.Grammar = a.flags.Grammar
	}
	if flags.Lookup("workers") != nil && flags.Changed("workers") {
		conf.Workers = a.flags.Workers
	}
	if err = conf.validate(); err != nil {
		return err
	}
	a.conf = conf
	tracer().SetTraceLevel(traceLevel(conf.Trace))
	tracer().Debugf("configuration: %+v", *conf)
	if conf.Grammar == "" || cmd.Name() == "grammar" {
		return nil
	}
	return a.loadGrammar(conf.Grammar)
}

func (a *app) loadGrammar(path string) error {
	g, err := grammar.LoadFile(path)
	if err != nil {
		return err
	}
	for _, f := range g.Failures {
		tracer().Infof("%s: %v", path, f)
	}
	tracer().Infof("grammar %s: %d commands, %d dictionary entries", path,
		len(g.Commands), g.Dict.Len())
	a.grammar = g
	return nil
}

// parser returns a synopsis parser using the dictionary of the current grammar.
func (a *app) parser() *synopsis.Parser {
	if a.grammar == nil {
		return synopsis.NewParser(nil)
	}
	return a.grammar.Parser()
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

func traceLevel(l string) tracing.TraceLevel {
	return tracing.TraceLevelFromString(l)
}

func exactlyOne(what string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != 1 {
			return fmt.Errorf("%s expects exactly one %s", cmd.Name(), what)
		}
		return nil
	}
}
