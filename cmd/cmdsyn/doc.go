/*
Command cmdsyn is a command line front end for syntax extraction.

Sub-commands are

	cmdsyn grammar FILE        load a grammar file and print its contents
	cmdsyn man PAGE...         extract syntax summaries from man pages
	cmdsyn batch DIR           extract all man pages of a directory in parallel
	cmdsyn parse SYNOPSIS      parse a single synopsis fragment
	cmdsyn repl                enter synopsis fragments interactively

Output is rendered as a tree (the default), as JSON or as YAML. Defaults may be
put into a configuration file ~/.cmdsyn.yaml:

	grammar: /usr/local/share/cmdsyn/grammar.txt
	trace: Info
	format: json
	workers: 4

Flags given on the command line override values of the configuration file.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'cmdsyn.cli'
func tracer() tracing.Trace {
	return tracing.Select("cmdsyn.cli")
}
