/*
Package synopsis parses command synopses into syntax trees.

A synopsis is the part of a man page summarizing a command's invocation
syntax, e.g.

    [-a] [-b] [--color[=WHEN]] [-I PATTERN] [:FILE: ...]

Synopsis text is tokenized by a lexmachine DFA and parsed by a recursive
descent parser. Each leading token determines the production, so no
backtracking is needed:

    --name          long flag; '=ARG' or '[=ARG]' attach a required or optional argument
    -x              short flag; ONE, TWO, THREE, EXCLAMATION, DOLLAR, AT spell out characters
    [ … ]           optional group
    :name:          reference to a non-terminal of a grammar file
    a | b           alternatives at one nesting depth
    ...             list marker for the preceding argument, non-terminal or optional group
    WORD            argument, resolved against a dictionary

A Parser holds a (possibly nil) syntax.Dictionary which is used to resolve
arguments while trees are built. Parsers are cheap; the DFA is compiled once
per process and shared between them.

Failure to parse results in a *SyntaxError. Callers usually drop the
offending fragment and continue.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package synopsis

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'cmdsyn.synopsis'.
func tracer() tracing.Trace {
	return tracing.Select("cmdsyn.synopsis")
}
