/*
Package syntax defines the syntax trees for command invocations.

A synopsis like

    ls [-a] [--color[=WHEN]] :FILE:...

is represented as a tree of nodes. The set of node types is closed:

    Flag            -a
    LongFlag        --color[=WHEN]
    Optional        [ … ]
    Argument        WHEN
    NonTerminalRef  :FILE:
    Sequence        a b c
    Alternatives    a | b | c

Clients switch over the concrete types; the unexported marker method of Node
prevents other packages from adding variants, so a type switch covering the
seven types above is exhaustive.

Arguments are resolved against a Dictionary when they are constructed. A
Dictionary maps argument names to semantic types (e.g. "N" → "size") and to
constant symbols (e.g. "ONE" → "1"). Dictionaries are immutable values and are
passed explicitly to every construction call; re-loading a grammar file
creates a new dictionary and never changes trees built before.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package syntax

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'cmdsyn.syntax'.
func tracer() tracing.Trace {
	return tracing.Select("cmdsyn.syntax")
}
