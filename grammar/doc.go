/*
Package grammar loads grammar files.

A grammar file is an indentation-significant plaintext file with four kinds
of blocks. Every block starts at an unindented line and ends at the next
unindented, non-blank line. Blank lines inside a block are skipped.

    PrimitiveCmd
        ls [-a] [-l] [:FILE: ...]
        rm [-f | -i] :FILE: ...

    type
        Size(N, SIZE)
        Permission(MODE)

    constant
        ONE 1
        EXCLAMATION !

    FILE := Path
        Path
        Pattern

PrimitiveCmd lines are '<name> <synopsis>' and yield one syntax.Command each.
Type lines map argument names to a semantic type, constant lines map an
argument name to a literal symbol. Every other unindented line containing ':='
defines a non-terminal; each line of its block (and the text right of ':=', if
any) is one alternative.

Loading is done in two phases: all blocks are collected first, then an
immutable syntax.Dictionary is built from all type and constant blocks, and
only then are commands and non-terminal bodies parsed. Argument resolution
therefore never depends on the order of blocks in a file.

A line which cannot be parsed is recorded in File.Failures and skipped; it
does not abort loading.

Non-terminals are stored by name and referenced by name. File.Inline expands
references on request and detects cyclic definitions.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package grammar

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'cmdsyn.grammar'.
func tracer() tracing.Trace {
	return tracing.Select("cmdsyn.grammar")
}
