/*
Package cmdsyn extracts the invocation syntax of Unix commands into a typed
model.

Inputs are plain-text man pages (as produced by `man cmd | col -b`) and a
curated grammar file in a small BNF-like notation. Both are turned into
syntax trees of flags, long flags, arguments, optional groups, sequences and
alternatives, which downstream tools may consume without re-parsing text.
Package structure is as follows:

■ syntax: Package syntax defines the closed set of syntax-tree nodes, commands
and the immutable argument dictionary.

■ synopsis: Package synopsis implements a recursive-descent parser for synopsis
fragments like `[-a] [--output[=FILE]] :PATH:...`.

■ grammar: Package grammar loads grammar files, i.e. primitive commands, type and
constant declarations and named non-terminals.

■ manpage: Package manpage locates NAME, SYNOPSIS, DESCRIPTION and OPTIONS
sections of man pages and binds option descriptions to parsed options.

■ batch: Package batch processes directories of man pages in parallel.

■ scanner: Package scanner defines the tokenizer interface used by the parsers,
together with a lexmachine adapter.

■ cmd/cmdsyn: Command cmdsyn is a command line front end with a REPL for synopsis
fragments.

The base package contains data types which are used throughout all the other packages.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package cmdsyn
