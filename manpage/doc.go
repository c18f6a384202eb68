/*
Package manpage extracts command syntax from formatted man pages.

Input is a man page in preformatted, fixed-width plain text, like the output
of 'man ls | col -b'. Sections start at unindented keyword lines; a section's
body is the run of lines up to the next unindented, non-blank line:

    NAME
         ls -- list directory contents

    SYNOPSIS
         ls [-ABCFGHLOPRSTUW@abcdefghiklmnopqrstuwx1] [--color=when] [file ...]

    DESCRIPTION
         For each operand that names a file of a type other than directory, ls
         displays its name as well as any requested, associated information.

         The following options are available:

         -@      Display extended attribute keys and sizes in long (-l) output.

         -A, --almost-all
                 Include directory entries whose names begin with a dot (.)
                 except for . and ..

Recognized sections are NAME, SYNOPSIS, DESCRIPTION, OPTIONS (or its synonyms
USE and PRIMARIES) and EXAMPLES. All other sections are skipped.

NAME yields the command's aliases and a one-line description. Each invocation
form of SYNOPSIS is parsed into a syntax tree. In DESCRIPTION and OPTIONS,
lines starting with '-' at the indentation of the first line of the section
start option entries; the header of an entry (up to the first double space)
is split into aliases at top-level commas, and each alias is parsed as an
option. The free text of DESCRIPTION before the first option entry is kept as
an overview.

Malformed parts of a page do not abort extraction. Option fragments and
synopsis forms which fail to parse, and sections which are not properly
terminated, are dropped and recorded in Page.Diagnostics.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package manpage

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'cmdsyn.manpage'.
func tracer() tracing.Trace {
	return tracing.Select("cmdsyn.manpage")
}
