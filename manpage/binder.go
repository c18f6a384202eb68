package manpage

import (
	"strings"

	"github.com/npillmayer/cmdsyn/synopsis"
)

// SplitHeader splits an option header into alias fragments at commas which
// are not enclosed in brackets:
//
//    "-h, --help"                  →  "-h", "--help"
//    "-I PATTERN, --ignore=PATTERN" →  "-I PATTERN", "--ignore=PATTERN"
//    "--sort[=a,b], -S"            →  "--sort[=a,b]", "-S"
//
// Fragments are trimmed; empty fragments are dropped.
func SplitHeader(header string) []string {
	var fragments []string
	depth, start := 0, 0
	add := func(s string) {
		if s = strings.TrimSpace(s); s != "" {
			fragments = append(fragments, s)
		}
	}
	for i, r := range header {
		switch r {
		case '[':
			depth++
		case ']':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				add(header[start:i])
				start = i + 1
			}
		}
	}
	add(header[start:])
	return fragments
}

// binder binds option descriptions to parsed option fragments.
type binder struct {
	parser  *synopsis.Parser
	section string
	page    *Page
}

// bind parses the alias fragments of an option header. Fragments which do
// not parse are dropped. If no fragment parses, the entry is dropped and
// bind returns false.
func (b binder) bind(header, description string) (DescriptionPair, bool) {
	pair := DescriptionPair{Description: description}
	for _, frag := range SplitHeader(header) {
		node, err := b.parser.ParseOption(frag)
		if err != nil {
			b.page.diagnose(&FragmentError{Section: b.section, Fragment: frag, Err: err})
			continue
		}
		pair.Aliases = append(pair.Aliases, node)
	}
	if len(pair.Aliases) == 0 {
		return pair, false
	}
	pair.Option = pair.Aliases[0]
	pair.Name = pair.Option.String()
	return pair, true
}
