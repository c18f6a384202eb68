package manpage

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/npillmayer/cmdsyn/synopsis"
	"github.com/npillmayer/cmdsyn/syntax"
)

type sectionKind int8

const (
	otherSection sectionKind = iota
	nameSection
	synopsisSection
	descriptionSection
	optionsSection
	examplesSection
)

var keywords = map[string]sectionKind{
	"NAME":        nameSection,
	"SYNOPSIS":    synopsisSection,
	"DESCRIPTION": descriptionSection,
	"OPTIONS":     optionsSection,
	"USE":         optionsSection,
	"PRIMARIES":   optionsSection,
	"EXAMPLES":    examplesSection,
}

// ExamplesHandler receives the body of an EXAMPLES section.
type ExamplesHandler func(page *Page, body []string)

// Option configures extraction.
type Option func(*extractor)

// WithParser sets the synopsis parser to use. The default is a parser
// without a dictionary.
func WithParser(p *synopsis.Parser) Option {
	return func(x *extractor) {
		if p != nil {
			x.parser = p
		}
	}
}

// WithDictionary is a shortcut for WithParser(synopsis.NewParser(dict)).
func WithDictionary(dict *syntax.Dictionary) Option {
	return WithParser(synopsis.NewParser(dict))
}

// WithExamplesHandler sets a handler for EXAMPLES sections. The default
// handler ignores them.
func WithExamplesHandler(h ExamplesHandler) Option {
	return func(x *extractor) {
		if h != nil {
			x.examples = h
		}
	}
}

type extractor struct {
	parser   *synopsis.Parser
	examples ExamplesHandler
}

// ExtractFile extracts a page from a man page file.
func ExtractFile(path string, opts ...Option) (*Page, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	page, err := Extract(f, opts...)
	if err != nil {
		return nil, fmt.Errorf("man page %s: %w", path, err)
	}
	return page, nil
}

// Extract reads a man page and extracts its syntax summary.
//
// Problems with single sections or fragments are recorded in
// Page.Diagnostics. An error is returned for I/O errors and for pages
// without a usable NAME section.
func Extract(r io.Reader, opts ...Option) (*Page, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, err
	}
	return ExtractLines(lines, opts...)
}

// ExtractLines extracts a syntax summary from the lines of a man page.
func ExtractLines(lines []string, opts ...Option) (*Page, error) {
	x := &extractor{
		parser:   synopsis.NewParser(nil),
		examples: func(*Page, []string) {},
	}
	for _, opt := range opts {
		opt(x)
	}
	page := &Page{}
	sections := x.split(lines, page)
	// NAME goes first, as SYNOPSIS depends on the aliases
	var name *section
	for _, s := range sections {
		if keywords[s.keyword] == nameSection {
			name = s
			break
		}
	}
	if name == nil {
		err := &StructuralError{Section: "NAME", Msg: "missing NAME section"}
		return nil, joinDiagnostics(err, page.Diagnostics)
	}
	x.name(name, page)
	if len(page.Aliases) == 0 {
		err := &StructuralError{Section: "NAME", Line: name.line, Msg: "no command name"}
		return nil, joinDiagnostics(err, page.Diagnostics)
	}
	for _, s := range sections {
		switch keywords[s.keyword] {
		case synopsisSection:
			x.synopsis(s, page)
		case descriptionSection:
			x.options(s, page, true)
		case optionsSection:
			x.options(s, page, false)
		case examplesSection:
			x.examples(page, s.body)
		}
	}
	tracer().Debugf("%s: %d synopses, %d options, %d diagnostics", page.Name(),
		len(page.Synopses), len(page.Options), len(page.Diagnostics))
	return page, nil
}

func joinDiagnostics(err error, diagnostics []error) error {
	if len(diagnostics) == 0 {
		return err
	}
	return fmt.Errorf("%w (%d more problems, first: %v)", err, len(diagnostics), diagnostics[0])
}

// split collects the recognized sections of a page. Sections with a
// malformed body are recorded as diagnostics and skipped.
func (x *extractor) split(lines []string, page *Page) []*section {
	var sections []*section
	ls := newLineScanner(lines)
	for !ls.atEnd() {
		l, no, _ := ls.next()
		if !isSectionStart(l) {
			continue
		}
		keyword := strings.TrimSpace(l)
		if _, ok := keywords[keyword]; !ok {
			continue
		}
		s, err := ls.body(keyword, no)
		if err != nil {
			page.diagnose(err)
			continue
		}
		sections = append(sections, s)
	}
	return sections
}

// name splits the NAME line into aliases and description, at the first
// " -- " or, failing that, at the first " - ".
func (x *extractor) name(s *section, page *Page) {
	content := strings.Join(strings.Fields(strings.Join(s.body, " ")), " ")
	names := content
	for _, sep := range []string{" -- ", " - "} {
		if k := strings.Index(content, sep); k >= 0 {
			names = content[:k]
			page.Description = strings.TrimSpace(content[k+len(sep):])
			break
		}
	}
	for _, alias := range strings.Split(names, ",") {
		if alias = strings.TrimSpace(alias); alias != "" {
			page.Aliases = append(page.Aliases, alias)
		}
	}
}

// synopsis parses the invocation forms of a command. A new form starts
// at each line beginning with one of the command's aliases.
func (x *extractor) synopsis(s *section, page *Page) {
	var raw []string
	var forms [][]string
	for _, l := range s.body {
		text := strings.TrimSpace(l)
		if text == "" {
			continue
		}
		raw = append(raw, text)
		if len(forms) == 0 || startsWithAlias(text, page.Aliases) {
			forms = append(forms, nil)
		}
		forms[len(forms)-1] = append(forms[len(forms)-1], text)
	}
	page.RawSynopsis = strings.Join(raw, "\n")
	for _, form := range forms {
		fields := strings.Fields(strings.Join(form, " "))
		text := strings.Join(fields[1:], " ") // strip the command name
		node, err := x.parser.ParseSequence(text)
		if err != nil {
			page.diagnose(&FragmentError{Section: s.keyword, Fragment: strings.Join(fields, " "), Err: err})
			continue
		}
		page.Synopses = append(page.Synopses, node)
	}
}

func startsWithAlias(text string, aliases []string) bool {
	for _, a := range aliases {
		if text == a || strings.HasPrefix(text, a+" ") {
			return true
		}
	}
	return false
}

// options extracts option entries of a DESCRIPTION or OPTIONS section.
// The indentation of the first line is the baseline. Lines at the baseline
// starting with '-' start an option entry, which runs to the next line at
// the baseline. Other lines at the baseline are interstitial text and are
// skipped. For DESCRIPTION, text before the first option is the overview.
func (x *extractor) options(s *section, page *Page, withOverview bool) {
	body := s.body
	baseline := indentation(body[0])
	isOption := func(l string) bool {
		return !isBlank(l) && indentation(l) == baseline && strings.HasPrefix(strings.TrimSpace(l), "-")
	}
	i := 0
	for i < len(body) && !isOption(body[i]) {
		i++
	}
	if withOverview {
		paragraphs := make([]string, i)
		for k := 0; k < i; k++ {
			paragraphs[k] = strings.TrimSpace(body[k])
		}
		overview := strings.TrimRight(strings.Join(paragraphs, "\n"), " \t\n")
		if page.Overview != "" && overview != "" {
			page.Overview += "\n\n"
		}
		page.Overview += overview
	}
	b := binder{parser: x.parser, section: s.keyword, page: page}
	for i < len(body) {
		if !isOption(body[i]) {
			i++ // interstitial text
			continue
		}
		text := strings.ReplaceAll(strings.TrimSpace(body[i]), "\t", "  ")
		header, description := text, ""
		if k := strings.Index(text, "  "); k >= 0 {
			header, description = text[:k], text[k:]
		}
		desc := []string{description}
		for i++; i < len(body); i++ {
			if !isBlank(body[i]) && indentation(body[i]) == baseline {
				break
			}
			desc = append(desc, body[i])
		}
		description = strings.Join(strings.Fields(strings.Join(desc, " ")), " ")
		if pair, ok := b.bind(header, description); ok {
			page.Options = append(page.Options, pair)
		} else {
			tracer().Debugf("%s: option entry %q dropped", page.Name(), header)
		}
	}
}
