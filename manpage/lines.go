package manpage

import (
	"bufio"
	"io"
	"strings"
)

// indentation returns the count of leading spaces and tabs.
func indentation(s string) int {
	return len(s) - len(strings.TrimLeft(s, " \t"))
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// isSectionStart is true for unindented, non-blank lines.
func isSectionStart(s string) bool {
	return !isBlank(s) && indentation(s) == 0
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	for sc.Scan() {
		lines = append(lines, RemoveOverstrike(sc.Text()))
	}
	return lines, sc.Err()
}

// lineScanner iterates over the lines of a page. All accesses are bounds
// checked; reaching the end of input is a regular state.
type lineScanner struct {
	lines []string
	pos   int // index of the next line
}

func newLineScanner(lines []string) *lineScanner {
	return &lineScanner{lines: lines}
}

func (ls *lineScanner) atEnd() bool {
	return ls.pos >= len(ls.lines)
}

// next returns the next line and its 1-based line number.
func (ls *lineScanner) next() (string, int, bool) {
	if ls.atEnd() {
		return "", 0, false
	}
	ls.pos++
	return ls.lines[ls.pos-1], ls.pos, true
}

func (ls *lineScanner) peek() (string, bool) {
	if ls.atEnd() {
		return "", false
	}
	return ls.lines[ls.pos], true
}

// section is the body of a section, with leading and trailing blank lines
// removed.
type section struct {
	keyword string
	line    int // of the keyword
	body    []string
}

// body reads the body of a section, whose keyword line has just been
// consumed. The body ends before the next unindented, non-blank line, which
// is not consumed. Reaching the end of input before such a line, or finding
// no non-blank lines, is a StructuralError.
func (ls *lineScanner) body(keyword string, line int) (*section, error) {
	start := ls.pos
	for {
		l, ok := ls.peek()
		if !ok {
			return nil, &StructuralError{Section: keyword, Line: line,
				Msg: "section not terminated before end of input"}
		}
		if isSectionStart(l) {
			break
		}
		ls.pos++
	}
	body := ls.lines[start:ls.pos]
	for len(body) > 0 && isBlank(body[0]) {
		body = body[1:]
	}
	for len(body) > 0 && isBlank(body[len(body)-1]) {
		body = body[:len(body)-1]
	}
	if len(body) == 0 {
		return nil, &StructuralError{Section: keyword, Line: line, Msg: "empty section"}
	}
	return &section{keyword: keyword, line: line, body: body}, nil
}
