package manpage

import "fmt"

// StructuralError reports malformed section boundaries. Line is the 1-based
// line number of the section keyword, or 0 if there is none.
type StructuralError struct {
	Section string
	Line    int
	Msg     string
}

func (e *StructuralError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("section %s: %s", e.Section, e.Msg)
	}
	return fmt.Sprintf("section %s at line %d: %s", e.Section, e.Line, e.Msg)
}

// FragmentError wraps an error for a part of a section which has been
// dropped, like a synopsis form or an alias of an option header.
type FragmentError struct {
	Section  string
	Fragment string
	Err      error
}

func (e *FragmentError) Error() string {
	return fmt.Sprintf("section %s: dropped %q: %v", e.Section, e.Fragment, e.Err)
}

func (e *FragmentError) Unwrap() error {
	return e.Err
}
