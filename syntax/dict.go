package syntax

import (
	"sort"

	"github.com/cnf/structhash"
)

// Dictionary resolves argument names to semantic types and to constant
// symbols. A Dictionary is immutable after creation and may be shared
// between goroutines.
//
// A nil *Dictionary is valid and resolves every name to type Unknown.
type Dictionary struct {
	types     map[string]string // argument name → semantic type
	constants map[string]string // argument name → literal symbol
}

// NewDictionary creates a dictionary from a map of argument types and a map
// of constants. Both maps are copied, clients may re-use them afterwards.
func NewDictionary(types, constants map[string]string) *Dictionary {
	d := &Dictionary{
		types:     make(map[string]string, len(types)),
		constants: make(map[string]string, len(constants)),
	}
	for k, v := range types {
		d.types[k] = v
	}
	for k, v := range constants {
		d.constants[k] = v
	}
	return d
}

// Resolve returns the resolved name and the semantic type for an argument
// token. Types take precedence over constants.
//
//    type hit:      (token, type)
//    constant hit:  (symbol, "Constant")
//    otherwise:     (token, "Unknown")
//
func (d *Dictionary) Resolve(token string) (name string, typ string) {
	if d == nil {
		return token, TypeUnknown
	}
	if t, ok := d.types[token]; ok {
		return token, t
	}
	if sym, ok := d.constants[token]; ok {
		return sym, TypeConstant
	}
	return token, TypeUnknown
}

// Type returns the semantic type for an argument name, if present.
func (d *Dictionary) Type(arg string) (string, bool) {
	if d == nil {
		return "", false
	}
	t, ok := d.types[arg]
	return t, ok
}

// Constant returns the literal symbol for a constant name, if present.
func (d *Dictionary) Constant(name string) (string, bool) {
	if d == nil {
		return "", false
	}
	sym, ok := d.constants[name]
	return sym, ok
}

// Types returns a copy of the type mappings.
func (d *Dictionary) Types() map[string]string {
	return d.copyOf(func(d *Dictionary) map[string]string { return d.types })
}

// Constants returns a copy of the constant mappings.
func (d *Dictionary) Constants() map[string]string {
	return d.copyOf(func(d *Dictionary) map[string]string { return d.constants })
}

func (d *Dictionary) copyOf(which func(*Dictionary) map[string]string) map[string]string {
	m := make(map[string]string)
	if d == nil {
		return m
	}
	for k, v := range which(d) {
		m[k] = v
	}
	return m
}

// Args returns the sorted list of argument names with a semantic type.
func (d *Dictionary) Args() []string {
	if d == nil {
		return nil
	}
	args := make([]string, 0, len(d.types))
	for a := range d.types {
		args = append(args, a)
	}
	sort.Strings(args)
	return args
}

// Len returns the number of entries (types and constants).
func (d *Dictionary) Len() int {
	if d == nil {
		return 0
	}
	return len(d.types) + len(d.constants)
}

// Fingerprint returns a hash value over the contents of d. Two dictionaries
// with equal mappings have equal fingerprints.
func (d *Dictionary) Fingerprint() string {
	snapshot := struct {
		Types     map[string]string
		Constants map[string]string
	}{
		Types:     d.Types(),
		Constants: d.Constants(),
	}
	h, err := structhash.Hash(snapshot, 1)
	if err != nil {
		tracer().Errorf("cannot hash dictionary: %v", err)
		return ""
	}
	return h
}
