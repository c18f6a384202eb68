package syntax

import (
	"encoding/json"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestFlagAliases(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cmdsyn.syntax")
	defer teardown()
	//
	for in, out := range map[string]string{
		"-ONE":         "1",
		"-TWO":         "2",
		"-THREE":       "3",
		"-EXCLAMATION": "!",
		"-DOLLAR":      "$",
		"-AT":          "@",
		"-a":           "a",
		"x":            "x",
	} {
		if f := NewFlag(in); f.Name != out {
			t.Errorf("expected flag %q to be named %q, is %q", in, out, f.Name)
		}
	}
}

func TestDictionaryResolve(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cmdsyn.syntax")
	defer teardown()
	//
	dict := NewDictionary(
		map[string]string{"N": "size"},
		map[string]string{"ONE": "1"},
	)
	tests := []struct {
		token, name, typ, lexeme string
	}{
		{"N", "N", "size", ""},
		{"ONE", "1", TypeConstant, "ONE"},
		{"FILE", "FILE", TypeUnknown, ""},
	}
	for _, test := range tests {
		arg := NewArgument(dict, test.token, false)
		if arg.Name != test.name || arg.Type != test.typ || arg.Lexeme != test.lexeme {
			t.Errorf("expected %q to resolve to (%q, %q, %q), got (%q, %q, %q)", test.token,
				test.name, test.typ, test.lexeme, arg.Name, arg.Type, arg.Lexeme)
		}
	}
	if arg := NewArgument(nil, "N", true); arg.Type != TypeUnknown || !arg.IsList {
		t.Errorf("expected nil dictionary to resolve to Unknown, got %q", arg.Type)
	}
}

func TestDictionaryIsImmutable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cmdsyn.syntax")
	defer teardown()
	//
	types := map[string]string{"N": "size"}
	dict := NewDictionary(types, nil)
	fp := dict.Fingerprint()
	types["N"] = "other"
	dict.Types()["N"] = "other"
	if typ, _ := dict.Type("N"); typ != "size" {
		t.Errorf("expected dictionary to be unaffected by changes of its input, got %q", typ)
	}
	if dict.Fingerprint() != fp {
		t.Errorf("expected fingerprint to be stable")
	}
	other := NewDictionary(map[string]string{"N": "size"}, map[string]string{})
	if other.Fingerprint() != fp {
		t.Errorf("expected equal dictionaries to have equal fingerprints")
	}
	if NewDictionary(types, nil).Fingerprint() == fp {
		t.Errorf("expected different dictionaries to have different fingerprints")
	}
}

func TestString(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cmdsyn.syntax")
	defer teardown()
	//
	dict := NewDictionary(nil, map[string]string{"ONE": "1"})
	tests := []struct {
		node Node
		s    string
	}{
		{NewFlag("-a"), "-a"},
		{NewLongFlag("--verbose"), "--verbose"},
		{NewLongFlag("output").WithArgument(NewArgument(nil, "FILE", false), false), "--output=FILE"},
		{NewLongFlag("color").WithArgument(NewArgument(nil, "WHEN", false), true), "--color[=WHEN]"},
		{&Optional{Inner: NewSequence(NewFlag("a"), NewFlag("b"))}, "[-a -b]"},
		{&Optional{Inner: NewSequence(NewFlag("v")), IsList: true}, "[-v] ..."},
		{NewAlternatives(NewFlag("a"), NewFlag("b")), "-a | -b"},
		{&NonTerminalRef{Name: "FILE", IsList: true}, ":FILE: ..."},
		{NewArgument(dict, "ONE", false), "ONE"},
		{NewSequence(), ""},
	}
	for _, test := range tests {
		if s := test.node.String(); s != test.s {
			t.Errorf("expected %s node to print as %q, got %q", test.node.Kind(), test.s, s)
		}
	}
	cmd := &Command{Name: "ls", Root: NewSequence(NewFlag("l"))}
	if cmd.String() != "ls -l" {
		t.Errorf("expected command to print as 'ls -l', got %q", cmd.String())
	}
}

func TestEqual(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cmdsyn.syntax")
	defer teardown()
	//
	a := NewSequence(NewFlag("a"), &Optional{Inner: NewSequence(NewArgument(nil, "FILE", true))})
	b := NewSequence(NewFlag("a"), &Optional{Inner: NewSequence(NewArgument(nil, "FILE", true))})
	if !Equal(a, b) {
		t.Errorf("expected trees to be equal")
	}
	c := NewAlternatives(NewFlag("a"), &Optional{Inner: NewSequence(NewArgument(nil, "FILE", true))})
	if Equal(a, c) {
		t.Errorf("expected sequence and alternatives to be different")
	}
	if Equal(NewLongFlag("x"), NewLongFlag("x").WithArgument(NewArgument(nil, "A", false), false)) {
		t.Errorf("expected long flags with/without argument to be different")
	}
	var nilflag *Flag
	if !Equal(nil, nilflag) || Equal(nilflag, NewFlag("a")) {
		t.Errorf("expected typed nil to equal nil only")
	}
}

func TestWalk(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cmdsyn.syntax")
	defer teardown()
	//
	tree := NewSequence(
		NewFlag("a"),
		&Optional{Inner: NewAlternatives(&NonTerminalRef{Name: "X"}, &NonTerminalRef{Name: "Y"})},
		NewLongFlag("out").WithArgument(NewArgument(nil, "FILE", false), false),
		&NonTerminalRef{Name: "X", IsList: true},
	)
	count, maxdepth := 0, 0
	Walk(tree, func(n Node, depth int) bool {
		count++
		if depth > maxdepth {
			maxdepth = depth
		}
		return true
	})
	if count != 9 || maxdepth != 3 {
		t.Errorf("expected 9 nodes and depth 3, got %d nodes and depth %d", count, maxdepth)
	}
	names := NonTerminals(tree)
	if len(names) != 2 || names[0] != "X" || names[1] != "Y" {
		t.Errorf("expected non-terminals [X Y], got %v", names)
	}
	count = 0
	Walk(tree, func(n Node, depth int) bool {
		count++
		return n.Kind() != OptionalKind
	})
	if count != 6 {
		t.Errorf("expected 6 nodes when skipping optional groups, got %d", count)
	}
}

func TestJSON(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cmdsyn.syntax")
	defer teardown()
	//
	dict := NewDictionary(map[string]string{"WHEN": "when"}, map[string]string{"ONE": "1"})
	tree := NewSequence(
		NewFlag("a"),
		&Optional{Inner: NewAlternatives(NewFlag("b"), NewFlag("c")), IsList: true},
		NewLongFlag("color").WithArgument(NewArgument(dict, "WHEN", false), true),
		&NonTerminalRef{Name: "FILE", IsList: true},
		NewArgument(dict, "ONE", false),
	)
	cmd := &Command{Name: "ls", Root: tree}
	data, err := json.Marshal(cmd)
	if err != nil {
		t.Fatal(err)
	}
	t.Logf("JSON = %s", data)
	var generic map[string]interface{}
	if err := json.Unmarshal(data, &generic); err != nil {
		t.Fatal(err)
	}
	if generic["type"] != TagCommand {
		t.Errorf("expected discriminator %q, got %v", TagCommand, generic["type"])
	}
	root := generic["option"].(map[string]interface{})
	if root["type"] != TagSequence {
		t.Errorf("expected root discriminator %q, got %v", TagSequence, root["type"])
	}
	var back Command
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	if back.Name != "ls" || !Equal(back.Root, tree) {
		t.Errorf("expected decoded tree to equal original, got %v", back.Root)
	}
	if back.Root.String() != tree.String() {
		t.Errorf("expected decoded tree to print as %q, got %q", tree, back.Root)
	}
	if _, err := UnmarshalNode([]byte(`{"type":"no_such_option"}`)); err == nil {
		t.Errorf("expected unknown discriminator to be rejected")
	}
}

func TestJSONAlternativesArity(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cmdsyn.syntax")
	defer teardown()
	//
	for _, data := range []string{
		`{"type":"exclusive_options","commands":[]}`,
		`{"type":"exclusive_options"}`,
		`{"type":"exclusive_options","commands":[{"type":"flag_option","flag_name":"a"}]}`,
		`{"type":"compound_options","commands":[{"type":"exclusive_options","commands":[]}]}`,
	} {
		if n, err := UnmarshalNode([]byte(data)); err == nil {
			t.Errorf("expected %s to be rejected, decoded %v", data, n)
		}
	}
	n, err := UnmarshalNode([]byte(`{"type":"exclusive_options","commands":[` +
		`{"type":"flag_option","flag_name":"a"},{"type":"flag_option","flag_name":"b"}]}`))
	if err != nil {
		t.Fatal(err)
	}
	if !Equal(n, NewAlternatives(NewFlag("a"), NewFlag("b"))) {
		t.Errorf("expected -a | -b, decoded %v", n)
	}
}
