package synopsis

import (
	"errors"
	"sync"
	"testing"

	"github.com/npillmayer/cmdsyn"
	"github.com/npillmayer/cmdsyn/syntax"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestTokenize(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cmdsyn.synopsis")
	defer teardown()
	//
	tests := []struct {
		input string
		types []int
	}{
		{"-a", []int{tokFlag}},
		{"--verbose", []int{tokLongFlag}},
		{"--output=FILE", []int{tokLongFlag, '=', tokWord}},
		{"--color[=WHEN]", []int{tokLongFlag, '[', '=', tokWord, ']'}},
		{":FILE:...", []int{tokNonTerm, tokEllipsis}},
		{"FILE...", []int{tokWord, tokEllipsis}},
		{"file.txt .profile", []int{tokWord, tokWord}},
		{"- --", []int{tokDash, tokDash}},
		{"[-a|-b]", []int{'[', tokFlag, '|', tokFlag, ']'}},
		{"--no-color", []int{tokLongFlag}},
		{".", []int{tokWord}},
		{"find . -name X", []int{tokWord, tokWord, tokFlag, tokWord}},
		{"path. FILE...", []int{tokWord, tokWord, tokEllipsis}},
		{"a : b", []int{tokWord, tokWord, tokWord}},
		{":FILE: :", []int{tokNonTerm, tokWord}},
	}
	for _, test := range tests {
		tokens, err := tokenize(normalize(test.input))
		if err != nil {
			t.Errorf("tokenizing %q: %v", test.input, err)
			continue
		}
		if len(tokens) != len(test.types)+1 { // EOF
			t.Errorf("expected %d tokens for %q, got %v", len(test.types), test.input, tokens)
			continue
		}
		for i, typ := range test.types {
			if int(tokens[i].TokType()) != typ {
				t.Errorf("%q: expected token #%d to be %s, is %s (%q)", test.input, i,
					tokenName(cmdsyn.TokType(typ)), tokenName(tokens[i].TokType()), tokens[i].Lexeme())
			}
		}
	}
}

func TestFlagAliases(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cmdsyn.synopsis")
	defer teardown()
	//
	p := NewParser(nil)
	for in, out := range map[string]string{
		"-ONE": "1", "-TWO": "2", "-THREE": "3",
		"-EXCLAMATION": "!", "-DOLLAR": "$", "-AT": "@",
	} {
		node, err := p.ParseOption(in)
		if err != nil {
			t.Errorf("%s: %v", in, err)
			continue
		}
		if !syntax.Equal(node, &syntax.Flag{Name: out}) {
			t.Errorf("expected %s to parse to flag %q, got %v", in, out, node)
		}
	}
}

func TestLongFlags(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cmdsyn.synopsis")
	defer teardown()
	//
	p := NewParser(nil)
	tests := []struct {
		input       string
		name        string
		hasArg, opt bool
		arg         string
	}{
		{"--verbose", "verbose", false, false, ""},
		{"--output=FILE", "output", true, false, "FILE"},
		{"--output[=FILE]", "output", true, true, "FILE"},
	}
	for _, test := range tests {
		node, err := p.ParseOption(test.input)
		if err != nil {
			t.Errorf("%s: %v", test.input, err)
			continue
		}
		lf, ok := node.(*syntax.LongFlag)
		if !ok {
			t.Errorf("expected %s to parse to a long flag, got %s", test.input, node.Kind())
			continue
		}
		if lf.Name != test.name || lf.HasArgument != test.hasArg || lf.ArgumentOptional != test.opt {
			t.Errorf("%s: unexpected long flag %+v", test.input, lf)
		}
		if test.hasArg && (lf.Argument == nil || lf.Argument.Name != test.arg) {
			t.Errorf("%s: expected argument %s, got %v", test.input, test.arg, lf.Argument)
		}
		if !test.hasArg && lf.Argument != nil {
			t.Errorf("%s: expected no argument, got %v", test.input, lf.Argument)
		}
	}
}

func TestGroups(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cmdsyn.synopsis")
	defer teardown()
	//
	p := NewParser(nil)
	a, b := &syntax.Flag{Name: "a"}, &syntax.Flag{Name: "b"}
	tests := []struct {
		input    string
		expected syntax.Node
	}{
		{"[-a -b]", syntax.NewSequence(&syntax.Optional{Inner: syntax.NewSequence(a, b)})},
		{"-a|-b", syntax.NewAlternatives(a, b)},
		{"-a | -b", syntax.NewAlternatives(a, b)},
		{":FILE:...", syntax.NewSequence(&syntax.NonTerminalRef{Name: "FILE", IsList: true})},
		{"[-a]...", syntax.NewSequence(&syntax.Optional{Inner: syntax.NewSequence(a), IsList: true})},
		{"-a -b | :X:", syntax.NewAlternatives(syntax.NewSequence(a, b), &syntax.NonTerminalRef{Name: "X"})},
		{"[-a | -b] FILE ...", syntax.NewSequence(
			&syntax.Optional{Inner: syntax.NewAlternatives(a, b)},
			&syntax.Argument{Name: "FILE", Type: syntax.TypeUnknown, IsList: true},
		)},
		{"--color [-a]", syntax.NewSequence(
			&syntax.LongFlag{Name: "color"},
			&syntax.Optional{Inner: syntax.NewSequence(a)},
		)},
		{"", syntax.NewSequence()},
	}
	for _, test := range tests {
		node, err := p.ParseSequence(test.input)
		if err != nil {
			t.Errorf("%q: %v", test.input, err)
			continue
		}
		if !syntax.Equal(node, test.expected) {
			t.Errorf("expected %q to parse to %v, got %v", test.input, test.expected, node)
		}
	}
	node, _ := p.ParseOption("[-a -b]")
	if _, ok := node.(*syntax.Optional); !ok {
		t.Errorf("expected option fragment to be unwrapped, got %v", node.Kind())
	}
}

func TestDotsAndColons(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cmdsyn.synopsis")
	defer teardown()
	//
	p := NewParser(nil)
	arg := func(name string) *syntax.Argument {
		return &syntax.Argument{Name: name, Type: syntax.TypeUnknown}
	}
	tests := []struct {
		input    string
		expected syntax.Node
	}{
		{".", syntax.NewSequence(arg("."))},
		{"..", syntax.NewSequence(arg(".."))},
		{"path.", syntax.NewSequence(arg("path."))},
		{"find . -name X", syntax.NewSequence(arg("find"), arg("."),
			&syntax.Flag{Name: "name"}, arg("X"))},
		{"a : b", syntax.NewSequence(arg("a"), arg(":"), arg("b"))},
		{"[DIR.] ...", syntax.NewSequence(&syntax.Optional{
			Inner: syntax.NewSequence(arg("DIR.")), IsList: true})},
		{"FILE. ...", syntax.NewSequence(&syntax.Argument{Name: "FILE.",
			Type: syntax.TypeUnknown, IsList: true})},
	}
	for _, test := range tests {
		node, err := p.ParseSequence(test.input)
		if err != nil {
			t.Errorf("%q: %v", test.input, err)
			continue
		}
		if !syntax.Equal(node, test.expected) {
			t.Errorf("expected %q to parse to %v, got %v", test.input, test.expected, node)
			continue
		}
		again, err := p.ParseSequence(node.String())
		if err != nil || !syntax.Equal(node, again) {
			t.Errorf("%q does not re-parse from %q: %v", test.input, node.String(), err)
		}
	}
}

func TestSyntaxErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cmdsyn.synopsis")
	defer teardown()
	//
	p := NewParser(nil)
	for _, input := range []string{
		"[-a",
		"-a]",
		"[-a]]",
		"...",
		"-a | | -b",
		"| -a",
		"-a |",
		"--output=",
		"--output[=FILE",
		"-o=x",
		"[]",
	} {
		_, err := p.ParseSequence(input)
		var serr *SyntaxError
		if !errors.As(err, &serr) {
			t.Errorf("expected syntax error for %q, got %v", input, err)
			continue
		}
		t.Logf("%v", serr)
	}
	if _, err := p.ParseOption("  "); err == nil {
		t.Errorf("expected empty option to be rejected")
	}
}

func TestDictionaryResolution(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cmdsyn.synopsis")
	defer teardown()
	//
	dict := syntax.NewDictionary(map[string]string{"N": "size"}, map[string]string{"ONE": "1"})
	p := NewParser(dict)
	node, err := p.ParseSequence("-n N ONE FILE")
	if err != nil {
		t.Fatal(err)
	}
	children := node.(*syntax.Sequence).Children
	expected := []struct{ name, typ string }{
		{"N", "size"},
		{"1", syntax.TypeConstant},
		{"FILE", syntax.TypeUnknown},
	}
	for i, e := range expected {
		arg := children[i+1].(*syntax.Argument)
		if arg.Name != e.name || arg.Type != e.typ {
			t.Errorf("expected argument %d to be %s:%s, got %s:%s", i, e.name, e.typ, arg.Name, arg.Type)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cmdsyn.synopsis")
	defer teardown()
	//
	dict := syntax.NewDictionary(map[string]string{"N": "size"}, map[string]string{"ONE": "1"})
	p := NewParser(dict)
	for _, input := range []string{
		"[-a] [-b] [--color[=WHEN]] [:FILE: ...]",
		"-a|-b",
		"[-a -b | --verbose] N ONE",
		"--output=FILE...  [-v]...",
		"[--x[=A...]]",
		"[[-a] -b]",
		"- --",
		"-ONE -EXCLAMATION",
		"find [-H | -L | -P] [-EXdsx] [-f path] path ... [expression]",
	} {
		first, err := p.ParseSequence(input)
		if err != nil {
			t.Errorf("%q: %v", input, err)
			continue
		}
		second, err := p.ParseSequence(first.String())
		if err != nil {
			t.Errorf("%q printed as %q: %v", input, first, err)
			continue
		}
		if !syntax.Equal(first, second) {
			t.Errorf("round trip failed for %q: %q vs %q", input, first, second)
		}
	}
}

func TestParseCommand(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cmdsyn.synopsis")
	defer teardown()
	//
	cmd, err := NewParser(nil).ParseCommand("ls  [-l]   :FILE:...")
	if err != nil {
		t.Fatal(err)
	}
	if cmd.Name != "ls" || cmd.String() != "ls [-l] :FILE: ..." {
		t.Errorf("unexpected command %q", cmd)
	}
	if _, err := NewParser(nil).ParseCommand("   "); err == nil {
		t.Errorf("expected empty command line to be rejected")
	}
}

func TestConcurrentParsers(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cmdsyn.synopsis")
	defer teardown()
	//
	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := Parse("[-a] --b=C :D: ..."); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}
