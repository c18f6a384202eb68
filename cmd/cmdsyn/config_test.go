package main

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func writeConfig(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), configName)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cmdsyn.cli")
	defer teardown()
	//
	path := writeConfig(t, "grammar: /tmp/grammar.txt\ntrace: Debug\nformat: JSON\nworkers: 3\n")
	conf, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if conf.Grammar != "/tmp/grammar.txt" || conf.Trace != "Debug" {
		t.Errorf("unexpected configuration %+v", *conf)
	}
	if conf.Format != FormatJSON {
		t.Errorf("expected format to be normalized to %q, is %q", FormatJSON, conf.Format)
	}
	if conf.Workers != 3 {
		t.Errorf("expected 3 workers, have %d", conf.Workers)
	}
}

func TestConfigDefaults(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cmdsyn.cli")
	defer teardown()
	//
	conf, err := LoadConfig(writeConfig(t, "grammar: g.txt\n"))
	if err != nil {
		t.Fatal(err)
	}
	if conf.Format != FormatTree || conf.Trace != "Error" {
		t.Errorf("expected defaults for format and trace, have %+v", *conf)
	}
	if conf.Workers != runtime.NumCPU() {
		t.Errorf("expected %d workers, have %d", runtime.NumCPU(), conf.Workers)
	}
}

func TestConfigErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cmdsyn.cli")
	defer teardown()
	//
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Errorf("expected missing explicit config file to be an error")
	}
	if _, err := LoadConfig(writeConfig(t, "format: html\n")); err == nil {
		t.Errorf("expected unknown format to be an error")
	}
	if _, err := LoadConfig(writeConfig(t, "workers: [1, 2\n")); err == nil {
		t.Errorf("expected malformed YAML to be an error")
	}
}

func TestIsDirective(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cmdsyn.cli")
	defer teardown()
	//
	for line, expected := range map[string]bool{
		":load grammar.txt": true,
		":quit":             true,
		":FILE: ...":        false,
		":":                 false,
		"-a :FILE:":         false,
	} {
		if isDirective(line) != expected {
			t.Errorf("isDirective(%q) should be %v", line, expected)
		}
	}
}
