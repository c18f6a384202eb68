package batch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/npillmayer/cmdsyn/manpage"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func writePages(t *testing.T, pages map[string]string) string {
	dir := t.TempDir()
	for name, content := range pages {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

var testPages = map[string]string{
	"ls.1.txt":     "NAME\n     ls - list\nSYNOPSIS\n     ls [-a] [FILE]...\nEND\n",
	"rm.1.txt":     "NAME\n     rm - remove\nOPTIONS\n     -f, --force  Never prompt.\nEND\n",
	"broken.1.txt": "SYNOPSIS\n     broken [-a\nEND\n",
	"notes.txt":    "NAME\n     notes - not a man page\nEND\n",
	"sh.10.txt":    "NAME\n     sh - wrong section number\nEND\n",
}

func TestList(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cmdsyn.batch")
	defer teardown()
	//
	dir := writePages(t, testPages)
	if err := os.Mkdir(filepath.Join(dir, "sub.1.txt"), 0755); err != nil {
		t.Fatal(err)
	}
	paths, err := List(dir)
	if err != nil {
		t.Fatal(err)
	}
	expected := []string{"broken.1.txt", "ls.1.txt", "rm.1.txt"}
	if len(paths) != len(expected) {
		t.Fatalf("expected %d man pages, got %v", len(expected), paths)
	}
	for i, p := range paths {
		if filepath.Base(p) != expected[i] {
			t.Errorf("expected %s at position %d, got %s", expected[i], i, p)
		}
	}
}

func TestExtractDir(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cmdsyn.batch")
	defer teardown()
	//
	dir := writePages(t, testPages)
	var examples int
	results, err := ExtractDir(context.Background(), dir, Workers(2),
		WithExtractOptions(manpage.WithExamplesHandler(func(*manpage.Page, []string) {
			examples++
		})))
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	failed := Failed(results)
	if len(failed) != 1 || filepath.Base(failed[0].Path) != "broken.1.txt" {
		t.Errorf("expected only broken.1.txt to fail, got %v", failed)
	}
	var serr *manpage.StructuralError
	if !errors.As(failed[0].Err, &serr) {
		t.Errorf("expected a structural error for broken.1.txt, got %v", failed[0].Err)
	}
	if examples != 0 {
		t.Errorf("expected no EXAMPLES sections, handler called %d times", examples)
	}
	if results[1].Page == nil || results[1].Page.Name() != "ls" || len(results[1].Page.Synopses) != 1 {
		t.Errorf("unexpected result for ls.1.txt: %+v", results[1])
	}
	if results[2].Page == nil || len(results[2].Page.Options) != 1 {
		t.Errorf("unexpected result for rm.1.txt: %+v", results[2])
	}
}

func TestExtractMissingFile(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cmdsyn.batch")
	defer teardown()
	//
	dir := writePages(t, testPages)
	paths := []string{filepath.Join(dir, "gone.1.txt"), filepath.Join(dir, "ls.1.txt")}
	results, err := Extract(context.Background(), paths)
	if err != nil {
		t.Fatal(err)
	}
	if results[0].Err == nil || results[1].Err != nil {
		t.Errorf("expected failure to be isolated to gone.1.txt, got %+v", results)
	}
}

func TestExtractCancelled(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cmdsyn.batch")
	defer teardown()
	//
	dir := writePages(t, testPages)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	results, err := ExtractDir(ctx, dir)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected cancellation error, got %v", err)
	}
	for _, r := range results {
		if !errors.Is(r.Err, context.Canceled) {
			t.Errorf("expected %s not to be processed, got %+v", r.Path, r)
		}
	}
}
