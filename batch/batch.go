/*
Package batch extracts syntax summaries from directories of man pages.

Man pages are processed in parallel, with a bounded number of workers.
Failures are isolated per file: a page which cannot be read or has no NAME
section yields a Result with an error and never stops the other files.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"sort"

	"github.com/npillmayer/cmdsyn/manpage"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/sync/errgroup"
)

// tracer traces with key 'cmdsyn.batch'.
func tracer() tracing.Trace {
	return tracing.Select("cmdsyn.batch")
}

// ManPageFile matches names of plain text man pages, like 'ls.1.txt'.
var ManPageFile = regexp.MustCompile(`^\w*\.\d\.txt$`)

// List returns the paths of all man page files in a directory, sorted.
// Sub-directories are not searched.
func List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() || !ManPageFile.MatchString(e.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

// Result is the outcome of extracting a single man page.
// Exactly one of Page and Err is non-nil.
type Result struct {
	Path string
	Page *manpage.Page
	Err  error
}

// Option configures a batch run.
type Option func(*config)

type config struct {
	workers int
	opts    []manpage.Option
}

// Workers sets the number of man pages processed concurrently.
// The default is the number of CPUs.
func Workers(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.workers = n
		}
	}
}

// WithExtractOptions passes options to manpage.ExtractFile.
func WithExtractOptions(opts ...manpage.Option) Option {
	return func(c *config) {
		c.opts = append(c.opts, opts...)
	}
}

// Extract processes man page files in parallel. Results are in the order of
// paths. The returned error is non-nil only if ctx has been cancelled; in
// this case unprocessed files carry ctx's error.
func Extract(ctx context.Context, paths []string, opts ...Option) ([]Result, error) {
	c := &config{workers: runtime.NumCPU()}
	for _, opt := range opts {
		opt(c)
	}
	results := make([]Result, len(paths))
	var g errgroup.Group
	g.SetLimit(c.workers)
	for i, path := range paths {
		i, path := i, path
		results[i].Path = path
		if err := ctx.Err(); err != nil {
			results[i].Err = err
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i].Err = err
				return nil
			}
			page, err := manpage.ExtractFile(path, c.opts...)
			if err != nil {
				tracer().Infof("%v", err)
				results[i].Err = err
				return nil
			}
			tracer().Debugf("%s: %d synopses, %d options", path, len(page.Synopses), len(page.Options))
			results[i].Page = page
			return nil
		})
	}
	_ = g.Wait() // workers never fail
	if err := ctx.Err(); err != nil {
		return results, fmt.Errorf("batch interrupted: %w", err)
	}
	return results, nil
}

// ExtractDir lists the man page files of a directory and extracts them.
func ExtractDir(ctx context.Context, dir string, opts ...Option) ([]Result, error) {
	paths, err := List(dir)
	if err != nil {
		return nil, err
	}
	tracer().Infof("%s: %d man pages", dir, len(paths))
	return Extract(ctx, paths, opts...)
}

// Failed returns the results with an error.
func Failed(results []Result) []Result {
	var failed []Result
	for _, r := range results {
		if r.Err != nil {
			failed = append(failed, r)
		}
	}
	return failed
}
