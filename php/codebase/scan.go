package codebase

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// ScanResult is the outcome of scanning one file.
type ScanResult struct {
	Path    string
	Summary *Summary
	Cached  bool
	Err     error
}

// ScanOptions configures Scan.
type ScanOptions struct {
	Jobs  int        // Zero means GOMAXPROCS
	Cache *DiskCache // Nil disables caching
	Read  func(path string) (string, error)
}

// Scan summarizes files in parallel. Results keep the order of files. A
// file that cannot be read records its error in its result; Scan itself
// fails only when ctx is cancelled.
func Scan(ctx context.Context, files []string, opts ScanOptions) ([]ScanResult, error) {
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	results := make([]ScanResult, len(files))
	if len(files) == 0 {
		return results, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = scanOne(path, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func scanOne(path string, opts ScanOptions) ScanResult {
	content, err := opts.Read(path)
	if err != nil {
		return ScanResult{Path: path, Err: err}
	}

	key := DigestOf(content)
	summary, ok, err := opts.Cache.Get(key)
	if err != nil {
		log.Warningf("cache read for %s: %s", path, err)
	}
	if ok {
		summary.Path = path
		return ScanResult{Path: path, Summary: summary, Cached: true}
	}

	summary = Summarize(Analyze(path, content))
	if err := opts.Cache.Put(key, summary); err != nil {
		log.Warningf("cache write for %s: %s", path, err)
	}
	return ScanResult{Path: path, Summary: summary}
}
