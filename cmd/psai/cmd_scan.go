package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/dhamidi/psai/php/codebase"
	"github.com/dhamidi/psai/project"
)

var (
	errorColor  = color.New(color.FgRed, color.Bold)
	okColor     = color.New(color.FgGreen, color.Bold)
	cachedColor = color.New(color.FgYellow)
	pathColor   = color.New(color.Bold)
)

func newScanCmd() *cobra.Command {
	var jobs int
	var noCache bool
	var clearCache bool
	var quiet bool

	cmd := &cobra.Command{
		Use:   "scan [path]",
		Short: "Parse every PHP file of a project and report syntax errors",
		Long: `Parse every PHP file of a project in parallel and report syntax errors.

The project is found by walking up from path (default: the current
directory) to the nearest psai.toml. Without one, path itself is the
project root and all .php files below it are scanned.

Parse summaries are cached by content hash, so unchanged files are not
parsed again. Exits with status 1 when any file has a syntax error.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			p, err := loadProject(cmd, dir)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("jobs") {
				p.Config.Scan.Jobs = jobs
			}
			if noCache {
				p.Config.Scan.Cache = false
			}
			return runScan(cmd.Context(), p, clearCache, quiet)
		},
	}

	cmd.Flags().IntVarP(&jobs, "jobs", "j", 0, "number of parallel workers (default: psai.toml, else GOMAXPROCS)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "parse every file, ignoring the summary cache")
	cmd.Flags().BoolVar(&clearCache, "clear-cache", false, "drop cached summaries before scanning")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "print the summary line only")

	return cmd
}

func runScan(ctx context.Context, p *project.Project, clearCache, quiet bool) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	files, err := p.Files()
	if err != nil {
		return err
	}

	cache, err := openCache(p, clearCache)
	if err != nil {
		return err
	}

	start := time.Now()
	results, err := codebase.Scan(ctx, files, codebase.ScanOptions{
		Jobs:  p.Config.Scan.Workers(),
		Cache: cache,
		Read:  p.ReadFile,
	})
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	var tokens, symbols, cached, failed, broken int
	for _, r := range results {
		rel := relativePath(p.RootDir, r.Path)
		if r.Err != nil {
			failed++
			fmt.Printf("%s: %s\n", pathColor.Sprint(rel), errorColor.Sprint(r.Err))
			continue
		}
		tokens += r.Summary.Tokens
		symbols += r.Summary.Symbols
		if r.Cached {
			cached++
		}
		if !codebase.HasErrors(r.Summary.Diagnostics) {
			continue
		}
		broken++
		if quiet {
			continue
		}
		for _, d := range r.Summary.Diagnostics {
			fmt.Printf("%s:%d:%d: %s %s\n", pathColor.Sprint(rel),
				d.Range.Start.Line()+1, d.Range.Start.Column()+1,
				errorColor.Sprint(d.Severity), d.Message)
		}
	}

	status := okColor.Sprint("ok")
	if broken > 0 || failed > 0 {
		status = errorColor.Sprintf("%d with errors", broken+failed)
	}
	fmt.Printf("%d files, %d tokens, %d symbols, %s, %s in %s\n",
		len(results), tokens, symbols, status,
		cachedColor.Sprintf("%d cached", cached), elapsed.Round(time.Millisecond))

	if broken > 0 || failed > 0 {
		return fmt.Errorf("%d of %d files have errors", broken+failed, len(results))
	}
	return nil
}

func openCache(p *project.Project, drop bool) (*codebase.DiskCache, error) {
	if !p.Config.Scan.Cache {
		return nil, nil
	}
	dir, err := p.CachePath()
	if err != nil {
		return nil, err
	}
	cache, err := codebase.OpenDiskCache(dir)
	if err != nil {
		return nil, err
	}
	if drop {
		if err := cache.DropAll(); err != nil {
			return nil, fmt.Errorf("clear cache: %w", err)
		}
	}
	return cache, nil
}

func relativePath(root, path string) string {
	if rel, err := filepath.Rel(root, path); err == nil {
		return rel
	}
	return path
}
