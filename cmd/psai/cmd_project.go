package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newProjectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project [path]",
		Short: "Show project configuration",
		Long:  `Display the detected project root, its psai.toml settings and the number of source files.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			return runProject(cmd, dir)
		},
	}

	return cmd
}

func runProject(cmd *cobra.Command, dir string) error {
	p, err := loadProject(cmd, dir)
	if err != nil {
		return err
	}

	config := p.ConfigFile
	if config == "" {
		config = "(none, using defaults)"
	}
	cachePath, err := p.CachePath()
	if err != nil {
		cachePath = err.Error()
	}
	if !p.Config.Scan.Cache {
		cachePath = "disabled"
	}

	fmt.Printf("Root:       %s\n", p.RootDir)
	fmt.Printf("Config:     %s\n", config)
	fmt.Printf("Roots:      %s\n", strings.Join(p.Config.Source.Roots, ", "))
	fmt.Printf("Extensions: %s\n", strings.Join(p.Config.Source.Extensions, ", "))
	fmt.Printf("Exclude:    %s\n", strings.Join(p.Config.Source.Exclude, ", "))
	fmt.Printf("Encoding:   %s\n", p.Config.Source.Encoding)
	fmt.Printf("Workers:    %d\n", p.Config.Scan.Workers())
	fmt.Printf("Cache:      %s\n", cachePath)

	files, err := p.Files()
	if err != nil {
		fmt.Printf("Files:      error: %v\n", err)
	} else {
		fmt.Printf("Files:      %d\n", len(files))
	}

	return nil
}
