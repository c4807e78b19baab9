package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/psai/project"
)

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Create a psai.toml with the default configuration",
		Long: `Create a psai.toml with the default configuration.

If a directory is provided, creates it when missing and writes the file
there. Otherwise, writes it into the current directory. An existing
psai.toml is never replaced.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create %s: %w", dir, err)
			}
			file, err := project.Init(dir)
			if err != nil {
				return err
			}
			fmt.Printf("Created %s\n", file)
			return nil
		},
	}

	return cmd
}
