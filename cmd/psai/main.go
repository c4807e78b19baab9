package main

import (
	"context"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"
)

const version = "0.1.0"

func main() {
	var verbose int
	var colorMode string

	rootCmd := &cobra.Command{
		Use:          "psai",
		Short:        "A PHP source front end: tokens, trees and diagnostics",
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			commonlog.Configure(verbose, nil)
			switch colorMode {
			case "on":
				color.NoColor = false
			case "off":
				color.NoColor = true
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().CountVarP(&verbose, "verbose", "v", "increase log verbosity (repeatable)")
	rootCmd.PersistentFlags().StringVar(&colorMode, "color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().String("encoding", "", "source encoding (default: from psai.toml, else utf-8)")

	rootCmd.AddCommand(newParseCmd())
	rootCmd.AddCommand(newTokensCmd())
	rootCmd.AddCommand(newScanCmd())
	rootCmd.AddCommand(newDocCmd())
	rootCmd.AddCommand(newLSPCmd())
	rootCmd.AddCommand(newUICmd())
	rootCmd.AddCommand(newProjectCmd())
	rootCmd.AddCommand(newInitCmd())

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
