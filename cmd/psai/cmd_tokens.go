package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/psai/format"
)

func newTokensCmd() *cobra.Command {
	var outputFormat string
	var width int

	cmd := &cobra.Command{
		Use:   "tokens [file]",
		Short: "Dump the token stream of a PHP file",
		Long: `Dump the token stream of a PHP file, including whitespace and
comments.

If no file is provided, reads PHP source from stdin.

Formats:
  line     one token per line: line:column, kind, quoted text
  json     an array of token records
  msgpack  the same records encoded as msgpack`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, src, err := readSource(cmd, args)
			if err != nil {
				return err
			}
			encoder, err := format.NewTokenEncoder(outputFormat, os.Stdout, width)
			if err != nil {
				return err
			}
			if err := encoder.Encode(format.NewDocument(name, src)); err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "line", "output format (line, json, msgpack)")
	cmd.Flags().IntVarP(&width, "width", "w", 60, "maximum display width of token text in line format (0 for no limit)")

	return cmd
}
