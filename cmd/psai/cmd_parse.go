package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/psai/format"
	"github.com/dhamidi/psai/php/parser"
)

func newParseCmd() *cobra.Command {
	var outputFormat string
	var errorsOnly bool

	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse a PHP file and dump its syntax tree",
		Long: `Parse a PHP file and dump its syntax tree.

If no file is provided, reads PHP source from stdin.

Formats:
  json   the full tree, one object per phrase and token
  text   an indented outline with ranges and token text

With --errors-only, prints one line per syntax error instead and exits
with status 1 when there are any.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, src, err := readSource(cmd, args)
			if err != nil {
				return err
			}
			doc := format.NewDocument(name, src)

			if errorsOnly {
				outputFormat = "errors"
			}
			encoder, err := format.NewTreeEncoder(outputFormat, os.Stdout)
			if err != nil {
				return err
			}
			if err := encoder.Encode(doc); err != nil {
				return fmt.Errorf("encode: %w", err)
			}

			if errorsOnly {
				if n := len(parser.Errors(doc.Tree)); n > 0 {
					return fmt.Errorf("%s: %d syntax errors", name, n)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "output format (json, text)")
	cmd.Flags().BoolVar(&errorsOnly, "errors-only", false, "print syntax errors only")

	return cmd
}
