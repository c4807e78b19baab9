package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dhamidi/psai/php/codebase"
	"github.com/dhamidi/psai/php/phpdoc"
)

func newDocCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "doc <file> [name]",
		Short: "Show the doc blocks of the declarations in a PHP file",
		Long: `Show the doc blocks of the declarations in a PHP file.

Lists namespaces, classes, interfaces, traits, functions, methods,
properties and constants with their parsed PHPDoc. With a name, shows only
the declarations called name (for properties include the leading $).

Declarations without a doc block are skipped unless --all is given.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, src, err := readSource(cmd, args[:1])
			if err != nil {
				return err
			}
			f := codebase.Analyze(name, src)

			filter := ""
			if len(args) > 1 {
				filter = args[1]
			}
			n := printDocs(f.Symbols, filter, all, 0)
			if filter != "" && n == 0 {
				return fmt.Errorf("%s: no declaration named %s", name, filter)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "include declarations without a doc block")

	return cmd
}

func printDocs(symbols []codebase.Symbol, filter string, all bool, depth int) int {
	printed := 0
	indent := strings.Repeat("  ", depth)
	for _, sym := range symbols {
		match := filter == "" || sym.Name == filter
		if match && (all || sym.Doc != nil) {
			printed++
			fmt.Printf("%s%s %s\n", indent, pathColor.Sprint(sym.Kind), sym.Name)
			if text := phpdoc.Format(sym.Doc); text != "" {
				for _, line := range strings.Split(text, "\n") {
					fmt.Printf("%s    %s\n", indent, line)
				}
			}
			fmt.Println()
		}
		childDepth := depth
		if filter == "" {
			childDepth++
		}
		printed += printDocs(sym.Children, filter, all, childDepth)
	}
	return printed
}
