package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dhamidi/psai/project"
)

// readSource reads the file named by args, or stdin when args is empty,
// and decodes it into UTF-8. The encoding comes from the --encoding flag,
// then from the psai.toml governing the file.
func readSource(cmd *cobra.Command, args []string) (name, src string, err error) {
	var data []byte
	dir := "."
	name = "<stdin>"
	if len(args) == 0 {
		data, err = io.ReadAll(os.Stdin)
		if err != nil {
			return "", "", fmt.Errorf("read stdin: %w", err)
		}
	} else {
		name = args[0]
		dir = filepath.Dir(name)
		data, err = os.ReadFile(name)
		if err != nil {
			return "", "", fmt.Errorf("read file: %w", err)
		}
	}

	encoding, err := sourceEncoding(cmd, dir)
	if err != nil {
		return "", "", err
	}
	src, err = project.Decode(data, encoding)
	if err != nil {
		return "", "", fmt.Errorf("decode %s: %w", name, err)
	}
	return name, src, nil
}

func sourceEncoding(cmd *cobra.Command, dir string) (string, error) {
	encoding, err := cmd.Root().PersistentFlags().GetString("encoding")
	if err != nil {
		return "", err
	}
	if encoding != "" {
		return encoding, nil
	}
	p, err := project.Load(dir)
	if err != nil {
		return "", err
	}
	return p.Config.Source.Encoding, nil
}

// loadProject loads the project at dir and applies the --encoding flag.
func loadProject(cmd *cobra.Command, dir string) (*project.Project, error) {
	p, err := project.Load(dir)
	if err != nil {
		return nil, err
	}
	encoding, err := cmd.Root().PersistentFlags().GetString("encoding")
	if err != nil {
		return nil, err
	}
	if encoding != "" {
		p.Config.Source.Encoding = encoding
	}
	return p, nil
}
