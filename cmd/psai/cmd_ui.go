package main

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dhamidi/psai/php/codebase"
	"github.com/dhamidi/psai/ui"
)

func newUICmd() *cobra.Command {
	var addr string
	var watch bool

	cmd := &cobra.Command{
		Use:   "ui [path]",
		Short: "Start the web UI server for a project",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			p, err := loadProject(cmd, dir)
			if err != nil {
				return err
			}
			c := codebase.New(p)
			if err := c.ScanAll(cmd.Context()); err != nil {
				return fmt.Errorf("scan %s: %w", p.RootDir, err)
			}
			if watch {
				w := codebase.NewFileWatcher(c)
				w.Start()
				defer w.Stop()
			}

			server, err := ui.NewServer(c)
			if err != nil {
				return fmt.Errorf("create server: %w", err)
			}
			displayAddr := addr
			if strings.HasPrefix(addr, ":") {
				displayAddr = "localhost" + addr
			}
			fmt.Printf("Serving %s at http://%s\n", p.RootDir, displayAddr)
			return http.ListenAndServe(addr, server)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", ":8080", "address to listen on")
	cmd.Flags().BoolVarP(&watch, "watch", "w", true, "rescan files when they change")

	return cmd
}
