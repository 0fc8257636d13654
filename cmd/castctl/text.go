package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/joshuapare/castkit/pkg/assets"
)

func init() {
	rootCmd.AddCommand(newTextCmd())
}

func newTextCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "text <archive> <member>",
		Short: "Print a text member",
		Long: `The text command prints the text of a member selected by number or by
name. Members whose name ends in "DB" are parsed as records and are shown by
the records command instead.

Example:
  castctl text 00.cxt 12
  castctl text 00.cxt Intro`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runText(args)
		},
	}
	return cmd
}

func runText(args []string) error {
	path := args[0]
	lib, _, err := assets.LoadFiles([]string{path}, assetOptions(1))
	if err != nil {
		return fmt.Errorf("failed to open archive: %w", err)
	}
	key := assets.ParseKey(args[1])
	text, ok := lib.GetText(filepath.Base(path), key)
	if !ok {
		return fmt.Errorf("no text member %s in %s", key, path)
	}

	if jsonOut {
		return printJSON(map[string]string{"member": args[1], "text": text})
	}
	printInfo("%s\n", text)
	return nil
}
