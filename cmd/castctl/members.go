package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/castkit/archive"
)

func init() {
	rootCmd.AddCommand(newMembersCmd())
}

func newMembersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "members <archive>",
		Short: "List cast members",
		Long: `The members command prints the number, slot, type and name of every
cast member, plus image dimensions for bitmaps.

Example:
  castctl members 05.dxr
  castctl members 05.dxr --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMembers(args)
		},
	}
	return cmd
}

type memberRow struct {
	Library uint32 `json:"library"`
	Number  uint32 `json:"number"`
	Slot    uint32 `json:"slot"`
	Type    string `json:"type"`
	Name    string `json:"name"`
	Width   int    `json:"width,omitempty"`
	Height  int    `json:"height,omitempty"`
	Depth   uint8  `json:"bit_depth,omitempty"`
}

func runMembers(args []string) error {
	a, err := archive.OpenFile(args[0], archiveOptions())
	if err != nil {
		return fmt.Errorf("failed to open archive: %w", err)
	}

	rows := make([]memberRow, 0, len(a.Members))
	for _, m := range a.Members {
		row := memberRow{
			Library: m.Library,
			Number:  m.Number,
			Slot:    m.Slot,
			Type:    m.Header.Type.String(),
			Name:    m.Name,
		}
		if m.Bitmap != nil {
			row.Width, row.Height = int(m.Bitmap.Width), int(m.Bitmap.Height)
			row.Depth = m.Bitmap.BitDepth
		}
		rows = append(rows, row)
	}

	if jsonOut {
		return printJSON(rows)
	}
	printInfo("%4s  %6s  %6s  %-10s  %-10s  %s\n", "LIB", "NUMBER", "SLOT", "TYPE", "SIZE", "NAME")
	for _, r := range rows {
		size := ""
		if r.Width > 0 || r.Height > 0 {
			size = fmt.Sprintf("%dx%d", r.Width, r.Height)
		}
		printInfo("%4d  %6d  %6d  %-10s  %-10s  %s\n", r.Library, r.Number, r.Slot, r.Type, size, r.Name)
	}
	printVerbose("\n%d members\n", len(rows))
	return nil
}
