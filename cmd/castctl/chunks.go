package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/castkit/internal/format"
	"github.com/joshuapare/castkit/internal/mmfile"
)

var chunksTag string

func init() {
	rootCmd.AddCommand(newChunksCmd())
}

func newChunksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chunks <archive>",
		Short: "List the sub-file table",
		Long: `The chunks command prints every entry of the archive's sub-file table:
slot, tag, offset and length. Use --tag to show only one chunk type.

Example:
  castctl chunks 05.dxr
  castctl chunks 05.dxr --tag BITD`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChunks(args)
		},
	}
	cmd.Flags().StringVar(&chunksTag, "tag", "", "Only list chunks with this tag")
	return cmd
}

type chunkRow struct {
	Slot   int    `json:"slot"`
	Tag    string `json:"tag"`
	Offset uint32 `json:"offset"`
	Length uint32 `json:"length"`
	Linked []int  `json:"linked,omitempty"`
}

func runChunks(args []string) error {
	data, release, err := mmfile.Map(args[0])
	if err != nil {
		return err
	}
	defer func() { _ = release() }()

	container, cur, err := format.ParseContainer(data)
	if err != nil {
		return fmt.Errorf("failed to open archive: %w", err)
	}
	links, err := format.ResolveLinks(cur, container.Entries)
	if err != nil {
		return fmt.Errorf("failed to resolve links: %w", err)
	}

	var rows []chunkRow
	for i, e := range container.Entries {
		if chunksTag != "" && e.Tag.String() != chunksTag {
			continue
		}
		row := chunkRow{Slot: i, Tag: e.Tag.String(), Offset: e.Offset, Length: e.Length}
		for _, s := range links.Linked[uint32(i)] {
			row.Linked = append(row.Linked, int(s))
		}
		rows = append(rows, row)
	}

	if jsonOut {
		return printJSON(rows)
	}
	printInfo("%6s  %-4s  %10s  %10s  %s\n", "SLOT", "TAG", "OFFSET", "LENGTH", "LINKED")
	for _, r := range rows {
		linked := ""
		if len(r.Linked) > 0 {
			linked = fmt.Sprint(r.Linked)
		}
		printInfo("%6d  %-4s  %10d  %10d  %s\n", r.Slot, r.Tag, r.Offset, r.Length, linked)
	}
	return nil
}
