package main

import (
	"errors"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joshuapare/castkit/pkg/assets"
	"github.com/joshuapare/castkit/pkg/types"
)

var recordsWorkers int

func init() {
	rootCmd.AddCommand(newRecordsCmd())
}

func newRecordsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "records [archive|dir]...",
		Short: "Dump part and map records",
		Long: `The records command loads archives and prints every part and map record
parsed from their "DB" members. A single directory argument loads the game's
archive list from it (or the archives listed in the config file). Without
arguments the configured archive_dir is used.

Example:
  castctl records assets/
  castctl records cddata.cxt 05.dxr --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("workers") && cfg.Workers > 0 {
				recordsWorkers = cfg.Workers
			}
			return runRecords(args)
		},
	}
	cmd.Flags().IntVar(&recordsWorkers, "workers", 1, "Archives decoded in parallel")
	return cmd
}

type recordDump struct {
	Parts  []*assets.PartRecord `json:"parts"`
	Maps   []*assets.MapRecord  `json:"maps"`
	Report *types.Report        `json:"report,omitempty"`
}

func loadLibrary(args []string) (*assets.Library, *types.Report, error) {
	if len(args) == 0 {
		if cfg.ArchiveDir == "" {
			return nil, nil, errors.New("no archives given and archive_dir is not configured")
		}
		args = []string{cfg.ArchiveDir}
	}
	opts := assetOptions(recordsWorkers)
	if len(args) == 1 {
		if st, err := os.Stat(args[0]); err == nil && st.IsDir() {
			names := assets.DefaultArchives
			if len(cfg.Archives) > 0 {
				names = cfg.Archives
			}
			printVerbose("Loading %d archive(s) from %s\n", len(names), args[0])
			return assets.LoadDir(args[0], names, opts)
		}
	}
	return assets.LoadFiles(args, opts)
}

func runRecords(args []string) error {
	lib, report, err := loadLibrary(args)
	if err != nil {
		return err
	}

	dump := recordDump{}
	for _, id := range lib.PartIDs() {
		p, _ := lib.GetPartRecord(id)
		dump.Parts = append(dump.Parts, p)
	}
	for _, id := range lib.MapIDs() {
		m, _ := lib.GetMapRecord(id)
		dump.Maps = append(dump.Maps, m)
	}

	if jsonOut {
		if report.HasAnyIssues() {
			dump.Report = report
		}
		return printJSON(dump)
	}

	printInfo("Parts (%d):\n", len(dump.Parts))
	for _, p := range dump.Parts {
		printInfo("  %4d  master=%d morphs=%v use=%q junk=%q new=%d\n",
			p.ID, p.Master, p.MorphsTo, p.UseView, p.JunkView, len(p.New))
		if p.Description != "" {
			printVerbose("        %s\n", p.Description)
		}
	}
	printInfo("Maps (%d):\n", len(dump.Maps))
	for _, m := range dump.Maps {
		printInfo("  %4d  image=%q topology=%q objects=%d\n", m.ID, m.Image, m.Topology, len(m.Objects))
	}
	if report.HasAnyIssues() {
		printInfo("\n%s", strings.TrimLeft(report.FormatTextCompact(), "\n"))
	}
	return nil
}
