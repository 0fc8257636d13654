package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/joshuapare/castkit/archive"
	"github.com/joshuapare/castkit/pkg/assets"
)

var (
	// Global flags
	verbose    bool
	quiet      bool
	jsonOut    bool
	configFile string

	// Set up by PersistentPreRunE
	cfg    Config
	logger = slog.New(slog.DiscardHandler)
	opaque *assets.OpaqueTable
)

var rootCmd = &cobra.Command{
	Use:   "castctl",
	Short: "Inspect and export Macromedia Director archives",
	Long: `castctl reads Director RIFX/XFIR archives (.dxr, .cxt), lists their
chunks and cast members, prints text members, dumps the part and map records
stored in "DB" members and exports bitmaps as PNG or BMP.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup(os.Stderr)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output and debug logging")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default $XDG_CONFIG_HOME/castctl/config.yaml)")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads the config file and builds the logger and opaque table.
func setup(logOut io.Writer) error {
	var err error
	if cfg, err = loadConfig(configFile); err != nil {
		return err
	}
	if logger, err = newLogger(logOut, cfg); err != nil {
		return err
	}
	opaque = nil
	if cfg.OpaqueFile != "" {
		data, err := os.ReadFile(cfg.OpaqueFile)
		if err != nil {
			return fmt.Errorf("opaque table: %w", err)
		}
		if opaque, err = assets.ParseOpaqueTable(data); err != nil {
			return fmt.Errorf("opaque table %s: %w", cfg.OpaqueFile, err)
		}
	}
	return nil
}

func archiveOptions() archive.Options {
	return archive.Options{Logger: logger, Opaque: opaque}
}

func assetOptions(workers int) assets.Options {
	return assets.Options{Logger: logger, Opaque: opaque, Workers: workers}
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...any) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...any) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// formatSize renders a byte count the way info prints file sizes.
func formatSize(size int64) string {
	switch {
	case size < 1024:
		return fmt.Sprintf("%d bytes", size)
	case size < 1024*1024:
		return fmt.Sprintf("%.1f KB", float64(size)/1024)
	default:
		return fmt.Sprintf("%.1f MB", float64(size)/(1024*1024))
	}
}
