package main

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/image/bmp"

	"github.com/joshuapare/castkit/archive"
)

var (
	exportFormat string
	exportMember uint32
)

func init() {
	rootCmd.AddCommand(newExportCmd())
}

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <archive> <outdir>",
		Short: "Export decoded bitmaps as image files",
		Long: `The export command decodes every bitmap member of an archive and writes
it to outdir as <number>_<name>.<ext>. The output directory is created if
needed.

Example:
  castctl export 05.dxr out/
  castctl export cddata.cxt out/ --format bmp --member 12`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(args)
		},
	}
	cmd.Flags().StringVar(&exportFormat, "format", "png", "Image format: png or bmp")
	cmd.Flags().Uint32Var(&exportMember, "member", 0, "Export only this member number")
	return cmd
}

type imageEncoder func(w io.Writer, img image.Image) error

func encoderFor(format string) (imageEncoder, string, error) {
	switch strings.ToLower(format) {
	case "png":
		return png.Encode, "png", nil
	case "bmp":
		return bmp.Encode, "bmp", nil
	}
	return nil, "", fmt.Errorf("unsupported format %q (want png or bmp)", format)
}

// exportName builds the output file name of an image. Path separators in
// member names are replaced.
func exportName(img *archive.Image, ext string) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', 0:
			return '_'
		}
		return r
	}, img.Name)
	if name == "" {
		return fmt.Sprintf("%d.%s", img.Number, ext)
	}
	return fmt.Sprintf("%d_%s.%s", img.Number, name, ext)
}

func runExport(args []string) error {
	encode, ext, err := encoderFor(exportFormat)
	if err != nil {
		return err
	}
	src, outDir := args[0], args[1]

	a, err := archive.OpenFile(src, archiveOptions())
	if err != nil {
		return fmt.Errorf("failed to open archive: %w", err)
	}

	numbers := slices.Sorted(maps.Keys(a.Images))
	if exportMember != 0 {
		if _, ok := a.Images[exportMember]; !ok {
			return fmt.Errorf("no decoded image with member number %d", exportMember)
		}
		numbers = []uint32{exportMember}
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}

	written := make([]string, 0, len(numbers))
	for _, n := range numbers {
		img := a.Images[n]
		if img.Width == 0 || img.Height == 0 {
			printVerbose("Skipping empty image %d\n", n)
			continue
		}
		path := filepath.Join(outDir, exportName(img, ext))
		if err := writeImage(path, img, encode); err != nil {
			return fmt.Errorf("member %d: %w", n, err)
		}
		printVerbose("Wrote %s (%dx%d)\n", path, img.Width, img.Height)
		written = append(written, path)
	}

	if jsonOut {
		return printJSON(map[string]any{"files": written, "report": a.Report})
	}
	printInfo("Exported %d image(s) to %s\n", len(written), outDir)
	if a.Report.HasAnyIssues() {
		printInfo("%s", a.Report.FormatTextCompact())
	}
	return nil
}

func writeImage(path string, img *archive.Image, encode imageEncoder) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := encode(f, img.ToNRGBA()); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
