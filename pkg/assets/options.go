package assets

import (
	"log/slog"

	"github.com/joshuapare/castkit/archive"
	"github.com/joshuapare/castkit/internal/bitmap"
)

// OpaqueTable lists members whose palette index 255 is drawn as a colour
// instead of transparency.
type OpaqueTable = bitmap.OpaqueTable

// Palette maps the 256 colour indexes of a bitmap to RGB.
type Palette = bitmap.Palette

// ParseOpaqueTable reads a YAML mapping of archive name to member numbers.
func ParseOpaqueTable(data []byte) (*OpaqueTable, error) { return bitmap.ParseOpaqueTable(data) }

// DefaultOpaqueTable returns the table for the shipped game archives.
func DefaultOpaqueTable() *OpaqueTable { return bitmap.DefaultOpaqueTable() }

// ParsePalette reads 768 bytes of packed RGB triples.
func ParsePalette(data []byte) (*Palette, error) { return bitmap.ParsePalette(data) }

// Options controls how archives are decoded into a Library.
type Options struct {
	// Logger receives per-member failures (Warn) and dispatch details
	// (Debug). Nil discards everything.
	Logger *slog.Logger

	// Opaque lists members that never get a transparent colour. Nil uses
	// the table embedded in the bitmap package.
	Opaque *OpaqueTable

	// Palette replaces the Macintosh system palette.
	Palette *Palette

	// Workers bounds how many archives are decoded at once. Values below 2
	// decode sequentially.
	Workers int
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return discard
	}
	return o.Logger
}

func (o Options) archiveOptions() archive.Options {
	return archive.Options{Logger: o.Logger, Opaque: o.Opaque, Palette: o.Palette}
}

var discard = slog.New(slog.DiscardHandler)
