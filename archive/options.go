package archive

import (
	"log/slog"

	"github.com/joshuapare/castkit/internal/bitmap"
)

// Options configures decoding. The zero value logs nothing, uses the
// shipped opaque table and the Macintosh system palette.
type Options struct {
	Logger  *slog.Logger
	Opaque  *bitmap.OpaqueTable
	Palette *bitmap.Palette
}

var discardLogger = slog.New(slog.DiscardHandler)

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return discardLogger
}

func (o Options) opaque() *bitmap.OpaqueTable {
	if o.Opaque != nil {
		return o.Opaque
	}
	return bitmap.DefaultOpaqueTable()
}

func (o Options) palette() *bitmap.Palette {
	if o.Palette != nil {
		return o.Palette
	}
	return bitmap.MacPalette
}
