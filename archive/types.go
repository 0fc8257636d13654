package archive

import (
	"image"

	"github.com/joshuapare/castkit/internal/bitmap"
	"github.com/joshuapare/castkit/internal/format"
)

// Image is a decoded bitmap member.
type Image struct {
	Number uint32
	Name   string
	Width  int
	Height int
	// RGBA holds Width*Height pixels, four bytes each, rows top to bottom.
	// Alpha is not premultiplied.
	RGBA []byte
	// RegX and RegY are the registration point relative to the top-left.
	RegX     int
	RegY     int
	Opaque   bool
	Mode     bitmap.Mode
	Metadata format.BitmapMetadata
}

// ToNRGBA wraps the pixel buffer without copying.
func (img *Image) ToNRGBA() *image.NRGBA {
	return &image.NRGBA{
		Pix:    img.RGBA,
		Stride: img.Width * 4,
		Rect:   image.Rect(0, 0, img.Width, img.Height),
	}
}

// Text is a decoded styled-text member.
type Text struct {
	Number uint32
	Name   string
	Text   string
}
