// Package bitmap converts BITD payloads of palette bitmaps into RGBA pixels.
//
// Two encodings exist. A payload whose length is exactly width*height bytes
// (plus one pad byte per row when the width is odd) holds one palette byte
// per pixel. Anything else is run-length encoded:
//
//	control n < 129   literal run, the next n+1 bytes are pixels
//	control n >= 129  repeat run, the next byte is repeated 257-n times
//
// Palette bytes are inverted: colour index = 255 - byte. Index 255 is
// transparent unless the member is listed as opaque.
package bitmap

import (
	"fmt"

	"github.com/joshuapare/castkit/internal/format"
)

// Mode is the payload encoding picked for a bitmap.
type Mode uint8

const (
	ModeRLE Mode = iota
	ModeDirect
)

func (m Mode) String() string {
	if m == ModeDirect {
		return "direct"
	}
	return "rle"
}

// MaxBitDepth is the deepest bitmap the palette decoder accepts.
const MaxBitDepth = 32

// maxRun is the longest repeat run a single control byte can describe.
const maxRun = 128

// MaxPixels is the most pixels a payload of n bytes can produce. A header
// claiming more is rejected before the output buffer is allocated.
func MaxPixels(n int) int { return (n/2 + 1) * maxRun }

// Result is a decoded bitmap.
type Result struct {
	// RGBA always holds Width*Height*4 bytes. Pixels the payload did not
	// cover are left zero.
	RGBA []byte
	// Written is the number of pixels the payload produced.
	Written int
	Mode    Mode
}

// Complete reports whether every pixel came from the payload.
func (r Result) Complete() bool { return r.Written*4 == len(r.RGBA) }

// DetectMode picks the encoding from the payload length.
func DetectMode(meta format.BitmapMetadata, payloadLen int) Mode {
	w, h := int(meta.Width), int(meta.Height)
	pad := 0
	if w%2 != 0 {
		pad = h
	}
	if w*h+pad == payloadLen {
		return ModeDirect
	}
	return ModeRLE
}

// Decode converts payload into RGBA using pal (MacPalette when nil), picking
// the encoding with DetectMode. A payload that runs out early is not an
// error: decoding stops and the remaining pixels stay zero.
func Decode(meta format.BitmapMetadata, payload []byte, opaque bool, pal *Palette) (Result, error) {
	if DetectMode(meta, len(payload)) == ModeDirect {
		return DecodeDirect(meta, payload, opaque, pal)
	}
	return DecodeRLE(meta, payload, opaque, pal)
}

// DecodeDirect reads one palette byte per pixel.
func DecodeDirect(meta format.BitmapMetadata, payload []byte, opaque bool, pal *Palette) (Result, error) {
	px, err := newPixelWriter(meta, len(payload), opaque, pal)
	if err != nil {
		return Result{}, err
	}
	for _, b := range payload {
		if px.full() {
			break
		}
		px.emit(b)
	}
	return Result{RGBA: px.out, Written: px.n, Mode: ModeDirect}, nil
}

// DecodeRLE expands a run-length encoded payload.
func DecodeRLE(meta format.BitmapMetadata, payload []byte, opaque bool, pal *Palette) (Result, error) {
	px, err := newPixelWriter(meta, len(payload), opaque, pal)
	if err != nil {
		return Result{}, err
	}
	px.wrap = true
	pos := 0
	for !px.full() && pos < len(payload) {
		n := payload[pos]
		pos++
		if n < 129 {
			for j := 0; j <= int(n) && pos < len(payload); j++ {
				px.put(payload[pos])
				pos++
			}
			continue
		}
		if pos >= len(payload) {
			break
		}
		v := payload[pos]
		pos++
		for j := 0; j < 257-int(n); j++ {
			px.put(v)
		}
	}
	return Result{RGBA: px.out, Written: px.n, Mode: ModeRLE}, nil
}

func newPixelWriter(meta format.BitmapMetadata, payloadLen int, opaque bool, pal *Palette) (*pixelWriter, error) {
	if meta.BitDepth > MaxBitDepth {
		return nil, fmt.Errorf("bit depth %d: %w", meta.BitDepth, format.ErrBitmapModeUnsupported)
	}
	if meta.Width < 0 || meta.Height < 0 {
		return nil, fmt.Errorf("dimensions %dx%d: %w", meta.Width, meta.Height, format.ErrBitmapModeUnsupported)
	}
	w, h := int(meta.Width), int(meta.Height)
	if w*h > MaxPixels(payloadLen) {
		return nil, fmt.Errorf("dimensions %dx%d from %d payload bytes: %w",
			w, h, payloadLen, format.ErrBitmapModeUnsupported)
	}
	if pal == nil {
		pal = MacPalette
	}
	return &pixelWriter{
		out:    make([]byte, w*h*4),
		total:  w * h,
		stride: w,
		odd:    w%2 != 0,
		opaque: opaque,
		pal:    pal,
	}, nil
}

// pixelWriter tracks the output position and the column counter. After each
// row of an odd-width image the counter goes to -1 so the row's pad slot
// is consumed without producing a pixel.
type pixelWriter struct {
	out    []byte
	n      int
	total  int
	x      int
	stride int
	odd    bool
	wrap   bool
	opaque bool
	pal    *Palette
}

func (p *pixelWriter) full() bool { return p.n >= p.total }

func (p *pixelWriter) put(b byte) {
	if p.x >= 0 {
		p.emit(b)
	}
	p.x++
	if p.wrap && p.x >= p.stride {
		p.x = 0
		if p.odd {
			p.x = -1
		}
	}
}

func (p *pixelWriter) emit(b byte) {
	if p.full() {
		return
	}
	index := 0xff - b
	c := p.pal.Color(index)
	if !p.opaque && index == 0xff {
		c.A = 0
	}
	o := p.out[p.n*4 : p.n*4+4]
	o[0], o[1], o[2], o[3] = c.R, c.G, c.B, c.A
	p.n++
}
