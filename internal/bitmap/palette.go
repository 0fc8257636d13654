package bitmap

import (
	"fmt"
	"image/color"
)

// Palette maps a colour index to RGB.
type Palette [256][3]uint8

// Color returns the entry at index as an opaque colour.
func (p *Palette) Color(index uint8) color.NRGBA {
	e := p[index]
	return color.NRGBA{R: e[0], G: e[1], B: e[2], A: 0xff}
}

// ParsePalette reads 768 bytes of packed RGB triples.
func ParsePalette(data []byte) (*Palette, error) {
	if len(data) != 256*3 {
		return nil, fmt.Errorf("palette: need %d bytes, got %d", 256*3, len(data))
	}
	var p Palette
	for i := range p {
		copy(p[i][:], data[3*i:3*i+3])
	}
	return &p, nil
}

// MacPalette is the system palette used by every bitmap in the game data.
var MacPalette = &Palette{
	{0, 0, 0}, {17, 17, 17}, {34, 34, 34}, {68, 68, 68},
	{85, 85, 85}, {119, 119, 119}, {136, 136, 136}, {170, 170, 170},
	{187, 187, 187}, {221, 221, 221}, {238, 238, 238}, {0, 0, 17},
	{0, 0, 34}, {0, 0, 68}, {0, 0, 85}, {0, 0, 119},
	{0, 0, 136}, {0, 0, 170}, {0, 0, 187}, {0, 0, 221},
	{0, 0, 238}, {0, 17, 0}, {0, 34, 0}, {0, 68, 0},
	{0, 85, 0}, {0, 119, 0}, {0, 136, 0}, {0, 170, 0},
	{0, 187, 0}, {0, 221, 0}, {0, 238, 0}, {17, 0, 0},
	{34, 0, 0}, {68, 0, 0}, {85, 0, 0}, {119, 0, 0},
	{136, 0, 0}, {170, 0, 0}, {187, 0, 0}, {221, 0, 0},
	{238, 0, 0}, {0, 0, 51}, {0, 0, 102}, {0, 0, 153},
	{0, 0, 204}, {0, 0, 255}, {0, 51, 0}, {0, 51, 51},
	{0, 51, 102}, {0, 51, 153}, {0, 51, 204}, {0, 51, 255},
	{0, 102, 0}, {0, 102, 51}, {0, 102, 102}, {0, 102, 153},
	{0, 102, 204}, {0, 102, 255}, {0, 153, 0}, {0, 153, 51},
	{0, 153, 102}, {0, 153, 153}, {0, 153, 204}, {0, 153, 255},
	{0, 204, 0}, {0, 204, 51}, {0, 204, 102}, {0, 204, 153},
	{0, 204, 204}, {0, 204, 255}, {0, 255, 0}, {0, 255, 51},
	{0, 255, 102}, {0, 255, 153}, {0, 255, 204}, {0, 255, 255},
	{51, 0, 0}, {51, 0, 51}, {51, 0, 102}, {51, 0, 153},
	{51, 0, 204}, {51, 0, 255}, {51, 51, 0}, {51, 51, 51},
	{51, 51, 102}, {51, 51, 153}, {51, 51, 204}, {51, 51, 255},
	{51, 102, 0}, {51, 102, 51}, {51, 102, 102}, {51, 102, 153},
	{51, 102, 204}, {51, 102, 255}, {51, 153, 0}, {51, 153, 51},
	{51, 153, 102}, {51, 153, 153}, {51, 153, 204}, {51, 153, 255},
	{51, 204, 0}, {51, 204, 51}, {51, 204, 102}, {51, 204, 153},
	{51, 204, 204}, {51, 204, 255}, {51, 255, 0}, {51, 255, 51},
	{51, 255, 102}, {51, 255, 153}, {51, 255, 204}, {51, 255, 255},
	{102, 0, 0}, {102, 0, 51}, {102, 0, 102}, {102, 0, 153},
	{102, 0, 204}, {102, 0, 255}, {102, 51, 0}, {102, 51, 51},
	{102, 51, 102}, {102, 51, 153}, {102, 51, 204}, {102, 51, 255},
	{102, 102, 0}, {102, 102, 51}, {102, 102, 102}, {102, 102, 153},
	{102, 102, 204}, {102, 102, 255}, {102, 153, 0}, {102, 153, 51},
	{102, 153, 102}, {102, 153, 153}, {102, 153, 204}, {102, 153, 255},
	{102, 204, 0}, {102, 204, 51}, {102, 204, 102}, {102, 204, 153},
	{102, 204, 204}, {102, 204, 255}, {102, 255, 0}, {102, 255, 51},
	{102, 255, 102}, {102, 255, 153}, {102, 255, 204}, {102, 255, 255},
	{153, 0, 0}, {153, 0, 51}, {153, 0, 102}, {153, 0, 153},
	{153, 0, 204}, {153, 0, 255}, {153, 51, 0}, {153, 51, 51},
	{153, 51, 102}, {153, 51, 153}, {153, 51, 204}, {153, 51, 255},
	{153, 102, 0}, {153, 102, 51}, {153, 102, 102}, {153, 102, 153},
	{153, 102, 204}, {153, 102, 255}, {153, 153, 0}, {153, 153, 51},
	{153, 153, 102}, {153, 153, 153}, {153, 153, 204}, {153, 153, 255},
	{153, 204, 0}, {153, 204, 51}, {153, 204, 102}, {153, 204, 153},
	{153, 204, 204}, {153, 204, 255}, {153, 255, 0}, {153, 255, 51},
	{153, 255, 102}, {153, 255, 153}, {153, 255, 204}, {153, 255, 255},
	{204, 0, 0}, {204, 0, 51}, {204, 0, 102}, {204, 0, 153},
	{204, 0, 204}, {204, 0, 255}, {204, 51, 0}, {204, 51, 51},
	{204, 51, 102}, {204, 51, 153}, {204, 51, 204}, {204, 51, 255},
	{204, 102, 0}, {204, 102, 51}, {204, 102, 102}, {204, 102, 153},
	{204, 102, 204}, {204, 102, 255}, {204, 153, 0}, {204, 153, 51},
	{204, 153, 102}, {204, 153, 153}, {204, 153, 204}, {204, 153, 255},
	{204, 204, 0}, {204, 204, 51}, {204, 204, 102}, {204, 204, 153},
	{204, 204, 204}, {204, 204, 255}, {204, 255, 0}, {204, 255, 51},
	{204, 255, 102}, {204, 255, 153}, {204, 255, 204}, {204, 255, 255},
	{255, 0, 0}, {255, 0, 51}, {255, 0, 102}, {255, 0, 153},
	{255, 0, 204}, {255, 0, 255}, {255, 51, 0}, {255, 51, 51},
	{255, 51, 102}, {255, 51, 153}, {255, 51, 204}, {255, 51, 255},
	{255, 102, 0}, {255, 102, 51}, {255, 102, 102}, {255, 102, 153},
	{255, 102, 204}, {255, 102, 255}, {255, 153, 0}, {255, 153, 51},
	{255, 153, 102}, {255, 153, 153}, {255, 153, 204}, {255, 153, 255},
	{255, 204, 0}, {255, 204, 51}, {255, 204, 102}, {255, 204, 153},
	{255, 204, 204}, {255, 204, 255}, {255, 255, 0}, {255, 255, 51},
	{255, 255, 102}, {255, 255, 153}, {255, 255, 204}, {255, 255, 255},
}
