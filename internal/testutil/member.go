package testutil

import (
	"encoding/binary"

	"github.com/joshuapare/castkit/internal/format"
)

// Member describes a CASt chunk.
type Member struct {
	Type format.CastType
	// Name becomes the first info field. An empty Name with no Fields
	// produces a member without an info block.
	Name   string
	Fields []string
	// Trailer is written after the info block.
	Trailer []byte
}

// AddMember writes a CASt chunk and returns its slot.
func (w *ArchiveWriter) AddMember(m Member) uint32 {
	return w.AddChunk(format.TagCastMember, MemberPayload(m))
}

// MemberPayload encodes a CASt chunk body.
func MemberPayload(m Member) []byte {
	var info []byte
	fields := m.Fields
	if m.Name != "" {
		fields = append([]string{m.Name}, fields...)
	}
	if len(fields) > 0 {
		info = infoBlock(fields)
	}
	out := binary.BigEndian.AppendUint32(nil, uint32(m.Type))
	out = binary.BigEndian.AppendUint32(out, uint32(len(info)))
	out = binary.BigEndian.AppendUint32(out, uint32(len(m.Trailer)))
	out = append(out, info...)
	return append(out, m.Trailer...)
}

func infoBlock(fields []string) []byte {
	var data []byte
	offsets := make([]uint32, 0, len(fields))
	for _, f := range fields {
		enc, err := format.EncodeString(f)
		if err != nil {
			enc = []byte(f)
		}
		offsets = append(offsets, uint32(len(data)))
		data = append(data, byte(len(enc)))
		data = append(data, enc...)
	}
	out := make([]byte, format.MemberUnknownSize)
	out = binary.BigEndian.AppendUint16(out, uint16(len(fields)))
	for _, off := range offsets {
		out = binary.BigEndian.AppendUint32(out, off)
	}
	out = binary.BigEndian.AppendUint32(out, uint32(len(data)))
	return append(out, data...)
}

// Bitmap describes a bitmap member trailer in relative coordinates.
type Bitmap struct {
	PosX, PosY    int16
	Width, Height int16
	RegX, RegY    int16
	Alpha         uint16
	Flags         uint8
	BitDepth      uint8
	// Short omits flags, bit depth and palette reference.
	Short bool
}

// BitmapTrailer encodes bitmap metadata as stored on disk.
func BitmapTrailer(b Bitmap) []byte {
	be := binary.BigEndian
	out := be.AppendUint16(nil, 27)
	out = be.AppendUint16(out, uint16(b.PosY))
	out = be.AppendUint16(out, uint16(b.PosX))
	out = be.AppendUint16(out, uint16(b.PosY+b.Height))
	out = be.AppendUint16(out, uint16(b.PosX+b.Width))
	out = be.AppendUint16(out, b.Alpha)
	out = be.AppendUint32(out, 0)
	out = be.AppendUint16(out, 0)
	out = be.AppendUint16(out, uint16(b.PosY+b.RegY))
	out = be.AppendUint16(out, uint16(b.PosX+b.RegX))
	if b.Short {
		return out
	}
	out = append(out, b.Flags, b.BitDepth)
	return be.AppendUint32(out, 0)
}

// STXTPayload encodes an STXT chunk body holding text.
func STXTPayload(text string) []byte {
	enc, err := format.EncodeString(text)
	if err != nil {
		enc = []byte(text)
	}
	out := binary.BigEndian.AppendUint32(nil, format.STXTHeaderSize)
	out = binary.BigEndian.AppendUint32(out, uint32(len(enc)))
	out = binary.BigEndian.AppendUint32(out, 0)
	return append(out, enc...)
}
