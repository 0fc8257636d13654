package format

import (
	"bytes"
	"fmt"

	"github.com/joshuapare/castkit/internal/buf"
)

// CastType is the member kind stored in a CASt header.
type CastType uint32

const (
	CastNull CastType = iota
	CastBitmap
	CastFilmLoop
	CastField
	CastPalette
	CastPicture
	CastSound
	CastButton
	CastShape
	CastMovie
	CastDigitalVideo
	CastScript
	CastRichText
	CastOLE
	CastTransition
)

var castTypeNames = [...]string{
	"null", "bitmap", "filmloop", "field", "palette", "picture", "sound",
	"button", "shape", "movie", "digitalvideo", "script", "richtext", "ole",
	"transition",
}

func (t CastType) String() string {
	if int(t) < len(castTypeNames) {
		return castTypeNames[t]
	}
	return fmt.Sprintf("type(%d)", uint32(t))
}

// MemberHeader is the CASt chunk header. Type and both lengths are
// big-endian in either archive mode.
type MemberHeader struct {
	Chunk         ChunkHeader
	Type          CastType
	DataLength    uint32
	EndDataLength uint32
}

// BitmapMetadata is the trailer of a bitmap member. Every field is
// big-endian. Width, Height, RegX and RegY are stored on disk as absolute
// coordinates and are made relative to the position on read.
//
//	Offset  Size  Description
//	------  ----  ---------------------------------------
//	 0x00    2    unknown (v27)
//	 0x02    2    pos y
//	 0x04    2    pos x
//	 0x06    2    end y
//	 0x08    2    end x
//	 0x0A    2    alpha threshold
//	 0x0C    4    unknown (ole)
//	 0x10    2    unknown (ole)
//	 0x12    2    registration y
//	 0x14    2    registration x
//	 0x16    1    flags          (optional)
//	 0x17    1    bit depth      (optional)
//	 0x18    4    palette ref    (optional)
type BitmapMetadata struct {
	V27            uint16
	PosY           int16
	PosX           int16
	Height         int16
	Width          int16
	AlphaThreshold uint16
	OLE1           uint32
	OLE2           uint16
	RegY           int16
	RegX           int16
	Flags          uint8
	BitDepth       uint8
	PaletteRef     uint32
}

// CastMember is one decoded CASt chunk.
type CastMember struct {
	MemberRef
	Header MemberHeader
	Name   string
	Fields []string
	Bitmap *BitmapMetadata
	// AnimChart is set when a non-bitmap trailer mentions AnimChartMarker.
	AnimChart bool
}

// ReadMemberHeader seeks to a CASt chunk and reads its header.
func ReadMemberHeader(c *buf.Cursor, entry SubFileEntry) (MemberHeader, error) {
	if err := c.Seek(int64(entry.Offset)); err != nil {
		return MemberHeader{}, truncated("member offset", err)
	}
	chunk, err := ReadChunkHeader(c)
	if err != nil {
		return MemberHeader{}, err
	}
	h := MemberHeader{Chunk: chunk}
	typ, err := c.U32BE()
	if err != nil {
		return MemberHeader{}, truncated("member type", err)
	}
	h.Type = CastType(typ)
	if h.DataLength, err = c.U32BE(); err != nil {
		return MemberHeader{}, truncated("member data length", err)
	}
	if h.EndDataLength, err = c.U32BE(); err != nil {
		return MemberHeader{}, truncated("member end data length", err)
	}
	return h, nil
}

// ReadMember decodes the CASt chunk referenced by ref: header, info fields
// (the first one is the member name) and the type-specific trailer.
func ReadMember(c *buf.Cursor, table SubFileTable, ref MemberRef) (*CastMember, error) {
	entry, err := table.Entry(ref.Slot)
	if err != nil {
		return nil, err
	}
	h, err := ReadMemberHeader(c, entry)
	if err != nil {
		return nil, err
	}
	m := &CastMember{MemberRef: ref, Header: h}
	start := c.Tell()

	if h.DataLength > 0 {
		fields, err := readInfoFields(c)
		if err != nil {
			return nil, err
		}
		m.Fields = fields
		if len(fields) > 0 {
			m.Name = fields[0]
		}
	}

	if err := c.Seek(start + int64(h.DataLength)); err != nil {
		return nil, truncated("member trailer", err)
	}

	n := int(h.EndDataLength)
	if n > c.Remaining() {
		n = c.Remaining()
	}
	trailer, _ := c.Bytes(n)

	switch h.Type {
	case CastBitmap:
		meta, err := ReadBitmapMetadata(buf.NewCursor(trailer, c.Order()))
		if err != nil {
			return nil, err
		}
		m.Bitmap = &meta
	case CastSound:
	default:
		m.AnimChart = bytes.Contains(trailer, []byte(AnimChartMarker))
	}
	return m, nil
}

// readInfoFields reads the member info block: 32 unknown bytes, a field
// count, that many offsets, the field data length, then length-prefixed
// strings at the offsets (relative to the end of the field data length).
// Empty and oversized fields are skipped.
func readInfoFields(c *buf.Cursor) ([]string, error) {
	if err := c.Skip(MemberUnknownSize); err != nil {
		return nil, truncated("member info", err)
	}
	count, err := c.U16BE()
	if err != nil {
		return nil, truncated("member field count", err)
	}
	offsets := make([]uint32, 0, count)
	for i := uint16(0); i < count; i++ {
		off, err := c.U32BE()
		if err != nil {
			return nil, truncated("member field offsets", err)
		}
		offsets = append(offsets, off)
	}
	dataLen, err := c.U32BE()
	if err != nil {
		return nil, truncated("member field data length", err)
	}
	base := c.Tell()

	var fields []string
	for _, off := range offsets {
		if err := c.Seek(base + int64(off)); err != nil {
			return nil, truncated("member field", err)
		}
		n, err := c.U8()
		if err != nil {
			return nil, truncated("member field length", err)
		}
		if n == 0 || uint32(n) > dataLen {
			continue
		}
		raw, err := c.Bytes(int(n))
		if err != nil {
			return nil, truncated("member field", err)
		}
		s, err := DecodeString(raw)
		if err != nil {
			return nil, err
		}
		fields = append(fields, s)
	}
	return fields, nil
}

// ReadBitmapMetadata reads a bitmap trailer at the cursor's position.
func ReadBitmapMetadata(c *buf.Cursor) (BitmapMetadata, error) {
	var m BitmapMetadata
	var err error
	if m.V27, err = c.U16BE(); err != nil {
		return m, truncated("bitmap metadata", err)
	}
	var endY, endX, regY, regX int16
	for _, f := range []*int16{&m.PosY, &m.PosX, &endY, &endX} {
		if *f, err = c.I16BE(); err != nil {
			return m, truncated("bitmap bounds", err)
		}
	}
	if m.AlphaThreshold, err = c.U16BE(); err != nil {
		return m, truncated("bitmap alpha threshold", err)
	}
	if m.OLE1, err = c.U32BE(); err != nil {
		return m, truncated("bitmap metadata", err)
	}
	if m.OLE2, err = c.U16BE(); err != nil {
		return m, truncated("bitmap metadata", err)
	}
	for _, f := range []*int16{&regY, &regX} {
		if *f, err = c.I16BE(); err != nil {
			return m, truncated("bitmap registration point", err)
		}
	}
	m.Height = endY - m.PosY
	m.Width = endX - m.PosX
	m.RegY = regY - m.PosY
	m.RegX = regX - m.PosX

	// Older members stop after the registration point.
	if m.Flags, err = c.U8(); err != nil {
		return m, nil
	}
	if m.BitDepth, err = c.U8(); err != nil {
		return m, nil
	}
	m.PaletteRef, _ = c.U32BE()
	return m, nil
}
