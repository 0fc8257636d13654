package format

import (
	"encoding/binary"
	"fmt"

	"github.com/joshuapare/castkit/internal/buf"
)

// Endianness is the mode named by the archive signature.
type Endianness uint8

const (
	// Little is selected by the "RIFX" signature.
	Little Endianness = iota
	// Big is selected by the "XFIR" signature.
	Big
)

func (e Endianness) String() string {
	if e == Big {
		return "big"
	}
	return "little"
}

// FieldOrder returns the byte order structural integers are actually stored
// in. It is the opposite of what the mode's name suggests; the inversion is
// part of the format and applies to the header, memory map, sub-file table,
// KEY* table and chunk headers. Cast member headers, bitmap metadata, CAS*
// contents and STXT framing are big-endian in both modes.
func (e Endianness) FieldOrder() binary.ByteOrder {
	if e == Big {
		return binary.LittleEndian
	}
	return binary.BigEndian
}

// DetectEndianness maps a signature to its mode.
func DetectEndianness(sig [4]byte) (Endianness, error) {
	switch string(sig[:]) {
	case SignatureRIFX:
		return Little, nil
	case SignatureXFIR:
		return Big, nil
	default:
		return 0, fmt.Errorf("signature %q: %w", sig[:], ErrArchiveFormat)
	}
}

// Header is the fixed archive header.
//
//	Offset  Size  Description
//	------  ----  ---------------------------------------
//	 0x00    4    'RIFX' or 'XFIR'
//	 0x04    4    file size
//	 0x08    4    file sign ('MV93', 'APPL', ...)
//	 0x0C    4    'imap' tag
//	 0x10    4    imap length
//	 0x14    4    imap unknown
//	 0x18    4    absolute offset of the memory map
type Header struct {
	Endianness  Endianness
	FileSize    uint32
	FileSign    FourCC
	IMap        FourCC
	IMapLength  uint32
	IMapUnknown uint32
	MMapOffset  uint32
}

// MMap is the memory map header preceding the sub-file table.
type MMap struct {
	Tag      FourCC
	Length   uint32
	Version  uint32
	Unknown1 uint32
	Count    uint32
	Unknown2 uint32
	Unknown3 uint32
	Unknown4 uint32
}

// SubFileEntry is one chunk location. Its position in the table is its slot.
type SubFileEntry struct {
	Tag     FourCC
	Length  uint32
	Offset  uint32
	Unknown uint32
	Index   uint32
}

// SubFileTable is the ordered sub-file table, indexed by slot.
type SubFileTable []SubFileEntry

// Entry resolves a slot.
func (t SubFileTable) Entry(slot uint32) (SubFileEntry, error) {
	if uint64(slot) >= uint64(len(t)) {
		return SubFileEntry{}, fmt.Errorf("slot %d of %d: %w", slot, len(t), ErrUnresolvedLink)
	}
	return t[slot], nil
}

// Slots returns the slots whose tag equals tag, in table order.
func (t SubFileTable) Slots(tag string) []uint32 {
	var out []uint32
	for i, e := range t {
		if e.Tag.String() == tag {
			out = append(out, uint32(i))
		}
	}
	return out
}

// ChunkHeader is the tag + length prefix of a chunk.
type ChunkHeader struct {
	Tag    FourCC
	Length uint32
}

// Container is a parsed archive header plus its sub-file table.
type Container struct {
	Header  Header
	MMap    MMap
	Entries SubFileTable
}

// Order returns the structural byte order of the archive.
func (c *Container) Order() binary.ByteOrder {
	return c.Header.Endianness.FieldOrder()
}

func truncated(what string, err error) error {
	return fmt.Errorf("%s: %w: %w", what, ErrTruncated, err)
}

// ReadFourCC reads a tag stored in the cursor's order.
func ReadFourCC(c *buf.Cursor) (FourCC, error) {
	raw, err := c.Array4()
	if err != nil {
		return FourCC{}, err
	}
	return fourCCFromRaw(raw, c.Order()), nil
}

// ReadChunkHeader reads a tag + length pair in the cursor's order.
func ReadChunkHeader(c *buf.Cursor) (ChunkHeader, error) {
	tag, err := ReadFourCC(c)
	if err != nil {
		return ChunkHeader{}, truncated("chunk header", err)
	}
	length, err := c.U32()
	if err != nil {
		return ChunkHeader{}, truncated("chunk header", err)
	}
	return ChunkHeader{Tag: tag, Length: length}, nil
}

// ReadHeader detects the signature at the cursor's position and reads the
// archive header. On success the cursor's order is switched to the
// archive's field order.
func ReadHeader(c *buf.Cursor) (Header, error) {
	sig, err := c.Array4()
	if err != nil {
		return Header{}, fmt.Errorf("signature: %w", ErrArchiveFormat)
	}
	mode, err := DetectEndianness(sig)
	if err != nil {
		return Header{}, err
	}
	c.SetOrder(mode.FieldOrder())

	h := Header{Endianness: mode}
	if h.FileSize, err = c.U32(); err != nil {
		return Header{}, truncated("header file size", err)
	}
	if h.FileSign, err = ReadFourCC(c); err != nil {
		return Header{}, truncated("header file sign", err)
	}
	if h.IMap, err = ReadFourCC(c); err != nil {
		return Header{}, truncated("header imap", err)
	}
	fields := []*uint32{&h.IMapLength, &h.IMapUnknown, &h.MMapOffset}
	for _, f := range fields {
		if *f, err = c.U32(); err != nil {
			return Header{}, truncated("header", err)
		}
	}
	return h, nil
}

// ReadMMap seeks to the memory map and reads its header.
func ReadMMap(c *buf.Cursor, h Header) (MMap, error) {
	if err := c.Seek(int64(h.MMapOffset)); err != nil {
		return MMap{}, truncated("mmap offset", err)
	}
	var m MMap
	var err error
	if m.Tag, err = ReadFourCC(c); err != nil {
		return MMap{}, truncated("mmap tag", err)
	}
	fields := []*uint32{
		&m.Length, &m.Version, &m.Unknown1, &m.Count,
		&m.Unknown2, &m.Unknown3, &m.Unknown4,
	}
	for _, f := range fields {
		if *f, err = c.U32(); err != nil {
			return MMap{}, truncated("mmap header", err)
		}
	}
	return m, nil
}

// ReadSubFileTable reads count entries starting at the cursor's position.
func ReadSubFileTable(c *buf.Cursor, count uint32) (SubFileTable, error) {
	if _, err := buf.CheckListBounds(c.Len(), int(c.Tell()), int(count), SubFileEntrySize); err != nil {
		return nil, fmt.Errorf("sub-file table of %d entries: %w: %w", count, ErrTruncated, err)
	}
	table := make(SubFileTable, 0, count)
	for i := uint32(0); i < count; i++ {
		var e SubFileEntry
		var err error
		if e.Tag, err = ReadFourCC(c); err != nil {
			return nil, truncated("sub-file entry", err)
		}
		for _, f := range []*uint32{&e.Length, &e.Offset, &e.Unknown, &e.Index} {
			if *f, err = c.U32(); err != nil {
				return nil, truncated("sub-file entry", err)
			}
		}
		table = append(table, e)
	}
	return table, nil
}

// ParseContainer reads the header, memory map and sub-file table of an
// archive. The returned cursor is positioned after the table and uses the
// archive's field order.
func ParseContainer(data []byte) (*Container, *buf.Cursor, error) {
	c := buf.NewCursor(data, binary.BigEndian)
	h, err := ReadHeader(c)
	if err != nil {
		return nil, nil, err
	}
	m, err := ReadMMap(c, h)
	if err != nil {
		return nil, nil, err
	}
	entries, err := ReadSubFileTable(c, m.Count)
	if err != nil {
		return nil, nil, err
	}
	return &Container{Header: h, MMap: m, Entries: entries}, c, nil
}
