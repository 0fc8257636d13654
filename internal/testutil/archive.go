// Package testutil builds synthetic Shockwave archives for tests.
//
// Example:
//
//	w := testutil.NewArchiveWriter(format.Little)
//	pixels := w.AddChunk(format.TagBitmapData, []byte{0x00, 0xff})
//	member := w.AddMember(testutil.Member{
//	    Type:    format.CastBitmap,
//	    Name:    "dot",
//	    Trailer: testutil.BitmapTrailer(testutil.Bitmap{Width: 1, Height: 1}),
//	})
//	w.Link(pixels, member, format.TagBitmapData)
//	w.AddCastLibrary(1, member)
//	data := w.Bytes()
package testutil

import (
	"encoding/binary"

	"github.com/joshuapare/castkit/internal/format"
)

// Reserved slots written ahead of user chunks, mirroring real archives.
const (
	SlotRoot uint32 = iota
	SlotIMap
	SlotMMap
	SlotKeyTable
	FirstUserSlot
)

type chunk struct {
	tag     string
	payload []byte
}

type key struct {
	fileSlot uint32
	castSlot uint32
	tag      string
}

// ArchiveWriter assembles an archive in memory. Slots are assigned in the
// order chunks are added.
type ArchiveWriter struct {
	mode   format.Endianness
	order  binary.ByteOrder
	chunks []chunk
	keys   []key

	// FileSign overrides the header file sign (default "MV93").
	FileSign string
}

// NewArchiveWriter returns a writer for the given signature mode.
func NewArchiveWriter(mode format.Endianness) *ArchiveWriter {
	return &ArchiveWriter{mode: mode, order: mode.FieldOrder(), FileSign: "MV93"}
}

// Order returns the structural byte order of the archive being written.
func (w *ArchiveWriter) Order() binary.ByteOrder { return w.order }

// AddChunk appends a chunk and returns its slot.
func (w *ArchiveWriter) AddChunk(tag string, payload []byte) uint32 {
	w.chunks = append(w.chunks, chunk{tag: tag, payload: payload})
	return FirstUserSlot + uint32(len(w.chunks)-1)
}

// Link records a KEY* entry tying fileSlot to castSlot.
func (w *ArchiveWriter) Link(fileSlot, castSlot uint32, tag string) {
	w.keys = append(w.keys, key{fileSlot: fileSlot, castSlot: castSlot, tag: tag})
}

// AddCastLibrary writes a CAS* chunk listing memberSlots (member numbers
// start at 1, a zero slot leaves a gap) and registers it as library number.
func (w *ArchiveWriter) AddCastLibrary(number uint32, memberSlots ...uint32) uint32 {
	payload := make([]byte, 4*len(memberSlots))
	for i, s := range memberSlots {
		binary.BigEndian.PutUint32(payload[4*i:], s)
	}
	slot := w.AddChunk(format.TagCastLibrary, payload)
	w.Link(slot, format.CastLibraryBase+number, format.TagCastLibrary)
	return slot
}

// Bytes lays out the archive: header, memory map with the sub-file table,
// the KEY* chunk, then user chunks in slot order.
func (w *ArchiveWriter) Bytes() []byte {
	total := int(FirstUserSlot) + len(w.chunks)
	mmapOffset := format.HeaderSize
	tableEnd := mmapOffset + format.MMapHeaderSize + total*format.SubFileEntrySize

	keyPayload := w.keyTable()
	type placed struct {
		tag     string
		offset  int
		payload []byte
	}
	var layout []placed
	pos := tableEnd
	place := func(tag string, payload []byte) placed {
		p := placed{tag: tag, offset: pos, payload: payload}
		pos += format.ChunkHeaderSize + len(payload)
		return p
	}
	layout = append(layout, place(format.TagKeyTable, keyPayload))
	for _, c := range w.chunks {
		layout = append(layout, place(c.tag, c.payload))
	}

	out := make([]byte, 0, pos)
	out = append(out, w.signature()...)
	out = w.u32(out, uint32(pos))
	out = w.tag(out, w.FileSign)
	out = w.tag(out, "imap")
	out = w.u32(out, 24)
	out = w.u32(out, 1)
	out = w.u32(out, uint32(mmapOffset))

	out = w.tag(out, "mmap")
	out = w.u32(out, uint32(format.MMapHeaderSize-format.ChunkHeaderSize+total*format.SubFileEntrySize))
	out = w.u32(out, 0x00180014)
	out = w.u32(out, uint32(total))
	out = w.u32(out, uint32(total))
	for i := 0; i < 3; i++ {
		out = w.u32(out, 0xffffffff)
	}

	entry := func(tag string, length, offset int) {
		out = w.tag(out, tag)
		out = w.u32(out, uint32(length))
		out = w.u32(out, uint32(offset))
		out = w.u32(out, 0)
		out = w.u32(out, 0)
	}
	entry(w.signature(), pos, 0)
	entry("imap", 24, 12)
	entry("mmap", tableEnd-mmapOffset-format.ChunkHeaderSize, mmapOffset)
	for _, p := range layout {
		entry(p.tag, len(p.payload), p.offset)
	}

	for _, p := range layout {
		out = w.tag(out, p.tag)
		out = w.u32(out, uint32(len(p.payload)))
		out = append(out, p.payload...)
	}
	return out
}

func (w *ArchiveWriter) keyTable() []byte {
	out := make([]byte, format.KeyTableUnknownSize)
	out = w.u32(out, uint32(len(w.keys)))
	for _, k := range w.keys {
		out = w.u32(out, k.fileSlot)
		out = w.u32(out, k.castSlot)
		out = w.tag(out, k.tag)
	}
	return out
}

func (w *ArchiveWriter) signature() string {
	if w.mode == format.Big {
		return format.SignatureXFIR
	}
	return format.SignatureRIFX
}

func (w *ArchiveWriter) u32(b []byte, v uint32) []byte {
	return w.order.AppendUint32(b, v)
}

func (w *ArchiveWriter) tag(b []byte, tag string) []byte {
	raw := format.RawFourCC(tag, w.order)
	return append(b, raw[:]...)
}
