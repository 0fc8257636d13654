package format

import (
	"fmt"
	"slices"

	"github.com/joshuapare/castkit/internal/buf"
)

// KeyEntry is one record of a KEY* table.
type KeyEntry struct {
	FileSlot uint32
	CastSlot uint32
	Tag      FourCC
}

// CastLibrary locates the CAS* chunk listing a library's members.
type CastLibrary struct {
	Number  uint32
	LibSlot uint32
}

// Links is the resolved KEY* linkage of one archive.
type Links struct {
	// Libraries is keyed by cast-library number (cast slot - CastLibraryBase).
	Libraries map[uint32]CastLibrary
	// Linked maps an owning slot to the auxiliary chunk slots it owns, in
	// KEY* order.
	Linked map[uint32][]uint32
}

// NewLinks returns empty linkage.
func NewLinks() *Links {
	return &Links{
		Libraries: make(map[uint32]CastLibrary),
		Linked:    make(map[uint32][]uint32),
	}
}

// Add classifies one KEY* entry.
func (l *Links) Add(e KeyEntry) {
	if e.CastSlot >= CastLibraryBase {
		tag := e.Tag.String()
		if tag == TagCastLibrary {
			num := e.CastSlot - CastLibraryBase
			l.Libraries[num] = CastLibrary{Number: num, LibSlot: e.FileSlot}
			return
		}
		if IsIgnoredLibraryTag(tag) {
			return
		}
	}
	l.Linked[e.CastSlot] = append(l.Linked[e.CastSlot], e.FileSlot)
}

// LibraryNumbers returns the registered library numbers in ascending order.
func (l *Links) LibraryNumbers() []uint32 {
	nums := make([]uint32, 0, len(l.Libraries))
	for n := range l.Libraries {
		nums = append(nums, n)
	}
	slices.Sort(nums)
	return nums
}

// ReadKeyTable reads the KEY* chunk located by entry.
//
//	Offset  Size  Description
//	------  ----  ---------------------------------------
//	 0x00    8    chunk header
//	 0x08    8    unknown (property/key sizes, max count)
//	 0x10    4    amount of entries
//	 0x14   12*n  entries: file slot, cast slot, tag
func ReadKeyTable(c *buf.Cursor, entry SubFileEntry) ([]KeyEntry, error) {
	if err := c.Seek(int64(entry.Offset)); err != nil {
		return nil, truncated("KEY* offset", err)
	}
	if _, err := ReadChunkHeader(c); err != nil {
		return nil, err
	}
	if err := c.Skip(KeyTableUnknownSize); err != nil {
		return nil, truncated("KEY* header", err)
	}
	count, err := c.U32()
	if err != nil {
		return nil, truncated("KEY* count", err)
	}
	if _, err := buf.CheckListBounds(c.Len(), int(c.Tell()), int(count), KeyEntrySize); err != nil {
		return nil, fmt.Errorf("KEY* table of %d entries: %w: %w", count, ErrTruncated, err)
	}
	out := make([]KeyEntry, 0, count)
	for i := uint32(0); i < count; i++ {
		var e KeyEntry
		if e.FileSlot, err = c.U32(); err != nil {
			return nil, truncated("KEY* entry", err)
		}
		if e.CastSlot, err = c.U32(); err != nil {
			return nil, truncated("KEY* entry", err)
		}
		if e.Tag, err = ReadFourCC(c); err != nil {
			return nil, truncated("KEY* entry", err)
		}
		out = append(out, e)
	}
	return out, nil
}

// ResolveLinks reads every KEY* chunk of the table into one Links value.
func ResolveLinks(c *buf.Cursor, table SubFileTable) (*Links, error) {
	links := NewLinks()
	for _, slot := range table.Slots(TagKeyTable) {
		entries, err := ReadKeyTable(c, table[slot])
		if err != nil {
			return nil, fmt.Errorf("KEY* at slot %d: %w", slot, err)
		}
		for _, e := range entries {
			links.Add(e)
		}
	}
	return links, nil
}

// MemberRef names a cast member and the slot of its CASt chunk.
type MemberRef struct {
	Library uint32
	Number  uint32
	Slot    uint32
}

// ReadCastLibrary reads a CAS* chunk: after the chunk header come
// length/4 big-endian slots, one per member number starting at 1. Zero
// slots are empty member positions and are skipped.
func ReadCastLibrary(c *buf.Cursor, table SubFileTable, lib CastLibrary) ([]MemberRef, error) {
	entry, err := table.Entry(lib.LibSlot)
	if err != nil {
		return nil, fmt.Errorf("cast library %d: %w", lib.Number, err)
	}
	if err := c.Seek(int64(entry.Offset)); err != nil {
		return nil, truncated("CAS* offset", err)
	}
	hdr, err := ReadChunkHeader(c)
	if err != nil {
		return nil, err
	}
	var refs []MemberRef
	for i := uint32(0); i < hdr.Length/4; i++ {
		slot, err := c.U32BE()
		if err != nil {
			return refs, truncated("CAS* entry", err)
		}
		if slot == 0 {
			continue
		}
		refs = append(refs, MemberRef{Library: lib.Number, Number: i + 1, Slot: slot})
	}
	return refs, nil
}
