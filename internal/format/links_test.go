package format

import (
	"encoding/binary"
	"testing"

	"github.com/joshuapare/castkit/internal/buf"
)

func TestLinksClassification(t *testing.T) {
	l := NewLinks()
	l.Add(KeyEntry{FileSlot: 10, CastSlot: 7, Tag: NewFourCC("BITD")})
	l.Add(KeyEntry{FileSlot: 11, CastSlot: 7, Tag: NewFourCC("Thum")})
	l.Add(KeyEntry{FileSlot: 12, CastSlot: CastLibraryBase + 5, Tag: NewFourCC("CAS*")})
	l.Add(KeyEntry{FileSlot: 13, CastSlot: CastLibraryBase + 5, Tag: NewFourCC("Lctx")})
	l.Add(KeyEntry{FileSlot: 14, CastSlot: CastLibraryBase + 5, Tag: NewFourCC("XTRl")})
	l.Add(KeyEntry{FileSlot: 15, CastSlot: 8, Tag: NewFourCC("Lctx")})

	got := l.Linked[7]
	if len(got) != 2 || got[0] != 10 || got[1] != 11 {
		t.Fatalf("Linked[7] = %v", got)
	}
	lib, ok := l.Libraries[5]
	if !ok || lib.LibSlot != 12 || lib.Number != 5 {
		t.Fatalf("Libraries[5] = %+v, %v", lib, ok)
	}
	for _, slot := range l.Linked[CastLibraryBase+5] {
		if slot == 12 || slot == 13 {
			t.Fatalf("library and ignored chunks must not be linked: %v", l.Linked[CastLibraryBase+5])
		}
	}
	if got := l.Linked[CastLibraryBase+5]; len(got) != 1 || got[0] != 14 {
		t.Fatalf("unknown library-level tag is linked: %v", got)
	}
	// Ignored tags only apply at library level.
	if got := l.Linked[8]; len(got) != 1 || got[0] != 15 {
		t.Fatalf("Linked[8] = %v", got)
	}
}

func TestLibraryNumbersSorted(t *testing.T) {
	l := NewLinks()
	for _, n := range []uint32{9, 2, 5} {
		l.Add(KeyEntry{FileSlot: n, CastSlot: CastLibraryBase + n, Tag: NewFourCC(TagCastLibrary)})
	}
	got := l.LibraryNumbers()
	if len(got) != 3 || got[0] != 2 || got[1] != 5 || got[2] != 9 {
		t.Fatalf("LibraryNumbers = %v", got)
	}
}

func TestReadKeyTableTruncated(t *testing.T) {
	order := binary.LittleEndian
	raw := RawFourCC(TagKeyTable, order)
	data := order.AppendUint32(raw[:], 20)
	data = append(data, make([]byte, KeyTableUnknownSize)...)
	data = order.AppendUint32(data, 4)
	data = append(data, make([]byte, KeyEntrySize)...)

	entry := SubFileEntry{Tag: NewFourCC(TagKeyTable), Offset: 0, Length: uint32(len(data) - ChunkHeaderSize)}
	if _, err := ReadKeyTable(buf.NewCursor(data, order), entry); err == nil {
		t.Fatalf("expected truncation error for a count larger than the data")
	}
}
