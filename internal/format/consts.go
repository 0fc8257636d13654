// Package format houses low-level decoders for the Macromedia Director
// "Shockwave" container (RIFX/XFIR): the header and memory map, the KEY* and
// CAS* link tables, cast member headers and the STXT/BITD/SCVW payload
// framing. Higher layers orchestrate these pieces into decoded assets.
package format

// Signatures. RIFX marks a file whose structural integers are big-endian,
// XFIR one whose integers are little-endian; the Endianness names below follow
// the signature, not the byte order (see Endianness.FieldOrder).
const (
	SignatureRIFX = "RIFX"
	SignatureXFIR = "XFIR"
)

// Chunk tags in their readable form.
const (
	TagKeyTable     = "KEY*"
	TagCastLibrary  = "CAS*"
	TagCastMember   = "CASt"
	TagBitmapData   = "BITD"
	TagStyledText   = "STXT"
	TagScoreView    = "SCVW"
	TagSoundHeader  = "sndH"
	TagSoundSamples = "sndS"
	TagSound        = "snd "
	TagCuePoints    = "cupt"
)

const (
	// HeaderSize is the fixed archive header: signature, file size, file
	// sign, imap tag, imap length, imap unknown, mmap offset.
	HeaderSize = 7 * 4

	// ChunkHeaderSize is the tag + length prefix carried by every chunk.
	ChunkHeaderSize = 8

	// MMapHeaderSize is the memory map header including its chunk header:
	//
	//	Offset  Size  Description
	//	------  ----  ---------------------------------------
	//	 0x00    4    'mmap' tag
	//	 0x04    4    chunk length
	//	 0x08    4    version (header length / entry length)
	//	 0x0C    4    unknown (max entry count)
	//	 0x10    4    amount of sub-file entries in use
	//	 0x14   12    unknown (junk / free list heads)
	MMapHeaderSize = 0x20

	// SubFileEntrySize is one record of the sub-file table:
	//
	//	Offset  Size  Description
	//	------  ----  ---------------------------------------
	//	 0x00    4    type tag
	//	 0x04    4    length
	//	 0x08    4    offset of the chunk header
	//	 0x0C    4    unknown (flags)
	//	 0x10    4    index (only populated for empty entries)
	SubFileEntrySize = 20

	// KeyTableUnknownSize is the block between the KEY* chunk header and the entry count.
	KeyTableUnknownSize = 8

	// KeyEntrySize is one KEY* record: file slot, cast slot, tag.
	KeyEntrySize = 12

	// CastLibraryBase separates cast-library references (cast slot >= base)
	// from plain member references in the KEY* table.
	CastLibraryBase = 1024

	// MemberUnknownSize is the gap before the field-offset table of a member's info block.
	MemberUnknownSize = 32

	// STXTHeaderSize is the unknown/length/padding triple before STXT text.
	STXTHeaderSize = 12
)

// AnimChartMarker flags member trailers that belong to animation charts.
const AnimChartMarker = "AnimChart"

// ignoredLibraryTags are structural chunks that reference a cast-library
// number in the KEY* table but carry no member data.
var ignoredLibraryTags = map[string]struct{}{
	"FXmp": {}, "Cinf": {}, "MCsL": {}, "Sord": {}, "VWCF": {},
	"VWFI": {}, "VWLB": {}, "VWSC": {}, "Fmap": {}, "SCRF": {},
	"DRCF": {}, "VWFM": {}, "VWtk": {}, "Lctx": {},
}

// IsIgnoredLibraryTag reports whether tag is a structural chunk skipped by the link resolver.
func IsIgnoredLibraryTag(tag string) bool {
	_, ok := ignoredLibraryTags[tag]
	return ok
}
