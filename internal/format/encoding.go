package format

import (
	"encoding/binary"
	"fmt"

	"golang.org/x/text/encoding/charmap"
)

// DecodeString converts archive text (Windows-1252) into UTF-8.
func DecodeString(data []byte) (string, error) {
	if isASCII(data) {
		return string(data), nil
	}
	decoded, err := charmap.Windows1252.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("decode windows-1252: %w", err)
	}
	return string(decoded), nil
}

// EncodeString converts UTF-8 into Windows-1252 bytes. Only tests and tools
// that synthesise archives need it.
func EncodeString(s string) ([]byte, error) {
	encoded, err := charmap.Windows1252.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, fmt.Errorf("encode windows-1252: %w", err)
	}
	return encoded, nil
}

func isASCII(data []byte) bool {
	for _, b := range data {
		if b >= 0x80 {
			return false
		}
	}
	return true
}

// FourCC is a chunk tag in readable order.
type FourCC [4]byte

// NewFourCC builds a FourCC from a readable tag such as "KEY*".
func NewFourCC(tag string) FourCC {
	var f FourCC
	copy(f[:], tag)
	return f
}

// String decodes the tag through the archive code page.
func (f FourCC) String() string {
	s, err := DecodeString(f[:])
	if err != nil {
		return string(f[:])
	}
	return s
}

// fourCCFromRaw normalises on-disk tag bytes. Tags are stored as a 32-bit
// integer in the archive's field order, so RIFX files hold them readable and
// XFIR files hold them reversed.
func fourCCFromRaw(raw [4]byte, order binary.ByteOrder) FourCC {
	var f FourCC
	binary.BigEndian.PutUint32(f[:], order.Uint32(raw[:]))
	return f
}

// RawFourCC is the inverse of the normalisation applied on read: the bytes a
// tag occupies on disk for the given field order.
func RawFourCC(tag string, order binary.ByteOrder) [4]byte {
	f := NewFourCC(tag)
	var raw [4]byte
	order.PutUint32(raw[:], binary.BigEndian.Uint32(f[:]))
	return raw
}
