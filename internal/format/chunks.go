package format

import (
	"fmt"

	"github.com/joshuapare/castkit/internal/buf"
)

// ReadPayload returns the data of the chunk located by entry: the chunk
// header is skipped and entry.Length bytes follow.
func ReadPayload(c *buf.Cursor, entry SubFileEntry) ([]byte, error) {
	if err := c.Seek(int64(entry.Offset) + ChunkHeaderSize); err != nil {
		return nil, truncated(entry.Tag.String()+" offset", err)
	}
	data, err := c.Bytes(int(entry.Length))
	if err != nil {
		return nil, truncated(entry.Tag.String()+" payload", err)
	}
	return data, nil
}

// ReadStyledText returns the raw text of the STXT chunk located by entry.
//
//	Offset  Size  Description
//	------  ----  ---------------------------------------
//	 0x00    8    chunk header
//	 0x08    4    unknown (header length)
//	 0x0C    4    text length
//	 0x10    4    padding (style data length)
//	 0x14    n    text
func ReadStyledText(c *buf.Cursor, entry SubFileEntry) ([]byte, error) {
	if err := c.Seek(int64(entry.Offset) + ChunkHeaderSize); err != nil {
		return nil, truncated("STXT offset", err)
	}
	if _, err := c.U32BE(); err != nil {
		return nil, truncated("STXT header", err)
	}
	n, err := c.U32BE()
	if err != nil {
		return nil, truncated("STXT text length", err)
	}
	if _, err := c.U32BE(); err != nil {
		return nil, truncated("STXT header", err)
	}
	text, err := c.Bytes(int(n))
	if err != nil {
		return nil, truncated("STXT text", err)
	}
	return text, nil
}

// FilmLoop is the framing of an SCVW chunk. Sprite channels are not decoded.
type FilmLoop struct {
	Size         uint32
	FramesOffset uint32
	ChannelSize  uint16
	Frames       int
}

// ReadFilmLoop reads the SCVW header and counts its frames. All fields are
// big-endian and offsets are relative to the start of the chunk data.
func ReadFilmLoop(c *buf.Cursor, entry SubFileEntry) (FilmLoop, error) {
	data, err := ReadPayload(c, entry)
	if err != nil {
		return FilmLoop{}, fmt.Errorf("SCVW: %w", err)
	}
	sc := buf.NewCursor(data, c.Order())
	var fl FilmLoop
	if fl.Size, err = sc.U32BE(); err != nil {
		return fl, truncated("SCVW header", err)
	}
	if fl.FramesOffset, err = sc.U32BE(); err != nil {
		return fl, truncated("SCVW header", err)
	}
	if err := sc.Skip(6); err != nil {
		return fl, truncated("SCVW header", err)
	}
	if fl.ChannelSize, err = sc.U16BE(); err != nil {
		return fl, truncated("SCVW header", err)
	}
	if fl.ChannelSize == 0 {
		return fl, fmt.Errorf("SCVW channel size 0: %w", ErrUnsupported)
	}
	if err := sc.Seek(int64(fl.FramesOffset)); err != nil {
		return fl, truncated("SCVW frames", err)
	}
	end := int64(fl.Size)
	if end > int64(sc.Len()) {
		end = int64(sc.Len())
	}
	for sc.Tell() < end {
		size, err := sc.U16BE()
		if err != nil {
			break
		}
		fl.Frames++
		if size <= 2 {
			continue
		}
		if err := sc.Skip(int(size) - 2); err != nil {
			break
		}
	}
	return fl, nil
}
