package format

import "errors"

var (
	// ErrArchiveFormat indicates the file does not start with a known Shockwave signature.
	ErrArchiveFormat = errors.New("format: not a shockwave archive")
	// ErrTruncated indicates the data ended before a structure was complete.
	ErrTruncated = errors.New("format: truncated read")
	// ErrUnresolvedLink indicates a slot number outside the sub-file table.
	ErrUnresolvedLink = errors.New("format: unresolved slot")
	// ErrBitmapModeUnsupported indicates a bitmap bit depth the decoder cannot handle.
	ErrBitmapModeUnsupported = errors.New("format: unsupported bitmap mode")
	// ErrUnsupported indicates a chunk or feature that is recognised but not decoded.
	ErrUnsupported = errors.New("format: unsupported feature")
)
