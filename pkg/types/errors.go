package types

import (
	"errors"

	"github.com/joshuapare/castkit/internal/ddl"
	"github.com/joshuapare/castkit/internal/format"
)

// -----------------------------------------------------------------------------
// Error taxonomy
// -----------------------------------------------------------------------------

var (
	// ErrArchiveFormat indicates a file without a RIFX/XFIR signature.
	ErrArchiveFormat = format.ErrArchiveFormat
	// ErrTruncated indicates data ended before a structure was complete.
	ErrTruncated = format.ErrTruncated
	// ErrUnresolvedLink indicates a slot outside the sub-file table.
	ErrUnresolvedLink = format.ErrUnresolvedLink
	// ErrBitmapModeUnsupported indicates a bitmap the palette decoder cannot handle.
	ErrBitmapModeUnsupported = format.ErrBitmapModeUnsupported
	// ErrUnsupported indicates a recognised chunk that is not decoded.
	ErrUnsupported = format.ErrUnsupported
	// ErrParse indicates text that matches no database grammar.
	ErrParse = ddl.ErrParse
)

// ErrKind classifies errors so callers can branch on intent rather than text.
type ErrKind int

const (
	ErrKindOther       ErrKind = iota // anything not produced by the decoders
	ErrKindFormat                     // not an archive
	ErrKindCorrupt                    // truncated data or dangling slot
	ErrKindUnsupported                // valid data we do not decode
	ErrKindParse                      // database text grammar mismatch
)

func (k ErrKind) String() string {
	switch k {
	case ErrKindFormat:
		return "format"
	case ErrKindCorrupt:
		return "corrupt"
	case ErrKindUnsupported:
		return "unsupported"
	case ErrKindParse:
		return "parse"
	default:
		return "other"
	}
}

// KindOf classifies err by the sentinel it wraps.
func KindOf(err error) ErrKind {
	switch {
	case err == nil:
		return ErrKindOther
	case errors.Is(err, ErrArchiveFormat):
		return ErrKindFormat
	case errors.Is(err, ErrTruncated), errors.Is(err, ErrUnresolvedLink):
		return ErrKindCorrupt
	case errors.Is(err, ErrBitmapModeUnsupported), errors.Is(err, ErrUnsupported):
		return ErrKindUnsupported
	case errors.Is(err, ErrParse):
		return ErrKindParse
	default:
		return ErrKindOther
	}
}

// SeverityOf maps an error to the severity it is reported with. Whole-file
// failures are critical, lost members are errors, and content that is
// known but skipped is a warning.
func SeverityOf(err error) Severity {
	switch KindOf(err) {
	case ErrKindFormat:
		return SevCritical
	case ErrKindUnsupported:
		return SevWarning
	default:
		return SevError
	}
}
