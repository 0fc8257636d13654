package ddl

import (
	"errors"
	"fmt"
)

// ErrParse is wrapped by every *ParseError.
var ErrParse = errors.New("ddl: parse error")

// ParseError reports the furthest position the parser reached before every
// alternative failed.
type ParseError struct {
	Pos  int
	Want string
	Near string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("ddl: expected %s at offset %d near %q", e.Want, e.Pos, e.Near)
}

func (e *ParseError) Unwrap() error { return ErrParse }
