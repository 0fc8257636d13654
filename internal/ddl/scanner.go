package ddl

import (
	"math"
	"strconv"
)

// scanner is a backtracking cursor over DDL text. Every rule either
// succeeds and leaves pos after what it consumed, or fails and leaves pos
// where it started.
type scanner struct {
	src  string
	pos  int
	far  int
	want string
}

func newScanner(src string) *scanner { return &scanner{src: src} }

func (s *scanner) fail(want string) bool {
	if s.pos >= s.far {
		s.far, s.want = s.pos, want
	}
	return false
}

func (s *scanner) err() error {
	near := s.src[s.far:]
	if len(near) > 16 {
		near = near[:16]
	}
	want := s.want
	if want == "" {
		want = "'['"
	}
	return &ParseError{Pos: s.far, Want: want, Near: near}
}

func (s *scanner) peek() (byte, bool) {
	if s.pos >= len(s.src) {
		return 0, false
	}
	return s.src[s.pos], true
}

func (s *scanner) char(c byte) bool {
	if b, ok := s.peek(); ok && b == c {
		s.pos++
		return true
	}
	return s.fail("'" + string(c) + "'")
}

func (s *scanner) lit(text string) bool {
	if len(s.src)-s.pos >= len(text) && s.src[s.pos:s.pos+len(text)] == text {
		s.pos += len(text)
		return true
	}
	return s.fail("\"" + text + "\"")
}

func (s *scanner) multispace() {
	for {
		b, ok := s.peek()
		if !ok || (b != ' ' && b != '\t' && b != '\r' && b != '\n') {
			return
		}
		s.pos++
	}
}

// commaspace is ',' followed by optional whitespace.
func (s *scanner) commaspace() bool {
	if !s.char(',') {
		return false
	}
	s.multispace()
	return true
}

func isAlnum(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func (s *scanner) alnum1() (string, bool) {
	start := s.pos
	for s.pos < len(s.src) && isAlnum(s.src[s.pos]) {
		s.pos++
	}
	if s.pos == start {
		return "", s.fail("alphanumeric")
	}
	return s.src[start:s.pos], true
}

// int32 reads an optionally signed decimal that fits in 32 bits.
func (s *scanner) int32() (int32, bool) {
	start := s.pos
	neg := false
	if b, ok := s.peek(); ok && (b == '-' || b == '+') {
		neg = b == '-'
		s.pos++
	}
	digits := s.pos
	var v int64
	for s.pos < len(s.src) && s.src[s.pos] >= '0' && s.src[s.pos] <= '9' {
		v = v*10 + int64(s.src[s.pos]-'0')
		if v > math.MaxInt32+1 {
			s.pos = start
			return 0, s.fail("32-bit number")
		}
		s.pos++
	}
	if s.pos == digits {
		s.pos = start
		return 0, s.fail("number")
	}
	if neg {
		v = -v
	}
	if v > math.MaxInt32 {
		s.pos = start
		return 0, s.fail("32-bit number")
	}
	return int32(v), true
}

// tag reads '#' followed by an alphanumeric name.
func (s *scanner) tag() (string, bool) {
	start := s.pos
	if !s.char('#') {
		return "", false
	}
	name, ok := s.alnum1()
	if !ok {
		s.pos = start
		return "", false
	}
	return name, true
}

// key reads the optional tag-or-number before ':'.
func (s *scanner) key() string {
	if t, ok := s.tag(); ok {
		return t
	}
	if n, ok := s.int32(); ok {
		return strconv.Itoa(int(n))
	}
	return ""
}

// keyed reads an optional key, ':' and optional whitespace.
func (s *scanner) keyed() (string, bool) {
	start := s.pos
	k := s.key()
	if !s.char(':') {
		s.pos = start
		return "", false
	}
	s.multispace()
	return k, true
}

// tagKeyed is keyed with a mandatory tag.
func (s *scanner) tagKeyed() (string, bool) {
	start := s.pos
	k, ok := s.tag()
	if !ok || !s.char(':') {
		s.pos = start
		return "", false
	}
	s.multispace()
	return k, true
}

// list matches zero or more elements separated by commaspace. A separator
// not followed by an element is left unconsumed.
func (s *scanner) list(elem func() bool) {
	start := s.pos
	if !elem() {
		s.pos = start
		return
	}
	for {
		mark := s.pos
		if !s.commaspace() || !elem() {
			s.pos = mark
			return
		}
	}
}

// bracketed matches '[' body ']', restoring the position on failure.
func (s *scanner) bracketed(body func() bool) bool {
	start := s.pos
	if !s.char('[') || !body() || !s.char(']') {
		s.pos = start
		return false
	}
	return true
}

func (s *scanner) try(rule func() bool) bool {
	start := s.pos
	if !rule() {
		s.pos = start
		return false
	}
	return true
}
