package ddl

// ParseValue parses one value at the start of text. Anything after the
// value is ignored.
func ParseValue(text string) (Value, error) {
	return parseWith(text, (*scanner).value)
}

// ParseArray parses text with the key/value list grammar.
func ParseArray(text string) (Value, error) {
	return parseWith(text, (*scanner).array)
}

// ParseArraySingle parses text with the plain list grammar.
func ParseArraySingle(text string) (Value, error) {
	return parseWith(text, (*scanner).arraySingle)
}

func parseWith(text string, rule func(*scanner) (Value, bool)) (Value, error) {
	s := newScanner(text)
	v, ok := rule(s)
	if !ok {
		return nil, s.err()
	}
	return v, nil
}

// value tries each alternative in turn: number, tag, point, key/value
// list, plain list, quoted string, bool.
func (s *scanner) value() (Value, bool) {
	if n, ok := s.int32(); ok {
		return Number(n), true
	}
	if t, ok := s.tag(); ok {
		return Tag(t), true
	}
	if p, ok := s.point(); ok {
		return p, true
	}
	if v, ok := s.array(); ok {
		return v, true
	}
	if v, ok := s.arraySingle(); ok {
		return v, true
	}
	if v, ok := s.quoted(); ok {
		return String(v), true
	}
	if s.lit("TRUE") {
		return Bool(true), true
	}
	if s.lit("FALSE") {
		return Bool(false), true
	}
	return nil, s.fail("value")
}

// point matches point(x, y).
func (s *scanner) point() (Point, bool) {
	var p Point
	ok := s.try(func() bool {
		var okX, okY bool
		if !s.lit("point(") {
			return false
		}
		if p.X, okX = s.int32(); !okX || !s.commaspace() {
			return false
		}
		if p.Y, okY = s.int32(); !okY {
			return false
		}
		return s.char(')')
	})
	return p, ok
}

// pair matches [x, y].
func (s *scanner) pair() (Point, bool) {
	var p Point
	ok := s.bracketed(func() bool {
		var okX, okY bool
		if p.X, okX = s.int32(); !okX || !s.commaspace() {
			return false
		}
		p.Y, okY = s.int32()
		return okY
	})
	return p, ok
}

func (s *scanner) quoted() (string, bool) {
	var text string
	ok := s.try(func() bool {
		if !s.char('"') {
			return false
		}
		text, _ = s.alnum1()
		return s.char('"')
	})
	return text, ok
}

func (s *scanner) keyValue() (KeyValue, bool) {
	k, ok := s.keyed()
	if !ok {
		return KeyValue{}, false
	}
	mark := s.pos
	v, ok := s.value()
	if !ok {
		s.pos = mark
		v = Nothing{}
	}
	return KeyValue{Key: k, Value: v}, true
}

// array matches a key/value list. An empty list is Nothing.
func (s *scanner) array() (Value, bool) {
	var out Array
	ok := s.bracketed(func() bool {
		s.list(func() bool {
			kv, ok := s.keyValue()
			if ok {
				out = append(out, kv)
			}
			return ok
		})
		return true
	})
	if !ok {
		return nil, false
	}
	if len(out) == 0 {
		return Nothing{}, true
	}
	return out, true
}

// arraySingle matches a plain value list. An empty list is Nothing.
func (s *scanner) arraySingle() (Value, bool) {
	var out ArraySingle
	ok := s.bracketed(func() bool {
		s.list(func() bool {
			v, ok := s.value()
			if ok {
				out = append(out, v)
			}
			return ok
		})
		return true
	})
	if !ok {
		return nil, false
	}
	if len(out) == 0 {
		return Nothing{}, true
	}
	return out, true
}
