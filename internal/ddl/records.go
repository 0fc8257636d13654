package ddl

import "strings"

// Record is a decoded database text member.
type Record interface {
	RecordID() int32
}

// HillType distinguishes the two hill sizes a map object can carry.
type HillType uint8

const (
	SmallHill HillType = iota
	BigHill
)

func (h HillType) String() string {
	if h == BigHill {
		return "BigHill"
	}
	return "SmallHill"
}

// InnerKind names a map object property.
type InnerKind uint8

const (
	InnerShow InnerKind = iota
	InnerHillType
	InnerRadius
	InnerDirection
)

var innerKindNames = [...]string{"Show", "HillType", "InnerRadius", "Direction"}

func (k InnerKind) String() string {
	if int(k) < len(innerKindNames) {
		return innerKindNames[k]
	}
	return "unknown"
}

// InnerValue is one recognised property of a map object. Hill is only
// meaningful for InnerHillType; Value holds the number of the others.
type InnerValue struct {
	Kind  InnerKind `json:"kind"`
	Value int32     `json:"value,omitempty"`
	Hill  HillType  `json:"hill,omitempty"`
}

// MapObject places an object on a map.
type MapObject struct {
	ID    int32        `json:"id"`
	Point Point        `json:"point"`
	Inner []InnerValue `json:"inner"`
}

// MapRecord describes one drivable map.
type MapRecord struct {
	ID       int32       `json:"id"`
	Objects  []MapObject `json:"objects"`
	Image    string      `json:"image"`
	Topology string      `json:"topology"`
}

// PartNew is one attachment point a part adds to the car.
type PartNew struct {
	Tag    string `json:"tag"`
	Point1 Point  `json:"point1"`
	Point2 Point  `json:"point2"`
}

// PartRecord describes one car part.
type PartRecord struct {
	ID          int32            `json:"id"`
	Master      int32            `json:"master"`
	MorphsTo    []int32          `json:"morphsTo"`
	Description string           `json:"description"`
	JunkView    string           `json:"junkView"`
	UseView     string           `json:"useView"`
	UseView2    string           `json:"useView2"`
	Offset      Point            `json:"offset"`
	Properties  map[string]int32 `json:"properties"`
	Requires    []string         `json:"requires"`
	Covers      []string         `json:"covers"`
	New         []PartNew        `json:"new"`
}

func (m *MapRecord) RecordID() int32  { return m.ID }
func (p *PartRecord) RecordID() int32 { return p.ID }

// ParseRecord decodes a database text member. The map shape is tried first
// and the part shape only when the map shape fails as a whole. Leading
// whitespace is skipped and text after the closing bracket is ignored.
func ParseRecord(text string) (Record, error) {
	s := newScanner(strings.TrimLeft(text, " \t\r\n"))
	if m, ok := s.mapRecord(); ok {
		return m, nil
	}
	s.pos = 0
	if p, ok := s.partRecord(); ok {
		return p, nil
	}
	return nil, s.err()
}

// ParseMapRecord decodes text with the map shape only.
func ParseMapRecord(text string) (*MapRecord, error) {
	s := newScanner(strings.TrimLeft(text, " \t\r\n"))
	m, ok := s.mapRecord()
	if !ok {
		return nil, s.err()
	}
	return m, nil
}

// ParsePartRecord decodes text with the part shape only.
func ParsePartRecord(text string) (*PartRecord, error) {
	s := newScanner(strings.TrimLeft(text, " \t\r\n"))
	p, ok := s.partRecord()
	if !ok {
		return nil, s.err()
	}
	return p, nil
}

// fields runs steps in order, separated by commaspace, inside brackets.
func (s *scanner) fields(steps ...func() bool) bool {
	return s.bracketed(func() bool {
		for i, step := range steps {
			if i > 0 && !s.commaspace() {
				return false
			}
			if !step() {
				return false
			}
		}
		return true
	})
}

func (s *scanner) mapRecord() (*MapRecord, bool) {
	m := &MapRecord{}
	ok := s.fields(
		func() (ok bool) { m.ID, ok = s.keyNumber(); return },
		func() (ok bool) { m.Objects, ok = s.keyObjects(); return },
		func() (ok bool) { m.Image, ok = s.keyString(); return },
		func() (ok bool) { m.Topology, ok = s.keyString(); return },
	)
	if !ok {
		return nil, false
	}
	return m, true
}

func (s *scanner) partRecord() (*PartRecord, bool) {
	p := &PartRecord{}
	ok := s.fields(
		func() (ok bool) { p.ID, ok = s.keyNumber(); return },
		func() (ok bool) { p.Master, ok = s.keyNumber(); return },
		func() (ok bool) { p.MorphsTo, ok = s.keyNumbers(); return },
		func() (ok bool) { p.Description, ok = s.keyString(); return },
		func() (ok bool) { p.JunkView, ok = s.keyString(); return },
		func() (ok bool) { p.UseView, ok = s.keyString(); return },
		func() (ok bool) { p.UseView2, ok = s.keyString(); return },
		func() (ok bool) { p.Offset, ok = s.keyPair(); return },
		func() (ok bool) { p.Properties, ok = s.keyProperties(); return },
		func() (ok bool) { p.Requires, ok = s.keyTags(); return },
		func() (ok bool) { p.Covers, ok = s.keyTags(); return },
		func() (ok bool) { p.New, ok = s.keyNew(); return },
	)
	if !ok {
		return nil, false
	}
	return p, true
}

// keyNumber matches key: number.
func (s *scanner) keyNumber() (int32, bool) {
	start := s.pos
	if _, ok := s.keyed(); !ok {
		return 0, false
	}
	n, ok := s.int32()
	if !ok {
		s.pos = start
	}
	return n, ok
}

// keyString matches key: "string".
func (s *scanner) keyString() (string, bool) {
	start := s.pos
	if _, ok := s.keyed(); !ok {
		return "", false
	}
	v, ok := s.quoted()
	if !ok {
		s.pos = start
	}
	return v, ok
}

// keyPair matches key: [x, y].
func (s *scanner) keyPair() (Point, bool) {
	start := s.pos
	if _, ok := s.keyed(); !ok {
		return Point{}, false
	}
	p, ok := s.pair()
	if !ok {
		s.pos = start
	}
	return p, ok
}

// keyNumbers matches #tag: number or #tag: [number, ...].
func (s *scanner) keyNumbers() ([]int32, bool) {
	start := s.pos
	if _, ok := s.tagKeyed(); !ok {
		return nil, false
	}
	var out []int32
	if s.bracketed(func() bool {
		s.list(func() bool {
			s.multispace()
			n, ok := s.int32()
			if ok {
				out = append(out, n)
			}
			return ok
		})
		return true
	}) {
		return out, true
	}
	if n, ok := s.int32(); ok {
		return []int32{n}, true
	}
	s.pos = start
	return nil, false
}

// keyProperties matches key: [key: number, ...]. A bare number stands for
// an empty set.
func (s *scanner) keyProperties() (map[string]int32, bool) {
	start := s.pos
	if _, ok := s.keyed(); !ok {
		return nil, false
	}
	props := make(map[string]int32)
	if s.bracketed(func() bool {
		s.list(func() bool {
			mark := s.pos
			k, ok := s.keyed()
			if !ok {
				return false
			}
			n, ok := s.int32()
			if !ok {
				s.pos = mark
				return false
			}
			props[k] = n
			return true
		})
		return true
	}) {
		return props, true
	}
	if _, ok := s.int32(); ok {
		return props, true
	}
	s.pos = start
	return nil, false
}

// keyTags matches #tag: [#a, #b, ...]. A bare number stands for an empty
// list.
func (s *scanner) keyTags() ([]string, bool) {
	start := s.pos
	if _, ok := s.tagKeyed(); !ok {
		return nil, false
	}
	var out []string
	if s.bracketed(func() bool {
		s.multispace()
		s.list(func() bool {
			t, ok := s.tag()
			if ok {
				out = append(out, t)
			}
			return ok
		})
		return true
	}) {
		return out, true
	}
	if _, ok := s.int32(); ok {
		return nil, true
	}
	s.pos = start
	return nil, false
}

// keyNew matches #tag: [[#t, [x, y], [x, y], ...], ...]. Each entry may
// also be wrapped in its own brackets. A bare number stands for an empty
// list.
func (s *scanner) keyNew() ([]PartNew, bool) {
	start := s.pos
	if _, ok := s.tagKeyed(); !ok {
		return nil, false
	}
	var out []PartNew
	entry := func() bool {
		var n PartNew
		ok := s.try(func() bool {
			var ok bool
			if n.Tag, ok = s.tag(); !ok || !s.commaspace() {
				return false
			}
			if n.Point1, ok = s.pair(); !ok || !s.commaspace() {
				return false
			}
			n.Point2, ok = s.pair()
			return ok
		})
		if ok {
			out = append(out, n)
		}
		return ok
	}
	group := func() bool {
		return s.bracketed(func() bool {
			s.list(func() bool {
				if entry() {
					return true
				}
				return s.bracketed(entry)
			})
			return true
		})
	}
	if s.bracketed(func() bool {
		s.list(group)
		return true
	}) {
		return out, true
	}
	out = nil
	if _, ok := s.int32(); ok {
		return nil, true
	}
	s.pos = start
	return nil, false
}

// keyObjects matches #tag: [[id, point(x, y), [props]], ...].
func (s *scanner) keyObjects() ([]MapObject, bool) {
	start := s.pos
	if _, ok := s.tagKeyed(); !ok {
		return nil, false
	}
	var out []MapObject
	if !s.bracketed(func() bool {
		s.list(func() bool {
			obj, ok := s.mapObject()
			if ok {
				out = append(out, obj)
			}
			return ok
		})
		return true
	}) {
		s.pos = start
		return nil, false
	}
	return out, true
}

func (s *scanner) mapObject() (MapObject, bool) {
	var obj MapObject
	ok := s.bracketed(func() bool {
		var ok bool
		if obj.ID, ok = s.int32(); !ok || !s.commaspace() {
			return false
		}
		if obj.Point, ok = s.point(); !ok {
			return false
		}
		mark := s.pos
		if s.commaspace() {
			if v, ok := s.array(); ok {
				obj.Inner = innerValues(v)
			} else {
				s.pos = mark
			}
		}
		return true
	})
	return obj, ok
}

// innerValues keeps the recognised properties of an object, in order.
func innerValues(v Value) []InnerValue {
	arr, ok := v.(Array)
	if !ok {
		return nil
	}
	var out []InnerValue
	for _, kv := range arr {
		switch kv.Key {
		case "Show", "InnerRadius", "Direction":
			n, ok := kv.Value.(Number)
			if !ok {
				continue
			}
			kind := InnerShow
			switch kv.Key {
			case "InnerRadius":
				kind = InnerRadius
			case "Direction":
				kind = InnerDirection
			}
			out = append(out, InnerValue{Kind: kind, Value: int32(n)})
		case "HillType":
			t, ok := kv.Value.(Tag)
			if !ok {
				continue
			}
			hill := SmallHill
			if t == "BigHill" {
				hill = BigHill
			}
			out = append(out, InnerValue{Kind: InnerHillType, Hill: hill})
		}
	}
	return out
}
