package assets

import "strconv"

// Key selects a member of an archive either by member number or by name.
type Key struct {
	number uint32
	name   string
	byName bool
}

// Number selects the member with the given cast member number.
func Number(n uint32) Key { return Key{number: n} }

// Name selects the lowest-numbered member with the given name. Names are
// compared exactly.
func Name(s string) Key { return Key{name: s, byName: true} }

// ParseKey reads s as a member number when it is a decimal integer and as a
// name otherwise.
func ParseKey(s string) Key {
	if n, err := strconv.ParseUint(s, 10, 32); err == nil {
		return Number(uint32(n))
	}
	return Name(s)
}

func (k Key) String() string {
	if k.byName {
		return strconv.Quote(k.name)
	}
	return "#" + strconv.FormatUint(uint64(k.number), 10)
}
