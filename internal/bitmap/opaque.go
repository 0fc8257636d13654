package bitmap

import (
	_ "embed"
	"fmt"
	"slices"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed opaque.yaml
var defaultOpaqueYAML []byte

// OpaqueTable lists, per archive, the members whose palette index 255 is a
// real colour. Archive names compare case-insensitively. The zero value and
// a nil table mark nothing as opaque.
type OpaqueTable struct {
	members map[string]map[uint32]struct{}
}

// ParseOpaqueTable reads a YAML mapping of archive name to member numbers.
func ParseOpaqueTable(data []byte) (*OpaqueTable, error) {
	var raw map[string][]uint32
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("opaque table: %w", err)
	}
	t := &OpaqueTable{members: make(map[string]map[uint32]struct{}, len(raw))}
	for name, nums := range raw {
		t.Add(name, nums...)
	}
	return t, nil
}

var defaultOpaque = sync.OnceValue(func() *OpaqueTable {
	t, err := ParseOpaqueTable(defaultOpaqueYAML)
	if err != nil {
		panic(err)
	}
	return t
})

// DefaultOpaqueTable returns the table for the shipped game archives. The
// returned value is shared and must not be modified.
func DefaultOpaqueTable() *OpaqueTable { return defaultOpaque() }

// Add marks members of archive as opaque.
func (t *OpaqueTable) Add(archive string, numbers ...uint32) {
	if t.members == nil {
		t.members = make(map[string]map[uint32]struct{})
	}
	key := strings.ToLower(archive)
	set := t.members[key]
	if set == nil {
		set = make(map[uint32]struct{}, len(numbers))
		t.members[key] = set
	}
	for _, n := range numbers {
		set[n] = struct{}{}
	}
}

// IsOpaque reports whether member number of archive is opaque.
func (t *OpaqueTable) IsOpaque(archive string, number uint32) bool {
	if t == nil {
		return false
	}
	_, ok := t.members[strings.ToLower(archive)][number]
	return ok
}

// Members returns the opaque member numbers of archive in ascending order.
func (t *OpaqueTable) Members(archive string) []uint32 {
	if t == nil {
		return nil
	}
	set := t.members[strings.ToLower(archive)]
	out := make([]uint32, 0, len(set))
	for n := range set {
		out = append(out, n)
	}
	slices.Sort(out)
	return out
}
