package assets

import (
	"maps"
	"slices"
	"strings"

	"github.com/joshuapare/castkit/archive"
	"github.com/joshuapare/castkit/internal/ddl"
)

type (
	Image      = archive.Image
	Text       = archive.Text
	PartRecord = ddl.PartRecord
	MapRecord  = ddl.MapRecord
	AnimChart  = ddl.AnimChart
)

// Kind is the asset kind of a member listed by Library.Members.
type Kind uint8

const (
	KindImage Kind = iota
	KindText
)

func (k Kind) String() string {
	if k == KindText {
		return "text"
	}
	return "image"
}

// Member is one asset of an archive.
type Member struct {
	Number uint32
	Name   string
	Kind   Kind
}

// Library holds the decoded assets of every loaded archive.
type Library struct {
	archives map[string]*archiveAssets
	parts    map[int32]*PartRecord
	maps     map[int32]*MapRecord
}

type archiveAssets struct {
	name       string
	images     map[uint32]*Image
	texts      map[uint32]*Text
	charts     map[uint32]*AnimChart
	imageNames map[string]uint32
	textNames  map[string]uint32
}

func newArchiveAssets(a *archive.Archive) *archiveAssets {
	aa := &archiveAssets{
		name:       a.Name,
		images:     a.Images,
		texts:      a.Texts,
		charts:     a.AnimCharts,
		imageNames: make(map[string]uint32),
		textNames:  make(map[string]uint32),
	}
	for _, n := range slices.Sorted(maps.Keys(a.Images)) {
		if name := a.Images[n].Name; name != "" {
			if _, ok := aa.imageNames[name]; !ok {
				aa.imageNames[name] = n
			}
		}
	}
	for _, n := range slices.Sorted(maps.Keys(a.Texts)) {
		if name := a.Texts[n].Name; name != "" {
			if _, ok := aa.textNames[name]; !ok {
				aa.textNames[name] = n
			}
		}
	}
	return aa
}

func archiveKey(name string) string { return strings.ToLower(name) }

func (l *Library) archive(name string) *archiveAssets {
	if l == nil {
		return nil
	}
	return l.archives[archiveKey(name)]
}

func resolve(key Key, names map[string]uint32) (uint32, bool) {
	if !key.byName {
		return key.number, true
	}
	n, ok := names[key.name]
	return n, ok
}

// GetImage returns the decoded image selected by key in the named archive.
func (l *Library) GetImage(archiveName string, key Key) (*Image, bool) {
	aa := l.archive(archiveName)
	if aa == nil {
		return nil, false
	}
	n, ok := resolve(key, aa.imageNames)
	if !ok {
		return nil, false
	}
	img, ok := aa.images[n]
	return img, ok
}

// GetText returns the text selected by key in the named archive.
func (l *Library) GetText(archiveName string, key Key) (string, bool) {
	aa := l.archive(archiveName)
	if aa == nil {
		return "", false
	}
	n, ok := resolve(key, aa.textNames)
	if !ok {
		return "", false
	}
	t, ok := aa.texts[n]
	if !ok {
		return "", false
	}
	return t.Text, true
}

// GetAnimChart returns the parsed animation chart of the text member
// selected by key.
func (l *Library) GetAnimChart(archiveName string, key Key) (*AnimChart, bool) {
	aa := l.archive(archiveName)
	if aa == nil {
		return nil, false
	}
	n, ok := resolve(key, aa.textNames)
	if !ok {
		return nil, false
	}
	c, ok := aa.charts[n]
	return c, ok
}

// GetPartRecord returns the part record with the given id.
func (l *Library) GetPartRecord(id int32) (*PartRecord, bool) {
	if l == nil {
		return nil, false
	}
	p, ok := l.parts[id]
	return p, ok
}

// GetMapRecord returns the map record with the given id.
func (l *Library) GetMapRecord(id int32) (*MapRecord, bool) {
	if l == nil {
		return nil, false
	}
	m, ok := l.maps[id]
	return m, ok
}

// Archives returns the names of the loaded archives, sorted.
func (l *Library) Archives() []string {
	if l == nil {
		return nil
	}
	out := make([]string, 0, len(l.archives))
	for _, aa := range l.archives {
		out = append(out, aa.name)
	}
	slices.Sort(out)
	return out
}

// Members lists the images and texts of an archive ordered by member
// number. Nil when the archive is not loaded.
func (l *Library) Members(archiveName string) []Member {
	aa := l.archive(archiveName)
	if aa == nil {
		return nil
	}
	out := make([]Member, 0, len(aa.images)+len(aa.texts))
	for n, img := range aa.images {
		out = append(out, Member{Number: n, Name: img.Name, Kind: KindImage})
	}
	for n, t := range aa.texts {
		out = append(out, Member{Number: n, Name: t.Name, Kind: KindText})
	}
	slices.SortFunc(out, func(a, b Member) int {
		if a.Number != b.Number {
			if a.Number < b.Number {
				return -1
			}
			return 1
		}
		return int(a.Kind) - int(b.Kind)
	})
	return out
}

// PartIDs returns every part record id in ascending order.
func (l *Library) PartIDs() []int32 {
	if l == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(l.parts))
}

// MapIDs returns every map record id in ascending order.
func (l *Library) MapIDs() []int32 {
	if l == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(l.maps))
}
