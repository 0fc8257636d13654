package assets

import (
	"log/slog"
	"maps"
	"slices"

	"github.com/joshuapare/castkit/archive"
)

// Builder assembles a Library from decoded archives. Archives must be added
// in load order: for part and map records the last archive defining an id
// wins. A Builder is not safe for concurrent use.
type Builder struct {
	log *slog.Logger
	lib *Library
}

// NewBuilder returns an empty builder. A nil logger discards output.
func NewBuilder(logger *slog.Logger) *Builder {
	if logger == nil {
		logger = discard
	}
	return &Builder{
		log: logger,
		lib: &Library{
			archives: make(map[string]*archiveAssets),
			parts:    make(map[int32]*PartRecord),
			maps:     make(map[int32]*MapRecord),
		},
	}
}

// Add merges the contents of a. An archive whose name matches an earlier one
// (ignoring case) replaces its images and texts.
func (b *Builder) Add(a *archive.Archive) {
	key := archiveKey(a.Name)
	if prev, ok := b.lib.archives[key]; ok {
		b.log.Warn("archive loaded twice, replacing", "archive", a.Name, "previous", prev.name)
	}
	b.lib.archives[key] = newArchiveAssets(a)

	for _, id := range slices.Sorted(maps.Keys(a.Parts)) {
		if _, ok := b.lib.parts[id]; ok {
			b.log.Debug("part record overridden", "id", id, "archive", a.Name)
		}
		b.lib.parts[id] = a.Parts[id]
	}
	for _, id := range slices.Sorted(maps.Keys(a.Maps)) {
		if _, ok := b.lib.maps[id]; ok {
			b.log.Debug("map record overridden", "id", id, "archive", a.Name)
		}
		b.lib.maps[id] = a.Maps[id]
	}
}

// Build returns the library. The builder must not be used afterwards.
func (b *Builder) Build() *Library {
	lib := b.lib
	b.lib = nil
	return lib
}
