package assets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/joshuapare/castkit/archive"
	"github.com/joshuapare/castkit/pkg/types"
)

// DefaultArchives are the archive files shipped with the game, in load
// order. Localised releases differ in file name case.
var DefaultArchives = []string{
	"cddata.cxt",
	"00.cxt",
	"02.dxr",
	"03.dxr",
	"04.dxr",
	"05.dxr",
	"06.dxr",
	"08.dxr",
	"10.dxr",
	"12.dxr",
	"13.dxr",
	"18.dxr",
	"82.dxr",
	"83.dxr",
	"84.dxr",
	"85.dxr",
	"86.dxr",
	"87.dxr",
	"88.dxr",
	"89.dxr",
	"90.dxr",
	"91.dxr",
	"92.dxr",
	"93.dxr",
	"94.dxr",
	"tempplug.cxt",
	"unload.dxr",
}

// ErrNothingLoaded is returned when none of the requested archives could be
// opened.
var ErrNothingLoaded = errors.New("no archive could be loaded")

// Source is an archive held in memory.
type Source struct {
	Name string
	Data []byte
}

// LoadBytes decodes in-memory archives into a library.
func LoadBytes(sources []Source, opts Options) (*Library, *types.Report, error) {
	return load(len(sources), opts, func(i int) (*archive.Archive, string, error) {
		a, err := archive.Open(sources[i].Name, sources[i].Data, opts.archiveOptions())
		return a, sources[i].Name, err
	})
}

// LoadFiles decodes archive files into a library. Archives are named after
// the base name of their path.
func LoadFiles(paths []string, opts Options) (*Library, *types.Report, error) {
	return load(len(paths), opts, func(i int) (*archive.Archive, string, error) {
		a, err := archive.OpenFile(paths[i], opts.archiveOptions())
		return a, filepath.Base(paths[i]), err
	})
}

// LoadDir decodes the named archives found in dir. Each name is tried as
// given and then upper-cased. Archives keep the name they were asked for.
func LoadDir(dir string, names []string, opts Options) (*Library, *types.Report, error) {
	return load(len(names), opts, func(i int) (*archive.Archive, string, error) {
		name := names[i]
		path, err := findArchive(dir, name)
		if err != nil {
			return nil, name, err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, name, err
		}
		a, err := archive.Open(name, data, opts.archiveOptions())
		return a, name, err
	})
}

func findArchive(dir, name string) (string, error) {
	for _, candidate := range []string{name, strings.ToUpper(name)} {
		path := filepath.Join(dir, candidate)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("archive %s in %s: %w", name, dir, os.ErrNotExist)
}

type opened struct {
	a    *archive.Archive
	name string
	err  error
}

// load opens n archives, at most opts.Workers at a time, and merges them in
// index order so the result does not depend on scheduling.
func load(n int, opts Options, open func(i int) (*archive.Archive, string, error)) (*Library, *types.Report, error) {
	log := opts.logger()
	results := make([]opened, n)

	var g errgroup.Group
	g.SetLimit(max(opts.Workers, 1))
	for i := range n {
		g.Go(func() error {
			a, name, err := open(i)
			results[i] = opened{a: a, name: name, err: err}
			return nil
		})
	}
	_ = g.Wait()

	b := NewBuilder(log)
	report := types.NewReport()
	var failures []error
	for _, r := range results {
		if r.err != nil {
			log.Warn("archive skipped", "archive", r.name, "err", r.err)
			report.AddError(types.StageOpen, r.name, 0, 0, "", r.err)
			failures = append(failures, r.err)
			continue
		}
		log.Debug("archive loaded",
			"archive", r.name,
			"images", len(r.a.Images),
			"texts", len(r.a.Texts),
			"issues", len(r.a.Report.Diagnostics))
		b.Add(r.a)
		report.Merge(r.a.Report)
	}

	if n > 0 && len(failures) == n {
		return b.Build(), report, fmt.Errorf("%w: %w", ErrNothingLoaded, errors.Join(failures...))
	}
	return b.Build(), report, nil
}
