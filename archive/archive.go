package archive

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/joshuapare/castkit/internal/bitmap"
	"github.com/joshuapare/castkit/internal/buf"
	"github.com/joshuapare/castkit/internal/ddl"
	"github.com/joshuapare/castkit/internal/format"
	"github.com/joshuapare/castkit/internal/mmfile"
	"github.com/joshuapare/castkit/pkg/types"
)

// Name suffixes that route styled text to the record parsers.
const (
	recordSuffix    = "DB"
	animChartSuffix = "AnimChart"
)

// Archive is one decoded archive file.
type Archive struct {
	// Name is the file name used for opaque lookups and diagnostics.
	Name      string
	Container *format.Container
	Links     *format.Links
	// Members lists every decoded cast member by library, then number.
	Members []*format.CastMember

	Images     map[uint32]*Image
	Texts      map[uint32]*Text
	AnimCharts map[uint32]*ddl.AnimChart
	FilmLoops  map[uint32]format.FilmLoop
	Parts      map[int32]*ddl.PartRecord
	Maps       map[int32]*ddl.MapRecord

	Report *types.Report
}

// OpenFile maps path read-only and decodes it. The archive is named after
// the file's base name.
func OpenFile(path string, opts Options) (*Archive, error) {
	data, release, err := mmfile.Map(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = release() }()
	return Open(filepath.Base(path), data, opts)
}

// Open decodes an archive held in memory. It fails only when the header,
// memory map or link tables cannot be read; member-level failures are
// recorded in the returned archive's Report.
func Open(name string, data []byte, opts Options) (*Archive, error) {
	container, cur, err := format.ParseContainer(data)
	if err != nil {
		return nil, fmt.Errorf("archive %s: %w", name, err)
	}
	links, err := format.ResolveLinks(cur, container.Entries)
	if err != nil {
		return nil, fmt.Errorf("archive %s: %w", name, err)
	}

	d := &decoder{
		a: &Archive{
			Name:       name,
			Container:  container,
			Links:      links,
			Images:     make(map[uint32]*Image),
			Texts:      make(map[uint32]*Text),
			AnimCharts: make(map[uint32]*ddl.AnimChart),
			FilmLoops:  make(map[uint32]format.FilmLoop),
			Parts:      make(map[int32]*ddl.PartRecord),
			Maps:       make(map[int32]*ddl.MapRecord),
			Report:     types.NewReport(),
		},
		cur:     cur,
		log:     opts.logger().With("archive", name),
		opaque:  opts.opaque(),
		palette: opts.palette(),
	}
	d.log.Debug("archive opened",
		"endianness", container.Header.Endianness,
		"subfiles", len(container.Entries),
		"libraries", len(links.Libraries))

	for _, num := range links.LibraryNumbers() {
		refs, err := format.ReadCastLibrary(cur, container.Entries, links.Libraries[num])
		if err != nil {
			d.fail(types.StageLinks, format.MemberRef{Library: num}, "", err)
		}
		for _, ref := range refs {
			d.member(ref)
		}
	}
	return d.a, nil
}

// Member returns the first decoded member with the given number.
func (a *Archive) Member(number uint32) (*format.CastMember, bool) {
	for _, m := range a.Members {
		if m.Number == number {
			return m, true
		}
	}
	return nil, false
}

type decoder struct {
	a       *Archive
	cur     *buf.Cursor
	log     *slog.Logger
	opaque  *bitmap.OpaqueTable
	palette *bitmap.Palette
}

func (d *decoder) fail(stage types.Stage, ref format.MemberRef, name string, err error) {
	d.log.Warn("member skipped",
		"stage", stage,
		"member", ref.Number,
		"slot", ref.Slot,
		"name", name,
		"err", err)
	d.a.Report.AddError(stage, d.a.Name, ref.Number, ref.Slot, name, err)
}

func (d *decoder) info(stage types.Stage, m *format.CastMember, issue string) {
	d.a.Report.Add(types.Diagnostic{
		Severity: types.SevInfo,
		Stage:    stage,
		Archive:  d.a.Name,
		Member:   m.Number,
		Slot:     m.Slot,
		Name:     m.Name,
		Issue:    issue,
	})
}

func (d *decoder) member(ref format.MemberRef) {
	table := d.a.Container.Entries
	m, err := format.ReadMember(d.cur, table, ref)
	if err != nil {
		d.fail(types.StageMember, ref, "", err)
		return
	}
	d.a.Members = append(d.a.Members, m)
	if m.AnimChart {
		d.log.Debug("animation chart marker in member trailer", "member", m.Number, "name", m.Name)
	}

	for _, slot := range d.a.Links.Linked[ref.Slot] {
		entry, err := table.Entry(slot)
		if err != nil {
			d.fail(types.StageMember, ref, m.Name, err)
			continue
		}
		tag := entry.Tag.String()
		switch kind := classifyLink(m.Header.Type, tag); kind {
		case linkBitmapPixels:
			d.bitmap(m, entry)
		case linkStyledText:
			d.text(m, entry)
		case linkFilmLoop:
			d.filmLoop(m, entry)
		case linkSoundHeader, linkSoundSamples, linkSound, linkCuePoints:
			d.log.Debug("sound chunk skipped", "member", m.Number, "kind", kind)
		case linkUnhandled:
			d.log.Debug("unhandled linked chunk",
				"member", m.Number,
				"type", m.Header.Type,
				"tag", tag)
			d.info(types.StageDispatch, m, fmt.Sprintf("unhandled %s chunk for %s member", tag, m.Header.Type))
		}
	}
}

func (d *decoder) bitmap(m *format.CastMember, entry format.SubFileEntry) {
	if m.Bitmap == nil {
		d.fail(types.StageBitmap, m.MemberRef, m.Name, fmt.Errorf("no bitmap metadata: %w", format.ErrTruncated))
		return
	}
	payload, err := format.ReadPayload(d.cur, entry)
	if err != nil {
		d.fail(types.StageBitmap, m.MemberRef, m.Name, err)
		return
	}
	opaque := d.opaque.IsOpaque(d.a.Name, m.Number)
	res, err := bitmap.Decode(*m.Bitmap, payload, opaque, d.palette)
	if err != nil {
		d.fail(types.StageBitmap, m.MemberRef, m.Name, err)
		return
	}
	if !res.Complete() {
		d.log.Debug("bitmap payload ended early",
			"member", m.Number, "written", res.Written, "pixels", len(res.RGBA)/4)
		d.info(types.StageBitmap, m, fmt.Sprintf("payload ended after %d of %d pixels", res.Written, len(res.RGBA)/4))
	}
	if _, dup := d.a.Images[m.Number]; dup {
		d.log.Debug("duplicate image number", "member", m.Number, "library", m.Library)
		return
	}
	d.a.Images[m.Number] = &Image{
		Number:   m.Number,
		Name:     m.Name,
		Width:    int(m.Bitmap.Width),
		Height:   int(m.Bitmap.Height),
		RGBA:     res.RGBA,
		RegX:     int(m.Bitmap.RegX),
		RegY:     int(m.Bitmap.RegY),
		Opaque:   opaque,
		Mode:     res.Mode,
		Metadata: *m.Bitmap,
	}
}

func (d *decoder) text(m *format.CastMember, entry format.SubFileEntry) {
	raw, err := format.ReadStyledText(d.cur, entry)
	if err != nil {
		d.fail(types.StageText, m.MemberRef, m.Name, err)
		return
	}
	text, err := format.DecodeString(raw)
	if err != nil {
		d.fail(types.StageText, m.MemberRef, m.Name, err)
		return
	}

	switch {
	case strings.HasSuffix(m.Name, recordSuffix):
		d.record(m, text)
		return
	case strings.HasSuffix(m.Name, animChartSuffix):
		chart, err := ddl.ParseAnimChart(text)
		if err != nil {
			d.log.Warn("animation chart not parsed", "member", m.Number, "name", m.Name, "err", err)
			d.a.Report.Add(types.Diagnostic{
				Severity: types.SevWarning,
				Stage:    types.StageAnimChart,
				Archive:  d.a.Name,
				Member:   m.Number,
				Slot:     m.Slot,
				Name:     m.Name,
				Issue:    err.Error(),
				Err:      err,
			})
		} else {
			d.a.AnimCharts[m.Number] = chart
		}
	}

	if _, dup := d.a.Texts[m.Number]; dup {
		d.log.Debug("duplicate text number", "member", m.Number, "library", m.Library)
		return
	}
	d.a.Texts[m.Number] = &Text{Number: m.Number, Name: m.Name, Text: text}
}

func (d *decoder) record(m *format.CastMember, text string) {
	rec, err := ddl.ParseRecord(text)
	if err != nil {
		d.fail(types.StageRecord, m.MemberRef, m.Name, err)
		return
	}
	switch r := rec.(type) {
	case *ddl.MapRecord:
		d.a.Maps[r.ID] = r
	case *ddl.PartRecord:
		d.a.Parts[r.ID] = r
	}
}

func (d *decoder) filmLoop(m *format.CastMember, entry format.SubFileEntry) {
	fl, err := format.ReadFilmLoop(d.cur, entry)
	if err != nil {
		d.fail(types.StageFilmLoop, m.MemberRef, m.Name, err)
		return
	}
	d.log.Debug("film loop", "member", m.Number, "frames", fl.Frames, "channel_size", fl.ChannelSize)
	d.a.FilmLoops[m.Number] = fl
}
