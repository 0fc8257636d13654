package archive

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/castkit/internal/bitmap"
	"github.com/joshuapare/castkit/internal/format"
	"github.com/joshuapare/castkit/internal/testutil"
	"github.com/joshuapare/castkit/pkg/types"
)

const partDB = `[#partId:12, #master:0, #MorphsTo:[13, 14], #description:"x", #junkView:"12j", #UseView:"12u", #UseView2:"", #offset:[1, -2], #Properties:[#weight:2], #Requires:[#a], #covers:[], #new:[[#Bat, [1, 2], [3, 4]]]]`

const mapDB = `[#MapId: 3, #objects: [[31, point(146,392), [#InnerRadius:50]]], #MapImage: "30b003v0", #Topology: "30t003v0"]`

// fixture builds an archive with one member of each supported kind. Member
// numbers: 1 bitmap, 2 text, 3 part record, 4 map record, 5 broken record,
// 6 animation chart, 7 film loop.
func fixture(mode format.Endianness) []byte {
	w := testutil.NewArchiveWriter(mode)

	pixels := w.AddChunk(format.TagBitmapData, []byte{0xfe, 0x00})
	img := w.AddMember(testutil.Member{
		Type:    format.CastBitmap,
		Name:    "skylt",
		Trailer: testutil.BitmapTrailer(testutil.Bitmap{PosX: 5, PosY: 5, Width: 3, Height: 1, RegX: 1, RegY: 0, BitDepth: 8}),
	})
	w.Link(pixels, img, format.TagBitmapData)
	thumb := w.AddChunk("Thum", []byte{1, 2, 3})
	w.Link(thumb, img, "Thum")

	text := func(name, body string) uint32 {
		stxt := w.AddChunk(format.TagStyledText, testutil.STXTPayload(body))
		m := w.AddMember(testutil.Member{Type: format.CastField, Name: name})
		w.Link(stxt, m, format.TagStyledText)
		return m
	}
	greeting := text("hello", "Hej Mulle!")
	part := text("PartsDB", partDB)
	mp := text("MapDB", mapDB)
	broken := text("BrokenDB", "[#nope]")
	chart := text("MulleAnimChart", "[#actions: [#Wait:[1,2]], #paths: [ ]]")

	scvw := w.AddChunk(format.TagScoreView, []byte{
		0, 0, 0, 20, 0, 0, 0, 16, 0, 0, 0, 0, 0, 0, 0, 20, 0, 2, 0, 2,
	})
	loop := w.AddMember(testutil.Member{Type: format.CastFilmLoop, Name: "loop"})
	w.Link(scvw, loop, format.TagScoreView)

	w.AddCastLibrary(1, img, greeting, part, mp, broken, chart, loop)
	return w.Bytes()
}

func TestOpenDecodesMembers(t *testing.T) {
	for _, mode := range []format.Endianness{format.Little, format.Big} {
		t.Run(mode.String(), func(t *testing.T) {
			a, err := Open("test.dxr", fixture(mode), Options{})
			require.NoError(t, err)
			require.Len(t, a.Members, 7)

			img, ok := a.Images[1]
			require.True(t, ok)
			require.Equal(t, "skylt", img.Name)
			require.Equal(t, 3, img.Width)
			require.Equal(t, 1, img.Height)
			require.Equal(t, 1, img.RegX)
			require.Equal(t, bitmap.ModeRLE, img.Mode)
			require.Len(t, img.RGBA, 12)
			for i := 0; i < 3; i++ {
				assert.Equal(t, byte(0), img.RGBA[i*4+3], "index 255 is transparent")
			}
			nrgba := img.ToNRGBA()
			require.Equal(t, 3, nrgba.Bounds().Dx())
			require.Equal(t, 12, nrgba.Stride)

			require.Equal(t, "Hej Mulle!", a.Texts[2].Text)
			require.Equal(t, "hello", a.Texts[2].Name)

			require.Contains(t, a.Parts, int32(12))
			require.Equal(t, []int32{13, 14}, a.Parts[12].MorphsTo)
			require.Contains(t, a.Maps, int32(3))
			require.Equal(t, "30t003v0", a.Maps[3].Topology)
			require.NotContains(t, a.Texts, uint32(3), "records are not stored as text")
			require.NotContains(t, a.Texts, uint32(4))
			require.NotContains(t, a.Texts, uint32(5))

			require.Contains(t, a.AnimCharts, uint32(6))
			require.Contains(t, a.Texts, uint32(6), "animation charts are kept as text")

			require.Equal(t, 2, a.FilmLoops[7].Frames)

			m, ok := a.Member(2)
			require.True(t, ok)
			require.Equal(t, format.CastField, m.Header.Type)
		})
	}
}

func TestOpenReportsCaughtFailures(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	a, err := Open("test.dxr", fixture(format.Little), Options{Logger: logger})
	require.NoError(t, err)

	byStage := map[types.Stage][]types.Diagnostic{}
	for _, d := range a.Report.Diagnostics {
		byStage[d.Stage] = append(byStage[d.Stage], d)
	}
	require.Len(t, byStage[types.StageRecord], 1)
	rec := byStage[types.StageRecord][0]
	require.Equal(t, uint32(5), rec.Member)
	require.Equal(t, "BrokenDB", rec.Name)
	require.Equal(t, types.SevError, rec.Severity)
	require.ErrorIs(t, rec.Err, types.ErrParse)

	require.Len(t, byStage[types.StageDispatch], 1)
	require.Equal(t, types.SevInfo, byStage[types.StageDispatch][0].Severity)
	require.Contains(t, byStage[types.StageDispatch][0].Issue, "Thum")

	require.Contains(t, logs.String(), "member skipped")
	require.Contains(t, logs.String(), "archive=test.dxr")
	require.Contains(t, logs.String(), "name=BrokenDB")
}

func TestOpenOpaqueTable(t *testing.T) {
	var tbl bitmap.OpaqueTable
	tbl.Add("TEST.DXR", 1)
	a, err := Open("test.dxr", fixture(format.Big), Options{Opaque: &tbl})
	require.NoError(t, err)
	img := a.Images[1]
	require.True(t, img.Opaque)
	for i := 0; i < 3; i++ {
		assert.Equal(t, byte(0xff), img.RGBA[i*4+3])
	}
}

func TestOpenCustomPalette(t *testing.T) {
	var pal bitmap.Palette
	pal[255] = [3]uint8{10, 20, 30}
	a, err := Open("test.dxr", fixture(format.Little), Options{Palette: &pal})
	require.NoError(t, err)
	require.Equal(t, []byte{10, 20, 30, 0}, a.Images[1].RGBA[:4])
}

func TestOpenRejectsNonArchive(t *testing.T) {
	_, err := Open("readme.txt", []byte("RIFF....WAVEfmt "), Options{})
	require.True(t, errors.Is(err, types.ErrArchiveFormat))
	require.Equal(t, types.ErrKindFormat, types.KindOf(err))
}

func TestOpenSkipsBrokenMembers(t *testing.T) {
	w := testutil.NewArchiveWriter(format.Little)
	good := w.AddMember(testutil.Member{Type: format.CastField, Name: "ok"})
	stxt := w.AddChunk(format.TagStyledText, testutil.STXTPayload("fine"))
	w.Link(stxt, good, format.TagStyledText)

	dangling := w.AddMember(testutil.Member{Type: format.CastBitmap, Name: "lost",
		Trailer: testutil.BitmapTrailer(testutil.Bitmap{Width: 1, Height: 1})})
	w.Link(999, dangling, format.TagBitmapData)

	deep := w.AddMember(testutil.Member{Type: format.CastBitmap, Name: "deep",
		Trailer: testutil.BitmapTrailer(testutil.Bitmap{Width: 1, Height: 1, BitDepth: 40})})
	px := w.AddChunk(format.TagBitmapData, []byte{0x00, 0xff})
	w.Link(px, deep, format.TagBitmapData)

	w.AddCastLibrary(1, good, dangling, 999, deep)

	a, err := Open("broken.dxr", w.Bytes(), Options{})
	require.NoError(t, err)
	require.Equal(t, "fine", a.Texts[1].Text)
	require.Empty(t, a.Images)

	var kinds []types.ErrKind
	for _, d := range a.Report.Diagnostics {
		kinds = append(kinds, types.KindOf(d.Err))
	}
	require.ElementsMatch(t, []types.ErrKind{
		types.ErrKindCorrupt,     // linked slot 999
		types.ErrKindCorrupt,     // member slot 999
		types.ErrKindUnsupported, // bit depth 40
	}, kinds)
	require.Equal(t, 2, a.Report.Summary.Errors)
	require.Equal(t, 1, a.Report.Summary.Warnings)
}

func TestOpenReportsUnparsedAnimChart(t *testing.T) {
	w := testutil.NewArchiveWriter(format.Big)
	body := "[#actions: [1], #paths: [1]]"
	stxt := w.AddChunk(format.TagStyledText, testutil.STXTPayload(body))
	m := w.AddMember(testutil.Member{Type: format.CastField, Name: "CarAnimChart"})
	w.Link(stxt, m, format.TagStyledText)
	w.AddCastLibrary(1, m)

	a, err := Open("chart.dxr", w.Bytes(), Options{})
	require.NoError(t, err)
	require.Empty(t, a.AnimCharts)
	require.Equal(t, body, a.Texts[1].Text)

	require.Len(t, a.Report.Diagnostics, 1)
	d := a.Report.Diagnostics[0]
	require.Equal(t, types.StageAnimChart, d.Stage)
	require.Equal(t, types.SevWarning, d.Severity)
	require.Equal(t, "CarAnimChart", d.Name)
	require.ErrorIs(t, d.Err, types.ErrParse)
	require.Equal(t, 1, a.Report.Summary.Warnings)
}

func TestOpenRejectsOversizedBitmap(t *testing.T) {
	w := testutil.NewArchiveWriter(format.Little)
	px := w.AddChunk(format.TagBitmapData, []byte{0x81, 0x00})
	m := w.AddMember(testutil.Member{Type: format.CastBitmap, Name: "huge",
		Trailer: testutil.BitmapTrailer(testutil.Bitmap{Width: 30000, Height: 30000, BitDepth: 8})})
	w.Link(px, m, format.TagBitmapData)
	w.AddCastLibrary(1, m)

	a, err := Open("huge.dxr", w.Bytes(), Options{})
	require.NoError(t, err)
	require.Empty(t, a.Images)
	require.Len(t, a.Report.Diagnostics, 1)
	require.Equal(t, types.StageBitmap, a.Report.Diagnostics[0].Stage)
	require.ErrorIs(t, a.Report.Diagnostics[0].Err, types.ErrBitmapModeUnsupported)
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.dxr")
	require.NoError(t, os.WriteFile(path, fixture(format.Little), 0o644))

	a, err := OpenFile(path, Options{})
	require.NoError(t, err)
	require.Equal(t, "test.dxr", a.Name)
	require.Equal(t, "Hej Mulle!", a.Texts[2].Text)

	_, err = OpenFile(filepath.Join(t.TempDir(), "missing.dxr"), Options{})
	require.Error(t, err)
}

func TestClassifyLink(t *testing.T) {
	require.Equal(t, linkBitmapPixels, classifyLink(format.CastBitmap, "BITD"))
	require.Equal(t, linkStyledText, classifyLink(format.CastField, "STXT"))
	require.Equal(t, linkUnhandled, classifyLink(format.CastRichText, "STXT"))
	require.Equal(t, linkCuePoints, classifyLink(format.CastSound, "cupt"))
	require.Equal(t, "unhandled", linkUnhandled.String())
}
