package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	json "github.com/goccy/go-json"

	"github.com/joshuapare/castkit/internal/format"
	"github.com/joshuapare/castkit/internal/testutil"
)

const testPartDB = `[#partId:12, #master:0, #MorphsTo:[], #description:"wheel", #junkView:"12j", #UseView:"12u", #UseView2:"", #offset:[0, 0], #Properties:[], #Requires:[], #covers:[], #new:[]]`

const testMapDB = `[#MapId: 3, #objects: [[31, point(146,392), [#InnerRadius:50]]], #MapImage: "30b003v0", #Topology: "30t003v0"]`

// writeTestArchive writes a small archive to a temp dir and returns its path.
// Members: 1 bitmap "skylt" (4x2), 2 text "Intro", 3 PartsDB, 4 MapDB.
func writeTestArchive(t *testing.T, name string) string {
	t.Helper()
	w := testutil.NewArchiveWriter(format.Little)

	px := w.AddChunk(format.TagBitmapData, []byte{0xf9, 0x10})
	img := w.AddMember(testutil.Member{
		Type:    format.CastBitmap,
		Name:    "skylt",
		Trailer: testutil.BitmapTrailer(testutil.Bitmap{Width: 4, Height: 2, BitDepth: 8}),
	})
	w.Link(px, img, format.TagBitmapData)

	text := func(name, body string) uint32 {
		stxt := w.AddChunk(format.TagStyledText, testutil.STXTPayload(body))
		m := w.AddMember(testutil.Member{Type: format.CastField, Name: name})
		w.Link(stxt, m, format.TagStyledText)
		return m
	}
	w.AddCastLibrary(1, img, text("Intro", "Hej Mulle"), text("PartsDB", testPartDB), text("MapDB", testMapDB))

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, w.Bytes(), 0o644); err != nil {
		t.Fatalf("write archive: %v", err)
	}
	return path
}

// resetFlags restores global flag state between tests.
func resetFlags() {
	verbose = false
	quiet = false
	jsonOut = false
	cfg = Config{}
	opaque = nil
	exportFormat = "png"
	exportMember = 0
	chunksTag = ""
	recordsWorkers = 1
}

// captureOutput captures stdout while running a function
func captureOutput(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	origStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w

	done := make(chan struct{})
	var buf bytes.Buffer
	go func() {
		_, _ = buf.ReadFrom(r)
		close(done)
	}()

	fnErr := fn()

	w.Close()
	os.Stdout = origStdout
	<-done

	return buf.String(), fnErr
}

// assertJSON checks that output is valid JSON
func assertJSON(t *testing.T, output string) {
	t.Helper()
	var result any
	if err := json.Unmarshal([]byte(output), &result); err != nil {
		t.Errorf("invalid JSON output: %v\nOutput: %s", err, output)
	}
}

// assertContains checks that output contains all expected strings
func assertContains(t *testing.T, output string, expected []string) {
	t.Helper()
	for _, want := range expected {
		if !strings.Contains(output, want) {
			t.Errorf("output missing expected string %q\nGot: %s", want, output)
		}
	}
}
