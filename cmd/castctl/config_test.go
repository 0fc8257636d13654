package main

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/joshuapare/castkit/archive"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `archive_dir: /games/mulle
archives: [cddata.cxt, 05.dxr]
workers: 4
log_level: debug
log_format: json
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if c.ArchiveDir != "/games/mulle" || c.Workers != 4 || c.LogFormat != "json" {
		t.Fatalf("config = %+v", c)
	}
	if len(c.Archives) != 2 || c.Archives[1] != "05.dxr" {
		t.Fatalf("archives = %v", c.Archives)
	}

	if _, err := loadConfig(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Fatal("an explicit missing config must fail")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("workers: [1"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := loadConfig(bad); err == nil {
		t.Fatal("expected YAML error")
	}
}

func TestNewLogger(t *testing.T) {
	resetFlags()
	var out bytes.Buffer

	logger, err := newLogger(&out, Config{})
	if err != nil {
		t.Fatal(err)
	}
	logger.Info("hidden")
	logger.Warn("shown", "member", 3)
	if strings.Contains(out.String(), "hidden") || !strings.Contains(out.String(), "member=3") {
		t.Fatalf("default level should be warn, got %q", out.String())
	}

	out.Reset()
	logger, err = newLogger(&out, Config{LogLevel: "debug", LogFormat: "json"})
	if err != nil {
		t.Fatal(err)
	}
	logger.Debug("dispatch", "tag", "BITD")
	if !strings.Contains(out.String(), `"tag":"BITD"`) {
		t.Fatalf("expected JSON debug record, got %q", out.String())
	}

	quiet = true
	logger, err = newLogger(&out, Config{LogLevel: "debug"})
	if err != nil {
		t.Fatal(err)
	}
	if logger.Enabled(t.Context(), slog.LevelWarn) {
		t.Fatal("--quiet should only log errors")
	}
	quiet = false

	if _, err := newLogger(&out, Config{LogLevel: "loud"}); err == nil {
		t.Fatal("expected unknown level error")
	}
	if _, err := newLogger(&out, Config{LogFormat: "xml"}); err == nil {
		t.Fatal("expected unknown format error")
	}
}

func TestSetupOpaqueFile(t *testing.T) {
	resetFlags()
	dir := t.TempDir()
	table := filepath.Join(dir, "opaque.yaml")
	if err := os.WriteFile(table, []byte("test.dxr: [1]\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	conf := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(conf, []byte("opaque_file: "+table+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	configFile = conf
	defer func() { configFile = "" }()

	if err := setup(&bytes.Buffer{}); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if !opaque.IsOpaque("TEST.DXR", 1) {
		t.Fatal("opaque table from config not loaded")
	}
}

func TestExportName(t *testing.T) {
	tests := map[string]string{
		"skylt":  "7_skylt.png",
		"a/b\\c": "7_a_b_c.png",
		"":       "7.png",
	}
	for name, want := range tests {
		got := exportName(&archive.Image{Number: 7, Name: name}, "png")
		if got != want {
			t.Errorf("exportName(%q) = %q, want %q", name, got, want)
		}
	}
}
