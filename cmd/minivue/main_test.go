package main

import (
	"bytes"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sunnyxujian/minivue/internal/config"
	"github.com/sunnyxujian/minivue/internal/errors"
	"github.com/sunnyxujian/minivue/pkg/reactive"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

const passing = `name: passing
steps:
  - tree: {tag: p, text: hi}
    expect: '<p>hi</p>'
  - tree: {tag: p, text: bye}
    expect: '<p>bye</p>'
`

const failing = `name: failing
steps:
  - tree: {tag: p, text: hi}
    expect: '<p>nope</p>'
`

func TestLoadScenarios(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.yaml", passing)
	writeFile(t, dir, "b.yaml", failing)
	single := writeFile(t, t.TempDir(), "single.yaml", passing)

	scs, err := loadScenarios([]string{single, dir})
	if err != nil {
		t.Fatalf("loadScenarios() error = %v", err)
	}
	var names []string
	for _, sc := range scs {
		names = append(names, sc.Name)
	}
	want := []string{"passing", "passing", "failing"}
	if len(names) != len(want) {
		t.Fatalf("names = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names[%d] = %q, want %q", i, names[i], want[i])
		}
	}

	if _, err := loadScenarios([]string{filepath.Join(dir, "missing.yaml")}); err == nil {
		t.Error("loadScenarios() of a missing file should fail")
	}
}

func TestRunPlay(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, config.ConfigFileName, "logLevel: error\n")
	ok := writeFile(t, dir, "ok.yaml", passing)
	bad := writeFile(t, dir, "bad.yaml", failing)

	opts := playOptions{configPath: cfgPath, showMetrics: true}
	if err := runPlay([]string{ok}, opts); err != nil {
		t.Errorf("runPlay(passing) error = %v", err)
	}
	if err := runPlay([]string{ok, bad}, opts); err == nil {
		t.Error("runPlay(failing) error = nil, want error")
	}
}

func TestPlayConfig(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, config.ConfigFileName, "devMode: true\nreentrancy: panic\n")

	cfg, err := playConfig(playOptions{configPath: path, showMetrics: true})
	if err != nil {
		t.Fatalf("playConfig() error = %v", err)
	}
	if !cfg.DevMode || cfg.Reentrancy != reactive.ReentrancyPanic {
		t.Errorf("playConfig() = devMode %t reentrancy %v", cfg.DevMode, cfg.Reentrancy)
	}
	if cfg.Metrics == nil {
		t.Error("--metrics should enable metrics")
	}

	bad := writeFile(t, dir, "bad.yaml", "reentrancy: sometimes\n")
	if _, err := playConfig(playOptions{configPath: bad}); err == nil {
		t.Error("playConfig() with an invalid file should fail")
	}
}

func TestConfigInit(t *testing.T) {
	dir := t.TempDir()

	if err := runConfigInit(dir, true); err != nil {
		t.Fatalf("runConfigInit() error = %v", err)
	}
	cfg, err := config.Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !cfg.DevMode {
		t.Error("written config should enable devMode")
	}
	if err := runConfigInit(dir, false); err == nil {
		t.Error("runConfigInit() should refuse to overwrite")
	}
	if err := runConfigShow(dir, true); err != nil {
		t.Errorf("runConfigShow() error = %v", err)
	}
	if err := runConfigShow(t.TempDir(), true); err == nil {
		t.Error("runConfigShow() without a file should fail")
	}
}

func TestReportError(t *testing.T) {
	errors.DisableColors()
	defer errors.EnableColors()

	_, err := config.Load(t.TempDir())
	if err == nil {
		t.Fatal("Load() of an empty dir should fail")
	}

	var buf bytes.Buffer
	reportError(&buf, err)
	for _, want := range []string{"ERROR E121", "No minivue.yaml found", "Hint: Create minivue.yaml"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("reportError() output missing %q:\n%s", want, buf.String())
		}
	}

	buf.Reset()
	reportError(&buf, stderrors.New("2 of 3 scenarios failed"))
	if !strings.Contains(buf.String(), "ERROR: 2 of 3 scenarios failed") {
		t.Errorf("reportError() plain = %q", buf.String())
	}
}
