package scenario

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sunnyxujian/minivue/pkg/vdom"
)

func writeScenario(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"unknown field", "name: x\nstep: []\n", "field step not found"},
		{"missing name", "steps:\n  - unmount: true\n", "name is required"},
		{"no steps", "name: x\n", "steps list is required"},
		{"empty step", "name: x\nsteps:\n  - expect: ''\n", "exactly one of tree and unmount"},
		{"tree and unmount", "name: x\nsteps:\n  - unmount: true\n    tree: {text: a}\n", "exactly one of tree and unmount"},
		{"text with children", "name: x\nsteps:\n  - tree: {tag: p, text: a, children: [{text: b}]}\n", "mutually exclusive"},
		{"two shapes", "name: x\nsteps:\n  - tree: {tag: p, fragment: true}\n", "only one of"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeScenario(t, t.TempDir(), "scenario.yaml", tt.content)
			_, err := Load(path)
			if err == nil {
				t.Fatal("Load() error = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Load() error = %v, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadDirSorted(t *testing.T) {
	dir := t.TempDir()
	writeScenario(t, dir, "b.yaml", "name: second\nsteps:\n  - unmount: true\n")
	writeScenario(t, dir, "a.yaml", "name: first\nsteps:\n  - tree: {text: a}\n")
	writeScenario(t, dir, "notes.txt", "ignored")

	scenarios, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir() error = %v", err)
	}
	if len(scenarios) != 2 {
		t.Fatalf("LoadDir() = %d scenarios, want 2", len(scenarios))
	}
	if scenarios[0].Name != "first" || scenarios[1].Name != "second" {
		t.Errorf("LoadDir() names = %q, %q", scenarios[0].Name, scenarios[1].Name)
	}
}

func TestNodeSpecBuild(t *testing.T) {
	spec := NodeSpec{
		Tag:   "ul",
		Attrs: map[string]any{"class": "list"},
		Children: []NodeSpec{
			{Tag: "li", Key: "a", Text: "a"},
			{Fragment: true, Key: "f", Children: []NodeSpec{{Text: "x"}, {Text: "y"}}},
			{Portal: "#modal", Text: "p"},
		},
	}
	v, err := spec.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if v.Kind != vdom.KindElement || v.Tag != "ul" || v.Arity != vdom.MultipleChildren {
		t.Fatalf("Build() = %s <%s> %s", v.Kind, v.Tag, v.Arity)
	}
	tests := []struct {
		kind vdom.Kind
		key  string
	}{
		{vdom.KindElement, "a"},
		{vdom.KindFragment, "f"},
		{vdom.KindPortal, ""},
	}
	for i, tt := range tests {
		c := v.Children[i]
		if c.Kind != tt.kind || c.Key != tt.key {
			t.Errorf("child %d = %s key %q, want %s key %q", i, c.Kind, c.Key, tt.kind, tt.key)
		}
	}
	if v.Children[0].Arity != vdom.SingleChild || v.Children[0].Child().Text != "a" {
		t.Error("element text should become a single text child")
	}
}
