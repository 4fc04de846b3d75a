package scenario

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/sunnyxujian/minivue/pkg/vdom"
)

// Scenario is a sequence of renders into one container, read from YAML.
type Scenario struct {
	// Name identifies the scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what the scenario checks.
	Description string `yaml:"description"`

	// Containers are extra container ids created after the app container,
	// usually portal targets.
	Containers []string `yaml:"containers,omitempty"`

	// Steps run in order.
	Steps []Step `yaml:"steps"`
}

// Step is one Render call and its expectations.
type Step struct {
	// Tree is the tree to render. Exactly one of Tree and Unmount is set.
	Tree *NodeSpec `yaml:"tree,omitempty"`

	// Unmount renders nil.
	Unmount bool `yaml:"unmount,omitempty"`

	// Expect is the app container's compact inner HTML after the step.
	Expect *string `yaml:"expect,omitempty"`

	// Error is the error code the render must fail with.
	Error string `yaml:"error,omitempty"`

	// Moves is the number of node moves the step must perform.
	Moves *int `yaml:"moves,omitempty"`
}

// NodeSpec describes a node. A spec with a tag is an element, one with
// fragment set is a fragment, one with a portal selector is a portal, and
// anything else is a text node.
type NodeSpec struct {
	Tag      string         `yaml:"tag,omitempty"`
	SVG      bool           `yaml:"svg,omitempty"`
	Fragment bool           `yaml:"fragment,omitempty"`
	Portal   string         `yaml:"portal,omitempty"`
	Key      string         `yaml:"key,omitempty"`
	Text     string         `yaml:"text,omitempty"`
	Attrs    map[string]any `yaml:"attrs,omitempty"`
	Children []NodeSpec     `yaml:"children,omitempty"`
}

// Build converts s into a VNode tree.
func (s *NodeSpec) Build() (*vdom.VNode, error) {
	shapes := 0
	for _, set := range []bool{s.Tag != "", s.Fragment, s.Portal != ""} {
		if set {
			shapes++
		}
	}
	if shapes > 1 {
		return nil, fmt.Errorf("node may set only one of tag, fragment and portal")
	}

	var children any
	if len(s.Children) > 0 {
		if s.Text != "" {
			return nil, fmt.Errorf("<%s>: text and children are mutually exclusive", s.Tag)
		}
		nodes := make([]*vdom.VNode, len(s.Children))
		for i := range s.Children {
			n, err := s.Children[i].Build()
			if err != nil {
				return nil, fmt.Errorf("child %d: %w", i, err)
			}
			nodes[i] = n
		}
		children = nodes
	} else if s.Text != "" {
		children = s.Text
	}

	switch {
	case s.Tag != "":
		data := make(vdom.Data, len(s.Attrs)+1)
		for k, v := range s.Attrs {
			data[k] = v
		}
		if s.Key != "" {
			data["key"] = s.Key
		}
		if s.SVG {
			return vdom.SVG(s.Tag, data, children), nil
		}
		return vdom.H(s.Tag, data, children), nil
	case s.Fragment:
		if len(s.Attrs) > 0 {
			return nil, fmt.Errorf("fragment cannot have attrs")
		}
		return vdom.Fragment(children).WithKey(s.Key), nil
	case s.Portal != "":
		return vdom.Portal(s.Portal, children).WithKey(s.Key), nil
	default:
		if len(s.Children) > 0 || len(s.Attrs) > 0 {
			return nil, fmt.Errorf("text node %q cannot have attrs or children", s.Text)
		}
		return vdom.Text(s.Text).WithKey(s.Key), nil
	}
}

// Load reads and validates a scenario file. Unknown fields are
// rejected.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var sc Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&sc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if err := sc.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scenario %s: %w", path, err)
	}
	return &sc, nil
}

// LoadDir loads every *.yaml file in dir, sorted by file name.
func LoadDir(dir string) ([]*Scenario, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	out := make([]*Scenario, 0, len(paths))
	for _, p := range paths {
		sc, err := Load(p)
		if err != nil {
			return nil, err
		}
		out = append(out, sc)
	}
	return out, nil
}

// Validate checks the required fields and that every step builds.
func (sc *Scenario) Validate() error {
	if sc.Name == "" {
		return fmt.Errorf("name is required")
	}
	if len(sc.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}
	for i, st := range sc.Steps {
		if (st.Tree == nil) == !st.Unmount {
			return fmt.Errorf("step %d: exactly one of tree and unmount must be set", i)
		}
		if st.Tree != nil {
			if _, err := st.Tree.Build(); err != nil {
				return fmt.Errorf("step %d: %w", i, err)
			}
		}
	}
	return nil
}
