package vdom

import (
	"math"
	"reflect"
	"testing"
)

func TestNormalizeClass(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"nil", nil, ""},
		{"string", "btn primary", "btn primary"},
		{"empty string", "", ""},
		{"object", map[string]any{"b": true, "a": true, "c": false}, "a b"},
		{"bool map", map[string]bool{"on": true, "off": false}, "on"},
		{"nested", []any{map[string]any{"a": true, "b": false}, []any{"c", "d"}, "e"}, "a c d e"},
		{"deep", []any{[]any{[]any{"x"}}, nil, false, "y"}, "x y"},
		{"truthy values", map[string]any{"n": 1, "z": 0, "s": "yes", "e": ""}, "n s"},
		{"string slice", []string{"a", "", "b"}, "a b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeClass(tt.value); got != tt.want {
				t.Errorf("NormalizeClass() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		key  string
		want DataKind
	}{
		{"key", DataIgnored},
		{"style", DataStyle},
		{"class", DataClass},
		{"onClick", DataEvent},
		{"oninput", DataEvent},
		{"on", DataAttribute},
		{"value", DataProperty},
		{"checked", DataProperty},
		{"selected", DataProperty},
		{"muted", DataProperty},
		{"innerHTML", DataAttribute},
		{"viewBox", DataAttribute},
		{"tabIndex", DataAttribute},
		{"values", DataAttribute},
		{"id", DataAttribute},
		{"data-id", DataAttribute},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := Classify(tt.key); got != tt.want {
				t.Errorf("Classify(%q) = %v, want %v", tt.key, got, tt.want)
			}
		})
	}
}

func TestEventName(t *testing.T) {
	tests := map[string]string{
		"onClick":     "click",
		"oninput":     "input",
		"onMouseOver": "mouseover",
	}
	for key, want := range tests {
		if got := EventName(key); got != want {
			t.Errorf("EventName(%q) = %q, want %q", key, got, want)
		}
	}
}

func TestTruthy(t *testing.T) {
	type level int
	tests := []struct {
		value any
		want  bool
	}{
		{nil, false},
		{false, false},
		{true, true},
		{"", false},
		{"x", true},
		{0, false},
		{int8(0), false},
		{int32(0), false},
		{int32(2), true},
		{uint(0), false},
		{uint64(7), true},
		{float32(0), false},
		{float32(0.5), true},
		{math.NaN(), false},
		{float32(math.NaN()), false},
		{level(0), false},
		{level(1), true},
		{[]any{}, true},
		{struct{}{}, true},
	}
	for _, tt := range tests {
		if got := Truthy(tt.value); got != tt.want {
			t.Errorf("Truthy(%#v) = %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestStyleEntries(t *testing.T) {
	got := StyleEntries(map[string]any{"color": "red", "width": 10, "skip": nil})
	want := map[string]string{"color": "red", "width": "10"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("StyleEntries() = %v, want %v", got, want)
	}
	if StyleEntries("color: red") != nil {
		t.Error("StyleEntries(string) should be nil")
	}
}

func TestAttrString(t *testing.T) {
	tests := []struct {
		value any
		want  string
	}{
		{nil, ""},
		{"x", "x"},
		{true, "true"},
		{42, "42"},
		{int64(-3), "-3"},
		{1.5, "1.5"},
		{KindText, "Text"},
		{[]int{1}, "[1]"},
	}
	for _, tt := range tests {
		if got := AttrString(tt.value); got != tt.want {
			t.Errorf("AttrString(%v) = %q, want %q", tt.value, got, tt.want)
		}
	}
}

func TestIsVoidElement(t *testing.T) {
	if !IsVoidElement("input") || IsVoidElement("div") {
		t.Error("IsVoidElement mismatch")
	}
}
