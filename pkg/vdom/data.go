package vdom

import (
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// DataKind classifies an entry of an element's Data.
type DataKind uint8

const (
	DataAttribute DataKind = iota // setAttribute with a stringified value
	DataProperty                  // assigned as a backend property
	DataStyle                     // applied key by key
	DataClass                     // flattened with NormalizeClass
	DataEvent                     // listener on the stripped, lower-cased name
	DataIgnored                   // never forwarded (key)
)

// String returns the string representation of the DataKind.
func (k DataKind) String() string {
	switch k {
	case DataAttribute:
		return "attribute"
	case DataProperty:
		return "property"
	case DataStyle:
		return "style"
	case DataClass:
		return "class"
	case DataEvent:
		return "event"
	case DataIgnored:
		return "ignored"
	default:
		return "unknown"
	}
}

// properties are the keys assigned as backend properties rather than
// attributes. Everything else, camel-cased SVG attributes such as viewBox
// included, goes through SetAttribute.
var properties = map[string]bool{
	"value":    true,
	"checked":  true,
	"selected": true,
	"muted":    true,
}

// Classify returns how the renderer applies the Data entry named key.
func Classify(key string) DataKind {
	switch {
	case key == "key":
		return DataIgnored
	case key == "style":
		return DataStyle
	case key == "class":
		return DataClass
	case IsEvent(key):
		return DataEvent
	case properties[key]:
		return DataProperty
	default:
		return DataAttribute
	}
}

// IsEvent reports whether key names an event binding ("onClick", "oninput").
func IsEvent(key string) bool {
	return len(key) > 2 && strings.HasPrefix(key, "on")
}

// EventName strips the "on" prefix and lower-cases the rest.
func EventName(key string) string {
	return strings.ToLower(strings.TrimPrefix(key, "on"))
}

// IsProperty reports whether key is assigned as a backend property.
func IsProperty(key string) bool {
	return Classify(key) == DataProperty
}

// NormalizeClass flattens a class value into a space-separated string.
//
// Strings are taken verbatim, map keys are included when their value is
// truthy (in sorted key order), and slices are flattened depth first.
// Falsy entries are omitted.
func NormalizeClass(value any) string {
	var parts []string
	collectClasses(value, &parts)
	return strings.Join(parts, " ")
}

func collectClasses(value any, parts *[]string) {
	switch v := value.(type) {
	case nil:
	case string:
		if v != "" {
			*parts = append(*parts, v)
		}
	case []string:
		for _, s := range v {
			collectClasses(s, parts)
		}
	case []any:
		for _, item := range v {
			collectClasses(item, parts)
		}
	case map[string]bool:
		for _, k := range sortedBoolKeys(v) {
			if v[k] {
				*parts = append(*parts, k)
			}
		}
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if Truthy(v[k]) {
				*parts = append(*parts, k)
			}
		}
	default:
		if Truthy(v) {
			*parts = append(*parts, AttrString(v))
		}
	}
}

func sortedBoolKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Truthy reports whether v counts as set: not nil, false, zero or "".
func Truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case int:
		return x != 0
	case int64:
		return x != 0
	case float64:
		return x != 0 && !math.IsNaN(x)
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return !rv.IsZero()
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		return f != 0 && !math.IsNaN(f)
	default:
		return true
	}
}

// StyleEntries returns the style declarations of a style value.
// Both map[string]string and map[string]any are accepted; other values
// yield nil.
func StyleEntries(value any) map[string]string {
	switch v := value.(type) {
	case map[string]string:
		return v
	case map[string]any:
		out := make(map[string]string, len(v))
		for k, val := range v {
			if val == nil {
				continue
			}
			out[k] = AttrString(val)
		}
		return out
	}
	return nil
}

// AttrString converts an attribute value to its string form.
func AttrString(value any) string {
	if value == nil {
		return ""
	}
	switch v := value.(type) {
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

// SortedKeys returns the keys of d in sorted order.
func (d Data) SortedKeys() []string {
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
