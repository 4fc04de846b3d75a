package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category   Category
	Message    string
	Suggestion string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Reactive Errors (E001-E099)
	// ============================================

	"E001": {
		Category:   CategoryReactive,
		Message:    "Reactive state written during render",
		Suggestion: "Move the write into an event handler or a watcher callback.",
	},
	"E006": {
		Category:   CategoryReactive,
		Message:    "Subscriber updated while it is still evaluating",
		Suggestion: "Avoid writing state that the same render reads, or use the defer reentrancy policy.",
	},
	"E007": {
		Category: CategoryReactive,
		Message:  "Index out of range on observed array",
	},

	// ============================================
	// Render Errors (E100-E119)
	// ============================================

	"E100": {
		Category:   CategoryRender,
		Message:    "Unknown node kind",
		Suggestion: "Build nodes with the vdom constructors instead of struct literals.",
	},
	"E101": {
		Category:   CategoryRender,
		Message:    "Portal target could not be resolved",
		Suggestion: "Make sure the target container exists before rendering the portal.",
	},
	"E102": {
		Category:   CategoryRender,
		Message:    "Duplicate key in sibling list",
		Suggestion: "Give every sibling a unique key.",
	},
	"E103": {
		Category: CategoryRender,
		Message:  "Child arity does not match children",
	},
	"E104": {
		Category: CategoryRender,
		Message:  "Component failed to produce a tree",
	},
	"E105": {
		Category: CategoryRender,
		Message:  "Render target container is nil",
	},

	// ============================================
	// Config Errors (E120-E139)
	// ============================================

	"E120": {
		Category: CategoryConfig,
		Message:    "Invalid configuration",
		Suggestion: "Check minivue.yaml against the documented keys and values",
	},
	"E121": {
		Category: CategoryConfig,
		Message:    "Configuration file could not be read",
		Suggestion: "Create one with 'minivue config --init' or pass --config",
	},
}

// Register adds or replaces an error template.
func Register(code string, template ErrorTemplate) {
	registry[code] = template
}

// Lookup returns the template for the given code.
func Lookup(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
