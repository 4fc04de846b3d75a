// Package errors provides structured, actionable error messages for minivue.
//
// Every fatal condition raised by the reactive store or the renderer is an
// *Error carrying a registered code. Callers can match on the code with
// errors.As, or print the error with Format for a terminal-friendly report.
//
// # Error Categories
//
// Errors are organized into categories:
//   - reactive: subscriber and store misuse (reentrant updates, writes during render)
//   - render: malformed node trees (unknown kind, duplicate keys, bad portals)
//   - config: invalid runtime configuration
//
// # Usage
//
//	err := errors.New("E102").
//	    WithDetail(`key "row-3" appears twice under <ul>`).
//	    WithSuggestion("Give every sibling a unique key")
//
//	fmt.Println(err.Format())
//	// Output:
//	// ERROR E102: Duplicate key in sibling list
//	//
//	//   key "row-3" appears twice under <ul>
//	//
//	//   Hint: Give every sibling a unique key
package errors
