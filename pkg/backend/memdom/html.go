package memdom

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/sunnyxujian/minivue/pkg/vdom"
)

// HTMLOptions configures serialization.
type HTMLOptions struct {
	// Pretty enables indentation, one element per line.
	Pretty bool

	// Indent is the indentation string for pretty printing.
	Indent string
}

// HTML serializes n's children (the inner HTML) compactly.
func (n *Node) HTML() string {
	return n.HTMLWith(HTMLOptions{})
}

// OuterHTML serializes n itself compactly.
func (n *Node) OuterHTML() string {
	var sb strings.Builder
	_ = n.WriteHTML(&sb, HTMLOptions{})
	return sb.String()
}

// HTMLWith serializes n's children with opts.
func (n *Node) HTMLWith(opts HTMLOptions) string {
	if opts.Pretty && opts.Indent == "" {
		opts.Indent = "  "
	}
	var sb strings.Builder
	for _, c := range n.children {
		_ = writeNode(&sb, c, opts, 0)
	}
	return sb.String()
}

// WriteHTML serializes n and its subtree to w.
func (n *Node) WriteHTML(w io.Writer, opts HTMLOptions) error {
	if opts.Pretty && opts.Indent == "" {
		opts.Indent = "  "
	}
	return writeNode(w, n, opts, 0)
}

func writeNode(w io.Writer, n *Node, opts HTMLOptions, depth int) error {
	if n.Type == TextNode {
		if opts.Pretty {
			if n.text == "" {
				return nil
			}
			writeIndent(w, opts, depth)
		}
		if _, err := io.WriteString(w, escapeHTML(n.text)); err != nil {
			return err
		}
		if opts.Pretty {
			_, err := io.WriteString(w, "\n")
			return err
		}
		return nil
	}
	return writeElement(w, n, opts, depth)
}

func writeElement(w io.Writer, n *Node, opts HTMLOptions, depth int) error {
	if opts.Pretty {
		writeIndent(w, opts, depth)
	}
	if _, err := fmt.Fprintf(w, "<%s", n.Tag); err != nil {
		return err
	}
	if err := writeAttributes(w, n); err != nil {
		return err
	}
	if _, err := io.WriteString(w, ">"); err != nil {
		return err
	}

	if vdom.IsVoidElement(n.Tag) && !n.SVG {
		if opts.Pretty {
			_, err := io.WriteString(w, "\n")
			return err
		}
		return nil
	}

	// Elements holding a single text child stay on one line.
	inline := len(n.children) == 1 && n.children[0].Type == TextNode
	if opts.Pretty && len(n.children) > 0 && !inline {
		io.WriteString(w, "\n")
	}
	for _, c := range n.children {
		if inline {
			if _, err := io.WriteString(w, escapeHTML(c.text)); err != nil {
				return err
			}
			continue
		}
		if err := writeNode(w, c, opts, depth+1); err != nil {
			return err
		}
	}
	if opts.Pretty && len(n.children) > 0 && !inline {
		writeIndent(w, opts, depth)
	}

	if _, err := fmt.Fprintf(w, "</%s>", n.Tag); err != nil {
		return err
	}
	if opts.Pretty {
		_, err := io.WriteString(w, "\n")
		return err
	}
	return nil
}

// writeAttributes writes attributes, then the style attribute, then
// properties and listeners as data- markers, each in sorted order.
func writeAttributes(w io.Writer, n *Node) error {
	for _, name := range sortedKeys(n.attrs) {
		if _, err := fmt.Fprintf(w, ` %s="%s"`, name, escapeAttr(n.attrs[name])); err != nil {
			return err
		}
	}

	if len(n.styles) > 0 {
		decls := make([]string, 0, len(n.styles))
		for _, k := range sortedKeys(n.styles) {
			decls = append(decls, k+": "+n.styles[k])
		}
		if _, err := fmt.Fprintf(w, ` style="%s"`, escapeAttr(strings.Join(decls, "; "))); err != nil {
			return err
		}
	}

	for _, name := range sortedKeys(n.props) {
		if _, err := fmt.Fprintf(w, ` data-prop-%s="%s"`, strings.ToLower(name), escapeAttr(vdom.AttrString(n.props[name]))); err != nil {
			return err
		}
	}

	events := make([]string, 0, len(n.listeners))
	for e := range n.listeners {
		events = append(events, e)
	}
	sort.Strings(events)
	for _, e := range events {
		if _, err := fmt.Fprintf(w, ` data-on-%s="true"`, e); err != nil {
			return err
		}
	}
	return nil
}

func writeIndent(w io.Writer, opts HTMLOptions, depth int) {
	for i := 0; i < depth; i++ {
		io.WriteString(w, opts.Indent)
	}
}
