package memdom

import (
	"testing"

	"github.com/sunnyxujian/minivue/pkg/vdom"
)

func el(d *Document, tag string) *Node {
	return d.CreateElement(tag, false).(*Node)
}

func TestInsertBeforeAndMove(t *testing.T) {
	d := NewDocument()
	ul := el(d, "ul")
	a, b, c := el(d, "a"), el(d, "b"), el(d, "c")

	d.AppendChild(ul, a)
	d.AppendChild(ul, c)
	d.InsertBefore(ul, b, c)

	if got := ul.OuterHTML(); got != "<ul><a></a><b></b><c></c></ul>" {
		t.Errorf("OuterHTML() = %q", got)
	}

	d.ResetStats()
	d.InsertBefore(ul, c, a)
	if got := ul.OuterHTML(); got != "<ul><c></c><a></a><b></b></ul>" {
		t.Errorf("after move OuterHTML() = %q", got)
	}
	if s := d.Stats(); s.Moved != 1 || s.Inserted != 0 {
		t.Errorf("Stats() = %+v, want one move", s)
	}

	if d.NextSibling(c) != a || d.NextSibling(b) != nil {
		t.Error("NextSibling mismatch")
	}
	if d.Parent(a) != ul || d.Parent(ul) != nil {
		t.Error("Parent mismatch")
	}

	d.RemoveChild(ul, a)
	if ul.ChildCount() != 2 || a.Parent() != nil {
		t.Errorf("RemoveChild left %d children", ul.ChildCount())
	}
}

func TestForeignNodePanics(t *testing.T) {
	d1, d2 := NewDocument(), NewDocument()
	if d1.ID() == d2.ID() {
		t.Fatal("documents should have distinct IDs")
	}
	defer func() {
		if recover() == nil {
			t.Error("expected panic for a node from another document")
		}
	}()
	d1.AppendChild(d1.Body(), d2.CreateText("x"))
}

func TestInsertIntoOwnSubtreePanics(t *testing.T) {
	d := NewDocument()
	outer := el(d, "div")
	inner := el(d, "div")
	d.AppendChild(outer, inner)
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	d.AppendChild(inner, outer)
}

func TestQuery(t *testing.T) {
	d := NewDocument()
	app := d.AddContainer("app")
	card := el(d, "section")
	d.SetAttribute(card, "class", "card wide")
	d.AppendChild(app, card)

	tests := []struct {
		selector string
		want     *Node
	}{
		{"#app", app},
		{"div#app", app},
		{".card", card},
		{"section.card.wide", card},
		{".missing", nil},
		{"body", d.Body()},
		{"span#app", nil},
		{"", nil},
		{"div > section", nil},
	}

	for _, tt := range tests {
		t.Run(tt.selector, func(t *testing.T) {
			if got := d.QueryNode(tt.selector); got != tt.want {
				t.Errorf("QueryNode(%q) = %v, want %v", tt.selector, got, tt.want)
			}
		})
	}

	if d.Query(".missing") != nil {
		t.Error("Query should return an untyped nil when nothing matches")
	}
}

func TestDetachedNodesAreNotQueried(t *testing.T) {
	d := NewDocument()
	loose := el(d, "div")
	d.SetAttribute(loose, "id", "loose")
	if d.QueryNode("#loose") != nil {
		t.Error("detached node should not match")
	}
}

func TestDispatch(t *testing.T) {
	d := NewDocument()
	input := el(d, "input")

	var got []string
	l := vdom.NewListener("input", func(v string) { got = append(got, v) })
	d.AddEventListener(input, "input", l)

	if n := d.Input(input, "hello"); n != 1 {
		t.Errorf("Input() ran %d listeners, want 1", n)
	}
	if len(got) != 1 || got[0] != "hello" {
		t.Errorf("got = %v", got)
	}

	d.RemoveEventListener(input, "input", l)
	if input.Listeners("input") != 0 {
		t.Error("listener should be removed")
	}
	if n := d.Dispatch(input, "input"); n != 0 {
		t.Errorf("Dispatch() ran %d listeners after removal", n)
	}
}

func TestSerialization(t *testing.T) {
	d := NewDocument()
	div := el(d, "div")
	d.SetAttribute(div, "title", `say "hi"`)
	d.SetStyle(div, "color", "red")
	d.SetStyle(div, "margin", "0")
	d.SetProperty(div, "value", 3)
	d.AddEventListener(div, "click", vdom.NewListener("click", func() {}))
	d.AppendChild(div, d.CreateText("a < b"))
	d.AppendChild(div, el(d, "br"))

	want := `<div title="say &quot;hi&quot;" style="color: red; margin: 0" data-prop-value="3" data-on-click="true">a &lt; b<br></div>`
	if got := div.OuterHTML(); got != want {
		t.Errorf("OuterHTML() =\n%s\nwant\n%s", got, want)
	}

	d.SetProperty(div, "value", nil)
	if div.Property("value") != nil {
		t.Error("nil SetProperty should clear the property")
	}
}

func TestPrettyHTML(t *testing.T) {
	d := NewDocument()
	ul := el(d, "ul")
	for _, s := range []string{"one", "two"} {
		li := el(d, "li")
		d.AppendChild(li, d.CreateText(s))
		d.AppendChild(ul, li)
	}
	d.AppendChild(d.Body(), ul)

	want := "<ul>\n  <li>one</li>\n  <li>two</li>\n</ul>\n"
	if got := d.Body().HTMLWith(HTMLOptions{Pretty: true}); got != want {
		t.Errorf("HTMLWith() =\n%q\nwant\n%q", got, want)
	}
	if got := d.Body().TextContent(); got != "onetwo" {
		t.Errorf("TextContent() = %q", got)
	}
}

func TestEscape(t *testing.T) {
	if got := escapeHTML(`<a href="x">'&'</a>`); got != "&lt;a href=&quot;x&quot;&gt;&#39;&amp;&#39;&lt;/a&gt;" {
		t.Errorf("escapeHTML() = %q", got)
	}
	if got := escapeAttr("a\tb\n"); got != "a&#9;b&#10;" {
		t.Errorf("escapeAttr() = %q", got)
	}
}
