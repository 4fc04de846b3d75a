//go:build js && wasm

package jsdom

import (
	"syscall/js"
	"testing"

	"github.com/sunnyxujian/minivue/pkg/vdom"
)

// fakeDocument is a small DOM with the node links and methods the backend
// uses.
const fakeDocument = `(function () {
  function relink(p) {
    p.firstChild = p.kids.length ? p.kids[0] : null;
    p.kids.forEach(function (k, i) {
      k.parentNode = p;
      k.nextSibling = i + 1 < p.kids.length ? p.kids[i + 1] : null;
    });
  }
  function detach(c) {
    if (c.parentNode) {
      var p = c.parentNode;
      p.kids.splice(p.kids.indexOf(c), 1);
      relink(p);
      c.parentNode = null;
      c.nextSibling = null;
    }
  }
  function node(tag) {
    return {
      tagName: tag, kids: [], firstChild: null, nextSibling: null, parentNode: null,
      attrs: {}, listeners: 0,
      style: { setProperty: function () {}, removeProperty: function () {} },
      appendChild: function (c) { detach(c); this.kids.push(c); relink(this); return c; },
      insertBefore: function (c, ref) {
        detach(c); this.kids.splice(this.kids.indexOf(ref), 0, c); relink(this); return c;
      },
      removeChild: function (c) { detach(c); return c; },
      setAttribute: function (k, v) { this.attrs[k] = v; },
      removeAttribute: function (k) { delete this.attrs[k]; },
      addEventListener: function () { this.listeners++; },
      removeEventListener: function () { this.listeners--; }
    };
  }
  return {
    createElement: function (tag) { return node(tag); },
    createElementNS: function (ns, tag) { return node(tag); },
    createTextNode: function (text) { var n = node("#text"); n.nodeValue = text; return n; },
    getElementById: function () { return null; },
    querySelector: function () { return null; }
  };
})()`

func newDOM(t *testing.T) *DOM {
	t.Helper()
	doc := js.Global().Call("eval", fakeDocument)
	if doc.IsUndefined() {
		t.Fatal("fake document did not evaluate")
	}
	return NewWithDocument(doc)
}

func TestHandlesAreStable(t *testing.T) {
	d := newDOM(t)
	parent := d.CreateElement("div", false)
	child := d.CreateText("x")
	d.AppendChild(parent, child)

	if d.Parent(child) != parent {
		t.Error("Parent() should return the cached wrapper")
	}
	if d.NextSibling(child) != nil {
		t.Error("NextSibling() of the last child should be nil")
	}
}

func TestRemoveChildForgetsSubtree(t *testing.T) {
	d := newDOM(t)
	root := d.CreateElement("div", false)
	list := d.CreateElement("ul", false)
	item := d.CreateElement("li", false)
	text := d.CreateText("x")
	d.AppendChild(root, list)
	d.AppendChild(list, item)
	d.AppendChild(item, text)

	l := vdom.NewListener("click", func() {})
	d.AddEventListener(item, "click", l)
	d.AddEventListener(list, "click", l)

	d.RemoveChild(root, list)

	if len(d.nodes) != 1 {
		t.Errorf("cached wrappers = %d, want 1 (root only)", len(d.nodes))
	}
	if len(d.listeners) != 0 {
		t.Errorf("listener funcs = %d, want 0", len(d.listeners))
	}
	if got := item.(*Node).Value.Get("listeners").Int(); got != 0 {
		t.Errorf("item listeners = %d, want 0", got)
	}
	for _, n := range []*Node{list.(*Node), item.(*Node), text.(*Node)} {
		if n.Value.Get(handleKey).Type() == js.TypeNumber {
			t.Errorf("%s still carries a handle id", n.Value.Get("tagName").String())
		}
	}

	// Removing a listener after the subtree was forgotten is a no-op.
	d.RemoveEventListener(item, "click", l)
}

func TestRemoveEventListener(t *testing.T) {
	d := newDOM(t)
	btn := d.CreateElement("button", false)
	l := vdom.NewListener("click", func() {})

	d.AddEventListener(btn, "click", l)
	d.RemoveEventListener(btn, "click", l)

	if len(d.listeners) != 0 {
		t.Errorf("listener funcs = %d, want 0", len(d.listeners))
	}
	if got := btn.(*Node).Value.Get("listeners").Int(); got != 0 {
		t.Errorf("button listeners = %d, want 0", got)
	}
}
