package vdom

// voidElements are elements that cannot have children.
var voidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"param":  true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// IsVoidElement returns true if the tag is a void element.
func IsVoidElement(tag string) bool {
	return voidElements[tag]
}

// Common HTML elements. Each is shorthand for H with the matching tag.

func Div(data Data, children any) *VNode     { return H("div", data, children) }
func Span(data Data, children any) *VNode    { return H("span", data, children) }
func P(data Data, children any) *VNode       { return H("p", data, children) }
func A(data Data, children any) *VNode       { return H("a", data, children) }
func Button(data Data, children any) *VNode  { return H("button", data, children) }
func Label(data Data, children any) *VNode   { return H("label", data, children) }
func Form(data Data, children any) *VNode    { return H("form", data, children) }
func Ul(data Data, children any) *VNode      { return H("ul", data, children) }
func Ol(data Data, children any) *VNode      { return H("ol", data, children) }
func Li(data Data, children any) *VNode      { return H("li", data, children) }
func Section(data Data, children any) *VNode { return H("section", data, children) }
func H1(data Data, children any) *VNode      { return H("h1", data, children) }
func H2(data Data, children any) *VNode      { return H("h2", data, children) }
func Table(data Data, children any) *VNode   { return H("table", data, children) }
func Tr(data Data, children any) *VNode      { return H("tr", data, children) }
func Td(data Data, children any) *VNode      { return H("td", data, children) }

// Void elements take no children.

func Input(data Data) *VNode { return H("input", data, nil) }
func Img(data Data) *VNode   { return H("img", data, nil) }
func Br() *VNode             { return H("br", nil, nil) }
