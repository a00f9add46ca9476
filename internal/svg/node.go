// Package svg builds and serializes a small tree of markup nodes.
package svg

import (
	"slices"
	"strconv"
	"strings"
)

// Kind distinguishes the two node variants.
type Kind int

const (
	KindText Kind = iota
	KindElement
)

// Node is either a text leaf or an element.
type Node struct {
	kind Kind
	text string
	el   *Element
}

// Text returns a text leaf. Its content is escaped on serialization.
func Text(s string) Node {
	return Node{kind: KindText, text: s}
}

// Kind returns the variant of the node.
func (n Node) Kind() Kind {
	return n.kind
}

// Element returns the element of an element node, or nil for text.
func (n Node) Element() *Element {
	return n.el
}

// TextValue returns the content of a text node.
func (n Node) TextValue() string {
	return n.text
}

// Attr is a single name/value pair.
type Attr struct {
	Name  string
	Value string
}

// A is shorthand for constructing an Attr.
func A(name, value string) Attr {
	return Attr{Name: name, Value: value}
}

// Element is a tagged node with attributes and ordered children.
// Attributes are unique by name; setting a name twice keeps the last value.
type Element struct {
	Tag      string
	attrs    map[string]string
	children []Node
}

// New creates an element with the given attributes.
func New(tag string, attrs ...Attr) *Element {
	el := &Element{Tag: tag, attrs: make(map[string]string, len(attrs))}
	for _, a := range attrs {
		el.attrs[a.Name] = a.Value
	}
	return el
}

// Set assigns an attribute, replacing any previous value.
func (e *Element) Set(name, value string) *Element {
	e.attrs[name] = value
	return e
}

// Attr returns the value of an attribute.
func (e *Element) Attr(name string) (string, bool) {
	v, ok := e.attrs[name]
	return v, ok
}

// AttrNames returns the attribute names in serialization order.
func (e *Element) AttrNames() []string {
	names := make([]string, 0, len(e.attrs))
	for name := range e.attrs {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Append adds child elements in order.
func (e *Element) Append(children ...*Element) *Element {
	for _, c := range children {
		e.children = append(e.children, c.Node())
	}
	return e
}

// AppendText adds a text leaf.
func (e *Element) AppendText(s string) *Element {
	e.children = append(e.children, Text(s))
	return e
}

// Children returns the child nodes.
func (e *Element) Children() []Node {
	return e.children
}

// Node wraps the element as a Node.
func (e *Element) Node() Node {
	return Node{kind: KindElement, el: e}
}

// String serializes the element and its subtree.
func (e *Element) String() string {
	var b strings.Builder
	e.Node().write(&b)
	return b.String()
}

// String serializes the node.
func (n Node) String() string {
	var b strings.Builder
	n.write(&b)
	return b.String()
}

func (n Node) write(b *strings.Builder) {
	if n.kind == KindText {
		b.WriteString(escape(n.text))
		return
	}

	el := n.el
	b.WriteByte('<')
	b.WriteString(el.Tag)
	for _, name := range el.AttrNames() {
		b.WriteByte(' ')
		b.WriteString(name)
		b.WriteString(`="`)
		b.WriteString(escape(el.attrs[name]))
		b.WriteByte('"')
	}
	b.WriteByte('>')
	for _, child := range el.children {
		child.write(b)
	}
	b.WriteString("</")
	b.WriteString(el.Tag)
	b.WriteByte('>')
}

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

// escape replaces the XML special characters.
func escape(s string) string {
	return xmlEscaper.Replace(s)
}

// Num formats a coordinate in its shortest decimal form.
func Num(v float64) string {
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Int formats an integer attribute value.
func Int(v int) string {
	return strconv.Itoa(v)
}
