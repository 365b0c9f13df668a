package markup

import "strings"

// Kind distinguishes element nodes from text nodes.
type Kind int

const (
	ElementNode Kind = iota
	TextNode
)

// Attr is a single attribute. Attributes keep insertion order.
type Attr struct {
	Key string
	Val string
}

// Node is an element or a text leaf.
type Node struct {
	Kind     Kind
	Tag      string
	Attrs    []Attr
	Text     string
	Children []*Node
}

// El builds an element node. Nil children are skipped so callers can inline
// optional parts.
func El(tag string, attrs []Attr, children ...*Node) *Node {
	n := &Node{Kind: ElementNode, Tag: tag, Attrs: attrs}
	return n.Append(children...)
}

// Text builds a text leaf.
func Text(value string) *Node {
	return &Node{Kind: TextNode, Text: value}
}

// Attrs builds an attribute list from key/value pairs. Pairs with an empty
// value are dropped, except for "alt" which is meaningful when empty.
func Attrs(pairs ...string) []Attr {
	out := make([]Attr, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		if pairs[i+1] == "" && pairs[i] != "alt" {
			continue
		}
		out = append(out, Attr{Key: pairs[i], Val: pairs[i+1]})
	}
	return out
}

// Class is shorthand for a single class attribute.
func Class(names ...string) []Attr {
	return Attrs("class", strings.Join(names, " "))
}

// Append adds non-nil children and returns n.
func (n *Node) Append(children ...*Node) *Node {
	for _, child := range children {
		if child != nil {
			n.Children = append(n.Children, child)
		}
	}
	return n
}

// Attr returns the value of key.
func (n *Node) Attr(key string) (string, bool) {
	for _, attr := range n.Attrs {
		if attr.Key == key {
			return attr.Val, true
		}
	}
	return "", false
}

// Walk visits n and its descendants depth first. Returning false from fn
// skips the children of the current node.
func (n *Node) Walk(fn func(*Node) bool) {
	if n == nil {
		return
	}
	if !fn(n) {
		return
	}
	for _, child := range n.Children {
		child.Walk(fn)
	}
}

// TextContent concatenates every text leaf below n.
func (n *Node) TextContent() string {
	var b strings.Builder
	n.Walk(func(node *Node) bool {
		if node.Kind == TextNode {
			b.WriteString(node.Text)
		}
		return true
	})
	return b.String()
}
