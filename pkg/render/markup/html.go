package markup

import (
	"bytes"
	"fmt"
	"io"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// RenderHTML writes n as HTML. Text and attribute values are escaped by the
// x/net/html serializer.
func RenderHTML(w io.Writer, n *Node) error {
	if n == nil {
		return nil
	}
	converted, err := toHTML(n)
	if err != nil {
		return err
	}
	if err := html.Render(w, converted); err != nil {
		return fmt.Errorf("markup: render html: %w", err)
	}
	return nil
}

// HTML renders n into a string.
func HTML(n *Node) (string, error) {
	var buf bytes.Buffer
	if err := RenderHTML(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func toHTML(n *Node) (*html.Node, error) {
	switch n.Kind {
	case TextNode:
		return &html.Node{Type: html.TextNode, Data: n.Text}, nil
	case ElementNode:
		if n.Tag == "" {
			return nil, fmt.Errorf("markup: element without tag")
		}
		if rawText[n.Tag] {
			return nil, fmt.Errorf("markup: %s elements are not supported", n.Tag)
		}
		out := &html.Node{
			Type:     html.ElementNode,
			Data:     n.Tag,
			DataAtom: atom.Lookup([]byte(n.Tag)),
		}
		for _, attr := range n.Attrs {
			out.Attr = append(out.Attr, html.Attribute{Key: attr.Key, Val: attr.Val})
		}
		for _, child := range n.Children {
			converted, err := toHTML(child)
			if err != nil {
				return nil, err
			}
			out.AppendChild(converted)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("markup: unknown node kind %d", n.Kind)
	}
}

// Elements whose contents the serializer writes without escaping.
var rawText = map[string]bool{
	"script":    true,
	"style":     true,
	"xmp":       true,
	"iframe":    true,
	"noembed":   true,
	"noframes":  true,
	"plaintext": true,
	"noscript":  true,
}
