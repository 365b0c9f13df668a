package markup

// TextType is the component type used for text leaves.
const TextType = "#text"

// Component is the interactive-preview form of a Node: an element type, its
// props and children, mirroring how UI component libraries describe trees.
type Component struct {
	Type     string      `json:"type"`
	Props    Props       `json:"props,omitempty"`
	Text     string      `json:"text,omitempty"`
	Children []Component `json:"children,omitempty"`
}

// Props holds component properties. encoding/json writes map keys sorted, so
// payloads are byte-for-byte stable.
type Props map[string]string

// propNames maps HTML attribute names onto component prop names.
var propNames = map[string]string{
	"class": "className",
	"for":   "htmlFor",
}

// ToComponent converts n into a Component tree.
func ToComponent(n *Node) Component {
	if n == nil {
		return Component{}
	}
	if n.Kind == TextNode {
		return Component{Type: TextType, Text: n.Text}
	}

	c := Component{Type: n.Tag}
	if len(n.Attrs) > 0 {
		c.Props = make(Props, len(n.Attrs))
		for _, attr := range n.Attrs {
			key := attr.Key
			if mapped, ok := propNames[key]; ok {
				key = mapped
			}
			c.Props[key] = attr.Val
		}
	}
	for _, child := range n.Children {
		if child == nil {
			continue
		}
		c.Children = append(c.Children, ToComponent(child))
	}
	return c
}
