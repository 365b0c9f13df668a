package markup

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func sample() *Node {
	return El("div", Class("card"),
		El("h1", nil, Text("Tom & <Jerry>")),
		El("a", Attrs("href", `https://x.dev/?q="1"`, "target", "", "rel", "noopener"), Text("link")),
		El("img", Attrs("src", "data:image/png;base64,AA", "alt", "")),
		nil,
	)
}

func TestRenderHTML_EscapesTextAndAttributes(t *testing.T) {
	out, err := HTML(sample())
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	want := `<div class="card"><h1>Tom &amp; &lt;Jerry&gt;</h1>` +
		`<a href="https://x.dev/?q=&#34;1&#34;" rel="noopener">link</a>` +
		`<img src="data:image/png;base64,AA" alt=""/></div>`
	if diff := cmp.Diff(want, out); diff != "" {
		t.Fatalf("html mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderHTML_InjectionStaysText(t *testing.T) {
	out, err := HTML(El("p", nil, Text("<script>alert(1)</script>")))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(out, "<script>") {
		t.Fatalf("script tag leaked into output: %s", out)
	}
}

func TestRenderHTML_RejectsRawTextElements(t *testing.T) {
	if _, err := HTML(El("script", nil, Text("x"))); err == nil {
		t.Fatalf("expected error for script element")
	}
	if _, err := HTML(&Node{Kind: ElementNode}); err == nil {
		t.Fatalf("expected error for element without tag")
	}
}

func TestToComponent(t *testing.T) {
	got := ToComponent(sample())
	want := Component{
		Type:  "div",
		Props: Props{"className": "card"},
		Children: []Component{
			{Type: "h1", Children: []Component{{Type: TextType, Text: "Tom & <Jerry>"}}},
			{
				Type:     "a",
				Props:    Props{"href": `https://x.dev/?q="1"`, "rel": "noopener"},
				Children: []Component{{Type: TextType, Text: "link"}},
			},
			{Type: "img", Props: Props{"src": "data:image/png;base64,AA", "alt": ""}},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("component mismatch (-want +got):\n%s", diff)
	}
}

func TestProps_MarshalSorted(t *testing.T) {
	data, err := json.Marshal(Component{Type: "a", Props: Props{"rel": "x", "href": "y", "className": "z"}})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"type":"a","props":{"className":"z","href":"y","rel":"x"}}`
	if string(data) != want {
		t.Fatalf("unexpected json:\n%s", data)
	}
}

func TestTextContent(t *testing.T) {
	if got := sample().TextContent(); got != "Tom & <Jerry>link" {
		t.Fatalf("text content = %q", got)
	}
}
