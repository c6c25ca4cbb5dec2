package scene

import (
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/matzehuels/stackbar/pkg/chart/layout"
)

// Kind is the type of a node.
type Kind string

const (
	KindGroup   Kind = "group"
	KindRect    Kind = "rect"
	KindText    Kind = "text"
	KindPath    Kind = "path"
	KindEllipse Kind = "ellipse"
	KindLine    Kind = "line"
)

// Attr is one presentation attribute. Names follow SVG.
type Attr struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Node is one element of the scene tree.
type Node struct {
	Kind     Kind    `json:"kind"`
	Attrs    []Attr  `json:"attrs,omitempty"`
	Text     string  `json:"text,omitempty"`
	Children []*Node `json:"children,omitempty"`
}

// Attr returns the value of the named attribute.
func (n *Node) Attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Set adds or replaces an attribute.
func (n *Node) Set(name, value string) *Node {
	for i, a := range n.Attrs {
		if a.Name == name {
			n.Attrs[i].Value = value
			return n
		}
	}
	n.Attrs = append(n.Attrs, Attr{name, value})
	return n
}

// Add appends children and returns n.
func (n *Node) Add(children ...*Node) *Node {
	for _, c := range children {
		if c != nil {
			n.Children = append(n.Children, c)
		}
	}
	return n
}

// Walk visits n and its descendants depth-first, stopping early when fn
// returns false.
func (n *Node) Walk(fn func(*Node) bool) bool {
	if !fn(n) {
		return false
	}
	for _, c := range n.Children {
		if !c.Walk(fn) {
			return false
		}
	}
	return true
}

// Find returns all nodes in the tree carrying class.
func (n *Node) Find(class string) []*Node {
	var out []*Node
	n.Walk(func(x *Node) bool {
		if c, ok := x.Attr("class"); ok && hasClass(c, class) {
			out = append(out, x)
		}
		return true
	})
	return out
}

func hasClass(list, class string) bool {
	for _, c := range strings.Fields(list) {
		if c == class {
			return true
		}
	}
	return false
}

// Pattern is a fill pattern definition.
type Pattern struct {
	ID         string  `json:"id"`
	Type       string  `json:"type"` // "stripes" or "dots"
	Size       float64 `json:"size"`
	Color      string  `json:"color"`
	Background string  `json:"background"`
}

// Scene is a drawable chart.
type Scene struct {
	ID       string    `json:"id"`
	Width    float64   `json:"width"`
	Height   float64   `json:"height"`
	Patterns []Pattern `json:"patterns,omitempty"`
	Root     *Node     `json:"root"`
	// Messages are shown in the container: the fatal message alone, or
	// one banner per contained failure.
	Messages []string `json:"messages,omitempty"`
	Fatal    bool     `json:"fatal,omitempty"`
	// Interactive is set when the scene carries tooltip panels.
	Interactive bool `json:"interactive,omitempty"`
}

// sceneNamespace scopes scene ids.
var sceneNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/matzehuels/stackbar/scene"))

// sceneID derives a stable id from the chart content.
func sceneID(l *layout.Layout) uuid.UUID {
	var b strings.Builder
	b.WriteString(num(l.Viewport.Width))
	b.WriteByte('x')
	b.WriteString(num(l.Viewport.Height))
	for _, s := range l.Order {
		b.WriteString("|s:")
		b.WriteString(s)
	}
	for _, c := range l.Categories {
		b.WriteString("|c:")
		b.WriteString(c)
	}
	for _, series := range l.Stacks {
		for _, seg := range series {
			b.WriteByte('|')
			b.WriteString(strconv.FormatFloat(seg.Value, 'g', -1, 64))
		}
	}
	return uuid.NewSHA1(sceneNamespace, []byte(b.String()))
}

// Fatal returns a scene showing only msg, centred in the container.
func Fatal(width, height float64, msg string) *Scene {
	root := &Node{Kind: KindGroup, Attrs: []Attr{{"class", "chart fatal"}}}
	root.Add(&Node{
		Kind: KindText,
		Attrs: []Attr{
			{"class", "message"},
			{"x", num(width / 2)},
			{"y", num(height / 2)},
			{"text-anchor", "middle"},
			{"dominant-baseline", "middle"},
			{"font-size", "13"},
			{"fill", messageColor},
		},
		Text: msg,
	})
	return &Scene{
		ID:       uuid.NewSHA1(sceneNamespace, []byte("fatal|"+msg)).String(),
		Width:    width,
		Height:   height,
		Root:     root,
		Messages: []string{msg},
		Fatal:    true,
	}
}

// num formats a coordinate with at most two decimals.
func num(v float64) string {
	r := math.Round(v*100) / 100
	if r == 0 {
		r = 0 // drop negative zero
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}
