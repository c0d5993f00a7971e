package labels

import (
	"bytes"
	"strings"
	"sync"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Target is the render target a Renderer writes into. The methods mirror
// the three DOM mutations the renderer performs.
type Target interface {
	// Clear removes every child.
	Clear()
	// SetText replaces all children with a single text node.
	SetText(text string)
	// Append adds n as the last child.
	Append(n *html.Node)
}

// NodeTarget is a Target backed by an in-memory container element.
type NodeTarget struct {
	mu        sync.RWMutex
	container *html.Node
}

// NewNodeTarget returns an empty <div> target with the given id.
func NewNodeTarget(id string) *NodeTarget {
	div := &html.Node{Type: html.ElementNode, DataAtom: atom.Div, Data: "div"}
	if id != "" {
		div.Attr = []html.Attribute{{Key: "id", Val: id}}
	}
	return &NodeTarget{container: div}
}

func (t *NodeTarget) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.clear()
}

func (t *NodeTarget) clear() {
	for c := t.container.FirstChild; c != nil; {
		next := c.NextSibling
		t.container.RemoveChild(c)
		c = next
	}
}

func (t *NodeTarget) SetText(text string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.clear()
	if text != "" {
		t.container.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	}
}

func (t *NodeTarget) Append(n *html.Node) {
	if n == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
	t.container.AppendChild(n)
}

// HTML returns the container's inner HTML.
func (t *NodeTarget) HTML() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	var buf bytes.Buffer
	for c := t.container.FirstChild; c != nil; c = c.NextSibling {
		_ = html.Render(&buf, c)
	}
	return buf.String()
}

// OuterHTML renders the container element itself.
func (t *NodeTarget) OuterHTML() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	var buf bytes.Buffer
	_ = html.Render(&buf, t.container)
	return buf.String()
}

// Text returns the concatenated text content.
func (t *NodeTarget) Text() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(t.container)
	return b.String()
}
