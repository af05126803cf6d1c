package markdown

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	gmtext "github.com/yuin/goldmark/text"
)

// NodeKind identifies the markdown node types the extractors react to.
// Everything else is KindOther and only traversed.
type NodeKind int

const (
	KindOther NodeKind = iota
	KindOrderedList
	KindUnorderedList
	KindListItem
)

// Node is a document node reduced to the closed kind set, carrying the byte
// range it spans in the source text.
type Node struct {
	Kind     NodeKind
	Children []*Node

	start int
	stop  int
}

// Tree holds a parsed markdown document together with its source, so the
// verbatim text of any node can be recovered.
type Tree struct {
	Root *Node

	src []byte
}

// BuildTree parses markdown into a reduced node tree. It never fails: input
// goldmark cannot make sense of yields a tree without list nodes, which the
// extractors turn into an empty plan. A fresh goldmark parser is created per
// call so concurrent parses cannot interfere.
func BuildTree(source string) *Tree {
	src := []byte(source)
	doc := goldmark.DefaultParser().Parse(gmtext.NewReader(src))
	return &Tree{Root: convert(doc, src), src: src}
}

// SpanText returns the raw source text covered by the node, including every
// continuation line of nested content. Returns "" for nodes without a span.
func (t *Tree) SpanText(n *Node) string {
	if n.start < 0 || n.start >= n.stop || n.stop > len(t.src) {
		return ""
	}
	return string(t.src[n.start:n.stop])
}

// TopLevelOrderedLists returns the ordered lists that are direct children of
// the document root, in document order.
func (t *Tree) TopLevelOrderedLists() []*Node {
	var lists []*Node
	for _, c := range t.Root.Children {
		if c.Kind == KindOrderedList {
			lists = append(lists, c)
		}
	}
	return lists
}

func convert(n ast.Node, src []byte) *Node {
	node := &Node{Kind: kindOf(n)}
	node.start, node.stop = span(n)
	if node.Kind == KindListItem && node.start > 0 {
		// goldmark spans start after the list marker; pull the span back to
		// the beginning of the line so the bullet or number is part of the
		// text the patterns see.
		node.start = lineStart(src, node.start)
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		node.Children = append(node.Children, convert(c, src))
	}
	return node
}

func kindOf(n ast.Node) NodeKind {
	switch v := n.(type) {
	case *ast.List:
		if v.IsOrdered() {
			return KindOrderedList
		}
		return KindUnorderedList
	case *ast.ListItem:
		return KindListItem
	default:
		return KindOther
	}
}

// span computes the byte range covered by a goldmark node as the union of its
// own line segments and those of all descendants. Returns (-1, -1) for nodes
// with no source attribution.
func span(n ast.Node) (start, stop int) {
	start, stop = -1, -1
	if n.Type() == ast.TypeBlock {
		if lines := n.Lines(); lines != nil && lines.Len() > 0 {
			start = lines.At(0).Start
			stop = lines.At(lines.Len() - 1).Stop
		}
	} else if txt, ok := n.(*ast.Text); ok {
		start, stop = txt.Segment.Start, txt.Segment.Stop
	}

	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		cs, ce := span(c)
		if cs < 0 {
			continue
		}
		if start < 0 || cs < start {
			start = cs
		}
		if ce > stop {
			stop = ce
		}
	}
	return start, stop
}

func lineStart(src []byte, pos int) int {
	for pos > 0 && src[pos-1] != '\n' {
		pos--
	}
	return pos
}
