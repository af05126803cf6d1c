package markdown

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildTreeKinds(t *testing.T) {
	tree := BuildTree("1. Section:\n   - [x] step\n")

	lists := tree.TopLevelOrderedLists()
	require.Len(t, lists, 1)

	list := lists[0]
	assert.Equal(t, KindOrderedList, list.Kind)
	require.NotEmpty(t, list.Children)

	item := list.Children[0]
	assert.Equal(t, KindListItem, item.Kind)

	var nested *Node
	for _, c := range item.Children {
		if c.Kind == KindUnorderedList {
			nested = c
		}
	}
	require.NotNil(t, nested, "expected a nested unordered list")
}

func TestSpanTextIncludesMarkers(t *testing.T) {
	tree := BuildTree("1. Section:\n   - [x] step\n")

	lists := tree.TopLevelOrderedLists()
	require.Len(t, lists, 1)

	item := lists[0].Children[0]
	text := tree.SpanText(item)
	assert.True(t, strings.HasPrefix(text, "1. Section:"), "span %q should start with the list marker", text)
	assert.Contains(t, text, "- [x] step")
}

func TestBuildTreeNoLists(t *testing.T) {
	tree := BuildTree("just a paragraph\n\n# and a heading\n")
	assert.Empty(t, tree.TopLevelOrderedLists())
}

func TestBuildTreeEmptyInput(t *testing.T) {
	tree := BuildTree("")
	require.NotNil(t, tree.Root)
	assert.Empty(t, tree.TopLevelOrderedLists())
}

func TestSpanTextOutOfRangeSafe(t *testing.T) {
	tree := BuildTree("text")
	n := &Node{Kind: KindOther, start: -1, stop: -1}
	assert.Equal(t, "", tree.SpanText(n))
}
