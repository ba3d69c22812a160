package graph

// ItemList is a named collection of displayable items. List-based UIs
// render one pane per ItemList; both vertex types and the edge list
// implement it, so the edge pane needs no special casing.
type ItemList interface {
	// Title returns the pane heading.
	Title() string
	// Items returns the display string for each item, in stable order.
	Items() []string
}

// Title implements [ItemList] for a vertex type using its display name.
func (t *VertexType) Title() string { return t.name }

// Items implements [ItemList] for a vertex type: the entity values in
// insertion order.
func (t *VertexType) Items() []string { return t.Values() }

// EdgeItems adapts an [EdgeCollection] to [ItemList] under the given
// title. Items are the human-readable edge renderings, in insertion
// order, one per stored edge.
func EdgeItems(c *EdgeCollection, title string) ItemList {
	return edgeItemList{coll: c, title: title}
}

type edgeItemList struct {
	coll  *EdgeCollection
	title string
}

func (l edgeItemList) Title() string { return l.title }

func (l edgeItemList) Items() []string {
	edges := l.coll.Edges()
	out := make([]string, len(edges))
	for i, e := range edges {
		out[i] = e.String()
	}
	return out
}
