package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/relmap/pkg/graph"
)

func tuiFixture(t *testing.T) (LinkModel, *graph.Graph) {
	t.Helper()
	cities, err := graph.NewVertexType("city", "Cities", true)
	if err != nil {
		t.Fatal(err)
	}
	people, err := graph.NewVertexType("person", "People", false)
	if err != nil {
		t.Fatal(err)
	}
	cities.Add("nyc")
	cities.Add("la")
	people.Add("alice")
	people.Add("bob")

	g := graph.New(
		graph.WithTypes(cities, people),
		graph.WithIDFunc(graph.SequenceIDs()),
	)
	central, _ := g.CentralType()
	return NewLinkModel(g, central, "lives_in", nil), g
}

func key(s string) tea.KeyMsg {
	switch s {
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m LinkModel, keys ...string) LinkModel {
	t.Helper()
	for _, k := range keys {
		updated, _ := m.Update(key(k))
		var ok bool
		m, ok = updated.(LinkModel)
		if !ok {
			t.Fatalf("Update returned %T", updated)
		}
	}
	return m
}

func TestLinkModelPanes(t *testing.T) {
	m, _ := tuiFixture(t)
	// Two vertex-type panes plus the edge pane.
	if len(m.panes) != 3 {
		t.Fatalf("panes = %d, want 3", len(m.panes))
	}
	if m.panes[0].vt == nil || m.panes[1].vt == nil {
		t.Error("entity panes missing vertex types")
	}
	if m.panes[2].vt != nil {
		t.Error("edge pane should not carry a vertex type")
	}
}

func TestLinkModelMarkAndLink(t *testing.T) {
	m, g := tuiFixture(t)

	// Mark nyc in the cities pane, alice and bob in the people pane, link.
	m = press(t, m, "space", "tab", "space", "down", "space", "l")

	if g.Collection().Len() != 2 {
		t.Fatalf("edges = %d, want 2", g.Collection().Len())
	}
	// Central-biased: both edges end at the central city.
	for _, e := range g.Collection().Edges() {
		if e.To.Key() != "nyc.city" {
			t.Errorf("edge %s does not end at central", e)
		}
		if e.Type != "lives_in" {
			t.Errorf("edge type = %q", e.Type)
		}
	}
	if !strings.Contains(m.status, "linked 2") {
		t.Errorf("status = %q", m.status)
	}
	if !m.dirty {
		t.Error("model not marked dirty after linking")
	}
	for _, p := range m.panes[:2] {
		if len(p.marked) != 0 {
			t.Error("marks not cleared after linking")
		}
	}
}

func TestLinkModelLinkNothingMarked(t *testing.T) {
	m, g := tuiFixture(t)
	m = press(t, m, "l")
	if g.Collection().Len() != 0 {
		t.Error("edges created with nothing marked")
	}
	if m.status != "nothing marked" {
		t.Errorf("status = %q", m.status)
	}
}

func TestLinkModelToggleMark(t *testing.T) {
	m, _ := tuiFixture(t)
	m = press(t, m, "space", "space")
	if len(m.panes[0].marked) != 0 {
		t.Errorf("marked = %v, want empty after toggle", m.panes[0].marked)
	}
}

func TestLinkModelDeleteEdge(t *testing.T) {
	m, g := tuiFixture(t)
	m = press(t, m, "space", "tab", "space", "l")
	if g.Collection().Len() != 1 {
		t.Fatalf("edges = %d, want 1", g.Collection().Len())
	}

	// Move to the edge pane and delete the edge under the cursor.
	m = press(t, m, "tab", "d")
	if g.Collection().Len() != 0 {
		t.Errorf("edges = %d after delete, want 0", g.Collection().Len())
	}
	if !strings.Contains(m.status, "deleted edge 1") {
		t.Errorf("status = %q", m.status)
	}
}

func TestLinkModelFilter(t *testing.T) {
	m, _ := tuiFixture(t)
	m = press(t, m, "/", "n", "y", "enter")

	items := m.visibleItems(0)
	if len(items) != 1 || items[0] != "nyc" {
		t.Errorf("filtered items = %v, want [nyc]", items)
	}
	if m.filtering {
		t.Error("still filtering after enter")
	}
}

func TestLinkModelHideLinked(t *testing.T) {
	m, _ := tuiFixture(t)
	m = press(t, m, "space", "tab", "space", "l")

	m = press(t, m, "h")
	// alice is now linked and hidden; bob remains.
	items := m.visibleItems(1)
	if len(items) != 1 || items[0] != "bob" {
		t.Errorf("people items with hide-linked = %v, want [bob]", items)
	}

	m = press(t, m, "h")
	if items := m.visibleItems(1); len(items) != 2 {
		t.Errorf("people items after toggle off = %v", items)
	}
}

func TestLinkModelSave(t *testing.T) {
	m, _ := tuiFixture(t)
	saved := false
	m.save = func(*graph.Graph) error {
		saved = true
		return nil
	}
	m = press(t, m, "space", "tab", "space", "l", "s")
	if !saved {
		t.Error("save callback not invoked")
	}
	if m.dirty {
		t.Error("dirty flag not cleared after save")
	}
}

func TestLinkModelView(t *testing.T) {
	m, _ := tuiFixture(t)
	view := m.View()
	for _, want := range []string{"relmap link", "Cities", "People", "Edges", "nyc", "alice"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
