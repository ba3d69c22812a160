package render

import (
	"strings"
	"testing"

	"github.com/matzehuels/relmap/pkg/graph"
)

func renderFixture(t *testing.T) *graph.Graph {
	t.Helper()
	cities, err := graph.NewVertexType("city", "Cities", true)
	if err != nil {
		t.Fatal(err)
	}
	people, err := graph.NewVertexType("person", "People", false)
	if err != nil {
		t.Fatal(err)
	}
	nyc, _ := cities.Add("nyc")
	alice, _ := people.Add("alice")
	bob, _ := people.Add("bob")

	g := graph.New(
		graph.WithTypes(cities, people),
		graph.WithIDFunc(graph.SequenceIDs()),
	)
	lives, err := graph.NewEdge(alice, nyc, "lives_in", false)
	if err != nil {
		t.Fatal(err)
	}
	visited, err := graph.NewEdge(bob, nyc, "visited", true)
	if err != nil {
		t.Fatal(err)
	}
	g.Collection().Add(lives, visited)
	return g
}

func TestToDOT(t *testing.T) {
	g := renderFixture(t)
	dot := ToDOT(g, Options{Membership: true})

	if !strings.HasPrefix(dot, "digraph G {") {
		t.Fatalf("missing digraph header:\n%s", dot)
	}
	wants := []string{
		// Vertex-type nodes carry the uppercase display name.
		`"city" [label="CITIES", color=dodgerblue, fontcolor=dodgerblue3];`,
		`"person" [label="PEOPLE", color=dodgerblue, fontcolor=dodgerblue3];`,
		// Entity nodes use the entity key, labeled with the raw value.
		`"alice.person" [label="alice", color=gray28, fontcolor=gray14];`,
		`"nyc.city" [label="nyc", color=gray28, fontcolor=gray14];`,
		// Membership edges group entities under their type.
		`"person" -> "alice.person" [color=dodgerblue, dir=none];`,
		// Undirected relation edges carry dir=none, directed ones do not.
		`"alice.person" -> "nyc.city" [id="edge-1", color=gray, fontcolor=gray, label="lives_in", dir=none];`,
		`"bob.person" -> "nyc.city" [id="edge-2", color=gray, fontcolor=gray, label="visited"];`,
	}
	for _, want := range wants {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
}

func TestToDOTDedupesEntityNodes(t *testing.T) {
	g := renderFixture(t)
	dot := ToDOT(g, Options{Membership: true})

	// nyc participates in both edges but appears as a node exactly once.
	if n := strings.Count(dot, `"nyc.city" [label=`); n != 1 {
		t.Errorf("nyc node emitted %d times, want 1", n)
	}
	if n := strings.Count(dot, `"city" -> "nyc.city"`); n != 1 {
		t.Errorf("nyc membership edge emitted %d times, want 1", n)
	}
}

func TestToDOTWithoutMembership(t *testing.T) {
	g := renderFixture(t)
	dot := ToDOT(g, Options{})

	if strings.Contains(dot, `"city" -> "nyc.city"`) {
		t.Errorf("membership edge emitted with Membership off:\n%s", dot)
	}
	if !strings.Contains(dot, `"alice.person" -> "nyc.city"`) {
		t.Errorf("relation edge missing:\n%s", dot)
	}
}

func TestToDOTEmptyGraph(t *testing.T) {
	g := graph.New(graph.WithIDFunc(graph.SequenceIDs()))
	dot := ToDOT(g, Options{Membership: true})

	if !strings.HasPrefix(dot, "digraph G {") || !strings.HasSuffix(dot, "}\n") {
		t.Errorf("empty graph DOT malformed:\n%s", dot)
	}
	if strings.Contains(dot, "->") {
		t.Errorf("empty graph emitted edges:\n%s", dot)
	}
}
