package graph

import (
	"errors"
	"strings"
	"testing"
)

// edgeFixture builds two vertex types with a few entities for edge tests.
func edgeFixture(t *testing.T) (a, b, c Entity) {
	t.Helper()
	people := mustType(t, "person", "", false)
	cities := mustType(t, "city", "", false)
	a = mustAdd(t, people, "alice")
	b = mustAdd(t, cities, "nyc")
	c = mustAdd(t, cities, "la")
	return a, b, c
}

func TestNewEdge(t *testing.T) {
	a, b, _ := edgeFixture(t)

	if _, err := NewEdge(Entity{}, b, "", false); !errors.Is(err, ErrMissingEndpoint) {
		t.Errorf("missing from: err = %v, want ErrMissingEndpoint", err)
	}
	if _, err := NewEdge(a, Entity{}, "", false); !errors.Is(err, ErrMissingEndpoint) {
		t.Errorf("missing to: err = %v, want ErrMissingEndpoint", err)
	}
	if _, err := NewEdge(a, b, "lives_in", true); err != nil {
		t.Errorf("valid edge: %v", err)
	}
}

func TestEdgeIdentity(t *testing.T) {
	a, b, c := edgeFixture(t)

	mk := func(from, to Entity, typ string, directed bool) Edge {
		e, err := NewEdge(from, to, typ, directed)
		if err != nil {
			t.Fatalf("NewEdge: %v", err)
		}
		return e
	}

	tests := []struct {
		name string
		x, y Edge
		want bool
	}{
		{"UndirectedSwappedEndpoints", mk(a, b, "t", false), mk(b, a, "t", false), true},
		{"UndirectedDifferentType", mk(a, b, "t", false), mk(a, b, "u", false), false},
		{"UndirectedUntypedVsTyped", mk(a, b, "", false), mk(a, b, "t", false), false},
		{"UndirectedDifferentPair", mk(a, b, "t", false), mk(a, c, "t", false), false},
		{"DirectedSameOrder", mk(a, b, "t", true), mk(a, b, "t", true), true},
		{"DirectedSwappedEndpoints", mk(a, b, "t", true), mk(b, a, "t", true), false},
		{"DirectedVsUndirected", mk(a, b, "t", true), mk(a, b, "t", false), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.x.Equal(tt.y); got != tt.want {
				t.Errorf("Equal = %v, want %v", got, tt.want)
			}
			// Equality and key identity must agree in both directions.
			if got := tt.y.Equal(tt.x); got != tt.want {
				t.Errorf("reverse Equal = %v, want %v", got, tt.want)
			}
			if got := tt.x.Key() == tt.y.Key(); got != tt.want {
				t.Errorf("Key match = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEdgePairKey(t *testing.T) {
	a, b, _ := edgeFixture(t)

	ab, _ := NewEdge(a, b, "t", false)
	ba, _ := NewEdge(b, a, "u", true)

	if ab.PairKey() != ba.PairKey() {
		t.Errorf("PairKey differs across direction/type: %q vs %q", ab.PairKey(), ba.PairKey())
	}
}

func TestEdgeSelfRef(t *testing.T) {
	a, b, _ := edgeFixture(t)

	self := Edge{From: a, To: a}
	if !self.SelfRef() {
		t.Error("SelfRef() = false for matching endpoints")
	}
	pair := Edge{From: a, To: b}
	if pair.SelfRef() {
		t.Error("SelfRef() = true for distinct endpoints")
	}
}

func TestEdgeString(t *testing.T) {
	a, b, _ := edgeFixture(t)

	tests := []struct {
		name string
		edge Edge
		want string
	}{
		{"Untyped", Edge{From: a, To: b}, "[alice.person] --- [nyc.city]"},
		{"Typed", Edge{From: a, To: b, Type: "lives_in"}, "[alice.person] --.lives_in.-- [nyc.city]"},
		{"TypedDirected", Edge{From: a, To: b, Type: "lives_in", Directed: true}, "[alice.person] --.lives_in.-->> [nyc.city]"},
		{"WithID", Edge{From: a, To: b, ID: 3}, "(3) [alice.person] --- [nyc.city]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.edge.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEdgeKeyModeMarker(t *testing.T) {
	a, b, _ := edgeFixture(t)

	und, _ := NewEdge(a, b, "t", false)
	dir, _ := NewEdge(a, b, "t", true)
	if !strings.HasPrefix(und.Key(), "u|") {
		t.Errorf("undirected key %q lacks mode marker", und.Key())
	}
	if !strings.HasPrefix(dir.Key(), "d|") {
		t.Errorf("directed key %q lacks mode marker", dir.Key())
	}
}
