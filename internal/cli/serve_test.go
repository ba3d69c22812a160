package cli

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/matzehuels/relmap/pkg/graph"
)

func serveFixture(t *testing.T) *graph.Graph {
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

	g := graph.New(
		graph.WithTypes(cities, people),
		graph.WithIDFunc(graph.SequenceIDs()),
	)
	e, err := graph.NewEdge(alice, nyc, "lives_in", false)
	if err != nil {
		t.Fatal(err)
	}
	g.Collection().Add(e)
	return g
}

func TestServeHealthz(t *testing.T) {
	srv := httptest.NewServer(newServeHandler(serveFixture(t)))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}
}

func TestServeGraphJSON(t *testing.T) {
	srv := httptest.NewServer(newServeHandler(serveFixture(t)))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/graph")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type = %q", ct)
	}

	var doc struct {
		Types []struct {
			ID      string `json:"id"`
			Central bool   `json:"central"`
		} `json:"vertex_types"`
		Edges []struct {
			ID   int    `json:"id"`
			Type string `json:"type"`
		} `json:"edges"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(doc.Types) != 2 || !doc.Types[0].Central {
		t.Errorf("types = %+v", doc.Types)
	}
	if len(doc.Edges) != 1 || doc.Edges[0].Type != "lives_in" {
		t.Errorf("edges = %+v", doc.Edges)
	}
}

func TestServeUnknownRoute(t *testing.T) {
	srv := httptest.NewServer(newServeHandler(serveFixture(t)))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/nope")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}
