package dot

import (
	"strings"
	"testing"
)

func TestParseGraph(t *testing.T) {
	name, g, err := ParseGraph(`
		digraph Traffic {
			# isolated node
			broken;
			red -> green -> amber;
			amber -> red; // back around
		}
	`, true)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if name != "Traffic" {
		t.Errorf("name = %q, want Traffic", name)
	}
	if g.NumNodes() != 4 || g.NumEdges() != 3 {
		t.Errorf("got %d nodes / %d edges, want 4 / 3", g.NumNodes(), g.NumEdges())
	}
	key := g.EdgeKeys()[0]
	if key.From != "amber" || key.To != "red" {
		t.Errorf("first edge = %v", key)
	}
	if g.Edge(key).Method != "red" {
		t.Errorf("method = %q, want red", g.Edge(key).Method)
	}
}

func TestParseAnonymousGraph(t *testing.T) {
	name, file, err := Parse("digraph { a -> b }")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if name != "" {
		t.Errorf("name = %q, want empty", name)
	}
	if len(file.Stmts) != 1 {
		t.Errorf("got %d statements, want 1", len(file.Stmts))
	}
}

func TestParseRejectsUnsupported(t *testing.T) {
	for _, tc := range []struct {
		input string
		want  string
	}{
		{"graph G { a -- b; }", `expected "digraph"`},
		{"digraph G { a -- b; }", "undirected edges"},
		{"digraph G { a [shape=box]; }", "attribute lists"},
		{"digraph G { a -> b [label=x]; }", "attribute lists"},
		{"digraph G { a:port -> b; }", "ports"},
		{"digraph G { rankdir=LR; }", "attribute assignments"},
		{"digraph G { subgraph cluster { a; } }", "subgraphs"},
		{"digraph G { a -> b; ", `expected "}"`},
		{"digraph G { a -> b; } x", "trailing input"},
	} {
		_, _, err := Parse(tc.input)
		if err == nil {
			t.Errorf("%q: expected error", tc.input)
			continue
		}
		if !strings.Contains(err.Error(), tc.want) {
			t.Errorf("%q: error %q does not mention %q", tc.input, err, tc.want)
		}
	}
}

func TestParseErrorCarriesPosition(t *testing.T) {
	_, _, err := Parse("digraph G {\n  a -- b;\n}")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "2:5") {
		t.Errorf("error %q should carry position 2:5", err)
	}
}
