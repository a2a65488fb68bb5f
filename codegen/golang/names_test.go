package golang

import (
	"testing"

	"github.com/entrygen-xyz/go-entrygen/graph"
)

func TestPlanNamesCollisions(t *testing.T) {
	g := graph.New()
	// A node sharing the container's name, and one whose payload field
	// would collide with the tag field.
	if err := g.MergeNode("Road", "", nil); err != nil {
		t.Fatal(err)
	}
	if err := g.MergeNode("Tag", "int", nil); err != nil {
		t.Fatal(err)
	}
	if err := g.AddEdge("Road", "Tag", "tag", nil); err != nil {
		t.Fatal(err)
	}

	cfg := DefaultConfig()
	cfg.Name = "Road"
	n := planNames(g, cfg)

	if got := n.typeName["Road"]; got != "Road_" {
		t.Errorf("typeName[Road] = %q, want Road_", got)
	}
	if got := n.field["Tag"]; got != "tag_" {
		t.Errorf("field[Tag] = %q, want tag_", got)
	}
	if got := n.tagConst["Tag"]; got != "roadTagTag" {
		t.Errorf("tagConst[Tag] = %q, want roadTagTag", got)
	}
}

func TestPlanNamesAccessorDodgesMethods(t *testing.T) {
	g := graph.New()
	if err := g.MergeNode("A", "int", nil); err != nil {
		t.Fatal(err)
	}
	// An outgoing edge already named get forces the getter aside.
	if err := g.AddEdge("A", "B", "get", nil); err != nil {
		t.Fatal(err)
	}

	n := planNames(g, DefaultConfig())
	if got := n.getter["A"]; got != "get_" {
		t.Errorf("getter[A] = %q, want get_", got)
	}
	if got := n.setter["A"]; got != "set" {
		t.Errorf("setter[A] = %q, want set", got)
	}
}

func TestPlanNamesMarkerDodgesMethodOverride(t *testing.T) {
	g := graph.New()
	// An arrow override can claim the marker's name; the marker moves.
	if err := g.AddEdge("A", "B", "isMachineEntry", nil); err != nil {
		t.Fatal(err)
	}

	n := planNames(g, DefaultConfig())
	if n.marker != "isMachineEntry_" {
		t.Errorf("marker = %q, want isMachineEntry_", n.marker)
	}
}

func TestPlanNamesEntryVisibility(t *testing.T) {
	g := graph.New()
	if err := g.AddEdge("A", "B", "b", nil); err != nil {
		t.Fatal(err)
	}

	cfg := DefaultConfig()
	cfg.Name = "Machine"
	n := planNames(g, cfg)
	if n.entry != "MachineEntry" || n.entryMethod != "Entry" {
		t.Errorf("default entry = %q / %q", n.entry, n.entryMethod)
	}

	cfg.Entry = "machineEntry"
	n = planNames(g, cfg)
	if n.entryMethod != "entry" {
		t.Errorf("unexported entry type must get an unexported entry method, got %q", n.entryMethod)
	}
	if n.marker != "isMachineEntry" {
		t.Errorf("marker = %q, want isMachineEntry", n.marker)
	}
}
