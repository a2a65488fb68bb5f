// Package graph holds the validated state graph: uniquely named nodes with
// optional payload types, and directed edges each carrying a derived method
// name. The graph is built once per generation run and read-only afterwards.
package graph

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/exp/maps"
)

// NodeID is an interned node name. Ordering is lexicographic so that
// generated output is stable across runs.
type NodeID string

// NodeData is the payload type and documentation associated with a node.
type NodeData struct {
	// Type is the opaque payload type descriptor, empty if the node carries
	// no data. It is emitted verbatim into generated code.
	Type string
	Doc  []string
}

// EdgeKey is the ordered (from, to) pair identifying a directed edge. At
// most one edge may exist per key.
type EdgeKey struct {
	From NodeID
	To   NodeID
}

// EdgeData is the derived method name and documentation of an edge. Method
// names are unique within the set of edges leaving a single node.
type EdgeData struct {
	Method string
	Doc    []string
}

// Kind classifies a node by its presence in the edge set.
type Kind int

const (
	// KindIsolate has no edges at all.
	KindIsolate Kind = iota
	// KindSource has outgoing edges only.
	KindSource
	// KindSink has incoming edges only.
	KindSink
	// KindNonTerminal has both incoming and outgoing edges.
	KindNonTerminal
)

func (k Kind) String() string {
	switch k {
	case KindIsolate:
		return "isolate"
	case KindSource:
		return "source"
	case KindSink:
		return "sink"
	case KindNonTerminal:
		return "non-terminal"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Neighbor is one end of an edge as seen from a node: the node on the other
// side and the edge connecting them.
type Neighbor struct {
	ID   NodeID
	Node *NodeData
	Edge *EdgeData
}

// Graph is the set of all nodes and edges. Every node referenced by an edge
// is present in the node set.
type Graph struct {
	nodes map[NodeID]*NodeData
	edges map[EdgeKey]*EdgeData
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		nodes: make(map[NodeID]*NodeData),
		edges: make(map[EdgeKey]*EdgeData),
	}
}

// MergeNode declares a node, merging with any previous declaration. The
// payload type must agree textually with the previous one, or one side must
// omit it; documentation blocks are concatenated with a blank separator.
func (g *Graph) MergeNode(id NodeID, typ string, doc []string) error {
	existing, ok := g.nodes[id]
	if !ok {
		g.nodes[id] = &NodeData{Type: typ, Doc: slices.Clone(doc)}
		return nil
	}
	switch {
	case typ == "":
	case existing.Type == "":
		existing.Type = typ
	case existing.Type != typ:
		return fmt.Errorf("%w of %s: %q vs %q", ErrIncompatibleRedefinition, id, existing.Type, typ)
	}
	existing.Doc = appendDoc(existing.Doc, doc)
	return nil
}

// AddEdge inserts a directed edge. Inserting the same (from, to) pair twice
// fails.
func (g *Graph) AddEdge(from, to NodeID, method string, doc []string) error {
	key := EdgeKey{From: from, To: to}
	if _, ok := g.edges[key]; ok {
		return fmt.Errorf("%w: %s -> %s", ErrDuplicateEdge, from, to)
	}
	if _, ok := g.nodes[from]; !ok {
		g.nodes[from] = &NodeData{}
	}
	if _, ok := g.nodes[to]; !ok {
		g.nodes[to] = &NodeData{}
	}
	g.edges[key] = &EdgeData{Method: method, Doc: slices.Clone(doc)}
	return nil
}

// Validate checks graph-level invariants: at least one edge exists, and no
// node has two outgoing edges deriving the same method name.
func (g *Graph) Validate() error {
	if len(g.edges) == 0 {
		return fmt.Errorf("%w `A -> B`", ErrNoEdges)
	}
	for _, id := range g.NodeIDs() {
		seen := make(map[string]NodeID)
		for _, out := range g.Outgoing(id) {
			if other, ok := seen[out.Edge.Method]; ok {
				return &EdgeError{
					Key: EdgeKey{From: id, To: out.ID},
					Err: fmt.Errorf("%w %q on %s: edges to %s and %s", ErrDuplicateMethod, out.Edge.Method, id, other, out.ID),
				}
			}
			seen[out.Edge.Method] = out.ID
		}
	}
	return nil
}

// NodeIDs returns every node name in lexicographic order.
func (g *Graph) NodeIDs() []NodeID {
	ids := maps.Keys(g.nodes)
	slices.Sort(ids)
	return ids
}

// Node returns the data for a node, or nil if it does not exist.
func (g *Graph) Node(id NodeID) *NodeData {
	return g.nodes[id]
}

// EdgeKeys returns every edge key ordered by (from, to).
func (g *Graph) EdgeKeys() []EdgeKey {
	keys := maps.Keys(g.edges)
	slices.SortFunc(keys, func(a, b EdgeKey) int {
		if c := strings.Compare(string(a.From), string(b.From)); c != 0 {
			return c
		}
		return strings.Compare(string(a.To), string(b.To))
	})
	return keys
}

// Edge returns the data for an edge key, or nil if it does not exist.
func (g *Graph) Edge(key EdgeKey) *EdgeData {
	return g.edges[key]
}

// NumNodes returns the node count.
func (g *Graph) NumNodes() int { return len(g.nodes) }

// NumEdges returns the edge count.
func (g *Graph) NumEdges() int { return len(g.edges) }

// Outgoing returns the edges leaving a node, ordered by destination.
func (g *Graph) Outgoing(id NodeID) []Neighbor {
	var out []Neighbor
	for _, key := range g.EdgeKeys() {
		if key.From == id {
			out = append(out, Neighbor{ID: key.To, Node: g.nodes[key.To], Edge: g.edges[key]})
		}
	}
	return out
}

// Incoming returns the edges arriving at a node, ordered by origin.
func (g *Graph) Incoming(id NodeID) []Neighbor {
	var in []Neighbor
	for _, key := range g.EdgeKeys() {
		if key.To == id {
			in = append(in, Neighbor{ID: key.From, Node: g.nodes[key.From], Edge: g.edges[key]})
		}
	}
	return in
}

// Classify derives a node's topology kind from the edge set. The result is
// recomputed on every call so it can never desynchronize from the edges.
func (g *Graph) Classify(id NodeID) Kind {
	var hasIn, hasOut bool
	for key := range g.edges {
		if key.From == id {
			hasOut = true
		}
		if key.To == id {
			hasIn = true
		}
	}
	switch {
	case !hasIn && !hasOut:
		return KindIsolate
	case !hasIn:
		return KindSource
	case !hasOut:
		return KindSink
	}
	return KindNonTerminal
}

func appendDoc(dst, src []string) []string {
	switch {
	case len(src) == 0:
		return dst
	case len(dst) == 0:
		return slices.Clone(src)
	}
	dst = append(dst, "")
	return append(dst, src...)
}
