package golang

import (
	"github.com/entrygen-xyz/go-entrygen/graph"
	"github.com/entrygen-xyz/go-entrygen/ident"
)

// names holds every identifier the generator will emit, planned up front so
// that collisions are resolved once and the emission pass stays mechanical.
type names struct {
	container string
	entry     string
	// entryMethod is Entry or entry, matching the entry type's visibility.
	entryMethod string
	// marker is the unexported method that seals the entry interface.
	marker string
	// tagType is the unexported discriminant type.
	tagType string

	tagConst map[graph.NodeID]string
	typeName map[graph.NodeID]string
	// ctor is the per-state constructor function.
	ctor map[graph.NodeID]string
	// field is the container payload field per data-carrying node.
	field map[graph.NodeID]string
	// getter and setter are the payload accessors per data-carrying node
	// that also has outgoing edges.
	getter map[graph.NodeID]string
	setter map[graph.NodeID]string
}

func planNames(g *graph.Graph, cfg Config) names {
	n := names{
		container:   cfg.Name,
		entry:       cfg.entryName(),
		entryMethod: "entry",
		marker:      "is" + ident.UpperFirst(cfg.entryName()),
		tagType:     ident.Escape(ident.LowerCamel(cfg.Name)) + "Tag",
		tagConst:    make(map[graph.NodeID]string),
		typeName:    make(map[graph.NodeID]string),
		ctor:        make(map[graph.NodeID]string),
		field:       make(map[graph.NodeID]string),
		getter:      make(map[graph.NodeID]string),
		setter:      make(map[graph.NodeID]string),
	}
	if ident.Exported(n.entry) {
		n.entryMethod = "Entry"
	}

	// The marker shares each connector's method set with the transition
	// methods, and those names are user-controlled via arrow overrides.
	edgeMethods := make(map[string]bool)
	for _, key := range g.EdgeKeys() {
		edgeMethods[g.Edge(key).Method] = true
	}
	for edgeMethods[n.marker] {
		n.marker += "_"
	}

	// Package-level identifiers share one namespace.
	taken := map[string]bool{
		n.container: true,
		n.entry:     true,
		n.tagType:   true,
	}
	for _, id := range g.NodeIDs() {
		n.typeName[id] = ident.Unique(ident.Escape(string(id)), taken)
	}
	for _, id := range g.NodeIDs() {
		n.tagConst[id] = ident.Unique(n.tagType+ident.UpperFirst(string(id)), taken)
	}
	ctorPrefix := "New"
	if !ident.Exported(cfg.Name) {
		ctorPrefix = "new"
	}
	for _, id := range g.NodeIDs() {
		base := ctorPrefix + ident.UpperFirst(cfg.Name) + ident.UpperFirst(string(id))
		n.ctor[id] = ident.Unique(base, taken)
	}

	// Container fields share a namespace with the tag field.
	fields := map[string]bool{"tag": true}
	for _, id := range g.NodeIDs() {
		if g.Node(id).Type == "" {
			continue
		}
		n.field[id] = ident.Unique(ident.Escape(ident.LowerCamel(string(id))), fields)
	}

	// Accessors live on the connector handle alongside its transition
	// methods and the interface marker, and must dodge both.
	get, set := "get", "set"
	if !cfg.RenameMethods {
		get, set = "Get", "Set"
	}
	for _, id := range g.NodeIDs() {
		out := g.Outgoing(id)
		if g.Node(id).Type == "" || len(out) == 0 {
			continue
		}
		methods := map[string]bool{n.marker: true}
		for _, o := range out {
			methods[o.Edge.Method] = true
		}
		n.getter[id] = ident.Unique(get, methods)
		n.setter[id] = ident.Unique(set, methods)
	}
	return n
}
