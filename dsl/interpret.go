package dsl

import (
	"errors"

	"github.com/entrygen-xyz/go-entrygen/graph"
	"github.com/entrygen-xyz/go-entrygen/ident"
)

// Interpret folds a parsed File into a validated graph.
//
// Nodes are established first, regardless of where they appear: explicit node
// statements and chain references merge into a single entry per name, and a
// payload-type disagreement is an error. Then every consecutive pair in a
// chain becomes one directed edge, with its method name derived from the
// arrow or the destination.
//
// When renameMethods is set (the default), derived names are the snake_case
// conversion of the destination node; otherwise the destination name is used
// verbatim. Either way Go keywords are escaped with a trailing underscore.
func Interpret(file *File, renameMethods bool) (*graph.Graph, error) {
	g := graph.New()

	for _, stmt := range file.Stmts {
		switch s := stmt.(type) {
		case *NodeStmt:
			if err := g.MergeNode(graph.NodeID(s.Name), s.Type, s.Doc); err != nil {
				return nil, WrapAt(s.At, err)
			}
		case *ChainStmt:
			for _, ref := range s.refs() {
				if err := g.MergeNode(graph.NodeID(ref.Name), ref.Type, nil); err != nil {
					return nil, WrapAt(ref.At, err)
				}
			}
		}
	}

	// arrows remembers where each edge came from, so validation failures
	// can point back into the source.
	arrows := make(map[graph.EdgeKey]Pos)
	for _, stmt := range file.Stmts {
		s, ok := stmt.(*ChainStmt)
		if !ok {
			continue
		}
		from := s.Head
		for _, hop := range s.Hops {
			for _, src := range from {
				for _, dst := range hop.To {
					method := methodName(hop.Arrow, dst.Name, renameMethods)
					doc := edgeDoc(s.Doc, hop.Arrow)
					key := graph.EdgeKey{From: graph.NodeID(src.Name), To: graph.NodeID(dst.Name)}
					err := g.AddEdge(key.From, key.To, method, doc)
					if err != nil {
						return nil, WrapAt(hop.Arrow.At, err)
					}
					arrows[key] = hop.Arrow.At
				}
			}
			from = hop.To
		}
	}

	if err := g.Validate(); err != nil {
		var ee *graph.EdgeError
		if errors.As(err, &ee) {
			if at, ok := arrows[ee.Key]; ok {
				return nil, WrapAt(at, err)
			}
		}
		return nil, WrapAt(filePos(file), err)
	}
	return g, nil
}

// filePos is the position validation errors with no edge to blame point at:
// the first statement, or the start of the input.
func filePos(file *File) Pos {
	if len(file.Stmts) > 0 {
		return file.Stmts[0].Pos()
	}
	return Pos{Line: 1, Col: 1}
}

// refs returns every node mention in the chain, in source order.
func (s *ChainStmt) refs() []NodeRef {
	refs := append([]NodeRef(nil), s.Head...)
	for _, hop := range s.Hops {
		refs = append(refs, hop.To...)
	}
	return refs
}

func methodName(arrow Arrow, dest string, renameMethods bool) string {
	if arrow.Kind == ArrowNamed {
		return ident.Escape(arrow.Name)
	}
	if renameMethods {
		return ident.Escape(ident.SnakeCase(dest))
	}
	return ident.Escape(dest)
}

// edgeDoc combines the chain's shared documentation with the arrow's own.
func edgeDoc(shared []string, arrow Arrow) []string {
	doc := append([]string(nil), shared...)
	if arrow.Doc != "" {
		doc = append(doc, arrow.Doc)
	}
	return doc
}

// ParseGraph parses DSL input and builds the graph in one step.
func ParseGraph(input string, renameMethods bool) (*graph.Graph, error) {
	file, err := Parse(input)
	if err != nil {
		return nil, err
	}
	return Interpret(file, renameMethods)
}
