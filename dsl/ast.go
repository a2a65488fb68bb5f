package dsl

// File is a parsed DSL input: optional machine-level documentation and an
// ordered statement list.
type File struct {
	// Doc is a leading comment block detached from the first statement by a
	// blank line. It becomes the documentation of the generated container.
	Doc   []string
	Stmts []Stmt
}

// Stmt is either a NodeStmt or a ChainStmt.
type Stmt interface {
	Pos() Pos
	stmt()
}

// NodeStmt declares a single node, optionally with a payload type.
//
//	// docs
//	Bar: []string;
type NodeStmt struct {
	Doc  []string
	Name string
	// Type is the opaque payload type descriptor, empty if none. It is
	// copied verbatim into generated code.
	Type string
	At   Pos
}

func (s *NodeStmt) Pos() Pos { return s.At }
func (s *NodeStmt) stmt()    {}

// ChainStmt declares a chain of transitions between node groups.
//
//	Foo -> Bar -"docs"-> Baz & Quux;
type ChainStmt struct {
	// Doc is shared among every edge the chain produces.
	Doc  []string
	Head []NodeRef
	Hops []Hop
	At   Pos
}

func (s *ChainStmt) Pos() Pos { return s.At }
func (s *ChainStmt) stmt()    {}

// NodeRef is a node mention inside a chain. It may carry a payload type even
// when the node is declared elsewhere, as long as the types agree.
type NodeRef struct {
	Name string
	Type string
	At   Pos
}

// Hop is one arrow and its destination group. A group with more than one
// member fans the transition out to every member.
type Hop struct {
	Arrow Arrow
	To    []NodeRef
}

// ArrowKind distinguishes the arrow spellings. Plain and Long are
// semantically identical.
type ArrowKind int

const (
	ArrowPlain ArrowKind = iota // ->
	ArrowLong                   // -->
	ArrowNamed                  // -name->
	ArrowDoc                    // -"docs"->
)

// Arrow is a single transition arrow.
type Arrow struct {
	Kind ArrowKind
	// Name is the explicit method-name override for ArrowNamed.
	Name string
	// Doc is the edge documentation for ArrowDoc.
	Doc string
	At  Pos
}
