// Package golang emits Go source for a validated state graph: a tagged-union
// container, an entry sum type, and per-state transition handles. Output is
// deterministic and gofmt-formatted.
package golang

import (
	"fmt"
	"go/ast"
	"go/format"
	"go/parser"
	"slices"
	"strings"

	"golang.org/x/exp/maps"

	"github.com/entrygen-xyz/go-entrygen/graph"
	"github.com/entrygen-xyz/go-entrygen/render"
)

// guardMessage is the panic text emitted for checked transitions that observe
// a container whose state no longer matches the handle.
const guardMessage = "entry handle used with a mismatched state"

// Generate emits the complete source file for g under cfg. Generation either
// fully succeeds or fully fails; there is no partial output.
func Generate(g *graph.Graph, cfg Config) (string, error) {
	if err := cfg.validate(); err != nil {
		return "", err
	}
	gen := &generator{g: g, cfg: cfg, n: planNames(g, cfg)}
	src, err := format.Source([]byte(gen.file()))
	if err != nil {
		return "", fmt.Errorf("emitted source does not parse: %w", err)
	}
	return string(src), nil
}

type generator struct {
	g   *graph.Graph
	cfg Config
	n   names
	b   strings.Builder
}

func (gen *generator) file() string {
	gen.printf("// Code generated by entrygen. DO NOT EDIT.\n\n")
	gen.printf("package %s\n\n", gen.cfg.Package)
	gen.importDecl()
	gen.tagDecl()
	gen.containerDecl()
	gen.constructorDecls()
	gen.entryDecl()
	gen.entryMethodDecl()
	for _, id := range gen.g.NodeIDs() {
		gen.nodeDecls(id)
	}
	return gen.b.String()
}

func (gen *generator) printf(format string, args ...any) {
	fmt.Fprintf(&gen.b, format, args...)
}

// doc writes one doc-comment block. Empty lines become bare "//" separators.
func (gen *generator) doc(lines ...string) {
	for _, line := range lines {
		if line == "" {
			gen.printf("//\n")
			continue
		}
		gen.printf("// %s\n", line)
	}
}

// importDecl emits imports for the package qualifiers referenced by payload
// types. Only referenced paths are emitted, so an unused Imports entry never
// breaks the build.
func (gen *generator) importDecl() {
	paths := gen.imports()
	if len(paths) == 0 {
		return
	}
	gen.printf("import (\n")
	for _, path := range paths {
		gen.printf("\t%q\n", path)
	}
	gen.printf(")\n\n")
}

// imports collects the package qualifiers appearing in payload types and
// resolves each against cfg.Imports by last path element, falling back to
// the qualifier itself as the path.
func (gen *generator) imports() []string {
	byName := make(map[string]string)
	for _, path := range gen.cfg.Imports {
		name := path
		if i := strings.LastIndexByte(path, '/'); i >= 0 {
			name = path[i+1:]
		}
		byName[name] = path
	}

	need := make(map[string]bool)
	for _, id := range gen.g.NodeIDs() {
		typ := gen.g.Node(id).Type
		if typ == "" {
			continue
		}
		expr, err := parser.ParseExpr(typ)
		if err != nil {
			// An unparseable type fails later, with the whole file.
			continue
		}
		ast.Inspect(expr, func(node ast.Node) bool {
			sel, ok := node.(*ast.SelectorExpr)
			if !ok {
				return true
			}
			if pkg, ok := sel.X.(*ast.Ident); ok {
				path := byName[pkg.Name]
				if path == "" {
					path = pkg.Name
				}
				need[path] = true
			}
			return true
		})
	}

	paths := maps.Keys(need)
	slices.Sort(paths)
	return paths
}

func (gen *generator) tagDecl() {
	gen.doc(fmt.Sprintf("%s discriminates the states of a %s.", gen.n.tagType, gen.n.container))
	gen.printf("type %s uint8\n\n", gen.n.tagType)
	gen.printf("const (\n")
	for i, id := range gen.g.NodeIDs() {
		if i == 0 {
			gen.printf("\t%s %s = iota\n", gen.n.tagConst[id], gen.n.tagType)
			continue
		}
		gen.printf("\t%s\n", gen.n.tagConst[id])
	}
	gen.printf(")\n\n")
}

func (gen *generator) containerDecl() {
	if len(gen.cfg.Doc) > 0 {
		gen.doc(gen.cfg.Doc...)
	} else {
		gen.doc(fmt.Sprintf("%s is a state machine. Use its %s method to inspect the", gen.n.container, gen.n.entryMethod))
		gen.doc("current state and obtain transition handles.")
	}
	if gen.cfg.SVG != "" {
		gen.doc("")
		gen.doc(strings.Split(strings.TrimRight(gen.cfg.SVG, "\n"), "\n")...)
	}
	gen.printf("type %s struct {\n", gen.n.container)
	gen.printf("\ttag %s\n", gen.n.tagType)
	if gen.hasPayloads() {
		gen.printf("\n")
		gen.printf("\t// payload storage; each field is meaningful only in the matching state\n")
		for _, id := range gen.g.NodeIDs() {
			if node := gen.g.Node(id); node.Type != "" {
				gen.printf("\t%s %s\n", gen.n.field[id], node.Type)
			}
		}
	}
	gen.printf("}\n\n")
}

func (gen *generator) constructorDecls() {
	for _, id := range gen.g.NodeIDs() {
		node := gen.g.Node(id)
		ctor := gen.n.ctor[id]
		gen.doc(fmt.Sprintf("%s returns a %s starting in the %s state.", ctor, gen.n.container, id))
		if node.Type == "" {
			gen.printf("func %s() %s {\n", ctor, gen.n.container)
			gen.printf("\treturn %s{tag: %s}\n", gen.n.container, gen.n.tagConst[id])
		} else {
			gen.printf("func %s(payload %s) %s {\n", ctor, node.Type, gen.n.container)
			gen.printf("\treturn %s{tag: %s, %s: payload}\n", gen.n.container, gen.n.tagConst[id], gen.n.field[id])
		}
		gen.printf("}\n\n")
	}
}

func (gen *generator) entryDecl() {
	gen.doc(fmt.Sprintf("%s is a view of a [%s]'s current state: a closed sum with exactly", gen.n.entry, gen.n.container))
	gen.doc(fmt.Sprintf("one variant per state, produced by the container's %s method.", gen.n.entryMethod))
	if gen.cfg.Mermaid {
		gen.doc("", "Diagram:", "")
		for _, line := range strings.Split(strings.TrimRight(render.MermaidText(gen.g), "\n"), "\n") {
			gen.printf("//\t%s\n", line)
		}
	}
	gen.printf("type %s interface {\n", gen.n.entry)
	gen.printf("\t%s()\n", gen.n.marker)
	gen.printf("}\n\n")
}

func (gen *generator) entryMethodDecl() {
	gen.doc(fmt.Sprintf("%s re-inspects the current state and returns the matching variant.", gen.n.entryMethod))
	gen.doc("Variants for states with outgoing transitions are handles bound to the")
	gen.doc("whole machine; each handle is good for at most one transition.")
	gen.printf("func (m *%s) %s() %s {\n", gen.n.container, gen.n.entryMethod, gen.n.entry)
	gen.printf("\tswitch m.tag {\n")
	for _, id := range gen.g.NodeIDs() {
		gen.printf("\tcase %s:\n", gen.n.tagConst[id])
		switch {
		case gen.connector(id):
			gen.printf("\t\treturn %s{m: m}\n", gen.n.typeName[id])
		case gen.g.Node(id).Type != "":
			gen.printf("\t\treturn %s{Value: &m.%s}\n", gen.n.typeName[id], gen.n.field[id])
		default:
			gen.printf("\t\treturn %s{}\n", gen.n.typeName[id])
		}
	}
	gen.printf("\t}\n")
	gen.printf("\tpanic(\"invalid %s tag\")\n", gen.n.container)
	gen.printf("}\n\n")
}

// nodeDecls emits the entry variant for one node: its type, the interface
// marker, and (for connectors) accessors and transition methods.
func (gen *generator) nodeDecls(id graph.NodeID) {
	node := gen.g.Node(id)
	typeName := gen.n.typeName[id]

	gen.variantDoc(id)
	switch {
	case gen.connector(id):
		gen.printf("type %s struct {\n\tm *%s\n}\n\n", typeName, gen.n.container)
	case node.Type != "":
		gen.printf("type %s struct {\n", typeName)
		gen.printf("\t// Value is the payload held while the machine rests in this state.\n")
		gen.printf("\tValue *%s\n", node.Type)
		gen.printf("}\n\n")
	default:
		gen.printf("type %s struct{}\n\n", typeName)
	}

	gen.printf("func (%s) %s() {}\n\n", typeName, gen.n.marker)

	if !gen.connector(id) {
		return
	}
	if node.Type != "" {
		gen.accessorDecls(id)
	}
	for _, out := range gen.g.Outgoing(id) {
		gen.transitionDecl(id, out)
	}
}

// variantDoc writes the variant's doc comment: a lead line, the node's own
// documentation, then reachability lists derived from the edge set.
func (gen *generator) variantDoc(id graph.NodeID) {
	node := gen.g.Node(id)
	if gen.connector(id) {
		gen.doc(fmt.Sprintf("%s is a transition handle for a %s in the %s state.", gen.n.typeName[id], gen.n.container, id))
	} else {
		gen.doc(fmt.Sprintf("%s marks a %s in the %s state.", gen.n.typeName[id], gen.n.container, id))
	}
	if len(node.Doc) > 0 {
		gen.doc("")
		gen.doc(node.Doc...)
	}
	if in := gen.g.Incoming(id); len(in) > 0 {
		gen.doc("", "Reachable from:")
		for _, n := range in {
			gen.doc(fmt.Sprintf("  - %s via %s", n.ID, n.Edge.Method))
		}
	}
	if out := gen.g.Outgoing(id); len(out) > 0 {
		gen.doc("", "Transitions to:")
		for _, n := range out {
			gen.doc(fmt.Sprintf("  - %s via %s", n.ID, n.Edge.Method))
		}
	}
}

func (gen *generator) accessorDecls(id graph.NodeID) {
	typeName := gen.n.typeName[id]
	node := gen.g.Node(id)

	gen.doc(fmt.Sprintf("%s returns the payload held in the %s state.", gen.n.getter[id], id))
	gen.printf("func (h %s) %s() %s {\n", typeName, gen.n.getter[id], node.Type)
	gen.guard(id)
	gen.printf("\treturn h.m.%s\n", gen.n.field[id])
	gen.printf("}\n\n")

	gen.doc(fmt.Sprintf("%s replaces the payload held in the %s state.", gen.n.setter[id], id))
	gen.printf("func (h %s) %s(value %s) {\n", typeName, gen.n.setter[id], node.Type)
	gen.guard(id)
	gen.printf("\th.m.%s = value\n", gen.n.field[id])
	gen.printf("}\n\n")
}

// transitionDecl emits one transition method. The signature is keyed by
// payload presence on each end: a data source moves its previous payload out
// to the caller, a data destination takes the new payload as a parameter.
func (gen *generator) transitionDecl(src graph.NodeID, out graph.Neighbor) {
	srcType := gen.g.Node(src).Type
	dstType := out.Node.Type
	method := out.Edge.Method

	gen.doc(fmt.Sprintf("%s moves the machine from %s to %s.", method, src, out.ID))
	if len(out.Edge.Doc) > 0 {
		gen.doc("")
		gen.doc(out.Edge.Doc...)
	}

	var params, results string
	if dstType != "" {
		params = "next " + dstType
	}
	if srcType != "" {
		results = " " + srcType
	}
	gen.printf("func (h %s) %s(%s)%s {\n", gen.n.typeName[src], method, params, results)
	gen.guard(src)
	if srcType != "" {
		gen.printf("\tprev := h.m.%s\n", gen.n.field[src])
		if src != out.ID {
			gen.printf("\th.m.%s = *new(%s)\n", gen.n.field[src], srcType)
		}
	}
	if dstType != "" {
		gen.printf("\th.m.%s = next\n", gen.n.field[out.ID])
	}
	gen.printf("\th.m.tag = %s\n", gen.n.tagConst[out.ID])
	if srcType != "" {
		gen.printf("\treturn prev\n")
	}
	gen.printf("}\n\n")
}

// guard emits the tag check that makes a stale handle fail loudly. Trusted
// mode elides it; the caller has asserted the mismatch cannot happen.
func (gen *generator) guard(id graph.NodeID) {
	if gen.cfg.Trust == TrustTotal {
		return
	}
	gen.printf("\tif h.m.tag != %s {\n", gen.n.tagConst[id])
	gen.printf("\t\tpanic(%q)\n", guardMessage)
	gen.printf("\t}\n")
}

// connector reports whether the node gets a handle type: it has at least one
// outgoing edge.
func (gen *generator) connector(id graph.NodeID) bool {
	k := gen.g.Classify(id)
	return k == graph.KindSource || k == graph.KindNonTerminal
}

func (gen *generator) hasPayloads() bool {
	for _, id := range gen.g.NodeIDs() {
		if gen.g.Node(id).Type != "" {
			return true
		}
	}
	return false
}
