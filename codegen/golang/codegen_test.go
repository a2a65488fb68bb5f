package golang

import (
	"go/ast"
	"go/importer"
	"go/parser"
	"go/token"
	"go/types"
	"strings"
	"testing"

	"github.com/entrygen-xyz/go-entrygen/dsl"
	"github.com/entrygen-xyz/go-entrygen/graph"
)

const roadSrc = `
// A road, forking and merging.

Start;
Fork: string;
Start -> Fork -> End;
Fork -> Start;
`

func roadGraph(t *testing.T) *graph.Graph {
	t.Helper()
	g, err := dsl.ParseGraph(roadSrc, true)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return g
}

func roadConfig() Config {
	cfg := DefaultConfig()
	cfg.Name = "Road"
	return cfg
}

func generate(t *testing.T, g *graph.Graph, cfg Config) string {
	t.Helper()
	out, err := Generate(g, cfg)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	return out
}

func TestGenerateRoad(t *testing.T) {
	out := generate(t, roadGraph(t), roadConfig())

	for _, want := range []string{
		"// Code generated by entrygen. DO NOT EDIT.",
		"package fsm",
		"type roadTag uint8",
		"type Road struct {",
		"type RoadEntry interface {",
		"func (m *Road) Entry() RoadEntry {",
		// End is a sink: bare variant, no methods.
		"type End struct{}",
		"func (End) isRoadEntry() {}",
		// Fork carries a payload and has two outgoing edges; both move it out.
		"func (h Fork) end() string {",
		"func (h Fork) start() string {",
		"func (h Fork) get() string {",
		"func (h Fork) set(value string) {",
		// Start has no payload; its one edge installs Fork's.
		"func (h Start) fork(next string) {",
		"func NewRoadFork(payload string) Road {",
		"func NewRoadStart() Road {",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n%s", want, out)
		}
	}
	if !strings.Contains(out, guardMessage) {
		t.Errorf("checked mode must emit the tag guard")
	}
}

func TestGenerateMachineDocs(t *testing.T) {
	file, err := dsl.Parse(roadSrc)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	g, err := dsl.Interpret(file, true)
	if err != nil {
		t.Fatalf("interpret: %v", err)
	}
	cfg := roadConfig()
	cfg.Doc = file.Doc
	out := generate(t, g, cfg)
	if !strings.Contains(out, "// A road, forking and merging.\ntype Road struct {") {
		t.Fatalf("leading docs must land on the container\n%s", out)
	}
}

func TestGenerateIsValidGo(t *testing.T) {
	out := generate(t, roadGraph(t), roadConfig())
	fset := token.NewFileSet()
	if _, err := parser.ParseFile(fset, "road.go", out, parser.ParseComments); err != nil {
		t.Fatalf("emitted source does not parse: %v\n%s", err, out)
	}
}

func TestGenerateDeterministic(t *testing.T) {
	g := roadGraph(t)
	cfg := roadConfig()
	cfg.Mermaid = true
	first := generate(t, g, cfg)
	second := generate(t, g, cfg)
	if first != second {
		t.Fatalf("repeated generation differs")
	}
}

func TestGenerateTrusted(t *testing.T) {
	cfg := roadConfig()
	cfg.Trust = TrustTotal
	out := generate(t, roadGraph(t), cfg)
	if strings.Contains(out, guardMessage) {
		t.Fatalf("trusted mode must elide the tag guard\n%s", out)
	}
}

func TestGenerateMermaid(t *testing.T) {
	cfg := roadConfig()
	cfg.Mermaid = true
	out := generate(t, roadGraph(t), cfg)
	if !strings.Contains(out, "//\tgraph LR") {
		t.Fatalf("mermaid diagram missing from entry docs\n%s", out)
	}
	if !strings.Contains(out, "Fork --> Start;") {
		t.Fatalf("mermaid diagram missing edges\n%s", out)
	}
}

func TestGenerateSVGDecoration(t *testing.T) {
	cfg := roadConfig()
	cfg.SVG = "<svg>\n<g/>\n</svg>"
	out := generate(t, roadGraph(t), cfg)
	if !strings.Contains(out, "// <svg>") {
		t.Fatalf("svg markup missing from container docs\n%s", out)
	}
}

func TestGenerateReachabilityDocs(t *testing.T) {
	out := generate(t, roadGraph(t), roadConfig())
	for _, want := range []string{
		"// Reachable from:",
		"//   - Fork via end",
		"// Transitions to:",
		"//   - Start via start",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestGenerateKeywordNames(t *testing.T) {
	g, err := dsl.ParseGraph("Select -> Type;", true)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	out := generate(t, g, roadConfig())
	// snake_case(Type) is a keyword; it picks up a trailing underscore.
	if !strings.Contains(out, "func (h Select) type_() {") {
		t.Fatalf("keyword method not escaped\n%s", out)
	}
}

func TestGenerateVerbatimMethods(t *testing.T) {
	g, err := dsl.ParseGraph("Start -> BeautifulBridge;", false)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	out := generate(t, g, roadConfig())
	if !strings.Contains(out, "func (h Start) BeautifulBridge() {") {
		t.Fatalf("verbatim method name missing\n%s", out)
	}
}

func TestGenerateVerbatimAccessors(t *testing.T) {
	g, err := dsl.ParseGraph("Start: int;\nStart -> End;", false)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	cfg := roadConfig()
	cfg.RenameMethods = false
	out := generate(t, g, cfg)
	if !strings.Contains(out, "func (h Start) Get() int {") {
		t.Fatalf("verbatim mode must export the getter\n%s", out)
	}
	if !strings.Contains(out, "func (h Start) Set(value int) {") {
		t.Fatalf("verbatim mode must export the setter\n%s", out)
	}
}

func TestGenerateUnexportedEntry(t *testing.T) {
	cfg := roadConfig()
	cfg.Entry = "roadEntry"
	out := generate(t, roadGraph(t), cfg)
	if !strings.Contains(out, "func (m *Road) entry() roadEntry {") {
		t.Fatalf("entry method must match entry type visibility\n%s", out)
	}
	if !strings.Contains(out, "isRoadEntry()") {
		t.Fatalf("marker method must stay unexported but unique\n%s", out)
	}
}

func TestGenerateDataSink(t *testing.T) {
	g, err := dsl.ParseGraph("A -> B;\nB: int;", true)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	out := generate(t, g, roadConfig())
	// A sink with a payload gets no handle, just a pointer to the value.
	if !strings.Contains(out, "Value *int") {
		t.Fatalf("data sink variant missing payload pointer\n%s", out)
	}
	if !strings.Contains(out, "return B{Value: &m.b}") {
		t.Fatalf("entry must bind the sink variant to the payload field\n%s", out)
	}
	if strings.Contains(out, "func (h B)") {
		t.Fatalf("sinks must not grow methods\n%s", out)
	}
}

func TestGenerateQualifiedPayloadCompiles(t *testing.T) {
	g, err := dsl.ParseGraph("Red -> Amber -> Red;\nAmber: time.Time;", true)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	out := generate(t, g, roadConfig())
	if !strings.Contains(out, "import (\n\t\"time\"\n)") {
		t.Fatalf("qualified payload type must pull in its import\n%s", out)
	}

	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "road.go", out, 0)
	if err != nil {
		t.Fatalf("emitted source does not parse: %v\n%s", err, out)
	}
	conf := types.Config{Importer: importer.Default()}
	if _, err := conf.Check("fsm", fset, []*ast.File{file}, nil); err != nil {
		t.Fatalf("emitted source does not type-check: %v\n%s", err, out)
	}
}

func TestGenerateImportMapping(t *testing.T) {
	g, err := dsl.ParseGraph("A -> B;\nB: map[string]*url.URL;", true)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	cfg := roadConfig()
	cfg.Imports = []string{"net/url"}
	out := generate(t, g, cfg)
	if !strings.Contains(out, "\t\"net/url\"\n") {
		t.Fatalf("qualifier url must resolve to net/url\n%s", out)
	}
	if strings.Contains(out, "\t\"url\"\n") {
		t.Fatalf("bare qualifier fallback must not fire when mapped\n%s", out)
	}
}

func TestGenerateNoImportsForPlainTypes(t *testing.T) {
	out := generate(t, roadGraph(t), roadConfig())
	if strings.Contains(out, "import") {
		t.Fatalf("no imports expected for unqualified payloads\n%s", out)
	}
}

func TestGenerateMarkerCollision(t *testing.T) {
	g, err := dsl.ParseGraph("A -isRoadEntry-> B;", true)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	out := generate(t, g, roadConfig())
	if !strings.Contains(out, "func (h A) isRoadEntry() {") {
		t.Fatalf("overridden transition name missing\n%s", out)
	}
	if !strings.Contains(out, "isRoadEntry_()") {
		t.Fatalf("marker must move aside for the override\n%s", out)
	}
	fset := token.NewFileSet()
	if _, err := parser.ParseFile(fset, "road.go", out, parser.ParseComments); err != nil {
		t.Fatalf("emitted source does not parse: %v\n%s", err, out)
	}
}

func TestGenerateBadConfig(t *testing.T) {
	cfg := roadConfig()
	cfg.Package = "not a package"
	if _, err := Generate(roadGraph(t), cfg); err == nil {
		t.Fatalf("expected invalid package error")
	}
	cfg = roadConfig()
	cfg.Name = "1road"
	if _, err := Generate(roadGraph(t), cfg); err == nil {
		t.Fatalf("expected invalid name error")
	}
}
