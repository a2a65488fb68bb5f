package main

import (
	"flag"
	"strings"

	"github.com/rs/zerolog"

	"github.com/entrygen-xyz/go-entrygen/codegen/golang"
	"github.com/entrygen-xyz/go-entrygen/render"
)

// sliceFlag collects repeated -set pairs.
type sliceFlag []string

func (s *sliceFlag) String() string { return strings.Join(*s, ",") }

func (s *sliceFlag) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func runGenerate(log zerolog.Logger, args []string) {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	lang := fs.String("lang", "dsl", `input language: "dsl" or "dot"`)
	input := fs.String("input", "-", `input file, "-" for stdin`)
	output := fs.String("output", "-", `output file, "-" for stdout`)
	pkg := fs.String("package", "", "package clause of the emitted file")
	name := fs.String("name", "", "container type name")
	entry := fs.String("entry", "", "entry type name (default <name>Entry)")
	rename := fs.Bool("rename-methods", true, "derive method names from destination nodes via snake_case")
	unsafeMode := fs.Bool("unsafe", false, "elide the tag guard in transition methods")
	mermaid := fs.Bool("mermaid", false, "embed a mermaid diagram in the entry docs")
	svg := fs.String("svg", "omit", `external SVG render: "force", "omit" or "auto"`)
	var imports sliceFlag
	fs.Var(&imports, "import", "import path for qualified payload types, repeatable")
	var opts sliceFlag
	fs.Var(&opts, "set", "generator option as key=value, repeatable, overrides other flags")
	fs.Parse(args)

	// The full configuration is settled before the input is parsed: method
	// names are derived while building the graph, so RenameMethods has to be
	// final by then.
	cfg := golang.DefaultConfig()
	cfg.RenameMethods = *rename
	cfg.Mermaid = *mermaid
	cfg.Imports = imports
	if *unsafeMode {
		cfg.Trust = golang.TrustTotal
	}
	if *pkg != "" {
		cfg.Package = *pkg
	}
	if *name != "" {
		cfg.Name = *name
	}
	if *entry != "" {
		cfg.Entry = *entry
	}
	nameBefore := cfg.Name
	if err := golang.ParseOptions(&cfg, opts); err != nil {
		log.Fatal().Err(err).Msg("bad -set option")
	}
	nameConfigured := *name != "" || cfg.Name != nameBefore

	src, err := readInput(*input)
	if err != nil {
		log.Fatal().Err(err).Msg("read input")
	}
	f, err := parseFront(*lang, src, cfg.RenameMethods)
	if err != nil {
		fail(src, err)
	}
	if f.name != "" && !nameConfigured {
		cfg.Name = f.name
	}
	cfg.Doc = f.doc

	switch *svg {
	case "omit":
	case "auto", "force":
		markup, err := render.Graphviz{}.Render(render.DotText(f.g, cfg.Name))
		if err != nil && *svg == "force" {
			log.Fatal().Err(err).Msg("diagram render failed")
		}
		if err != nil {
			log.Warn().Err(err).Msg("diagram render failed, omitting")
		} else {
			cfg.SVG = markup
		}
	default:
		log.Fatal().Str("svg", *svg).Msg(`-svg must be "force", "omit" or "auto"`)
	}

	out, err := golang.Generate(f.g, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("generate")
	}
	if err := writeOutput(*output, out); err != nil {
		log.Fatal().Err(err).Msg("write output")
	}
	log.Info().
		Int("nodes", f.g.NumNodes()).
		Int("edges", f.g.NumEdges()).
		Str("machine", cfg.Name).
		Msg("generated")
}
