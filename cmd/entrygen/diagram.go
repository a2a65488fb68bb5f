package main

import (
	"flag"

	"github.com/rs/zerolog"

	"github.com/entrygen-xyz/go-entrygen/render"
)

func runDiagram(log zerolog.Logger, args []string) {
	fs := flag.NewFlagSet("diagram", flag.ExitOnError)
	lang := fs.String("lang", "dsl", `input language: "dsl" or "dot"`)
	input := fs.String("input", "-", `input file, "-" for stdin`)
	output := fs.String("output", "-", `output file, "-" for stdout`)
	format := fs.String("format", "dot", `output format: "dot", "mermaid" or "svg"`)
	name := fs.String("name", "Machine", "graph name for DOT output")
	fs.Parse(args)

	src, err := readInput(*input)
	if err != nil {
		log.Fatal().Err(err).Msg("read input")
	}
	f, err := parseFront(*lang, src, true)
	if err != nil {
		fail(src, err)
	}
	if f.name != "" {
		*name = f.name
	}

	var text string
	switch *format {
	case "dot":
		text = render.DotText(f.g, *name)
	case "mermaid":
		text = render.MermaidText(f.g)
	case "svg":
		text, err = render.Graphviz{}.Render(render.DotText(f.g, *name))
		if err != nil {
			log.Fatal().Err(err).Msg("diagram render failed")
		}
	default:
		log.Fatal().Str("format", *format).Msg(`-format must be "dot", "mermaid" or "svg"`)
	}

	if err := writeOutput(*output, text); err != nil {
		log.Fatal().Err(err).Msg("write output")
	}
}
