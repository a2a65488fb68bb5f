package main

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/rs/zerolog"
)

func runValidate(log zerolog.Logger, args []string) {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	lang := fs.String("lang", "dsl", `input language: "dsl" or "dot"`)
	input := fs.String("input", "-", `input file, "-" for stdin`)
	fs.Parse(args)

	src, err := readInput(*input)
	if err != nil {
		log.Fatal().Err(err).Msg("read input")
	}
	f, err := parseFront(*lang, src, true)
	if err != nil {
		fail(src, err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NODE\tKIND\tPAYLOAD")
	for _, id := range f.g.NodeIDs() {
		payload := f.g.Node(id).Type
		if payload == "" {
			payload = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", id, f.g.Classify(id), payload)
	}
	w.Flush()
	log.Info().
		Int("nodes", f.g.NumNodes()).
		Int("edges", f.g.NumEdges()).
		Msg("ok")
}
