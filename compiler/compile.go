// Package compiler wires the compilation pipeline: SDL sources are parsed,
// merged and validated into a graph, and the graph is lowered into the
// storage schema and the operation catalog. Compilation is a synchronous,
// side-effect-free function of its input; compiling the same sources twice
// yields byte-identical serialized outputs.
package compiler

import (
	"github.com/welevelacademy/prisma/compiler/api"
	"github.com/welevelacademy/prisma/compiler/gen"
	"github.com/welevelacademy/prisma/dialect/sqlschema"
	"github.com/welevelacademy/prisma/sdl"
)

// Result holds the outputs of one compilation run. All three views are
// derived from the same validated graph and are immutable.
type Result struct {
	Graph   *gen.Graph
	Schema  *sqlschema.Schema
	Catalog *api.Catalog
}

// Compile parses and validates the given SDL sources and derives their
// storage schema and operation catalog. Syntax errors abort before
// validation; validation and relation errors are collected in one batch.
// The returned error joins every diagnostic found, each classifiable with
// the prisma.Is* helpers.
func Compile(sources ...sdl.Source) (*Result, error) {
	files, err := sdl.ParseFiles(sources)
	if err != nil {
		return nil, err
	}
	g, err := gen.NewGraph(files...)
	if err != nil {
		return nil, err
	}
	return &Result{
		Graph:   g,
		Schema:  sqlschema.Synthesize(g),
		Catalog: api.Derive(g),
	}, nil
}
