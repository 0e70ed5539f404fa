// Package prisma holds the shared diagnostic types of the datamodel
// compiler. The compiler itself lives in the compiler package; sdl parses
// sources, compiler/gen validates them into a graph, dialect/sqlschema and
// compiler/api lower the graph into the storage schema and the operation
// catalog.
//
// Every failure the pipeline reports unwraps to one of the sentinel errors
// declared here, so callers can branch on the failure class without
// depending on the concrete diagnostic type.
package prisma
