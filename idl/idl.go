// Package idl ties the compilation pipeline together: parse the source into
// a kinded tree, build the semantic AST, and render Rust bindings.
//
// The pipeline is a single synchronous batch pass. Parsing completes before
// any AST is built, the AST is complete before any output is written, and
// every failure is fatal where it is discovered.
package idl

import (
	"io"

	"github.com/google/uuid"

	"github.com/teranos/idlrs/gen"
	"github.com/teranos/idlrs/gen/rust"
	"github.com/teranos/idlrs/idl/ast"
	"github.com/teranos/idlrs/idl/grammar"
	"github.com/teranos/idlrs/logger"
)

// Compile translates IDL source text into Rust binding declarations on w:
// the static prologue followed by the rendered document. On malformed input
// the returned error is a *grammar.ParseError and nothing is written to w.
func Compile(source string, w io.Writer) error {
	return CompileWith(source, rust.NewGenerator(), w)
}

// CompileWith runs the pipeline against an explicit target generator
func CompileWith(source string, g gen.Generator, w io.Writer) error {
	root, err := grammar.Parse(source)
	if err != nil {
		return err
	}

	doc := ast.BuildDocument(root)
	lintUniqueIdentifiers(doc)
	logger.Logger.Infow("compiled document",
		"interfaces", len(doc.Interfaces),
		"target", g.Language())

	return g.GenerateFile(doc, w)
}

// lintUniqueIdentifiers warns about interface identifiers that are not
// well-formed UUIDs. The identifier stays opaque either way and passes
// through to the output verbatim; the downstream #[com_interface] macro is
// what would reject it, and a warning here is earlier and cheaper.
func lintUniqueIdentifiers(doc *ast.Document) {
	for i := range doc.Interfaces {
		iface := &doc.Interfaces[i]
		if iface.UUID == "" {
			continue
		}
		if err := uuid.Validate(iface.UUID); err != nil {
			logger.Logger.Warnw("interface has a malformed unique identifier",
				"interface", iface.Name,
				"uuid", iface.UUID)
		}
	}
}
