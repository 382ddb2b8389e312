// Package gen defines the contract a target-language generator satisfies.
//
// One generator exists per binding language; rendering is a pure function of
// the AST, so two calls over the same document must produce byte-identical
// output.
package gen

import (
	"io"

	"github.com/teranos/idlrs/idl/ast"
)

// Generator converts a semantic document into binding-language source text
type Generator interface {
	// Language returns the target language name, e.g. "rust"
	Language() string

	// FileExtension returns the output extension without the dot, e.g. "rs"
	FileExtension() string

	// GenerateFile writes the complete output for doc to w: the static
	// prologue followed by the rendered document. Write failures abort the
	// render and propagate.
	GenerateFile(doc *ast.Document, w io.Writer) error
}
