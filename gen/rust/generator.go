// Package rust renders a semantic IDL document as Rust binding declarations:
// one trait per interface dispatched through a vtable pointer, #[repr(C)]
// structs, #[repr(u32)] enums, and *mut raw-pointer foreign signatures.
package rust

import (
	_ "embed"
	"fmt"
	"io"
	"strings"

	"github.com/teranos/idlrs/errors"
	"github.com/teranos/idlrs/gen"
	"github.com/teranos/idlrs/idl/ast"
)

var _ gen.Generator = (*Generator)(nil)

// Prologue is the fixed helper text written before every rendered document:
// lint suppressions, the winapi/com imports the generated traits rely on,
// two hand-maintained declarations, and the environment-creation function
// pointer type.
//
//go:embed prologue.rs
var Prologue string

// Generator implements gen.Generator for Rust
type Generator struct{}

// NewGenerator creates a new Rust generator
func NewGenerator() *Generator {
	return &Generator{}
}

// Language returns "rust"
func (g *Generator) Language() string {
	return "rust"
}

// FileExtension returns "rs"
func (g *Generator) FileExtension() string {
	return "rs"
}

// GenerateFile writes the prologue followed by the rendered document.
// Rendering is deterministic: the same document always produces the same
// bytes. Any write failure aborts the render.
func (g *Generator) GenerateFile(doc *ast.Document, w io.Writer) error {
	if _, err := io.WriteString(w, Prologue); err != nil {
		return errors.Wrap(err, "write prologue")
	}
	return renderDocument(doc, w)
}

func renderDocument(d *ast.Document, w io.Writer) error {
	for i := range d.Interfaces {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if err := renderInterface(&d.Interfaces[i], w); err != nil {
			return err
		}
	}
	return nil
}

func renderInterface(iface *ast.Interface, w io.Writer) error {
	if _, err := io.WriteString(w, iface.DocComment); err != nil {
		return err
	}
	if iface.UUID != "" {
		if _, err := fmt.Fprintf(w, "#[com_interface(\"%s\")]\n", iface.UUID); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "pub trait %s: %s {\n", iface.Name, iface.Parent); err != nil {
		return err
	}
	for i := range iface.Methods {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if err := renderMethod(&iface.Methods[i], w); err != nil {
			return err
		}
	}
	if _, err := io.WriteString(w, "}\n"); err != nil {
		return err
	}

	// nested typedefs are lexically owned by the interface but hoisted
	// to top level right after it
	for i := range iface.Enums {
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
		if err := renderEnum(&iface.Enums[i], w); err != nil {
			return err
		}
	}
	for i := range iface.Structs {
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
		if err := renderStruct(&iface.Structs[i], w); err != nil {
			return err
		}
	}
	return nil
}

func renderMethod(m *ast.Method, w io.Writer) error {
	if _, err := io.WriteString(w, m.DocComment); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "    unsafe fn %s(&self", toSnakeCase(m.Name)); err != nil {
		return err
	}
	for i := range m.Parameters {
		if _, err := io.WriteString(w, ", "); err != nil {
			return err
		}
		if err := renderParameter(&m.Parameters[i], w); err != nil {
			return err
		}
	}
	if _, err := io.WriteString(w, ") -> "); err != nil {
		return err
	}
	if err := renderType(&m.ReturnType, w); err != nil {
		return err
	}
	_, err := io.WriteString(w, ";\n")
	return err
}

func renderParameter(p *ast.Parameter, w io.Writer) error {
	if len(p.Attributes) > 0 {
		if _, err := fmt.Fprintf(w, "/* %s */ ", strings.Join(p.Attributes, ", ")); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "%s: ", p.Name); err != nil {
		return err
	}
	return renderType(&p.Type, w)
}

// renderType emits one '*mut ' per Pointer modifier, outermost first, then
// the base name. Const modifiers contribute nothing: the raw-pointer calling
// convention does not distinguish const today.
func renderType(t *ast.Type, w io.Writer) error {
	for _, m := range t.Modifiers {
		if m == ast.ModifierPointer {
			if _, err := io.WriteString(w, "*mut "); err != nil {
				return err
			}
		}
	}
	_, err := io.WriteString(w, t.Base)
	return err
}

func renderEnum(e *ast.TypedefEnum, w io.Writer) error {
	if _, err := io.WriteString(w, e.DocComment); err != nil {
		return err
	}
	if _, err := io.WriteString(w, "#[repr(u32)]\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "pub enum %s {\n", e.Name); err != nil {
		return err
	}
	for _, v := range e.Variants {
		if _, err := io.WriteString(w, v.DocComment); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "    %s,\n", v.Name); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "}\n")
	return err
}

func renderStruct(s *ast.TypedefStruct, w io.Writer) error {
	if _, err := io.WriteString(w, s.DocComment); err != nil {
		return err
	}
	if _, err := io.WriteString(w, "#[repr(C)]\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "pub struct %s {\n", s.Name); err != nil {
		return err
	}
	for i := range s.Fields {
		f := &s.Fields[i]
		if _, err := io.WriteString(w, f.DocComment); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "    %s: ", f.Name); err != nil {
			return err
		}
		if err := renderType(&f.Type, w); err != nil {
			return err
		}
		if _, err := io.WriteString(w, ",\n"); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "}\n")
	return err
}
