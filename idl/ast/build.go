package ast

import (
	"strings"

	"github.com/teranos/idlrs/errors"
	"github.com/teranos/idlrs/idl/grammar"
)

// Builders walk the immediate children of one parse-tree node each,
// dispatching on child kind. Unrecognized child kinds are skipped in every
// switch below: the grammar may grow productions the builders do not consume
// yet. A node of the wrong kind handed to a builder is a contract violation
// between grammar and builders and aborts the process.

// mustKind asserts the parse-tree contract between the grammar and a builder
func mustKind(n *grammar.Node, want grammar.Kind) {
	if n.Kind != want {
		panic(errors.AssertionFailedf("grammar contract violation: builder for %s received %s node", want, n.Kind))
	}
}

// docText right-trims trailing spaces and tabs from a captured doc comment.
// Newlines are preserved; the text is otherwise verbatim.
func docText(n *grammar.Node) string {
	return strings.TrimRight(n.Text, " \t")
}

// BuildDocument builds the semantic tree for a whole parse tree
func BuildDocument(n *grammar.Node) *Document {
	mustKind(n, grammar.KindDocument)
	doc := &Document{}
	for _, c := range n.Children {
		switch c.Kind {
		case grammar.KindInterface:
			doc.Interfaces = append(doc.Interfaces, buildInterface(c))
		default:
			// ignore
		}
	}
	return doc
}

func buildInterface(n *grammar.Node) Interface {
	mustKind(n, grammar.KindInterface)
	var iface Interface
	for _, c := range n.Children {
		switch c.Kind {
		case grammar.KindDocComment:
			iface.DocComment = docText(c)
		case grammar.KindUUID:
			iface.UUID = c.Text
		case grammar.KindOtherAttribute:
			iface.Attributes = append(iface.Attributes, c.Text)
		case grammar.KindInterfaceName:
			iface.Name = c.Text
		case grammar.KindParent:
			iface.Parent = c.Text
		case grammar.KindMethod:
			iface.Methods = append(iface.Methods, buildMethod(c))
		case grammar.KindTypedefEnum:
			iface.Enums = append(iface.Enums, buildTypedefEnum(c))
		case grammar.KindTypedefStruct:
			iface.Structs = append(iface.Structs, buildTypedefStruct(c))
		default:
			// ignore
		}
	}
	return iface
}

func buildMethod(n *grammar.Node) Method {
	mustKind(n, grammar.KindMethod)
	var m Method
	for _, c := range n.Children {
		switch c.Kind {
		case grammar.KindDocComment:
			m.DocComment = docText(c)
		case grammar.KindType:
			m.ReturnType = ResolveType(c)
		case grammar.KindMethodName:
			m.Name = c.Text
		case grammar.KindParameter:
			m.Parameters = append(m.Parameters, buildParameter(c))
		default:
			// ignore
		}
	}
	return m
}

func buildParameter(n *grammar.Node) Parameter {
	mustKind(n, grammar.KindParameter)
	var p Parameter
	for _, c := range n.Children {
		switch c.Kind {
		case grammar.KindParameterAttribute:
			p.Attributes = append(p.Attributes, c.Text)
		case grammar.KindType:
			p.Type = ResolveType(c)
		case grammar.KindIdentifier:
			p.Name = c.Text
		default:
			// ignore
		}
	}
	return p
}

func buildTypedefEnum(n *grammar.Node) TypedefEnum {
	mustKind(n, grammar.KindTypedefEnum)
	var e TypedefEnum
	for _, c := range n.Children {
		switch c.Kind {
		case grammar.KindDocComment:
			e.DocComment = docText(c)
		case grammar.KindIdentifier:
			// tag then typedef name; the last one wins
			e.Name = c.Text
		case grammar.KindVariant:
			e.Variants = append(e.Variants, buildVariant(c))
		default:
			// ignore
		}
	}
	return e
}

func buildVariant(n *grammar.Node) Variant {
	mustKind(n, grammar.KindVariant)
	var v Variant
	for _, c := range n.Children {
		switch c.Kind {
		case grammar.KindDocComment:
			v.DocComment = docText(c)
		case grammar.KindIdentifier:
			v.Name = c.Text
		default:
			// ignore
		}
	}
	return v
}

func buildTypedefStruct(n *grammar.Node) TypedefStruct {
	mustKind(n, grammar.KindTypedefStruct)
	var s TypedefStruct
	for _, c := range n.Children {
		switch c.Kind {
		case grammar.KindDocComment:
			s.DocComment = docText(c)
		case grammar.KindIdentifier:
			s.Name = c.Text
		case grammar.KindField:
			s.Fields = append(s.Fields, buildField(c))
		default:
			// ignore
		}
	}
	return s
}

func buildField(n *grammar.Node) Field {
	mustKind(n, grammar.KindField)
	var f Field
	for _, c := range n.Children {
		switch c.Kind {
		case grammar.KindDocComment:
			f.DocComment = docText(c)
		case grammar.KindType:
			f.Type = ResolveType(c)
		case grammar.KindIdentifier:
			f.Name = c.Text
		default:
			// ignore
		}
	}
	return f
}
