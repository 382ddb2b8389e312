package ast

import (
	"strings"

	"github.com/teranos/idlrs/idl/grammar"
)

// ResolveType maps a type parse node to its semantic Type.
//
// The base identifier resolves case-insensitively in priority order:
// "int" is the 32-bit signed integer, "double" the 64-bit float, a name
// starting with an uppercase 'I' is a reference to another interface's
// dispatch table (the base becomes "<Name>VTable" and an implicit Pointer
// qualifier joins the list, since interface references always travel as a
// pointer to their vtable), and anything else passes through verbatim.
//
// The grammar yields explicit qualifiers innermost-first; after all children
// are consumed the modifier list is reversed exactly once so it reads
// outermost-first for rendering. This is the single mutation performed on an
// otherwise immutable tree.
func ResolveType(n *grammar.Node) Type {
	mustKind(n, grammar.KindType)

	var t Type
	for _, c := range n.Children {
		switch c.Kind {
		case grammar.KindIdentifier:
			switch {
			case strings.EqualFold(c.Text, "int"):
				t.Base = "i32"
			case strings.EqualFold(c.Text, "double"):
				t.Base = "f64"
			case strings.HasPrefix(c.Text, "I"):
				t.Modifiers = append(t.Modifiers, ModifierPointer)
				t.Base = c.Text + "VTable"
			default:
				t.Base = c.Text
			}
		case grammar.KindPointer:
			t.Modifiers = append(t.Modifiers, ModifierPointer)
		case grammar.KindConst:
			t.Modifiers = append(t.Modifiers, ModifierConst)
		default:
			// ignore
		}
	}

	reverseModifiers(t.Modifiers)
	return t
}

func reverseModifiers(ms []Modifier) {
	for i, j := 0, len(ms)-1; i < j; i, j = i+1, j-1 {
		ms[i], ms[j] = ms[j], ms[i]
	}
}
