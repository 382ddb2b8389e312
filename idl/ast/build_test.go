package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/idlrs/idl/grammar"
)

func parseDoc(t *testing.T, src string) *grammar.Node {
	t.Helper()
	n, err := grammar.Parse(src)
	require.NoError(t, err)
	return n
}

func TestBuildDocument(t *testing.T) {
	src := `/// A sequential byte stream.
[uuid(0c733a30-2a1c-11ce-ade5-00aa0044773d), object]
interface ISequentialStream : IUnknown {
    /// Read bytes into a caller buffer.
    HRESULT Read([out] void* pv, [in] ULONG cb, [out, retval] ULONG* pcbRead);

    HRESULT Write([in] const void* pv, [in] ULONG cb);
}`
	doc := BuildDocument(parseDoc(t, src))
	require.Len(t, doc.Interfaces, 1)

	iface := doc.Interfaces[0]
	assert.Equal(t, "ISequentialStream", iface.Name)
	assert.Equal(t, "IUnknown", iface.Parent)
	assert.Equal(t, "0c733a30-2a1c-11ce-ade5-00aa0044773d", iface.UUID)
	assert.Equal(t, []string{"object"}, iface.Attributes)
	assert.Equal(t, "/// A sequential byte stream.\n", iface.DocComment)

	require.Len(t, iface.Methods, 2)
	read := iface.Methods[0]
	assert.Equal(t, "Read", read.Name)
	assert.Equal(t, "    /// Read bytes into a caller buffer.\n", read.DocComment)
	assert.Equal(t, Type{Base: "HRESULT"}, read.ReturnType)
	require.Len(t, read.Parameters, 3)
	assert.Equal(t, Parameter{
		Attributes: []string{"out"},
		Type:       Type{Base: "void", Modifiers: []Modifier{ModifierPointer}},
		Name:       "pv",
	}, read.Parameters[0])
	assert.Equal(t, Parameter{
		Attributes: []string{"out", "retval"},
		Type:       Type{Base: "ULONG", Modifiers: []Modifier{ModifierPointer}},
		Name:       "pcbRead",
	}, read.Parameters[2])

	write := iface.Methods[1]
	assert.Empty(t, write.DocComment)
	assert.Equal(t, Type{
		Base:      "void",
		Modifiers: []Modifier{ModifierPointer, ModifierConst},
	}, write.Parameters[0].Type)
}

func TestBuildNestedTypes(t *testing.T) {
	src := `interface IFoo : IUnknown {
    typedef enum STATE {
        /// Nothing happened yet.
        STATE_IDLE,
        STATE_RUNNING,
    } STREAM_STATE;

    typedef struct Token {
        __int64 value;
    } EventRegistrationToken;

    HRESULT Poll();
}`
	doc := BuildDocument(parseDoc(t, src))
	require.Len(t, doc.Interfaces, 1)
	iface := doc.Interfaces[0]

	require.Len(t, iface.Enums, 1)
	e := iface.Enums[0]
	// the trailing typedef name wins over the tag
	assert.Equal(t, "STREAM_STATE", e.Name)
	require.Len(t, e.Variants, 2)
	assert.Equal(t, "STATE_IDLE", e.Variants[0].Name)
	assert.Equal(t, "        /// Nothing happened yet.\n", e.Variants[0].DocComment)
	assert.Empty(t, e.Variants[1].DocComment)

	require.Len(t, iface.Structs, 1)
	s := iface.Structs[0]
	assert.Equal(t, "EventRegistrationToken", s.Name)
	require.Len(t, s.Fields, 1)
	assert.Equal(t, "value", s.Fields[0].Name)
	assert.Equal(t, Type{Base: "__int64"}, s.Fields[0].Type)

	require.Len(t, iface.Methods, 1)
	assert.Equal(t, "Poll", iface.Methods[0].Name)
}

func TestBuildIgnoresUnconsumedAttributes(t *testing.T) {
	// member-level attribute blocks surface in the parse tree but carry no
	// semantic weight
	src := `interface IFoo : IUnknown {
    [propget]
    HRESULT Count([out, retval] int* value);
}`
	doc := BuildDocument(parseDoc(t, src))
	require.Len(t, doc.Interfaces[0].Methods, 1)
	m := doc.Interfaces[0].Methods[0]
	assert.Equal(t, "Count", m.Name)
	require.Len(t, m.Parameters, 1)
}

func TestBuildDocCommentTrailingWhitespaceTrimmed(t *testing.T) {
	// a doc comment cut off by end of input keeps no trailing spaces
	n := &grammar.Node{Kind: grammar.KindDocComment, Text: "/// dangling   "}
	assert.Equal(t, "/// dangling", docText(n))
}

func TestBuildWrongKindPanics(t *testing.T) {
	require.Panics(t, func() {
		BuildDocument(&grammar.Node{Kind: grammar.KindInterface})
	})
	require.Panics(t, func() {
		buildMethod(&grammar.Node{Kind: grammar.KindParameter})
	})
}
