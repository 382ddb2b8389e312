package idl

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/idlrs/gen"
	"github.com/teranos/idlrs/gen/rust"
	"github.com/teranos/idlrs/idl/ast"
	"github.com/teranos/idlrs/idl/grammar"
)

const streamSource = `/// A sequential byte stream.
[uuid(0c733a30-2a1c-11ce-ade5-00aa0044773d), object]
interface ISequentialStream : IUnknown {
    /// Read bytes into a caller buffer.
    HRESULT Read([out] void* pv, [in] ULONG cb, [out, retval] ULONG* pcbRead);

    HRESULT Clone([out, retval] IStream** copy);

    typedef enum STREAM_STATE {
        /// Open for reading.
        STREAM_STATE_OPEN,
        STREAM_STATE_CLOSED,
    } STREAM_STATE;
}`

func TestCompile(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Compile(streamSource, &buf))
	out := buf.String()

	require.True(t, strings.HasPrefix(out, rust.Prologue))

	want := `/// A sequential byte stream.
#[com_interface("0c733a30-2a1c-11ce-ade5-00aa0044773d")]
pub trait ISequentialStream: IUnknown {
    /// Read bytes into a caller buffer.
    unsafe fn read(&self, /* out */ pv: *mut void, /* in */ cb: ULONG, /* out, retval */ pcbRead: *mut ULONG) -> HRESULT;

    unsafe fn clone(&self, /* out, retval */ copy: *mut *mut *mut IStreamVTable) -> HRESULT;
}

#[repr(u32)]
pub enum STREAM_STATE {
        /// Open for reading.
    STREAM_STATE_OPEN,
    STREAM_STATE_CLOSED,
}
`
	// the variant doc comment keeps its source indentation (eight spaces,
	// from the enum body nested inside the interface block)
	assert.Equal(t, want, out[len(rust.Prologue):])
}

func TestCompileEmptySource(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Compile("", &buf))
	assert.Equal(t, rust.Prologue, buf.String())
}

func TestCompileSyntaxErrorWritesNothing(t *testing.T) {
	var buf bytes.Buffer
	err := Compile("interface IBroken : IUnknown {\n    HRESULT Do()\n", &buf)
	require.Error(t, err)
	assert.Zero(t, buf.Len())

	perr, ok := err.(*grammar.ParseError)
	require.True(t, ok, "error should be a *ParseError, got %T", err)
	assert.NotZero(t, perr.Pos.Line)
}

func TestCompileMalformedUUIDStillCompiles(t *testing.T) {
	// a malformed unique identifier is a lint warning, not an error; it
	// passes through to the attribute verbatim
	src := `[uuid(not-a-uuid)]
interface IFoo : IUnknown {}`
	var buf bytes.Buffer
	require.NoError(t, Compile(src, &buf))
	assert.Contains(t, buf.String(), `#[com_interface("not-a-uuid")]`)
}

// listingGenerator writes one line per interface; it stands in for a second
// binding target behind the gen.Generator seam
type listingGenerator struct{}

func (listingGenerator) Language() string      { return "listing" }
func (listingGenerator) FileExtension() string { return "txt" }

func (listingGenerator) GenerateFile(doc *ast.Document, w io.Writer) error {
	for _, iface := range doc.Interfaces {
		if _, err := io.WriteString(w, iface.Name+"\n"); err != nil {
			return err
		}
	}
	return nil
}

func TestCompileWithSelectsGenerator(t *testing.T) {
	var g gen.Generator = listingGenerator{}
	var buf bytes.Buffer
	require.NoError(t, CompileWith(streamSource, g, &buf))
	assert.Equal(t, "ISequentialStream\n", buf.String())
}

func TestCompileDeterministic(t *testing.T) {
	var first, second bytes.Buffer
	require.NoError(t, Compile(streamSource, &first))
	require.NoError(t, Compile(streamSource, &second))
	assert.Equal(t, first.String(), second.String())
}
