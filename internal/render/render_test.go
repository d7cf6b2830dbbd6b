package render

import (
	"bytes"
	"context"
	stderrors "errors"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/jmgilman/go/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/brdbfs/internal/schema"
	"github.com/GriffinCanCode/brdbfs/internal/testutil"
)

type fakeReader struct {
	files     map[string][]byte
	global    *schema.GlobalData
	globalErr error
	reads     []string
}

func (f *fakeReader) ReadFileContext(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.reads = append(f.reads, path)
	data, ok := f.files[path]
	if !ok {
		return nil, errors.New(errors.CodeNotFound, "no such file")
	}
	return data, nil
}

func (f *fakeReader) GlobalDataContext(ctx context.Context) (*schema.GlobalData, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return f.global, f.globalErr
}

func codeAndContext(t *testing.T, err error) (errors.ErrorCode, map[string]interface{}) {
	t.Helper()
	require.Error(t, err)
	var perr errors.PlatformError
	require.True(t, errors.As(err, &perr))
	return errors.GetCode(err), perr.Context()
}

func TestRenderJSON(t *testing.T) {
	reader := &fakeReader{files: map[string][]byte{"a/b.json": []byte(`{"x":1}`)}}
	r := New(reader, &bytes.Buffer{})

	got, err := r.Render("a/b.json")
	require.NoError(t, err)
	assert.Equal(t, `{"x":1}`, got)
}

func TestRenderJSONInvalidEncoding(t *testing.T) {
	latin1 := []byte("{\"name\":\"caf\xe9 cr\xe8me br\xfbl\xe9e\"}")
	reader := &fakeReader{files: map[string][]byte{"bad.json": latin1}}
	r := New(reader, &bytes.Buffer{})

	_, err := r.Render("bad.json")
	code, ctx := codeAndContext(t, err)
	assert.Equal(t, CodeInvalidEncoding, code)
	assert.Equal(t, "bad.json", ctx["path"])
	assert.Equal(t, "json", ctx["suffix"])
	assert.NotEmpty(t, ctx["charset"])
	assert.NotEmpty(t, ctx["mime_type"])
}

func TestRenderMPS(t *testing.T) {
	payload := []byte{0x82, 0xa1, 'a', 0x01, 0x00, 0xff}
	reader := &fakeReader{files: map[string][]byte{"World/0/Owners.mps": payload}}

	var raw bytes.Buffer
	r := New(reader, &raw)

	got, err := r.Render("World/0/Owners.mps")
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Equal(t, payload, raw.Bytes())
}

func TestRenderUnsupported(t *testing.T) {
	reader := &fakeReader{}
	r := New(reader, &bytes.Buffer{})

	_, err := r.Render("a/b.xyz")
	code, ctx := codeAndContext(t, err)
	assert.Equal(t, CodeUnsupportedFileType, code)
	assert.Equal(t, "xyz", ctx["suffix"])
	assert.Contains(t, err.Error(), "xyz")
	assert.Empty(t, reader.reads)
}

func TestRenderMissingSuffix(t *testing.T) {
	reader := &fakeReader{}
	r := New(reader, &bytes.Buffer{})

	_, err := r.Render("World/0/Bricks")
	code, ctx := codeAndContext(t, err)
	assert.Equal(t, CodeMissingSuffix, code)
	assert.Equal(t, "World/0/Bricks", ctx["path"])
	assert.Empty(t, reader.reads)
}

func TestRenderReadFailure(t *testing.T) {
	r := New(&fakeReader{}, &bytes.Buffer{})

	for _, path := range []string{"gone.json", "gone.mps", "gone.schema"} {
		t.Run(path, func(t *testing.T) {
			_, err := r.Render(path)
			code, ctx := codeAndContext(t, err)
			assert.Equal(t, CodeStorageReadFailed, code)
			assert.Equal(t, path, ctx["path"])
		})
	}
}

func schemaReader(t *testing.T) *fakeReader {
	t.Helper()
	data := testutil.SchemaBytes(t,
		[]testutil.EnumDef{
			{Name: "Direction", Variants: []testutil.VariantDef{{Name: "Down", Value: 1}, {Name: "Up", Value: 0}}},
		},
		[]testutil.StructDef{
			{Key: uint64(1), Fields: []testutil.FieldDef{{Name: "open", Type: "bool"}}},
		},
	)
	return &fakeReader{
		files:  map[string][]byte{"World/0/Doors.schema": data},
		global: &schema.GlobalData{ComponentDataStructNames: []string{"Light", "Door"}},
	}
}

func TestRenderSchema(t *testing.T) {
	t.Run("text", func(t *testing.T) {
		r := New(schemaReader(t), &bytes.Buffer{})

		got, err := r.Render("World/0/Doors.schema")
		require.NoError(t, err)
		assert.Equal(t, "enum Direction {\n"+
			"    Up = 0,\n"+
			"    Down = 1,\n"+
			"}\n"+
			"\n"+
			"struct Door {\n"+
			"    open: bool,\n"+
			"}", got)
	})

	t.Run("json", func(t *testing.T) {
		r := New(schemaReader(t), &bytes.Buffer{}, WithFormat(schema.FormatJSON))

		got, err := r.Render("World/0/Doors.schema")
		require.NoError(t, err)

		var s schema.Schema
		require.NoError(t, sonic.UnmarshalString(got, &s))
		require.Len(t, s.Structs, 1)
		assert.Equal(t, "Door", s.Structs[0].Name)
	})

	t.Run("global data unavailable", func(t *testing.T) {
		reader := schemaReader(t)
		reader.global, reader.globalErr = nil, errors.New(errors.CodeNotFound, "no such file")
		r := New(reader, &bytes.Buffer{})

		_, err := r.Render("World/0/Doors.schema")
		code, _ := codeAndContext(t, err)
		assert.Equal(t, CodeGlobalDataUnavailable, code)
	})

	t.Run("struct index out of range", func(t *testing.T) {
		reader := schemaReader(t)
		reader.global = &schema.GlobalData{ComponentDataStructNames: []string{"Light"}}
		r := New(reader, &bytes.Buffer{})

		_, err := r.Render("World/0/Doors.schema")
		code, _ := codeAndContext(t, err)
		assert.Equal(t, CodeSchemaDecodeFailed, code)
	})

	t.Run("custom decoder", func(t *testing.T) {
		boom := stderrors.New("boom")
		r := New(schemaReader(t), &bytes.Buffer{}, WithDecoder(func([]byte, *schema.GlobalData) (*schema.Schema, error) {
			return nil, boom
		}))

		_, err := r.Render("World/0/Doors.schema")
		code, _ := codeAndContext(t, err)
		assert.Equal(t, CodeSchemaDecodeFailed, code)
		assert.ErrorIs(t, err, boom)
	})
}

func TestRenderContextCanceled(t *testing.T) {
	reader := &fakeReader{files: map[string][]byte{"a/b.json": []byte(`{"x":1}`)}}
	r := New(reader, &bytes.Buffer{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.RenderContext(ctx, "a/b.json")
	code, _ := codeAndContext(t, err)
	assert.Equal(t, CodeStorageReadFailed, code)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, reader.reads)
}
