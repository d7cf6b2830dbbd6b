package testutil

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

// EnumDef describes one enum of a schema payload. Variants are written in
// slice order.
type EnumDef struct {
	Name     string
	Variants []VariantDef
}

type VariantDef struct {
	Name  string
	Value int64
}

// StructDef describes one struct of a schema payload. Key is either a string
// name or a uint64 index into the global data struct name table.
type StructDef struct {
	Key    any
	Fields []FieldDef
}

type FieldDef struct {
	Name string
	Type string
}

// SchemaBytes encodes a schema payload in the world file wire form.
func SchemaBytes(t testing.TB, enums []EnumDef, structs []StructDef) []byte {
	t.Helper()

	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)

	require.NoError(t, enc.EncodeArrayLen(2))

	require.NoError(t, enc.EncodeMapLen(len(enums)))
	for _, e := range enums {
		require.NoError(t, enc.EncodeString(e.Name))
		require.NoError(t, enc.EncodeMapLen(len(e.Variants)))
		for _, v := range e.Variants {
			require.NoError(t, enc.EncodeString(v.Name))
			require.NoError(t, enc.EncodeInt(v.Value))
		}
	}

	require.NoError(t, enc.EncodeMapLen(len(structs)))
	for _, s := range structs {
		switch k := s.Key.(type) {
		case string:
			require.NoError(t, enc.EncodeString(k))
		case uint64:
			require.NoError(t, enc.EncodeUint(k))
		default:
			t.Fatalf("unsupported struct key type %T", s.Key)
		}
		require.NoError(t, enc.EncodeMapLen(len(s.Fields)))
		for _, f := range s.Fields {
			require.NoError(t, enc.EncodeString(f.Name))
			require.NoError(t, enc.EncodeString(f.Type))
		}
	}

	return buf.Bytes()
}

// GlobalDataBytes encodes a global data block from its name tables, keyed by
// their wire names (for example "component_data_struct_names").
func GlobalDataBytes(t testing.TB, tables map[string][]string) []byte {
	t.Helper()

	b, err := msgpack.Marshal(tables)
	require.NoError(t, err)
	return b
}
