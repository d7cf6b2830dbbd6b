package schema

import (
	"bytes"
	"sort"

	"github.com/jmgilman/go/errors"
	"github.com/vmihailenco/msgpack/v5"
)

// Schema is a decoded schema descriptor.
type Schema struct {
	Enums   []Enum   `json:"enums" yaml:"enums"`
	Structs []Struct `json:"structs" yaml:"structs"`
}

// Enum is a named set of integer-valued variants.
type Enum struct {
	Name     string    `json:"name" yaml:"name"`
	Variants []Variant `json:"variants" yaml:"variants"`
}

type Variant struct {
	Name  string `json:"name" yaml:"name"`
	Value int64  `json:"value" yaml:"value"`
}

// Struct is a named, ordered list of typed fields.
type Struct struct {
	Name   string  `json:"name" yaml:"name"`
	Fields []Field `json:"fields" yaml:"fields"`
}

type Field struct {
	Name string `json:"name" yaml:"name"`
	Type string `json:"type" yaml:"type"`
}

// Decode parses schema bytes. Interned struct names are resolved through gd,
// so gd must be non-nil whenever the schema uses them.
//
// The wire form is a two element array [enums, structs]:
//
//	enums:   {enum name: {variant name: value}}
//	structs: {struct name | struct name index: {field name: type}}
func Decode(b []byte, gd *GlobalData) (*Schema, error) {
	r := bytes.NewReader(b)
	dec := msgpack.NewDecoder(r)

	n, err := dec.DecodeArrayLen()
	if err != nil {
		return nil, errors.Wrap(err, CodeDecodeFailed, "failed to read schema header")
	}
	if n != 2 {
		return nil, errors.Newf(CodeDecodeFailed, "schema header has %d sections, want 2", n)
	}

	enums, err := decodeEnums(dec)
	if err != nil {
		return nil, err
	}
	structs, err := decodeStructs(dec, gd)
	if err != nil {
		return nil, err
	}

	if r.Len() != 0 {
		return nil, errors.Newf(CodeDecodeFailed, "%d trailing bytes after schema", r.Len())
	}

	sort.Slice(enums, func(i, j int) bool { return enums[i].Name < enums[j].Name })
	sort.Slice(structs, func(i, j int) bool { return structs[i].Name < structs[j].Name })

	return &Schema{Enums: enums, Structs: structs}, nil
}

func decodeEnums(dec *msgpack.Decoder) ([]Enum, error) {
	n, err := dec.DecodeMapLen()
	if err != nil {
		return nil, errors.Wrap(err, CodeDecodeFailed, "failed to read enum table")
	}

	enums := make([]Enum, 0, max(n, 0))
	seen := make(map[string]bool, max(n, 0))
	for i := 0; i < n; i++ {
		name, err := dec.DecodeString()
		if err != nil {
			return nil, errors.Wrap(err, CodeDecodeFailed, "failed to read enum name")
		}
		if seen[name] {
			return nil, errors.Newf(CodeDecodeFailed, "duplicate enum %q", name)
		}
		seen[name] = true

		variants, err := decodeVariants(dec, name)
		if err != nil {
			return nil, err
		}
		enums = append(enums, Enum{Name: name, Variants: variants})
	}
	return enums, nil
}

func decodeVariants(dec *msgpack.Decoder, enum string) ([]Variant, error) {
	n, err := dec.DecodeMapLen()
	if err != nil {
		return nil, errors.Wrapf(err, CodeDecodeFailed, "failed to read variants of enum %q", enum)
	}

	variants := make([]Variant, 0, max(n, 0))
	for i := 0; i < n; i++ {
		name, err := dec.DecodeString()
		if err != nil {
			return nil, errors.Wrapf(err, CodeDecodeFailed, "failed to read variant name in enum %q", enum)
		}
		value, err := dec.DecodeInt64()
		if err != nil {
			return nil, errors.Wrapf(err, CodeDecodeFailed, "failed to read value of %s::%s", enum, name)
		}
		variants = append(variants, Variant{Name: name, Value: value})
	}

	sort.Slice(variants, func(i, j int) bool {
		if variants[i].Value != variants[j].Value {
			return variants[i].Value < variants[j].Value
		}
		return variants[i].Name < variants[j].Name
	})
	return variants, nil
}

func decodeStructs(dec *msgpack.Decoder, gd *GlobalData) ([]Struct, error) {
	n, err := dec.DecodeMapLen()
	if err != nil {
		return nil, errors.Wrap(err, CodeDecodeFailed, "failed to read struct table")
	}

	structs := make([]Struct, 0, max(n, 0))
	seen := make(map[string]bool, max(n, 0))
	for i := 0; i < n; i++ {
		name, err := decodeStructName(dec, gd)
		if err != nil {
			return nil, err
		}
		if seen[name] {
			return nil, errors.Newf(CodeDecodeFailed, "duplicate struct %q", name)
		}
		seen[name] = true

		fields, err := decodeFields(dec, name)
		if err != nil {
			return nil, err
		}
		structs = append(structs, Struct{Name: name, Fields: fields})
	}
	return structs, nil
}

// decodeStructName reads either a literal name or an index into the global
// data struct name table.
func decodeStructName(dec *msgpack.Decoder, gd *GlobalData) (string, error) {
	key, err := dec.DecodeInterfaceLoose()
	if err != nil {
		return "", errors.Wrap(err, CodeDecodeFailed, "failed to read struct name")
	}

	var index uint64
	switch k := key.(type) {
	case string:
		return k, nil
	case uint64:
		index = k
	case int64:
		if k < 0 {
			return "", errors.Newf(CodeDecodeFailed, "negative struct name index %d", k)
		}
		index = uint64(k)
	default:
		return "", errors.Newf(CodeDecodeFailed, "struct name has unsupported type %T", key)
	}

	if gd == nil {
		return "", errors.Newf(CodeDecodeFailed, "struct name index %d needs global data", index)
	}
	name, ok := gd.StructName(index)
	if !ok {
		return "", errors.Newf(CodeDecodeFailed, "struct name index %d out of range (%d names)",
			index, len(gd.ComponentDataStructNames))
	}
	return name, nil
}

func decodeFields(dec *msgpack.Decoder, structName string) ([]Field, error) {
	n, err := dec.DecodeMapLen()
	if err != nil {
		return nil, errors.Wrapf(err, CodeDecodeFailed, "failed to read fields of struct %q", structName)
	}

	fields := make([]Field, 0, max(n, 0))
	for i := 0; i < n; i++ {
		name, err := dec.DecodeString()
		if err != nil {
			return nil, errors.Wrapf(err, CodeDecodeFailed, "failed to read field name in struct %q", structName)
		}
		typ, err := dec.DecodeString()
		if err != nil {
			return nil, errors.Wrapf(err, CodeDecodeFailed, "failed to read type of %s.%s", structName, name)
		}
		fields = append(fields, Field{Name: name, Type: typ})
	}
	return fields, nil
}
