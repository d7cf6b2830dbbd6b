package schema

import (
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/goccy/go-yaml"
	"github.com/jmgilman/go/errors"
)

// Format selects how a Schema is rendered.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	case "":
		return FormatText, nil
	default:
		return "", errors.Newf(errors.CodeInvalidInput, "unknown schema format %q (want text, json or yaml)", s)
	}
}

// String renders the canonical text form: enums first, then structs, each
// block separated by a blank line.
func (s *Schema) String() string {
	var blocks []string

	for _, e := range s.Enums {
		var b strings.Builder
		b.WriteString("enum " + e.Name + " {\n")
		for _, v := range e.Variants {
			b.WriteString("    " + v.Name + " = " + strconv.FormatInt(v.Value, 10) + ",\n")
		}
		b.WriteString("}")
		blocks = append(blocks, b.String())
	}

	for _, st := range s.Structs {
		var b strings.Builder
		b.WriteString("struct " + st.Name + " {\n")
		for _, f := range st.Fields {
			b.WriteString("    " + f.Name + ": " + f.Type + ",\n")
		}
		b.WriteString("}")
		blocks = append(blocks, b.String())
	}

	return strings.Join(blocks, "\n\n")
}

// Encode renders the schema in the requested format
func (s *Schema) Encode(format Format) (string, error) {
	switch format {
	case FormatText, "":
		return s.String(), nil
	case FormatJSON:
		out, err := sonic.ConfigStd.MarshalIndent(s, "", "  ")
		if err != nil {
			return "", errors.Wrap(err, errors.CodeInternal, "JSON encoding error")
		}
		return string(out), nil
	case FormatYAML:
		out, err := yaml.Marshal(s)
		if err != nil {
			return "", errors.Wrap(err, errors.CodeInternal, "YAML encoding error")
		}
		return string(out), nil
	default:
		return "", errors.Newf(errors.CodeInvalidInput, "unknown schema format %q", format)
	}
}
