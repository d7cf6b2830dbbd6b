package render

import (
	"strings"

	"github.com/jmgilman/go/errors"
)

// Kind is the rendering a path gets.
type Kind int

const (
	KindUnsupported Kind = iota
	KindSchema
	KindJSON
	KindMPS
)

func (k Kind) String() string {
	switch k {
	case KindSchema:
		return "schema"
	case KindJSON:
		return "json"
	case KindMPS:
		return "mps"
	default:
		return "unsupported"
	}
}

// Classify returns the kind and suffix of path. The suffix is whatever follows
// the last "." of the final segment; a segment without one is an error.
func Classify(path string) (Kind, string, error) {
	name := path[strings.LastIndex(path, "/")+1:]
	dot := strings.LastIndex(name, ".")
	if dot < 0 {
		return KindUnsupported, "", errors.WithContext(
			errors.New(CodeMissingSuffix, "path has no file suffix"),
			"path", path,
		)
	}

	suffix := name[dot+1:]
	switch suffix {
	case "schema":
		return KindSchema, suffix, nil
	case "json":
		return KindJSON, suffix, nil
	case "mps":
		return KindMPS, suffix, nil
	default:
		return KindUnsupported, suffix, nil
	}
}
