package render

import (
	"testing"

	"github.com/jmgilman/go/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		path   string
		kind   Kind
		suffix string
	}{
		{"World/0/Bricks.schema", KindSchema, "schema"},
		{"a/b.json", KindJSON, "json"},
		{"World/0/GlobalData.mps", KindMPS, "mps"},
		{"a/b.xyz", KindUnsupported, "xyz"},
		{"archive.tar.json", KindJSON, "json"},
		{"v1.2/meta.json", KindJSON, "json"},
		{".json", KindJSON, "json"},
		{"trailing.", KindUnsupported, ""},
		{"upper.JSON", KindUnsupported, "JSON"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			kind, suffix, err := Classify(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, kind)
			assert.Equal(t, tt.suffix, suffix)
		})
	}
}

func TestClassifyMissingSuffix(t *testing.T) {
	for _, path := range []string{"", "README", "a.b/c", "World/0/"} {
		t.Run(path, func(t *testing.T) {
			_, _, err := Classify(path)
			require.Error(t, err)
			assert.Equal(t, CodeMissingSuffix, errors.GetCode(err))
		})
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "schema", KindSchema.String())
	assert.Equal(t, "json", KindJSON.String())
	assert.Equal(t, "mps", KindMPS.String())
	assert.Equal(t, "unsupported", KindUnsupported.String())
}
