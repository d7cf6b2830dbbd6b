package vfs

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestList(t *testing.T) {
	root := sampleTree()

	t.Run("root is sorted and newline terminated", func(t *testing.T) {
		assert.Equal(t, "a\ne.mps\nempty\n", List(root, ""))
	})

	t.Run("folder", func(t *testing.T) {
		a := mustChild(t, root, "a")
		assert.Equal(t, "b.json\nc\n", List(a, "a"))
	})

	t.Run("empty folder", func(t *testing.T) {
		assert.Equal(t, "", List(mustChild(t, root, "empty"), "empty"))
	})

	t.Run("file lists as its path", func(t *testing.T) {
		b := mustChild(t, mustChild(t, root, "a"), "b.json")
		assert.Equal(t, "a/./b.json", List(b, "a/./b.json"))
	})

	t.Run("each child exactly once", func(t *testing.T) {
		lines := strings.Split(strings.TrimSuffix(List(root, ""), "\n"), "\n")
		assert.ElementsMatch(t, []string{"a", "e.mps", "empty"}, lines)
	})
}

func TestListPath(t *testing.T) {
	root := sampleTree()

	t.Run("root spellings agree", func(t *testing.T) {
		want, err := ListPath(root, "")
		require.NoError(t, err)
		for _, p := range []string{"/", ".", "//", "/./"} {
			got, err := ListPath(root, p)
			require.NoError(t, err)
			assert.Equal(t, want, got, "path %q", p)
		}
	})

	t.Run("slashes trimmed", func(t *testing.T) {
		got, err := ListPath(root, "/a/")
		require.NoError(t, err)
		assert.Equal(t, "b.json\nc\n", got)
	})

	t.Run("file path is trimmed", func(t *testing.T) {
		got, err := ListPath(root, "/a/b.json/")
		require.NoError(t, err)
		assert.Equal(t, "a/b.json", got)
	})

	t.Run("navigation error surfaces", func(t *testing.T) {
		_, err := ListPath(root, "a/b.json/c")
		assert.ErrorIs(t, err, ErrTraverseIntoFile)
	})
}

func TestScenarioFolderWithJSON(t *testing.T) {
	root := NewRoot(map[string]*Node{
		"a": NewFolder(nil, map[string]*Node{"b.json": NewFile(nil)}),
	})

	a, err := Resolve(root, "a")
	require.NoError(t, err)
	assert.Equal(t, KindFolder, a.Kind())
	assert.Equal(t, "b.json\n", List(a, "a"))

	_, err = Resolve(root, "a/b.json/c")
	assert.ErrorIs(t, err, ErrTraverseIntoFile)
}
