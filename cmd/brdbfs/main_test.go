package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/brdbfs/internal/app"
	"github.com/GriffinCanCode/brdbfs/internal/schema"
	"github.com/GriffinCanCode/brdbfs/internal/testutil"
)

func buildWorld(t *testing.T) string {
	t.Helper()

	w := testutil.NewWorld(t)
	w.File("a/b.json", []byte(`{"x":1}`))
	w.FileWith("a/tampered.json", []byte(`{}`), testutil.BlobOptions{Hash: make([]byte, 32)})
	w.File(schema.GlobalDataPath, testutil.GlobalDataBytes(t, map[string][]string{
		"component_data_struct_names": {"Light"},
	}))
	w.File("World/0/Lights.schema", testutil.SchemaBytes(t, nil, []testutil.StructDef{
		{Key: uint64(0), Fields: []testutil.FieldDef{{Name: "on", Type: "bool"}}},
	}))
	return w.Path()
}

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), append([]string{programName}, args...), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRun(t *testing.T) {
	world := buildWorld(t)

	code, out, _ := runCLI(t, world, "ls", "/a")
	assert.Equal(t, app.ExitOK, code)
	assert.Equal(t, "b.json\ntampered.json\n", out)

	code, out, _ = runCLI(t, world, "read", "/a/b.json")
	assert.Equal(t, app.ExitOK, code)
	assert.Equal(t, "{\"x\":1}\n", out)
}

func TestRunUsage(t *testing.T) {
	code, out, _ := runCLI(t)
	assert.Equal(t, app.ExitOK, code)
	assert.Equal(t, "usage: brdbfs <world file path> <ls|read|edit> <path>\n", out)
}

func TestRunUsageShowsInvokedName(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"/usr/local/bin/brdbfs", "w.brdb"}, &stdout, &stderr)
	assert.Equal(t, app.ExitOK, code)
	assert.Equal(t, "usage: /usr/local/bin/brdbfs <world file path> <ls|read|edit> <path>\n", stdout.String())
}

func TestInvokedAs(t *testing.T) {
	assert.Equal(t, "./brdbfs", invokedAs([]string{"./brdbfs", "x"}))
	assert.Equal(t, programName, invokedAs(nil))
	assert.Equal(t, programName, invokedAs([]string{""}))
}

func TestRunFlags(t *testing.T) {
	world := buildWorld(t)

	t.Run("schema format", func(t *testing.T) {
		code, out, _ := runCLI(t, "--schema-format", "json", world, "read", "World/0/Lights.schema")
		assert.Equal(t, app.ExitOK, code)
		assert.Contains(t, out, `"Light"`)
	})

	t.Run("verification", func(t *testing.T) {
		code, _, errOut := runCLI(t, world, "read", "a/tampered.json")
		assert.Equal(t, app.ExitFatal, code)
		assert.Contains(t, errOut, "HASH_MISMATCH")

		code, out, _ := runCLI(t, "--no-verify", world, "read", "a/tampered.json")
		assert.Equal(t, app.ExitOK, code)
		assert.Equal(t, "{}\n", out)
	})

	t.Run("metrics file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "brdbfs.prom")
		code, _, _ := runCLI(t, "--metrics-file", path, world, "ls", "/")
		assert.Equal(t, app.ExitOK, code)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), `brdbfs_commands_total{command="ls",outcome="ok"} 1`)
	})

	t.Run("invalid format", func(t *testing.T) {
		code, _, errOut := runCLI(t, "--schema-format", "xml", world, "ls", "/")
		assert.Equal(t, app.ExitFatal, code)
		assert.Contains(t, errOut, "unknown schema format")
	})

	t.Run("env config", func(t *testing.T) {
		t.Setenv("BRDBFS_VERIFY_HASHES", "false")
		code, _, _ := runCLI(t, world, "read", "a/tampered.json")
		assert.Equal(t, app.ExitOK, code)
	})
}
