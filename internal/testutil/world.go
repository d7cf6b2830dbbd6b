package testutil

import (
	"database/sql"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/require"
	"lukechampine.com/blake3"

	_ "modernc.org/sqlite"
)

// Layout is the table layout of a world file.
const Layout = `
CREATE TABLE blobs (
	blob_id INTEGER PRIMARY KEY,
	compression INTEGER NOT NULL,
	size_uncompressed INTEGER NOT NULL,
	size_compressed INTEGER NOT NULL,
	delta_base_id INTEGER,
	hash BLOB NOT NULL,
	content BLOB NOT NULL
);
CREATE TABLE folders (
	folder_id INTEGER PRIMARY KEY,
	parent_id INTEGER REFERENCES folders(folder_id),
	name TEXT NOT NULL,
	created_at INTEGER NOT NULL,
	deleted_at INTEGER
);
CREATE TABLE files (
	file_id INTEGER PRIMARY KEY,
	parent_id INTEGER REFERENCES folders(folder_id),
	name TEXT NOT NULL,
	content_id INTEGER REFERENCES blobs(blob_id),
	created_at INTEGER NOT NULL,
	deleted_at INTEGER
);
`

// Blob compression values.
const (
	CompressionNone int64 = 0
	CompressionZstd int64 = 1
)

// CreatedAt is the timestamp stamped on every fixture row.
const CreatedAt int64 = 1700000000

// BlobOptions tweaks how a file's blob is stored. The zero value stores a
// zstd-compressed blob with a correct hash and sizes.
type BlobOptions struct {
	Compression      int64
	Uncompressed     bool
	Hash             []byte
	SizeUncompressed int64
	DeltaBase        int64
}

// World writes a world file fixture.
type World struct {
	t       testing.TB
	db      *sql.DB
	path    string
	folders map[string]int64
	closed  bool
}

// NewWorld creates an empty world file in a temporary directory.
func NewWorld(t testing.TB) *World {
	t.Helper()

	path := filepath.Join(t.TempDir(), "world.brdb")
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	db.SetMaxOpenConns(1)

	_, err = db.Exec(Layout)
	require.NoError(t, err)

	w := &World{t: t, db: db, path: path, folders: map[string]int64{}}
	t.Cleanup(func() { w.close() })
	return w
}

// Folder creates every folder along path and returns the id of the last one.
func (w *World) Folder(path string) int64 {
	w.t.Helper()

	var parent sql.NullInt64
	var walked []string
	for _, name := range splitPath(path) {
		walked = append(walked, name)
		key := strings.Join(walked, "/")
		if id, ok := w.folders[key]; ok {
			parent = sql.NullInt64{Int64: id, Valid: true}
			continue
		}

		res, err := w.db.Exec(
			`INSERT INTO folders (parent_id, name, created_at) VALUES (?, ?, ?)`,
			parent, name, CreatedAt,
		)
		require.NoError(w.t, err)
		id, err := res.LastInsertId()
		require.NoError(w.t, err)

		w.folders[key] = id
		parent = sql.NullInt64{Int64: id, Valid: true}
	}
	return parent.Int64
}

// File stores data at path as a zstd blob, creating parent folders.
func (w *World) File(path string, data []byte) int64 {
	w.t.Helper()
	return w.FileWith(path, data, BlobOptions{})
}

// FileWith stores data at path with explicit blob options.
func (w *World) FileWith(path string, data []byte, opts BlobOptions) int64 {
	w.t.Helper()

	blobID := w.Blob(data, opts)
	return w.insertFile(path, sql.NullInt64{Int64: blobID, Valid: true})
}

// EmptyFile stores a file entry with no content blob.
func (w *World) EmptyFile(path string) int64 {
	w.t.Helper()
	return w.insertFile(path, sql.NullInt64{})
}

// Blob inserts a blob row and returns its id.
func (w *World) Blob(data []byte, opts BlobOptions) int64 {
	w.t.Helper()

	compression := opts.Compression
	content := data
	if opts.Uncompressed {
		compression = CompressionNone
	} else if compression == CompressionNone {
		compression = CompressionZstd
	}
	if compression == CompressionZstd {
		enc, err := zstd.NewWriter(nil)
		require.NoError(w.t, err)
		content = enc.EncodeAll(data, nil)
		require.NoError(w.t, enc.Close())
	}

	hash := opts.Hash
	if hash == nil {
		sum := blake3.Sum256(data)
		hash = sum[:]
	}

	size := int64(len(data))
	if opts.SizeUncompressed != 0 {
		size = opts.SizeUncompressed
	}

	var delta sql.NullInt64
	if opts.DeltaBase != 0 {
		delta = sql.NullInt64{Int64: opts.DeltaBase, Valid: true}
	}

	res, err := w.db.Exec(
		`INSERT INTO blobs (compression, size_uncompressed, size_compressed, delta_base_id, hash, content)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		compression, size, len(content), delta, hash, content,
	)
	require.NoError(w.t, err)
	id, err := res.LastInsertId()
	require.NoError(w.t, err)
	return id
}

func (w *World) insertFile(path string, content sql.NullInt64) int64 {
	w.t.Helper()

	dir, name := splitDir(path)
	var parent sql.NullInt64
	if dir != "" {
		parent = sql.NullInt64{Int64: w.Folder(dir), Valid: true}
	}

	res, err := w.db.Exec(
		`INSERT INTO files (parent_id, name, content_id, created_at) VALUES (?, ?, ?, ?)`,
		parent, name, content, CreatedAt,
	)
	require.NoError(w.t, err)
	id, err := res.LastInsertId()
	require.NoError(w.t, err)
	return id
}

// Exec runs raw SQL against the fixture, for shaping edge cases.
func (w *World) Exec(query string, args ...any) {
	w.t.Helper()
	_, err := w.db.Exec(query, args...)
	require.NoError(w.t, err)
}

// Path closes the fixture for writing and returns its location.
func (w *World) Path() string {
	w.t.Helper()
	w.close()
	return w.path
}

func (w *World) close() {
	if w.closed {
		return
	}
	w.closed = true
	require.NoError(w.t, w.db.Close())
}

func splitPath(path string) []string {
	var out []string
	for _, part := range strings.Split(path, "/") {
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func splitDir(path string) (string, string) {
	parts := splitPath(path)
	if len(parts) == 0 {
		return "", ""
	}
	return strings.Join(parts[:len(parts)-1], "/"), parts[len(parts)-1]
}
