package storage

import (
	"context"
	"database/sql"
	"strings"

	"github.com/jmgilman/go/errors"
)

// ReadFile returns the contents of the file at path. Path segments are
// literal names separated by "/".
func (w *World) ReadFile(path string) ([]byte, error) {
	return w.ReadFileContext(context.Background(), path)
}

// ReadFileContext is ReadFile with a context for the underlying queries.
func (w *World) ReadFileContext(ctx context.Context, path string) ([]byte, error) {
	dirs, name := splitFilePath(path)
	if name == "" {
		return nil, notFound(path)
	}

	var parent sql.NullInt64
	for _, dir := range dirs {
		var id int64
		err := w.db.QueryRowContext(ctx, `
			SELECT folder_id FROM folders
			WHERE parent_id IS ? AND name = ? AND deleted_at IS NULL
			ORDER BY folder_id LIMIT 1`,
			parent, dir,
		).Scan(&id)
		if err == sql.ErrNoRows {
			return nil, notFound(path)
		}
		if err != nil {
			return nil, errors.WithContext(errors.Wrap(err, errors.CodeDatabase, "failed to look up folder"), "path", path)
		}
		parent = sql.NullInt64{Int64: id, Valid: true}
	}

	var contentID sql.NullInt64
	err := w.db.QueryRowContext(ctx, `
		SELECT content_id FROM files
		WHERE parent_id IS ? AND name = ? AND deleted_at IS NULL
		ORDER BY file_id LIMIT 1`,
		parent, name,
	).Scan(&contentID)
	if err == sql.ErrNoRows {
		return nil, notFound(path)
	}
	if err != nil {
		return nil, errors.WithContext(errors.Wrap(err, errors.CodeDatabase, "failed to look up file"), "path", path)
	}

	if !contentID.Valid {
		return []byte{}, nil
	}

	data, err := w.readBlob(ctx, contentID.Int64)
	if err != nil {
		return nil, errors.WithContext(err, "path", path)
	}
	return data, nil
}

func notFound(path string) error {
	return errors.WithContext(errors.New(errors.CodeNotFound, "no such file"), "path", path)
}

// splitFilePath splits path into its folder names and the file name, dropping
// empty segments.
func splitFilePath(path string) ([]string, string) {
	var parts []string
	for _, part := range strings.Split(path, "/") {
		if part != "" {
			parts = append(parts, part)
		}
	}
	if len(parts) == 0 {
		return nil, ""
	}
	return parts[:len(parts)-1], parts[len(parts)-1]
}
