package storage

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmgilman/go/errors"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/brdbfs/internal/vfs"
)

// FolderMeta is the metadata attached to folder nodes.
type FolderMeta struct {
	ID        int64
	CreatedAt time.Time
}

// FileMeta is the metadata attached to file nodes. ContentID is zero when the
// file has no blob.
type FileMeta struct {
	ID        int64
	ContentID int64
	Size      int64
	CreatedAt time.Time
}

type folderRow struct {
	id     int64
	parent sql.NullInt64
	name   string
	node   *vfs.Node
}

// Tree builds the live directory hierarchy. Deleted rows are left out, and
// so is any entry whose parent is missing or deleted.
func (w *World) Tree(ctx context.Context) (*vfs.Node, error) {
	folders, err := w.loadFolders(ctx)
	if err != nil {
		return nil, err
	}

	root := vfs.NewRoot(nil)
	byID := make(map[int64]*vfs.Node, len(folders))
	for _, f := range folders {
		byID[f.id] = f.node
	}

	// Folders first so files can land in any of them
	for _, f := range folders {
		parent := w.parentNode(root, byID, f.parent, f.id)
		if parent == nil {
			w.logger.Debug("skipping orphan folder", zap.Int64("folder_id", f.id), zap.String("name", f.name))
			continue
		}
		w.attach(parent, f.name, f.node)
	}

	rows, err := w.db.QueryContext(ctx, `
		SELECT f.file_id, f.parent_id, f.name, f.content_id, f.created_at,
		       COALESCE(b.size_uncompressed, 0)
		FROM files f
		LEFT JOIN blobs b ON b.blob_id = f.content_id
		WHERE f.deleted_at IS NULL
		ORDER BY f.file_id`)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeDatabase, "failed to list files")
	}
	defer rows.Close()

	for rows.Next() {
		var (
			meta      FileMeta
			parentID  sql.NullInt64
			name      string
			contentID sql.NullInt64
			createdAt int64
		)
		if err := rows.Scan(&meta.ID, &parentID, &name, &contentID, &createdAt, &meta.Size); err != nil {
			return nil, errors.Wrap(err, errors.CodeDatabase, "failed to scan file")
		}
		meta.ContentID = contentID.Int64
		meta.CreatedAt = time.Unix(createdAt, 0).UTC()

		parent := w.parentNode(root, byID, parentID, 0)
		if parent == nil {
			w.logger.Debug("skipping orphan file", zap.Int64("file_id", meta.ID), zap.String("name", name))
			continue
		}
		w.attach(parent, name, vfs.NewFile(meta))
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, errors.CodeDatabase, "failed to list files")
	}

	return root, nil
}

func (w *World) loadFolders(ctx context.Context) ([]folderRow, error) {
	rows, err := w.db.QueryContext(ctx, `
		SELECT folder_id, parent_id, name, created_at
		FROM folders
		WHERE deleted_at IS NULL
		ORDER BY folder_id`)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeDatabase, "failed to list folders")
	}
	defer rows.Close()

	var folders []folderRow
	for rows.Next() {
		var (
			f         folderRow
			createdAt int64
		)
		if err := rows.Scan(&f.id, &f.parent, &f.name, &createdAt); err != nil {
			return nil, errors.Wrap(err, errors.CodeDatabase, "failed to scan folder")
		}
		f.node = vfs.NewFolder(FolderMeta{ID: f.id, CreatedAt: time.Unix(createdAt, 0).UTC()}, nil)
		folders = append(folders, f)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, errors.CodeDatabase, "failed to list folders")
	}
	return folders, nil
}

// parentNode returns the node an entry belongs under, or nil for orphans.
// self is the entry's own folder id, zero for files.
func (w *World) parentNode(root *vfs.Node, byID map[int64]*vfs.Node, parent sql.NullInt64, self int64) *vfs.Node {
	if !parent.Valid {
		return root
	}
	if self != 0 && parent.Int64 == self {
		return nil
	}
	return byID[parent.Int64]
}

// attach adds child under parent unless the name is empty or already taken.
// Rows arrive in id order, so the oldest entry keeps a contested name.
func (w *World) attach(parent *vfs.Node, name string, child *vfs.Node) {
	if name == "" {
		w.logger.Debug("skipping unnamed entry")
		return
	}
	if _, taken := parent.Child(name); taken {
		w.logger.Debug("skipping duplicate entry", zap.String("name", name))
		return
	}
	parent.Attach(name, child)
}
