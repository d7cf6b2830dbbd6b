package storage

import (
	"context"
	"database/sql"
	"strings"

	"github.com/jmgilman/go/errors"

	_ "modernc.org/sqlite"
)

// Tables a world file must contain.
var requiredTables = []string{"blobs", "folders", "files"}

// DB wraps the SQL database connection
type DB struct {
	*sql.DB
}

// OpenDB opens the SQLite file at path read-only and checks that it has the
// world file layout.
func OpenDB(ctx context.Context, path string) (*DB, error) {
	db, err := sql.Open("sqlite", readOnlyDSN(path))
	if err != nil {
		return nil, errors.WithContext(
			errors.Wrap(err, errors.CodeDatabase, "failed to open database"),
			"path", path,
		)
	}

	// One connection is plenty for a single command
	db.SetMaxOpenConns(1)

	wrapper := &DB{DB: db}
	if err := wrapper.verifyLayout(ctx); err != nil {
		db.Close()
		return nil, errors.WithContext(err, "path", path)
	}

	return wrapper, nil
}

// verifyLayout checks that every required table exists
func (db *DB) verifyLayout(ctx context.Context) error {
	rows, err := db.QueryContext(ctx, `SELECT name FROM sqlite_master WHERE type = 'table'`)
	if err != nil {
		return errors.Wrap(err, errors.CodeInvalidInput, "not a world file")
	}
	defer rows.Close()

	found := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return errors.Wrap(err, errors.CodeInvalidInput, "not a world file")
		}
		found[name] = true
	}
	if err := rows.Err(); err != nil {
		return errors.Wrap(err, errors.CodeInvalidInput, "not a world file")
	}

	for _, table := range requiredTables {
		if !found[table] {
			return errors.WithContext(
				errors.New(errors.CodeInvalidInput, "not a world file"),
				"missing_table", table,
			)
		}
	}
	return nil
}

// readOnlyDSN builds a SQLite URI that opens path read-only, with every
// connection pinned to query_only.
func readOnlyDSN(path string) string {
	escaped := strings.NewReplacer("%", "%25", "?", "%3f", "#", "%23").Replace(path)
	return "file:" + escaped + "?mode=ro&_pragma=query_only(1)"
}
