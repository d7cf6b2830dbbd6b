// Package storage reads world files.
//
// A world file is a SQLite database with three tables:
//   - blobs: content-addressed payloads, optionally zstd compressed
//   - folders: the directory hierarchy, rooted at rows with a NULL parent
//   - files: named entries pointing at a blob
//
// World exposes the live (non-deleted) hierarchy as a vfs tree and reads file
// contents by path. Every blob is size checked and, unless disabled, its
// BLAKE3 digest is verified before the bytes are handed out.
//
// Example Usage:
//
//	world, err := storage.Open(ctx, "my.brdb", storage.Options{VerifyHashes: true})
//	if err != nil {
//	    return err
//	}
//	defer world.Close()
//
//	root, err := world.Tree(ctx)
//	data, err := world.ReadFile("World/0/GlobalData.mps")
//
// The database is opened read-only. Nothing in this package writes to it.
package storage
