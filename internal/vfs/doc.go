// Package vfs models the virtual directory tree stored inside a world file.
//
// A tree is made of three node kinds:
//   - Root: the single entry point, never a child of anything
//   - Folder: an interior node with named children
//   - File: a terminal node; its bytes live in storage, not in the node
//
// Navigation:
//   - Resolve walks a slash-delimited path using literal names, "." and ".."
//   - List renders a resolved node as a directory listing
//
// Folder and File nodes carry opaque metadata owned by the storage layer. This
// package never inspects it.
//
// Example Usage:
//
//	node, err := vfs.Resolve(root, "World/0")
//	if err != nil {
//	    fmt.Println("error:", err)
//	    return
//	}
//	fmt.Print(vfs.List(node, "World/0"))
package vfs
