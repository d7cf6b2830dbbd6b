package vfs

import "strings"

// List renders node as a directory listing: one child name per line, sorted,
// every line newline-terminated. A file lists as the path that reached it.
func List(node *Node, path string) string {
	switch node.kind {
	case KindRoot, KindFolder:
		var buf strings.Builder
		for _, name := range node.Names() {
			buf.WriteString(name)
			buf.WriteByte('\n')
		}
		return buf.String()
	case KindFile:
		return path
	default:
		return ""
	}
}

// TrimListPath strips every leading and trailing slash. An empty result means
// the root itself.
func TrimListPath(path string) string {
	return strings.Trim(path, "/")
}

// ListPath resolves path against root and lists the result. An empty path
// (after trimming slashes) lists the root without resolving.
func ListPath(root *Node, path string) (string, error) {
	trimmed := TrimListPath(path)
	if trimmed == "" {
		return List(root, trimmed), nil
	}

	node, err := Resolve(root, trimmed)
	if err != nil {
		return "", err
	}
	return List(node, trimmed), nil
}
