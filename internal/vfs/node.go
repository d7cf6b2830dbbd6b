package vfs

import "sort"

// Kind identifies which variant a Node is.
type Kind uint8

const (
	KindRoot Kind = iota
	KindFolder
	KindFile
)

func (k Kind) String() string {
	switch k {
	case KindRoot:
		return "root"
	case KindFolder:
		return "folder"
	case KindFile:
		return "file"
	default:
		return "unknown"
	}
}

// Node is one entry of the virtual tree. The zero value is not usable; build
// nodes with NewRoot, NewFolder and NewFile.
type Node struct {
	kind     Kind
	meta     any
	children map[string]*Node
}

// NewRoot creates the root of a tree
func NewRoot(children map[string]*Node) *Node {
	return &Node{kind: KindRoot, children: ensureChildren(children)}
}

// NewFolder creates an interior node
func NewFolder(meta any, children map[string]*Node) *Node {
	return &Node{kind: KindFolder, meta: meta, children: ensureChildren(children)}
}

// NewFile creates a terminal node
func NewFile(meta any) *Node {
	return &Node{kind: KindFile, meta: meta}
}

func ensureChildren(children map[string]*Node) map[string]*Node {
	if children == nil {
		return make(map[string]*Node)
	}
	return children
}

// Kind returns the node variant
func (n *Node) Kind() Kind {
	return n.kind
}

// Meta returns the storage-owned metadata. Root nodes have none.
func (n *Node) Meta() any {
	return n.meta
}

// IsDir reports whether the node can hold children.
func (n *Node) IsDir() bool {
	return n.kind == KindRoot || n.kind == KindFolder
}

// Child looks up a direct child by name. Files never have children.
func (n *Node) Child(name string) (*Node, bool) {
	if !n.IsDir() {
		return nil, false
	}
	child, ok := n.children[name]
	return child, ok
}

// Names returns the direct child names in lexicographic order.
func (n *Node) Names() []string {
	names := make([]string, 0, len(n.children))
	for name := range n.children {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Attach adds child under name, replacing any previous entry with that name.
// It is meant for tree construction by the storage layer and panics when
// called on a File.
func (n *Node) Attach(name string, child *Node) {
	if !n.IsDir() {
		panic("vfs: attach to file node")
	}
	n.children[name] = child
}
