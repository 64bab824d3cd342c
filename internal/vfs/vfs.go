// Package vfs implements the read-only virtual filesystem that backs the
// terminal: an arena of directory and file nodes built once from a snapshot,
// plus the path resolution rules used by navigation commands.
//
// The FS owns every node. Callers hold NodeID values (indices into the
// arena) and never receive pointers into it, so an FS may be shared by any
// number of sessions without synchronisation.
package vfs

import (
	"fmt"
	"sort"
	"strings"
)

// Kind distinguishes directories from files.
type Kind uint8

const (
	KindDirectory Kind = iota + 1
	KindFile
)

func (k Kind) String() string {
	switch k {
	case KindDirectory:
		return "directory"
	case KindFile:
		return "file"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// NodeID indexes a node within an FS.
type NodeID int32

const (
	// RootID is the implicit root directory.
	RootID NodeID = 0
	// NoNode is returned where no node applies.
	NoNode NodeID = -1
)

const (
	defaultModified = "Jan 1 00:00"
	defaultDirSize  = 4096
)

type node struct {
	name     string
	kind     Kind
	parent   NodeID
	children map[string]NodeID
	content  string
	size     int64
	modified string
}

// Node is a read-only view of a single entry.
type Node struct {
	ID       NodeID
	Name     string
	Kind     Kind
	Size     int64
	Modified string
	Content  string
}

// IsDir reports whether the node is a directory.
func (n Node) IsDir() bool { return n.Kind == KindDirectory }

// FS is an immutable tree of nodes.
type FS struct {
	nodes []node
}

// New builds an FS from a snapshot. Sibling names are unique by
// construction (they are map keys); names containing "/" or equal to "." or
// ".." are rejected.
func New(snapshot Snapshot) (*FS, error) {
	fs := &FS{nodes: []node{{
		kind:     KindDirectory,
		parent:   NoNode,
		children: make(map[string]NodeID, len(snapshot)),
		size:     defaultDirSize,
		modified: defaultModified,
	}}}
	if err := fs.add(RootID, snapshot, ""); err != nil {
		return nil, err
	}
	return fs, nil
}

func (f *FS) add(parent NodeID, entries map[string]*SnapshotNode, where string) error {
	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		entry := entries[name]
		full := where + "/" + name
		if name == "" || name == "." || name == ".." || strings.Contains(name, "/") {
			return fmt.Errorf("invalid entry name %q under %q", name, where+"/")
		}
		if entry == nil {
			return fmt.Errorf("entry %s: missing definition", full)
		}

		n := node{
			name:     name,
			parent:   parent,
			modified: entry.Modified,
			size:     entry.Size,
		}
		if n.modified == "" {
			n.modified = defaultModified
		}

		switch strings.ToLower(entry.Type) {
		case "directory", "dir":
			n.kind = KindDirectory
			n.children = make(map[string]NodeID, len(entry.Contents))
			if n.size == 0 {
				n.size = defaultDirSize
			}
		case "file":
			if len(entry.Contents) > 0 {
				return fmt.Errorf("entry %s: file cannot have contents", full)
			}
			n.kind = KindFile
			n.content = entry.Content
			if n.size == 0 {
				n.size = int64(len(entry.Content))
			}
		default:
			return fmt.Errorf("entry %s: unknown type %q", full, entry.Type)
		}

		id := NodeID(len(f.nodes))
		f.nodes = append(f.nodes, n)
		f.nodes[parent].children[name] = id

		if n.kind == KindDirectory {
			if err := f.add(id, entry.Contents, full); err != nil {
				return err
			}
		}
	}
	return nil
}

// Len returns the number of nodes, including the root.
func (f *FS) Len() int { return len(f.nodes) }

// Node returns a view of id. It panics if id is out of range.
func (f *FS) Node(id NodeID) Node {
	n := &f.nodes[id]
	return Node{
		ID:       id,
		Name:     n.name,
		Kind:     n.kind,
		Size:     n.size,
		Modified: n.modified,
		Content:  n.content,
	}
}

// Child looks up name directly beneath dir.
func (f *FS) Child(dir NodeID, name string) (NodeID, bool) {
	id, ok := f.nodes[dir].children[name]
	return id, ok
}

// Children returns the entries of dir ordered by name (byte-wise).
// A file has no children.
func (f *FS) Children(dir NodeID) []NodeID {
	children := f.nodes[dir].children
	if len(children) == 0 {
		return nil
	}
	names := make([]string, 0, len(children))
	for name := range children {
		names = append(names, name)
	}
	sort.Strings(names)
	ids := make([]NodeID, len(names))
	for i, name := range names {
		ids[i] = children[name]
	}
	return ids
}

// Lookup walks p from the root. It does not interpret "." or "..".
func (f *FS) Lookup(p Path) (NodeID, bool) {
	id := RootID
	for _, seg := range p {
		if f.nodes[id].kind != KindDirectory {
			return NoNode, false
		}
		next, ok := f.nodes[id].children[seg]
		if !ok {
			return NoNode, false
		}
		id = next
	}
	return id, true
}

// PathOf returns the absolute path of id.
func (f *FS) PathOf(id NodeID) Path {
	var depth int
	for cur := id; cur != RootID; cur = f.nodes[cur].parent {
		depth++
	}
	p := make(Path, depth)
	for cur := id; cur != RootID; cur = f.nodes[cur].parent {
		depth--
		p[depth] = f.nodes[cur].name
	}
	return p
}

// Walk visits every node beneath (and including) start in depth-first,
// name order. Returning false from fn skips the node's subtree.
func (f *FS) Walk(start NodeID, fn func(id NodeID) bool) {
	if !fn(start) {
		return
	}
	for _, child := range f.Children(start) {
		f.Walk(child, fn)
	}
}
