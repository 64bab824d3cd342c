package vfs

import "strings"

// Path is an absolute location as a sequence of segments below the root.
// The empty Path is the root itself.
type Path []string

// ParsePath splits an absolute slash-separated string into a Path. Empty
// segments are dropped; "." and ".." are kept verbatim.
func ParsePath(s string) Path {
	return splitSegments(s)
}

// String renders p as "/a/b".
func (p Path) String() string {
	return "/" + strings.Join(p, "/")
}

// Clone returns a copy of p that shares no backing array with it.
func (p Path) Clone() Path {
	if p == nil {
		return nil
	}
	out := make(Path, len(p))
	copy(out, p)
	return out
}

// Equal reports whether p and q name the same location.
func (p Path) Equal(q Path) bool {
	if len(p) != len(q) {
		return false
	}
	for i := range p {
		if p[i] != q[i] {
			return false
		}
	}
	return true
}

// HasPrefix reports whether q is p or an ancestor of p.
func (p Path) HasPrefix(q Path) bool {
	return len(p) >= len(q) && p[:len(q)].Equal(q)
}

// Join returns p with the given segments appended.
func (p Path) Join(segs ...string) Path {
	out := make(Path, 0, len(p)+len(segs))
	out = append(out, p...)
	return append(out, segs...)
}

func splitSegments(s string) []string {
	var segs []string
	for _, seg := range strings.Split(s, "/") {
		if seg != "" {
			segs = append(segs, seg)
		}
	}
	return segs
}
