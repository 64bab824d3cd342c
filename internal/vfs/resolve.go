package vfs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoSuchDirectory indicates a path component does not exist.
	ErrNoSuchDirectory = errors.New("no such file or directory")
	// ErrNotADirectory indicates a path names a file where a directory is required.
	ErrNotADirectory = errors.New("not a directory")
	// ErrRootInaccessible is returned for the literal root path "/".
	ErrRootInaccessible = errors.New("filesystem root not accessible")
)

// PathError records the user-supplied token that failed to resolve.
type PathError struct {
	Path string
	Err  error
}

func (e *PathError) Error() string {
	return e.Path + ": " + Describe(e.Err)
}

func (e *PathError) Unwrap() error { return e.Err }

// Describe renders a resolver error the way a Unix shell reports it.
func Describe(err error) string {
	switch {
	case errors.Is(err, ErrNoSuchDirectory):
		return "No such file or directory"
	case errors.Is(err, ErrNotADirectory):
		return "Not a directory"
	case errors.Is(err, ErrRootInaccessible):
		return "Permission denied (filesystem root not accessible)"
	case err == nil:
		return ""
	default:
		return err.Error()
	}
}

// Resolver turns user path tokens into absolute paths. Navigation is confined
// to the home subtree: ".." never climbs above home, and absolute paths that
// name an ancestor of home collapse to home.
type Resolver struct {
	fs   *FS
	home Path
}

// NewResolver returns a Resolver rooted at home, which must be a directory.
func NewResolver(fs *FS, home Path) (*Resolver, error) {
	id, ok := fs.Lookup(home)
	if !ok {
		return nil, fmt.Errorf("home %s does not exist", home)
	}
	if !fs.Node(id).IsDir() {
		return nil, fmt.Errorf("home %s is not a directory", home)
	}
	return &Resolver{fs: fs, home: home.Clone()}, nil
}

// FS returns the filesystem the resolver walks.
func (r *Resolver) FS() *FS { return r.fs }

// Home returns a copy of the home path.
func (r *Resolver) Home() Path { return r.home.Clone() }

// Display renders p relative to home using "~", e.g. "~/projects".
func (r *Resolver) Display(p Path) string {
	if !p.HasPrefix(r.home) {
		return p.String()
	}
	if len(p) == len(r.home) {
		return "~"
	}
	return "~/" + strings.Join(p[len(r.home):], "/")
}

// ResolveDir applies the navigation rules to token relative to cwd and
// requires the result to be a directory.
func (r *Resolver) ResolveDir(cwd Path, token string) (Path, error) {
	p, id, err := r.resolve(cwd, token)
	if err != nil {
		return nil, &PathError{Path: token, Err: err}
	}
	if !r.fs.Node(id).IsDir() {
		return nil, &PathError{Path: token, Err: ErrNotADirectory}
	}
	return p, nil
}

// Resolve is like ResolveDir but the final component may be a file.
func (r *Resolver) Resolve(cwd Path, token string) (Path, NodeID, error) {
	p, id, err := r.resolve(cwd, token)
	if err != nil {
		return nil, NoNode, &PathError{Path: token, Err: err}
	}
	return p, id, nil
}

func (r *Resolver) resolve(cwd Path, token string) (Path, NodeID, error) {
	switch {
	case token == "" || token == "~" || token == "$HOME":
		return r.walk(r.home, nil)
	case token == ".":
		return r.walk(r.clamp(cwd), nil)
	case token == "..":
		return r.walk(r.clamp(cwd), []string{".."})
	case strings.HasPrefix(token, "~/"):
		return r.walk(r.home, splitSegments(token[2:]))
	case strings.HasPrefix(token, "/"):
		segs := splitSegments(token)
		if len(segs) == 0 {
			return nil, NoNode, ErrRootInaccessible
		}
		return r.walkAbsolute(segs)
	default:
		return r.walk(r.clamp(cwd), splitSegments(token))
	}
}

// clamp keeps a stale or foreign cwd inside the home subtree.
func (r *Resolver) clamp(cwd Path) Path {
	if cwd.HasPrefix(r.home) {
		return cwd
	}
	return r.home
}

// walk applies segs to base, which must be within home.
func (r *Resolver) walk(base Path, segs []string) (Path, NodeID, error) {
	cur := base.Clone()
	id, ok := r.fs.Lookup(cur)
	if !ok {
		return nil, NoNode, ErrNoSuchDirectory
	}
	for _, seg := range segs {
		if !r.fs.Node(id).IsDir() {
			return nil, NoNode, ErrNotADirectory
		}
		switch seg {
		case ".":
			continue
		case "..":
			if len(cur) > len(r.home) {
				cur = cur[:len(cur)-1]
				id, _ = r.fs.Lookup(cur)
			}
			continue
		}
		next, ok := r.fs.Child(id, seg)
		if !ok {
			return nil, NoNode, ErrNoSuchDirectory
		}
		cur = append(cur, seg)
		id = next
	}
	return cur, id, nil
}

// walkAbsolute normalises an absolute path. Paths that are ancestors of home
// collapse to home; anything outside the home subtree does not exist.
func (r *Resolver) walkAbsolute(segs []string) (Path, NodeID, error) {
	var norm Path
	for _, seg := range segs {
		switch seg {
		case ".":
		case "..":
			if len(norm) > 0 {
				norm = norm[:len(norm)-1]
			}
		default:
			norm = append(norm, seg)
		}
	}
	if len(norm) == 0 {
		return nil, NoNode, ErrRootInaccessible
	}
	if r.home.HasPrefix(norm) {
		return r.walk(r.home, nil)
	}
	if !norm.HasPrefix(r.home) {
		return nil, NoNode, ErrNoSuchDirectory
	}
	return r.walk(r.home, norm[len(r.home):])
}
