package vfs

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var home = Path{"home", "user"}

func newTestResolver(t *testing.T) *Resolver {
	t.Helper()
	r, err := NewResolver(newTestFS(t), home)
	require.NoError(t, err)
	return r
}

func TestResolveDir(t *testing.T) {
	projects := home.Join("projects")
	goDir := home.Join("projects", "go")

	tests := []struct {
		name  string
		cwd   Path
		token string
		want  Path
	}{
		{"empty is home", goDir, "", home},
		{"tilde is home", goDir, "~", home},
		{"dollar home", goDir, "$HOME", home},
		{"tilde slash", goDir, "~/", home},
		{"tilde subpath", home, "~/projects/go", goDir},
		{"tilde dot-dot clamps", home, "~/..", home},
		{"tilde dot-dot inside", home, "~/projects/go/..", projects},
		{"dot", projects, ".", projects},
		{"dot-dot", goDir, "..", projects},
		{"dot-dot at home", home, "..", home},
		{"relative", home, "projects", projects},
		{"relative nested", home, "projects/go", goDir},
		{"relative trailing slash", home, "projects/", projects},
		{"relative with dots", home, "./projects/../projects/./go", goDir},
		{"relative climbs then clamps", projects, "../../../..", home},
		{"absolute", home, "/home/user/projects/go", goDir},
		{"absolute home alias", goDir, "/home", home},
		{"absolute home", goDir, "/home/user", home},
		{"absolute normalises", home, "/home/user/projects/../projects", projects},
		{"foreign cwd clamps", Path{"etc"}, "projects", projects},
	}
	r := newTestResolver(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.ResolveDir(tt.cwd, tt.token)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveDir_Errors(t *testing.T) {
	tests := []struct {
		name    string
		cwd     Path
		token   string
		wantErr error
		wantMsg string
	}{
		{"missing", home, "missing", ErrNoSuchDirectory, "missing: No such file or directory"},
		{"missing nested", home, "projects/nope", ErrNoSuchDirectory, "projects/nope: No such file or directory"},
		{"file", home, "README.md", ErrNotADirectory, "README.md: Not a directory"},
		{"through file", home, "README.md/x", ErrNotADirectory, "README.md/x: Not a directory"},
		{"file then dot-dot", home, "README.md/..", ErrNotADirectory, "README.md/..: Not a directory"},
		{"tilde file", home, "~/README.md", ErrNotADirectory, "~/README.md: Not a directory"},
		{"root", home, "/", ErrRootInaccessible, "/: Permission denied (filesystem root not accessible)"},
		{"root slashes", home, "///", ErrRootInaccessible, "///: Permission denied (filesystem root not accessible)"},
		{"root via dot-dot", home, "/home/..", ErrRootInaccessible, "/home/..: Permission denied (filesystem root not accessible)"},
		{"outside home", home, "/etc", ErrNoSuchDirectory, "/etc: No such file or directory"},
		{"absolute missing", home, "/home/user/nope", ErrNoSuchDirectory, "/home/user/nope: No such file or directory"},
	}
	r := newTestResolver(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.ResolveDir(tt.cwd, tt.token)
			require.Error(t, err)
			assert.Nil(t, got)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			assert.Equal(t, tt.wantMsg, err.Error())

			var pe *PathError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, tt.token, pe.Path)
		})
	}
}

func TestResolveDir_NotADirectoryDistinctFromMissing(t *testing.T) {
	r := newTestResolver(t)

	_, err := r.ResolveDir(home, "README.md")
	assert.ErrorIs(t, err, ErrNotADirectory)
	assert.NotErrorIs(t, err, ErrNoSuchDirectory)

	_, err = r.ResolveDir(home, "README")
	assert.ErrorIs(t, err, ErrNoSuchDirectory)
	assert.NotErrorIs(t, err, ErrNotADirectory)
}

func TestResolve_FileLeaf(t *testing.T) {
	r := newTestResolver(t)

	p, id, err := r.Resolve(home.Join("projects"), "go/main.go")
	require.NoError(t, err)
	assert.Equal(t, home.Join("projects", "go", "main.go"), p)
	assert.Equal(t, "main.go", r.FS().Node(id).Name)

	_, id, err = r.Resolve(home, "nope.txt")
	assert.ErrorIs(t, err, ErrNoSuchDirectory)
	assert.Equal(t, NoNode, id)
}

// Every directory reachable from home, addressed absolutely, resolves back to
// itself.
func TestResolveDir_AbsoluteRoundTrip(t *testing.T) {
	r := newTestResolver(t)
	fs := r.FS()
	homeID, ok := fs.Lookup(home)
	require.True(t, ok)

	var checked int
	fs.Walk(homeID, func(id NodeID) bool {
		if !fs.Node(id).IsDir() {
			return true
		}
		want := fs.PathOf(id)
		got, err := r.ResolveDir(home.Join("projects", "go"), want.String())
		require.NoError(t, err, want.String())
		assert.Equal(t, want, got)
		checked++
		return true
	})
	assert.Equal(t, 3, checked)
}

func TestResolveDir_DotDotIdempotentAtHome(t *testing.T) {
	r := newTestResolver(t)
	cwd := home
	for range 5 {
		next, err := r.ResolveDir(cwd, "..")
		require.NoError(t, err)
		assert.Equal(t, home, next)
		cwd = next
	}
}

func TestResolveDir_DoesNotAliasInput(t *testing.T) {
	r := newTestResolver(t)
	cwd := home.Join("projects")
	got, err := r.ResolveDir(cwd, "go")
	require.NoError(t, err)
	got[0] = "mutated"
	assert.Equal(t, Path{"home", "user", "projects"}, cwd)
	assert.Equal(t, Path{"home", "user"}, r.Home())
}

func TestDisplay(t *testing.T) {
	r := newTestResolver(t)
	assert.Equal(t, "~", r.Display(home))
	assert.Equal(t, "~/projects/go", r.Display(home.Join("projects", "go")))
	assert.Equal(t, "/etc", r.Display(Path{"etc"}))
	assert.Equal(t, "/home/user/projects", home.Join("projects").String())
}

func TestNewResolver_InvalidHome(t *testing.T) {
	fs := newTestFS(t)
	_, err := NewResolver(fs, Path{"home", "nobody"})
	assert.Error(t, err)
	_, err = NewResolver(fs, Path{"home", "user", "README.md"})
	assert.Error(t, err)
}
