package testutil

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/joeycumines/linkterm/internal/builtin"
	"github.com/joeycumines/linkterm/internal/shell"
	"github.com/joeycumines/linkterm/internal/storage"
	"github.com/joeycumines/linkterm/internal/vfs"
)

// FixtureTime is the clock of every session built by NewSession.
var FixtureTime = time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)

// NewSession builds a deterministic session for user "user" in
// /home/user, which holds README.md and the directories projects and
// pictures. Snake ticks every millisecond, cat never animates, and scores
// go to a fresh in-memory backend.
func NewSession(t testing.TB) *shell.Session {
	t.Helper()
	storage.ClearAllInMemoryScores()
	t.Cleanup(storage.ClearAllInMemoryScores)

	dir := func(c map[string]*vfs.SnapshotNode) *vfs.SnapshotNode {
		return &vfs.SnapshotNode{Type: "directory", Contents: c}
	}
	fs, err := vfs.New(vfs.Snapshot{"home": dir(map[string]*vfs.SnapshotNode{
		"user": dir(map[string]*vfs.SnapshotNode{
			"README.md": {Type: "file", Content: "hello"},
			"projects":  dir(nil),
			"pictures":  dir(nil),
		}),
	})})
	require.NoError(t, err)

	off := false
	reg := shell.NewRegistry()
	require.NoError(t, builtin.Register(reg, builtin.Options{SnakeTick: time.Millisecond, CatAnimate: &off}))
	s, err := shell.New(shell.Options{
		FS:       fs,
		Registry: reg,
		User:     "user",
		Scores:   storage.NewInMemoryBackend(),
		Now:      func() time.Time { return FixtureTime },
		Rand:     rand.New(rand.NewPCG(1, 1)),
	})
	require.NoError(t, err)
	return s
}
