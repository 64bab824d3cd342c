package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoll(t *testing.T) {
	calls := 0
	err := Poll(t.Context(), func() bool {
		calls++
		return calls >= 3
	}, 5*time.Second, time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestPoll_Timeout(t *testing.T) {
	err := Poll(t.Context(), func() bool { return false }, 20*time.Millisecond, 5*time.Millisecond)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timeout waiting for condition")
}

func TestPoll_ContextDone(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	err := Poll(ctx, func() bool { return false }, time.Minute, time.Millisecond)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSyncBuffer(t *testing.T) {
	var b SyncBuffer
	done := make(chan struct{})
	go func() {
		defer close(done)
		for range 100 {
			_, _ = b.Write([]byte("x"))
		}
	}()
	require.NoError(t, Poll(t.Context(), func() bool { return len(b.String()) == 100 }, 5*time.Second, time.Millisecond))
	<-done
	assert.True(t, b.Contains("xx"))
	assert.False(t, b.Contains("y"))
}

func TestNewSession(t *testing.T) {
	s := NewSession(t)
	assert.Equal(t, "user:~$ ", s.Prompt())
	assert.Equal(t, FixtureTime, s.Now())
	assert.Equal(t, "hello", s.SubmitLine("cat README.md").Text())
}
