package storage

import (
	"reflect"
	"testing"
)

func TestGetBackend(t *testing.T) {
	t.Run("unknown backend returns error", func(t *testing.T) {
		_, err := GetBackend("nonexistent", "")
		if err == nil {
			t.Fatal("expected error for unknown backend")
		}
	})

	t.Run("memory backend succeeds", func(t *testing.T) {
		defer ClearAllInMemoryScores()
		b, err := GetBackend("memory", "")
		if err != nil {
			t.Fatalf("GetBackend(memory) failed: %v", err)
		}
		_ = b.Close()
	})

	t.Run("fs backend succeeds", func(t *testing.T) {
		b, err := GetBackend("fs", t.TempDir())
		if err != nil {
			t.Fatalf("GetBackend(fs) failed: %v", err)
		}
		_ = b.Close()
	})

	if got := BackendNames(); !reflect.DeepEqual(got, []string{"fs", "memory"}) {
		t.Errorf("BackendNames() = %v", got)
	}
}
