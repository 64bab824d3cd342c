package storage

import "testing"

func TestInMemoryBackend_SharedStore(t *testing.T) {
	ClearAllInMemoryScores()
	defer ClearAllInMemoryScores()

	a := NewInMemoryBackend()
	b := NewInMemoryBackend()

	if best, improved, _ := a.Submit("snake", 40); best != 40 || !improved {
		t.Fatalf("Submit() = (%d, %v), want (40, true)", best, improved)
	}
	if best, improved, _ := b.Submit("snake", 20); best != 40 || improved {
		t.Errorf("Submit() lower = (%d, %v), want (40, false)", best, improved)
	}
	if v, ok, _ := b.Best("snake"); !ok || v != 40 {
		t.Errorf("Best() = (%d, %v), want (40, true)", v, ok)
	}

	all, _ := a.All()
	all["snake"] = Record{Value: 1}
	if v, _, _ := a.Best("snake"); v != 40 {
		t.Error("All() must return a copy")
	}
}
