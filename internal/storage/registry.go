package storage

import (
	"fmt"
	"sort"
	"strings"
)

// BackendFactory creates a Backend. dir overrides the scores directory when
// non-empty.
type BackendFactory func(dir string) (Backend, error)

// BackendRegistry maps backend names to their factory functions.
var BackendRegistry = make(map[string]BackendFactory)

func init() {
	BackendRegistry["fs"] = func(dir string) (Backend, error) {
		return NewFileSystemBackend(dir)
	}
	BackendRegistry["memory"] = func(string) (Backend, error) {
		return NewInMemoryBackend(), nil
	}
}

// GetBackend retrieves a backend by name and creates an instance.
func GetBackend(name, dir string) (Backend, error) {
	factory, ok := BackendRegistry[name]
	if !ok {
		return nil, fmt.Errorf("unknown storage backend: %s (available: %s)", name, strings.Join(BackendNames(), ", "))
	}
	return factory(dir)
}

// BackendNames lists the registered backends, sorted.
func BackendNames() []string {
	names := make([]string, 0, len(BackendRegistry))
	for name := range BackendRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
