package vfs

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// SnapshotNode is the serialised form of one filesystem entry.
type SnapshotNode struct {
	Type     string                   `json:"type" yaml:"type" toml:"type"`
	Modified string                   `json:"modified,omitempty" yaml:"modified,omitempty" toml:"modified,omitempty"`
	Size     int64                    `json:"size,omitempty" yaml:"size,omitempty" toml:"size,omitempty"`
	Content  string                   `json:"content,omitempty" yaml:"content,omitempty" toml:"content,omitempty"`
	Contents map[string]*SnapshotNode `json:"contents,omitempty" yaml:"contents,omitempty" toml:"contents,omitempty"`
}

// Snapshot maps top-level names (children of the root) to their entries.
type Snapshot map[string]*SnapshotNode

// Format selects a snapshot encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFromPath picks a Format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("unsupported snapshot extension %q", filepath.Ext(path))
	}
}

// Decode reads a snapshot in the given format.
func Decode(r io.Reader, format Format) (Snapshot, error) {
	var snap Snapshot
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&snap); err != nil {
			return nil, fmt.Errorf("failed to decode json snapshot: %w", err)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&snap); err != nil && err != io.EOF {
			return nil, fmt.Errorf("failed to decode yaml snapshot: %w", err)
		}
	case FormatTOML:
		md, err := toml.NewDecoder(r).Decode(&snap)
		if err != nil {
			return nil, fmt.Errorf("failed to decode toml snapshot: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("failed to decode toml snapshot: unknown key %s", undecoded[0])
		}
	default:
		return nil, fmt.Errorf("unsupported snapshot format %q", format)
	}
	return snap, nil
}

// LoadFile reads and builds a snapshot file, choosing the decoder by extension.
func LoadFile(path string) (*FS, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot: %w", err)
	}
	defer f.Close()

	snap, err := Decode(f, format)
	if err != nil {
		return nil, err
	}
	return New(snap)
}

//go:embed default_snapshot.json
var defaultSnapshot []byte

// Default returns the embedded filesystem used when no snapshot is configured.
func Default() (*FS, error) {
	snap, err := Decode(bytes.NewReader(defaultSnapshot), FormatJSON)
	if err != nil {
		return nil, err
	}
	return New(snap)
}

// HomeUser guesses the home directory owner: the sole directory under
// /home, or "" when there is not exactly one.
func HomeUser(fs *FS) string {
	homeID, ok := fs.Lookup(Path{"home"})
	if !ok || !fs.Node(homeID).IsDir() {
		return ""
	}
	var user string
	for _, id := range fs.Children(homeID) {
		n := fs.Node(id)
		if !n.IsDir() {
			continue
		}
		if user != "" {
			return ""
		}
		user = n.Name
	}
	return user
}
