package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"
)

// FileService reads snapshots from a JSON or YAML feed file written by the
// game-side plugin. The format is picked by extension; anything other than
// .yaml or .yml is read as JSON.
type FileService struct {
	path string
}

// Compile-time check.
var _ Service = (*FileService)(nil)

// NewFileService returns a service reading path.
func NewFileService(path string) *FileService {
	return &FileService{path: path}
}

// Path returns the feed path.
func (f *FileService) Path() string { return f.path }

// Source implements Service.
func (f *FileService) Source() string { return filepath.Base(f.path) }

// Snapshot reads and decodes the feed.
func (f *FileService) Snapshot(ctx context.Context) (*Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("read feed: %w", err)
	}
	snap, err := Decode(data, formatOf(f.path))
	if err != nil {
		return nil, fmt.Errorf("decode feed %s: %w", f.Source(), err)
	}
	return snap, nil
}

// Format is a feed encoding.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

func formatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Decode parses a feed. Records without an ID are rejected, since the
// panel keys rows by it.
func Decode(data []byte, format Format) (*Snapshot, error) {
	snap := &Snapshot{}
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(snap); err != nil {
			return nil, err
		}
	default:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(snap); err != nil {
			return nil, err
		}
	}
	for i, r := range snap.Items {
		if r.ID == "" {
			return nil, fmt.Errorf("items[%d]: missing id", i)
		}
	}
	for i, r := range snap.History {
		if r.ID == "" {
			return nil, fmt.Errorf("history[%d]: missing id", i)
		}
	}
	return snap, nil
}
