// pkg/archive/builder.go
// Package archive provides an in-memory ZIP builder used as the per-deploy
// context of archive-oriented backends: entries are accumulated file by file
// and serialized once, at teardown, into a single compressed blob.
package archive

import (
	"archive/zip"
	"bytes"
	"fmt"
	"time"
)

// Entry is one named byte payload inside the archive.
type Entry struct {
	Name     string
	Data     []byte
	Modified time.Time
}

// Builder accumulates entries and serializes them with DEFLATE compression.
// A Builder is owned by exactly one in-flight deployment and is not safe for
// concurrent use.
type Builder struct {
	entries []Entry
	index   map[string]int
}

// NewBuilder returns an empty archive builder.
func NewBuilder() *Builder {
	return &Builder{index: make(map[string]int)}
}

// Add stores data under the given entry name. Adding an existing name
// replaces the previous payload.
func (b *Builder) Add(name string, data []byte) error {
	if name == "" {
		return fmt.Errorf("archive entry name must not be empty")
	}

	entry := Entry{Name: name, Data: data, Modified: time.Now()}
	if i, exists := b.index[name]; exists {
		b.entries[i] = entry
		return nil
	}
	b.index[name] = len(b.entries)
	b.entries = append(b.entries, entry)
	return nil
}

// Len returns the number of entries currently in the archive.
func (b *Builder) Len() int { return len(b.entries) }

// Names returns the entry names in insertion order.
func (b *Builder) Names() []string {
	names := make([]string, len(b.entries))
	for i, e := range b.entries {
		names[i] = e.Name
	}
	return names
}

// Bytes serializes the accumulated entries into a ZIP blob using DEFLATE
// compression, preserving insertion order.
func (b *Builder) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for _, entry := range b.entries {
		header := &zip.FileHeader{
			Name:     entry.Name,
			Method:   zip.Deflate,
			Modified: entry.Modified,
		}
		w, err := zw.CreateHeader(header)
		if err != nil {
			zw.Close()
			return nil, fmt.Errorf("create archive entry %q: %w", entry.Name, err)
		}
		if _, err := w.Write(entry.Data); err != nil {
			zw.Close()
			return nil, fmt.Errorf("write archive entry %q: %w", entry.Name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("finalize archive: %w", err)
	}
	return buf.Bytes(), nil
}
