package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// Manager writes run outputs under a root directory and remembers what it wrote
type Manager struct {
	rootDir string
	written map[string]int64
	mu      sync.RWMutex
}

// NewManager creates a storage manager rooted at rootDir; "" means the working directory
func NewManager(rootDir string) (*Manager, error) {
	if rootDir == "" {
		rootDir = "."
	}
	if err := os.MkdirAll(rootDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create root directory: %w", err)
	}

	return &Manager{
		rootDir: rootDir,
		written: make(map[string]int64),
	}, nil
}

// Resolve returns path joined to the root unless it is already absolute
func (m *Manager) Resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(m.rootDir, path)
}

// Exists reports whether path exists under the root
func (m *Manager) Exists(path string) bool {
	_, err := os.Stat(m.Resolve(path))
	return err == nil
}

// WriteFile writes the output of write to path atomically: the data goes to a
// temporary file in the same directory which is renamed over path only after
// write succeeds. Parent directories are created as needed.
func (m *Manager) WriteFile(path string, write func(io.Writer) error) (string, error) {
	target := m.Resolve(path)
	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	out, err := os.CreateTemp(dir, "."+filepath.Base(target)+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("failed to create temporary file: %w", err)
	}
	tempFile := out.Name()

	counter := &countingWriter{w: out}
	err = write(counter)
	closeErr := out.Close()

	if err != nil {
		os.Remove(tempFile)
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}

	if closeErr != nil {
		os.Remove(tempFile)
		return "", fmt.Errorf("failed to close file: %w", closeErr)
	}

	if err := os.Chmod(tempFile, 0644); err != nil {
		os.Remove(tempFile)
		return "", fmt.Errorf("failed to set file mode: %w", err)
	}

	if err := os.Rename(tempFile, target); err != nil {
		os.Remove(tempFile)
		return "", fmt.Errorf("failed to rename temporary file: %w", err)
	}

	m.mu.Lock()
	m.written[target] = counter.n
	m.mu.Unlock()

	return target, nil
}

// Written returns the files written so far, sorted
func (m *Manager) Written() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	paths := make([]string, 0, len(m.written))
	for p := range m.written {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// BytesWritten returns the size of the last write to an absolute or resolved path
func (m *Manager) BytesWritten(path string) int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.written[m.Resolve(path)]
}

// WithExtension replaces the extension of path with ext (including the dot)
func WithExtension(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
