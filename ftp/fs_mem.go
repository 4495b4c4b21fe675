package ftp

import (
	"bytes"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

// MemFilesystem is an in-memory Filesystem used by the engine's own
// tests so state-machine tests don't touch disk. Paths are plain string
// keys; directories created with Mkdir are kept in a set, and ReadDir
// also infers directories from the path prefixes of stored files.
type MemFilesystem struct {
	mu    sync.Mutex
	files map[string][]byte
	dirs  map[string]bool
}

// NewMemFilesystem creates an empty in-memory filesystem.
func NewMemFilesystem() *MemFilesystem {
	return &MemFilesystem{
		files: make(map[string][]byte),
		dirs:  map[string]bool{"/": true},
	}
}

// PutFile seeds path with content, for test setup.
func (m *MemFilesystem) PutFile(path string, content []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[path] = append([]byte(nil), content...)
}

// ReadFile returns the current content of path, for test assertions.
func (m *MemFilesystem) ReadFile(path string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.files[path]
	return b, ok
}

func (m *MemFilesystem) Exists(path string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, f := m.files[path]
	return f || m.dirs[path]
}

func (m *MemFilesystem) FileSize(path string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.files[path]
	if !ok {
		return 0, errors.Errorf("no such file: %s", path)
	}
	return int64(len(b)), nil
}

func (m *MemFilesystem) OpenRead(path string) (io.ReadCloser, error) {
	m.mu.Lock()
	b, ok := m.files[path]
	m.mu.Unlock()
	if !ok {
		return nil, errors.Errorf("no such file: %s", path)
	}
	return nopCloseReader{bytes.NewReader(b)}, nil
}

func (m *MemFilesystem) Create(path string) (io.WriteCloser, error) {
	return &memWriter{fs: m, path: path}, nil
}

func (m *MemFilesystem) Remove(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.files[path]; ok {
		delete(m.files, path)
		return nil
	}
	if m.dirs[path] {
		delete(m.dirs, path)
		return nil
	}
	return errors.Errorf("no such path: %s", path)
}

func (m *MemFilesystem) Rename(oldPath, newPath string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if b, ok := m.files[oldPath]; ok {
		m.files[newPath] = b
		delete(m.files, oldPath)
		return nil
	}
	if m.dirs[oldPath] {
		m.dirs[newPath] = true
		delete(m.dirs, oldPath)
		return nil
	}
	return errors.Errorf("no such path: %s", oldPath)
}

func (m *MemFilesystem) Mkdir(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.dirs[path] {
		return errors.Errorf("already exists: %s", path)
	}
	m.dirs[path] = true
	return nil
}

func (m *MemFilesystem) Canonical(path string) (string, error) {
	return path, nil
}

func (m *MemFilesystem) ReadDir(path string) ([]DirEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	prefix := strings.TrimRight(path, "/") + "/"
	seen := make(map[string]DirEntry)
	for name, b := range m.files {
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		rest := name[len(prefix):]
		if idx := strings.IndexByte(rest, '/'); idx >= 0 {
			dirName := rest[:idx]
			seen[dirName] = DirEntry{Name: dirName, Kind: EntryDir}
			continue
		}
		seen[rest] = DirEntry{Name: rest, Kind: EntryFile, Size: int64(len(b))}
	}
	for dirPath := range m.dirs {
		if dirPath == path || !strings.HasPrefix(dirPath, prefix) {
			continue
		}
		rest := dirPath[len(prefix):]
		if rest == "" {
			continue
		}
		if idx := strings.IndexByte(rest, '/'); idx >= 0 {
			rest = rest[:idx]
		}
		seen[rest] = DirEntry{Name: rest, Kind: EntryDir}
	}

	out := make([]DirEntry, 0, len(seen))
	for _, e := range seen {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type nopCloseReader struct {
	*bytes.Reader
}

func (nopCloseReader) Close() error { return nil }

type memWriter struct {
	fs   *MemFilesystem
	path string
	buf  bytes.Buffer
}

func (w *memWriter) Write(p []byte) (int, error) {
	return w.buf.Write(p)
}

func (w *memWriter) Close() error {
	w.fs.mu.Lock()
	defer w.fs.mu.Unlock()
	w.fs.files[w.path] = append([]byte(nil), w.buf.Bytes()...)
	return nil
}
