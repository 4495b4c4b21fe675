package ftp

import (
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// TmpFileStore implements the temp-file staging helper from spec.md
// §4.6: logical names map to paths under a per-engine scratch
// directory, so a caller can "upload" in-memory content without ever
// touching its own filesystem. It has its own mutex, independent of
// Client.mu, so WriteTmpFile can be called while an operation is in
// flight (spec.md §5).
type TmpFileStore struct {
	mu      sync.Mutex
	baseDir string
	names   map[string]string
}

func newTmpFileStore() *TmpFileStore {
	return &TmpFileStore{
		baseDir: "mavftp-tmp-" + uuid.NewString(),
		names:   make(map[string]string),
	}
}

// resolve returns the staged path for a previously written logical
// name, if any.
func (s *TmpFileStore) resolve(logicalName string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	path, ok := s.names[logicalName]
	return path, ok
}

// write validates logicalName, lazily creates the scratch directory on
// fs, writes content, and records the mapping.
func (s *TmpFileStore) write(fs Filesystem, logicalName string, content []byte) (string, error) {
	if strings.Contains(logicalName, "..") || strings.ContainsAny(logicalName, "/\\") {
		return "", errors.Errorf("invalid temp file name: %q", logicalName)
	}

	s.mu.Lock()
	if !fs.Exists(s.baseDir) {
		if err := fs.Mkdir(s.baseDir); err != nil {
			s.mu.Unlock()
			return "", errors.Wrap(err, "create temp directory")
		}
	}
	path := remotePathJoin(s.baseDir, logicalName)
	s.names[logicalName] = path
	s.mu.Unlock()

	w, err := fs.Create(path)
	if err != nil {
		return "", errors.Wrapf(err, "create %s", path)
	}
	defer w.Close()
	if _, err := w.Write(content); err != nil {
		return "", errors.Wrapf(err, "write %s", path)
	}
	return path, nil
}

// WriteTmpFile stages content under logicalName and returns the path it
// was written to. Subsequent calls passing logicalName as a remote path
// to any *_async operation transparently resolve to this path.
func (c *Client) WriteTmpFile(logicalName string, content []byte) (string, error) {
	return c.tmpStore.write(c.fs, logicalName, content)
}
