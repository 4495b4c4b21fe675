package ftp

import (
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// EntryKind classifies one directory entry for listing (spec.md §6.3).
type EntryKind int

const (
	EntryFile EntryKind = iota
	EntryDir
	EntryOther
)

// DirEntry is one entry returned by Filesystem.ReadDir.
type DirEntry struct {
	Name string
	Kind EntryKind
	Size int64
}

// Filesystem is the local filesystem contract from spec.md §6.3. The
// engine calls these methods both from the driver (under Client.mu) and
// from the caller's goroutine without that lock (UploadAsync's
// existence/size checks, AreFilesIdenticalAsync's local CRC32,
// WriteTmpFile), so those calls can overlap and implementations must be
// safe for concurrent use.
type Filesystem interface {
	Exists(path string) bool
	FileSize(path string) (int64, error)
	OpenRead(path string) (io.ReadCloser, error)
	Create(path string) (io.WriteCloser, error)
	Remove(path string) error
	Rename(oldPath, newPath string) error
	Mkdir(path string) error
	Canonical(path string) (string, error)
	ReadDir(path string) ([]DirEntry, error)
}

// OSFilesystem implements Filesystem on top of os and path/filepath.
type OSFilesystem struct{}

func (OSFilesystem) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (OSFilesystem) FileSize(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, errors.Wrapf(err, "stat %s", path)
	}
	return info.Size(), nil
}

func (OSFilesystem) OpenRead(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	return f, nil
}

func (OSFilesystem) Create(path string) (io.WriteCloser, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o666)
	if err != nil {
		return nil, errors.Wrapf(err, "create %s", path)
	}
	return f, nil
}

func (OSFilesystem) Remove(path string) error {
	return errors.Wrapf(os.Remove(path), "remove %s", path)
}

func (OSFilesystem) Rename(oldPath, newPath string) error {
	return errors.Wrapf(os.Rename(oldPath, newPath), "rename %s -> %s", oldPath, newPath)
}

func (OSFilesystem) Mkdir(path string) error {
	return errors.Wrapf(os.Mkdir(path, 0o777), "mkdir %s", path)
}

func (OSFilesystem) Canonical(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", errors.Wrapf(err, "canonicalize %s", path)
	}
	return filepath.Clean(abs), nil
}

func (OSFilesystem) ReadDir(path string) ([]DirEntry, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, errors.Wrapf(err, "readdir %s", path)
	}
	out := make([]DirEntry, 0, len(entries))
	for _, e := range entries {
		kind := EntryOther
		var size int64
		if e.Type().IsRegular() {
			kind = EntryFile
			if info, err := e.Info(); err == nil {
				size = info.Size()
			}
		} else if e.IsDir() {
			kind = EntryDir
		}
		out = append(out, DirEntry{Name: e.Name(), Kind: kind, Size: size})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// remotePathJoin joins a remote folder and a basename with a forward
// slash, the wire convention used throughout the FTP opcodes (paths are
// always posix-style on the wire regardless of host OS).
func remotePathJoin(folder, name string) string {
	folder = strings.TrimRight(folder, "/")
	if folder == "" {
		return "/" + name
	}
	return folder + "/" + name
}

// remoteBasename returns the final path component of a wire path,
// posix-style regardless of host OS.
func remoteBasename(path string) string {
	idx := strings.LastIndexByte(path, '/')
	if idx < 0 {
		return path
	}
	return path[idx+1:]
}
