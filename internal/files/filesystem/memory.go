package filesystem

import (
	"bytes"
	"io"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"
)

// memoryFileInfo implements fs.FileInfo for in-memory files
type memoryFileInfo struct {
	name    string
	size    int64
	mode    fs.FileMode
	modTime time.Time
	isDir   bool
}

func (f *memoryFileInfo) Name() string       { return f.name }
func (f *memoryFileInfo) Size() int64        { return f.size }
func (f *memoryFileInfo) Mode() fs.FileMode  { return f.mode }
func (f *memoryFileInfo) ModTime() time.Time { return f.modTime }
func (f *memoryFileInfo) IsDir() bool        { return f.isDir }
func (f *memoryFileInfo) Sys() interface{}   { return nil }

// MemoryFileSystem implements FileSystemProvider for tests.
// Paths use forward slashes regardless of platform.
type MemoryFileSystem struct {
	files map[string][]byte
	dirs  map[string]bool
	now   time.Time
}

// NewMemoryFileSystem creates an empty in-memory filesystem.
func NewMemoryFileSystem() *MemoryFileSystem {
	return &MemoryFileSystem{
		files: make(map[string][]byte),
		dirs:  make(map[string]bool),
		now:   time.Now(),
	}
}

// AddFile adds a file and creates its parent directories.
func (m *MemoryFileSystem) AddFile(p string, content []byte) {
	p = path.Clean(p)
	m.files[p] = content

	for dir := path.Dir(p); dir != "." && dir != "/"; dir = path.Dir(dir) {
		m.dirs[dir] = true
	}
}

// AddDir adds an empty directory.
func (m *MemoryFileSystem) AddDir(p string) {
	m.dirs[path.Clean(p)] = true
}

func (m *MemoryFileSystem) Open(p string) (io.ReadCloser, error) {
	content, ok := m.files[path.Clean(p)]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: p, Err: fs.ErrNotExist}
	}
	return io.NopCloser(bytes.NewReader(content)), nil
}

func (m *MemoryFileSystem) ReadFile(p string) ([]byte, error) {
	content, ok := m.files[path.Clean(p)]
	if !ok {
		return nil, &fs.PathError{Op: "read", Path: p, Err: fs.ErrNotExist}
	}
	return content, nil
}

func (m *MemoryFileSystem) ReadDir(p string) ([]FileInfo, error) {
	p = path.Clean(p)
	if !m.dirs[p] {
		return nil, &fs.PathError{Op: "readdir", Path: p, Err: fs.ErrNotExist}
	}

	var infos []FileInfo
	for fp, content := range m.files {
		if path.Dir(fp) == p {
			infos = append(infos, &memoryFileInfo{
				name:    path.Base(fp),
				size:    int64(len(content)),
				mode:    0644,
				modTime: m.now,
			})
		}
	}
	for dp := range m.dirs {
		if path.Dir(dp) == p {
			infos = append(infos, &memoryFileInfo{
				name:    path.Base(dp),
				mode:    0755 | fs.ModeDir,
				modTime: m.now,
				isDir:   true,
			})
		}
	}

	sort.Slice(infos, func(i, j int) bool { return infos[i].Name() < infos[j].Name() })
	return infos, nil
}

func (m *MemoryFileSystem) Stat(p string) (FileInfo, error) {
	p = path.Clean(p)
	if content, ok := m.files[p]; ok {
		return &memoryFileInfo{
			name:    path.Base(p),
			size:    int64(len(content)),
			mode:    0644,
			modTime: m.now,
		}, nil
	}
	if m.dirs[p] {
		return &memoryFileInfo{
			name:    path.Base(p),
			mode:    0755 | fs.ModeDir,
			modTime: m.now,
			isDir:   true,
		}, nil
	}
	return nil, &fs.PathError{Op: "stat", Path: p, Err: fs.ErrNotExist}
}

// HasPrefixDir reports whether any entry lives under the given directory.
// Used by tests asserting scan behavior on nested trees.
func (m *MemoryFileSystem) HasPrefixDir(p string) bool {
	p = path.Clean(p) + "/"
	for fp := range m.files {
		if strings.HasPrefix(fp, p) {
			return true
		}
	}
	return false
}

// Verify MemoryFileSystem implements the interface at compile time
var _ FileSystemProvider = (*MemoryFileSystem)(nil)
