package snippet

import (
	"github.com/spf13/afero"
)

// Loader is the filesystem boundary of the engine
type Loader interface {
	Exists(path string) bool
	ReadText(path string) (string, error)
}

// FSLoader implements Loader on top of an afero filesystem
type FSLoader struct {
	fs afero.Fs
}

// NewFSLoader creates a loader reading from fs
func NewFSLoader(fs afero.Fs) *FSLoader {
	return &FSLoader{fs: fs}
}

// NewOSLoader creates a loader reading from the host filesystem
func NewOSLoader() *FSLoader {
	return NewFSLoader(afero.NewOsFs())
}

// Exists reports whether path names a regular, readable entry. Directories do not count.
func (l *FSLoader) Exists(path string) bool {
	info, err := l.fs.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// ReadText returns the file content as text
func (l *FSLoader) ReadText(path string) (string, error) {
	data, err := afero.ReadFile(l.fs, path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
