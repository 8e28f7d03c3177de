// Package loader reads configuration layers into plain maps.
//
// Each layer (TOML file, environment) yields a map[string]any keyed by
// section and setting. Layers are combined with DeepMerge and decoded
// into a typed struct with Decode.
package loader

import (
	"io/fs"
	"os"
)

// Loader produces one configuration layer. An absent source yields a
// nil map and no error.
type Loader interface {
	Load() (map[string]any, error)
}

// FileSystem is the file access a TOMLLoader needs.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
	Stat(path string) (fs.FileInfo, error)
}

// OSFS reads the real file system.
type OSFS struct{}

func (OSFS) ReadFile(path string) ([]byte, error)  { return os.ReadFile(path) }
func (OSFS) Stat(path string) (fs.FileInfo, error) { return os.Stat(path) }

// DefaultFS returns OSFS.
func DefaultFS() FileSystem { return OSFS{} }
