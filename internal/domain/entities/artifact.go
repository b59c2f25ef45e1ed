// Package entities defines core domain models and data structures.
package entities

import (
	"path/filepath"
	"strings"
	"time"
)

// Artifact represents a published release file subject to integrity checking.
// It is immutable for the duration of a scan pass.
type Artifact struct {
	Path    string // absolute path under the project's dist directory
	Name    string // base filename
	Size    int64
	ModTime time.Time
}

// NewArtifact builds an Artifact from a path and file metadata.
func NewArtifact(path string, size int64, modTime time.Time) Artifact {
	return Artifact{
		Path:    path,
		Name:    filepath.Base(path),
		Size:    size,
		ModTime: modTime,
	}
}

// Extension returns the text after the last dot of the filename, or ""
// if the filename contains no dot. Matched against the configured
// extension allow-list ("gz" for foo.tar.gz, "zip" for bar.zip).
func (a Artifact) Extension() string {
	if i := strings.LastIndex(a.Name, "."); i >= 0 {
		return a.Name[i+1:]
	}
	return ""
}

// Sidecar returns the path of an auxiliary file named by appending a
// suffix to the artifact's filename (checksum or signature sidecars).
func (a Artifact) Sidecar(suffix string) string {
	return a.Path + "." + suffix
}
