// Package gateways provides infrastructure adapters for the domain layer.
package gateways

import (
	"context"
	"crypto/md5"  //nolint:gosec // G501: legacy checksum support for pre-deadline artifacts
	"crypto/sha1" //nolint:gosec // G505: legacy checksum support for pre-deadline artifacts
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"os"

	"github.com/ochairo/distcheck/internal/domain/entities"
)

// chunkSize is the fixed read size used when streaming files.
const chunkSize = 4096

// DigestEngine computes file checksums using pure Go crypto.
// No external checksum binaries needed.
type DigestEngine struct{}

// NewDigestEngine creates a new digest engine
func NewDigestEngine() *DigestEngine {
	return &DigestEngine{}
}

// newHasher returns a hasher for a named algorithm.
func newHasher(algorithm string) (hash.Hash, error) {
	switch algorithm {
	case "md5":
		return md5.New(), nil //nolint:gosec // G401: weak checksum fallback
	case "sha1":
		return sha1.New(), nil //nolint:gosec // G401: weak checksum fallback
	case "sha256":
		return sha256.New(), nil
	case "sha512":
		return sha512.New(), nil
	default:
		return nil, fmt.Errorf("%w: %s", entities.ErrUnsupportedAlgorithm, algorithm)
	}
}

// Digest streams a file in fixed-size chunks and returns its lower-case
// hexadecimal digest for the named algorithm.
func (e *DigestEngine) Digest(_ context.Context, filePath, algorithm string) (string, error) {
	h, err := newHasher(algorithm)
	if err != nil {
		return "", err
	}

	//nolint:gosec // G304: file path comes from the scanned dist tree
	f, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	//nolint:errcheck // Defer close on read-only file
	defer f.Close()

	if _, err := io.CopyBuffer(h, f, make([]byte, chunkSize)); err != nil {
		return "", fmt.Errorf("failed to hash file: %w", err)
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}
