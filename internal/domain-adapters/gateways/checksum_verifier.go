package gateways

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	igateways "github.com/ochairo/distcheck/internal/domain/interfaces/gateways"
)

// ChecksumVerifier verifies artifacts against their checksum sidecar
// files (<artifact>.<algorithm>).
type ChecksumVerifier struct {
	digester igateways.DigestEngine
}

// NewChecksumVerifier creates a new checksum verifier
func NewChecksumVerifier(digester igateways.DigestEngine) *ChecksumVerifier {
	return &ChecksumVerifier{digester: digester}
}

// Verify checks a file against its checksum sidecar for the given
// algorithm. On mismatch it returns exactly three ordered error lines:
// the mismatch notice, the calculated value, and the declared value.
// An empty slice means the checksums match. A non-nil error means the
// sidecar or the artifact could not be processed at all.
func (v *ChecksumVerifier) Verify(ctx context.Context, filePath, algorithm string) ([]string, error) {
	fileName := filepath.Base(filePath)
	checksumPath := filePath + "." + algorithm
	checksumName := filepath.Base(checksumPath)

	//nolint:gosec // G304: sidecar path derives from the scanned dist tree
	data, err := os.ReadFile(checksumPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read checksum file: %w", err)
	}

	declared := ExtractChecksum(string(data))

	calculated, err := v.digester.Digest(ctx, filePath, algorithm)
	if err != nil {
		return nil, err
	}

	if declared != calculated {
		return []string{
			fmt.Sprintf("Checksum does not match checksum file %s!", checksumName),
			fmt.Sprintf("Calculated %s checksum of %s was: %s", algorithm, fileName, calculated),
			fmt.Sprintf("Checksum file %s said it should have been: %s", checksumName, declared),
		}, nil
	}

	return nil, nil
}

// ExtractChecksum normalizes checksum sidecar text: the text is split
// on whitespace, tokens made up entirely of hexadecimal characters are
// kept, and the result is concatenated and lower-cased. This tolerates
// both the bare "checksum" and the "checksum  filename" formats; a
// sidecar without any hex token normalizes to "".
func ExtractChecksum(text string) string {
	var parts []string
	for _, token := range strings.Fields(text) {
		if isHex(token) {
			parts = append(parts, token)
		}
	}
	return strings.ToLower(strings.Join(parts, ""))
}

func isHex(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}
