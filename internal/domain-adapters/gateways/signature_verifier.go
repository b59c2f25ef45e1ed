package gateways

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ochairo/distcheck/internal/domain/entities"
	igateways "github.com/ochairo/distcheck/internal/domain/interfaces/gateways"
)

// SignatureVerifier applies the detached-signature policy for one
// artifact: cryptographic verification through the project keychain,
// then trusted-fingerprint and expiry-at-signing-time checks.
type SignatureVerifier struct{}

// NewSignatureVerifier creates a new signature verifier
func NewSignatureVerifier() *SignatureVerifier {
	return &SignatureVerifier{}
}

// Verify checks the artifact's .asc sidecar with the project keychain
// and returns error lines for the project report. A missing sidecar
// skips signature checking entirely and yields no error; checksum
// coverage is the mandatory control, signatures are layered on top
// when present.
func (v *SignatureVerifier) Verify(_ context.Context, filePath string, keychain igateways.Keychain, known map[string]entities.KeyRecord) ([]string, error) {
	sigPath := filePath + ".asc"
	if _, err := os.Stat(sigPath); err != nil {
		return nil, nil
	}

	result, err := keychain.VerifyDetached(filePath, sigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to verify signature: %w", err)
	}
	if result.Valid {
		return nil, nil
	}

	fileName := filepath.Base(filePath)

	key, trusted := known[result.Fingerprint]
	switch {
	case !trusted:
		return []string{fmt.Sprintf(
			"The signature file %s was signed with a fingerprint not found in the project's KEYS file: %s",
			fileName, result.Fingerprint)}, nil
	case key.ExpiredAt(result.SigTimestamp):
		return []string{fmt.Sprintf(
			"Detached signature file %s.asc was signed by %s (%s) but the key has expired!",
			fileName, key.Owner(), result.Fingerprint)}, nil
	case result.Status != entities.StatusSignatureValid:
		return []string{fmt.Sprintf(
			"Detached signature file %s.asc could not be used to verify %s: %s",
			fileName, fileName, result.Status)}, nil
	}

	return nil, nil
}
