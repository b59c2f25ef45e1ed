package gateways

import (
	"context"

	"github.com/ochairo/distcheck/internal/domain/entities"
)

// DigestEngine computes file digests for a named algorithm.
type DigestEngine interface {
	// Digest streams the file and returns its lower-case hex digest.
	Digest(ctx context.Context, filePath, algorithm string) (string, error)
}

// ChecksumVerifier checks an artifact against its checksum sidecar file.
type ChecksumVerifier interface {
	// Verify compares the artifact's computed digest against the
	// sidecar-declared one and returns the ordered error lines, or an
	// empty slice when they match. The sidecar must exist; callers
	// check existence first and decide whether absence is an error.
	Verify(ctx context.Context, filePath, algorithm string) ([]string, error)
}

// Keychain is the per-project trust store capability. It is built in
// full before any signature verification for the project begins, and
// discarded at the end of the pass.
type Keychain interface {
	// ImportKeys adds armored or binary public key material to the
	// trust store. Importing the same material twice is idempotent.
	// Returns the number of keys newly added.
	ImportKeys(material []byte) (int, error)

	// Records maps fingerprint to the derived key record.
	Records() map[string]entities.KeyRecord

	// VerifyDetached verifies a detached signature over a data file.
	// A non-nil error means the files could not be read; cryptographic
	// outcomes are reported through the result.
	VerifyDetached(dataPath, sigPath string) (entities.SignatureResult, error)

	// Size returns the number of keys in the trust store.
	Size() int
}

// Notifier consumes a project's verification report. The report is
// guaranteed non-empty when a notifier is invoked.
type Notifier interface {
	Notify(ctx context.Context, project string, report *entities.Report) error
}
