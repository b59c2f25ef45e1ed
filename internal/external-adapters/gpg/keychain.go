// Package gpg provides the per-project OpenPGP trust store.
package gpg

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/ProtonMail/go-crypto/openpgp"
	"github.com/ProtonMail/go-crypto/openpgp/armor"
	pgperrors "github.com/ProtonMail/go-crypto/openpgp/errors"
	"github.com/ProtonMail/go-crypto/openpgp/packet"

	"github.com/ochairo/distcheck/internal/domain/entities"
)

// ringFile is the armored keyring persisted inside the trust-store dir.
const ringFile = "pubring.asc"

var armorPrefix = []byte("-----BEGIN PGP")

// Keychain holds the public keys a project has published as
// authoritative. It is rebuilt fresh for every scan pass; the on-disk
// trust store under dir is only a persisted artifact of the import.
// Uses ProtonMail's go-crypto, a maintained fork of golang.org/x/crypto/openpgp.
type Keychain struct {
	dir  string
	ring openpgp.EntityList
	seen map[string]struct{} // primary key fingerprints already imported
}

// NewKeychain creates a keychain backed by the given trust-store
// directory, creating the directory if absent.
func NewKeychain(dir string) (*Keychain, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create trust store directory: %w", err)
	}
	return &Keychain{
		dir:  dir,
		seen: make(map[string]struct{}),
	}, nil
}

// Dir returns the trust-store directory.
func (k *Keychain) Dir() string {
	return k.dir
}

// Size returns the number of keys in the trust store.
func (k *Keychain) Size() int {
	return len(k.ring)
}

// ImportKeys adds public key material to the trust store. Both armored
// and binary keyrings are accepted; armored input may contain several
// concatenated key blocks with prose between them, as project KEYS
// files commonly do. Re-importing identical material is idempotent:
// keys are deduplicated by primary fingerprint. Returns the number of
// keys newly added.
func (k *Keychain) ImportKeys(material []byte) (int, error) {
	var lists []openpgp.EntityList

	if bytes.Contains(material, armorPrefix) {
		r := bytes.NewReader(material)
		for {
			block, err := armor.Decode(r)
			if err != nil {
				if errors.Is(err, io.EOF) && len(lists) > 0 {
					break
				}
				return 0, fmt.Errorf("failed to decode armored key material: %w", err)
			}
			el, err := openpgp.ReadKeyRing(block.Body)
			if err != nil {
				return 0, fmt.Errorf("failed to read key material: %w", err)
			}
			lists = append(lists, el)
		}
	} else {
		el, err := openpgp.ReadKeyRing(bytes.NewReader(material))
		if err != nil {
			return 0, fmt.Errorf("failed to read key material: %w", err)
		}
		lists = append(lists, el)
	}

	imported := 0
	for _, el := range lists {
		for _, e := range el {
			fp := fmt.Sprintf("%X", e.PrimaryKey.Fingerprint)
			if _, ok := k.seen[fp]; ok {
				continue
			}
			k.seen[fp] = struct{}{}
			k.ring = append(k.ring, e)
			imported++
		}
	}
	return imported, nil
}

// Records derives the fingerprint lookup map from the trust store.
// The expiry epoch comes from the primary self-signature's key
// lifetime; keys without a lifetime never expire (Expires == 0).
func (k *Keychain) Records() map[string]entities.KeyRecord {
	records := make(map[string]entities.KeyRecord, len(k.ring))
	for _, e := range k.ring {
		rec := entities.KeyRecord{
			Fingerprint: fmt.Sprintf("%X", e.PrimaryKey.Fingerprint),
		}

		primary := e.PrimaryIdentity()
		if primary != nil {
			rec.Identities = append(rec.Identities, primary.Name)
		}
		var rest []string
		for name := range e.Identities {
			if primary != nil && name == primary.Name {
				continue
			}
			rest = append(rest, name)
		}
		sort.Strings(rest)
		rec.Identities = append(rec.Identities, rest...)

		if primary != nil && primary.SelfSignature != nil &&
			primary.SelfSignature.KeyLifetimeSecs != nil && *primary.SelfSignature.KeyLifetimeSecs > 0 {
			rec.Expires = e.PrimaryKey.CreationTime.Unix() + int64(*primary.SelfSignature.KeyLifetimeSecs)
		}

		records[rec.Fingerprint] = rec
	}
	return records
}

// VerifyDetached verifies a detached signature over a data file. A
// non-nil error means the files could not be read; cryptographic
// outcomes, including failures, are reported through the result. The
// signing fingerprint and signing timestamp are taken from the
// signature packet itself so they are available even when the
// verification fails.
func (k *Keychain) VerifyDetached(dataPath, sigPath string) (entities.SignatureResult, error) {
	var result entities.SignatureResult

	//nolint:gosec // G304: sidecar path derives from the scanned dist tree
	sigData, err := os.ReadFile(sigPath)
	if err != nil {
		return result, fmt.Errorf("failed to read signature file: %w", err)
	}
	result.Fingerprint, result.SigTimestamp = signatureMetadata(sigData)

	//nolint:gosec // G304: file path derives from the scanned dist tree
	data, err := os.Open(dataPath)
	if err != nil {
		return result, fmt.Errorf("failed to open data file: %w", err)
	}
	//nolint:errcheck // Defer close on read-only file
	defer data.Close()

	var signer *openpgp.Entity
	var verifyErr error
	if bytes.HasPrefix(sigData, armorPrefix) {
		signer, verifyErr = openpgp.CheckArmoredDetachedSignature(k.ring, data, bytes.NewReader(sigData), nil)
	} else {
		signer, verifyErr = openpgp.CheckDetachedSignature(k.ring, data, bytes.NewReader(sigData), nil)
	}

	if verifyErr == nil {
		result.Valid = true
		result.Status = entities.StatusSignatureValid
		if signer != nil {
			result.Fingerprint = fmt.Sprintf("%X", signer.PrimaryKey.Fingerprint)
		}
		return result, nil
	}

	result.Status = verifyStatus(verifyErr)
	return result, nil
}

// Save persists the trust store as an armored keyring file inside the
// trust-store directory.
func (k *Keychain) Save() error {
	path := filepath.Join(k.dir, ringFile)
	f, err := os.Create(path) //nolint:gosec // G304: path inside our own trust store
	if err != nil {
		return fmt.Errorf("failed to create keyring file: %w", err)
	}

	w, err := armor.Encode(f, openpgp.PublicKeyType, nil)
	if err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to create armor encoder: %w", err)
	}
	for _, e := range k.ring {
		if err := e.Serialize(w); err != nil {
			_ = w.Close()
			_ = f.Close()
			return fmt.Errorf("failed to serialize key: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to finish armor block: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close keyring file: %w", err)
	}
	return nil
}

// verifyStatus maps a verification error to a human-readable status.
func verifyStatus(err error) string {
	switch {
	case errors.Is(err, pgperrors.ErrUnknownIssuer):
		return "no public key"
	case errors.Is(err, pgperrors.ErrKeyRevoked):
		return "revoked key"
	default:
		return err.Error()
	}
}

// signatureMetadata extracts the issuer fingerprint and the claimed
// signing time from the first signature packet in sigData. Both are
// zero-valued when the packet cannot be parsed or carries no issuer
// fingerprint (v3 signatures).
func signatureMetadata(sigData []byte) (string, int64) {
	var r io.Reader = bytes.NewReader(sigData)
	if bytes.HasPrefix(sigData, armorPrefix) {
		block, err := armor.Decode(r)
		if err != nil {
			return "", 0
		}
		r = block.Body
	}

	reader := packet.NewReader(r)
	for {
		p, err := reader.Next()
		if err != nil {
			return "", 0
		}
		if sig, ok := p.(*packet.Signature); ok {
			fp := ""
			if len(sig.IssuerFingerprint) > 0 {
				fp = fmt.Sprintf("%X", sig.IssuerFingerprint)
			}
			return fp, sig.CreationTime.Unix()
		}
	}
}
