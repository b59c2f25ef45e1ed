package gateways

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ochairo/distcheck/internal/domain/entities"
	"github.com/ochairo/distcheck/internal/domain/interfaces"
)

const (
	aliceFingerprint = "D855A73D59BC7BFDBDC713511A7EC746A6E8DA4A"
	bobFingerprint   = "D47B11ED53317B6497C0D9BFB1362F79B1E0887E"
)

// newDistTree creates dist/<project>/ with the testdata KEYS file at
// the root and a nested KEYS.txt duplicate, returning dist and
// keychain roots.
func newDistTree(t *testing.T, project string) (string, string) {
	t.Helper()
	base := t.TempDir()
	distDir := filepath.Join(base, "dist")
	keychainDir := filepath.Join(base, "keychains")

	projectDir := filepath.Join(distDir, project)
	nestedDir := filepath.Join(projectDir, "release-1.0")
	if err := os.MkdirAll(nestedDir, 0755); err != nil {
		t.Fatalf("Failed to create dist tree: %v", err)
	}

	keys, err := os.ReadFile(filepath.Join("testdata", "KEYS"))
	if err != nil {
		t.Fatalf("Failed to read KEYS fixture: %v", err)
	}
	if err := os.WriteFile(filepath.Join(projectDir, "KEYS"), keys, 0600); err != nil {
		t.Fatalf("Failed to write KEYS: %v", err)
	}
	if err := os.WriteFile(filepath.Join(nestedDir, "KEYS.txt"), keys, 0600); err != nil {
		t.Fatalf("Failed to write KEYS.txt: %v", err)
	}
	return distDir, keychainDir
}

func TestKeychainLoad(t *testing.T) {
	distDir, keychainDir := newDistTree(t, "alpha")
	loader := NewKeychainLoader(distDir, keychainDir, &interfaces.NoOpLogger{})

	keychain, records, err := loader.Load(context.Background(), "alpha")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	// The KEYS file and its nested duplicate carry the same two keys;
	// re-import must not duplicate records.
	if keychain.Size() != 2 {
		t.Errorf("Size() = %d, want 2", keychain.Size())
	}
	if len(records) != 2 {
		t.Errorf("len(records) = %d, want 2", len(records))
	}

	alice, ok := records[aliceFingerprint]
	if !ok {
		t.Fatalf("records missing fingerprint %s", aliceFingerprint)
	}
	if alice.Expires != 0 {
		t.Errorf("alice.Expires = %d, want 0 (never expires)", alice.Expires)
	}
	if alice.Owner() != "Alice Example <alice@example.org>" {
		t.Errorf("alice.Owner() = %q", alice.Owner())
	}

	bob, ok := records[bobFingerprint]
	if !ok {
		t.Fatalf("records missing fingerprint %s", bobFingerprint)
	}
	if bob.Expires == 0 {
		t.Error("bob.Expires = 0, want a non-zero expiry epoch")
	}
}

func TestKeychainLoad_PersistsTrustStore(t *testing.T) {
	distDir, keychainDir := newDistTree(t, "alpha")
	loader := NewKeychainLoader(distDir, keychainDir, &interfaces.NoOpLogger{})

	if _, _, err := loader.Load(context.Background(), "alpha"); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	ring := filepath.Join(keychainDir, "alpha", "pubring.asc")
	if _, err := os.Stat(ring); err != nil {
		t.Errorf("trust store keyring not persisted: %v", err)
	}
}

func TestKeychainLoad_MissingProject(t *testing.T) {
	distDir, keychainDir := newDistTree(t, "alpha")
	loader := NewKeychainLoader(distDir, keychainDir, &interfaces.NoOpLogger{})

	_, _, err := loader.Load(context.Background(), "nosuchproject")
	if !errors.Is(err, entities.ErrProjectNotFound) {
		t.Errorf("Load() error = %v, want ErrProjectNotFound", err)
	}
}

func TestKeychainLoad_EmptyProjectName(t *testing.T) {
	distDir, keychainDir := newDistTree(t, "alpha")
	loader := NewKeychainLoader(distDir, keychainDir, &interfaces.NoOpLogger{})

	_, _, err := loader.Load(context.Background(), "")
	if !errors.Is(err, entities.ErrProjectNotFound) {
		t.Errorf("Load() error = %v, want ErrProjectNotFound", err)
	}
}

// A project without any KEYS file yields an empty but usable trust store.
func TestKeychainLoad_NoKeysFiles(t *testing.T) {
	base := t.TempDir()
	distDir := filepath.Join(base, "dist")
	if err := os.MkdirAll(filepath.Join(distDir, "bare"), 0755); err != nil {
		t.Fatalf("Failed to create dist tree: %v", err)
	}
	loader := NewKeychainLoader(distDir, filepath.Join(base, "keychains"), &interfaces.NoOpLogger{})

	keychain, records, err := loader.Load(context.Background(), "bare")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if keychain.Size() != 0 || len(records) != 0 {
		t.Errorf("expected empty trust store, got size %d", keychain.Size())
	}
}

// A malformed KEYS file is skipped with a warning; other KEYS files
// still load.
func TestKeychainLoad_MalformedKeysFile(t *testing.T) {
	distDir, keychainDir := newDistTree(t, "alpha")
	bad := filepath.Join(distDir, "alpha", "broken", "KEYS")
	if err := os.MkdirAll(filepath.Dir(bad), 0755); err != nil {
		t.Fatalf("Failed to create dir: %v", err)
	}
	if err := os.WriteFile(bad, []byte("-----BEGIN PGP PUBLIC KEY BLOCK-----\ngarbage\n"), 0600); err != nil {
		t.Fatalf("Failed to write KEYS: %v", err)
	}
	loader := NewKeychainLoader(distDir, keychainDir, &interfaces.NoOpLogger{})

	keychain, _, err := loader.Load(context.Background(), "alpha")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if keychain.Size() != 2 {
		t.Errorf("Size() = %d, want 2", keychain.Size())
	}
}
