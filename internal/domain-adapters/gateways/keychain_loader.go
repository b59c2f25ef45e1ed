package gateways

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ochairo/distcheck/internal/domain/entities"
	"github.com/ochairo/distcheck/internal/domain/interfaces"
	"github.com/ochairo/distcheck/internal/external-adapters/gpg"
)

// keysFileNames are the literal filenames imported into the trust store.
var keysFileNames = map[string]bool{
	"KEYS":     true,
	"KEYS.txt": true,
}

// KeychainLoader builds a project's trust store from the KEYS files
// found anywhere under its dist directory. The keychain is rebuilt
// fresh on every call; nothing persists across scan passes except the
// on-disk trust-store artifact.
type KeychainLoader struct {
	distDir     string
	keychainDir string
	logger      interfaces.Logger
}

// NewKeychainLoader creates a new keychain loader
func NewKeychainLoader(distDir, keychainDir string, logger interfaces.Logger) *KeychainLoader {
	return &KeychainLoader{
		distDir:     distDir,
		keychainDir: keychainDir,
		logger:      logger,
	}
}

// Load walks the project's dist directory, imports every KEYS and
// KEYS.txt file into a fresh trust store, and returns the keychain
// together with its fingerprint lookup map. A missing project dist
// directory is a configuration error.
func (l *KeychainLoader) Load(_ context.Context, project string) (*gpg.Keychain, map[string]entities.KeyRecord, error) {
	projectDir := filepath.Join(l.distDir, project)
	if project == "" || !isDir(projectDir) {
		return nil, nil, fmt.Errorf("%w: %s", entities.ErrProjectNotFound, project)
	}

	keychain, err := gpg.NewKeychain(filepath.Join(l.keychainDir, project))
	if err != nil {
		return nil, nil, err
	}

	err = filepath.WalkDir(projectDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !keysFileNames[d.Name()] {
			return nil
		}

		l.logger.Info("Loading KEYS file into trust store", interfaces.F("path", path))
		material, err := os.ReadFile(path) //nolint:gosec // G304: path from the scanned dist tree
		if err != nil {
			return err
		}
		if _, err := keychain.ImportKeys(material); err != nil {
			// A malformed KEYS file must not abort the scan; the keys it
			// would have provided simply stay untrusted.
			l.logger.Warn("Failed to import KEYS file",
				interfaces.F("path", path), interfaces.F("error", err))
		}
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to walk project directory: %w", err)
	}

	if err := keychain.Save(); err != nil {
		l.logger.Warn("Failed to persist trust store",
			interfaces.F("project", project), interfaces.F("error", err))
	}

	return keychain, keychain.Records(), nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
