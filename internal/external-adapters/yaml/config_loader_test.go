package yaml

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ochairo/distcheck/internal/domain/entities"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "checker.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
dist_dir: /srv/dist/release
keychain_dir: /srv/keychains
known_extensions:
  - gz
  - zip
strong_checksums:
  - sha512
weak_checksums:
  - sha1
strong_checksum_deadline: 1577836800
interval: 600
notify:
  sender: checker@example.org
  smtp_host: mail.example.org:25
  domain: example.org
  mail_map_url: https://example.org/committees.json
  extra_recipients:
    - ops@example.org
`)

	cfg, err := NewConfigLoader().Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.DistDir != "/srv/dist/release" {
		t.Errorf("DistDir = %q", cfg.DistDir)
	}
	if cfg.KeychainDir != "/srv/keychains" {
		t.Errorf("KeychainDir = %q", cfg.KeychainDir)
	}
	if len(cfg.KnownExtensions) != 2 || !cfg.HasExtension("zip") {
		t.Errorf("KnownExtensions = %v", cfg.KnownExtensions)
	}
	if len(cfg.StrongChecksums) != 1 || cfg.StrongChecksums[0] != "sha512" {
		t.Errorf("StrongChecksums = %v", cfg.StrongChecksums)
	}
	if len(cfg.WeakChecksums) != 1 || cfg.WeakChecksums[0] != "sha1" {
		t.Errorf("WeakChecksums = %v", cfg.WeakChecksums)
	}
	if cfg.StrongChecksumDeadline != 1577836800 {
		t.Errorf("StrongChecksumDeadline = %d", cfg.StrongChecksumDeadline)
	}
	if cfg.IntervalSeconds != 600 {
		t.Errorf("IntervalSeconds = %d", cfg.IntervalSeconds)
	}
	if cfg.Notify.Sender != "checker@example.org" {
		t.Errorf("Notify.Sender = %q", cfg.Notify.Sender)
	}
	if cfg.Notify.MailMapURL != "https://example.org/committees.json" {
		t.Errorf("Notify.MailMapURL = %q", cfg.Notify.MailMapURL)
	}
	if len(cfg.Notify.ExtraRecipients) != 1 || cfg.Notify.ExtraRecipients[0] != "ops@example.org" {
		t.Errorf("Notify.ExtraRecipients = %v", cfg.Notify.ExtraRecipients)
	}
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `
dist_dir: /srv/dist/release
keychain_dir: /srv/keychains
`)

	cfg, err := NewConfigLoader().Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := []string{"sha256", "sha512"}
	for i, algorithm := range want {
		if cfg.StrongChecksums[i] != algorithm {
			t.Errorf("StrongChecksums = %v, want %v", cfg.StrongChecksums, want)
			break
		}
	}
	wantWeak := []string{"md5", "sha1"}
	for i, algorithm := range wantWeak {
		if cfg.WeakChecksums[i] != algorithm {
			t.Errorf("WeakChecksums = %v, want %v", cfg.WeakChecksums, wantWeak)
			break
		}
	}
	if cfg.IntervalSeconds != 1800 {
		t.Errorf("IntervalSeconds = %d, want 1800", cfg.IntervalSeconds)
	}
	if cfg.StrongChecksumDeadline != 0 {
		t.Errorf("StrongChecksumDeadline = %d, want 0", cfg.StrongChecksumDeadline)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"missing dist_dir", "keychain_dir: /srv/keychains\n"},
		{"missing keychain_dir", "dist_dir: /srv/dist/release\n"},
		{"malformed yaml", "dist_dir: [unterminated\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.content)
			_, err := NewConfigLoader().Load(path)
			if !errors.Is(err, entities.ErrConfiguration) {
				t.Errorf("Load() error = %v, want ErrConfiguration", err)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := NewConfigLoader().Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if !errors.Is(err, entities.ErrConfiguration) {
		t.Errorf("Load() error = %v, want ErrConfiguration", err)
	}
}
