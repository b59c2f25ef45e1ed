package entities

// Config holds the checker configuration loaded from checker.yaml.
type Config struct {
	// DistDir is the root of the distribution tree; each immediate
	// subdirectory is one project.
	DistDir string `yaml:"dist_dir"`

	// KeychainDir is the root under which per-project trust stores
	// are kept.
	KeychainDir string `yaml:"keychain_dir"`

	// KnownExtensions is the allow-list of artifact filename
	// extensions (last dot segment, e.g. "gz", "zip").
	KnownExtensions []string `yaml:"known_extensions"`

	// StrongChecksums lists the mandatory digest algorithms.
	StrongChecksums []string `yaml:"strong_checksums"`

	// WeakChecksums lists the legacy digest algorithms accepted only
	// for artifacts older than StrongChecksumDeadline.
	WeakChecksums []string `yaml:"weak_checksums"`

	// StrongChecksumDeadline is an epoch timestamp. Artifacts modified
	// at or before it may fall back to weak checksums when no valid
	// strong checksum exists. Zero disables the fallback entirely.
	StrongChecksumDeadline int64 `yaml:"strong_checksum_deadline"`

	// IntervalSeconds is the sleep between passes when scanning forever.
	IntervalSeconds int `yaml:"interval"`

	// Notify configures notification dispatch.
	Notify NotifyConfig `yaml:"notify"`
}

// NotifyConfig configures how project reports are delivered.
type NotifyConfig struct {
	// Sender is the From address for notification mail.
	Sender string `yaml:"sender"`

	// SMTPHost is the host:port of the outgoing mail server.
	SMTPHost string `yaml:"smtp_host"`

	// Domain is the mail domain for project private lists
	// (private@<list>.<domain>).
	Domain string `yaml:"domain"`

	// MailMapURL points at committee metadata JSON used to resolve a
	// project's mailing list name when it differs from the project id.
	MailMapURL string `yaml:"mail_map_url"`

	// ExtraRecipients are appended to every notification.
	ExtraRecipients []string `yaml:"extra_recipients"`
}

// HasExtension reports whether ext is in the allow-list.
func (c *Config) HasExtension(ext string) bool {
	for _, known := range c.KnownExtensions {
		if known == ext {
			return true
		}
	}
	return false
}
