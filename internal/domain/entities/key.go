package entities

// KeyRecord describes one public key published in a project's KEYS file.
type KeyRecord struct {
	// Fingerprint is the key's unique identifier as upper-case hex.
	Fingerprint string

	// Expires is the key's expiry time in epoch seconds.
	// Zero means the key never expires.
	Expires int64

	// Identities holds the key's user identity strings, primary first.
	Identities []string
}

// Owner returns the primary identity, or "" for a key without identities.
func (k KeyRecord) Owner() string {
	if len(k.Identities) == 0 {
		return ""
	}
	return k.Identities[0]
}

// ExpiredAt reports whether the key had already expired at the given
// epoch timestamp. A key with Expires == 0 never expires.
func (k KeyRecord) ExpiredAt(ts int64) bool {
	return k.Expires != 0 && k.Expires < ts
}
