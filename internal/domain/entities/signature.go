package entities

// StatusSignatureValid is the canonical status reported by the keychain
// for a signature that passed cryptographic verification. Any other
// status string on an invalid signature is surfaced verbatim to the
// project report.
const StatusSignatureValid = "signature valid"

// SignatureResult is the tagged outcome of a detached signature
// verification attempt against an artifact.
type SignatureResult struct {
	// Valid is true when the underlying cryptographic check passed.
	Valid bool

	// Fingerprint is the signing key's fingerprint as reported by the
	// verification attempt (upper-case hex), or "" if undetermined.
	Fingerprint string

	// SigTimestamp is the signature's claimed signing time in epoch seconds.
	SigTimestamp int64

	// Status is a human-readable verification status.
	Status string
}
