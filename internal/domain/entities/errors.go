package entities

import "errors"

// Sentinel errors for failure classes that callers branch on.
var (
	// ErrConfiguration indicates a missing or invalid required setting.
	// Configuration errors halt the run (or skip the affected project);
	// they are never recorded as artifact errors.
	ErrConfiguration = errors.New("invalid configuration")

	// ErrProjectNotFound indicates a project has no dist directory.
	ErrProjectNotFound = errors.New("project dist directory not found")

	// ErrUnsupportedAlgorithm indicates an unknown digest algorithm name.
	ErrUnsupportedAlgorithm = errors.New("unsupported digest algorithm")
)
