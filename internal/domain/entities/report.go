package entities

// Report accumulates verification errors for one project during one
// scan pass, keyed by artifact path. Errors for a path are only ever
// appended, never overwritten, and path order is first-seen order so
// repeated runs over unchanged input produce identical reports.
type Report struct {
	// ScanID identifies the scan pass that produced this report.
	ScanID string

	paths  []string
	errors map[string][]string
}

// NewReport creates an empty report for a scan pass.
func NewReport(scanID string) *Report {
	return &Report{
		ScanID: scanID,
		errors: make(map[string][]string),
	}
}

// Push appends error messages for a file path, creating an entry if
// none exists yet. Pushing zero messages is a no-op.
func (r *Report) Push(path string, msgs ...string) {
	if len(msgs) == 0 {
		return
	}
	if _, ok := r.errors[path]; !ok {
		r.paths = append(r.paths, path)
	}
	r.errors[path] = append(r.errors[path], msgs...)
}

// Empty reports whether no errors were recorded.
func (r *Report) Empty() bool {
	return len(r.paths) == 0
}

// Len returns the number of file paths with recorded errors.
func (r *Report) Len() int {
	return len(r.paths)
}

// Paths returns the file paths with errors, in first-seen order.
func (r *Report) Paths() []string {
	return r.paths
}

// Errors returns the ordered error messages recorded for a path.
func (r *Report) Errors(path string) []string {
	return r.errors[path]
}
