package gateways

import (
	"fmt"
	"os"
	"sort"
)

// ProjectEnumerator lists the projects under the distribution root.
// Every immediate subdirectory is one project.
type ProjectEnumerator struct {
	distDir string
}

// NewProjectEnumerator creates a new project enumerator
func NewProjectEnumerator(distDir string) *ProjectEnumerator {
	return &ProjectEnumerator{distDir: distDir}
}

// List returns all project identifiers, sorted.
func (e *ProjectEnumerator) List() ([]string, error) {
	entries, err := os.ReadDir(e.distDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read dist directory: %w", err)
	}

	projects := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			projects = append(projects, entry.Name())
		}
	}
	sort.Strings(projects)
	return projects, nil
}

// Restrict filters projects down to the requested subset, keeping only
// names that actually exist. An empty request returns projects as-is.
func (e *ProjectEnumerator) Restrict(projects, requested []string) []string {
	if len(requested) == 0 {
		return projects
	}
	known := make(map[string]bool, len(projects))
	for _, p := range projects {
		known[p] = true
	}
	var selected []string
	for _, r := range requested {
		if known[r] {
			selected = append(selected, r)
		}
	}
	return selected
}
