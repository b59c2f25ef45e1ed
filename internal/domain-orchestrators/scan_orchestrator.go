// Package orchestrators coordinates gateways for complete use cases.
package orchestrators

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/ochairo/distcheck/internal/domain-adapters/gateways"
	"github.com/ochairo/distcheck/internal/domain/entities"
	"github.com/ochairo/distcheck/internal/domain/interfaces"
	igateways "github.com/ochairo/distcheck/internal/domain/interfaces/gateways"
)

// ScanOrchestrator runs verification passes over the distribution
// tree: per project it loads the trust store, walks the artifact tree,
// applies the checksum fallback policy, verifies detached signatures,
// and aggregates everything into a per-file report.
type ScanOrchestrator struct {
	cfg        *entities.Config
	checksums  *gateways.ChecksumVerifier
	signatures *gateways.SignatureVerifier
	keychains  *gateways.KeychainLoader
	notifier   igateways.Notifier
	logger     interfaces.Logger
}

// NewScanOrchestrator creates a new scan orchestrator. notifier may be
// nil when reports are consumed by the caller only.
func NewScanOrchestrator(cfg *entities.Config, notifier igateways.Notifier, logger interfaces.Logger) *ScanOrchestrator {
	return &ScanOrchestrator{
		cfg:        cfg,
		checksums:  gateways.NewChecksumVerifier(gateways.NewDigestEngine()),
		signatures: gateways.NewSignatureVerifier(),
		keychains:  gateways.NewKeychainLoader(cfg.DistDir, cfg.KeychainDir, logger),
		notifier:   notifier,
		logger:     logger,
	}
}

// Run executes one full pass over the given projects. Projects with
// configuration errors are skipped, not fatal for the pass. Non-empty
// reports are handed to the notifier. Returns the report per project.
func (o *ScanOrchestrator) Run(ctx context.Context, projects []string) map[string]*entities.Report {
	scanID := uuid.New().String()
	start := time.Now()

	reports := make(map[string]*entities.Report, len(projects))
	for _, project := range projects {
		projectStart := time.Now()
		o.logger.Info("Scanning project",
			interfaces.F("project", project), interfaces.F("scan_id", scanID))

		report, err := o.ScanProject(ctx, project, scanID)
		if err != nil {
			o.logger.Error("Skipping project",
				interfaces.F("project", project), interfaces.F("error", err))
			continue
		}
		reports[project] = report

		if !report.Empty() {
			o.logger.Warn("Errors were found while verifying project",
				interfaces.F("project", project), interfaces.F("files", report.Len()))
			if o.notifier != nil {
				if err := o.notifier.Notify(ctx, project, report); err != nil {
					o.logger.Error("Failed to dispatch notification",
						interfaces.F("project", project), interfaces.F("error", err))
				}
			}
		}

		o.logger.Info("Project scanned",
			interfaces.F("project", project),
			interfaces.F("duration", time.Since(projectStart).Round(time.Second)))
	}

	o.logger.Info("Done scanning",
		interfaces.F("projects", len(projects)),
		interfaces.F("duration", time.Since(start).Round(time.Second)))
	return reports
}

// ScanProject verifies every allow-listed artifact under one project's
// dist directory and returns the accumulated report. The project's
// keychain is loaded in full before any verification begins and is not
// shared with other projects.
func (o *ScanOrchestrator) ScanProject(ctx context.Context, project, scanID string) (*entities.Report, error) {
	keychain, known, err := o.keychains.Load(ctx, project)
	if err != nil {
		return nil, err
	}

	report := entities.NewReport(scanID)
	projectDir := filepath.Join(o.cfg.DistDir, project)
	if err := o.walk(projectDir, func(artifact entities.Artifact) {
		o.verifyArtifact(ctx, artifact, keychain, known, report)
	}); err != nil {
		return nil, fmt.Errorf("failed to walk project directory: %w", err)
	}

	return report, nil
}

// walk visits every allow-listed artifact: files in lexicographic
// order within each directory, then subdirectories in the same order.
// Repeated runs over unchanged input visit artifacts identically.
func (o *ScanOrchestrator) walk(dir string, fn func(entities.Artifact)) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	var subdirs []string
	for _, entry := range entries {
		if entry.IsDir() {
			subdirs = append(subdirs, filepath.Join(dir, entry.Name()))
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		artifact := entities.NewArtifact(filepath.Join(dir, entry.Name()), info.Size(), info.ModTime())
		if o.cfg.HasExtension(artifact.Extension()) {
			fn(artifact)
		}
	}

	for _, sub := range subdirs {
		if err := o.walk(sub, fn); err != nil {
			return err
		}
	}
	return nil
}

// verifyArtifact applies the checksum fallback policy and the
// signature check for one artifact, accumulating errors in the report.
func (o *ScanOrchestrator) verifyArtifact(ctx context.Context, artifact entities.Artifact, keychain igateways.Keychain, known map[string]entities.KeyRecord, report *entities.Report) {
	o.logger.Debug("Verifying artifact",
		interfaces.F("path", artifact.Path),
		interfaces.F("size", humanize.Bytes(uint64(artifact.Size)))) //nolint:gosec // G115: file sizes are non-negative

	validChecksums := 0
	o.runChecksums(ctx, artifact, o.cfg.StrongChecksums, &validChecksums, report)

	if validChecksums == 0 && o.cfg.StrongChecksumDeadline > 0 &&
		artifact.ModTime.Unix() <= o.cfg.StrongChecksumDeadline {
		// Artifacts published before the deadline may still rely on
		// legacy weak checksums. Every configured weak algorithm is
		// checked, not just the last one.
		o.runChecksums(ctx, artifact, o.cfg.WeakChecksums, &validChecksums, report)
		if validChecksums == 0 {
			report.Push(artifact.Path, fmt.Sprintf(
				"No valid checksum files (.md5, .sha1, .sha256, .sha512) found for %s", artifact.Name))
		}
	} else if validChecksums == 0 {
		report.Push(artifact.Path, fmt.Sprintf(
			"No valid checksum files (.sha256, .sha512) found for %s", artifact.Name))
	}

	lines, err := o.signatures.Verify(ctx, artifact.Path, keychain, known)
	if err != nil {
		report.Push(artifact.Path, fmt.Sprintf(
			"Could not verify detached signature file %s.asc: %v", artifact.Name, err))
		return
	}
	report.Push(artifact.Path, lines...)
}

// runChecksums verifies the artifact against each algorithm whose
// sidecar exists: a valid checksum increments the counter, an invalid
// one appends its error lines without incrementing.
func (o *ScanOrchestrator) runChecksums(ctx context.Context, artifact entities.Artifact, algorithms []string, valid *int, report *entities.Report) {
	for _, algorithm := range algorithms {
		if _, err := os.Stat(artifact.Sidecar(algorithm)); err != nil {
			continue
		}
		lines, err := o.checksums.Verify(ctx, artifact.Path, algorithm)
		if err != nil {
			report.Push(artifact.Path, fmt.Sprintf(
				"Could not verify %s checksum of %s: %v", algorithm, artifact.Name, err))
			continue
		}
		if len(lines) > 0 {
			report.Push(artifact.Path, lines...)
		} else {
			*valid++
		}
	}
}
