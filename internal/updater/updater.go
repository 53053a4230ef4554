// Package updater replaces the lightnode binary with a newer GitHub release,
// keeping the previous binary for rollback.
package updater

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/creativeprojects/go-selfupdate"
	"github.com/smazurov/lightnode/internal/logging"
	"github.com/smazurov/lightnode/internal/version"
)

// DefaultRepository is the GitHub slug releases are fetched from.
const DefaultRepository = "smazurov/lightnode"

// Options configures an Updater.
type Options struct {
	Repository string // GitHub repo slug, e.g. "smazurov/lightnode"
	Prerelease bool   // Whether to include prereleases
	BackupDir  string // Defaults to ~/.cache/lightnode/backup
	Logger     logging.Logger
}

// UpdateInfo describes the latest release relative to the running version.
type UpdateInfo struct {
	CurrentVersion  string    `json:"current_version"`
	LatestVersion   string    `json:"latest_version"`
	ReleaseNotes    string    `json:"release_notes,omitempty"`
	ReleaseURL      string    `json:"release_url,omitempty"`
	PublishedAt     time.Time `json:"published_at,omitzero"`
	AssetSize       int       `json:"asset_size,omitempty"`
	UpdateAvailable bool      `json:"update_available"`
}

// Updater checks for and applies releases.
type Updater struct {
	repository     selfupdate.Repository
	repositorySlug string
	updater        *selfupdate.Updater
	backup         *backupManager
	execPath       string
	logger         logging.Logger

	disabledReason string
}

// New creates an updater. When the executable's directory is not writable
// the updater is returned disabled and every operation fails with
// ErrCodeDisabled.
func New(opts Options) (*Updater, error) {
	if opts.Logger == nil {
		opts.Logger = logging.GetLogger("updater")
	}
	if opts.Repository == "" {
		opts.Repository = DefaultRepository
	}

	u := &Updater{
		repository:     selfupdate.ParseSlug(opts.Repository),
		repositorySlug: opts.Repository,
		logger:         opts.Logger,
	}

	exe, err := selfupdate.ExecutablePath()
	if err != nil {
		u.disabledReason = fmt.Sprintf("failed to get executable path: %v", err)
		return u, nil
	}
	u.execPath = exe
	if reason := checkWritePermission(exe); reason != "" {
		u.logger.Warn("Update disabled", "reason", reason)
		u.disabledReason = reason
		return u, nil
	}

	source, err := selfupdate.NewGitHubSource(selfupdate.GitHubConfig{})
	if err != nil {
		return nil, fmt.Errorf("failed to create GitHub source: %w", err)
	}
	u.updater, err = selfupdate.NewUpdater(selfupdate.Config{
		Source:     source,
		Prerelease: opts.Prerelease,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create updater: %w", err)
	}

	dir := opts.BackupDir
	if dir == "" {
		if dir, err = defaultBackupDir(); err != nil {
			u.logger.Warn("Rollback unavailable", "error", err)
			return u, nil
		}
	}
	if u.backup, err = newBackupManager(dir, u.logger); err != nil {
		u.logger.Warn("Rollback unavailable", "error", err)
	}
	return u, nil
}

// checkWritePermission returns why exe cannot be replaced, or "".
func checkWritePermission(exe string) string {
	resolved, err := filepath.EvalSymlinks(exe)
	if err != nil {
		return fmt.Sprintf("failed to resolve symlinks: %v", err)
	}

	dir := filepath.Dir(resolved)
	f, err := os.CreateTemp(dir, ".lightnode.update.test*")
	if err != nil {
		return fmt.Sprintf("no write permission to %s: %v", dir, err)
	}
	f.Close()
	os.Remove(f.Name())
	return ""
}

// Enabled reports whether updates can be applied.
func (u *Updater) Enabled() bool {
	return u.disabledReason == ""
}

// DisabledReason returns why the updater is disabled, empty if enabled.
func (u *Updater) DisabledReason() string {
	return u.disabledReason
}

// BackupVersion returns the version held for rollback, empty if none.
func (u *Updater) BackupVersion() string {
	if u.backup == nil {
		return ""
	}
	return u.backup.backupVersion()
}

// Check queries GitHub for the latest release. A dev build is always
// considered outdated.
func (u *Updater) Check(ctx context.Context) (*UpdateInfo, error) {
	release, err := u.latest(ctx)
	if err != nil {
		return nil, err
	}
	return describeRelease(release), nil
}

func (u *Updater) latest(ctx context.Context) (*selfupdate.Release, error) {
	if !u.Enabled() {
		return nil, newError(ErrCodeDisabled, u.disabledReason, nil)
	}

	release, found, err := u.updater.DetectLatest(ctx, u.repository)
	if err != nil {
		return nil, newError(ErrCodeCheckFailed, "failed to check for updates", err)
	}
	if !found {
		return nil, newError(ErrCodeNotFound, "repository not found or has no releases for "+runtime.GOOS+"/"+runtime.GOARCH, nil)
	}
	return release, nil
}

func describeRelease(release *selfupdate.Release) *UpdateInfo {
	current := version.Version
	return &UpdateInfo{
		CurrentVersion:  current,
		LatestVersion:   release.Version(),
		ReleaseNotes:    release.ReleaseNotes,
		ReleaseURL:      release.URL,
		PublishedAt:     release.PublishedAt,
		AssetSize:       release.AssetByteSize,
		UpdateAvailable: current == "dev" || release.GreaterThan(current),
	}
}

// Apply backs up the running binary and replaces it with the latest
// release. The running daemon keeps the old binary until restarted.
func (u *Updater) Apply(ctx context.Context) (*UpdateInfo, error) {
	release, err := u.latest(ctx)
	if err != nil {
		return nil, err
	}
	info := describeRelease(release)
	if !info.UpdateAvailable {
		return info, newError(ErrCodeNoUpdate, "already running "+info.CurrentVersion, nil)
	}

	if err := u.createBackup(); err != nil {
		return nil, err
	}

	if err := u.updater.UpdateTo(ctx, release, u.execPath); err != nil {
		u.attemptRollback()
		return nil, newError(ErrCodeApplyFailed, "failed to apply update", err)
	}

	u.logger.Info("Update applied", "from", info.CurrentVersion, "to", info.LatestVersion)
	return info, nil
}

// ApplyDevBuild installs the rolling "dev" release for this architecture.
func (u *Updater) ApplyDevBuild(ctx context.Context) error {
	if !u.Enabled() {
		return newError(ErrCodeDisabled, u.disabledReason, nil)
	}
	if err := u.createBackup(); err != nil {
		return err
	}

	assetName := devAssetName(runtime.GOARCH)
	url := fmt.Sprintf("https://github.com/%s/releases/download/dev/%s", u.repositorySlug, assetName)
	u.logger.Info("Downloading dev build", "url", url)

	if err := selfupdate.UpdateTo(ctx, url, assetName, u.execPath); err != nil {
		u.attemptRollback()
		return newError(ErrCodeApplyFailed, "failed to apply dev build", err)
	}
	u.logger.Info("Dev build applied")
	return nil
}

func devAssetName(arch string) string {
	return fmt.Sprintf("lightnode_linux_%s.tar.gz", arch)
}

// Rollback restores the previously backed up binary.
func (u *Updater) Rollback() error {
	if !u.Enabled() {
		return newError(ErrCodeDisabled, u.disabledReason, nil)
	}
	if u.backup == nil || !u.backup.hasBackup() {
		return newError(ErrCodeNoBackup, "no backup available for rollback", nil)
	}
	if err := u.backup.restore(); err != nil {
		return newError(ErrCodeRollbackFailed, "failed to restore backup", err)
	}
	return nil
}

func (u *Updater) createBackup() error {
	if u.backup == nil {
		return nil
	}
	if err := u.backup.createBackup(u.execPath, version.Version); err != nil {
		return newError(ErrCodeBackupFailed, "failed to create backup", err)
	}
	return nil
}

func (u *Updater) attemptRollback() {
	if u.backup == nil || !u.backup.hasBackup() {
		u.logger.Error("No backup available for automatic rollback")
		return
	}
	if err := u.backup.restore(); err != nil {
		u.logger.Error("Failed to restore backup", "error", err)
		return
	}
	u.logger.Info("Automatic rollback completed")
}
