package updater

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/taskdeck/taskdeck/internal/logging"
)

// backupSuffix marks the saved copy of a file being replaced.
const backupSuffix = ".backup"

// ErrHashMismatch means a downloaded file did not match its manifest hash.
var ErrHashMismatch = errors.New("downloaded file hash does not match manifest")

// Step is one file replacement in an update plan.
type Step struct {
	Name   string
	Info   ModuleInfo
	Asset  *Asset
	Reason string // "new", "changed" or "newer version"
}

// Plan is the result of diffing the remote manifest against the local one.
type Plan struct {
	LocalVersion  string
	RemoteVersion string
	ReleaseNotes  string
	Steps         []Step

	remote *Manifest
}

// UpToDate reports whether nothing needs replacing.
func (p *Plan) UpToDate() bool {
	return len(p.Steps) == 0
}

// NeedsRestart reports whether the plan touches the core binary.
func (p *Plan) NeedsRestart() bool {
	for _, s := range p.Steps {
		if s.Info.Type == TypeCore {
			return true
		}
	}
	return false
}

// Updater checks for and applies releases into the install directory.
type Updater struct {
	github *GitHubClient
	dir    string // install directory holding the binary, manifest and version file
}

// New creates an updater for the given install directory.
func New(github *GitHubClient, dir string) *Updater {
	return &Updater{github: github, dir: dir}
}

// InstalledVersion returns the locally recorded version.
func (u *Updater) InstalledVersion() string {
	return ReadVersion(filepath.Join(u.dir, VersionFilename))
}

// Check fetches the latest release and builds an update plan. A release
// older than or equal to the installed version yields an empty plan without
// fetching the remote manifest.
func (u *Updater) Check(ctx context.Context) (*Plan, error) {
	local, err := LoadManifest(filepath.Join(u.dir, ManifestFilename))
	if err != nil {
		return nil, err
	}
	localVersion := u.InstalledVersion()

	release, err := u.github.LatestRelease(ctx)
	if err != nil {
		return nil, err
	}

	plan := &Plan{
		LocalVersion:  localVersion,
		RemoteVersion: release.TagName,
		ReleaseNotes:  release.Body,
	}
	if !IsNewer(release.TagName, localVersion) {
		logging.Debug("already up to date", "local", localVersion, "remote", release.TagName)
		return plan, nil
	}

	manifestAsset, ok := release.Asset(ManifestFilename)
	if !ok {
		return nil, fmt.Errorf("release %s has no %s asset", release.TagName, ManifestFilename)
	}
	data, err := u.github.FetchAsset(ctx, manifestAsset)
	if err != nil {
		return nil, err
	}
	remote, err := ParseManifest(data)
	if err != nil {
		return nil, err
	}
	plan.remote = remote

	for _, name := range remote.ModuleNames() {
		info := remote.Modules[name]
		asset, ok := release.Asset(name)
		if !ok {
			// Manifest entries without an asset cannot be installed.
			logging.Warn("manifest module missing from release assets", "module", name)
			continue
		}

		reason := ""
		localInfo, exists := local.Modules[name]
		switch {
		case !exists:
			reason = "new"
		case localInfo.Hash != info.Hash:
			reason = "changed"
		case IsNewer(info.Version, localInfo.Version):
			reason = "newer version"
		default:
			continue
		}
		plan.Steps = append(plan.Steps, Step{Name: name, Info: info, Asset: asset, Reason: reason})
	}
	return plan, nil
}

// Apply downloads and installs every step of the plan. Each file is staged,
// hash-verified, and swapped in with a backup; a failed swap restores the
// backup before returning. On success the manifest and version file are
// updated and backups removed.
func (u *Updater) Apply(ctx context.Context, plan *Plan) error {
	if plan.UpToDate() {
		return nil
	}

	staging, err := os.MkdirTemp("", "taskdeck-update-*")
	if err != nil {
		return fmt.Errorf("creating staging directory: %w", err)
	}
	defer func() { _ = os.RemoveAll(staging) }()

	// Download and verify everything before touching the install dir.
	for _, step := range plan.Steps {
		staged := filepath.Join(staging, step.Name)
		if err := u.github.DownloadAsset(ctx, step.Asset, staged); err != nil {
			return err
		}
		hash, err := HashFile(staged)
		if err != nil {
			return err
		}
		if hash != step.Info.Hash {
			return fmt.Errorf("%w: %s", ErrHashMismatch, step.Name)
		}
	}

	var installed []string
	for _, step := range plan.Steps {
		if err := u.install(filepath.Join(staging, step.Name), step.Name); err != nil {
			return err
		}
		installed = append(installed, step.Name)
		logging.Info("updated module", "module", step.Name, "version", step.Info.Version, "reason", step.Reason)
	}

	if plan.remote != nil {
		if err := plan.remote.Save(filepath.Join(u.dir, ManifestFilename)); err != nil {
			return err
		}
	}
	if err := WriteVersion(filepath.Join(u.dir, VersionFilename), plan.RemoteVersion); err != nil {
		return err
	}

	for _, name := range installed {
		_ = os.Remove(filepath.Join(u.dir, name+backupSuffix))
	}
	logging.Info("update applied", "version", plan.RemoteVersion, "modules", len(installed))
	return nil
}

// install swaps a staged file into the install directory, keeping the old
// copy as name.backup and restoring it if the copy fails.
func (u *Updater) install(staged, name string) error {
	target := filepath.Join(u.dir, name)
	backup := target + backupSuffix

	hadExisting := false
	if _, err := os.Stat(target); err == nil {
		if err := os.Rename(target, backup); err != nil {
			return fmt.Errorf("backing up %s: %w", name, err)
		}
		hadExisting = true
	}

	if err := copyFile(staged, target); err != nil {
		if hadExisting {
			if restoreErr := os.Rename(backup, target); restoreErr != nil {
				return fmt.Errorf("installing %s failed (%v) and backup restore failed: %w", name, err, restoreErr)
			}
			logging.Warn("install failed, backup restored", "module", name, "err", err)
		}
		return fmt.Errorf("installing %s: %w", name, err)
	}
	return nil
}

// copyFile copies across filesystems; the staging dir may be on another
// mount, so rename alone is not enough.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	info, err := in.Stat()
	if err != nil {
		return err
	}
	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		_ = os.Remove(dst)
		return err
	}
	return out.Close()
}
