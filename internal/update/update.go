// Package update checks GitHub Releases for newer autodebug builds and
// replaces the running binary.
package update

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
	selfupdate "github.com/creativeprojects/go-selfupdate"

	"github.com/justinpbarnett/autodebug/internal/logging"
)

// ErrDevBuild is returned by Apply for builds without a release version.
var ErrDevBuild = errors.New("cannot update a development build; install from a release first")

// Release holds information about an available update.
type Release struct {
	Version      string
	URL          string
	ReleaseNotes string
}

// Source finds the latest published release for a repository.
type Source interface {
	Latest(ctx context.Context, repo string) (*Release, bool, error)
}

// Checker compares the running version against a release source.
type Checker struct {
	Current string
	Repo    string
	Source  Source
}

// NewChecker returns a Checker backed by GitHub Releases.
func NewChecker(current, repo string) *Checker {
	return &Checker{Current: current, Repo: repo, Source: githubSource{}}
}

// Check returns the newer release, or nil when the running build is current,
// unversioned, or has a version that does not parse.
func (c *Checker) Check(ctx context.Context) (*Release, error) {
	if isDev(c.Current) {
		return nil, nil
	}
	current, err := parseSemver(c.Current)
	if err != nil {
		logging.NewLogger("update").WithField("version", c.Current).Debug("skipping check for unparseable version")
		return nil, nil
	}

	latest, found, err := c.Source.Latest(ctx, c.Repo)
	if err != nil {
		return nil, fmt.Errorf("detect latest release: %w", err)
	}
	if !found {
		return nil, nil
	}
	latestVer, err := parseSemver(latest.Version)
	if err != nil || !latestVer.GreaterThan(current) {
		return nil, nil
	}
	return latest, nil
}

// Apply downloads the latest release and replaces the current executable.
func (c *Checker) Apply(ctx context.Context) (*Release, error) {
	if isDev(c.Current) {
		return nil, ErrDevBuild
	}
	updater, err := newUpdater()
	if err != nil {
		return nil, err
	}
	rel, err := updater.UpdateSelf(ctx, strings.TrimPrefix(c.Current, "v"), selfupdate.ParseSlug(c.Repo))
	if err != nil {
		return nil, fmt.Errorf("update failed: %w", err)
	}
	logging.NewLogger("update").WithField("version", rel.Version()).Info("binary replaced")
	return &Release{Version: rel.Version(), URL: rel.URL, ReleaseNotes: rel.ReleaseNotes}, nil
}

type githubSource struct{}

func (githubSource) Latest(ctx context.Context, repo string) (*Release, bool, error) {
	updater, err := newUpdater()
	if err != nil {
		return nil, false, err
	}
	latest, found, err := updater.DetectLatest(ctx, selfupdate.ParseSlug(repo))
	if err != nil || !found {
		return nil, found, err
	}
	return &Release{Version: latest.Version(), URL: latest.URL, ReleaseNotes: latest.ReleaseNotes}, true, nil
}

func newUpdater() (*selfupdate.Updater, error) {
	source, err := selfupdate.NewGitHubSource(selfupdate.GitHubConfig{})
	if err != nil {
		return nil, fmt.Errorf("create github source: %w", err)
	}
	updater, err := selfupdate.NewUpdater(selfupdate.Config{Source: source})
	if err != nil {
		return nil, fmt.Errorf("create updater: %w", err)
	}
	return updater, nil
}

func isDev(v string) bool {
	return v == "" || v == "dev"
}

// CompareVersions returns -1, 0 or 1 as current is older, equal or newer
// than latest. Unparseable versions sort before any valid one.
func CompareVersions(current, latest string) int {
	cv, errC := parseSemver(current)
	lv, errL := parseSemver(latest)

	switch {
	case errC != nil && errL != nil:
		return 0
	case errC != nil:
		return -1
	case errL != nil:
		return 1
	}
	return cv.Compare(lv)
}

// parseSemver accepts an optional "v" prefix. git-describe suffixes such as
// "0.1.0-3-gabcdef" parse as prereleases.
func parseSemver(s string) (*semver.Version, error) {
	return semver.NewVersion(strings.TrimPrefix(s, "v"))
}
