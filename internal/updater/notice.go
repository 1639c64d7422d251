package updater

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sprout-labs/sprout/internal/branding"
)

// devVersion is the version stamped on untagged builds.
const devVersion = "dev"

var (
	headlineStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	promptStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	commandStyle  = lipgloss.NewStyle().Bold(true)
)

// Notice returns the upgrade banner when the cached check says a newer
// release exists. It reads only the on-disk cache; a stale or missing cache
// triggers a refresh whose result shows up on a later run. Untagged builds
// never check.
func (u *Updater) Notice() (string, bool) {
	if u.cacheDir == "" || u.currentVersion == "" || u.currentVersion == devVersion {
		return "", false
	}

	cache, err := LoadCache(u.cacheDir)
	if err != nil {
		cache = nil
	}
	if cache.Stale(u.currentVersion, u.maxAge, u.now()) {
		u.background(u.refreshCache)
	}
	if cache == nil || cache.CurrentVersion != u.currentVersion || !cache.UpdateAvailable {
		return "", false
	}
	return Banner(cache.LatestVersion), true
}

// Banner renders the upgrade notice for latest.
func Banner(latest string) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + headlineStyle.Render("A new version of "+branding.DisplayName()+" is available.") + "\n")
	if latest != "" {
		b.WriteString("  Latest release: " + latest + "\n")
	}
	b.WriteString("\n")
	b.WriteString("  See what's new at " + branding.AnnouncementsURL() + "\n")
	b.WriteString("\n")
	b.WriteString("  Enter the following command to upgrade:\n")
	b.WriteString("  " + promptStyle.Render("$") + " " + commandStyle.Render(branding.UpgradeCommand()) + "\n")
	return b.String()
}

// refreshCache checks GitHub and rewrites the cache. Errors are dropped; the
// next run simply tries again.
func (u *Updater) refreshCache() {
	release, err := u.CheckLatestVersion()
	if err != nil {
		return
	}
	available, err := IsUpdateAvailable(u.currentVersion, release.Version)
	if err != nil {
		return
	}
	_ = SaveCache(u.cacheDir, &VersionCache{
		LatestVersion:   release.Version,
		CurrentVersion:  u.currentVersion,
		CheckedAt:       u.now(),
		UpdateAvailable: available,
	})
}
