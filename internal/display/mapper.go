// Package display projects raw catalog entries into the shape the host
// presents, cross-referencing the host project's own installed modules.
package display

import (
	"github.com/Masterminds/semver/v3"
	"github.com/charmbracelet/log"

	"github.com/botpress-labs/botpress/internal/catalog"
	"github.com/botpress-labs/botpress/internal/manifest"
)

// Module is the display-ready projection of a catalog entry. Fields the
// catalog left absent stay absent rather than being defaulted.
type Module struct {
	Name        string   `json:"name"`
	Title       string   `json:"title,omitempty"`
	Category    string   `json:"category,omitempty"`
	Description string   `json:"description,omitempty"`
	Stars       *int     `json:"stars,omitempty"`
	Forks       *int     `json:"forks,omitempty"`
	DocLink     string   `json:"docLink,omitempty"`
	Version     string   `json:"version,omitempty"`
	Keywords    []string `json:"keywords,omitempty"`
	FullName    string   `json:"fullName,omitempty"`
	UpdatedAt   string   `json:"updatedAt,omitempty"`
	Issues      *int     `json:"issues,omitempty"`
	MenuIcon    string   `json:"menuIcon,omitempty"`
	License     string   `json:"license,omitempty"`
	Author      string   `json:"author,omitempty"`
	Installed   bool     `json:"installed"`
	Outdated    *bool    `json:"outdated,omitempty"`
	Featured    *bool    `json:"featured,omitempty"`
	Popular     *bool    `json:"popular,omitempty"`
	Official    *bool    `json:"official,omitempty"`
}

// Mapper maps catalog entries for display. The installed set comes from a
// single read of the host project's manifest at construction time.
type Mapper struct {
	installed map[string]string // name -> declared version range
}

// NewMapper reads the host manifest at projectRoot and records its
// production dependencies that follow the extension naming convention.
// A missing or unreadable manifest yields an empty installed set.
func NewMapper(projectRoot string, logger *log.Logger) *Mapper {
	if logger == nil {
		logger = log.Default()
	}
	installed := make(map[string]string)

	pkg, err := manifest.ParseDir(projectRoot)
	if err != nil {
		logger.Debug("no readable project manifest, installed flags disabled", "err", err)
		return &Mapper{installed: installed}
	}
	for _, name := range pkg.Dependencies.Names() {
		if !manifest.IsExtensionName(name) {
			continue
		}
		declared, _ := pkg.Dependencies.Get(name)
		installed[name] = declared
	}
	return &Mapper{installed: installed}
}

// MapForDisplay projects each raw entry. Pure transformation; no I/O.
func (m *Mapper) MapForDisplay(raw []catalog.RawModule) []Module {
	out := make([]Module, 0, len(raw))
	for i := range raw {
		out = append(out, m.mapOne(&raw[i]))
	}
	return out
}

func (m *Mapper) mapOne(r *catalog.RawModule) Module {
	declared, installed := m.installed[r.Name]

	d := Module{
		Name:        r.Name,
		Title:       r.Title,
		Category:    r.Category,
		Description: r.Description,
		DocLink:     r.Homepage,
		Version:     r.LatestVersion(),
		Keywords:    r.Keywords,
		MenuIcon:    r.MenuIcon(),
		License:     r.License,
		Author:      r.Author.DisplayName(),
		Installed:   installed,
		Featured:    r.Featured,
		Popular:     r.Popular,
		Official:    r.Official,
	}
	if r.Github != nil {
		d.Stars = r.Github.Stars
		d.Forks = r.Github.Forks
		d.Issues = r.Github.OpenIssues
		d.FullName = r.Github.FullName
		d.UpdatedAt = r.Github.UpdatedAt
	}
	if installed {
		d.Outdated = outdated(declared, r.LatestVersion())
	}
	return d
}

// outdated compares the host's declared version against the latest
// published one. Only exact semver declarations produce a verdict; ranges
// and unparseable values yield no hint.
func outdated(declared, latest string) *bool {
	dv, err := semver.NewVersion(declared)
	if err != nil {
		return nil
	}
	lv, err := semver.NewVersion(latest)
	if err != nil {
		return nil
	}
	v := dv.LessThan(lv)
	return &v
}
