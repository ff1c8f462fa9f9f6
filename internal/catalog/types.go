package catalog

import (
	"time"

	"github.com/botpress-labs/botpress/internal/manifest"
)

// RawModule is one community catalog entry as published by the remote
// registry. Fields the registry did not set stay absent; nothing is
// defaulted here.
type RawModule struct {
	Name         string          `json:"name"`
	Title        string          `json:"title,omitempty"`
	Description  string          `json:"description,omitempty"`
	Category     string          `json:"category,omitempty"`
	Keywords     []string        `json:"keywords,omitempty"`
	License      string          `json:"license,omitempty"`
	Homepage     string          `json:"homepage,omitempty"`
	Featured     *bool           `json:"featured,omitempty"`
	Popular      *bool           `json:"popular,omitempty"`
	Official     *bool           `json:"official,omitempty"`
	Author       manifest.Author `json:"author,omitempty"`
	Github       *GithubInfo     `json:"github,omitempty"`
	DistTags     *DistTags       `json:"dist-tags,omitempty"`
	Package      *PackageInfo    `json:"package,omitempty"`
	Contributors []Contributor   `json:"contributors,omitempty"`
}

// LatestVersion returns the latest published version, empty when unknown.
func (m *RawModule) LatestVersion() string {
	if m.DistTags == nil {
		return ""
	}
	return m.DistTags.Latest
}

// MenuIcon returns the menu icon from the package's extension-declaration
// section, empty when absent.
func (m *RawModule) MenuIcon() string {
	if m.Package == nil || m.Package.Botpress == nil {
		return ""
	}
	return m.Package.Botpress.MenuIcon
}

// GithubInfo is the repository substructure of a catalog entry.
type GithubInfo struct {
	FullName   string `json:"full_name,omitempty"`
	Stars      *int   `json:"stargazers_count,omitempty"`
	Forks      *int   `json:"forks_count,omitempty"`
	OpenIssues *int   `json:"open_issues_count,omitempty"`
	UpdatedAt  string `json:"updated_at,omitempty"`
}

// DistTags is the published version tag substructure.
type DistTags struct {
	Latest string `json:"latest,omitempty"`
}

// PackageInfo nests the published package's extension declaration.
type PackageInfo struct {
	Botpress *PackageBotpress `json:"botpress,omitempty"`
}

// PackageBotpress carries the declaration fields the host displays.
type PackageBotpress struct {
	MenuIcon string `json:"menuIcon,omitempty"`
	MenuText string `json:"menuText,omitempty"`
}

// Contributor is one entry of a module's contributor list.
type Contributor struct {
	Name          string `json:"name,omitempty"`
	Email         string `json:"email,omitempty"`
	URL           string `json:"url,omitempty"`
	Username      string `json:"username,omitempty"`
	Avatar        string `json:"avatar,omitempty"`
	Contributions int    `json:"contributions,omitempty"`
}

// CacheFile is the persisted cache document. Updated is null until the
// first successful refresh.
type CacheFile struct {
	Modules []RawModule `json:"modules"`
	Updated *time.Time  `json:"updated"`
}
