package display

import (
	"math/rand"

	"github.com/botpress-labs/botpress/internal/catalog"
)

// Hero identifies one community contributor for display.
type Hero struct {
	Name          string `json:"name,omitempty"`
	Username      string `json:"username,omitempty"`
	Avatar        string `json:"avatar,omitempty"`
	Module        string `json:"module"`
	Contributions int    `json:"contributions,omitempty"`
}

// FallbackHero builds the deterministic placeholder identity served when
// the catalog has no modules.
func FallbackHero(username, module string) Hero {
	return Hero{Username: username, Module: module}
}

// PickRandomContributor uniformly samples one module from mods, then
// uniformly samples one contributor from that module's contributor list.
// The fallback identity is returned when there are no modules, or when
// the sampled module lists no contributors.
func PickRandomContributor(mods []catalog.RawModule, fallback Hero) Hero {
	if len(mods) == 0 {
		return fallback
	}
	m := mods[rand.Intn(len(mods))]
	if len(m.Contributors) == 0 {
		return fallback
	}
	c := m.Contributors[rand.Intn(len(m.Contributors))]
	return Hero{
		Name:          c.Name,
		Username:      c.Username,
		Avatar:        c.Avatar,
		Module:        m.Name,
		Contributions: c.Contributions,
	}
}
