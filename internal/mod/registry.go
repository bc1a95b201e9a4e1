// /internal/mod/registry.go
package mod

import (
	"strings"

	"github.com/bwmarrin/discordgo"
)

// Registry maps command keywords to mods and keeps the enabled mods in
// registration order. Registration happens once at startup; everything
// after that is read-only, so no locking is involved.
type Registry struct {
	keywords map[string]*Mod
	mods     []*Mod
}

func NewRegistry() *Registry {
	return &Registry{keywords: make(map[string]*Mod)}
}

// Register adds a mod and claims its keywords. Aliases are claimed
// before the primary command, and a keyword already taken by an earlier
// registrant stays with that registrant. Disabled mods are skipped
// entirely. Registering the same mod again is a no-op.
func (r *Registry) Register(m *Mod) {
	if m == nil || m.Disabled {
		return
	}
	if !r.registered(m) {
		r.mods = append(r.mods, m)
	}
	for _, alias := range m.Aliases {
		r.claim(alias, m)
	}
	r.claim(m.Command, m)
}

func (r *Registry) registered(m *Mod) bool {
	for _, known := range r.mods {
		if known == m {
			return true
		}
	}
	return false
}

func (r *Registry) claim(keyword string, m *Mod) {
	k := Normalize(keyword)
	if k == "" {
		return
	}
	if _, taken := r.keywords[k]; taken {
		return
	}
	r.keywords[k] = m
}

// Resolve looks up the mod owning a keyword, case-insensitively.
func (r *Registry) Resolve(keyword string) (*Mod, bool) {
	m, ok := r.keywords[Normalize(keyword)]
	return m, ok
}

// Mods returns the registered mods in registration order. Callers must
// not mutate the returned slice.
func (r *Registry) Mods() []*Mod {
	return r.mods
}

// Intents returns the union of gateway intents requested by the
// registered mods.
func (r *Registry) Intents() discordgo.Intent {
	var intents discordgo.Intent
	for _, m := range r.mods {
		intents |= m.Intents
	}
	return intents
}

func (r *Registry) Len() int {
	return len(r.mods)
}

// Normalize lowercases and trims a keyword the way the registry stores
// and matches it.
func Normalize(keyword string) string {
	return strings.ToLower(strings.TrimSpace(keyword))
}
