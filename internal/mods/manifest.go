// /internal/mods/manifest.go

// Package mods assembles every mod the bot ships with.
package mods

import (
	"strings"

	"github.com/keshon/modbot/internal/config"
	"github.com/keshon/modbot/internal/mod"
	"github.com/keshon/modbot/internal/mods/help"
	"github.com/keshon/modbot/internal/mods/modlog"
	"github.com/keshon/modbot/internal/mods/mute"
	"github.com/keshon/modbot/internal/mods/ping"
	"github.com/keshon/modbot/internal/mods/prune"
	"github.com/keshon/modbot/internal/mods/roll"
	"github.com/keshon/modbot/internal/mods/seen"
	"github.com/keshon/modbot/internal/mods/vote"
)

// All returns the shipped mods in registration order, with the ones
// named in cfg.DisabledMods switched off.
func All(cfg *config.Config) []*mod.Mod {
	list := []*mod.Mod{
		ping.New(),
		help.New(),
		roll.New(),
		mute.New(),
		vote.New(),
		prune.New(),
		modlog.New(),
		seen.New(),
	}

	disabled := make(map[string]bool, len(cfg.DisabledMods))
	for _, name := range cfg.DisabledMods {
		disabled[strings.ToLower(strings.TrimSpace(name))] = true
	}
	for _, m := range list {
		if disabled[strings.ToLower(m.Name)] {
			m.Disabled = true
		}
	}
	return list
}
