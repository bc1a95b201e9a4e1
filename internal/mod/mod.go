// /internal/mod/mod.go

// Package mod defines the unit of pluggable bot functionality and the
// keyword registry that routes commands to it.
package mod

import (
	"github.com/bwmarrin/discordgo"

	"github.com/keshon/modbot/internal/config"
	"github.com/keshon/modbot/internal/storage"
)

// Mod describes a single unit of bot functionality. A mod may claim a
// command keyword, listen to message lifecycle events, or both. Handler
// fields left nil mean the mod does not care about that event.
type Mod struct {
	Name        string
	Command     string // primary keyword, empty for pure listeners
	Aliases     []string
	Description string
	Intents     discordgo.Intent // gateway intents this mod needs
	Disabled    bool

	OnInit          func(*InitContext) error
	OnMessageCreate func(*MessageContext) error
	OnMessageUpdate func(*UpdateContext) error
	OnMessageDelete func(*DeleteContext) error
}

type InitContext struct {
	Session  *discordgo.Session
	Config   *config.Config
	Storage  *storage.Storage
	Registry *Registry
}

// MessageContext carries a freshly created message. Args is nil when
// the message arrived as plain chat and non-nil (possibly empty) when
// the mod's own command keyword was invoked.
type MessageContext struct {
	Session  *discordgo.Session
	Event    *discordgo.MessageCreate
	Args     []string
	Storage  *storage.Storage
	Config   *config.Config
	Registry *Registry
}

type UpdateContext struct {
	Session *discordgo.Session
	Event   *discordgo.MessageUpdate
	Before  *discordgo.Message // cached pre-edit copy, may be nil
	Words   []string
	Storage *storage.Storage
}

type DeleteContext struct {
	Session *discordgo.Session
	Event   *discordgo.MessageDelete
	Before  *discordgo.Message // cached copy, may be nil
	Words   []string
	Storage *storage.Storage
}
