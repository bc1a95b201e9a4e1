// /internal/mods/ping/ping.go
package ping

import (
	"github.com/bwmarrin/discordgo"

	"github.com/keshon/modbot/internal/mod"
	"github.com/keshon/modbot/internal/version"
)

// New returns the ping mod, a liveness check over the gateway.
func New() *mod.Mod {
	return &mod.Mod{
		Name:        "ping",
		Command:     "ping",
		Description: "Pong! Reports gateway latency.",
		Intents:     discordgo.IntentGuildMessages | discordgo.IntentMessageContent,

		OnMessageCreate: onMessage,
	}
}

func onMessage(ctx *mod.MessageContext) error {
	if ctx.Args == nil {
		return nil
	}
	latency := ctx.Session.HeartbeatLatency().Milliseconds()
	return ctx.Replyf("🏓 Pong! Response time: `%dms` (%s %s)", latency, version.AppName, version.String())
}
