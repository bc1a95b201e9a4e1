// /internal/mods/seen/seen.go
package seen

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/keshon/modbot/internal/mod"
	"github.com/keshon/modbot/internal/storage"
)

// New returns the seen mod. Plain chat keeps the sighting log fresh;
// the command looks a member up in it.
func New() *mod.Mod {
	return &mod.Mod{
		Name:        "seen",
		Command:     "seen",
		Aliases:     []string{"lastseen"},
		Description: "When was a member last active: `!seen @user`.",
		Intents:     discordgo.IntentGuildMessages | discordgo.IntentMessageContent,

		OnMessageCreate: onMessage,
	}
}

func onMessage(ctx *mod.MessageContext) error {
	m := ctx.Event

	if ctx.Args == nil {
		if m.GuildID == "" || m.Author == nil {
			return nil
		}
		return ctx.Storage.SetLastSeen(m.GuildID, storage.SeenRecord{
			UserID:    m.Author.ID,
			Username:  m.Author.Username,
			ChannelID: m.ChannelID,
			Datetime:  time.Now(),
		})
	}

	if m.GuildID == "" {
		return ctx.Reply("I only track sightings inside guilds.")
	}
	if len(ctx.Args) == 0 {
		return ctx.Reply("Who are you looking for? `!seen @user`")
	}

	targetID, label := targetFromArgs(ctx)
	if targetID == "" {
		return ctx.Reply("Mention someone or give their ID: `!seen @user`")
	}

	rec, err := ctx.Storage.GetLastSeen(m.GuildID, targetID)
	if err != nil {
		return ctx.Replyf("No sightings of %s yet.", label)
	}
	return ctx.Replyf("👀 %s was last seen in <#%s> <t:%d:R>.", rec.Username, rec.ChannelID, rec.Datetime.Unix())
}

func targetFromArgs(ctx *mod.MessageContext) (id, label string) {
	if len(ctx.Event.Mentions) > 0 {
		u := ctx.Event.Mentions[0]
		return u.ID, u.Username
	}
	raw := ctx.Args[0]
	if id := mod.ParseUserID(raw); id != "" {
		return id, fmt.Sprintf("<@%s>", id)
	}
	return "", raw
}
