// /internal/mods/prune/prune.go
package prune

import (
	"fmt"
	"strconv"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/keshon/modbot/internal/mod"
)

const (
	defaultCount = 10
	maxCount     = 100
)

// New returns the prune mod for bulk deleting recent channel messages.
func New() *mod.Mod {
	return &mod.Mod{
		Name:        "prune",
		Command:     "prune",
		Aliases:     []string{"purge", "clear"},
		Description: "Bulk delete recent messages: `!prune 25`.",
		Intents:     discordgo.IntentGuildMessages | discordgo.IntentMessageContent,

		OnMessageCreate: onMessage,
	}
}

func onMessage(ctx *mod.MessageContext) error {
	if ctx.Args == nil {
		return nil
	}
	m := ctx.Event
	if m.GuildID == "" {
		return ctx.Reply("Pruning only works in guild channels.")
	}
	if !ctx.AuthorIsAdmin() {
		return ctx.Reply("You need administrator rights to prune messages.")
	}
	if !ctx.BotHasPermission(discordgo.PermissionManageMessages) {
		return ctx.Reply("I lack the Manage Messages permission here.")
	}

	count := defaultCount
	if len(ctx.Args) > 0 {
		n, err := strconv.Atoi(ctx.Args[0])
		if err != nil || n < 1 {
			return ctx.Reply("Give me a number of messages to prune: `!prune 25`")
		}
		count = n
	}
	if count > maxCount {
		count = maxCount
	}

	msgs, err := ctx.Session.ChannelMessages(m.ChannelID, count, m.ID, "", "")
	if err != nil {
		return fmt.Errorf("fetch messages: %w", err)
	}

	// Bulk delete refuses messages older than two weeks.
	cutoff := time.Now().Add(-14 * 24 * time.Hour)
	ids := make([]string, 0, len(msgs))
	for _, msg := range msgs {
		if msg.Timestamp.Before(cutoff) {
			continue
		}
		ids = append(ids, msg.ID)
	}
	if len(ids) == 0 {
		return ctx.Reply("Nothing young enough to prune here.")
	}

	if err := ctx.Session.ChannelMessagesBulkDelete(m.ChannelID, ids); err != nil {
		return fmt.Errorf("bulk delete: %w", err)
	}
	return ctx.Replyf("🧹 Pruned %d messages.", len(ids))
}
