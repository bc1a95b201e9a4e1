// /internal/mods/modlog/modlog.go
package modlog

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/keshon/modbot/internal/mod"
	"github.com/keshon/modbot/internal/storage"
)

const defaultCount = 10

// New returns the modlog mod. It listens to every edit and deletion
// and keeps a per guild audit trail readable via `!modlog`.
func New() *mod.Mod {
	return &mod.Mod{
		Name:        "modlog",
		Command:     "modlog",
		Description: "Audit trail of edits and deletions: `!modlog [count]`.",
		Intents:     discordgo.IntentGuildMessages | discordgo.IntentMessageContent,

		OnMessageCreate: onMessage,
		OnMessageUpdate: onUpdate,
		OnMessageDelete: onDelete,
	}
}

func onUpdate(ctx *mod.UpdateContext) error {
	m := ctx.Event
	if m.GuildID == "" {
		return nil
	}

	entry := storage.ModLogEntry{
		Action:    "edit",
		ChannelID: m.ChannelID,
		MessageID: m.ID,
		After:     m.Content,
		Datetime:  time.Now(),
	}
	if m.Author != nil {
		entry.AuthorID = m.Author.ID
		entry.AuthorName = m.Author.Username
	}
	if ctx.Before != nil {
		entry.Before = ctx.Before.Content
		if entry.AuthorID == "" && ctx.Before.Author != nil {
			entry.AuthorID = ctx.Before.Author.ID
			entry.AuthorName = ctx.Before.Author.Username
		}
	}
	// Embed unfurls and pins arrive as edits with unchanged text.
	if entry.Before == entry.After {
		return nil
	}
	return ctx.Storage.AppendModLog(m.GuildID, entry)
}

func onDelete(ctx *mod.DeleteContext) error {
	m := ctx.Event
	if m.GuildID == "" {
		return nil
	}

	entry := storage.ModLogEntry{
		Action:    "delete",
		ChannelID: m.ChannelID,
		MessageID: m.ID,
		Datetime:  time.Now(),
	}
	if ctx.Before != nil {
		entry.Before = ctx.Before.Content
		if ctx.Before.Author != nil {
			entry.AuthorID = ctx.Before.Author.ID
			entry.AuthorName = ctx.Before.Author.Username
		}
	}
	return ctx.Storage.AppendModLog(m.GuildID, entry)
}

func onMessage(ctx *mod.MessageContext) error {
	if ctx.Args == nil {
		return nil
	}
	m := ctx.Event
	if m.GuildID == "" {
		return ctx.Reply("The audit trail is guild only.")
	}
	if !ctx.AuthorIsAdmin() {
		return ctx.Reply("You need administrator rights to read the audit trail.")
	}

	count := defaultCount
	if len(ctx.Args) > 0 {
		if n, err := strconv.Atoi(ctx.Args[0]); err == nil && n > 0 {
			count = n
		}
	}

	entries, err := ctx.Storage.FetchModLog(m.GuildID, count)
	if err != nil {
		return fmt.Errorf("fetch audit trail: %w", err)
	}
	if len(entries) == 0 {
		return ctx.Reply("The audit trail is empty.")
	}

	var sb strings.Builder
	sb.WriteString("**Recent edits and deletions**\n")
	for _, e := range entries {
		sb.WriteString(formatEntry(e))
		sb.WriteString("\n")
	}
	return ctx.Reply(sb.String())
}

func formatEntry(e storage.ModLogEntry) string {
	who := e.AuthorName
	if who == "" {
		who = "someone"
	}
	switch e.Action {
	case "edit":
		return fmt.Sprintf("✏️ <t:%d:R> %s: %s then %s in <#%s>",
			e.Datetime.Unix(), who, clip(e.Before), clip(e.After), e.ChannelID)
	case "delete":
		if e.Before == "" {
			return fmt.Sprintf("🗑️ <t:%d:R> a message vanished in <#%s>", e.Datetime.Unix(), e.ChannelID)
		}
		return fmt.Sprintf("🗑️ <t:%d:R> %s: %s deleted in <#%s>",
			e.Datetime.Unix(), who, clip(e.Before), e.ChannelID)
	default:
		return fmt.Sprintf("<t:%d:R> %s in <#%s>", e.Datetime.Unix(), who, e.ChannelID)
	}
}

// clip keeps log lines short enough for one Discord message.
func clip(s string) string {
	const limit = 80
	s = strings.ReplaceAll(s, "\n", " ")
	if s == "" {
		return "(empty)"
	}
	if r := []rune(s); len(r) > limit {
		return fmt.Sprintf("%q", string(r[:limit])+"…")
	}
	return fmt.Sprintf("%q", s)
}
