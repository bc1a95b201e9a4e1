// /internal/mods/mute/mute.go
package mute

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/keshon/modbot/internal/mod"
	"github.com/keshon/modbot/internal/storage"
)

const (
	defaultDuration = 10 * time.Minute
	// Discord refuses timeouts past 28 days.
	maxDuration = 28 * 24 * time.Hour
)

// New returns the mute mod. It drives Discord's member timeout and
// keeps its own ledger of who is silenced and why.
func New() *mod.Mod {
	return &mod.Mod{
		Name:        "mute",
		Command:     "mute",
		Aliases:     []string{"m"},
		Description: "Time out a member: `!mute @user [duration] [reason]`, `!mute @user 0` lifts it, `!mute` lists.",
		Intents:     discordgo.IntentGuildMessages | discordgo.IntentMessageContent | discordgo.IntentGuildMembers,

		OnMessageCreate: onMessage,
	}
}

func onMessage(ctx *mod.MessageContext) error {
	if ctx.Args == nil {
		return nil
	}
	m := ctx.Event
	if m.GuildID == "" {
		return ctx.Reply("Mutes only work inside a guild.")
	}
	if !ctx.AuthorIsAdmin() {
		return ctx.Reply("You need administrator rights to mute people.")
	}
	if len(ctx.Args) == 0 {
		return listActive(ctx)
	}

	target := resolveTarget(ctx, ctx.Args[0])
	if target == nil {
		return ctx.Reply("Mention someone to mute: `!mute @user 10m being loud`")
	}

	duration := defaultDuration
	reasonStart := 1
	if len(ctx.Args) > 1 {
		if d, ok := parseDuration(ctx.Args[1]); ok {
			duration = d
			reasonStart = 2
		}
	}
	reason := strings.Join(ctx.Args[reasonStart:], " ")

	if duration <= 0 {
		return liftMute(ctx, target)
	}
	if duration > maxDuration {
		duration = maxDuration
	}

	until := time.Now().Add(duration)
	if err := ctx.Session.GuildMemberTimeout(m.GuildID, target.ID, &until); err != nil {
		return fmt.Errorf("timeout %s: %w", target.ID, err)
	}
	rec := storage.MuteRecord{
		UserID:   target.ID,
		Username: target.Username,
		MutedBy:  m.Author.ID,
		Reason:   reason,
		Until:    until,
		Datetime: time.Now(),
	}
	if err := ctx.Storage.SetMute(m.GuildID, rec); err != nil {
		return fmt.Errorf("record mute: %w", err)
	}

	if reason == "" {
		return ctx.Replyf("🔇 %s is muted until <t:%d:t>.", target.Username, until.Unix())
	}
	return ctx.Replyf("🔇 %s is muted until <t:%d:t> for %s.", target.Username, until.Unix(), reason)
}

func liftMute(ctx *mod.MessageContext, target *discordgo.User) error {
	if err := ctx.Session.GuildMemberTimeout(ctx.Event.GuildID, target.ID, nil); err != nil {
		return fmt.Errorf("lift timeout: %w", err)
	}
	if err := ctx.Storage.ClearMute(ctx.Event.GuildID, target.ID); err != nil {
		return fmt.Errorf("clear mute record: %w", err)
	}
	return ctx.Replyf("🔊 %s can speak again.", target.Username)
}

func listActive(ctx *mod.MessageContext) error {
	mutes, err := ctx.Storage.ActiveMutes(ctx.Event.GuildID)
	if err != nil {
		return fmt.Errorf("list mutes: %w", err)
	}
	if len(mutes) == 0 {
		return ctx.Reply("Nobody is muted right now.")
	}

	var sb strings.Builder
	sb.WriteString("**Active mutes**\n")
	for _, mu := range mutes {
		sb.WriteString(fmt.Sprintf("• %s until <t:%d:R>", mu.Username, mu.Until.Unix()))
		if mu.Reason != "" {
			sb.WriteString(" for " + mu.Reason)
		}
		sb.WriteString("\n")
	}
	return ctx.Reply(sb.String())
}

// resolveTarget picks the mentioned user, falling back to a raw ID
// looked up against the guild.
func resolveTarget(ctx *mod.MessageContext, arg string) *discordgo.User {
	if len(ctx.Event.Mentions) > 0 {
		return ctx.Event.Mentions[0]
	}
	id := mod.ParseUserID(arg)
	if id == "" {
		return nil
	}
	member, err := ctx.Session.GuildMember(ctx.Event.GuildID, id)
	if err != nil || member.User == nil {
		return nil
	}
	return member.User
}

// parseDuration accepts Go duration strings and bare minute counts.
// "0" lifts a mute.
func parseDuration(arg string) (time.Duration, bool) {
	if d, err := time.ParseDuration(arg); err == nil {
		return d, true
	}
	if n, err := strconv.Atoi(arg); err == nil {
		return time.Duration(n) * time.Minute, true
	}
	return 0, false
}
