// /internal/mods/vote/vote.go
package vote

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"

	"github.com/keshon/modbot/internal/mod"
	"github.com/keshon/modbot/internal/storage"
	"github.com/keshon/modbot/pkg/jobmgr"
)

const (
	voteDuration = time.Minute
	yesEmoji     = "👍"
	noEmoji      = "👎"
)

type voteMod struct {
	jobs *jobmgr.Manager
}

// New returns the vote mod. One vote runs per channel at a time; the
// jobmgr name doubles as the channel lock.
func New() *mod.Mod {
	v := &voteMod{
		jobs: jobmgr.NewManager(func(msg string) {
			if strings.HasPrefix(msg, "error:") {
				log.Error().Str("job", msg).Msg("vote timer")
			} else {
				log.Debug().Str("job", msg).Msg("vote timer")
			}
		}),
	}
	return &mod.Mod{
		Name:        "vote",
		Command:     "vote",
		Aliases:     []string{"poll"},
		Description: "Run a one minute yes/no vote: `!vote pizza tonight?`, `!vote history`.",
		Intents: discordgo.IntentGuildMessages | discordgo.IntentMessageContent |
			discordgo.IntentGuildMessageReactions,

		OnMessageCreate: v.onMessage,
	}
}

func (v *voteMod) onMessage(ctx *mod.MessageContext) error {
	if ctx.Args == nil {
		return nil
	}
	m := ctx.Event
	if m.GuildID == "" {
		return ctx.Reply("Votes only run in guild channels.")
	}
	if len(ctx.Args) > 0 && strings.EqualFold(ctx.Args[0], "history") {
		return listHistory(ctx)
	}

	question := strings.TrimSpace(strings.Join(ctx.Args, " "))
	if question == "" {
		return ctx.Reply("Give the vote a question: `!vote pizza tonight?`")
	}

	jobName := "vote:" + m.ChannelID
	if v.jobs.Running(jobName) {
		return ctx.Reply("A vote is already running in this channel.")
	}

	poll, err := ctx.Session.ChannelMessageSend(m.ChannelID,
		fmt.Sprintf("🗳️ **%s**\nVote with %s or %s. Closing in %s.", question, yesEmoji, noEmoji, voteDuration))
	if err != nil {
		return fmt.Errorf("post vote: %w", err)
	}
	// Seed both options so voters only have to click.
	_ = ctx.Session.MessageReactionAdd(m.ChannelID, poll.ID, yesEmoji)
	_ = ctx.Session.MessageReactionAdd(m.ChannelID, poll.ID, noEmoji)

	session := ctx.Session
	st := ctx.Storage
	guildID, channelID, starter := m.GuildID, m.ChannelID, m.Author.ID
	err = v.jobs.StartAsync(jobName, func(jobCtx context.Context) error {
		select {
		case <-jobCtx.Done():
			return jobCtx.Err()
		case <-time.After(voteDuration):
		}
		return closeVote(session, st, guildID, channelID, poll.ID, question, starter)
	})
	if err != nil {
		return ctx.Reply("A vote is already running in this channel.")
	}
	return nil
}

// closeVote tallies the reactions on the poll message and posts the
// verdict. Runs on the job goroutine, not the dispatch path.
func closeVote(s *discordgo.Session, st *storage.Storage, guildID, channelID, messageID, question, starter string) error {
	msg, err := s.ChannelMessage(channelID, messageID)
	if err != nil {
		return fmt.Errorf("fetch vote message: %w", err)
	}

	yes, no := 0, 0
	for _, r := range msg.Reactions {
		if r.Emoji == nil {
			continue
		}
		switch r.Emoji.Name {
		case yesEmoji:
			// Discount the seed reaction.
			yes = r.Count - 1
		case noEmoji:
			no = r.Count - 1
		}
	}
	if yes < 0 {
		yes = 0
	}
	if no < 0 {
		no = 0
	}

	verdict := "It's a tie."
	switch {
	case yes > no:
		verdict = "The ayes have it."
	case no > yes:
		verdict = "The nays have it."
	}
	if _, err := s.ChannelMessageSend(channelID,
		fmt.Sprintf("🗳️ **%s**\n%s %d · %s %d. %s", question, yesEmoji, yes, noEmoji, no, verdict)); err != nil {
		return fmt.Errorf("post verdict: %w", err)
	}

	return st.AppendVote(guildID, storage.VoteRecord{
		Question:  question,
		ChannelID: channelID,
		StartedBy: starter,
		Yes:       yes,
		No:        no,
		Datetime:  time.Now(),
	})
}

func listHistory(ctx *mod.MessageContext) error {
	votes, err := ctx.Storage.FetchVotes(ctx.Event.GuildID)
	if err != nil {
		return fmt.Errorf("fetch vote history: %w", err)
	}
	if len(votes) == 0 {
		return ctx.Reply("No votes have finished here yet.")
	}

	var sb strings.Builder
	sb.WriteString("**Past votes**\n")
	for i := len(votes) - 1; i >= 0; i-- {
		v := votes[i]
		sb.WriteString(fmt.Sprintf("• %s: %s %d · %s %d <t:%d:R>\n",
			v.Question, yesEmoji, v.Yes, noEmoji, v.No, v.Datetime.Unix()))
	}
	return ctx.Reply(sb.String())
}
