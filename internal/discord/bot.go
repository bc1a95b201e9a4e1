package discord

import (
	"context"
	"fmt"
	"sync"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"

	"github.com/keshon/modbot/internal/config"
	"github.com/keshon/modbot/internal/dispatch"
	"github.com/keshon/modbot/internal/mod"
	"github.com/keshon/modbot/internal/version"
)

// Bot hosts the gateway session and hands message events to the
// dispatcher.
type Bot struct {
	dg       *discordgo.Session
	cfg      *config.Config
	registry *mod.Registry
	dispatch *dispatch.Dispatcher
	log      zerolog.Logger
	initOnce sync.Once
}

// StartBot runs the Discord bot until ctx is cancelled.
func StartBot(ctx context.Context, cfg *config.Config, registry *mod.Registry, dispatcher *dispatch.Dispatcher, log zerolog.Logger) error {
	b := &Bot{
		cfg:      cfg,
		registry: registry,
		dispatch: dispatcher,
		log:      log,
	}
	if err := b.run(ctx); err != nil {
		return fmt.Errorf("bot run error: %w", err)
	}
	return nil
}

func (b *Bot) run(ctx context.Context) error {
	dg, err := discordgo.New("Bot " + b.cfg.DiscordToken)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	b.dg = dg

	b.configureIntents()
	// Keep enough messages cached for update and delete events to
	// carry their before copies.
	dg.State.MaxMessageCount = 500

	dg.AddHandler(b.onReady)
	dg.AddHandler(b.onMessageCreate)
	dg.AddHandler(b.onMessageUpdate)
	dg.AddHandler(b.onMessageDelete)

	if err := dg.Open(); err != nil {
		return fmt.Errorf("failed to open Discord session: %w", err)
	}
	defer dg.Close()

	<-ctx.Done()
	b.log.Info().Msg("shutdown signal received, closing gateway")
	return nil
}

// configureIntents applies the aggregated mod intents, unless the
// config overrides them wholesale.
func (b *Bot) configureIntents() {
	aggregated := b.registry.Intents()

	if b.cfg.Intents != 0 {
		override := discordgo.Intent(b.cfg.Intents)
		if aggregated != 0 && aggregated != override {
			b.log.Warn().
				Int64("override", int64(override)).
				Int64("aggregated", int64(aggregated)).
				Msg("intent override discards aggregated mod intents")
		}
		b.dg.Identify.Intents = override
		return
	}

	if aggregated == 0 {
		// No mod asked for anything, keep the library default.
		return
	}
	b.dg.Identify.Intents = aggregated
}

func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	b.log.Info().
		Str("app", version.AppName).
		Str("version", version.String()).
		Str("username", r.User.Username).
		Int("guilds", len(r.Guilds)).
		Int("mods", b.registry.Len()).
		Msg("bot is running")

	b.initOnce.Do(func() {
		b.dispatch.InitMods(s)
	})
}

func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.ID == s.State.User.ID {
		return
	}
	b.dispatch.MessageCreate(s, m)
}

func (b *Bot) onMessageUpdate(s *discordgo.Session, m *discordgo.MessageUpdate) {
	if m.Author != nil && m.Author.ID == s.State.User.ID {
		return
	}
	b.dispatch.MessageUpdate(s, m)
}

func (b *Bot) onMessageDelete(s *discordgo.Session, m *discordgo.MessageDelete) {
	b.dispatch.MessageDelete(s, m)
}
