package dispatch

import (
	"errors"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keshon/modbot/internal/config"
	"github.com/keshon/modbot/internal/mod"
)

func newDispatcher(t *testing.T, cfg *config.Config, mods ...*mod.Mod) *Dispatcher {
	t.Helper()
	reg := mod.NewRegistry()
	for _, m := range mods {
		reg.Register(m)
	}
	if cfg == nil {
		cfg = &config.Config{CommandPrefix: "!"}
	}
	d := New(reg, nil, cfg, zerolog.Nop())
	t.Cleanup(d.Close)
	return d
}

func message(content string) *discordgo.MessageCreate {
	return &discordgo.MessageCreate{
		Message: &discordgo.Message{
			ID:        "msg",
			ChannelID: "chan",
			GuildID:   "guild",
			Content:   content,
			Author:    &discordgo.User{ID: "user", Username: "someone"},
		},
	}
}

func TestCommandGoesToOwnerAlone(t *testing.T) {
	var calls []string
	var gotArgs []string

	mute := &mod.Mod{
		Name: "mute", Command: "mute", Aliases: []string{"m"},
		OnMessageCreate: func(ctx *mod.MessageContext) error {
			calls = append(calls, "mute")
			gotArgs = ctx.Args
			return nil
		},
	}
	seen := &mod.Mod{
		Name: "seen",
		OnMessageCreate: func(ctx *mod.MessageContext) error {
			calls = append(calls, "seen")
			return nil
		},
	}

	d := newDispatcher(t, nil, mute, seen)
	d.MessageCreate(nil, message("!m @user"))

	assert.Equal(t, []string{"mute"}, calls, "only the keyword owner runs")
	require.NotNil(t, gotArgs)
	assert.Equal(t, []string{"@user"}, gotArgs)
}

func TestPlainMessageFansOutInRegistrationOrder(t *testing.T) {
	var calls []string
	record := func(name string) *mod.Mod {
		return &mod.Mod{
			Name: name,
			OnMessageCreate: func(ctx *mod.MessageContext) error {
				calls = append(calls, name)
				assert.Nil(t, ctx.Args, "plain delivery carries nil args")
				return nil
			},
		}
	}

	d := newDispatcher(t, nil, record("first"), record("second"), record("third"))
	d.MessageCreate(nil, message("hello there"))

	assert.Equal(t, []string{"first", "second", "third"}, calls)
}

func TestUnknownCommandFallsBackToFanout(t *testing.T) {
	var plainArgs []string
	var called bool
	listener := &mod.Mod{
		Name: "seen",
		OnMessageCreate: func(ctx *mod.MessageContext) error {
			called = true
			plainArgs = ctx.Args
			return nil
		},
	}

	d := newDispatcher(t, nil, listener)
	d.MessageCreate(nil, message("!nosuchthing hi"))

	assert.True(t, called, "unknown command is treated as a plain message")
	assert.Nil(t, plainArgs)
}

func TestBarePrefixFallsBackToFanout(t *testing.T) {
	for _, content := range []string{"!", "!   "} {
		var called bool
		listener := &mod.Mod{
			Name: "seen",
			OnMessageCreate: func(ctx *mod.MessageContext) error {
				called = true
				return nil
			},
		}
		d := newDispatcher(t, nil, listener)
		d.MessageCreate(nil, message(content))
		assert.True(t, called, "content %q", content)
	}
}

func TestCommandKeywordCaseInsensitive(t *testing.T) {
	var called bool
	mute := &mod.Mod{
		Name: "mute", Command: "mute",
		OnMessageCreate: func(ctx *mod.MessageContext) error {
			called = true
			return nil
		},
	}

	d := newDispatcher(t, nil, mute)
	d.MessageCreate(nil, message("!MUTE @user"))

	assert.True(t, called)
}

func TestBareCommandArgsEmptyButNotNil(t *testing.T) {
	var gotArgs []string
	var invoked bool
	ping := &mod.Mod{
		Name: "ping", Command: "ping",
		OnMessageCreate: func(ctx *mod.MessageContext) error {
			invoked = true
			gotArgs = ctx.Args
			return nil
		},
	}

	d := newDispatcher(t, nil, ping)
	d.MessageCreate(nil, message("!ping"))

	require.True(t, invoked)
	assert.NotNil(t, gotArgs, "command delivery is distinguishable from plain delivery")
	assert.Empty(t, gotArgs)
}

func TestWhitespaceRunsCollapseInArgs(t *testing.T) {
	var gotArgs []string
	mute := &mod.Mod{
		Name: "mute", Command: "mute",
		OnMessageCreate: func(ctx *mod.MessageContext) error {
			gotArgs = ctx.Args
			return nil
		},
	}

	d := newDispatcher(t, nil, mute)
	d.MessageCreate(nil, message("!mute   @user \t 10m  "))

	assert.Equal(t, []string{"@user", "10m"}, gotArgs)
}

func TestClaimedKeywordWithoutHandlerConsumesMessage(t *testing.T) {
	ghost := &mod.Mod{Name: "ghost", Command: "ghost"}
	var called bool
	listener := &mod.Mod{
		Name: "seen",
		OnMessageCreate: func(ctx *mod.MessageContext) error {
			called = true
			return nil
		},
	}

	d := newDispatcher(t, nil, ghost, listener)
	d.MessageCreate(nil, message("!ghost"))

	assert.False(t, called, "a claimed keyword does not fall back to fan-out")
}

func TestFaultyModsDoNotBlockOthers(t *testing.T) {
	var calls []string
	panicky := &mod.Mod{
		Name: "panicky",
		OnMessageCreate: func(ctx *mod.MessageContext) error {
			calls = append(calls, "panicky")
			panic("kaboom")
		},
	}
	failing := &mod.Mod{
		Name: "failing",
		OnMessageCreate: func(ctx *mod.MessageContext) error {
			calls = append(calls, "failing")
			return errors.New("nope")
		},
	}
	healthy := &mod.Mod{
		Name: "healthy",
		OnMessageCreate: func(ctx *mod.MessageContext) error {
			calls = append(calls, "healthy")
			return nil
		},
	}

	d := newDispatcher(t, nil, panicky, failing, healthy)
	require.NotPanics(t, func() {
		d.MessageCreate(nil, message("hello"))
	})

	assert.Equal(t, []string{"panicky", "failing", "healthy"}, calls)
}

func TestPanickingCommandOwnerIsContained(t *testing.T) {
	boom := &mod.Mod{
		Name: "boom", Command: "boom",
		OnMessageCreate: func(ctx *mod.MessageContext) error {
			panic("kaboom")
		},
	}

	d := newDispatcher(t, nil, boom)
	require.NotPanics(t, func() {
		d.MessageCreate(nil, message("!boom"))
	})
}

func TestUpdateFanoutDeliversWordsAndBefore(t *testing.T) {
	var gotWords []string
	var gotBefore *discordgo.Message
	watcher := &mod.Mod{
		Name: "modlog",
		OnMessageUpdate: func(ctx *mod.UpdateContext) error {
			gotWords = ctx.Words
			gotBefore = ctx.Before
			return nil
		},
	}
	deaf := &mod.Mod{Name: "ping", Command: "ping"}

	before := &discordgo.Message{ID: "msg", Content: "old text"}
	event := &discordgo.MessageUpdate{
		Message: &discordgo.Message{
			ID:        "msg",
			ChannelID: "chan",
			Content:   "new text here",
			Author:    &discordgo.User{ID: "user"},
		},
		BeforeUpdate: before,
	}

	d := newDispatcher(t, nil, watcher, deaf)
	d.MessageUpdate(nil, event)

	assert.Equal(t, []string{"new", "text", "here"}, gotWords)
	assert.Same(t, before, gotBefore)
}

func TestDeleteFanoutUsesCachedContent(t *testing.T) {
	var gotWords []string
	watcher := &mod.Mod{
		Name: "modlog",
		OnMessageDelete: func(ctx *mod.DeleteContext) error {
			gotWords = ctx.Words
			return nil
		},
	}

	event := &discordgo.MessageDelete{
		Message:      &discordgo.Message{ID: "msg", ChannelID: "chan"},
		BeforeDelete: &discordgo.Message{ID: "msg", Content: "gone now"},
	}

	d := newDispatcher(t, nil, watcher)
	d.MessageDelete(nil, event)

	assert.Equal(t, []string{"gone", "now"}, gotWords)
}

func TestInitFanoutIsIsolated(t *testing.T) {
	var calls []string
	first := &mod.Mod{
		Name: "first",
		OnInit: func(ctx *mod.InitContext) error {
			calls = append(calls, "first")
			panic("bad start")
		},
	}
	second := &mod.Mod{
		Name: "second",
		OnInit: func(ctx *mod.InitContext) error {
			calls = append(calls, "second")
			return nil
		},
	}

	d := newDispatcher(t, nil, first, second)
	require.NotPanics(t, func() {
		d.InitMods(nil)
	})

	assert.Equal(t, []string{"first", "second"}, calls)
}

func TestCooldownDropsRapidCommands(t *testing.T) {
	var calls int
	ping := &mod.Mod{
		Name: "ping", Command: "ping",
		OnMessageCreate: func(ctx *mod.MessageContext) error {
			calls++
			return nil
		},
	}
	var plain int
	listener := &mod.Mod{
		Name: "seen",
		OnMessageCreate: func(ctx *mod.MessageContext) error {
			plain++
			return nil
		},
	}

	cfg := &config.Config{CommandPrefix: "!", CommandCooldown: time.Hour}
	d := newDispatcher(t, cfg, ping, listener)

	d.MessageCreate(nil, message("!ping"))
	d.MessageCreate(nil, message("!ping"))
	assert.Equal(t, 1, calls, "second command inside the window is dropped")

	d.MessageCreate(nil, message("just chatting"))
	assert.Equal(t, 1, plain, "plain messages bypass the command gate")
}
