// /internal/dispatch/dispatcher.go

// Package dispatch routes gateway message events to mods: commands go
// to the single mod owning the keyword, everything else fans out to
// every interested mod in registration order.
package dispatch

import (
	"runtime/debug"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"

	"github.com/keshon/modbot/internal/config"
	"github.com/keshon/modbot/internal/mod"
	"github.com/keshon/modbot/internal/storage"
	"github.com/keshon/modbot/pkg/cooldown"
)

// Dispatcher owns message routing and keeps mod failures contained.
type Dispatcher struct {
	registry *mod.Registry
	storage  *storage.Storage
	cfg      *config.Config
	log      zerolog.Logger
	gate     *cooldown.Gate
}

func New(registry *mod.Registry, st *storage.Storage, cfg *config.Config, log zerolog.Logger) *Dispatcher {
	d := &Dispatcher{
		registry: registry,
		storage:  st,
		cfg:      cfg,
		log:      log,
	}
	if cfg.CommandCooldown > 0 {
		d.gate = cooldown.NewGate(cfg.CommandCooldown, 1)
	}
	return d
}

// Close releases the cooldown gate, when one is running.
func (d *Dispatcher) Close() {
	if d.gate != nil {
		d.gate.Close()
	}
}

// InitMods runs every OnInit handler once the gateway session is up.
func (d *Dispatcher) InitMods(s *discordgo.Session) {
	for _, m := range d.registry.Mods() {
		if m.OnInit == nil {
			continue
		}
		ctx := &mod.InitContext{
			Session:  s,
			Config:   d.cfg,
			Storage:  d.storage,
			Registry: d.registry,
		}
		d.invoke(m, "init", func() error { return m.OnInit(ctx) })
	}
}

// MessageCreate routes a created message. A message carrying the
// command prefix and a claimed keyword goes to the owning mod alone,
// with the remaining tokens as args. Everything else, unknown commands
// included, fans out to every listener with nil args.
func (d *Dispatcher) MessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	target, args, ok := d.resolveCommand(m.Content)
	if !ok {
		d.fanoutCreate(s, m)
		return
	}

	if d.gate != nil && !d.gate.Allow(m.Author.ID) {
		d.log.Debug().
			Str("mod", target.Name).
			Str("user", m.Author.ID).
			Msg("command dropped by cooldown")
		return
	}

	if target.OnMessageCreate == nil {
		// The keyword is claimed, so the message stays consumed even
		// though its owner has no handler for it.
		return
	}

	ctx := &mod.MessageContext{
		Session:  s,
		Event:    m,
		Args:     args,
		Storage:  d.storage,
		Config:   d.cfg,
		Registry: d.registry,
	}
	d.invoke(target, "message_create", func() error { return target.OnMessageCreate(ctx) })
}

// resolveCommand maps message content to a registered mod and its
// args. ok is false when the message is not a resolvable command.
func (d *Dispatcher) resolveCommand(content string) (*mod.Mod, []string, bool) {
	if !strings.HasPrefix(content, d.cfg.CommandPrefix) {
		return nil, nil, false
	}
	tokens := strings.Fields(strings.TrimPrefix(content, d.cfg.CommandPrefix))
	if len(tokens) == 0 {
		return nil, nil, false
	}
	m, ok := d.registry.Resolve(tokens[0])
	if !ok {
		return nil, nil, false
	}
	return m, tokens[1:], true
}

func (d *Dispatcher) fanoutCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	for _, listener := range d.registry.Mods() {
		if listener.OnMessageCreate == nil {
			continue
		}
		ctx := &mod.MessageContext{
			Session:  s,
			Event:    m,
			Storage:  d.storage,
			Config:   d.cfg,
			Registry: d.registry,
		}
		d.invoke(listener, "message_create", func() error { return listener.OnMessageCreate(ctx) })
	}
}

// MessageUpdate fans an edit out to every mod with an update handler.
// Commands are not parsed on edits.
func (d *Dispatcher) MessageUpdate(s *discordgo.Session, m *discordgo.MessageUpdate) {
	words := strings.Fields(m.Content)
	for _, listener := range d.registry.Mods() {
		if listener.OnMessageUpdate == nil {
			continue
		}
		ctx := &mod.UpdateContext{
			Session: s,
			Event:   m,
			Before:  m.BeforeUpdate,
			Words:   words,
			Storage: d.storage,
		}
		d.invoke(listener, "message_update", func() error { return listener.OnMessageUpdate(ctx) })
	}
}

// MessageDelete fans a deletion out to every mod with a delete
// handler. Content tokens come from the cached copy when the state
// still holds one.
func (d *Dispatcher) MessageDelete(s *discordgo.Session, m *discordgo.MessageDelete) {
	var words []string
	if m.BeforeDelete != nil {
		words = strings.Fields(m.BeforeDelete.Content)
	}
	for _, listener := range d.registry.Mods() {
		if listener.OnMessageDelete == nil {
			continue
		}
		ctx := &mod.DeleteContext{
			Session: s,
			Event:   m,
			Before:  m.BeforeDelete,
			Words:   words,
			Storage: d.storage,
		}
		d.invoke(listener, "message_delete", func() error { return listener.OnMessageDelete(ctx) })
	}
}

// invoke runs one handler with panics recovered and errors logged. A
// broken mod must not take the rest of the fan-out down with it.
func (d *Dispatcher) invoke(m *mod.Mod, event string, fn func() error) {
	defer func() {
		if r := recover(); r != nil {
			d.log.Error().
				Str("mod", m.Name).
				Str("event", event).
				Interface("panic", r).
				Str("stack", string(debug.Stack())).
				Msg("mod handler panicked")
		}
	}()

	if err := fn(); err != nil {
		d.log.Error().
			Str("mod", m.Name).
			Str("event", event).
			Err(err).
			Msg("mod handler failed")
	}
}
