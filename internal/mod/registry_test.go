package mod

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterClaimsAliasesAndCommand(t *testing.T) {
	r := NewRegistry()
	m := &Mod{Name: "mute", Command: "mute", Aliases: []string{"m"}}
	r.Register(m)

	for _, keyword := range []string{"mute", "m", "MUTE", "M", " mute "} {
		got, ok := r.Resolve(keyword)
		require.True(t, ok, "keyword %q should resolve", keyword)
		assert.Same(t, m, got)
	}

	_, ok := r.Resolve("unmute")
	assert.False(t, ok)
}

func TestRegisterFirstClaimWins(t *testing.T) {
	r := NewRegistry()
	a := &Mod{Name: "a", Command: "alpha", Aliases: []string{"x"}}
	b := &Mod{Name: "b", Command: "x"}
	r.Register(a)
	r.Register(b)

	got, ok := r.Resolve("x")
	require.True(t, ok)
	assert.Same(t, a, got, "alias claimed earlier keeps the keyword")

	// The loser still takes part in fan-out.
	assert.Equal(t, []*Mod{a, b}, r.Mods())
}

func TestRegisterAliasBeforePrimaryWithinOneMod(t *testing.T) {
	r := NewRegistry()
	a := &Mod{Name: "a", Command: "shared"}
	b := &Mod{Name: "b", Command: "beta", Aliases: []string{"shared", "b"}}
	r.Register(a)
	r.Register(b)

	got, ok := r.Resolve("shared")
	require.True(t, ok)
	assert.Same(t, a, got)

	got, ok = r.Resolve("b")
	require.True(t, ok)
	assert.Same(t, b, got)
}

func TestRegisterSkipsDisabledEntirely(t *testing.T) {
	r := NewRegistry()
	off := &Mod{
		Name:     "off",
		Command:  "off",
		Aliases:  []string{"o"},
		Intents:  discordgo.IntentGuildMembers,
		Disabled: true,
	}
	on := &Mod{Name: "on", Command: "on", Intents: discordgo.IntentGuildMessages}
	r.Register(off)
	r.Register(on)

	_, ok := r.Resolve("off")
	assert.False(t, ok)
	_, ok = r.Resolve("o")
	assert.False(t, ok)
	assert.Equal(t, []*Mod{on}, r.Mods())
	assert.Equal(t, discordgo.IntentGuildMessages, r.Intents())
}

func TestRegisterIsIdempotent(t *testing.T) {
	r := NewRegistry()
	m := &Mod{Name: "ping", Command: "ping"}
	r.Register(m)
	r.Register(m)
	r.Register(m)

	assert.Equal(t, 1, r.Len())
	assert.Equal(t, []*Mod{m}, r.Mods())
}

func TestRegisterPureListenerClaimsNothing(t *testing.T) {
	r := NewRegistry()
	listener := &Mod{Name: "listener", Aliases: []string{"", "   "}}
	r.Register(listener)

	assert.Equal(t, 1, r.Len())
	_, ok := r.Resolve("")
	assert.False(t, ok)
	_, ok = r.Resolve("listener")
	assert.False(t, ok, "name alone claims no keyword")
}

func TestModsKeepRegistrationOrder(t *testing.T) {
	r := NewRegistry()
	first := &Mod{Name: "first", Command: "one"}
	second := &Mod{Name: "second", Command: "two"}
	third := &Mod{Name: "third"}
	r.Register(first)
	r.Register(second)
	r.Register(third)

	assert.Equal(t, []*Mod{first, second, third}, r.Mods())
}

func TestIntentsUnion(t *testing.T) {
	r := NewRegistry()
	r.Register(&Mod{Name: "a", Command: "a", Intents: discordgo.IntentGuildMessages})
	r.Register(&Mod{Name: "b", Command: "b", Intents: discordgo.IntentGuildMessages | discordgo.IntentGuildMessageReactions})
	r.Register(&Mod{Name: "c", Command: "c"})

	want := discordgo.IntentGuildMessages | discordgo.IntentGuildMessageReactions
	assert.Equal(t, want, r.Intents())
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Mute", "mute"},
		{"  ROLL  ", "roll"},
		{"m", "m"},
		{"   ", ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Normalize(tt.in), "Normalize(%q)", tt.in)
	}
}
