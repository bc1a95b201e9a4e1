// /internal/mods/help/help.go
package help

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/keshon/modbot/internal/mod"
	"github.com/keshon/modbot/internal/version"
)

const embedColor = 0x5865f2

// New returns the help mod. It lists every loaded mod in the order
// the host registered them.
func New() *mod.Mod {
	return &mod.Mod{
		Name:        "help",
		Command:     "help",
		Aliases:     []string{"h", "mods"},
		Description: "List installed mods and their commands.",
		Intents:     discordgo.IntentGuildMessages | discordgo.IntentMessageContent,

		OnMessageCreate: onMessage,
	}
}

func onMessage(ctx *mod.MessageContext) error {
	if ctx.Args == nil {
		return nil
	}

	prefix := ctx.Config.CommandPrefix
	var sb strings.Builder
	for _, m := range ctx.Registry.Mods() {
		sb.WriteString("• ")
		if m.Command == "" {
			sb.WriteString(fmt.Sprintf("*%s*", m.Name))
		} else {
			sb.WriteString(fmt.Sprintf("`%s%s`", prefix, m.Command))
			for _, alias := range m.Aliases {
				sb.WriteString(fmt.Sprintf(" `%s%s`", prefix, alias))
			}
		}
		if m.Description != "" {
			sb.WriteString(" · " + m.Description)
		}
		sb.WriteString("\n")
	}

	embed := &discordgo.MessageEmbed{
		Title:       "🧩 Installed mods",
		Description: sb.String(),
		Color:       embedColor,
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("%s %s", version.AppName, version.String()),
		},
	}
	return ctx.ReplyEmbed(embed)
}
