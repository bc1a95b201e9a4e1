// /internal/mods/roll/roll.go
package roll

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/keshon/modbot/internal/mod"
)

const embedColor = 0x00cc99

// New returns the dice roller mod.
func New() *mod.Mod {
	return &mod.Mod{
		Name:        "roll",
		Command:     "roll",
		Aliases:     []string{"dice"},
		Description: "Roll dice: `!roll 2d6+3`, `!roll d20`.",
		Intents:     discordgo.IntentGuildMessages | discordgo.IntentMessageContent,

		OnMessageCreate: onMessage,
	}
}

func onMessage(ctx *mod.MessageContext) error {
	if ctx.Args == nil {
		return nil
	}

	formula := strings.Join(ctx.Args, "")
	if formula == "" {
		formula = "d6"
	}

	total, breakdown, err := evalFormula(formula)
	if err != nil {
		return ctx.Replyf("🎲 %s", err)
	}

	embed := &discordgo.MessageEmbed{
		Title:       "🎲 Dice Roll",
		Description: fmt.Sprintf("%s\n**Total: %d**", breakdown, total),
		Color:       embedColor,
	}
	return ctx.ReplyEmbed(embed)
}
