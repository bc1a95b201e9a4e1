// /internal/mod/common.go
package mod

import (
	"fmt"
	"regexp"

	"github.com/bwmarrin/discordgo"
)

var userMentionPattern = regexp.MustCompile(`^(?:<@!?)?(\d{5,})>?$`)

// ParseUserID extracts a user ID from a raw mention or snowflake
// token. Empty when the token is neither.
func ParseUserID(token string) string {
	m := userMentionPattern.FindStringSubmatch(token)
	if m == nil {
		return ""
	}
	return m[1]
}

// Reply sends plain text to the channel the message came from.
func (c *MessageContext) Reply(content string) error {
	_, err := c.Session.ChannelMessageSend(c.Event.ChannelID, content)
	return err
}

func (c *MessageContext) Replyf(format string, args ...any) error {
	return c.Reply(fmt.Sprintf(format, args...))
}

// ReplyEmbed sends an embed to the channel the message came from.
func (c *MessageContext) ReplyEmbed(embed *discordgo.MessageEmbed) error {
	_, err := c.Session.ChannelMessageSendEmbed(c.Event.ChannelID, embed)
	return err
}

// AuthorIsAdmin reports whether the message author is a guild
// administrator, the guild owner, or the configured developer.
func (c *MessageContext) AuthorIsAdmin() bool {
	m := c.Event
	if m.Author == nil {
		return false
	}
	if c.Config != nil && c.Config.DeveloperID != "" && m.Author.ID == c.Config.DeveloperID {
		return true
	}
	if m.GuildID == "" {
		return false
	}

	guild, err := c.Session.State.Guild(m.GuildID)
	if err != nil || guild == nil {
		guild, err = c.Session.Guild(m.GuildID)
		if err != nil || guild == nil {
			return false
		}
	}
	if m.Author.ID == guild.OwnerID {
		return true
	}

	if m.Member == nil {
		return false
	}
	for _, r := range m.Member.Roles {
		role, _ := c.Session.State.Role(m.GuildID, r)
		if role != nil && role.Permissions&discordgo.PermissionAdministrator != 0 {
			return true
		}
	}
	return false
}

// BotHasPermission reports whether the bot holds a permission in the
// message channel.
func (c *MessageContext) BotHasPermission(permission int64) bool {
	perms, err := c.Session.UserChannelPermissions(c.Session.State.User.ID, c.Event.ChannelID)
	if err != nil {
		return false
	}
	return perms&permission != 0
}
