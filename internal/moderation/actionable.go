package moderation

import (
	"errors"

	"github.com/bwmarrin/discordgo"
)

var (
	ErrSelfTarget  = errors.New("actor cannot target themselves")
	ErrOwnerTarget = errors.New("the guild owner cannot be targeted")
	ErrHierarchy   = errors.New("target role is equal or higher than the actor role")
)

// AssertActionable checks whether actor may apply a moderation action to
// target inside guild. The owner may act on anyone but themselves; everyone
// else needs a strictly higher top role than the target. Ties are not
// actionable.
func AssertActionable(guild *discordgo.Guild, actor, target *discordgo.Member) error {
	if actor.User.ID == target.User.ID {
		return ErrSelfTarget
	}
	if target.User.ID == guild.OwnerID {
		return ErrOwnerTarget
	}
	if actor.User.ID == guild.OwnerID {
		return nil
	}
	if topRolePosition(guild, target) >= topRolePosition(guild, actor) {
		return ErrHierarchy
	}
	return nil
}

// topRolePosition is the highest role position held by member. Members with
// no explicit roles sit at the everyone position, zero.
func topRolePosition(guild *discordgo.Guild, member *discordgo.Member) int {
	position := 0
	for _, roleID := range member.Roles {
		for _, role := range guild.Roles {
			if role.ID == roleID && role.Position > position {
				position = role.Position
			}
		}
	}
	return position
}
