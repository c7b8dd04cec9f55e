package bot

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"modguard/internal/moderation"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

const noReason = "No reason provided."

func (b *Bot) onInteractionCreate(session *discordgo.Session, interaction *discordgo.InteractionCreate) {
	_ = session
	switch interaction.Type {
	case discordgo.InteractionApplicationCommand:
		b.handleCommand(interaction)
	case discordgo.InteractionMessageComponent:
		b.handleComponent(interaction)
	case discordgo.InteractionModalSubmit:
		b.handleModalSubmit(interaction)
	}
}

func (b *Bot) handleCommand(interaction *discordgo.InteractionCreate) {
	if interaction.GuildID == "" || interaction.GuildID != b.cfg.GuildID {
		b.respondText(interaction, "This command can only be used inside the configured guild.", true)
		return
	}
	if interaction.Member == nil || interaction.Member.User == nil {
		b.respondText(interaction, "This command can only be used inside the guild.", true)
		return
	}

	data := interaction.ApplicationCommandData()
	switch data.Name {
	case "warn":
		b.handleWarn(interaction, data)
	case "warnings":
		b.handleWarnings(interaction, data)
	case "mute":
		b.handleMute(interaction, data)
	case "kick":
		b.handleKick(interaction, data)
	case "ban":
		b.handleBan(interaction, data)
	case "autorole_refresh":
		b.handleAutoroleRefresh(interaction)
	}
}

// actionableTarget resolves the target member of a moderation command and
// runs the hierarchy guard against the acting member. A nil return means the
// interaction has already been answered.
func (b *Bot) actionableTarget(interaction *discordgo.InteractionCreate, data discordgo.ApplicationCommandInteractionData) *discordgo.Member {
	guild, err := b.guild(interaction.GuildID)
	if err != nil {
		b.logger.Error("guild resolution failed", zap.String("guild_id", interaction.GuildID), zap.Error(err))
		b.respondText(interaction, "The bot is not configured correctly for this server.", true)
		return nil
	}

	targetUser := optionUser(b.session, data.Options, "member")
	if targetUser == nil {
		b.respondText(interaction, "You must specify a member.", true)
		return nil
	}
	target, err := b.member(interaction.GuildID, targetUser.ID)
	if err != nil {
		b.logger.Error("member resolution failed", zap.String("user_id", targetUser.ID), zap.Error(err))
		b.respondText(interaction, "That member could not be resolved.", true)
		return nil
	}

	if err := moderation.AssertActionable(guild, interaction.Member, target); err != nil {
		b.respondText(interaction, actionabilityMessage(err), true)
		return nil
	}
	return target
}

func (b *Bot) handleWarn(interaction *discordgo.InteractionCreate, data discordgo.ApplicationCommandInteractionData) {
	target := b.actionableTarget(interaction, data)
	if target == nil {
		return
	}
	reason := optionString(data.Options, "reason")
	if reason == "" {
		reason = noReason
	}

	actorID, _ := strconv.ParseInt(interaction.Member.User.ID, 10, 64)
	count, err := b.ledger.Record(interaction.GuildID, target.User.ID, actorID, reason)
	if err != nil {
		b.logger.Error("warning snapshot write failed", zap.String("user_id", target.User.ID), zap.Error(err))
	}
	b.respondText(interaction, fmt.Sprintf("%s has been warned (warning #%d). Reason: %s", target.Mention(), count, reason), true)
}

func (b *Bot) handleWarnings(interaction *discordgo.InteractionCreate, data discordgo.ApplicationCommandInteractionData) {
	targetUser := optionUser(b.session, data.Options, "member")
	if targetUser == nil {
		b.respondText(interaction, "You must specify a member.", true)
		return
	}

	records := b.ledger.List(interaction.GuildID, targetUser.ID)
	if len(records) == 0 {
		b.respondText(interaction, fmt.Sprintf("<@%s> has no warnings on record.", targetUser.ID), true)
		return
	}

	embed := &discordgo.MessageEmbed{
		Title:       "Warnings for " + targetUser.Username,
		Description: fmt.Sprintf("%d warning(s) on file.", len(records)),
		Color:       0xE67E22,
	}
	start := 0
	if len(records) > 5 {
		start = len(records) - 5
	}
	for _, record := range records[start:] {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  record.Timestamp.UTC().Format(time.RFC3339),
			Value: fmt.Sprintf("<@%d>: %s", record.ModeratorID, record.Reason),
		})
	}
	b.respondEmbed(interaction, embed, true)
}

func (b *Bot) handleMute(interaction *discordgo.InteractionCreate, data discordgo.ApplicationCommandInteractionData) {
	target := b.actionableTarget(interaction, data)
	if target == nil {
		return
	}

	input := optionString(data.Options, "duration")
	duration, err := moderation.ParseDuration(input)
	if err != nil {
		b.respondText(interaction, durationMessage(err), true)
		return
	}
	reason := optionString(data.Options, "reason")
	if reason == "" {
		reason = noReason
	}

	until := time.Now().Add(duration)
	if err := b.session.GuildMemberTimeout(interaction.GuildID, target.User.ID, &until); err != nil {
		b.logger.Error("timeout failed", zap.String("user_id", target.User.ID), zap.Error(err))
		b.respondText(interaction, "Could not mute that member.", true)
		return
	}
	b.respondText(interaction, fmt.Sprintf("%s has been muted for %s. Reason: %s", target.Mention(), input, reason), false)
}

func (b *Bot) handleKick(interaction *discordgo.InteractionCreate, data discordgo.ApplicationCommandInteractionData) {
	target := b.actionableTarget(interaction, data)
	if target == nil {
		return
	}
	reason := optionString(data.Options, "reason")
	if reason == "" {
		reason = noReason
	}

	auditReason := interaction.Member.User.Username + " - " + reason
	if err := b.session.GuildMemberDeleteWithReason(interaction.GuildID, target.User.ID, auditReason); err != nil {
		b.logger.Error("kick failed", zap.String("user_id", target.User.ID), zap.Error(err))
		b.respondText(interaction, "Could not kick that member.", true)
		return
	}
	b.respondText(interaction, fmt.Sprintf("%s has been kicked. Reason: %s", target.Mention(), reason), false)
}

func (b *Bot) handleBan(interaction *discordgo.InteractionCreate, data discordgo.ApplicationCommandInteractionData) {
	target := b.actionableTarget(interaction, data)
	if target == nil {
		return
	}
	reason := optionString(data.Options, "reason")
	if reason == "" {
		reason = noReason
	}

	auditReason := interaction.Member.User.Username + " - " + reason
	if err := b.session.GuildBanCreateWithReason(interaction.GuildID, target.User.ID, auditReason, 0); err != nil {
		b.logger.Error("ban failed", zap.String("user_id", target.User.ID), zap.Error(err))
		b.respondText(interaction, "Could not ban that member.", true)
		return
	}
	b.respondText(interaction, fmt.Sprintf("%s has been banned. Reason: %s", target.Mention(), reason), false)
}

func (b *Bot) handleAutoroleRefresh(interaction *discordgo.InteractionCreate) {
	if b.cfg.AutoRoleID == "" {
		b.respondText(interaction, "The autorole is not configured correctly.", true)
		return
	}
	b.deferEphemeral(interaction)

	updated := 0
	after := ""
	for {
		members, err := b.session.GuildMembers(interaction.GuildID, after, 1000)
		if err != nil {
			b.logger.Error("member listing failed", zap.String("guild_id", interaction.GuildID), zap.Error(err))
			break
		}
		if len(members) == 0 {
			break
		}
		for _, member := range members {
			if member.User == nil || hasRole(member, b.cfg.AutoRoleID) {
				continue
			}
			if err := b.session.GuildMemberRoleAdd(interaction.GuildID, member.User.ID, b.cfg.AutoRoleID); err != nil {
				b.logger.Error("autorole refresh add failed", zap.String("user_id", member.User.ID), zap.Error(err))
				continue
			}
			updated++
		}
		after = members[len(members)-1].User.ID
		if len(members) < 1000 {
			break
		}
	}

	b.followupText(interaction, fmt.Sprintf("Autorole applied to %d member(s).", updated))
}

func actionabilityMessage(err error) string {
	switch {
	case errors.Is(err, moderation.ErrSelfTarget):
		return "You cannot target yourself."
	case errors.Is(err, moderation.ErrOwnerTarget):
		return "You cannot target the server owner."
	case errors.Is(err, moderation.ErrHierarchy):
		return "You cannot target someone with an equal or higher role."
	}
	return "You cannot target this member."
}

func durationMessage(err error) string {
	if errors.Is(err, moderation.ErrNoDuration) {
		return "Invalid duration. Use formats like 30m, 2h, or 1h30m (s/m/h/d)."
	}
	return "Duration must be between 1 second and 28 days."
}

func optionString(options []*discordgo.ApplicationCommandInteractionDataOption, name string) string {
	for _, option := range options {
		if option.Name == name {
			return option.StringValue()
		}
	}
	return ""
}

func optionUser(session *discordgo.Session, options []*discordgo.ApplicationCommandInteractionDataOption, name string) *discordgo.User {
	for _, option := range options {
		if option.Name == name {
			return option.UserValue(session)
		}
	}
	return nil
}

func hasRole(member *discordgo.Member, roleID string) bool {
	for _, id := range member.Roles {
		if id == roleID {
			return true
		}
	}
	return false
}

func (b *Bot) respondText(interaction *discordgo.InteractionCreate, content string, ephemeral bool) {
	data := &discordgo.InteractionResponseData{Content: content}
	if ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	if err := b.session.InteractionRespond(interaction.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	}); err != nil {
		b.logger.Warn("interaction respond failed", zap.Error(err))
	}
}

func (b *Bot) respondEmbed(interaction *discordgo.InteractionCreate, embed *discordgo.MessageEmbed, ephemeral bool) {
	data := &discordgo.InteractionResponseData{Embeds: []*discordgo.MessageEmbed{embed}}
	if ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	if err := b.session.InteractionRespond(interaction.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	}); err != nil {
		b.logger.Warn("interaction respond failed", zap.Error(err))
	}
}

func (b *Bot) deferEphemeral(interaction *discordgo.InteractionCreate) {
	if err := b.session.InteractionRespond(interaction.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Flags: discordgo.MessageFlagsEphemeral},
	}); err != nil {
		b.logger.Warn("interaction defer failed", zap.Error(err))
	}
}

func (b *Bot) followupText(interaction *discordgo.InteractionCreate, content string) {
	if _, err := b.session.FollowupMessageCreate(interaction.Interaction, true, &discordgo.WebhookParams{
		Content: content,
		Flags:   discordgo.MessageFlagsEphemeral,
	}); err != nil {
		b.logger.Warn("interaction followup failed", zap.Error(err))
	}
}
