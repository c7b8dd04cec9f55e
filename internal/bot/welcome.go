package bot

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

func (b *Bot) onGuildMemberAdd(session *discordgo.Session, event *discordgo.GuildMemberAdd) {
	_ = session
	if event.GuildID != b.cfg.GuildID || event.User == nil {
		return
	}
	b.assignAutoRole(event.Member)
	b.sendWelcome(event.Member)
}

func (b *Bot) assignAutoRole(member *discordgo.Member) {
	if b.cfg.AutoRoleID == "" {
		return
	}
	if hasRole(member, b.cfg.AutoRoleID) {
		return
	}
	if err := b.session.GuildMemberRoleAdd(member.GuildID, member.User.ID, b.cfg.AutoRoleID); err != nil {
		b.logger.Error("autorole assignment failed",
			zap.String("user_id", member.User.ID),
			zap.String("role_id", b.cfg.AutoRoleID),
			zap.Error(err))
		return
	}
	b.logger.Info("autorole assigned", zap.String("user_id", member.User.ID))
}

func (b *Bot) sendWelcome(member *discordgo.Member) {
	if b.cfg.WelcomeChannelID == "" {
		return
	}
	channel, err := b.session.Channel(b.cfg.WelcomeChannelID)
	if err != nil || channel == nil || channel.Type != discordgo.ChannelTypeGuildText {
		b.logger.Warn("welcome channel not usable", zap.String("channel_id", b.cfg.WelcomeChannelID), zap.Error(err))
		return
	}

	memberCount := 0
	guildName := ""
	if guild, err := b.guild(member.GuildID); err == nil {
		memberCount = guild.MemberCount
		guildName = guild.Name
	}

	embed := &discordgo.MessageEmbed{
		Title: "Welcome to the server!",
		Description: fmt.Sprintf("%s, we're excited to have you here!\nYou are the %s member in this community (#%d).",
			member.Mention(), ordinal(memberCount), memberCount),
		Color:     0x5865F2,
		Thumbnail: &discordgo.MessageEmbedThumbnail{URL: member.User.AvatarURL("")},
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Getting started", Value: "Check out the info channels and say hi to everyone!"},
		},
		Footer: &discordgo.MessageEmbedFooter{Text: guildName},
	}
	if _, err := b.session.ChannelMessageSendEmbed(channel.ID, embed); err != nil {
		b.logger.Error("welcome message failed", zap.String("user_id", member.User.ID), zap.Error(err))
		return
	}
	b.logger.Info("welcome message sent", zap.String("user_id", member.User.ID), zap.String("channel_id", channel.ID))
}

func ordinal(value int) string {
	if v := value % 100; v >= 10 && v <= 20 {
		return fmt.Sprintf("%dth", value)
	}
	switch value % 10 {
	case 1:
		return fmt.Sprintf("%dst", value)
	case 2:
		return fmt.Sprintf("%dnd", value)
	case 3:
		return fmt.Sprintf("%drd", value)
	default:
		return fmt.Sprintf("%dth", value)
	}
}
