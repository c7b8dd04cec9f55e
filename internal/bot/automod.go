package bot

import (
	"fmt"
	"strconv"
	"time"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

const removalNotice = "Your message was removed because it contained language that violates our guidelines."

func (b *Bot) onMessageCreate(session *discordgo.Session, msg *discordgo.MessageCreate) {
	if msg.Author == nil || msg.Author.Bot {
		return
	}
	if msg.GuildID == "" || msg.GuildID != b.cfg.GuildID {
		return
	}

	term, flagged := b.filter.Scan(msg.Content)
	if !flagged {
		return
	}

	// Deletion and the warning record are independent: the violation already
	// happened, so a failed delete does not block the warning.
	if err := session.ChannelMessageDelete(msg.ChannelID, msg.ID); err != nil {
		b.logger.Warn("failed to delete flagged message",
			zap.String("message_id", msg.ID),
			zap.String("user_id", msg.Author.ID),
			zap.Error(err))
	}

	reason := fmt.Sprintf("Automod caught prohibited term %q", term)
	count, err := b.ledger.Record(msg.GuildID, msg.Author.ID, b.botModeratorID(), reason)
	if err != nil {
		b.logger.Error("automod warning snapshot write failed",
			zap.String("user_id", msg.Author.ID),
			zap.Error(err))
	}

	notice := fmt.Sprintf("%s %s (warning #%d).", msg.Author.Mention(), removalNotice, count)
	sent, err := session.ChannelMessageSend(msg.ChannelID, notice)
	if err != nil {
		b.logger.Warn("failed to send automod notice", zap.String("channel_id", msg.ChannelID), zap.Error(err))
		return
	}
	if ttl := b.cfg.Automod.NoticeTTLSeconds; ttl > 0 {
		time.AfterFunc(time.Duration(ttl)*time.Second, func() {
			_ = session.ChannelMessageDelete(sent.ChannelID, sent.ID)
		})
	}
}

func (b *Bot) botModeratorID() int64 {
	if b.session.State.User == nil {
		return 0
	}
	id, _ := strconv.ParseInt(b.session.State.User.ID, 10, 64)
	return id
}
