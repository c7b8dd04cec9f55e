package bot

import (
	"context"

	"modguard/internal/config"
	"modguard/internal/ledger"
	"modguard/internal/modules/automod"
	"modguard/internal/ticket"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

type Bot struct {
	cfg     config.Config
	logger  *zap.Logger
	ledger  *ledger.Ledger
	filter  *automod.Filter
	tickets *ticket.Service
	panel   *ticket.Panel
	session *discordgo.Session
}

func New(cfg config.Config, logger *zap.Logger, warningLedger *ledger.Ledger) (*Bot, error) {
	session, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		return nil, err
	}

	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildMembers |
		discordgo.IntentsMessageContent

	b := &Bot{
		cfg:     cfg,
		logger:  logger,
		ledger:  warningLedger,
		filter:  automod.New(cfg.Automod.BlockedTerms),
		session: session,
	}
	b.tickets = ticket.NewService(session, cfg.SupportChannelID, logger)
	b.panel = ticket.NewPanel(session, cfg.SupportChannelID, logger)

	return b, nil
}

func (b *Bot) Start() error {
	b.session.AddHandler(b.onReady)
	b.session.AddHandler(b.onMessageCreate)
	b.session.AddHandler(b.onGuildMemberAdd)
	b.session.AddHandler(b.onInteractionCreate)

	if err := b.session.Open(); err != nil {
		return err
	}

	if err := b.registerCommands(); err != nil {
		return err
	}

	return nil
}

func (b *Bot) Close(ctx context.Context) {
	_ = ctx
	if b.session != nil {
		_ = b.session.Close()
	}
}

func (b *Bot) onReady(session *discordgo.Session, event *discordgo.Ready) {
	b.logger.Info("discord ready", zap.String("user", session.State.User.Username))
	b.panel.Ensure(session.State.User.ID)
}

// guild resolves the guild from the session cache first, then the API.
func (b *Bot) guild(guildID string) (*discordgo.Guild, error) {
	if guild, err := b.session.State.Guild(guildID); err == nil && guild != nil {
		return guild, nil
	}
	return b.session.Guild(guildID)
}

// member resolves a guild member from the session cache first, then the API.
func (b *Bot) member(guildID, userID string) (*discordgo.Member, error) {
	if member, err := b.session.State.Member(guildID, userID); err == nil && member != nil && member.User != nil {
		return member, nil
	}
	return b.session.GuildMember(guildID, userID)
}
