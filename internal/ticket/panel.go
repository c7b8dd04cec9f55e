package ticket

import (
	"strings"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

// PanelFooter is the stable marker identifying the panel message. Ensure
// rediscovers the panel by scanning pinned messages for it instead of
// persisting a message id, so the upsert survives restarts and manual
// deletions.
const PanelFooter = "Support Ticket Panel • ModGuard"

// Component custom ids routed back to the interaction handler.
const (
	SelectCustomID      = "support_panel:select"
	ApplicationCustomID = "support_panel:application"
	ModalCustomIDPrefix = "support_panel:modal:"
)

// PanelMessenger is the slice of the Discord API the panel needs.
// *discordgo.Session satisfies it.
type PanelMessenger interface {
	Channel(channelID string, options ...discordgo.RequestOption) (*discordgo.Channel, error)
	ChannelMessagesPinned(channelID string, options ...discordgo.RequestOption) ([]*discordgo.Message, error)
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageEditComplex(m *discordgo.MessageEdit, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessagePin(channelID, messageID string, options ...discordgo.RequestOption) error
}

// Panel maintains exactly one live ticket panel message in the support
// channel. The panel is advisory UI; a missing channel only logs.
type Panel struct {
	messenger PanelMessenger
	channelID string
	logger    *zap.Logger
}

func NewPanel(messenger PanelMessenger, supportChannelID string, logger *zap.Logger) *Panel {
	return &Panel{messenger: messenger, channelID: supportChannelID, logger: logger}
}

// Ensure upserts the panel message: an existing pinned panel authored by
// botUserID is edited in place, otherwise a new message is sent and pinned.
// Safe to call on every startup and after configuration changes.
func (p *Panel) Ensure(botUserID string) {
	channel, err := p.resolveChannel()
	if err != nil {
		p.logger.Warn("support channel not usable, skipping ticket panel", zap.Error(err))
		return
	}

	embed := panelEmbed()
	components := panelComponents()

	existing := p.findPanelMessage(channel.ID, botUserID)
	if existing != nil {
		_, err := p.messenger.ChannelMessageEditComplex(&discordgo.MessageEdit{
			Channel:    channel.ID,
			ID:         existing.ID,
			Embeds:     &[]*discordgo.MessageEmbed{embed},
			Components: &components,
		})
		if err != nil {
			p.logger.Error("failed to refresh ticket panel", zap.String("channel_id", channel.ID), zap.Error(err))
			return
		}
		p.logger.Info("ticket panel refreshed", zap.String("channel_id", channel.ID), zap.String("message_id", existing.ID))
		return
	}

	message, err := p.messenger.ChannelMessageSendComplex(channel.ID, &discordgo.MessageSend{
		Embeds:     []*discordgo.MessageEmbed{embed},
		Components: components,
	})
	if err != nil {
		p.logger.Error("failed to create ticket panel", zap.String("channel_id", channel.ID), zap.Error(err))
		return
	}
	if err := p.messenger.ChannelMessagePin(channel.ID, message.ID); err != nil {
		p.logger.Error("failed to pin ticket panel", zap.String("message_id", message.ID), zap.Error(err))
		return
	}
	p.logger.Info("ticket panel created", zap.String("channel_id", channel.ID), zap.String("message_id", message.ID))
}

func (p *Panel) resolveChannel() (*discordgo.Channel, error) {
	if p.channelID == "" {
		return nil, ErrChannelUnavailable
	}
	channel, err := p.messenger.Channel(p.channelID)
	if err != nil {
		return nil, err
	}
	if channel == nil || channel.Type != discordgo.ChannelTypeGuildText {
		return nil, ErrChannelUnavailable
	}
	return channel, nil
}

func (p *Panel) findPanelMessage(channelID, botUserID string) *discordgo.Message {
	pinned, err := p.messenger.ChannelMessagesPinned(channelID)
	if err != nil {
		p.logger.Error("failed to fetch pinned messages", zap.String("channel_id", channelID), zap.Error(err))
		return nil
	}
	for _, message := range pinned {
		if message.Author == nil || message.Author.ID != botUserID {
			continue
		}
		if len(message.Embeds) == 0 || message.Embeds[0].Footer == nil {
			continue
		}
		if strings.Contains(message.Embeds[0].Footer.Text, PanelFooter) {
			return message
		}
	}
	return nil
}

func panelEmbed() *discordgo.MessageEmbed {
	var options []string
	for _, category := range SelectableCategories() {
		info := category.Info()
		options = append(options, info.Emoji+" **"+info.Label+"** – "+info.Description)
	}
	return &discordgo.MessageEmbed{
		Title: "How can we help you?",
		Description: "Use the menu below to open a ticket for general help, partnerships, " +
			"or reports. Need to join the team? Submit a staff/content application " +
			"with the button.",
		Color: 0x11806A,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:  "Ticket options",
				Value: strings.Join(options, "\n"),
			},
			{
				Name: "Application requirements",
				Value: "• Minimum 1k subscribers & 500 avg views (or 20+ live viewers)\n" +
					"• Strong moderation or community experience\n" +
					"• Professional and respectful conduct at all times",
			},
		},
		Footer: &discordgo.MessageEmbedFooter{Text: PanelFooter},
	}
}

func panelComponents() []discordgo.MessageComponent {
	selectable := SelectableCategories()
	options := make([]discordgo.SelectMenuOption, 0, len(selectable))
	for _, category := range selectable {
		info := category.Info()
		options = append(options, discordgo.SelectMenuOption{
			Label:       info.Label,
			Value:       string(category),
			Description: info.Description,
			Emoji:       &discordgo.ComponentEmoji{Name: info.Emoji},
		})
	}
	appInfo := CategoryApplication.Info()
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.SelectMenu{
				MenuType:    discordgo.StringSelectMenu,
				CustomID:    SelectCustomID,
				Placeholder: "Choose a ticket type",
				Options:     options,
			},
		}},
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.Button{
				Label:    appInfo.Label,
				Style:    discordgo.PrimaryButton,
				CustomID: ApplicationCustomID,
				Emoji:    &discordgo.ComponentEmoji{Name: appInfo.Emoji},
			},
		}},
	}
}
