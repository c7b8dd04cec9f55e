package ticket

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrChannelUnavailable means the configured support channel is missing, not
// resolvable, or not a text channel. Nothing is created in that case.
var ErrChannelUnavailable = errors.New("support channel unavailable")

// autoArchiveMinutes is the fixed auto-archive window for ticket threads.
const autoArchiveMinutes = 1440

const noResponse = "No response provided."

// Messenger is the slice of the Discord API the ticket service needs.
// *discordgo.Session satisfies it.
type Messenger interface {
	Channel(channelID string, options ...discordgo.RequestOption) (*discordgo.Channel, error)
	ThreadStartComplex(channelID string, data *discordgo.ThreadStart, options ...discordgo.RequestOption) (*discordgo.Channel, error)
	ThreadMemberAdd(threadID, memberID string, options ...discordgo.RequestOption) error
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Answer is one named free-text response from the ticket form, in form order.
type Answer struct {
	Name  string
	Value string
}

// Request carries everything needed to open one ticket thread. It lives only
// for the duration of the call.
type Request struct {
	GuildID  string
	UserID   string
	Username string
	Category Category
	Answers  []Answer
}

// Service opens private support threads from ticket requests. Every call
// creates a fresh thread; duplicate prevention is not its job.
type Service struct {
	messenger Messenger
	channelID string
	logger    *zap.Logger
}

func NewService(messenger Messenger, supportChannelID string, logger *zap.Logger) *Service {
	return &Service{messenger: messenger, channelID: supportChannelID, logger: logger}
}

// Create opens a private, non-invitable thread under the support channel and
// posts the ticket summary into it. The requester is added best-effort.
func (s *Service) Create(req Request) (*discordgo.Channel, error) {
	channel, err := s.supportChannel()
	if err != nil {
		return nil, err
	}

	name := SanitizeThreadName(string(req.Category) + "-" + req.Username)
	thread, err := s.messenger.ThreadStartComplex(channel.ID, &discordgo.ThreadStart{
		Name:                name,
		AutoArchiveDuration: autoArchiveMinutes,
		Type:                discordgo.ChannelTypeGuildPrivateThread,
		Invitable:           false,
	})
	if err != nil {
		return nil, fmt.Errorf("create ticket thread: %w", err)
	}

	if err := s.messenger.ThreadMemberAdd(thread.ID, req.UserID); err != nil {
		s.logger.Warn("could not add requester to ticket thread",
			zap.String("thread_id", thread.ID),
			zap.String("user_id", req.UserID),
			zap.Error(err))
	}

	reference := uuid.NewString()
	if _, err := s.messenger.ChannelMessageSendComplex(thread.ID, &discordgo.MessageSend{
		Content: "<@" + req.UserID + ">",
		Embeds:  []*discordgo.MessageEmbed{summaryEmbed(req, reference)},
	}); err != nil {
		s.logger.Warn("could not post ticket summary",
			zap.String("thread_id", thread.ID),
			zap.Error(err))
	}

	s.logger.Info("ticket thread created",
		zap.String("guild_id", req.GuildID),
		zap.String("user_id", req.UserID),
		zap.String("category", string(req.Category)),
		zap.String("thread_id", thread.ID),
		zap.String("ticket_ref", reference))
	return thread, nil
}

func (s *Service) supportChannel() (*discordgo.Channel, error) {
	if s.channelID == "" {
		return nil, ErrChannelUnavailable
	}
	channel, err := s.messenger.Channel(s.channelID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrChannelUnavailable, err)
	}
	if channel == nil || channel.Type != discordgo.ChannelTypeGuildText {
		return nil, ErrChannelUnavailable
	}
	return channel, nil
}

func summaryEmbed(req Request, reference string) *discordgo.MessageEmbed {
	info := req.Category.Info()
	embed := &discordgo.MessageEmbed{
		Title:       info.Label + " Ticket",
		Description: fmt.Sprintf("Ticket opened by <@%s>", req.UserID),
		Color:       info.Color,
		Footer:      &discordgo.MessageEmbedFooter{Text: fmt.Sprintf("User ID: %s • Ticket %s", req.UserID, reference)},
	}
	for _, answer := range req.Answers {
		value := strings.TrimSpace(answer.Value)
		if value == "" {
			value = noResponse
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  answer.Name,
			Value: value,
		})
	}
	return embed
}

var (
	threadNameInvalid = regexp.MustCompile(`[^a-z0-9-]+`)
	threadNameRuns    = regexp.MustCompile(`-{2,}`)
)

// SanitizeThreadName restricts a derived thread name to lower-case letters,
// digits and single hyphens. Results shorter than three runes fall back to
// "ticket"; anything longer than 90 is cut.
func SanitizeThreadName(name string) string {
	sanitized := threadNameInvalid.ReplaceAllString(strings.ToLower(name), "-")
	sanitized = threadNameRuns.ReplaceAllString(sanitized, "-")
	sanitized = strings.Trim(sanitized, "-")
	if len(sanitized) < 3 {
		return "ticket"
	}
	if len(sanitized) > 90 {
		sanitized = sanitized[:90]
	}
	return sanitized
}
