package ticket

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

// fakeMessenger satisfies Messenger and PanelMessenger for tests.
type fakeMessenger struct {
	channels      map[string]*discordgo.Channel
	channelErr    error
	pinned        map[string][]*discordgo.Message
	pinnedErr     error
	sent          map[string][]*discordgo.Message
	threads       []*discordgo.Channel
	threadErr     error
	threadMembers map[string][]string
	addMemberErr  error
	edits         int
	nextID        int
}

func newFakeMessenger() *fakeMessenger {
	return &fakeMessenger{
		channels:      map[string]*discordgo.Channel{},
		pinned:        map[string][]*discordgo.Message{},
		sent:          map[string][]*discordgo.Message{},
		threadMembers: map[string][]string{},
	}
}

func (f *fakeMessenger) addTextChannel(id string) {
	f.channels[id] = &discordgo.Channel{ID: id, Type: discordgo.ChannelTypeGuildText}
}

func (f *fakeMessenger) Channel(channelID string, options ...discordgo.RequestOption) (*discordgo.Channel, error) {
	if f.channelErr != nil {
		return nil, f.channelErr
	}
	channel, ok := f.channels[channelID]
	if !ok {
		return nil, errors.New("unknown channel")
	}
	return channel, nil
}

func (f *fakeMessenger) ThreadStartComplex(channelID string, data *discordgo.ThreadStart, options ...discordgo.RequestOption) (*discordgo.Channel, error) {
	if f.threadErr != nil {
		return nil, f.threadErr
	}
	f.nextID++
	thread := &discordgo.Channel{
		ID:       fmt.Sprintf("thread-%d", f.nextID),
		ParentID: channelID,
		Name:     data.Name,
		Type:     data.Type,
	}
	f.threads = append(f.threads, thread)
	return thread, nil
}

func (f *fakeMessenger) ThreadMemberAdd(threadID, memberID string, options ...discordgo.RequestOption) error {
	if f.addMemberErr != nil {
		return f.addMemberErr
	}
	f.threadMembers[threadID] = append(f.threadMembers[threadID], memberID)
	return nil
}

func (f *fakeMessenger) ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.nextID++
	message := &discordgo.Message{
		ID:        fmt.Sprintf("msg-%d", f.nextID),
		ChannelID: channelID,
		Content:   data.Content,
		Embeds:    data.Embeds,
		Author:    &discordgo.User{ID: "bot"},
	}
	f.sent[channelID] = append(f.sent[channelID], message)
	return message, nil
}

func (f *fakeMessenger) ChannelMessageEditComplex(m *discordgo.MessageEdit, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.edits++
	return &discordgo.Message{ID: m.ID, ChannelID: m.Channel}, nil
}

func (f *fakeMessenger) ChannelMessagePin(channelID, messageID string, options ...discordgo.RequestOption) error {
	for _, message := range f.sent[channelID] {
		if message.ID == messageID {
			f.pinned[channelID] = append(f.pinned[channelID], message)
			return nil
		}
	}
	return errors.New("message not found")
}

func (f *fakeMessenger) ChannelMessagesPinned(channelID string, options ...discordgo.RequestOption) ([]*discordgo.Message, error) {
	if f.pinnedErr != nil {
		return nil, f.pinnedErr
	}
	return f.pinned[channelID], nil
}

func testRequest() Request {
	return Request{
		GuildID:  "g1",
		UserID:   "u1",
		Username: "Some User",
		Category: CategoryGeneral,
		Answers: []Answer{
			{Name: "Details", Value: "I need help"},
			{Name: "Extra", Value: "   "},
		},
	}
}

func TestCreateTicketThread(t *testing.T) {
	messenger := newFakeMessenger()
	messenger.addTextChannel("support")
	svc := NewService(messenger, "support", zap.NewNop())

	thread, err := svc.Create(testRequest())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if thread.Name != "general-some-user" {
		t.Fatalf("unexpected thread name %q", thread.Name)
	}
	if thread.Type != discordgo.ChannelTypeGuildPrivateThread {
		t.Fatalf("expected private thread, got %v", thread.Type)
	}
	if members := messenger.threadMembers[thread.ID]; len(members) != 1 || members[0] != "u1" {
		t.Fatalf("expected requester in thread, got %v", members)
	}

	summaries := messenger.sent[thread.ID]
	if len(summaries) != 1 {
		t.Fatalf("expected one summary message, got %d", len(summaries))
	}
	summary := summaries[0]
	if !strings.Contains(summary.Content, "<@u1>") {
		t.Fatalf("summary should mention requester, got %q", summary.Content)
	}
	fields := summary.Embeds[0].Fields
	if len(fields) != 2 {
		t.Fatalf("expected one field per answer, got %d", len(fields))
	}
	if fields[0].Value != "I need help" {
		t.Fatalf("unexpected answer rendering %q", fields[0].Value)
	}
	if fields[1].Value != noResponse {
		t.Fatalf("blank answer should render placeholder, got %q", fields[1].Value)
	}
}

func TestCreateEveryCallMakesNewThread(t *testing.T) {
	messenger := newFakeMessenger()
	messenger.addTextChannel("support")
	svc := NewService(messenger, "support", zap.NewNop())

	if _, err := svc.Create(testRequest()); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if _, err := svc.Create(testRequest()); err != nil {
		t.Fatalf("second create: %v", err)
	}
	if len(messenger.threads) != 2 {
		t.Fatalf("expected 2 threads, got %d", len(messenger.threads))
	}
}

func TestCreateChannelUnavailable(t *testing.T) {
	messenger := newFakeMessenger()

	// Not configured at all.
	svc := NewService(messenger, "", zap.NewNop())
	if _, err := svc.Create(testRequest()); !errors.Is(err, ErrChannelUnavailable) {
		t.Fatalf("expected ErrChannelUnavailable, got %v", err)
	}

	// Configured but unresolvable.
	svc = NewService(messenger, "missing", zap.NewNop())
	if _, err := svc.Create(testRequest()); !errors.Is(err, ErrChannelUnavailable) {
		t.Fatalf("expected ErrChannelUnavailable, got %v", err)
	}

	// Resolvable but not a text channel.
	messenger.channels["voice"] = &discordgo.Channel{ID: "voice", Type: discordgo.ChannelTypeGuildVoice}
	svc = NewService(messenger, "voice", zap.NewNop())
	if _, err := svc.Create(testRequest()); !errors.Is(err, ErrChannelUnavailable) {
		t.Fatalf("expected ErrChannelUnavailable, got %v", err)
	}

	if len(messenger.threads) != 0 {
		t.Fatalf("no thread should be created, got %d", len(messenger.threads))
	}
}

func TestCreateParticipantAddFailureIsNotFatal(t *testing.T) {
	messenger := newFakeMessenger()
	messenger.addTextChannel("support")
	messenger.addMemberErr = errors.New("missing permission")
	svc := NewService(messenger, "support", zap.NewNop())

	thread, err := svc.Create(testRequest())
	if err != nil {
		t.Fatalf("create should survive participant failure: %v", err)
	}
	if thread == nil {
		t.Fatalf("expected thread handle")
	}
}

func TestSanitizeThreadName(t *testing.T) {
	cases := map[string]string{
		"general-Some User":     "general-some-user",
		"Report--User!!!":       "report-user",
		"--a--":                 "ticket",
		"!!!":                   "ticket",
		"partner-ok":            "partner-ok",
		strings.Repeat("ab", 60): strings.Repeat("ab", 45),
	}
	for input, expected := range cases {
		if got := SanitizeThreadName(input); got != expected {
			t.Fatalf("sanitize %q: expected %q, got %q", input, expected, got)
		}
	}
}
