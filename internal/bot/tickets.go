package bot

import (
	"fmt"
	"strings"

	"modguard/internal/ticket"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

func (b *Bot) handleComponent(interaction *discordgo.InteractionCreate) {
	data := interaction.MessageComponentData()
	switch data.CustomID {
	case ticket.SelectCustomID:
		if len(data.Values) == 0 {
			return
		}
		b.openTicketModal(interaction, ticket.Category(data.Values[0]))
	case ticket.ApplicationCustomID:
		b.openTicketModal(interaction, ticket.CategoryApplication)
	}
}

func (b *Bot) openTicketModal(interaction *discordgo.InteractionCreate, category ticket.Category) {
	if !category.Valid() {
		b.respondText(interaction, "Unknown ticket type.", true)
		return
	}

	fields := category.Form()
	rows := make([]discordgo.MessageComponent, 0, len(fields))
	for _, field := range fields {
		style := discordgo.TextInputShort
		if field.Paragraph {
			style = discordgo.TextInputParagraph
		}
		rows = append(rows, discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.TextInput{
				CustomID:    field.ID,
				Label:       field.Label,
				Style:       style,
				Placeholder: field.Placeholder,
				Required:    field.Required,
				MaxLength:   field.MaxLength,
			},
		}})
	}

	err := b.session.InteractionRespond(interaction.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID:   ticket.ModalCustomIDPrefix + string(category),
			Title:      category.Info().Label + " Request",
			Components: rows,
		},
	})
	if err != nil {
		b.logger.Error("failed to open ticket modal", zap.String("category", string(category)), zap.Error(err))
	}
}

func (b *Bot) handleModalSubmit(interaction *discordgo.InteractionCreate) {
	data := interaction.ModalSubmitData()
	if !strings.HasPrefix(data.CustomID, ticket.ModalCustomIDPrefix) {
		return
	}
	category := ticket.Category(strings.TrimPrefix(data.CustomID, ticket.ModalCustomIDPrefix))
	if !category.Valid() {
		return
	}
	if interaction.GuildID == "" || interaction.Member == nil || interaction.Member.User == nil {
		b.respondText(interaction, "Tickets can only be created inside the server.", true)
		return
	}

	values := modalValues(data)
	var answers []ticket.Answer
	for _, field := range category.Form() {
		value := values[field.ID]
		if field.Required && strings.TrimSpace(value) == "" {
			b.respondText(interaction, fmt.Sprintf("%q is required.", field.Label), true)
			return
		}
		answers = append(answers, ticket.Answer{Name: field.Label, Value: value})
	}

	b.deferEphemeral(interaction)

	requester := interaction.Member.User
	thread, err := b.tickets.Create(ticket.Request{
		GuildID:  interaction.GuildID,
		UserID:   requester.ID,
		Username: requester.Username,
		Category: category,
		Answers:  answers,
	})
	if err != nil {
		b.logger.Error("ticket creation failed",
			zap.String("category", string(category)),
			zap.String("user_id", requester.ID),
			zap.Error(err))
		b.followupText(interaction, "Sorry, I couldn't create your ticket. Please alert the admins.")
		return
	}
	b.followupText(interaction, fmt.Sprintf("Your %s ticket is ready: <#%s>", category.Info().Label, thread.ID))
}

func modalValues(data discordgo.ModalSubmitInteractionData) map[string]string {
	values := make(map[string]string)
	for _, row := range data.Components {
		actionsRow, ok := row.(*discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, component := range actionsRow.Components {
			if input, ok := component.(*discordgo.TextInput); ok {
				values[input.CustomID] = input.Value
			}
		}
	}
	return values
}
