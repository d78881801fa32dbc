// Package interactionstest provides fakes for exercising handlers and the router.
package interactionstest

import (
	"sync"

	"sblbot/bot/interactions"

	"github.com/bwmarrin/discordgo"
)

// Responder records acknowledgements and edits instead of calling Discord
type Responder struct {
	mu        sync.Mutex
	Responses []*discordgo.InteractionResponse
	Edits     []*discordgo.WebhookEdit
}

func (r *Responder) InteractionRespond(_ *discordgo.Interaction, resp *discordgo.InteractionResponse, _ ...discordgo.RequestOption) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Responses = append(r.Responses, resp)
	return nil
}

func (r *Responder) InteractionResponseEdit(_ *discordgo.Interaction, edit *discordgo.WebhookEdit, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Edits = append(r.Edits, edit)
	return &discordgo.Message{}, nil
}

// LastEdit returns the most recent edit, nil if none
func (r *Responder) LastEdit() *discordgo.WebhookEdit {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.Edits) == 0 {
		return nil
	}
	return r.Edits[len(r.Edits)-1]
}

var testMember = &discordgo.Member{User: &discordgo.User{ID: "42", Username: "tester"}}

// Slash builds a slash command interaction
func Slash(name string, options ...*discordgo.ApplicationCommandInteractionDataOption) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		Type:    discordgo.InteractionApplicationCommand,
		GuildID: "100",
		Member:  testMember,
		Data:    discordgo.ApplicationCommandInteractionData{Name: name, Options: options},
	}}
}

// IntOption is an integer slash option as Discord delivers it
func IntOption(name string, v int) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{
		Name:  name,
		Type:  discordgo.ApplicationCommandOptionInteger,
		Value: float64(v),
	}
}

// Button builds a button click interaction
func Button(customID string) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		Type:    discordgo.InteractionMessageComponent,
		GuildID: "100",
		Member:  testMember,
		Data:    discordgo.MessageComponentInteractionData{CustomID: customID, ComponentType: discordgo.ButtonComponent},
	}}
}

// Select builds a select menu interaction
func Select(customID string, values ...string) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		Type:    discordgo.InteractionMessageComponent,
		GuildID: "100",
		Member:  testMember,
		Data: discordgo.MessageComponentInteractionData{
			CustomID:      customID,
			ComponentType: discordgo.SelectMenuComponent,
			Values:        values,
		},
	}}
}

// Request builds a handler request from synthetic arguments
func Request(args map[string]any) *interactions.Request {
	return &interactions.Request{
		Intent:   interactions.NewArgsIntent(args),
		UserID:   "42",
		Username: "tester",
		GuildID:  "100",
	}
}

// CustomIDs lists the button custom IDs of every action row, in order
func CustomIDs(components []discordgo.MessageComponent) []string {
	var ids []string
	for _, c := range components {
		row, ok := c.(discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, inner := range row.Components {
			if b, ok := inner.(discordgo.Button); ok {
				ids = append(ids, b.CustomID)
			}
		}
	}
	return ids
}

// Buttons lists the buttons of every action row, in order
func Buttons(components []discordgo.MessageComponent) []discordgo.Button {
	var buttons []discordgo.Button
	for _, c := range components {
		row, ok := c.(discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, inner := range row.Components {
			if b, ok := inner.(discordgo.Button); ok {
				buttons = append(buttons, b)
			}
		}
	}
	return buttons
}

// SelectMenus lists the select menus of every action row
func SelectMenus(components []discordgo.MessageComponent) []discordgo.SelectMenu {
	var menus []discordgo.SelectMenu
	for _, c := range components {
		row, ok := c.(discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, inner := range row.Components {
			if m, ok := inner.(discordgo.SelectMenu); ok {
				menus = append(menus, m)
			}
		}
	}
	return menus
}

// FieldValues maps embed field names to values
func FieldValues(embed *discordgo.MessageEmbed) map[string]string {
	values := make(map[string]string, len(embed.Fields))
	for _, f := range embed.Fields {
		values[f.Name] = f.Value
	}
	return values
}
