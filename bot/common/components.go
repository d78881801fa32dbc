package common

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// PaginationOptions configures the navigation row of a paginated view
type PaginationOptions struct {
	PageID        func(page int) string // Custom ID for a jump to the given page
	InfoID        string                // Custom ID of the disabled page indicator
	WithFirstLast bool
}

// PaginationRow renders navigation buttons for a page state.
// Nothing is rendered for a single page, and buttons pointing past either end are omitted.
func PaginationRow(state PageState, opts PaginationOptions) []discordgo.MessageComponent {
	if state.TotalPages <= 1 {
		return nil
	}

	var buttons []discordgo.MessageComponent
	if state.HasPrevious() {
		if opts.WithFirstLast {
			buttons = append(buttons, discordgo.Button{
				Label:    "⏮️",
				Style:    discordgo.SecondaryButton,
				CustomID: opts.PageID(1),
			})
		}
		buttons = append(buttons, discordgo.Button{
			Label:    "◀️ Previous",
			Style:    discordgo.PrimaryButton,
			CustomID: opts.PageID(state.CurrentPage - 1),
		})
	}

	buttons = append(buttons, discordgo.Button{
		Label:    fmt.Sprintf("Page %d/%d", state.CurrentPage, state.TotalPages),
		Style:    discordgo.SecondaryButton,
		CustomID: opts.InfoID,
		Disabled: true,
	})

	if state.HasNext() {
		buttons = append(buttons, discordgo.Button{
			Label:    "Next ▶️",
			Style:    discordgo.PrimaryButton,
			CustomID: opts.PageID(state.CurrentPage + 1),
		})
		if opts.WithFirstLast {
			buttons = append(buttons, discordgo.Button{
				Label:    "⏭️",
				Style:    discordgo.SecondaryButton,
				CustomID: opts.PageID(state.TotalPages),
			})
		}
	}

	return []discordgo.MessageComponent{discordgo.ActionsRow{Components: buttons}}
}

// ButtonRows packs buttons into action rows of at most MaxButtonsPerRow
func ButtonRows(buttons []discordgo.MessageComponent) []discordgo.MessageComponent {
	var rows []discordgo.MessageComponent
	for start := 0; start < len(buttons) && len(rows) < MaxActionRows; start += MaxButtonsPerRow {
		end := min(start+MaxButtonsPerRow, len(buttons))
		rows = append(rows, discordgo.ActionsRow{Components: buttons[start:end]})
	}
	return rows
}

// LinkButton is a navigation button carrying a routing ID
func LinkButton(label, customID string, style discordgo.ButtonStyle) discordgo.Button {
	return discordgo.Button{
		Label:    Truncate(label, MaxLabelLength),
		Style:    style,
		CustomID: customID,
	}
}
