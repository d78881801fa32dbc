package common

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// GenericFailureMessage is shown for any fault that has no specific copy
const GenericFailureMessage = "Something went wrong. Please try again later."

// BotError represents a structured error with user-facing and internal messages
type BotError struct {
	UserMessage string      // Message shown to Discord user
	LogMessage  string      // Internal message for logging
	Ephemeral   bool        // Whether the error message should be ephemeral
	Err         error       // Underlying error
	Context     interface{} // Additional context for logging
}

// Error implements the error interface
func (e *BotError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.LogMessage, e.Err)
	}
	return e.LogMessage
}

// Unwrap returns the underlying error
func (e *BotError) Unwrap() error {
	return e.Err
}

// NewUserError creates an error for user-caused issues (bad input, missing permission)
func NewUserError(userMessage string, logMessage string) *BotError {
	return &BotError{
		UserMessage: userMessage,
		LogMessage:  logMessage,
		Ephemeral:   true,
	}
}

// NewSystemError creates an error for system issues (database, unexpected state, etc)
func NewSystemError(err error, logMessage string) *BotError {
	return &BotError{
		UserMessage: GenericFailureMessage,
		LogMessage:  logMessage,
		Ephemeral:   true,
		Err:         err,
	}
}

// WrapUserError keeps the cause for logging while showing userMessage
func WrapUserError(err error, userMessage string, logMessage string) *BotError {
	return &BotError{
		UserMessage: userMessage,
		LogMessage:  logMessage,
		Ephemeral:   true,
		Err:         err,
	}
}

// AsBotError extracts a BotError from an error chain
func AsBotError(err error) (*BotError, bool) {
	var botErr *BotError
	if errors.As(err, &botErr) {
		return botErr, true
	}
	return nil, false
}

// ErrorEmbed builds the embed every failure reply uses
func ErrorEmbed(title, message string) *discordgo.MessageEmbed {
	if title == "" {
		title = "Error"
	}
	message = strings.TrimPrefix(message, "❌ ")
	return &discordgo.MessageEmbed{
		Title:       "❌ " + title,
		Description: Truncate(message, MaxDescriptionLength),
		Color:       ColorError,
	}
}

// SuccessEmbed builds a confirmation embed
func SuccessEmbed(title, message string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "✅ " + title,
		Description: Truncate(message, MaxDescriptionLength),
		Color:       ColorSuccess,
	}
}
