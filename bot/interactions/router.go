package interactions

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"sblbot/bot/common"
	"sblbot/sblapi"
)

// HandlerTimeout bounds a single handler run
const HandlerTimeout = 60 * time.Second

// Outcomes reported to the observer
const (
	OutcomeReplied      = "replied"
	OutcomeFailed       = "failed"
	OutcomeUnrecognized = "unrecognized"
)

// Responder is the part of *discordgo.Session the router needs
type Responder interface {
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
	InteractionResponseEdit(interaction *discordgo.Interaction, newresp *discordgo.WebhookEdit, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// InteractionObserver receives one notification per routed interaction
type InteractionObserver interface {
	RecordInteraction(ctx context.Context, command, source, outcome string, duration time.Duration)
}

// Router acknowledges interactions, resolves them to a command and edits the
// acknowledged message with the rendered view. It keeps no per-interaction state.
type Router struct {
	registry *Registry
	observer InteractionObserver
}

// NewRouter creates a router over a loaded registry. observer may be nil.
func NewRouter(registry *Registry, observer InteractionObserver) *Router {
	return &Router{registry: registry, observer: observer}
}

// Handle is registered with discordgo as the InteractionCreate handler
func (r *Router) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) {
	r.Dispatch(context.Background(), s, i)
}

// Classify returns the entry point of an interaction, false for types the router ignores
func Classify(i *discordgo.InteractionCreate) (Source, bool) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		return SourceSlash, true
	case discordgo.InteractionMessageComponent:
		switch i.MessageComponentData().ComponentType {
		case discordgo.ButtonComponent:
			return SourceButton, true
		case discordgo.SelectMenuComponent:
			return SourceSelectMenu, true
		}
	}
	return "", false
}

// Dispatch routes one interaction to completion
func (r *Router) Dispatch(ctx context.Context, resp Responder, i *discordgo.InteractionCreate) {
	source, ok := Classify(i)
	if !ok {
		return
	}

	if source == SourceSlash {
		r.dispatchSlash(ctx, resp, i)
		return
	}
	r.dispatchComponent(ctx, resp, i, source)
}

func (r *Router) dispatchSlash(ctx context.Context, resp Responder, i *discordgo.InteractionCreate) {
	data := i.ApplicationCommandData()
	desc, ok := r.registry.Lookup(data.Name)
	if !ok {
		log.WithField("command", data.Name).Error("Received unknown slash command")
		r.record(ctx, data.Name, SourceSlash, OutcomeUnrecognized, 0)
		return
	}

	var flags discordgo.MessageFlags
	if desc.Ephemeral {
		flags = discordgo.MessageFlagsEphemeral
	}
	err := resp.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Flags: flags},
	})
	if err != nil {
		log.WithError(err).WithField("command", data.Name).Error("Failed to acknowledge slash command")
		return
	}

	req := newRequest(i, data.Name, SourceSlash, NewOptionsIntent(data.Options))
	r.run(ctx, resp, i, desc, req)
}

func (r *Router) dispatchComponent(ctx context.Context, resp Responder, i *discordgo.InteractionCreate, source Source) {
	err := resp.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredMessageUpdate,
	})
	if err != nil {
		log.WithError(err).Error("Failed to acknowledge component interaction")
		return
	}

	data := i.MessageComponentData()
	decoded := Decode(data.CustomID, data.Values)

	var desc Descriptor
	found := false
	if decoded.Recognized {
		desc, found = r.registry.Lookup(decoded.Command)
	}
	if !found {
		log.WithFields(log.Fields{
			"custom_id": data.CustomID,
			"values":    data.Values,
			"command":   decoded.Command,
		}).Warn("Unrecognized component interaction")
		r.edit(resp, i, UnrecognizedView())
		r.record(ctx, data.CustomID, source, OutcomeUnrecognized, 0)
		return
	}

	req := newRequest(i, decoded.Command, source, NewArgsIntent(decoded.Args))
	r.run(ctx, resp, i, desc, req)
}

func (r *Router) run(ctx context.Context, resp Responder, i *discordgo.InteractionCreate, desc Descriptor, req *Request) {
	ctx, cancel := context.WithTimeout(ctx, HandlerTimeout)
	defer cancel()

	start := time.Now()
	view, err := invoke(ctx, desc.Handler, req)
	outcome := OutcomeReplied
	if err != nil {
		outcome = OutcomeFailed
		logHandlerError(req, err)
		view = ErrorView(err)
	}
	if view == nil {
		view = &View{Content: "Done."}
	}

	r.edit(resp, i, view)
	r.record(ctx, req.Command, req.Source, outcome, time.Since(start))
}

// invoke runs a handler, turning a panic into an error
func invoke(ctx context.Context, handler HandlerFunc, req *Request) (view *View, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			log.WithFields(log.Fields{
				"command": req.Command,
				"panic":   rec,
				"stack":   string(debug.Stack()),
			}).Error("Recovered panic in command handler")
			view, err = nil, fmt.Errorf("handler panic: %v", rec)
		}
	}()
	return handler(ctx, req)
}

func (r *Router) edit(resp Responder, i *discordgo.InteractionCreate, view *View) {
	if _, err := resp.InteractionResponseEdit(i.Interaction, view.webhookEdit()); err != nil {
		log.WithError(err).Error("Failed to edit interaction response")
	}
}

func (r *Router) record(ctx context.Context, command string, source Source, outcome string, d time.Duration) {
	if r.observer != nil {
		r.observer.RecordInteraction(ctx, command, string(source), outcome, d)
	}
}

func logHandlerError(req *Request, err error) {
	fields := log.Fields{
		"user_id": req.UserID,
		"command": req.Command,
		"source":  req.Source,
	}
	if botErr, ok := common.AsBotError(err); ok {
		fields["user_message"] = botErr.UserMessage
		fields["context"] = botErr.Context
		log.WithFields(fields).WithError(err).Warn(botErr.LogMessage)
		return
	}
	if f, ok := sblapi.AsFailure(err); ok {
		fields["reason"] = f.Reason
		fields["status"] = f.HTTPStatus
		fields["url"] = f.URL
		log.WithFields(fields).WithError(err).Warn("SBL API failure in command handler")
		return
	}
	log.WithFields(fields).WithError(err).Error("Unexpected error in command handler")
}

// ErrorView renders any handler error without leaking internals
func ErrorView(err error) *View {
	if botErr, ok := common.AsBotError(err); ok {
		if f, ok := sblapi.AsFailure(botErr.Err); ok && botErr.UserMessage == "" {
			return apiFailureView(f)
		}
		return EmbedView(common.ErrorEmbed("Error", botErr.UserMessage))
	}
	if f, ok := sblapi.AsFailure(err); ok {
		return apiFailureView(f)
	}
	return EmbedView(common.ErrorEmbed("Error", common.GenericFailureMessage))
}

func apiFailureView(f *sblapi.Failure) *View {
	embed := common.ErrorEmbed("SBL API error", f.UserMessage())
	if f.URL != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Attempted URL",
			Value: common.TruncateField(f.URL),
		})
	}
	footer := "Request failed"
	if f.IsTimeout() {
		footer = "Request timed out"
	}
	embed.Footer = &discordgo.MessageEmbedFooter{Text: footer}
	return EmbedView(embed)
}

// UnrecognizedView is shown when a component ID matches no route
func UnrecognizedView() *View {
	return EmbedView(common.ErrorEmbed("Unrecognized interaction", "This button or menu is no longer supported. Run the command again."))
}
