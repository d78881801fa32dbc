package proposals

import (
	"context"

	"sblbot/bot/common"
	"sblbot/bot/interactions"
	"sblbot/domain/entities"
	"sblbot/events"
	"sblbot/sblapi"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// handlePropose handles /propose match day time
func (f *Feature) handlePropose(ctx context.Context, req *interactions.Request) (*interactions.View, error) {
	if err := f.requireMatchManager(ctx, req); err != nil {
		return nil, err
	}

	gameID, err := interactions.RequireInt(req.Intent, interactions.ArgMatch)
	if err != nil {
		return nil, err
	}
	dayName, _ := req.Intent.String(interactions.ArgDay)
	day, err := entities.ParseWeekday(dayName)
	if err != nil {
		return nil, common.WrapUserError(err, "Unknown day. Pick a day from the list.", "invalid proposal day")
	}
	timeText, _ := req.Intent.String(interactions.ArgTime)
	clock, err := entities.ParseLooseClock(timeText)
	if err != nil {
		return nil, common.WrapUserError(err, "Invalid time format. Use 21h, 20h30 or 21:00.", "invalid proposal time")
	}

	date := entities.NextWeekday(f.now(), f.loc, day, clock)

	res, err := f.api.CreateProposal(ctx, sblapi.ProposalInput{
		GameID:            gameID,
		ProposerDiscordID: req.UserID,
		ProposedDate:      date,
	})
	if err != nil {
		return nil, translate(err, "failed to create proposal",
			copyRule{"team captain", "You must captain one of the teams of this match."},
			copyRule{"not found", "Match or user not found."},
			notLinked,
		)
	}

	proposal := res.Data.Proposal
	if receiver := res.Data.ReceiverDiscordID; receiver != nil && *receiver != "" {
		f.notify(*receiver, buildProposalReceivedDM(proposal, req.Username, date, f.loc))
	}

	return interactions.EmbedView(buildProposalSentEmbed(proposal, date, f.loc)), nil
}

// handleProposals handles /proposals
func (f *Feature) handleProposals(ctx context.Context, req *interactions.Request) (*interactions.View, error) {
	res, err := f.api.PendingProposals(ctx, req.UserID)
	if err != nil {
		return nil, translate(err, "failed to list proposals",
			copyRule{"not found", notLinked.message},
			notLinked,
		)
	}

	return interactions.EmbedView(
		buildPendingEmbed(res.Data, f.loc, res.ResponseTime),
		buildPendingComponents(res.Data.Received)...,
	), nil
}

// handleAccept handles /accept and proposal_accept_N
func (f *Feature) handleAccept(ctx context.Context, req *interactions.Request) (*interactions.View, error) {
	return f.answer(ctx, req, sblapi.ProposalAccepted)
}

// handleReject handles /reject and proposal_reject_N
func (f *Feature) handleReject(ctx context.Context, req *interactions.Request) (*interactions.View, error) {
	return f.answer(ctx, req, sblapi.ProposalRejected)
}

func (f *Feature) answer(ctx context.Context, req *interactions.Request, status sblapi.ProposalStatus) (*interactions.View, error) {
	if err := f.requireMatchManager(ctx, req); err != nil {
		return nil, err
	}

	proposalID, err := interactions.RequireInt(req.Intent, interactions.ArgID)
	if err != nil {
		return nil, err
	}

	verb := "accept"
	if status == sblapi.ProposalRejected {
		verb = "reject"
	}

	res, err := f.api.RespondToProposal(ctx, proposalID, req.UserID, status)
	if err != nil {
		return nil, translate(err, "failed to "+verb+" proposal",
			copyRule{"Only the receiver", "Only the receiver can " + verb + " this proposal."},
			copyRule{"not found", "Proposal not found."},
		)
	}

	proposal := res.Data
	proposerID := ""
	if proposal.Proposer != nil {
		proposerID = proposal.Proposer.DiscordID
	}
	if proposerID != "" {
		f.notify(proposerID, buildAnswerDM(proposal, status, req.Username, f.loc))
	}

	if f.publisher != nil {
		guildID, _ := req.GuildSnowflake()
		if err := f.publisher.Publish(events.ProposalStatusChangedEvent{
			GuildID:     guildID,
			ProposalID:  proposalID,
			GameID:      proposal.Game.ID,
			Status:      string(status),
			ResponderID: req.UserID,
			ProposerID:  proposerID,
		}); err != nil {
			log.WithError(err).WithField("proposalID", proposalID).Warn("Failed to publish proposal status change")
		}
	}

	return interactions.EmbedView(buildAnsweredEmbed(proposal, status, f.loc)), nil
}

// notify sends a DM; DMs closed by the user are expected and only logged
func (f *Feature) notify(userID string, embed *discordgo.MessageEmbed) {
	if f.dm == nil {
		return
	}
	if err := common.SendDirectEmbed(f.dm, userID, embed); err != nil {
		log.WithError(err).WithField("userID", userID).Warn("Failed to send proposal DM")
	}
}
