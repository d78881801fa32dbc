package announcements

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"sblbot/application"
	"sblbot/bot/common"
	"sblbot/bot/features/standings"
	"sblbot/sblapi"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// MaxStandingsImages caps the PNG attachments of one standings post
const MaxStandingsImages = 4

// ChannelSender is the part of the Discord session the poster needs
type ChannelSender interface {
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// TableRenderer draws a division table as a PNG
type TableRenderer interface {
	Render(title string, rows []sblapi.TeamStanding) ([]byte, error)
}

// Poster delivers the job output to Discord channels
type Poster struct {
	sender   ChannelSender
	renderer TableRenderer
	loc      *time.Location
}

var _ application.AnnouncementPoster = (*Poster)(nil)

// NewPoster creates a poster. A nil renderer disables the standings images.
func NewPoster(sender ChannelSender, renderer TableRenderer) *Poster {
	return &Poster{
		sender:   sender,
		renderer: renderer,
		loc:      common.DisplayLocation(),
	}
}

func (p *Poster) send(ctx context.Context, channelID int64, msg *discordgo.MessageSend) error {
	_, err := p.sender.ChannelMessageSendComplex(common.FormatSnowflake(channelID), msg, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to send message to channel %d: %w", channelID, err)
	}
	return nil
}

// PostMatches posts the fixtures of the week
func (p *Poster) PostMatches(ctx context.Context, channelID int64, digest *application.WeeklyDigest) error {
	return p.send(ctx, channelID, &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{BuildMatchesEmbed(digest, p.loc)},
	})
}

// PostStandings posts the division tables, with one rendered image per
// division up to MaxStandingsImages
func (p *Poster) PostStandings(ctx context.Context, channelID int64, digest *application.WeeklyDigest) error {
	return p.send(ctx, channelID, &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{BuildStandingsEmbed(digest)},
		Files:  p.standingsImages(digest),
	})
}

func (p *Poster) standingsImages(digest *application.WeeklyDigest) []*discordgo.File {
	if p.renderer == nil {
		return nil
	}

	var files []*discordgo.File
	for _, div := range digest.Divisions {
		if len(files) == MaxStandingsImages {
			break
		}
		rows := standings.Pick(div.Division, div.Stats)
		if len(rows) == 0 {
			continue
		}

		png, err := p.renderer.Render(div.Division.DisplayName(), rows)
		if err != nil {
			log.WithError(err).WithField("divisionID", div.Division.ID).Warn("Failed to render standings image")
			continue
		}
		files = append(files, &discordgo.File{
			Name:        fmt.Sprintf("standings-%d.png", div.Division.ID),
			ContentType: "image/png",
			Reader:      bytes.NewReader(png),
		})
	}
	return files
}

// PostDeadlineSummary reports a deadline check run
func (p *Poster) PostDeadlineSummary(ctx context.Context, channelID int64, summary *application.DeadlineSummary) error {
	return p.send(ctx, channelID, &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{BuildDeadlineSummaryEmbed(summary, p.loc)},
	})
}
