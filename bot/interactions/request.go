package interactions

import (
	"github.com/bwmarrin/discordgo"

	"sblbot/bot/common"
)

// Source is the entry point of an invocation
type Source string

const (
	SourceSlash      Source = "slash"
	SourceButton     Source = "button"
	SourceSelectMenu Source = "select_menu"
)

// Request is everything a handler may read about an invocation
type Request struct {
	Command     string
	Source      Source
	Intent      Intent
	UserID      string
	Username    string
	GuildID     string
	ChannelID   string
	MemberRoles []string
	IsAdmin     bool
}

func newRequest(i *discordgo.InteractionCreate, command string, source Source, intent Intent) *Request {
	req := &Request{
		Command:   command,
		Source:    source,
		Intent:    intent,
		GuildID:   i.GuildID,
		ChannelID: i.ChannelID,
	}

	switch {
	case i.Member != nil:
		req.MemberRoles = i.Member.Roles
		req.IsAdmin = common.MemberIsAdmin(i.Member)
		if i.Member.User != nil {
			req.UserID = i.Member.User.ID
			req.Username = i.Member.User.Username
		}
		if i.Member.Nick != "" {
			req.Username = i.Member.Nick
		}
	case i.User != nil:
		req.UserID = i.User.ID
		req.Username = i.User.Username
	}
	return req
}

// GuildSnowflake returns the guild ID as an int64, false outside a guild
func (r *Request) GuildSnowflake() (int64, bool) {
	if r.GuildID == "" {
		return 0, false
	}
	id, err := common.ParseSnowflake(r.GuildID)
	return id, err == nil
}
