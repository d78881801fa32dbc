package common

import (
	"strconv"
	"time"

	"github.com/bwmarrin/discordgo"
)

// ParseSnowflake converts a Discord ID string to int64
func ParseSnowflake(id string) (int64, error) {
	return strconv.ParseInt(id, 10, 64)
}

// FormatSnowflake converts an int64 Discord ID to string
func FormatSnowflake(id int64) string {
	return strconv.FormatInt(id, 10)
}

// UserMention returns a Discord mention string for a user
func UserMention(userID string) string {
	return "<@" + userID + ">"
}

// ChannelMention returns a Discord mention string for a channel
func ChannelMention(channelID int64) string {
	return "<#" + FormatSnowflake(channelID) + ">"
}

// RoleMention returns a Discord mention string for a role
func RoleMention(roleID int64) string {
	return "<@&" + FormatSnowflake(roleID) + ">"
}

// HasRole reports whether roleID is among the member's roles
func HasRole(memberRoles []string, roleID int64) bool {
	want := FormatSnowflake(roleID)
	for _, r := range memberRoles {
		if r == want {
			return true
		}
	}
	return false
}

// MemberIsAdmin checks the resolved permissions Discord sends with an interaction
func MemberIsAdmin(member *discordgo.Member) bool {
	if member == nil {
		return false
	}
	return member.Permissions&discordgo.PermissionAdministrator != 0
}

// SnowflakeTime returns the creation time encoded in a Discord ID
func SnowflakeTime(id string) (time.Time, bool) {
	t, err := discordgo.SnowflakeTimestamp(id)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
