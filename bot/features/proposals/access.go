package proposals

import (
	"context"
	"fmt"
	"strings"

	"sblbot/bot/common"
	"sblbot/bot/interactions"
	"sblbot/sblapi"
)

// requireMatchManager enforces the guild's match manager role when one is configured
func (f *Feature) requireMatchManager(ctx context.Context, req *interactions.Request) error {
	if f.settings == nil {
		return nil
	}
	guildID, ok := req.GuildSnowflake()
	if !ok {
		return nil
	}

	settings, err := f.settings.GetOrCreateSettings(ctx, guildID)
	if err != nil {
		return common.NewSystemError(err, "failed to load guild settings")
	}
	if !settings.HasMatchManagerRole() || common.HasRole(req.MemberRoles, *settings.MatchManagerRoleID) {
		return nil
	}

	return common.NewUserError(
		fmt.Sprintf("You need the %s role to use this command.", common.RoleMention(*settings.MatchManagerRoleID)),
		"missing match manager role",
	)
}

// copyRule swaps an upstream error message for friendlier copy
type copyRule struct {
	contains string
	message  string
}

// translate maps an HTTP failure whose upstream message matches a rule to a user error
func translate(err error, logMessage string, rules ...copyRule) error {
	failure, ok := sblapi.AsFailure(err)
	if !ok || failure.Reason != sblapi.ReasonHTTPError {
		return err
	}
	msg := strings.ToLower(failure.Message)
	for _, r := range rules {
		if strings.Contains(msg, strings.ToLower(r.contains)) {
			return common.WrapUserError(err, r.message, logMessage)
		}
	}
	return err
}

var notLinked = copyRule{"linked their Discord", "Your Discord account is not linked. Sign in on the website with Discord."}
