package roster

import (
	"context"
	"net/http"
	"strings"

	"sblbot/bot/common"
	"sblbot/bot/interactions"
	"sblbot/sblapi"
)

// statusCopy maps upstream statuses of a roster call to user copy
type statusCopy map[int]string

func translate(err error, messages statusCopy, logMessage string) error {
	failure, ok := sblapi.AsFailure(err)
	if !ok || failure.Reason != sblapi.ReasonHTTPError {
		return err
	}
	if msg, ok := messages[failure.HTTPStatus]; ok {
		return common.WrapUserError(err, msg, logMessage)
	}
	if failure.Message != "" {
		return common.WrapUserError(err, failure.Message, logMessage)
	}
	return err
}

func requireUser(req *interactions.Request) (string, error) {
	id, ok := req.Intent.Snowflake(interactions.ArgUser)
	if !ok || id == "" {
		return "", common.NewUserError("Please pick a user.", "missing user option")
	}
	return id, nil
}

// handleCreateTeam handles /create-team name
func (f *Feature) handleCreateTeam(ctx context.Context, req *interactions.Request) (*interactions.View, error) {
	name, _ := req.Intent.String(interactions.ArgName)
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, common.NewUserError("Please provide a team name.", "empty team name")
	}

	res, err := f.api.CreateTeam(ctx, req.UserID, name)
	if err != nil {
		return nil, translate(err, statusCopy{
			http.StatusConflict: "A team with this name already exists.",
		}, "failed to create team")
	}

	return interactions.EmbedView(buildCreatedEmbed(res.Data.Team, req.UserID)), nil
}

// handleAddMember handles /add-member team user
func (f *Feature) handleAddMember(ctx context.Context, req *interactions.Request) (*interactions.View, error) {
	teamID, err := interactions.RequireInt(req.Intent, interactions.ArgTeam)
	if err != nil {
		return nil, err
	}
	userID, err := requireUser(req)
	if err != nil {
		return nil, err
	}

	if err := f.api.AddMember(ctx, req.UserID, teamID, userID); err != nil {
		mention := common.UserMention(userID)
		return nil, translate(err, statusCopy{
			http.StatusForbidden: "You must be the team captain to add members.",
			http.StatusNotFound:  mention + " has no linked account. They must sign in on the website with Discord first.",
			http.StatusConflict:  mention + " is already a member of this team.",
		}, "failed to add team member")
	}

	return interactions.EmbedView(buildMemberAddedEmbed(teamID, userID)), nil
}

// handleRemoveMember handles /remove-member team user
func (f *Feature) handleRemoveMember(ctx context.Context, req *interactions.Request) (*interactions.View, error) {
	teamID, err := interactions.RequireInt(req.Intent, interactions.ArgTeam)
	if err != nil {
		return nil, err
	}
	userID, err := requireUser(req)
	if err != nil {
		return nil, err
	}

	if err := f.api.RemoveMember(ctx, req.UserID, teamID, userID); err != nil {
		return nil, translate(err, statusCopy{
			http.StatusForbidden: "You must be the team captain to remove members.",
			http.StatusNotFound:  common.UserMention(userID) + " is not a member of this team.",
		}, "failed to remove team member")
	}

	return interactions.EmbedView(buildMemberRemovedEmbed(teamID, userID)), nil
}

// isLastCaptain recognizes the refusal to let the only captain leave
func isLastCaptain(err error) bool {
	failure, ok := sblapi.AsFailure(err)
	if !ok {
		return false
	}
	msg := strings.ToLower(failure.Message)
	return strings.Contains(msg, "last captain") || strings.Contains(msg, "promote another")
}

// handleLeaveTeam handles /leave-team team
func (f *Feature) handleLeaveTeam(ctx context.Context, req *interactions.Request) (*interactions.View, error) {
	teamID, err := interactions.RequireInt(req.Intent, interactions.ArgTeam)
	if err != nil {
		return nil, err
	}

	if err := f.api.RemoveMember(ctx, req.UserID, teamID, req.UserID); err != nil {
		if isLastCaptain(err) {
			return nil, common.WrapUserError(err,
				"You are the last captain of this team. Promote another member with `/change-role` before leaving.",
				"last captain cannot leave")
		}
		return nil, translate(err, statusCopy{
			http.StatusNotFound: "You are not a member of this team.",
		}, "failed to leave team")
	}

	return interactions.EmbedView(buildLeftEmbed(teamID)), nil
}

// handleChangeRole handles /change-role team user role
func (f *Feature) handleChangeRole(ctx context.Context, req *interactions.Request) (*interactions.View, error) {
	teamID, err := interactions.RequireInt(req.Intent, interactions.ArgTeam)
	if err != nil {
		return nil, err
	}
	userID, err := requireUser(req)
	if err != nil {
		return nil, err
	}
	role, _ := req.Intent.String(interactions.ArgRole)
	if role != sblapi.RoleCaptain && role != sblapi.RoleMember {
		return nil, common.NewUserError("Role must be captain or member.", "invalid role")
	}

	if err := f.api.ChangeRole(ctx, req.UserID, teamID, userID, role); err != nil {
		if isLastCaptain(err) {
			return nil, common.WrapUserError(err,
				"This is the last captain of the team. Promote another member first.",
				"last captain cannot be demoted")
		}
		return nil, translate(err, statusCopy{
			http.StatusForbidden: "You must be the team captain to change roles.",
			http.StatusNotFound:  common.UserMention(userID) + " is not a member of this team.",
		}, "failed to change member role")
	}

	return interactions.EmbedView(buildRoleChangedEmbed(teamID, userID, role)), nil
}

// handleMembers handles /team-members team
func (f *Feature) handleMembers(ctx context.Context, req *interactions.Request) (*interactions.View, error) {
	teamID, err := interactions.RequireInt(req.Intent, interactions.ArgTeam)
	if err != nil {
		return nil, err
	}

	res, err := f.api.TeamMembers(ctx, req.UserID, teamID)
	if err != nil {
		return nil, translate(err, statusCopy{
			http.StatusNotFound: "Team not found.",
		}, "failed to list team members")
	}

	return interactions.EmbedView(buildMembersEmbed(res.Data)), nil
}

// handleMyTeams handles /my-teams
func (f *Feature) handleMyTeams(ctx context.Context, req *interactions.Request) (*interactions.View, error) {
	res, err := f.api.MyTeams(ctx, req.UserID)
	if err != nil {
		return nil, translate(err, statusCopy{
			http.StatusNotFound: "Your Discord account is not linked. Sign in on the website with Discord.",
		}, "failed to list user teams")
	}

	return interactions.EmbedView(buildMyTeamsEmbed(res.Data)), nil
}
