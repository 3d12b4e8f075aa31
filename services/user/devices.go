package user

import (
	"context"

	"businessconnect/services/policy"
	"businessconnect/utils"
)

// ListSessions returns the caller's open sessions, flagging the current one.
func (s *DefaultUserService) ListSessions(ctx context.Context, actor policy.Actor) ([]SessionView, error) {
	user, err := s.GetProfile(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	views := make([]SessionView, 0, len(user.Sessions))
	for _, session := range user.Sessions {
		views = append(views, SessionView{Session: session, Current: session.ID == actor.SessionID})
	}
	return views, nil
}

// RevokeSession signs out one of the caller's other sessions.
func (s *DefaultUserService) RevokeSession(ctx context.Context, actor policy.Actor, sessionID string) error {
	user, err := s.GetProfile(ctx, actor.ID)
	if err != nil {
		return err
	}
	idx := user.FindSession(sessionID)
	if idx == -1 {
		return utils.NotFound("Session not found")
	}
	if sessionID == actor.SessionID {
		return utils.BadRequest("Cannot revoke current session")
	}

	if err := s.Repo.RemoveSession(ctx, actor.ID, sessionID); err != nil {
		return utils.Internal("Failed to revoke session", err)
	}
	utils.InvalidateAuth(ctx, user.Sessions[idx].TokenHash)
	return nil
}
