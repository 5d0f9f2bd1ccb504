package user

import (
	"context"

	"github.com/go-chi/jwtauth/v5"
)

// ActorFromContext extracts the acting account from the verified JWT
// claims placed in the request context by the jwtauth middleware.
func ActorFromContext(ctx context.Context) (Actor, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return Actor{}, ErrInvalidToken
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return Actor{}, ErrInvalidToken
	}

	orgID, ok := claims["organization_id"].(string)
	if !ok || orgID == "" {
		return Actor{}, ErrInvalidToken
	}

	role, ok := claims["role"].(string)
	if !ok || (Role(role) != RoleOwner && Role(role) != RoleForeman) {
		return Actor{}, ErrInvalidToken
	}

	actor := Actor{
		ID:             userID,
		Role:           Role(role),
		OrganizationID: orgID,
	}
	if workerID, ok := claims["worker_id"].(string); ok && workerID != "" {
		actor.WorkerID = &workerID
	}

	return actor, nil
}
