package controllers

import (
	"context"

	"github.com/google/uuid"

	"github.com/hardikraval/medlocate-backend/api/middleware"
	"github.com/hardikraval/medlocate-backend/pkg/enums"
	pkgerrors "github.com/hardikraval/medlocate-backend/pkg/errors"
)

// actorFromContext resolves the authenticated user and role seeded by the
// auth middleware.
func actorFromContext(ctx context.Context) (uuid.UUID, enums.UserRole, error) {
	raw := middleware.UserIDFromContext(ctx)
	if raw == "" {
		return uuid.Nil, "", pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials")
	}
	userID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, "", pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid user id")
	}
	role, err := enums.ParseUserRole(middleware.RoleFromContext(ctx))
	if err != nil {
		return uuid.Nil, "", pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid role")
	}
	return userID, role, nil
}
