package handler

import (
	"agri-match/internal/delivery/http/middleware"
	"agri-match/internal/domain/matching"
	"agri-match/internal/domain/profile"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

// viewerFromLocals builds the viewer context from the authenticated caller.
// Anonymous callers and candidates browse as the public.
func viewerFromLocals(c fiber.Ctx) matching.Viewer {
	userID := middleware.UserID(c)
	if userID == uuid.Nil {
		return matching.PublicViewer()
	}
	switch profile.Role(middleware.Role(c)) {
	case profile.RoleAdmin:
		return matching.AdminViewer()
	case profile.RoleFarm:
		return matching.OwnerViewer(userID)
	default:
		return matching.PublicViewer()
	}
}

func requireUser(c fiber.Ctx) (uuid.UUID, error) {
	userID := middleware.UserID(c)
	if userID == uuid.Nil {
		return uuid.Nil, middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	return userID, nil
}

func parseUUIDParam(c fiber.Ctx, key string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(key))
	if err != nil {
		return uuid.Nil, middleware.NewAppError(fiber.StatusBadRequest, "Invalid "+key, nil, err)
	}
	return id, nil
}
