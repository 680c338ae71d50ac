package handler

import (
	"context"
	"errors"

	"agri-match/internal/delivery/http/middleware"
	"agri-match/internal/pkg/response"
	"agri-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

func mapUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	case errors.Is(err, usecase.ErrForbidden):
		return middleware.NewAppError(fiber.StatusForbidden, "Forbidden", nil, err)
	case errors.Is(err, usecase.ErrNotCandidate):
		return middleware.NewAppError(fiber.StatusForbidden, "Farm accounts cannot apply or be matched as candidates", nil, err)
	case errors.Is(err, usecase.ErrProfileNotVerified):
		return middleware.NewAppError(fiber.StatusForbidden, "Profile must be verified before applying", nil, err)
	case errors.Is(err, usecase.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Not found", nil, err)
	case errors.Is(err, usecase.ErrDuplicateApplication):
		return middleware.NewAppError(fiber.StatusConflict, "You have already applied to this job", nil, err)
	case errors.Is(err, usecase.ErrJobNotApplicable):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Job is not accepting applications", nil, err)
	case errors.Is(err, usecase.ErrInvalidTransition):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Invalid status transition", nil, err)
	case errors.Is(err, usecase.ErrStoreUnavailable), errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return middleware.NewAppError(fiber.StatusServiceUnavailable, response.MessageServiceUnavailable, nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
