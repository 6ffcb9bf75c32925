package utils

import (
	"context"
	stderrors "errors"

	"github.com/gofiber/fiber/v2"
	"github.com/urbanyx-service/internal/pkg/errors"
)

type SuccessResponse struct {
	Data interface{} `json:"data"`
	Meta *Meta       `json:"meta,omitempty"`
}

type ErrorResponse struct {
	Error *errors.AppError `json:"error"`
}

type Meta struct {
	Total     int     `json:"total,omitempty"`
	Limit     int     `json:"limit,omitempty"`
	TimeMSec  float64 `json:"time_ms,omitempty"`
	RequestID string  `json:"request_id,omitempty"`
}

func SendSuccess(c *fiber.Ctx, data interface{}, meta *Meta) error {
	return c.JSON(SuccessResponse{
		Data: data,
		Meta: meta,
	})
}

func SendError(c *fiber.Ctx, err error) error {
	appErr, ok := errors.As(err)
	if !ok {
		switch {
		case stderrors.Is(err, context.Canceled):
			appErr = errors.ErrRequestCancelled
		case stderrors.Is(err, context.DeadlineExceeded):
			appErr = errors.ErrRequestTimeout
		default:
			// Unknown error - return 500
			appErr = errors.ErrInternalServer
		}
	}

	return c.Status(appErr.StatusCode).JSON(ErrorResponse{
		Error: appErr,
	})
}
