package handler

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/urbanyx-service/internal/pkg/errors"
	"github.com/urbanyx-service/internal/pkg/utils"
	"github.com/urbanyx-service/internal/pkg/validator"
)

// parseBody - разбор JSON тела и валидация по тегам validate
func parseBody(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return apperrors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"body": "invalid JSON body",
		})
	}
	return validate(out)
}

func validate(req interface{}) error {
	if err := validator.Validate(req); err != nil {
		return apperrors.ErrInvalidRequest.WithDetails(validator.Describe(err))
	}
	return nil
}

// queryCoordinates - обязательные lat/lon из query
func queryCoordinates(c *fiber.Ctx) (float64, float64, error) {
	lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
	lon, errLon := strconv.ParseFloat(c.Query("lon"), 64)
	if errLat != nil || errLon != nil || !utils.ValidateCoordinates(lat, lon) {
		return 0, 0, apperrors.ErrInvalidCoordinates
	}
	return lat, lon, nil
}

func elapsed(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000
}
