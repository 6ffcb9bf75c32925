package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/urbanyx-service/internal/pkg/utils"
	"github.com/urbanyx-service/internal/usecase"
	"github.com/urbanyx-service/internal/usecase/dto"
)

// EnvironmentHandler - детские площадки и уличные снимки вокруг точки
type EnvironmentHandler struct {
	playgroundUC *usecase.PlaygroundUseCase
	streetViewUC *usecase.StreetViewUseCase
	logger       *zap.Logger
}

// NewEnvironmentHandler - создание нового EnvironmentHandler
func NewEnvironmentHandler(
	playgroundUC *usecase.PlaygroundUseCase,
	streetViewUC *usecase.StreetViewUseCase,
	logger *zap.Logger,
) *EnvironmentHandler {
	return &EnvironmentHandler{
		playgroundUC: playgroundUC,
		streetViewUC: streetViewUC,
		logger:       logger,
	}
}

// GetPlaygrounds godoc
// @Summary Детские площадки вокруг точки
// @Description Площадки и парки из OpenStreetMap (Overpass) с оценкой оборудования, безопасности и удобств
// @Tags Environment
// @Produce json
// @Param lat query number true "Широта"
// @Param lon query number true "Долгота"
// @Param radius query int false "Радиус в метрах (10-5000)" default(500)
// @Success 200 {object} utils.SuccessResponse{data=domain.PlaygroundReport}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/playgrounds [get]
func (h *EnvironmentHandler) GetPlaygrounds(c *fiber.Ctx) error {
	lat, lon, err := queryCoordinates(c)
	if err != nil {
		return utils.SendError(c, err)
	}
	req := dto.PlaygroundRequest{Lat: lat, Lon: lon, Radius: c.QueryInt("radius", 0)}
	if err := validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	report, err := h.playgroundUC.Analyze(c.UserContext(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, report, &utils.Meta{Total: report.Count})
}

// GetStreetView godoc
// @Summary Уличные снимки вокруг точки
// @Description До пяти снимков Mapillary на расстоянии 30-270 м, по одному на диапазон 50/100/150/200/250 м
// @Tags Environment
// @Produce json
// @Param lat query number true "Широта"
// @Param lon query number true "Долгота"
// @Success 200 {object} utils.SuccessResponse{data=dto.StreetViewResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/streetview [get]
func (h *EnvironmentHandler) GetStreetView(c *fiber.Ctx) error {
	lat, lon, err := queryCoordinates(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.streetViewUC.Select(c.UserContext(), dto.StreetViewRequest{Lat: lat, Lon: lon})
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{Total: result.Count})
}
