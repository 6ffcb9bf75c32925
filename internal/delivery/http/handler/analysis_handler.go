package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/urbanyx-service/internal/pkg/utils"
	"github.com/urbanyx-service/internal/usecase"
	"github.com/urbanyx-service/internal/usecase/dto"
)

// AnalysisHandler - анализ маршрутов и зон достижимости
type AnalysisHandler struct {
	routeUC *usecase.RouteUseCase
	areaUC  *usecase.AreaUseCase
	logger  *zap.Logger
}

// NewAnalysisHandler - создание нового AnalysisHandler
func NewAnalysisHandler(routeUC *usecase.RouteUseCase, areaUC *usecase.AreaUseCase, logger *zap.Logger) *AnalysisHandler {
	return &AnalysisHandler{
		routeUC: routeUC,
		areaUC:  areaUC,
		logger:  logger,
	}
}

// AnalyzeRoute godoc
// @Summary Анализ опасности маршрута
// @Description Строит маршрут Mapbox и считает ДТП в 20-метровом буфере каждого участка. Новый запрос с тем же session_id отменяет предыдущий (409 REQUEST_SUPERSEDED).
// @Tags Analysis
// @Accept json
// @Produce json
// @Param request body dto.RouteAnalyzeRequest true "Начало, конец и способ передвижения"
// @Success 200 {object} utils.SuccessResponse{data=dto.RouteAnalyzeResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Router /api/v1/routes/analyze [post]
func (h *AnalysisHandler) AnalyzeRoute(c *fiber.Ctx) error {
	start := time.Now()

	var req dto.RouteAnalyzeRequest
	if err := parseBody(c, &req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.routeUC.Analyze(c.UserContext(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		TimeMSec:  elapsed(start),
		RequestID: result.RequestID,
	})
}

// AnalyzeArea godoc
// @Summary Анализ зоны достижимости
// @Description ДТП, детсады и школы внутри изохроны Mapbox (или переданного полигона) со сводкой и текстом на грузинском
// @Tags Analysis
// @Accept json
// @Produce json
// @Param request body dto.AreaAnalyzeRequest true "Центр, способ передвижения и время"
// @Success 200 {object} utils.SuccessResponse{data=dto.AreaAnalyzeResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Router /api/v1/area/analyze [post]
func (h *AnalysisHandler) AnalyzeArea(c *fiber.Ctx) error {
	start := time.Now()

	var req dto.AreaAnalyzeRequest
	if err := parseBody(c, &req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.areaUC.Analyze(c.UserContext(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		TimeMSec:  elapsed(start),
		RequestID: result.RequestID,
	})
}
