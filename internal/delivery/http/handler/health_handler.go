package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/urbanyx-service/internal/pkg/utils"
	"github.com/urbanyx-service/internal/usecase"
	"github.com/urbanyx-service/internal/usecase/dto"
)

// HealthHandler - проверка состояния сервиса
type HealthHandler struct {
	datasetUC *usecase.DatasetUseCase
}

func NewHealthHandler(datasetUC *usecase.DatasetUseCase) *HealthHandler {
	return &HealthHandler{datasetUC: datasetUC}
}

// Health godoc
// @Summary Health check
// @Description Состояние сервиса и готовность датасетов
// @Tags Health
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.HealthResponse}
// @Router /api/v1/health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return utils.SendSuccess(c, dto.HealthResponse{
		Status:   "healthy",
		Service:  "urbanyx-service",
		Datasets: h.datasetUC.Ready(),
	}, nil)
}
