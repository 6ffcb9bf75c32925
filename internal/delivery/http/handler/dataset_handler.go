package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/urbanyx-service/internal/pkg/utils"
	"github.com/urbanyx-service/internal/usecase"
	"github.com/urbanyx-service/internal/usecase/dto"
)

// DatasetHandler - состояние и перезагрузка датасетов, список детсадов
type DatasetHandler struct {
	datasetUC *usecase.DatasetUseCase
	logger    *zap.Logger
}

// NewDatasetHandler - создание нового DatasetHandler
func NewDatasetHandler(datasetUC *usecase.DatasetUseCase, logger *zap.Logger) *DatasetHandler {
	return &DatasetHandler{
		datasetUC: datasetUC,
		logger:    logger,
	}
}

// Status godoc
// @Summary Состояние датасетов
// @Description Возвращает число записей, время загрузки и последнюю ошибку по каждому датасету (детсады, ДТП, школы)
// @Tags Datasets
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.DatasetStatusResponse}
// @Router /api/v1/datasets/status [get]
func (h *DatasetHandler) Status(c *fiber.Ctx) error {
	return utils.SendSuccess(c, h.datasetUC.Status(), nil)
}

// Reload godoc
// @Summary Перезагрузка датасетов
// @Description Параллельно загружает все три датасета. Неудачный датасет сохраняет прежнее содержимое.
// @Tags Datasets
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.DatasetStatusResponse}
// @Failure 502 {object} utils.ErrorResponse
// @Router /api/v1/datasets/reload [post]
func (h *DatasetHandler) Reload(c *fiber.Ctx) error {
	start := time.Now()

	status, err := h.datasetUC.Reload(c.UserContext())
	if err != nil {
		h.logger.Error("Dataset reload failed", zap.Error(err))
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, status, &utils.Meta{TimeMSec: elapsed(start)})
}

// ListKindergartens godoc
// @Summary Список детсадов
// @Description Детсады из загруженного датасета с фильтром по подстроке названия
// @Tags Datasets
// @Produce json
// @Param q query string false "Подстрока названия"
// @Param limit query int false "Максимальное количество результатов" default(50)
// @Success 200 {object} utils.SuccessResponse{data=dto.KindergartenListResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 503 {object} utils.ErrorResponse
// @Router /api/v1/kindergartens [get]
func (h *DatasetHandler) ListKindergartens(c *fiber.Ctx) error {
	req := dto.KindergartenListRequest{
		Query: c.Query("q"),
		Limit: c.QueryInt("limit", 50),
	}
	if err := validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.datasetUC.ListKindergartens(c.UserContext(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total: result.Total,
		Limit: req.Limit,
	})
}
