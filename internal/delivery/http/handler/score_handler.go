package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/urbanyx-service/internal/pkg/utils"
	"github.com/urbanyx-service/internal/usecase"
	"github.com/urbanyx-service/internal/usecase/dto"
)

// ScoreHandler - оценка отдельных записей
type ScoreHandler struct {
	scoreUC *usecase.ScoreUseCase
}

func NewScoreHandler(scoreUC *usecase.ScoreUseCase) *ScoreHandler {
	return &ScoreHandler{scoreUC: scoreUC}
}

// ScoreSchool godoc
// @Summary Оценка доступности школы
// @Description Извлекает состояние пандуса, лифта и адаптированного WC из произвольной записи и считает оценку 0-100
// @Tags Scores
// @Accept json
// @Produce json
// @Param request body dto.SchoolScoreRequest true "Свойства школы"
// @Success 200 {object} utils.SuccessResponse{data=dto.SchoolScoreResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/scores/school [post]
func (h *ScoreHandler) ScoreSchool(c *fiber.Ctx) error {
	var req dto.SchoolScoreRequest
	if err := parseBody(c, &req); err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, h.scoreUC.ScoreSchool(req), nil)
}

// ScorePlayground godoc
// @Summary Оценка детской площадки
// @Description Оценка площадки по OSM-тегам: оборудование 40, безопасность 40, удобства 20
// @Tags Scores
// @Accept json
// @Produce json
// @Param request body dto.PlaygroundScoreRequest true "OSM-теги площадки"
// @Success 200 {object} utils.SuccessResponse{data=dto.PlaygroundScoreResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/scores/playground [post]
func (h *ScoreHandler) ScorePlayground(c *fiber.Ctx) error {
	var req dto.PlaygroundScoreRequest
	if err := parseBody(c, &req); err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, h.scoreUC.ScorePlayground(req), nil)
}
