package usecase

import (
	"go.uber.org/zap"

	"github.com/urbanyx-service/internal/analysis"
	"github.com/urbanyx-service/internal/domain"
	"github.com/urbanyx-service/internal/usecase/dto"
)

// ScoreUseCase - оценка отдельной записи школы или площадки
type ScoreUseCase struct {
	logger *zap.Logger
}

func NewScoreUseCase(logger *zap.Logger) *ScoreUseCase {
	return &ScoreUseCase{logger: logger}
}

func (uc *ScoreUseCase) ScoreSchool(req dto.SchoolScoreRequest) *dto.SchoolScoreResponse {
	features := analysis.ExtractSchoolFeatures(domain.TaggedRecord(req.Properties))
	score := analysis.ScoreSchool(features)

	uc.logger.Debug("School scored",
		zap.String("category", string(score.Category)),
		zap.Int("unknown", score.UnknownCount))

	return &dto.SchoolScoreResponse{
		Features:     features,
		Score:        score,
		CategoryInfo: analysis.CategoryDisplay(score.Category),
	}
}

func (uc *ScoreUseCase) ScorePlayground(req dto.PlaygroundScoreRequest) *dto.PlaygroundScoreResponse {
	features := analysis.ExtractPlaygroundFeatures(req.Tags)
	score := analysis.ScorePlayground(features)

	return &dto.PlaygroundScoreResponse{
		Features:     features,
		Score:        score,
		CategoryInfo: analysis.CategoryDisplay(score.Category),
		QualityLabel: analysis.PlaygroundQualityLabel(score),
	}
}
