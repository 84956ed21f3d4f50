package service

import (
	"pricecheck-web/internal/config"
	"pricecheck-web/internal/models"
	"pricecheck-web/internal/repository"
	"pricecheck-web/internal/utils"
)

// SettingsService resolves the effective run configuration. It prefers the
// settings database and falls back to the built-in defaults when the store
// is absent, empty or unreachable, so a check can always run.
type SettingsService struct {
	sourceRepo    *repository.SourceRepository
	toleranceRepo *repository.ToleranceRepository
}

func NewSettingsService(sourceRepo *repository.SourceRepository, toleranceRepo *repository.ToleranceRepository) *SettingsService {
	return &SettingsService{
		sourceRepo:    sourceRepo,
		toleranceRepo: toleranceRepo,
	}
}

func (s *SettingsService) Sources() []models.DataSource {
	if s.sourceRepo != nil {
		sources, err := s.sourceRepo.GetSources()
		if err == nil && len(sources) > 0 {
			return sources
		}
		if err != nil {
			utils.GetLogger().WithError(err).Warn("Failed to load data sources, using defaults")
		}
	}
	return config.DefaultDataSources()
}

func (s *SettingsService) Tolerances() []models.BrandTolerance {
	if s.toleranceRepo != nil {
		tolerances, err := s.toleranceRepo.GetAllTolerances()
		if err == nil && len(tolerances) > 0 {
			return tolerances
		}
		if err != nil {
			utils.GetLogger().WithError(err).Warn("Failed to load brand tolerances, using defaults")
		}
	}
	return config.DefaultTolerances()
}
