package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"pricecheck-web/internal/config"
	"pricecheck-web/internal/models"
	"pricecheck-web/internal/repository"
	"pricecheck-web/internal/service"
	"pricecheck-web/internal/utils"

	"github.com/hibiken/asynq"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
)

type PriceCheckTaskHandler struct {
	cfg        *config.Config
	settings   *service.SettingsService
	runService *service.RunService
	runStore   service.RunStore
}

func NewPriceCheckTaskHandler(db *sqlx.DB, redisClient *redis.Client, cfg *config.Config) *PriceCheckTaskHandler {
	sheets := service.NewSheetService(cfg.FetchTimeout)
	engine := service.NewPriceCheckEngine()

	var sourceRepo *repository.SourceRepository
	var toleranceRepo *repository.ToleranceRepository
	if db != nil {
		sourceRepo = repository.NewSourceRepository(db)
		toleranceRepo = repository.NewToleranceRepository(db)
	}

	return &PriceCheckTaskHandler{
		cfg:        cfg,
		settings:   service.NewSettingsService(sourceRepo, toleranceRepo),
		runService: service.NewRunService(sheets, engine),
		runStore:   service.NewRedisRunStore(redisClient),
	}
}

func (h *PriceCheckTaskHandler) Handle(ctx context.Context, task *asynq.Task) error {
	var payload PriceCheckPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	log := utils.GetLogger()
	log.WithField("run_code", payload.RunCode).Info("Starting price check run")

	sources := h.settings.Sources()
	tolerances := h.settings.Tolerances()

	progress := func(phase string, fraction float64) {
		run := models.CheckRun{
			RunCode:  payload.RunCode,
			Status:   models.RunRunning,
			Phase:    phase,
			Progress: fraction,
		}
		if err := h.runStore.SaveProgress(ctx, run); err != nil {
			log.WithError(err).Warn("Failed to save run progress")
		}
	}

	stored := h.runService.BuildRun(ctx, payload.RunCode, sources, tolerances, progress)

	if err := h.runStore.SaveRun(ctx, stored); err != nil {
		return fmt.Errorf("failed to store run %s: %w", payload.RunCode, err)
	}
	if err := h.runStore.SaveProgress(ctx, stored.Run); err != nil {
		log.WithError(err).Warn("Failed to save final run progress")
	}

	if stored.Run.Status == models.RunFailed {
		return fmt.Errorf("price check run %s failed: %s", payload.RunCode, stored.Run.ErrorMessage)
	}

	log.WithFields(map[string]interface{}{
		"run_code":   payload.RunCode,
		"products":   stored.Run.TotalProducts,
		"violations": stored.Run.ViolationCount,
	}).Info("Price check run completed")

	return nil
}
