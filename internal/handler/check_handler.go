package handler

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"pricecheck-web/internal/config"
	"pricecheck-web/internal/models"
	"pricecheck-web/internal/service"
	"pricecheck-web/internal/utils"
	"pricecheck-web/internal/worker"

	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
)

type CheckHandler struct {
	cfg           *config.Config
	settings      *service.SettingsService
	runService    *service.RunService
	runStore      service.RunStore
	exportService *service.ExportService
	asynqClient   *asynq.Client
}

// NewCheckHandler wires the price check endpoints. asynqClient may be nil;
// runs then execute inline in this process instead of on the worker.
func NewCheckHandler(
	cfg *config.Config,
	settings *service.SettingsService,
	runService *service.RunService,
	runStore service.RunStore,
	asynqClient *asynq.Client,
) *CheckHandler {
	return &CheckHandler{
		cfg:           cfg,
		settings:      settings,
		runService:    runService,
		runStore:      runStore,
		exportService: service.NewExportService(),
		asynqClient:   asynqClient,
	}
}

// StartCheck kicks off a new price check run and returns its code
// immediately. Progress and results are fetched with the run endpoints.
func (h *CheckHandler) StartCheck(c *fiber.Ctx) error {
	runCode := service.NewRunCode()

	queued := models.CheckRun{
		RunCode:   runCode,
		Status:    models.RunQueued,
		StartedAt: time.Now(),
	}
	if err := h.runStore.SaveProgress(c.Context(), queued); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to queue price check", err)
	}

	if h.asynqClient != nil {
		task, err := worker.NewPriceCheckTask(runCode)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to build price check task", err)
		}
		if _, err := h.asynqClient.Enqueue(task); err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to enqueue price check", err)
		}
	} else {
		go h.runInline(runCode)
	}

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"success":  true,
		"message":  "Price check started",
		"run_code": runCode,
	})
}

// runInline executes the run in this process when no worker is attached.
func (h *CheckHandler) runInline(runCode string) {
	ctx := context.Background()
	log := utils.GetLogger()

	progress := func(phase string, fraction float64) {
		run := models.CheckRun{
			RunCode:  runCode,
			Status:   models.RunRunning,
			Phase:    phase,
			Progress: fraction,
		}
		if err := h.runStore.SaveProgress(ctx, run); err != nil {
			log.WithError(err).Warn("Failed to save run progress")
		}
	}

	stored := h.runService.BuildRun(ctx, runCode, h.settings.Sources(), h.settings.Tolerances(), progress)

	if err := h.runStore.SaveRun(ctx, stored); err != nil {
		log.WithError(err).Error("Failed to store price check run")
		return
	}
	if err := h.runStore.SaveProgress(ctx, stored.Run); err != nil {
		log.WithError(err).Warn("Failed to save final run progress")
	}

	if stored.Run.Status == models.RunFailed {
		log.WithField("run_code", runCode).WithField("error", stored.Run.ErrorMessage).Warn("Price check run failed")
	}
}

// GetRun returns the current lifecycle record for a run.
func (h *CheckHandler) GetRun(c *fiber.Ctx) error {
	runCode, err := h.resolveRunCode(c)
	if err != nil {
		return h.runError(c, err)
	}

	run, err := h.runStore.GetProgress(c.Context(), runCode)
	if err == nil {
		return utils.SuccessResponse(c, "Run retrieved successfully", run)
	}
	if !errors.Is(err, service.ErrRunNotFound) {
		return h.runError(c, err)
	}

	// Progress entries expire before stored results do.
	stored, err := h.runStore.GetRun(c.Context(), runCode)
	if err != nil {
		return h.runError(c, err)
	}
	return utils.SuccessResponse(c, "Run retrieved successfully", stored.Run)
}

// GetResults returns the evaluated products of a completed run, filtered,
// sorted and paginated.
func (h *CheckHandler) GetResults(c *fiber.Ctx) error {
	stored, err := h.loadRun(c)
	if err != nil {
		return h.runError(c, err)
	}

	params := utils.GetPaginationParams(c)
	filtered := service.FilterProducts(stored.Products, service.FilterParams{
		Search:   params.Search,
		Brands:   splitMulti(c.Query("brands")),
		Statuses: splitMulti(c.Query("statuses")),
	})
	sorted := service.SortProducts(filtered, params.OrderBy, params.OrderDir)

	from, to := utils.PageSlice(params.Page, params.Limit, len(sorted))
	pagination := utils.CalculatePagination(params.Page, params.Limit, int64(len(sorted)))

	responseData := fiber.Map{
		"run":      stored.Run,
		"products": sorted[from:to],
	}
	return utils.PaginatedResponseBuilder(c, "Results retrieved successfully", responseData, pagination)
}

// GetSummary returns the scorecard statistics over the full, unfiltered run.
func (h *CheckHandler) GetSummary(c *fiber.Ctx) error {
	stored, err := h.loadRun(c)
	if err != nil {
		return h.runError(c, err)
	}
	return utils.SuccessResponse(c, "Summary retrieved successfully", service.Summarize(stored.Products))
}

// ExportResults streams the run's results in the requested format. CSV
// formats apply the same filters as GetResults; xlsx always exports the
// full set.
func (h *CheckHandler) ExportResults(c *fiber.Ctx) error {
	stored, err := h.loadRun(c)
	if err != nil {
		return h.runError(c, err)
	}

	format := c.Query("format", service.ExportDefault)
	if format == "xlsx" {
		return h.exportExcel(c, stored)
	}

	filtered := service.FilterProducts(stored.Products, service.FilterParams{
		Search:   c.Query("search"),
		Brands:   splitMulti(c.Query("brands")),
		Statuses: splitMulti(c.Query("statuses")),
	})

	data, err := h.exportService.BuildCSV(filtered, format)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Failed to build export", err)
	}

	filename := fmt.Sprintf("price-check-%s-%s.csv", format, stored.Run.RunCode)
	c.Set("Content-Type", "text/csv")
	c.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(data)
}

func (h *CheckHandler) exportExcel(c *fiber.Ctx, stored models.StoredRun) error {
	if err := os.MkdirAll(h.cfg.ExportPath, 0o755); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create export directory", err)
	}

	filename := fmt.Sprintf("price-check-%s.xlsx", stored.Run.RunCode)
	outputPath := filepath.Join(h.cfg.ExportPath, filename)
	if err := h.exportService.ExportResultsExcel(stored.Products, outputPath); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to build export", err)
	}

	return c.Download(outputPath, filename)
}

// loadRun resolves the request's run code and fetches the stored run.
func (h *CheckHandler) loadRun(c *fiber.Ctx) (models.StoredRun, error) {
	runCode, err := h.resolveRunCode(c)
	if err != nil {
		return models.StoredRun{}, err
	}
	return h.runStore.GetRun(c.Context(), runCode)
}

// runError maps run lookup failures onto the API error envelope.
func (h *CheckHandler) runError(c *fiber.Ctx, err error) error {
	if errors.Is(err, service.ErrRunNotFound) {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Run not found", err)
	}
	return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to retrieve run", err)
}

// resolveRunCode maps the "latest" alias onto the most recent completed run.
func (h *CheckHandler) resolveRunCode(c *fiber.Ctx) (string, error) {
	runCode := c.Params("code")
	if runCode != "latest" {
		return runCode, nil
	}
	return h.runStore.LatestRunCode(c.Context())
}

// splitMulti parses a comma-separated multi-select query value.
func splitMulti(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
