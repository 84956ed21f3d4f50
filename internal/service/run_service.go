package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"pricecheck-web/internal/models"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Run phases reported through the progress callback.
const (
	PhaseFetching   = "fetching"
	PhaseMapping    = "mapping"
	PhaseEvaluating = "evaluating"
	PhaseDone       = "done"
)

// ProgressFunc receives phase transitions while a run executes. fraction is
// in [0, 1].
type ProgressFunc func(phase string, fraction float64)

// RunService executes one full price check: fetch every source, map the
// rows, consolidate the MAP index and evaluate the master list.
type RunService struct {
	sheets *SheetService
	engine *PriceCheckEngine
}

func NewRunService(sheets *SheetService, engine *PriceCheckEngine) *RunService {
	return &RunService{sheets: sheets, engine: engine}
}

// NewRunCode returns a fresh identifier for a run.
func NewRunCode() string {
	return fmt.Sprintf("RUN-%s", strings.ToUpper(uuid.New().String()[:8]))
}

// Execute runs the full pipeline. All sources are fetched concurrently and
// every fetch must succeed; one failed source cancels the rest and fails the
// run, since results computed from a partial set would under-report
// violations.
func (s *RunService) Execute(
	ctx context.Context,
	sources []models.DataSource,
	tolerances []models.BrandTolerance,
	progress ProgressFunc,
) ([]models.EvaluatedProduct, error) {
	if progress == nil {
		progress = func(string, float64) {}
	}

	master, brands, err := splitSources(sources)
	if err != nil {
		return nil, err
	}

	progress(PhaseFetching, 0.05)

	var masterRaw []models.RawRow
	brandRaw := make([][]models.RawRow, len(brands))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := s.sheets.FetchRows(gctx, master)
		if err != nil {
			return err
		}
		masterRaw = rows
		return nil
	})
	for i := range brands {
		i := i
		g.Go(func() error {
			rows, err := s.sheets.FetchRows(gctx, brands[i])
			if err != nil {
				return err
			}
			brandRaw[i] = rows
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	progress(PhaseMapping, 0.55)

	masterRows := MapMasterRows(masterRaw, master)
	brandSources := make([]models.BrandSourceRows, len(brands))
	for i, src := range brands {
		brandSources[i] = models.BrandSourceRows{
			Source: src,
			Rows:   MapBrandRows(brandRaw[i], src),
		}
	}

	progress(PhaseEvaluating, 0.75)

	products := s.engine.Evaluate(masterRows, brandSources, tolerances)

	progress(PhaseDone, 1)

	return products, nil
}

// BuildRun wraps Execute and produces the stored run record alongside the
// evaluated products. Failures are recorded on the run instead of returned.
func (s *RunService) BuildRun(
	ctx context.Context,
	runCode string,
	sources []models.DataSource,
	tolerances []models.BrandTolerance,
	progress ProgressFunc,
) models.StoredRun {
	run := models.CheckRun{
		RunCode:   runCode,
		Status:    models.RunRunning,
		StartedAt: time.Now(),
	}

	products, err := s.Execute(ctx, sources, tolerances, progress)
	completed := time.Now()
	run.CompletedAt = &completed

	if err != nil {
		run.Status = models.RunFailed
		run.ErrorMessage = err.Error()
		return models.StoredRun{Run: run}
	}

	run.Status = models.RunCompleted
	run.Phase = PhaseDone
	run.Progress = 1
	run.TotalProducts = len(products)
	for _, p := range products {
		if p.Status == models.StatusViolation {
			run.ViolationCount++
		}
	}

	return models.StoredRun{Run: run, Products: products}
}

// splitSources separates the master list from the brand sources and orders
// the brands by their configured position.
func splitSources(sources []models.DataSource) (models.DataSource, []models.DataSource, error) {
	var master models.DataSource
	found := false
	var brands []models.DataSource

	for _, src := range sources {
		if src.IsMaster {
			if found {
				return models.DataSource{}, nil, fmt.Errorf("multiple master sources configured")
			}
			master = src
			found = true
			continue
		}
		brands = append(brands, src)
	}
	if !found {
		return models.DataSource{}, nil, fmt.Errorf("no master source configured")
	}

	sort.SliceStable(brands, func(i, j int) bool {
		return brands[i].Position < brands[j].Position
	})

	return master, brands, nil
}
