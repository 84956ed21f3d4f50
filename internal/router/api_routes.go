package router

import (
	"pricecheck-web/internal/config"
	"pricecheck-web/internal/handler"
	"pricecheck-web/internal/repository"
	"pricecheck-web/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
)

func SetupAPIRoutes(
	router fiber.Router,
	db *sqlx.DB,
	redisClient *redis.Client,
	cfg *config.Config,
) {
	// Initialize repositories (nil db leaves them nil; handlers fall back
	// to the built-in defaults)
	var sourceRepo *repository.SourceRepository
	var toleranceRepo *repository.ToleranceRepository
	if db != nil {
		sourceRepo = repository.NewSourceRepository(db)
		toleranceRepo = repository.NewToleranceRepository(db)
	}

	// Initialize services
	settings := service.NewSettingsService(sourceRepo, toleranceRepo)
	sheets := service.NewSheetService(cfg.FetchTimeout)
	runService := service.NewRunService(sheets, service.NewPriceCheckEngine())
	marketCheck := service.NewMarketCheckService(cfg.MarketCheckURL, cfg.MarketCheckAPIKey, cfg.MarketCheckTimeout)

	// Run storage: Redis when available, in-process otherwise
	var runStore service.RunStore
	if redisClient != nil {
		runStore = service.NewRedisRunStore(redisClient)
	} else {
		runStore = service.NewMemoryRunStore()
	}

	// Initialize Asynq client (optional - only if Redis is available)
	var asynqClient *asynq.Client
	if redisClient != nil {
		asynqClient = asynq.NewClient(asynq.RedisClientOpt{
			Addr:     cfg.AsynqRedisAddr,
			Password: cfg.AsynqRedisPassword,
			DB:       cfg.AsynqRedisDB,
		})
	}

	// Initialize handlers
	checkHandler := handler.NewCheckHandler(cfg, settings, runService, runStore, asynqClient)
	toleranceHandler := handler.NewToleranceHandler(toleranceRepo)
	sourceHandler := handler.NewSourceHandler(sourceRepo)
	marketHandler := handler.NewMarketHandler(marketCheck)

	// Price check routes
	checks := router.Group("/checks")
	checks.Post("/", checkHandler.StartCheck)
	checks.Get("/:code", checkHandler.GetRun)
	checks.Get("/:code/results", checkHandler.GetResults)
	checks.Get("/:code/summary", checkHandler.GetSummary)
	checks.Get("/:code/export", checkHandler.ExportResults)

	// Brand tolerance routes
	tolerances := router.Group("/tolerances")
	tolerances.Get("/", toleranceHandler.GetTolerances)
	tolerances.Get("/:id", toleranceHandler.GetTolerance)
	tolerances.Post("/", toleranceHandler.CreateTolerance)
	tolerances.Put("/:id", toleranceHandler.UpdateTolerance)
	tolerances.Delete("/:id", toleranceHandler.DeleteTolerance)

	// Data source routes
	sources := router.Group("/sources")
	sources.Get("/", sourceHandler.GetSources)
	sources.Get("/:id", sourceHandler.GetSource)
	sources.Post("/", sourceHandler.CreateSource)
	sources.Put("/:id", sourceHandler.UpdateSource)
	sources.Delete("/:id", sourceHandler.DeleteSource)

	// Market check routes
	router.Post("/market-check", marketHandler.CheckProduct)
}
