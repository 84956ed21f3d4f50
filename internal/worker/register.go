package worker

import (
	"pricecheck-web/internal/config"

	"github.com/hibiken/asynq"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
)

func RegisterHandlers(mux *asynq.ServeMux, db *sqlx.DB, redisClient *redis.Client, cfg *config.Config) {
	// Create price check task handler
	priceCheckHandler := NewPriceCheckTaskHandler(db, redisClient, cfg)

	// Register task handlers
	mux.HandleFunc(TaskTypePriceCheck, priceCheckHandler.Handle)
}
