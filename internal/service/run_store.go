package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"pricecheck-web/internal/models"

	"github.com/redis/go-redis/v9"
)

// ErrRunNotFound is returned when no run exists under the requested code.
var ErrRunNotFound = errors.New("run not found")

// RunStore persists run progress and completed results.
type RunStore interface {
	SaveProgress(ctx context.Context, run models.CheckRun) error
	GetProgress(ctx context.Context, runCode string) (models.CheckRun, error)
	SaveRun(ctx context.Context, stored models.StoredRun) error
	GetRun(ctx context.Context, runCode string) (models.StoredRun, error)
	LatestRunCode(ctx context.Context) (string, error)
}

const (
	runKeyPrefix      = "pricecheck:run:"
	progressKeyPrefix = "pricecheck:progress:"
	latestRunKey      = "pricecheck:latest"

	runTTL      = 7 * 24 * time.Hour
	progressTTL = 24 * time.Hour
)

// redisRunStore keeps runs in Redis so the web process and the worker share
// them.
type redisRunStore struct {
	client *redis.Client
}

func NewRedisRunStore(client *redis.Client) RunStore {
	return &redisRunStore{client: client}
}

func (s *redisRunStore) SaveProgress(ctx context.Context, run models.CheckRun) error {
	data, err := json.Marshal(run)
	if err != nil {
		return fmt.Errorf("failed to marshal run progress: %w", err)
	}
	return s.client.Set(ctx, progressKeyPrefix+run.RunCode, data, progressTTL).Err()
}

func (s *redisRunStore) GetProgress(ctx context.Context, runCode string) (models.CheckRun, error) {
	data, err := s.client.Get(ctx, progressKeyPrefix+runCode).Bytes()
	if err == redis.Nil {
		return models.CheckRun{}, ErrRunNotFound
	}
	if err != nil {
		return models.CheckRun{}, err
	}
	var run models.CheckRun
	if err := json.Unmarshal(data, &run); err != nil {
		return models.CheckRun{}, fmt.Errorf("failed to unmarshal run progress: %w", err)
	}
	return run, nil
}

func (s *redisRunStore) SaveRun(ctx context.Context, stored models.StoredRun) error {
	data, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("failed to marshal stored run: %w", err)
	}
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, runKeyPrefix+stored.Run.RunCode, data, runTTL)
	if stored.Run.Status == models.RunCompleted {
		pipe.Set(ctx, latestRunKey, stored.Run.RunCode, runTTL)
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (s *redisRunStore) GetRun(ctx context.Context, runCode string) (models.StoredRun, error) {
	data, err := s.client.Get(ctx, runKeyPrefix+runCode).Bytes()
	if err == redis.Nil {
		return models.StoredRun{}, ErrRunNotFound
	}
	if err != nil {
		return models.StoredRun{}, err
	}
	var stored models.StoredRun
	if err := json.Unmarshal(data, &stored); err != nil {
		return models.StoredRun{}, fmt.Errorf("failed to unmarshal stored run: %w", err)
	}
	return stored, nil
}

func (s *redisRunStore) LatestRunCode(ctx context.Context) (string, error) {
	code, err := s.client.Get(ctx, latestRunKey).Result()
	if err == redis.Nil {
		return "", ErrRunNotFound
	}
	return code, err
}

// memoryRunStore is the single-process fallback used when Redis is not
// configured. Runs started here do not survive a restart.
type memoryRunStore struct {
	mu       sync.RWMutex
	progress map[string]models.CheckRun
	runs     map[string]models.StoredRun
	latest   string
}

func NewMemoryRunStore() RunStore {
	return &memoryRunStore{
		progress: make(map[string]models.CheckRun),
		runs:     make(map[string]models.StoredRun),
	}
}

func (s *memoryRunStore) SaveProgress(_ context.Context, run models.CheckRun) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.progress[run.RunCode] = run
	return nil
}

func (s *memoryRunStore) GetProgress(_ context.Context, runCode string) (models.CheckRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	run, ok := s.progress[runCode]
	if !ok {
		return models.CheckRun{}, ErrRunNotFound
	}
	return run, nil
}

func (s *memoryRunStore) SaveRun(_ context.Context, stored models.StoredRun) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[stored.Run.RunCode] = stored
	if stored.Run.Status == models.RunCompleted {
		s.latest = stored.Run.RunCode
	}
	return nil
}

func (s *memoryRunStore) GetRun(_ context.Context, runCode string) (models.StoredRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stored, ok := s.runs[runCode]
	if !ok {
		return models.StoredRun{}, ErrRunNotFound
	}
	return stored, nil
}

func (s *memoryRunStore) LatestRunCode(_ context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.latest == "" {
		return "", ErrRunNotFound
	}
	return s.latest, nil
}
