package worker

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

const TaskTypePriceCheck = "pricecheck:run"

type PriceCheckPayload struct {
	RunCode string `json:"run_code"`
}

// NewPriceCheckTask builds the asynq task that kicks off one full price
// check under the given run code.
func NewPriceCheckTask(runCode string) (*asynq.Task, error) {
	payload, err := json.Marshal(PriceCheckPayload{RunCode: runCode})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal price check payload: %w", err)
	}
	return asynq.NewTask(TaskTypePriceCheck, payload), nil
}
