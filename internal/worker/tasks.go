package worker

import (
	"encoding/json"

	"spbu-service/internal/consumers"

	"github.com/hibiken/asynq"
)

// Task Types
const (
	TypeActivityLog = "activity-log"
)

func NewActivityLogTask(payload consumers.ActivityLogDTO) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeActivityLog, data, asynq.Queue("low"), asynq.MaxRetry(0)), nil
}
