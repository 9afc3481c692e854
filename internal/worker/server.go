package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"spbu-service/internal/consumers"

	"github.com/hibiken/asynq"
)

type Worker struct {
	Writer *consumers.ActivityWriter
}

func NewWorker(writer *consumers.ActivityWriter) *Worker {
	return &Worker{
		Writer: writer,
	}
}

func (w *Worker) HandleActivityLog(ctx context.Context, t *asynq.Task) error {
	var p consumers.ActivityLogDTO
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("json.Unmarshal failed: %v: %w", err, asynq.SkipRetry)
	}
	w.Writer.WriteActivityLog(p)
	return nil
}

func StartWorker(redisOpt asynq.RedisClientOpt, writer *consumers.ActivityWriter) {
	srv := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: 5,
			Queues: map[string]int{
				"default": 3,
				"low":     1,
			},
		},
	)

	worker := NewWorker(writer)
	mux := asynq.NewServeMux()

	mux.HandleFunc(TypeActivityLog, worker.HandleActivityLog)

	if err := srv.Run(mux); err != nil {
		log.Fatalf("could not run server: %v", err)
	}
}
