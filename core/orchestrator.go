package core

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

type Orchestrator struct {
	logger  *zap.Logger
	workers []Worker
}

func NewOrchestrator(logger *zap.Logger, workers []Worker) *Orchestrator {
	return &Orchestrator{logger, workers}
}

// Start schedules every worker with a non-empty schedule and starts the
// cron runner. The caller stops it.
func (o *Orchestrator) Start() (*cron.Cron, error) {
	c := cron.New()

	for _, worker := range o.workers {
		if worker.Schedule() == "" {
			o.logger.Info("Worker disabled", zap.String("worker", worker.Name()))
			continue
		}

		_, err := c.AddFunc(worker.Schedule(), func() {
			if worker.Ready(time.Now()) {
				go worker.Execute()
			}
		})
		if err != nil {
			return nil, fmt.Errorf("schedule worker %s: %w", worker.Name(), err)
		}

		o.logger.Info("Worker scheduled",
			zap.String("worker", worker.Name()),
			zap.String("schedule", worker.Schedule()),
		)
	}

	c.Start()
	return c, nil
}
