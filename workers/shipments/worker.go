package shipments

import (
	"context"
	"sort"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

const reportTimeout = 30 * time.Second

// StatusCounter reports how many shipments are in each status.
type StatusCounter interface {
	CountByStatus(ctx context.Context) (map[string]int64, error)
}

// StatusCount is one line of a status report.
type StatusCount struct {
	Status string
	Total  int64
}

// Worker periodically logs a summary of shipments per status.
type Worker struct {
	logger   *zap.Logger
	counter  StatusCounter
	schedule string
	busy     atomic.Bool
}

func NewWorker(logger *zap.Logger, counter StatusCounter, schedule string) *Worker {
	return &Worker{
		logger:   logger,
		counter:  counter,
		schedule: schedule,
	}
}

func (w *Worker) Name() string {
	return "shipment-status-report"
}

func (w *Worker) Schedule() string {
	return w.schedule
}

func (w *Worker) Ready(time.Time) bool {
	return !w.busy.Load()
}

func (w *Worker) Execute() {
	if !w.busy.CompareAndSwap(false, true) {
		return
	}
	defer w.busy.Store(false)

	ctx, cancel := context.WithTimeout(context.Background(), reportTimeout)
	defer cancel()

	if _, err := w.Report(ctx); err != nil {
		w.logger.Error("Failed to build shipment status report", zap.Error(err))
	}
}

// Report counts shipments per status, logs the result and returns it sorted
// by status.
func (w *Worker) Report(ctx context.Context) ([]StatusCount, error) {
	counts, err := w.counter.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	report := make([]StatusCount, 0, len(counts))
	var total int64
	for status, n := range counts {
		report = append(report, StatusCount{Status: status, Total: n})
		total += n
	}
	sort.Slice(report, func(i, j int) bool {
		return report[i].Status < report[j].Status
	})

	if total == 0 {
		w.logger.Info("No shipments stored. Status report completed 😴")
		return report, nil
	}

	fields := make([]zap.Field, 0, len(report)+1)
	fields = append(fields, zap.Int64("total", total))
	for _, line := range report {
		fields = append(fields, zap.Int64(line.Status, line.Total))
	}
	w.logger.Info("Shipment status report", fields...)

	return report, nil
}
