package shipments_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"shipment-service/workers/shipments"
)

type fakeCounter struct {
	counts map[string]int64
	err    error
	calls  int
}

func (f *fakeCounter) CountByStatus(context.Context) (map[string]int64, error) {
	f.calls++
	return f.counts, f.err
}

func TestReport_SortsAndLogs(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	counter := &fakeCounter{counts: map[string]int64{"pending": 3, "delivered": 2, "in_transit": 1}}
	w := shipments.NewWorker(zap.New(core), counter, "*/30 * * * *")

	report, err := w.Report(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []shipments.StatusCount{
		{Status: "delivered", Total: 2},
		{Status: "in_transit", Total: 1},
		{Status: "pending", Total: 3},
	}, report)

	entries := logs.FilterMessage("Shipment status report").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, int64(6), fields["total"])
	assert.Equal(t, int64(3), fields["pending"])
}

func TestReport_Empty(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	w := shipments.NewWorker(zap.New(core), &fakeCounter{counts: map[string]int64{}}, "")

	report, err := w.Report(context.Background())
	require.NoError(t, err)
	assert.Empty(t, report)
	assert.Equal(t, 0, logs.FilterMessage("Shipment status report").Len())
}

func TestExecute_LogsFailure(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	counter := &fakeCounter{err: errors.New("db down")}
	w := shipments.NewWorker(zap.New(core), counter, "*/30 * * * *")

	assert.True(t, w.Ready(time.Now()))
	w.Execute()

	assert.Equal(t, 1, counter.calls)
	assert.Equal(t, 1, logs.FilterMessage("Failed to build shipment status report").Len())
	assert.True(t, w.Ready(time.Now()), "worker must be ready again after a run")
}

func TestWorker_Identity(t *testing.T) {
	w := shipments.NewWorker(zap.NewNop(), &fakeCounter{}, "@hourly")
	assert.Equal(t, "@hourly", w.Schedule())
	assert.Equal(t, "shipment-status-report", w.Name())
}
