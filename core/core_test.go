package core_test

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"shipment-service/config"
	"shipment-service/core"
)

func TestNewLogger_WritesRotatedFile(t *testing.T) {
	dir := t.TempDir()

	logger, err := core.NewLogger(config.Config{LogsDirectory: dir, LogLevel: "info"})
	require.NoError(t, err)
	logger.Info("hello", zap.String("k", "v"))
	_ = logger.Sync()

	files, err := filepath.Glob(filepath.Join(dir, "shipment-service-*.log"))
	require.NoError(t, err)
	require.Len(t, files, 1)

	data, err := os.ReadFile(files[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello")
	assert.Contains(t, string(data), "INFO")
}

func TestNewLogger_InvalidLevel(t *testing.T) {
	_, err := core.NewLogger(config.Config{LogLevel: "chatty"})
	assert.Error(t, err)
}

func TestOpenDatabase_UnknownDriver(t *testing.T) {
	_, err := core.OpenDatabase(config.DatabaseConfig{Driver: "oracle"}, zap.NewNop())
	assert.ErrorContains(t, err, "unsupported database driver")
}

func TestOpenDatabase_SQLite(t *testing.T) {
	db, err := core.OpenDatabase(config.DatabaseConfig{Driver: config.DriverSQLite, DSN: ":memory:"}, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, db.Exec("SELECT 1").Error)
	require.NoError(t, core.CloseDatabase(db))
}

func TestRouter_MetricsAndLogging(t *testing.T) {
	reg := prometheus.NewRegistry()
	router := core.NewRouter(zap.NewNop(), core.NewMetrics(reg))
	router.HandleFunc("/api/things/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}).Methods(http.MethodGet)

	for _, id := range []string{"1", "2"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/things/"+id, nil))
		require.Equal(t, http.StatusTeapot, w.Code)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, `http_requests_total{method="GET",route="/api/things/{id}",status="418"} 2`)
	assert.Contains(t, body, `http_request_duration_seconds_count{method="GET",route="/api/things/{id}"} 2`)
}

func TestWithCORS(t *testing.T) {
	h := core.WithCORS(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/ping", nil)
	req.Header.Set("Origin", "https://tms.example.com")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestServe_ShutsDownOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	srv := &http.Server{Addr: addr, Handler: http.NotFoundHandler()}
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- core.Serve(ctx, zap.NewNop(), srv, time.Second) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/")
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusNotFound
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

type countingWorker struct {
	schedule string
	runs     atomic.Int32
}

func (w *countingWorker) Name() string         { return "counting" }
func (w *countingWorker) Schedule() string     { return w.schedule }
func (w *countingWorker) Ready(time.Time) bool { return true }
func (w *countingWorker) Execute()             { w.runs.Add(1) }

func TestOrchestrator_SkipsDisabledWorkers(t *testing.T) {
	o := core.NewOrchestrator(zap.NewNop(), []core.Worker{&countingWorker{}})
	c, err := o.Start()
	require.NoError(t, err)
	defer c.Stop()

	assert.Empty(t, c.Entries())
}

func TestOrchestrator_SchedulesWorkers(t *testing.T) {
	o := core.NewOrchestrator(zap.NewNop(), []core.Worker{&countingWorker{schedule: "*/5 * * * *"}})
	c, err := o.Start()
	require.NoError(t, err)
	defer c.Stop()

	assert.Len(t, c.Entries(), 1)
}

func TestOrchestrator_InvalidSchedule(t *testing.T) {
	o := core.NewOrchestrator(zap.NewNop(), []core.Worker{&countingWorker{schedule: "every tuesday"}})
	_, err := o.Start()
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "counting"))
}
