package server

import (
	"encoding/json"
	"net/http"
	"runtime"
	"sync/atomic"
	"time"
)

// Metrics collects basic application metrics (no Prometheus dep needed for MVP).
type Metrics struct {
	wsConnections    atomic.Int64
	liveFeeds        atomic.Int64
	matchesSimulated atomic.Int64
	goalsScored      atomic.Int64
	roundsRun        atomic.Int64
	startTime        time.Time
}

func NewMetrics() *Metrics {
	return &Metrics{startTime: time.Now()}
}

func (m *Metrics) IncrWSConn()        { m.wsConnections.Add(1) }
func (m *Metrics) DecrWSConn()        { m.wsConnections.Add(-1) }
func (m *Metrics) IncrLiveFeeds()     { m.liveFeeds.Add(1) }
func (m *Metrics) DecrLiveFeeds()     { m.liveFeeds.Add(-1) }
func (m *Metrics) IncrRounds()        { m.roundsRun.Add(1) }
func (m *Metrics) AddMatches(n int64) { m.matchesSimulated.Add(n) }
func (m *Metrics) AddGoals(n int64)   { m.goalsScored.Add(n) }

// ServeHTTP exposes metrics as JSON at /metrics.
func (m *Metrics) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	data := map[string]any{
		"uptime_seconds":    int(time.Since(m.startTime).Seconds()),
		"ws_connections":    m.wsConnections.Load(),
		"live_feeds":        m.liveFeeds.Load(),
		"rounds_run":        m.roundsRun.Load(),
		"matches_simulated": m.matchesSimulated.Load(),
		"goals_scored":      m.goalsScored.Load(),
		"goroutines":        runtime.NumGoroutine(),
		"heap_alloc_mb":     mem.HeapAlloc / 1024 / 1024,
		"sys_mb":            mem.Sys / 1024 / 1024,
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
}
