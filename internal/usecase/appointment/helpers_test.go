package appointment

import (
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/showroom-scheduler/internal/audit"
	"github.com/BruksfildServices01/showroom-scheduler/internal/clock"
	domain "github.com/BruksfildServices01/showroom-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/showroom-scheduler/internal/infra/repository/memory"
	"github.com/BruksfildServices01/showroom-scheduler/internal/metrics"
)

type recordingAuditor struct {
	mu     sync.Mutex
	events []audit.Event
}

func (a *recordingAuditor) Dispatch(ev audit.Event) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, ev)
}

func (a *recordingAuditor) actions() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]string, 0, len(a.events))
	for _, ev := range a.events {
		out = append(out, ev.Action)
	}
	return out
}

type fixture struct {
	deps    Deps
	repo    *memory.Repository
	clock   *clock.MockClock
	auditor *recordingAuditor
	metrics *metrics.Metrics
}

// newFixture pins "now" to 2025-06-01 10:00 in Los Angeles.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	loc, err := time.LoadLocation("America/Los_Angeles")
	require.NoError(t, err)

	f := &fixture{
		repo:    memory.New(),
		clock:   clock.NewMockClock(time.Date(2025, 6, 1, 10, 0, 0, 0, loc)),
		auditor: &recordingAuditor{},
		metrics: metrics.New(prometheus.NewRegistry()),
	}
	f.deps = Deps{
		Repo:     f.repo,
		Schedule: domain.DefaultSchedule(loc),
		Clock:    f.clock,
		Audit:    f.auditor,
		Metrics:  f.metrics,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	return f
}

func intPtr(v int) *int {
	return &v
}
