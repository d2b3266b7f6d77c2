package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/showroom-scheduler/internal/audit"
	"github.com/BruksfildServices01/showroom-scheduler/internal/auth"
	"github.com/BruksfildServices01/showroom-scheduler/internal/clock"
	"github.com/BruksfildServices01/showroom-scheduler/internal/config"
	domain "github.com/BruksfildServices01/showroom-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/showroom-scheduler/internal/dto"
	"github.com/BruksfildServices01/showroom-scheduler/internal/infra/repository/memory"
	"github.com/BruksfildServices01/showroom-scheduler/internal/metrics"
	"github.com/BruksfildServices01/showroom-scheduler/internal/models"
)

const (
	jwtSecret     = "test-secret"
	adminPassword = "s3cret"
)

type auditSink struct {
	mu     sync.Mutex
	events []audit.Event
}

func (a *auditSink) Dispatch(ev audit.Event) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, ev)
}

func (a *auditSink) List(_ context.Context, q audit.Query) ([]models.AuditLog, int64, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	logs := []models.AuditLog{}
	for i, ev := range a.events {
		if q.Action != "" && ev.Action != q.Action {
			continue
		}
		logs = append(logs, models.AuditLog{ID: uint(i + 1), Action: ev.Action, Actor: ev.Actor, AppointmentID: ev.AppointmentID})
	}
	return logs, int64(len(logs)), nil
}

type okPinger struct{}

func (okPinger) Ping(context.Context) error { return nil }

type server struct {
	engine *gin.Engine
	repo   *memory.Repository
	audit  *auditSink
	signer *auth.JWTVerifier
	now    time.Time
}

func newServer(t *testing.T, authRequired bool) *server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	loc, err := time.LoadLocation("America/Los_Angeles")
	require.NoError(t, err)
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, loc)

	hash, err := auth.HashPassword(adminPassword)
	require.NoError(t, err)

	cfg := config.Config{}
	cfg.App.Env = "test"
	cfg.DB.StorageTimeout = time.Second
	cfg.Schedule.StrictDates = true
	cfg.Auth.Required = &authRequired
	cfg.CORS.AllowOrigins = []string{"http://localhost:3000"}
	cfg.Metrics.Enabled = true
	cfg.Metrics.Path = "/metrics"

	reg := prometheus.NewRegistry()
	signer := auth.NewJWTVerifier(jwtSecret, "", "")

	s := &server{
		engine: gin.New(),
		repo:   memory.New(),
		audit:  &auditSink{},
		signer: signer,
		now:    now,
	}

	RegisterRoutes(s.engine, Deps{
		Config:    cfg,
		Schedule:  domain.DefaultSchedule(loc),
		Repo:      s.repo,
		Audit:     s.audit,
		AuditLogs: s.audit,
		Pinger:    okPinger{},
		Verifier:  auth.WithTimeout(signer, time.Second),
		Admin:     auth.NewAdminCredentials("admin", hash),
		Metrics:   metrics.New(reg),
		Registry:  reg,
		Clock:     clock.NewMockClock(now),
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	return s
}

type request struct {
	method, path string
	body         any
	token        string
	admin        bool
}

func (s *server) do(t *testing.T, r request) *httptest.ResponseRecorder {
	t.Helper()
	var rdr io.Reader
	if r.body != nil {
		raw, err := json.Marshal(r.body)
		require.NoError(t, err)
		rdr = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(r.method, r.path, rdr)
	req.Header.Set("Content-Type", "application/json")
	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}
	if r.admin {
		req.SetBasicAuth("admin", adminPassword)
	}
	rec := httptest.NewRecorder()
	s.engine.ServeHTTP(rec, req)
	return rec
}

func (s *server) token(t *testing.T, sub string) string {
	t.Helper()
	tok, err := s.signer.Sign(auth.Identity{Subject: sub}, time.Hour, time.Now())
	require.NoError(t, err)
	return tok
}

func booking(start string) map[string]any {
	return map[string]any{
		"date": "2025-06-10", "startTime": start, "name": "Ada", "email": "ada@example.com",
	}
}

func TestBookingFlow(t *testing.T) {
	s := newServer(t, true)
	tok := s.token(t, "user-1")

	// anonymous booking is rejected when auth is required
	rec := s.do(t, request{method: http.MethodPost, path: "/api/appointments", body: booking("09:00")})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(t, request{method: http.MethodPost, path: "/api/appointments", body: booking("09:00"), token: tok})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created dto.AppointmentEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.True(t, created.OK)
	assert.Equal(t, "2025-06-10T16:00:00Z", created.Appointment.StartTime.Format(time.RFC3339))

	// second booking of the same slot conflicts
	rec = s.do(t, request{method: http.MethodPost, path: "/api/appointments", body: booking("09:00"), token: tok})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), `"error_code":"slot_taken"`)

	// availability reflects the booking
	rec = s.do(t, request{method: http.MethodGet, path: "/api/appointments?date=2025-06-10"})
	require.Equal(t, http.StatusOK, rec.Code)
	var avail dto.AvailabilityResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &avail))
	assert.Equal(t, []string{"09:00"}, avail.Booked)
	assert.Len(t, avail.Slots, 15)
	assert.NotContains(t, avail.Slots, "09:00")

	s.audit.mu.Lock()
	require.Len(t, s.audit.events, 2)
	assert.Equal(t, "user-1", s.audit.events[0].Actor)
	s.audit.mu.Unlock()
}

func TestBookingWithoutRequiredAuthIsAnonymous(t *testing.T) {
	s := newServer(t, false)

	rec := s.do(t, request{method: http.MethodPost, path: "/api/appointments", body: booking("10:00")})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	s.audit.mu.Lock()
	defer s.audit.mu.Unlock()
	assert.Equal(t, "anonymous", s.audit.events[0].Actor)
}

func TestAvailabilityValidation(t *testing.T) {
	s := newServer(t, false)

	rec := s.do(t, request{method: http.MethodGet, path: "/api/appointments"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, request{method: http.MethodGet, path: "/api/appointments?date=06/10/2025"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid_date")

	rec = s.do(t, request{method: http.MethodGet, path: "/api/appointments?date=2025-05-01"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"slots":[]`)
}

func TestMe(t *testing.T) {
	s := newServer(t, false)

	rec := s.do(t, request{method: http.MethodGet, path: "/api/me"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(t, request{method: http.MethodGet, path: "/api/me", token: s.token(t, "user-9")})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"sub":"user-9"`)
}

func TestAdminFlow(t *testing.T) {
	s := newServer(t, false)

	rec := s.do(t, request{method: http.MethodPost, path: "/api/appointments", body: booking("09:00")})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created dto.AppointmentEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	id := created.Appointment.ID

	// admin routes require basic auth
	rec = s.do(t, request{method: http.MethodGet, path: "/api/admin/appointments"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(t, request{method: http.MethodGet, path: "/api/admin/appointments?date=2025-06-10", admin: true})
	require.Equal(t, http.StatusOK, rec.Code)
	var list []dto.Appointment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)

	path := "/api/admin/appointments/" + jsonNumber(id)
	rec = s.do(t, request{method: http.MethodPut, path: path, admin: true, body: map[string]any{
		"name": "Ada L", "email": "ada@example.com", "startTime": "2025-06-11T14:00", "duration": 60,
	}})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var updated dto.AppointmentEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, "2025-06-11T21:00:00Z", updated.Appointment.StartTime.Format(time.RFC3339))
	assert.Equal(t, time.Hour, updated.Appointment.EndTime.Sub(updated.Appointment.StartTime))

	rec = s.do(t, request{method: http.MethodGet, path: "/api/admin/audit-logs?action=appointment_updated", admin: true})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total":1`)

	rec = s.do(t, request{method: http.MethodDelete, path: "/api/admin/appointments?id=" + jsonNumber(id), admin: true})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())

	rec = s.do(t, request{method: http.MethodDelete, path: path, admin: true})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, request{method: http.MethodGet, path: "/api/admin/appointments", admin: true})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", rec.Body.String())
}

func TestHealthAndMetrics(t *testing.T) {
	s := newServer(t, false)

	rec := s.do(t, request{method: http.MethodGet, path: "/health"})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	rec = s.do(t, request{method: http.MethodGet, path: "/metrics"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "showroom_http_requests_total"))
}

func jsonNumber(id uint) string {
	raw, _ := json.Marshal(id)
	return string(raw)
}
