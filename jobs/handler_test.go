package jobs

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/require"

	"github.com/century-soap/century-soap/internal/shared"
)

type stubEnqueuer struct {
	scans   []LowStockScanPayload
	warmups []ReportsWarmupPayload
}

func (s *stubEnqueuer) EnqueueLowStockScan(ctx context.Context, payload LowStockScanPayload) (*asynq.TaskInfo, error) {
	s.scans = append(s.scans, payload)
	return &asynq.TaskInfo{ID: "t-1", Queue: QueueDefault}, nil
}

func (s *stubEnqueuer) EnqueueReportsWarmup(ctx context.Context, payload ReportsWarmupPayload) (*asynq.TaskInfo, error) {
	s.warmups = append(s.warmups, payload)
	return &asynq.TaskInfo{ID: "t-2", Queue: QueueDefault}, nil
}

func newTestRouter(enq Enqueuer, actor shared.Actor) http.Handler {
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if actor.ID != "" {
				req = req.WithContext(shared.ContextWithActor(req.Context(), actor))
			}
			next.ServeHTTP(w, req)
		})
	})
	NewHandler(slog.New(slog.NewTextHandler(io.Discard, nil)), enq).MountRoutes(r)
	return r
}

var adminActor = shared.Actor{ID: "u-1", Name: "Admin", Role: "admin"}

func TestTriggerLowStockScan(t *testing.T) {
	enq := &stubEnqueuer{}
	router := newTestRouter(enq, adminActor)

	req := httptest.NewRequest(http.MethodPost, "/jobs/low-stock-scan", strings.NewReader(`{"include_medium":true}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusAccepted, rec.Code)
	require.Len(t, enq.scans, 1)
	require.True(t, enq.scans[0].IncludeMedium)
	require.Contains(t, rec.Body.String(), "t-1")
}

func TestTriggerReportsWarmupWithoutBody(t *testing.T) {
	enq := &stubEnqueuer{}
	router := newTestRouter(enq, adminActor)

	req := httptest.NewRequest(http.MethodPost, "/jobs/reports-warmup", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusAccepted, rec.Code)
	require.Len(t, enq.warmups, 1)
	require.Empty(t, enq.warmups[0].Periods)
}

func TestTriggerRejectsNonAdmin(t *testing.T) {
	enq := &stubEnqueuer{}

	rec := httptest.NewRecorder()
	seller := shared.Actor{ID: "u-2", Name: "Eric", Role: "seller"}
	newTestRouter(enq, seller).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/jobs/low-stock-scan", nil))
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = httptest.NewRecorder()
	newTestRouter(enq, shared.Actor{}).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/jobs/reports-warmup", nil))
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	require.Empty(t, enq.scans)
	require.Empty(t, enq.warmups)
}
