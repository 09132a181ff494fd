package reports

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/century-soap/century-soap/internal/auth"
	"github.com/century-soap/century-soap/internal/platform/httpx"
)

// Handler wires HTTP endpoints for reporting.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs a reports handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers reporting routes. All require authentication.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth)
		r.Get("/reports", h.report)
		r.Get("/reports/export", h.exportCSV)
		r.Get("/dashboard", h.dashboard)
	})
}

func (h *Handler) buildFromQuery(r *http.Request) (ReportData, error) {
	q := r.URL.Query()
	if from, to := q.Get("from"), q.Get("to"); from != "" && to != "" {
		fromT, err := time.Parse("2006-01-02", from)
		if err != nil {
			return ReportData{}, err
		}
		toT, err := time.Parse("2006-01-02", to)
		if err != nil {
			return ReportData{}, err
		}
		return h.service.BuildRange(r.Context(), fromT, toT.Add(24*time.Hour-time.Nanosecond))
	}
	period := Period(q.Get("period"))
	if period == "" {
		period = PeriodMonth
	}
	return h.service.BuildPeriod(r.Context(), period)
}

func (h *Handler) report(w http.ResponseWriter, r *http.Request) {
	report, err := h.buildFromQuery(r)
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, report)
}

func (h *Handler) exportCSV(w http.ResponseWriter, r *http.Request) {
	report, err := h.buildFromQuery(r)
	if err != nil {
		h.respondError(w, err)
		return
	}
	filename := "century-soap-report-" + report.To.Format("2006-01-02") + ".csv"
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	if err := writeReportCSV(w, report); err != nil {
		h.logger.Error("stream report csv", slog.Any("error", err))
	}
}

func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Dashboard(r.Context())
	if err != nil {
		h.logger.Error("build dashboard", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	httpx.JSON(w, http.StatusOK, stats)
}

func (h *Handler) respondError(w http.ResponseWriter, err error) {
	var parseErr *time.ParseError
	switch {
	case errors.As(err, &parseErr):
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid date, want YYYY-MM-DD")
	case errors.Is(err, ErrUnknownPeriod):
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
	default:
		h.logger.Error("build report", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}
