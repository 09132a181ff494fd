package inventory

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/century-soap/century-soap/internal/auth"
	"github.com/century-soap/century-soap/internal/platform/httpx"
	"github.com/century-soap/century-soap/internal/shared"
)

// Handler wires HTTP endpoints for stock management.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs an inventory handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers inventory routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/stock-updates", h.listUpdates)
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAdmin)
		r.Post("/adjustments", h.applyAdjustment)
	})
}

func (h *Handler) applyAdjustment(w http.ResponseWriter, r *http.Request) {
	var input AdjustmentInput
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", "malformed JSON")
		return
	}
	actor := shared.ActorFromContext(r.Context())
	record, err := h.service.ApplyAdjustment(r.Context(), input, actor)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.logger.Info("stock adjusted",
		slog.String("product_id", record.ProductID),
		slog.String("type", string(record.Type)),
		slog.Int("new_stock", record.NewStock))
	httpx.JSON(w, http.StatusCreated, record)
}

func (h *Handler) listUpdates(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := UpdatesFilter{
		ProductID: q.Get("product_id"),
		Type:      UpdateType(q.Get("type")),
	}
	if from := q.Get("from"); from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid from date")
			return
		}
		filter.From = t
	}
	if to := q.Get("to"); to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid to date")
			return
		}
		// end of day
		filter.To = t.Add(24*time.Hour - time.Nanosecond)
	}
	if l, err := strconv.Atoi(q.Get("limit")); err == nil && l > 0 {
		filter.Limit = l
	}

	updates, err := h.service.ListUpdates(r.Context(), filter)
	if err != nil {
		h.logger.Error("list stock updates", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"updates": updates})
}

func (h *Handler) respondError(w http.ResponseWriter, err error) {
	var verr validator.ValidationErrors
	switch {
	case errors.Is(err, shared.ErrNotFound):
		httpx.Problem(w, http.StatusNotFound, "Not Found", "product not found")
	case errors.Is(err, ErrNegativeStock):
		httpx.Problem(w, http.StatusConflict, "Conflict", "removal exceeds stock on hand")
	case errors.Is(err, ErrInvalidQuantity):
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "delta must be non zero")
	case errors.As(err, &verr):
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", verr.Error())
	default:
		h.logger.Error("inventory request failed", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}
