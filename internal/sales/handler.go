package sales

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

// Handler wires HTTP endpoints for sales.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs a sales handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers sales routes. Any authenticated user can record and
// list sales; only admins flip payment status.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth)
		r.Get("/sales", h.list)
		r.Get("/sales/{id}", h.get)
		r.Post("/sales", h.record)
	})
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAdmin)
		r.Patch("/sales/{id}/status", h.updateStatus)
	})
}

func (h *Handler) record(w http.ResponseWriter, r *http.Request) {
	var input RecordSaleInput
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", "malformed JSON")
		return
	}
	actor := shared.ActorFromContext(r.Context())
	sale, err := h.service.RecordSale(r.Context(), input, actor)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.logger.Info("sale recorded",
		slog.String("sale_id", sale.ID),
		slog.String("product_id", sale.ProductID),
		slog.Int("quantity", sale.Quantity),
		slog.Int64("total_amount", sale.TotalAmount))
	httpx.JSON(w, http.StatusCreated, sale)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filters := ListFilters{
		SellerID:      q.Get("seller_id"),
		PaymentStatus: PaymentStatus(q.Get("payment_status")),
	}
	if from := q.Get("from"); from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid from date")
			return
		}
		filters.From = t
	}
	if to := q.Get("to"); to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid to date")
			return
		}
		filters.To = t.Add(24*time.Hour - time.Nanosecond)
	}
	filters.Limit = 50
	if l, err := strconv.Atoi(q.Get("limit")); err == nil && l > 0 {
		filters.Limit = l
	}
	if o, err := strconv.Atoi(q.Get("offset")); err == nil && o > 0 {
		filters.Offset = o
	}

	// Sellers only see their own sales; admins see everything.
	actor := shared.ActorFromContext(r.Context())
	if !actor.IsAdmin() {
		filters.SellerID = actor.ID
	}

	list, total, err := h.service.List(r.Context(), filters)
	if err != nil {
		h.logger.Error("list sales", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	page := filters.Offset/filters.Limit + 1
	httpx.JSON(w, http.StatusOK, map[string]any{
		"sales":      list,
		"pagination": shared.NewPagination(page, filters.Limit, total),
	})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	sale, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, err)
		return
	}
	actor := shared.ActorFromContext(r.Context())
	if !actor.IsAdmin() && sale.SellerID != actor.ID {
		httpx.Problem(w, http.StatusForbidden, "Forbidden", "not your sale")
		return
	}
	httpx.JSON(w, http.StatusOK, sale)
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	var body struct {
		PaymentStatus PaymentStatus `json:"payment_status"`
	}
	if err := httpx.DecodeJSON(r, &body); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", "malformed JSON")
		return
	}
	actor := shared.ActorFromContext(r.Context())
	if err := h.service.UpdateStatus(r.Context(), chi.URLParam(r, "id"), body.PaymentStatus, actor); err != nil {
		h.respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) respondError(w http.ResponseWriter, err error) {
	var verr validator.ValidationErrors
	switch {
	case errors.Is(err, shared.ErrNotFound):
		httpx.Problem(w, http.StatusNotFound, "Not Found", "resource not found")
	case errors.Is(err, ErrInsufficientStock):
		httpx.Problem(w, http.StatusConflict, "Conflict", "requested quantity exceeds stock on hand")
	case errors.As(err, &verr):
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", verr.Error())
	default:
		h.logger.Error("sales request failed", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}
