package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/restaurant-booking/internal/kitchen"
	"github.com/iliyamo/restaurant-booking/internal/model"
	"github.com/iliyamo/restaurant-booking/internal/queue"
	"github.com/iliyamo/restaurant-booking/internal/repository"
	"github.com/iliyamo/restaurant-booking/internal/seating"
)

// AdminHandler backs the kitchen console: the floor plan overview, the
// order board and its analytics, and the receipt archive.
type AdminHandler struct {
	Kitchen *kitchen.Board
	Events  EventPublisher
	Archive ReceiptArchive // nil when MySQL is not configured
	Log     *zap.Logger
}

// NewAdminHandler panics when the kitchen board is nil.
func NewAdminHandler(board *kitchen.Board, events EventPublisher, archive ReceiptArchive, log *zap.Logger) *AdminHandler {
	if board == nil {
		panic("nil kitchen board passed to NewAdminHandler")
	}
	if events == nil {
		events = nopPublisher{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &AdminHandler{Kitchen: board, Events: events, Archive: archive, Log: log}
}

// Seats handles GET /v1/admin/seats.  The console is not linked to guest
// sessions, so it shows the generated floor plan.
func (h *AdminHandler) Seats(c echo.Context) error {
	return c.JSON(http.StatusOK, floorPlanOf(seating.Generate()))
}

// ListOrders handles GET /v1/admin/orders.  Each order carries the label of
// the button that moves it on ("next_action"), absent once served.
func (h *AdminHandler) ListOrders(c echo.Context) error {
	orders := h.Kitchen.List()
	type item struct {
		model.Order
		Label      string `json:"status_label"`
		NextAction string `json:"next_action,omitempty"`
	}
	out := make([]item, 0, len(orders))
	for _, o := range orders {
		out = append(out, item{Order: o, Label: o.Status.Label(), NextAction: o.Status.Action()})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out, "counts": h.Kitchen.Counts()})
}

// AdvanceOrder handles POST /v1/admin/orders/:id/advance.
func (h *AdminHandler) AdvanceOrder(c echo.Context) error {
	o, from, err := h.Kitchen.Advance(c.Param("id"))
	return h.afterTransition(c, o, from, err)
}

// UpdateOrderStatus handles PATCH /v1/admin/orders/:id with body
// {"status": "preparing"}.  Only the single next stage is accepted.
func (h *AdminHandler) UpdateOrderStatus(c echo.Context) error {
	var body struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&body); err != nil || body.Status == "" {
		return errorJSON(c, http.StatusBadRequest, "status is required")
	}
	to, err := model.ParseOrderStatus(body.Status)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, err.Error())
	}
	o, from, err := h.Kitchen.Transition(c.Param("id"), to)
	return h.afterTransition(c, o, from, err)
}

func (h *AdminHandler) afterTransition(c echo.Context, o model.Order, from model.OrderStatus, err error) error {
	switch {
	case errors.Is(err, kitchen.ErrOrderNotFound):
		return errorJSON(c, http.StatusNotFound, "order not found")
	case errors.Is(err, kitchen.ErrFinalStatus), errors.Is(err, kitchen.ErrInvalidTransition):
		return errorJSON(c, http.StatusConflict, err.Error())
	case err != nil:
		h.Log.Error("order transition", zap.Error(err))
		return errorJSON(c, http.StatusInternalServerError, "internal error")
	}

	ev := queue.OrderStatusChangedEvent{
		OrderID:      o.ID,
		CustomerName: o.CustomerName,
		SeatID:       o.SeatID,
		From:         from.String(),
		To:           o.Status.String(),
		ChangedAt:    time.Now().UTC().Format(time.RFC3339),
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(c.Request().Context()), sideEffectTimeout)
	defer cancel()
	if err := h.Events.PublishOrderStatusChanged(ctx, ev); err != nil {
		h.Log.Warn("publish order.status_changed failed", zap.String("order_id", o.ID), zap.Error(err))
	}
	h.Log.Info("order advanced", zap.String("order_id", o.ID), zap.Stringer("from", from), zap.Stringer("to", o.Status))
	return c.JSON(http.StatusOK, o)
}

// Analytics handles GET /v1/admin/analytics?top=5.
func (h *AdminHandler) Analytics(c echo.Context) error {
	top := 5
	if v := c.QueryParam("top"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return errorJSON(c, http.StatusBadRequest, "top must be a non-negative integer")
		}
		top = n
	}
	return c.JSON(http.StatusOK, h.Kitchen.Analytics(top))
}

// ListReceipts handles GET /v1/admin/receipts?limit=20.  It returns 503
// when the archive is not configured.
func (h *AdminHandler) ListReceipts(c echo.Context) error {
	if h.Archive == nil {
		return errorJSON(c, http.StatusServiceUnavailable, "receipt archive disabled")
	}
	limit := 20
	if v := c.QueryParam("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > 100 {
			return errorJSON(c, http.StatusBadRequest, "limit must be between 1 and 100")
		}
		limit = n
	}
	list, err := h.Archive.ListRecent(c.Request().Context(), limit)
	if err != nil {
		h.Log.Error("list receipts", zap.Error(err))
		return errorJSON(c, http.StatusInternalServerError, "database error")
	}
	if list == nil {
		list = []model.Receipt{}
	}
	return c.JSON(http.StatusOK, echo.Map{"items": list})
}

// GetReceipt handles GET /v1/admin/receipts/:id.
func (h *AdminHandler) GetReceipt(c echo.Context) error {
	if h.Archive == nil {
		return errorJSON(c, http.StatusServiceUnavailable, "receipt archive disabled")
	}
	rc, err := h.Archive.Get(c.Request().Context(), c.Param("id"))
	if errors.Is(err, repository.ErrReceiptNotFound) {
		return errorJSON(c, http.StatusNotFound, "receipt not found")
	}
	if err != nil {
		h.Log.Error("get receipt", zap.String("receipt_id", c.Param("id")), zap.Error(err))
		return errorJSON(c, http.StatusInternalServerError, "database error")
	}
	return c.JSON(http.StatusOK, rc)
}
