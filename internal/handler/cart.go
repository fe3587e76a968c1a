package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/restaurant-booking/internal/cart"
	"github.com/iliyamo/restaurant-booking/internal/catalog"
	"github.com/iliyamo/restaurant-booking/internal/model"
	"github.com/iliyamo/restaurant-booking/internal/queue"
	"github.com/iliyamo/restaurant-booking/internal/session"
)

// sideEffectTimeout bounds event publishing and archiving during checkout.
const sideEffectTimeout = 5 * time.Second

// GuestHandler serves the seat and cart endpoints of one guest session.
// All methods assume JWTAuth and RequireRole(GUEST) already ran.
type GuestHandler struct {
	Sessions   *session.Registry
	Catalog    *catalog.Catalog
	TaxPercent int
	Events     EventPublisher
	Archive    ReceiptArchive // nil when MySQL is not configured
	Log        *zap.Logger
}

// NewGuestHandler panics when the registry or catalog is missing.  events
// and archive may be nil.
func NewGuestHandler(reg *session.Registry, cat *catalog.Catalog, taxPercent int, events EventPublisher, archive ReceiptArchive, log *zap.Logger) *GuestHandler {
	if reg == nil || cat == nil {
		panic("nil dependency passed to NewGuestHandler")
	}
	if events == nil {
		events = nopPublisher{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &GuestHandler{Sessions: reg, Catalog: cat, TaxPercent: taxPercent, Events: events, Archive: archive, Log: log}
}

func (h *GuestHandler) session(c echo.Context) (*session.Session, error) {
	return sessionFrom(c, h.Sessions)
}

// cartView is the body of every cart response: the store snapshot plus
// the tax breakdown.
type cartView struct {
	Lines     []model.CartLine `json:"lines"`
	ItemCount int              `json:"item_count"`
	cart.Summary
}

func (h *GuestHandler) cartViewOf(snap cart.Snapshot) cartView {
	return cartView{Lines: snap.Lines, ItemCount: snap.ItemCount, Summary: cart.Summarize(snap.Lines, h.TaxPercent)}
}

// GetCart handles GET /v1/cart.
func (h *GuestHandler) GetCart(c echo.Context) error {
	s, err := h.session(c)
	if err != nil {
		return errorJSON(c, http.StatusUnauthorized, "unauthorized")
	}
	return c.JSON(http.StatusOK, h.cartViewOf(s.Cart.Snapshot()))
}

// AddItem handles POST /v1/cart/items with body {"item_id": "b1"}.  The
// item is copied from the catalog so clients cannot set their own prices.
func (h *GuestHandler) AddItem(c echo.Context) error {
	s, err := h.session(c)
	if err != nil {
		return errorJSON(c, http.StatusUnauthorized, "unauthorized")
	}
	var body struct {
		ItemID string `json:"item_id"`
	}
	if err := c.Bind(&body); err != nil || body.ItemID == "" {
		return errorJSON(c, http.StatusBadRequest, "item_id is required")
	}
	item, ok := h.Catalog.Find(body.ItemID)
	if !ok {
		return errorJSON(c, http.StatusNotFound, "menu item not found")
	}
	if !item.Available {
		return errorJSON(c, http.StatusConflict, "menu item is unavailable")
	}
	s.Cart.Add(item)
	return c.JSON(http.StatusOK, h.cartViewOf(s.Cart.Snapshot()))
}

// UpdateItem handles PATCH /v1/cart/items/:id with body {"quantity": n}.
// A quantity of zero or less removes the line.
func (h *GuestHandler) UpdateItem(c echo.Context) error {
	s, err := h.session(c)
	if err != nil {
		return errorJSON(c, http.StatusUnauthorized, "unauthorized")
	}
	var body struct {
		Quantity *int `json:"quantity"`
	}
	if err := c.Bind(&body); err != nil || body.Quantity == nil {
		return errorJSON(c, http.StatusBadRequest, "quantity is required")
	}
	if !s.Cart.UpdateQuantity(c.Param("id"), *body.Quantity) {
		return errorJSON(c, http.StatusNotFound, "item not in cart")
	}
	return c.JSON(http.StatusOK, h.cartViewOf(s.Cart.Snapshot()))
}

// RemoveItem handles DELETE /v1/cart/items/:id.
func (h *GuestHandler) RemoveItem(c echo.Context) error {
	s, err := h.session(c)
	if err != nil {
		return errorJSON(c, http.StatusUnauthorized, "unauthorized")
	}
	if !s.Cart.Remove(c.Param("id")) {
		return errorJSON(c, http.StatusNotFound, "item not in cart")
	}
	return c.JSON(http.StatusOK, h.cartViewOf(s.Cart.Snapshot()))
}

// ClearCart handles DELETE /v1/cart.
func (h *GuestHandler) ClearCart(c echo.Context) error {
	s, err := h.session(c)
	if err != nil {
		return errorJSON(c, http.StatusUnauthorized, "unauthorized")
	}
	s.Cart.Clear()
	return c.JSON(http.StatusOK, h.cartViewOf(s.Cart.Snapshot()))
}

// Checkout handles POST /v1/cart/checkout with an optional body
// {"customer_name": "..."}.  The cart is emptied and a receipt returned.
// Publishing the order.placed event and archiving the receipt are best
// effort: failures are logged and never fail the request.
func (h *GuestHandler) Checkout(c echo.Context) error {
	s, err := h.session(c)
	if err != nil {
		return errorJSON(c, http.StatusUnauthorized, "unauthorized")
	}
	var body struct {
		CustomerName string `json:"customer_name"`
	}
	// An empty body binds to the zero value.
	if err := c.Bind(&body); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid request body")
	}
	lines := s.Cart.Drain()
	if len(lines) == 0 {
		return errorJSON(c, http.StatusBadRequest, "cart is empty")
	}

	sum := cart.Summarize(lines, h.TaxPercent)
	rc := model.Receipt{
		ID:           newReceiptID(),
		SessionID:    s.ID,
		CustomerName: strings.TrimSpace(body.CustomerName),
		Lines:        lines,
		Subtotal:     sum.Subtotal,
		Tax:          sum.Tax,
		Total:        sum.Total,
		PlacedAt:     time.Now().UTC(),
	}
	if seat, ok := s.Seats.Selection(); ok {
		rc.SeatID = seat.ID
	}

	log := h.Log.With(zap.String("receipt_id", rc.ID), zap.String("session_id", rc.SessionID))
	ctx, cancel := context.WithTimeout(context.WithoutCancel(c.Request().Context()), sideEffectTimeout)
	defer cancel()
	if h.Archive != nil {
		if err := h.Archive.Create(ctx, rc); err != nil {
			log.Error("archive receipt failed", zap.Error(err))
		}
	}
	if err := h.Events.PublishOrderPlaced(ctx, orderPlacedEvent(rc)); err != nil {
		log.Warn("publish order.placed failed", zap.Error(err))
	}
	log.Info("checkout", zap.Int("items", cart.ItemCount(lines)), zap.Int("total", rc.Total))
	return c.JSON(http.StatusCreated, rc)
}

func newReceiptID() string {
	return "RCP-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:10])
}

func orderPlacedEvent(rc model.Receipt) queue.OrderPlacedEvent {
	ev := queue.OrderPlacedEvent{
		ReceiptID:    rc.ID,
		SessionID:    rc.SessionID,
		CustomerName: rc.CustomerName,
		SeatID:       rc.SeatID,
		Lines:        make([]queue.EventLine, 0, len(rc.Lines)),
		Subtotal:     rc.Subtotal,
		Tax:          rc.Tax,
		Total:        rc.Total,
		PlacedAt:     rc.PlacedAt.Format(time.RFC3339),
	}
	for _, l := range rc.Lines {
		ev.Lines = append(ev.Lines, queue.EventLine{ItemID: l.ID, Name: l.Name, Price: l.Price, Quantity: l.Quantity})
	}
	return ev
}
