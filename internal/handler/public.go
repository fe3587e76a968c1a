// Package handler exposes HTTP handlers for both authenticated and public endpoints.
// This file defines the public landing and menu handlers.  None of them
// need a token; the menu responses are cached in Redis by the router.

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-booking/internal/catalog"
	"github.com/iliyamo/restaurant-booking/internal/seating"
)

// Feature is one card of the landing page "How it works" section.
type Feature struct {
	Emoji       string `json:"emoji"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

var landingFeatures = []Feature{
	{"💺", "Real-Time Seat Booking", "See live seat availability and book instantly, like choosing your movie seat."},
	{"🍽️", "Pre-Order Your Meal", "Browse the full menu, add items to cart, and order before you even arrive."},
	{"👨‍🍳", "Cook on Arrival", "Your food is prepared fresh only when you confirm. No stale dishes."},
	{"🎁", "Loyalty & Rewards", "Earn points, unlock vouchers, and enjoy exclusive offers on every visit."},
}

// PublicHandler serves the landing summary and the menu.
type PublicHandler struct {
	Catalog *catalog.Catalog
}

// NewPublicHandler panics when cat is nil.
func NewPublicHandler(cat *catalog.Catalog) *PublicHandler {
	if cat == nil {
		panic("nil catalog passed to NewPublicHandler")
	}
	return &PublicHandler{Catalog: cat}
}

// Home handles GET /v1/home.  Seat counts come from a freshly generated
// floor plan, which is what a new guest sees on the booking page.
func (h *PublicHandler) Home(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"headline":   "Reserve. Pre-Order. Dine Fresh.",
		"tagline":    "Skip the wait. Book your seat in real-time, pre-order from the menu, and have your food cooked fresh the moment you arrive.",
		"features":   landingFeatures,
		"categories": h.Catalog.CategoryNames(),
		"seats":      seating.CountStats(seating.Generate()),
	})
}

// ListMenu handles GET /v1/menu.  Optional query parameters:
//
//	category  – category name (Breakfast, Lunch, ...)
//	sub       – subcategory name
//	veg       – "true" keeps vegetarian items only
//	available – "true" hides unavailable items
func (h *PublicHandler) ListMenu(c echo.Context) error {
	q, err := catalog.ParseQuery(c.QueryParam)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"categories": h.Catalog.Filter(q)})
}

// GetMenuItem handles GET /v1/menu/items/:id.
func (h *PublicHandler) GetMenuItem(c echo.Context) error {
	it, ok := h.Catalog.Find(c.Param("id"))
	if !ok {
		return errorJSON(c, http.StatusNotFound, "menu item not found")
	}
	return c.JSON(http.StatusOK, it)
}
