package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-booking/internal/handler"
	"github.com/iliyamo/restaurant-booking/internal/middleware"
	"github.com/iliyamo/restaurant-booking/internal/utils"
)

// RegisterRoutes registers routes that do not require authentication and
// sit outside the rate limiter.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterPublic registers the landing page, session start and menu
// endpoints under /v1.  menuCache wraps only the menu routes; pass a
// pass-through middleware to disable caching.
func RegisterPublic(g *echo.Group, p *handler.PublicHandler, s *handler.SessionHandler, menuCache echo.MiddlewareFunc) {
	g.GET("/home", p.Home)
	g.POST("/session", s.Start)
	g.POST("/admin/login", s.AdminLogin)

	g.GET("/menu", p.ListMenu, menuCache)
	g.GET("/menu/items/:id", p.GetMenuItem, menuCache)
}

// RegisterGuest registers the seat board and cart endpoints.  All routes
// require a valid JWT with the GUEST role; the token subject selects the
// session.
func RegisterGuest(g *echo.Group, h *handler.GuestHandler, jwtSecret string) {
	gg := g.Group("",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(utils.RoleGuest),
	)

	// ---- Seats ----
	gg.GET("/seats", h.ListSeats)
	gg.POST("/seats/:id/select", h.SelectSeat)
	gg.POST("/seats/reset", h.ResetSeats)

	// ---- Cart ----
	gg.GET("/cart", h.GetCart)
	gg.POST("/cart/items", h.AddItem)
	gg.PATCH("/cart/items/:id", h.UpdateItem)
	gg.DELETE("/cart/items/:id", h.RemoveItem)
	gg.DELETE("/cart", h.ClearCart)
	gg.POST("/cart/checkout", h.Checkout)
}

// RegisterAdmin registers the kitchen console under /v1/admin.  All routes
// require the ADMIN role.  Login itself is public (see RegisterPublic).
func RegisterAdmin(g *echo.Group, h *handler.AdminHandler, jwtSecret string) {
	ag := g.Group("/admin",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(utils.RoleAdmin),
	)
	ag.GET("/seats", h.Seats)
	ag.GET("/orders", h.ListOrders)
	ag.POST("/orders/:id/advance", h.AdvanceOrder)
	ag.PATCH("/orders/:id", h.UpdateOrderStatus)
	ag.GET("/analytics", h.Analytics)
	ag.GET("/receipts", h.ListReceipts)
	ag.GET("/receipts/:id", h.GetReceipt)
}
