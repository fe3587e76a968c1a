package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/restaurant-booking/internal/session"
	"github.com/iliyamo/restaurant-booking/internal/utils"
)

// adminSubject is the JWT subject of the kitchen console.
const adminSubject = "admin"

// SessionHandler issues guest and admin tokens.
type SessionHandler struct {
	Sessions  *session.Registry
	JWTSecret string
	TokenTTL  time.Duration
	// AdminHash is the bcrypt hash of ADMIN_PASSWORD.  Empty disables
	// admin login.
	AdminHash string
	Log       *zap.Logger
}

// NewSessionHandler wires a SessionHandler.  The registry and secret are
// required.
func NewSessionHandler(reg *session.Registry, secret string, ttl time.Duration, adminHash string, log *zap.Logger) *SessionHandler {
	if reg == nil || secret == "" {
		panic("nil registry or empty secret passed to NewSessionHandler")
	}
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &SessionHandler{Sessions: reg, JWTSecret: secret, TokenTTL: ttl, AdminHash: adminHash, Log: log}
}

// Start handles POST /v1/session.  It creates a session holding a fresh
// floor plan and an empty cart and returns a GUEST token whose subject is
// the session id.
func (h *SessionHandler) Start(c echo.Context) error {
	s := h.Sessions.Create()
	tok, err := utils.NewAccessToken(h.JWTSecret, s.ID, utils.RoleGuest, h.TokenTTL)
	if err != nil {
		h.Log.Error("sign guest token", zap.Error(err))
		return errorJSON(c, http.StatusInternalServerError, "failed to issue token")
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"session_id":   s.ID,
		"access_token": tok.Token,
		"expires_at":   tok.Exp,
	})
}

// AdminLogin handles POST /v1/admin/login with body {"password": "..."}.
// It returns 503 when no admin password is configured and 401 on a
// mismatch.
func (h *SessionHandler) AdminLogin(c echo.Context) error {
	if h.AdminHash == "" {
		return errorJSON(c, http.StatusServiceUnavailable, "admin login disabled")
	}
	var body struct {
		Password string `json:"password"`
	}
	if err := c.Bind(&body); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid request body")
	}
	if strings.TrimSpace(body.Password) == "" {
		return errorJSON(c, http.StatusBadRequest, "password is required")
	}
	if !utils.VerifyPassword(h.AdminHash, body.Password) {
		h.Log.Warn("admin login failed", zap.String("remote_ip", c.RealIP()))
		return errorJSON(c, http.StatusUnauthorized, "invalid credentials")
	}
	tok, err := utils.NewAccessToken(h.JWTSecret, adminSubject, utils.RoleAdmin, h.TokenTTL)
	if err != nil {
		h.Log.Error("sign admin token", zap.Error(err))
		return errorJSON(c, http.StatusInternalServerError, "failed to issue token")
	}
	return c.JSON(http.StatusOK, echo.Map{
		"access_token": tok.Token,
		"expires_at":   tok.Exp,
	})
}
