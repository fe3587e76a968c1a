package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-booking/internal/model"
	"github.com/iliyamo/restaurant-booking/internal/seating"
	"github.com/iliyamo/restaurant-booking/internal/session"
)

// floorPlan is the body of every seat response.
type floorPlan struct {
	Rows     []seating.Row `json:"rows"`
	Selected *model.Seat   `json:"selected"`
	Stats    seating.Stats `json:"stats"`
	Legend   legend        `json:"legend"`
}

type statusKey struct {
	Status model.SeatStatus `json:"status"`
	Label  string           `json:"label"`
}

type tableKey struct {
	Type     model.TableType `json:"type"`
	Label    string          `json:"label"`
	Capacity int             `json:"capacity"`
}

// legend explains the status and table type codes used in rows.
type legend struct {
	Statuses []statusKey `json:"statuses"`
	Tables   []tableKey  `json:"tables"`
}

var floorLegend = func() legend {
	var l legend
	for _, s := range model.SeatStatuses() {
		l.Statuses = append(l.Statuses, statusKey{Status: s, Label: s.Label()})
	}
	for _, t := range model.TableTypes() {
		l.Tables = append(l.Tables, tableKey{Type: t, Label: t.Label(), Capacity: t.Capacity()})
	}
	return l
}()

func floorPlanOf(seats []model.Seat) floorPlan {
	fp := floorPlan{Rows: seating.Rows(seats), Stats: seating.CountStats(seats), Legend: floorLegend}
	if s, ok := seating.Selected(seats); ok {
		fp.Selected = &s
	}
	return fp
}

// ListSeats handles GET /v1/seats.
func (h *GuestHandler) ListSeats(c echo.Context) error {
	s, err := h.session(c)
	if err != nil {
		return errorJSON(c, http.StatusUnauthorized, "unauthorized")
	}
	return c.JSON(http.StatusOK, floorPlanOf(s.Seats.Seats()))
}

// SelectSeat handles POST /v1/seats/:id/select.  Selecting an available
// table selects it (and releases any previous choice); selecting the
// current choice releases it.  Unknown tables yield 404 and reserved or
// occupied ones 409; in both cases the floor plan is left as it was.
func (h *GuestHandler) SelectSeat(c echo.Context) error {
	s, err := h.session(c)
	if err != nil {
		return errorJSON(c, http.StatusUnauthorized, "unauthorized")
	}
	id := c.Param("id")
	target, ok := seating.Find(s.Seats.Seats(), id)
	if !ok {
		return errorJSON(c, http.StatusNotFound, "seat not found")
	}
	if !target.Status.Selectable() {
		return c.JSON(http.StatusConflict, echo.Map{
			"error": "seat is " + target.Status.String(),
			"seat":   target,
		})
	}
	s.Seats.Select(id)
	return c.JSON(http.StatusOK, floorPlanOf(s.Seats.Seats()))
}

// ResetSeats handles POST /v1/seats/reset: the floor plan is regenerated
// as if the booking page were opened again.
func (h *GuestHandler) ResetSeats(c echo.Context) error {
	s, err := h.session(c)
	if err != nil {
		return errorJSON(c, http.StatusUnauthorized, "unauthorized")
	}
	s.Seats.Reset()
	return c.JSON(http.StatusOK, floorPlanOf(s.Seats.Seats()))
}

// sessionFrom resolves the caller's session from the token subject.
func sessionFrom(c echo.Context, reg *session.Registry) (*session.Session, error) {
	sid, err := getSessionID(c)
	if err != nil {
		return nil, err
	}
	return reg.Get(sid), nil
}
