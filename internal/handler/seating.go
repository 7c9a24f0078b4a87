package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/theater-seating/internal/middleware"
	"github.com/iliyamo/theater-seating/internal/seating"
	"github.com/iliyamo/theater-seating/internal/service"
)

// Purger drops cached copies of the seat layout.
type Purger interface {
	Purge(ctx context.Context) error
}

// SeatingHandler exposes the box office grid.
type SeatingHandler struct {
	Office *service.BoxOffice
	Cache  Purger
	Log    *slog.Logger
}

// NewSeatingHandler panics on a nil office. cache may be nil.
func NewSeatingHandler(office *service.BoxOffice, cache Purger, log *slog.Logger) *SeatingHandler {
	if office == nil {
		panic("nil box office passed to NewSeatingHandler")
	}
	return &SeatingHandler{Office: office, Cache: cache, Log: log}
}

type reserveReq struct {
	Seats string `json:"seats"`
}

type bestReq struct {
	Count int `json:"count"`
}

type blockResp struct {
	Row   int      `json:"row"`
	Start int      `json:"start"`
	End   int      `json:"end"`
	Seats []string `json:"seats"`
}

// Layout handles GET /v1/seats.
func (h *SeatingHandler) Layout(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Office.Snapshot())
}

// Reserve handles POST /v1/seats/reserve. Seats named before a bad token
// stay reserved, and the error response carries the resulting layout.
func (h *SeatingHandler) Reserve(c echo.Context) error {
	var req reserveReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	ctx := c.Request().Context()
	layout, err := h.Office.Reserve(ctx, middleware.UserID(c), req.Seats)
	h.purge(ctx)
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, layout)
	case errors.Is(err, seating.ErrMalformedToken):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error(), "layout": layout})
	case errors.Is(err, seating.ErrOutOfRange):
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error(), "layout": layout})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "reservation failed"})
	}
}

// ReserveBest handles POST /v1/seats/best.
func (h *SeatingHandler) ReserveBest(c echo.Context) error {
	var req bestReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.Count <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "count must be a positive integer"})
	}
	ctx := c.Request().Context()
	blk, err := h.Office.ReserveBest(ctx, middleware.UserID(c), req.Count)
	if errors.Is(err, seating.ErrUnavailable) {
		return c.JSON(http.StatusConflict, echo.Map{"error": "not available"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "reservation failed"})
	}
	h.purge(ctx)

	resp := blockResp{Row: blk.Row, Start: blk.Start, End: blk.End}
	for _, s := range blk.Seats() {
		resp.Seats = append(resp.Seats, s.Label())
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *SeatingHandler) purge(ctx context.Context) {
	if h.Cache == nil {
		return
	}
	if err := h.Cache.Purge(ctx); err != nil {
		h.Log.WarnContext(ctx, "cache purge failed", slog.String("error", err.Error()))
	}
}
