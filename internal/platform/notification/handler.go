package notification

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/sanvicente/frontdesk/internal/platform/apperr"
)

// Handler exposes the email history over HTTP.
type Handler struct {
	recorder *Recorder
}

func NewHandler(recorder *Recorder) *Handler {
	return &Handler{recorder: recorder}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/email-logs", h.List)
	g.GET("/email-logs/stats", h.Stats)
	g.GET("/email-logs/:id", h.Get)
}

func (h *Handler) List(c echo.Context) error {
	return c.JSON(http.StatusOK, h.recorder.ListLogs(c.Request().Context()))
}

func (h *Handler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	l, err := h.recorder.GetLog(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(apperr.HTTPStatus(err), err.Error())
	}
	return c.JSON(http.StatusOK, l)
}

func (h *Handler) Stats(c echo.Context) error {
	return c.JSON(http.StatusOK, h.recorder.Stats(c.Request().Context()))
}
