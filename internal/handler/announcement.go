package handler

import (
    "context"
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/dhruv0767/Lab-Equipments-Reservation/internal/model"
)

// AnnouncementStore keeps the current banner.
type AnnouncementStore interface {
    Get(ctx context.Context) (model.Announcement, error)
    Set(ctx context.Context, a model.Announcement) error
}

type AnnouncementHandler struct {
    Board AnnouncementStore
}

func NewAnnouncementHandler(board AnnouncementStore) *AnnouncementHandler {
    return &AnnouncementHandler{Board: board}
}

// Get returns the current announcement; an empty text means none.
func (h *AnnouncementHandler) Get(c echo.Context) error {
    a, err := h.Board.Get(c.Request().Context())
    if err != nil {
        return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "announcement unavailable"})
    }
    return c.JSON(http.StatusOK, a)
}

// Put replaces the announcement.  Lecturers and admins only.
func (h *AnnouncementHandler) Put(c echo.Context) error {
    p, ok := principal(c)
    if !ok {
        return nil
    }
    if !p.Role.Privileged() {
        return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
    }
    var req struct {
        Text string `json:"text"`
    }
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    a := model.Announcement{Text: strings.TrimSpace(req.Text)}
    if a.Text != "" {
        a.Author = p.Name
        a.UpdatedAt = time.Now().UTC()
    }
    if err := h.Board.Set(c.Request().Context(), a); err != nil {
        return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "announcement unavailable"})
    }
    return c.JSON(http.StatusOK, a)
}
