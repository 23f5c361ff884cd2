package handler

import (
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/dhruv0767/Lab-Equipments-Reservation/internal/booking"
    "github.com/dhruv0767/Lab-Equipments-Reservation/internal/catalog"
    "github.com/dhruv0767/Lab-Equipments-Reservation/internal/model"
)

// RoomLister lists the catalog for browsing.
type RoomLister interface {
    Rooms() []catalog.Room
}

// ReservationHandler serves the booking endpoints available to every
// signed-in user.
type ReservationHandler struct {
    Engine  *booking.Engine
    Catalog RoomLister
}

// NewReservationHandler panics if a dependency is nil.
func NewReservationHandler(engine *booking.Engine, cat RoomLister) *ReservationHandler {
    if engine == nil || cat == nil {
        panic("nil dependency passed to NewReservationHandler")
    }
    return &ReservationHandler{Engine: engine, Catalog: cat}
}

// reservationReq is the body of POST /v1/reservations.  Slot-based
// equipment may be booked either with start/end or with date and a
// 1-based slot number.
type reservationReq struct {
    Room      string `json:"room"`
    Equipment string `json:"equipment"`
    Start     string `json:"start"`
    End       string `json:"end"`
    Date      string `json:"date"`
    Slot      int    `json:"slot"`
}

type slotResp struct {
    Number int       `json:"number"`
    Label  string    `json:"label"`
    Start  time.Time `json:"start"`
    End    time.Time `json:"end"`
}

type confirmationResp struct {
    Reservation    model.Reservation `json:"reservation"`
    UseCount       *int              `json:"use_count,omitempty"`
    MaintenanceDue bool              `json:"maintenance_due,omitempty"`
    Notice         string            `json:"notice,omitempty"`
}

// interval resolves the requested start and end.
func (req reservationReq) interval(now time.Time) (time.Time, time.Time, bool) {
    loc := now.Location()
    if req.Slot > 0 {
        slots := booking.GenerateSlots()
        if req.Slot > len(slots) {
            return time.Time{}, time.Time{}, false
        }
        date, err := parseDate(req.Date, now)
        if err != nil {
            return time.Time{}, time.Time{}, false
        }
        s, e := slots[req.Slot-1].On(date)
        return s, e, true
    }
    start, err1 := parseTime(req.Start, loc)
    end, err2 := parseTime(req.End, loc)
    return start, end, err1 == nil && err2 == nil
}

func (req reservationReq) validate() string {
    if strings.TrimSpace(req.Room) == "" || strings.TrimSpace(req.Equipment) == "" {
        return "room and equipment are required"
    }
    if req.Slot == 0 && (req.Start == "" || req.End == "") {
        return "start and end, or date and slot, are required"
    }
    return ""
}

func confirmation(conf booking.Confirmation) confirmationResp {
    out := confirmationResp{Reservation: conf.Reservation}
    if conf.UsageCounted {
        n := conf.UseCount
        out.UseCount = &n
        out.MaintenanceDue = conf.MaintenanceDue
        if conf.MaintenanceDue {
            out.Notice = "Maintenance is due: please drain and clean the equipment after this use."
        }
    }
    return out
}

func (h *ReservationHandler) create(c echo.Context, actor, owner booking.Principal) error {
    var req reservationReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    if msg := req.validate(); msg != "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
    }
    start, end, ok := req.interval(h.Engine.Now())
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid start/end or slot"})
    }
    conf, err := h.Engine.CreateReservation(c.Request().Context(), booking.Request{
        Actor: actor, Owner: owner, Room: req.Room, Equipment: req.Equipment, Start: start, End: end,
    })
    if err != nil {
        return bookingError(c, err)
    }
    return c.JSON(http.StatusCreated, confirmation(conf))
}

// Create books equipment for the caller.
func (h *ReservationHandler) Create(c echo.Context) error {
    p, ok := principal(c)
    if !ok {
        return nil
    }
    return h.create(c, p, p)
}

// Cancel deletes one of the caller's future reservations.  Admins may
// cancel any reservation.
func (h *ReservationHandler) Cancel(c echo.Context) error {
    p, ok := principal(c)
    if !ok {
        return nil
    }
    res, err := h.Engine.CancelReservation(c.Request().Context(), p, c.Param("id"))
    if err != nil {
        return bookingError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"cancelled": res})
}

// Mine lists the caller's reservations that can still be cancelled.
func (h *ReservationHandler) Mine(c echo.Context) error {
    p, ok := principal(c)
    if !ok {
        return nil
    }
    rs := h.Engine.UserReservations(c.Request().Context(), p)
    if rs == nil {
        rs = []model.Reservation{}
    }
    return c.JSON(http.StatusOK, echo.Map{"reservations": rs})
}

// Timeline returns the availability of one room on ?date=.
func (h *ReservationHandler) Timeline(c echo.Context) error {
    date, err := parseDate(c.QueryParam("date"), h.Engine.Now())
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
    }
    tl, err := h.Engine.ListReservations(c.Request().Context(), c.Param("room"), date)
    if err != nil {
        return bookingError(c, err)
    }
    return c.JSON(http.StatusOK, tl)
}

// Slots lists the PCR slots still bookable on ?date=.
func (h *ReservationHandler) Slots(c echo.Context) error {
    date, err := parseDate(c.QueryParam("date"), h.Engine.Now())
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
    }
    usable := h.Engine.UsableSlots(date)
    out := make([]slotResp, 0, len(usable))
    for _, s := range usable {
        start, end := s.On(date)
        n := int((s.Start-booking.SlotDayStart)/booking.SlotLength) + 1
        out = append(out, slotResp{Number: n, Label: s.Label, Start: start, End: end})
    }
    return c.JSON(http.StatusOK, echo.Map{"date": date.Format(time.DateOnly), "slots": out})
}

// Rooms lists the equipment catalog.
func (h *ReservationHandler) Rooms(c echo.Context) error {
    return c.JSON(http.StatusOK, echo.Map{"rooms": h.Catalog.Rooms()})
}
