package model

import "time"

// TimeSlot is one entry of the daily slot catalog used by slot-based
// equipment.  Start and End are offsets from midnight.
type TimeSlot struct {
    Label string        `json:"label"`
    Start time.Duration `json:"-"`
    End   time.Duration `json:"-"`
}

// On anchors the slot to the calendar day of date and returns the
// absolute start and end instants in date's location.
func (s TimeSlot) On(date time.Time) (time.Time, time.Time) {
    y, m, d := date.Date()
    midnight := time.Date(y, m, d, 0, 0, 0, 0, date.Location())
    return midnight.Add(s.Start), midnight.Add(s.End)
}

// UsageCount is the number of uses recorded for counted equipment since
// the last maintenance reset.
type UsageCount struct {
    Equipment string `json:"equipment"`
    Count     int    `json:"count"`
}
