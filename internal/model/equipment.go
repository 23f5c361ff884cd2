package model

// Equipment describes one bookable item in a room.  The catalog is
// defined in a static configuration file; only Enabled changes at
// runtime, through the admin toggle.
//
// Fields:
//  Name         – unique name within the room.
//  Room         – owning room.
//  SlotBased    – bookable only in fixed 3-hour slots (PCR machines).
//  UsageCounted – triggers a maintenance reminder every few uses (autoclaves).
//  HorizonDays  – overrides the general booking horizon when > 0.
//  Enabled      – disabled equipment rejects every booking.
//  Details      – free text shown to users.
//  Image        – path of a picture shown to users.
type Equipment struct {
    Name         string `json:"name"`
    Room         string `json:"room"`
    SlotBased    bool   `json:"slot_based"`
    UsageCounted bool   `json:"usage_counted"`
    HorizonDays  int    `json:"horizon_days,omitempty"`
    Enabled      bool   `json:"enabled"`
    Details      string `json:"details,omitempty"`
    Image        string `json:"image,omitempty"`
}

// Collection returns the reservation collection bookings of this equipment
// belong to.
func (e Equipment) Collection() Collection {
    if e.SlotBased {
        return CollectionSlot
    }
    return CollectionFreeForm
}
