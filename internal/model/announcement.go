package model

import "time"

// Announcement is the banner shown to every signed-in user.  Only
// lecturers and admins may publish one; an empty Text hides it.
type Announcement struct {
    Text      string    `json:"text"`
    Author    string    `json:"author,omitempty"`
    UpdatedAt time.Time `json:"updated_at,omitempty"`
}
