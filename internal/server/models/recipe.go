package models

import "time"

// Recipe is a published recipe. CreatorID is set once at creation and never
// changes; Creator is populated (id + name) only where the read path resolves
// the relation. ImageURL is an opaque reference into the image store.
type Recipe struct {
	ID          string    `json:"_id"`
	Title       string    `json:"title"`
	ImageURL    string    `json:"imageUrl"`
	Description string    `json:"description"`
	Body        string    `json:"recipe"`
	Minutes     int       `json:"numOfMin"`
	Ingredients []string  `json:"ingredients"`
	CreatorID   string    `json:"-"`
	Creator     *User     `json:"creator,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}
