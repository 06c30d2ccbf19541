package model

import "time"

// NewsEventImage is one gallery image attached to a news and events item.
// ImageOrder mirrors the position of the image in the submitted gallery.
type NewsEventImage struct {
	ID          int64     `json:"id" db:"id"`
	NewsEventID int64     `json:"news_and_events_id" db:"news_and_events_id"`
	ImageURL    string    `json:"image_url" db:"image_url"`
	ImageOrder  int       `json:"image_order" db:"image_order"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
