package model

import "time"

// NewsEvent is a news post or scheduled event shown on the public site.
// CoverImage and gallery image URLs are stored in their canonical relative
// form; absolute URLs are built at the presentation layer.
type NewsEvent struct {
	ID          int64     `json:"id" db:"id"`
	CategoryID  int64     `json:"category_id" db:"category_id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	Location    string    `json:"location" db:"location"`
	CoverImage  *string   `json:"cover_image" db:"cover_image"`
	DateTime    DateTime  `json:"date_time" db:"date_time"`
	Status      string    `json:"status" db:"status"`
	CreatedBy   *int64    `json:"created_by,omitempty" db:"created_by"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`

	// Relations
	Images []NewsEventImage `json:"images" db:"-"`
}
