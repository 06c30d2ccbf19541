package model

// Publication states shared by categories and news and events items.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// IsValidStatus reports whether s is one of the publication states.
func IsValidStatus(s string) bool {
	return s == StatusActive || s == StatusInactive
}
