package model

import (
	"regexp"
	"time"
)

// Item represents a single lost or found listing.
type Item struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Kind        string    `json:"kind"`
	Category    string    `json:"category"`
	Location    string    `json:"location"`
	ContactInfo string    `json:"contact_info"`
	PhotoMime   string    `json:"photo_mime,omitempty"`
	CreatedAt   time.Time `json:"created_at"`

	// Joined fields (not always populated).
	PosterName string `json:"poster_name,omitempty"`
}

// Item kinds.
const (
	KindLost  = "LOST"
	KindFound = "FOUND"
)

// CategoryOthers is the default category for new items.
const CategoryOthers = "others"

// CategoryLabels maps category values to their display labels.
// The key set is the closed set of valid categories.
var CategoryLabels = map[string]string{
	"electronics": "Electronics",
	"stationery":  "Stationery",
	"wallets":     "Wallets & Accessories",
	"books":       "Books",
	"id_cards":    "ID Cards",
	"keys":        "Keys",
	"clothing":    "Clothing",
	"others":      "Others",
}

// LocationLabels maps location values to their display labels.
var LocationLabels = map[string]string{
	"hostel":   "Hostel",
	"library":  "Central Library",
	"sports":   "Sports Complex",
	"academic": "Academic Building",
	"others":   "Others",
}

var phonePattern = regexp.MustCompile(`^\+?\d{10,15}$`)

// ValidKind reports whether kind is LOST or FOUND.
func ValidKind(kind string) bool {
	return kind == KindLost || kind == KindFound
}

// ValidCategory reports whether category is one of the fixed choices.
func ValidCategory(category string) bool {
	_, ok := CategoryLabels[category]
	return ok
}

// ValidLocation reports whether location is one of the fixed choices.
func ValidLocation(location string) bool {
	_, ok := LocationLabels[location]
	return ok
}

// ValidContactInfo reports whether contact is a phone-shaped string.
func ValidContactInfo(contact string) bool {
	return phonePattern.MatchString(contact)
}
