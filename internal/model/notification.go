package model

import "time"

// MatchNotification links one lost item to one found item that the matching
// engine judged similar enough to surface to the lost item's owner.
// At most one notification exists per (lost_item, found_item) pair.
type MatchNotification struct {
	ID          int64     `json:"id"`
	LostItemID  int64     `json:"lost_item_id"`
	FoundItemID int64     `json:"found_item_id"`
	Notified    bool      `json:"notified"`
	CreatedAt   time.Time `json:"created_at"`

	// Joined fields (not always populated).
	LostTitle     string `json:"lost_title,omitempty"`
	FoundTitle    string `json:"found_title,omitempty"`
	FoundLocation string `json:"found_location,omitempty"`
}
