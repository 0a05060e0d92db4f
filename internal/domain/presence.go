package domain

import "time"

// PresenceTTL is the sliding window refreshed by check-in and heartbeat.
const PresenceTTL = 4 * time.Hour

// Presence is the single ephemeral "user is at venue" record. At most one
// exists per user; a new check-in replaces it. The storage layer deletes it
// once ExpiresAt passes, so readers must treat a missing record the same as
// one that never existed.
type Presence struct {
	UserID     int       `json:"user_id"`
	VenueID    int       `json:"venue_id"`
	LastSeenAt time.Time `json:"last_seen_at"`
	ExpiresAt  time.Time `json:"expires_at"`
}
