package domain

import "time"

// EphemeralMatchTTL bounds how long a chat window stays open after a match.
const EphemeralMatchTTL = 24 * time.Hour

// MaxMessageLength caps a single chat message.
const MaxMessageLength = 500

// EphemeralMatch is the time-boxed, venue-scoped chat-eligibility window tied
// to a Match event. Unlike Match it expires: the store deletes it at
// ExpiresAt, and "expired" is indistinguishable from "never existed".
type EphemeralMatch struct {
	ID        string    `json:"id"`
	VenueID   int       `json:"venue_id"`
	Users     [2]int    `json:"users"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (m *EphemeralMatch) HasUser(userID int) bool {
	return m.Users[0] == userID || m.Users[1] == userID
}

func (m *EphemeralMatch) OtherUserID(userID int) (int, bool) {
	if m.Users[0] == userID {
		return m.Users[1], true
	}
	if m.Users[1] == userID {
		return m.Users[0], true
	}
	return 0, false
}

// EphemeralMessage co-expires with its parent match, which is what makes
// conversations disappear in aggregate. Venue checks on read/write are the
// primary gate; the TTL is the backstop.
type EphemeralMessage struct {
	ID        string    `json:"id"`
	MatchID   string    `json:"match_id"`
	From      int       `json:"from"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}
