package domain

import "time"

// How a match was formed
const (
	MatchedBySwipe  = "swipe"
	MatchedByNearby = "nearby"
	MatchedByEvent  = "event"
	MatchedByAdmin  = "admin"
)

// Match is the permanent record of a mutual like. The pair is stored ordered
// (User1ID < User2ID) and is unique for the application's lifetime regardless
// of venue: a second meeting elsewhere never creates a second row.
type Match struct {
	ID         int       `json:"id" db:"id"`
	User1ID    int       `json:"user1_id" db:"user1_id"`
	User2ID    int       `json:"user2_id" db:"user2_id"`
	VenueID    int       `json:"venue_id" db:"venue_id"`
	HowMatched string    `json:"how_matched" db:"how_matched"`
	MatchedAt  time.Time `json:"matched_at" db:"matched_at"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

func (m *Match) HasUser(userID int) bool {
	return m.User1ID == userID || m.User2ID == userID
}

func (m *Match) GetOtherUserID(userID int) (int, bool) {
	if m.User1ID == userID {
		return m.User2ID, true
	}
	if m.User2ID == userID {
		return m.User1ID, true
	}
	return 0, false
}

// OrderPair normalizes an unordered user pair to the stored order.
func OrderPair(a, b int) (int, int) {
	if a > b {
		return b, a
	}
	return a, b
}
