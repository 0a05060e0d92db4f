package domain

import (
	"strings"
	"time"
)

// User statuses
const (
	StatusActive    = "Active"
	StatusSuspended = "Suspended"
	StatusBanned    = "Banned"
)

// User roles
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Interested-in preferences
const (
	InterestedInEveryone = "everyone"
	InterestedInMale     = "male"
	InterestedInFemale   = "female"
)

const (
	MinAge       = 18
	MaxBioLength = 500
	MaxPhotos    = 6
)

type User struct {
	ID           int       `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	Password     string    `json:"-" db:"password"`
	DateOfBirth  time.Time `json:"date_of_birth" db:"date_of_birth"`
	Gender       string    `json:"gender" db:"gender"`
	InterestedIn string    `json:"interested_in" db:"interested_in"`
	Hobbies      []string  `json:"hobbies" db:"hobbies"`
	Interests    []string  `json:"interests" db:"interests"`
	Bio          string    `json:"bio" db:"bio"`
	Photos       []string  `json:"photos" db:"photos"`
	ShowAge      bool      `json:"show_age" db:"show_age"`
	ShowBio      bool      `json:"show_bio" db:"show_bio"`

	// Real-time state only; no historical location is kept.
	ActiveVenueID *int      `json:"active_venue_id" db:"active_venue_id"`
	LastActiveAt  time.Time `json:"last_active_at" db:"last_active_at"`

	Status    string    `json:"status" db:"status"`
	Role      string    `json:"role" db:"role"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Age returns the user's age in full years as of now.
func (u *User) Age() int {
	return AgeAt(u.DateOfBirth, time.Now())
}

// AgeAt computes full years between dob and a reference time.
func AgeAt(dob, at time.Time) int {
	age := at.Year() - dob.Year()
	anniversary := dob.AddDate(age, 0, 0)
	if anniversary.After(at) {
		age--
	}
	return age
}

// IsAtVenue reports whether the user is currently checked into venueID.
func (u *User) IsAtVenue(venueID int) bool {
	return u.ActiveVenueID != nil && *u.ActiveVenueID == venueID
}

// SameVenue reports whether both users have a non-null active venue and it is
// the same one.
func (u *User) SameVenue(other *User) bool {
	return u.ActiveVenueID != nil && other.ActiveVenueID != nil &&
		*u.ActiveVenueID == *other.ActiveVenueID
}

// FoldedInterests returns the user's combined hobbies and interests,
// lowercased and trimmed. Order is preserved and duplicates are kept, which
// matters for the asymmetric match score.
func (u *User) FoldedInterests() []string {
	out := make([]string, 0, len(u.Hobbies)+len(u.Interests))
	for _, v := range u.Hobbies {
		out = append(out, strings.ToLower(strings.TrimSpace(v)))
	}
	for _, v := range u.Interests {
		out = append(out, strings.ToLower(strings.TrimSpace(v)))
	}
	return out
}
