package domain

import "encoding/json"

// ActiveVenue is the explicit three-state shape of a user's current venue:
// unset, a bare id, or a populated summary. Callers narrow with the accessor
// methods instead of inspecting a dynamic value.
type ActiveVenue struct {
	kind    venueRefKind
	venueID int
	summary *VenueSummary
}

type venueRefKind int

const (
	venueRefUnset venueRefKind = iota
	venueRefID
	venueRefPopulated
)

func UnsetVenue() ActiveVenue {
	return ActiveVenue{kind: venueRefUnset}
}

func VenueByID(id int) ActiveVenue {
	return ActiveVenue{kind: venueRefID, venueID: id}
}

func PopulatedVenue(s VenueSummary) ActiveVenue {
	return ActiveVenue{kind: venueRefPopulated, venueID: s.ID, summary: &s}
}

// IsSet reports whether the user is checked in anywhere.
func (a ActiveVenue) IsSet() bool {
	return a.kind != venueRefUnset
}

// ID returns the venue id when set.
func (a ActiveVenue) ID() (int, bool) {
	if a.kind == venueRefUnset {
		return 0, false
	}
	return a.venueID, true
}

// Summary returns the populated venue summary when available.
func (a ActiveVenue) Summary() (*VenueSummary, bool) {
	if a.kind != venueRefPopulated {
		return nil, false
	}
	return a.summary, true
}

// MarshalJSON renders null, a bare id object, or the full summary.
func (a ActiveVenue) MarshalJSON() ([]byte, error) {
	switch a.kind {
	case venueRefID:
		return json.Marshal(struct {
			ID int `json:"id"`
		}{ID: a.venueID})
	case venueRefPopulated:
		return json.Marshal(a.summary)
	default:
		return []byte("null"), nil
	}
}
