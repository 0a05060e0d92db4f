package domain

import "time"

// Report statuses
const (
	ReportOpen     = "Open"
	ReportReviewed = "Reviewed"
	ReportClosed   = "Closed"
)

// Report is an abuse complaint with a moderator-driven lifecycle, independent
// of matching and presence.
type Report struct {
	ID             int       `json:"id" db:"id"`
	ReporterUserID int       `json:"reporter_user_id" db:"reporter_user_id"`
	ReportedUserID int       `json:"reported_user_id" db:"reported_user_id"`
	Reason         string    `json:"reason" db:"reason"`
	Details        string    `json:"details" db:"details"`
	Status         string    `json:"status" db:"status"`
	AdminNotes     string    `json:"admin_notes" db:"admin_notes"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

func ValidReportStatus(s string) bool {
	return s == ReportOpen || s == ReportReviewed || s == ReportClosed
}
