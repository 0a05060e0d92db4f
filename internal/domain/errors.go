package domain

import "errors"

// ValidationError marks business-rule violations that map to a 400 and are
// safe for the client to see verbatim.
type ValidationError string

func (e ValidationError) Error() string { return string(e) }

// ForbiddenError marks authorization failures (403).
type ForbiddenError string

func (e ForbiddenError) Error() string { return string(e) }

// Not found. Expired TTL records surface through the same errors: deletion by
// the store is invisible to callers.
var (
	ErrUserNotFound   = errors.New("user not found")
	ErrTargetNotFound = errors.New("target user not found")
	ErrVenueNotFound  = errors.New("venue not found or inactive")
	ErrMatchNotFound  = errors.New("match not found")
	ErrChatNotFound   = errors.New("match not found or expired")
	ErrReportNotFound = errors.New("report not found")
)

// Validation-class failures.
var (
	ErrEmailTaken       = ValidationError("email already registered")
	ErrPasswordMismatch = ValidationError("password mismatch")
	ErrUnderage         = ValidationError("must be 18 or older")
	ErrNotCheckedIn     = ValidationError("you are not checked into any venue")
	ErrTargetNotAtVenue = ValidationError("target user is not at your venue")
	ErrEmptyMessage     = ValidationError("message text required")
	ErrMessageTooLong   = ValidationError("message text too long")
	ErrMatchExists      = ValidationError("match already exists")

	// Venue-lock failures on the chat surface.
	ErrVenueLock      = ValidationError("messaging is only available when both users are at the same venue")
	ErrWrongChatVenue = ValidationError("you must be at the venue where you matched to chat")
	ErrNotAtChatVenue = ValidationError("you must be at the venue to view messages")
)

// Authentication / authorization.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountBanned      = ForbiddenError("account banned")
	ErrAccountSuspended   = ForbiddenError("account suspended")
	ErrNotParticipant     = ForbiddenError("you are not part of this match")
)
