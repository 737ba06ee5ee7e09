package model

import "time"

const (
	StatusPending   = "pending"
	StatusAccepted  = "accepted"
	StatusDeclined  = "declined"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// DefaultDeclineReason is stored when a provider declines without a reason.
const DefaultDeclineReason = "No reason provided"

type Request struct {
	ID            string
	RequestNumber string
	UserID        string
	ProviderID    string
	Latitude      float64
	Longitude     float64
	IssueType     string
	Description   string
	Status        string
	Reason        string
	CreatedAt     time.Time
	AssignedAt    *time.Time
	CompletedAt   *time.Time
	CancelledAt   *time.Time
	DeclinedAt    *time.Time
}

// IsTerminal reports whether a status permits no further transitions.
func IsTerminal(status string) bool {
	switch status {
	case StatusCompleted, StatusDeclined, StatusCancelled:
		return true
	}
	return false
}

// AcceptableFrom lists the statuses each transition is legal from.
// Complete is legal straight from pending: the source system lets a
// provider close out a request it never explicitly accepted.
var (
	AcceptableFrom = []string{StatusPending}
	DeclinableFrom = []string{StatusPending}
	CompletableFrom = []string{StatusPending, StatusAccepted}
	CancellableFrom = []string{StatusPending, StatusAccepted}
)
