package websocketdto

import "encoding/json"

// Event names pushed over the per-user and per-provider channels.
const (
	EventNewRequest       = "new_request"
	EventRequestAccepted  = "request_accepted"
	EventRequestDeclined  = "request_declined"
	EventRequestCompleted = "request_completed"
	EventRequestCancelled = "request_cancelled"
)

type Event struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// RequestEventDto is the payload carried by every lifecycle event.
type RequestEventDto struct {
	RequestId  string `json:"request_id"`
	Status     string `json:"status"`
	UserId     string `json:"user_id,omitempty"`
	ProviderId string `json:"provider_id,omitempty"`
	IssueType  string `json:"issue_type,omitempty"`
	Reason     string `json:"reason,omitempty"`
}
