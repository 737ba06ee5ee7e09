package dto

// API transfer data for the request lifecycle.

type HelpRequestDto struct {
	UserId      *string  `json:"user_id"`
	ProviderId  *string  `json:"provider_id"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	IssueType   *string  `json:"issue_type"`
	Description *string  `json:"description,omitempty"`
}

type HelpRequestResponseDto struct {
	RequestId     string `json:"request_id"`
	RequestNumber string `json:"request_number"`
	ProviderId    string `json:"provider_id"`
	Status        string `json:"status"`
	CreatedAt     string `json:"created_at"`
	Message       string `json:"message"`
}

type DeclineRequestDto struct {
	Reason *string `json:"reason,omitempty"`
}

type CancelRequestDto struct {
	Reason *string `json:"reason,omitempty"`
}

type RequestStatusResponseDto struct {
	RequestId string `json:"request_id"`
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Message   string `json:"message"`
}

type RequestDto struct {
	RequestId     string  `json:"request_id"`
	RequestNumber string  `json:"request_number"`
	UserId        string  `json:"user_id"`
	ProviderId    string  `json:"provider_id"`
	Latitude      float64 `json:"latitude"`
	Longitude     float64 `json:"longitude"`
	IssueType     string  `json:"issue_type"`
	Description   string  `json:"description,omitempty"`
	Status        string  `json:"status"`
	Reason        string  `json:"reason,omitempty"`
	CreatedAt     string  `json:"created_at"`
	AssignedAt    string  `json:"assigned_at,omitempty"`
	CompletedAt   string  `json:"completed_at,omitempty"`
	CancelledAt   string  `json:"cancelled_at,omitempty"`
	DeclinedAt    string  `json:"declined_at,omitempty"`
}

type RequestListDto struct {
	Requests []RequestDto `json:"requests"`
	Count    int          `json:"count"`
}
