package messagebrokerdto

// RequestEvent mirrors the websocket payload onto the broker so other
// instances and offline consumers see the same lifecycle stream.
type RequestEvent struct {
	RequestId     string `json:"request_id"`
	Event         string `json:"event"`
	Status        string `json:"status"`
	UserId        string `json:"user_id,omitempty"`
	ProviderId    string `json:"provider_id,omitempty"`
	Reason        string `json:"reason,omitempty"`
	Timestamp     string `json:"timestamp"`
	CorrelationID string `json:"correlation_id"`
}
