package sse

// ConnectedPayload is the first message on every stream
type ConnectedPayload struct {
	ClientID  string   `json:"client_id"`
	WheelCode string   `json:"wheel_code"`
	Filters   []string `json:"filters,omitempty"`
}
