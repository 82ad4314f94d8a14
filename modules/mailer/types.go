package mailer

// SendRequest represents an outbound notification request.
type SendRequest struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// SendResponse reports the delivery outcome. Failures come back in the
// response rather than as a service error so callers can treat delivery
// as best-effort.
type SendResponse struct {
	Delivered bool   `json:"delivered"`
	Error     string `json:"error,omitempty"`
}
