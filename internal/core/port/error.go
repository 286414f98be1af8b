package port

import (
	"errors"
	"fmt"
)

// TransportFallbackMsg is shown when the backend never answered.
const TransportFallbackMsg = "Unable to reach the server. Please check your connection."

// GatewayError is a failed backend call. Status 0 means the request never got
// an HTTP response (transport failure). Message carries the backend's own
// message when one was present, either from the HTTP error body or from a
// success:false envelope.
type GatewayError struct {
	Status  int
	Message string
}

func (e *GatewayError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("gateway: transport failure: %s", e.Message)
	}
	return fmt.Sprintf("gateway: status %d: %s", e.Status, e.Message)
}

// HasStatus reports whether err is a GatewayError with one of the given
// HTTP statuses.
func HasStatus(err error, statuses ...int) bool {
	var ge *GatewayError
	if !errors.As(err, &ge) {
		return false
	}
	for _, s := range statuses {
		if ge.Status == s {
			return true
		}
	}
	return false
}

// UserMessage extracts the message to surface for err: the backend's own
// message when present, the transport fallback for connection failures, and
// the given fallback otherwise.
func UserMessage(err error, fallback string) string {
	var ge *GatewayError
	if errors.As(err, &ge) {
		if ge.Status == 0 {
			return TransportFallbackMsg
		}
		if ge.Message != "" {
			return ge.Message
		}
	}
	return fallback
}
