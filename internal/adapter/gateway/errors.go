package gateway

import "github.com/revcart/storefront/internal/core/port"

func transportError(err error) error {
	return &port.GatewayError{Status: 0, Message: err.Error()}
}

func statusError(status int, message string) error {
	return &port.GatewayError{Status: status, Message: message}
}
