package service

import "errors"

var (
	ErrCartEmpty          = errors.New("cart is empty")
	ErrAddressFields      = errors.New("required address fields are blank")
	ErrAddressNotFound    = errors.New("selected address not found")
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrCheckoutInProgress = errors.New("checkout already in progress")
	ErrNoPaymentPending   = errors.New("no payment awaiting capture")
	ErrCaptureInProgress  = errors.New("payment capture already in progress")
	ErrPaymentRejected    = errors.New("payment rejected")
)
