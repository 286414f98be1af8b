package domain

import (
	"strconv"
	"strings"
	"time"
)

// PaymentMethod is the shopper's payment choice.
type PaymentMethod string

const (
	PayCard PaymentMethod = "card"
	PayUPI  PaymentMethod = "upi"
	PayCOD  PaymentMethod = "cod"
)

// backendPaymentMethods maps the payment choice onto the backend's fixed
// vocabulary. Anything unrecognized falls back to COD.
var backendPaymentMethods = map[PaymentMethod]string{
	PayCard: "RAZORPAY",
	PayUPI:  "UPI",
	PayCOD:  "COD",
}

// BackendPaymentMethod returns the wire value for a payment choice.
func BackendPaymentMethod(m PaymentMethod) string {
	if v, ok := backendPaymentMethods[m]; ok {
		return v
	}
	return "COD"
}

// PaymentResult is the backend's answer to a dummy payment capture.
type PaymentResult struct {
	Status    string
	PaymentID string
	Message   string
}

// Captured reports whether the backend settled the payment.
func (r PaymentResult) Captured() bool { return r.Status == "SUCCESS" }

type (
	CardDetails struct {
		HolderName  string
		Number      string
		ExpiryMonth string
		ExpiryYear  string
		CVV         string
	}

	UPIDetails struct {
		UPIID string
	}
)

// FieldErrors maps a form field name to its first validation message.
type FieldErrors map[string]string

func (fe FieldErrors) OK() bool { return len(fe) == 0 }

const cardExpiryWindowYears = 20

func lettersAndSpacesOnly(s string) bool {
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r == ' ':
		default:
			return false
		}
	}
	return true
}

func digitsOnly(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

// Validate checks the card fields against the capture-form rules: holder name
// letters/spaces of length two or more, exactly sixteen digits after stripping
// the formatting spaces, month 1-12, year within the next twenty years and not
// already expired, three-digit CVV. now anchors the expiry check.
func (d CardDetails) Validate(now time.Time) FieldErrors {
	errs := FieldErrors{}

	holder := strings.TrimSpace(d.HolderName)
	switch {
	case holder == "":
		errs["cardHolderName"] = "Card holder name is required"
	case len(holder) < 2:
		errs["cardHolderName"] = "Name must be at least 2 characters"
	case !lettersAndSpacesOnly(d.HolderName):
		errs["cardHolderName"] = "Name must contain only letters"
	}

	number := strings.ReplaceAll(d.Number, " ", "")
	switch {
	case number == "":
		errs["cardNumber"] = "Card number is required"
	case !digitsOnly(number):
		errs["cardNumber"] = "Card number must contain only digits"
	case len(number) != 16:
		errs["cardNumber"] = "Card number must be exactly 16 digits"
	}

	month, monthErr := strconv.Atoi(d.ExpiryMonth)
	switch {
	case d.ExpiryMonth == "":
		errs["expiryMonth"] = "Expiry month is required"
	case monthErr != nil || month < 1 || month > 12:
		errs["expiryMonth"] = "Invalid month (01-12)"
	}

	currentYear := now.Year()
	year, yearErr := strconv.Atoi(d.ExpiryYear)
	switch {
	case d.ExpiryYear == "":
		errs["expiryYear"] = "Expiry year is required"
	case yearErr != nil:
		errs["expiryYear"] = "Invalid expiry year"
	case year < currentYear:
		errs["expiryYear"] = "Card has expired"
	case year > currentYear+cardExpiryWindowYears:
		errs["expiryYear"] = "Invalid expiry year"
	}

	if _, m := errs["expiryMonth"]; !m {
		if _, y := errs["expiryYear"]; !y {
			if year == currentYear && month < int(now.Month()) {
				errs["expiryMonth"] = "Card has expired"
			}
		}
	}

	switch {
	case d.CVV == "":
		errs["cvv"] = "CVV is required"
	case !digitsOnly(d.CVV):
		errs["cvv"] = "CVV must contain only digits"
	case len(d.CVV) != 3:
		errs["cvv"] = "CVV must be exactly 3 digits"
	}

	return errs
}

// Validate checks the UPI identifier: trimmed length of three or more. No
// stricter grammar is enforced.
func (d UPIDetails) Validate() FieldErrors {
	errs := FieldErrors{}
	id := strings.TrimSpace(d.UPIID)
	switch {
	case id == "":
		errs["upiId"] = "UPI ID is required"
	case len(id) < 3:
		errs["upiId"] = "Enter a valid UPI ID"
	}
	return errs
}
