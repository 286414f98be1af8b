package domain_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/revcart/storefront/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// now anchors the expiry checks to a fixed date.
var now = time.Date(2026, time.June, 15, 0, 0, 0, 0, time.UTC)

func validCard() domain.CardDetails {
	return domain.CardDetails{
		HolderName:  "Jane Doe",
		Number:      "4111 1111 1111 1111",
		ExpiryMonth: "05",
		ExpiryYear:  fmt.Sprintf("%d", now.Year()+5),
		CVV:         "123",
	}
}

func TestCardDetailsValidate(t *testing.T) {
	t.Run("ValidCardPasses", func(t *testing.T) {
		errs := validCard().Validate(now)
		assert.True(t, errs.OK(), "unexpected errors: %v", errs)
	})

	t.Run("FieldRules", func(t *testing.T) {
		tests := []struct {
			name   string
			mutate func(*domain.CardDetails)
			field  string
			msg    string
		}{
			{
				name:   "MissingHolder",
				mutate: func(d *domain.CardDetails) { d.HolderName = "  " },
				field:  "cardHolderName",
				msg:    "Card holder name is required",
			},
			{
				name:   "OneLetterHolder",
				mutate: func(d *domain.CardDetails) { d.HolderName = "J" },
				field:  "cardHolderName",
				msg:    "Name must be at least 2 characters",
			},
			{
				name:   "DigitsInHolder",
				mutate: func(d *domain.CardDetails) { d.HolderName = "Jane 2" },
				field:  "cardHolderName",
				msg:    "Name must contain only letters",
			},
			{
				name:   "ShortNumber",
				mutate: func(d *domain.CardDetails) { d.Number = "4111 1111" },
				field:  "cardNumber",
				msg:    "Card number must be exactly 16 digits",
			},
			{
				name:   "LettersInNumber",
				mutate: func(d *domain.CardDetails) { d.Number = "4111x11111111111" },
				field:  "cardNumber",
				msg:    "Card number must contain only digits",
			},
			{
				name:   "MonthThirteen",
				mutate: func(d *domain.CardDetails) { d.ExpiryMonth = "13" },
				field:  "expiryMonth",
				msg:    "Invalid month (01-12)",
			},
			{
				name:   "PastYear",
				mutate: func(d *domain.CardDetails) { d.ExpiryYear = fmt.Sprintf("%d", now.Year()-1) },
				field:  "expiryYear",
				msg:    "Card has expired",
			},
			{
				name: "YearBeyondWindow",
				mutate: func(d *domain.CardDetails) {
					d.ExpiryYear = fmt.Sprintf("%d", now.Year()+21)
				},
				field: "expiryYear",
				msg:   "Invalid expiry year",
			},
			{
				name: "EarlierMonthThisYear",
				mutate: func(d *domain.CardDetails) {
					d.ExpiryMonth = "05"
					d.ExpiryYear = fmt.Sprintf("%d", now.Year())
				},
				field: "expiryMonth",
				msg:   "Card has expired",
			},
			{
				name:   "TwoDigitCVV",
				mutate: func(d *domain.CardDetails) { d.CVV = "12" },
				field:  "cvv",
				msg:    "CVV must be exactly 3 digits",
			},
			{
				name:   "LettersInCVV",
				mutate: func(d *domain.CardDetails) { d.CVV = "12a" },
				field:  "cvv",
				msg:    "CVV must contain only digits",
			},
		}

		for _, tc := range tests {
			t.Run(tc.name, func(t *testing.T) {
				d := validCard()
				tc.mutate(&d)
				errs := d.Validate(now)
				require.False(t, errs.OK())
				assert.Equal(t, tc.msg, errs[tc.field])
			})
		}
	})

	t.Run("SpacesInNumberAreStripped", func(t *testing.T) {
		d := validCard()
		d.Number = "4111 1111 1111 1111"
		assert.True(t, d.Validate(now).OK())
	})

	t.Run("LaterMonthThisYearIsFine", func(t *testing.T) {
		d := validCard()
		d.ExpiryMonth = "12"
		d.ExpiryYear = fmt.Sprintf("%d", now.Year())
		assert.True(t, d.Validate(now).OK())
	})
}

func TestUPIDetailsValidate(t *testing.T) {
	tests := []struct {
		name  string
		upiID string
		ok    bool
	}{
		{"ValidHandle", "jane@upi", true},
		{"MinimumLength", "a@b", true},
		{"TrimmedTooShort", "  ab  ", false},
		{"Empty", "", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			errs := domain.UPIDetails{UPIID: tc.upiID}.Validate()
			assert.Equal(t, tc.ok, errs.OK())
		})
	}
}

func TestBackendPaymentMethod(t *testing.T) {
	assert.Equal(t, "RAZORPAY", domain.BackendPaymentMethod(domain.PayCard))
	assert.Equal(t, "UPI", domain.BackendPaymentMethod(domain.PayUPI))
	assert.Equal(t, "COD", domain.BackendPaymentMethod(domain.PayCOD))
	assert.Equal(t, "COD", domain.BackendPaymentMethod("netbanking"))
}

func TestPaymentResultCaptured(t *testing.T) {
	assert.True(t, domain.PaymentResult{Status: "SUCCESS"}.Captured())
	assert.False(t, domain.PaymentResult{Status: "FAILED"}.Captured())
	assert.False(t, domain.PaymentResult{}.Captured())
}
