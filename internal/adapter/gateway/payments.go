package gateway

import (
	"context"
	"fmt"
	"net/http"

	"github.com/revcart/storefront/internal/core/domain"
	"github.com/revcart/storefront/internal/core/port"
)

var _ port.PaymentGateway = (*PaymentAPI)(nil)

type PaymentAPI struct {
	cl *Client
}

func NewPaymentAPI(cl *Client) PaymentAPI {
	return PaymentAPI{cl}
}

// ProcessDummyPayment captures a dummy payment for an order. The request uses
// the endpoint's legacy form: order id and amount plus user id and payment
// method, with the UPI handle when one was collected.
func (a PaymentAPI) ProcessDummyPayment(
	ctx context.Context,
	orderID, userID string,
	amount float64,
	paymentMethod, upiID string,
) (domain.PaymentResult, error) {
	const op = "PaymentAPI.ProcessDummyPayment"

	oid, ok := idFromString(orderID)
	if !ok {
		return domain.PaymentResult{}, fmt.Errorf("%s: invalid order id %q", op, orderID)
	}
	uid, ok := idFromString(userID)
	if !ok {
		return domain.PaymentResult{}, fmt.Errorf("%s: invalid user id %q", op, userID)
	}

	body := map[string]any{
		"orderId":       oid,
		"userId":        uid,
		"amount":        amount,
		"paymentMethod": paymentMethod,
	}
	if upiID != "" {
		body["upiId"] = upiID
	}

	var resp PaymentResponse
	err := a.cl.doJSON(ctx, http.MethodPost, "/payments/dummy", nil, body, &resp)
	if err != nil {
		return domain.PaymentResult{}, fmt.Errorf("%s: %w", op, err)
	}
	return domain.PaymentResult{
		Status:    resp.Status,
		PaymentID: resp.PaymentID,
		Message:   resp.Message,
	}, nil
}
