package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/revcart/storefront/internal/core/domain"
	"github.com/revcart/storefront/internal/core/port"
)

var _ port.AuthGateway = (*AuthAPI)(nil)

type AuthAPI struct {
	cl *Client
}

func NewAuthAPI(cl *Client) AuthAPI {
	return AuthAPI{cl}
}

func (a AuthAPI) Login(ctx context.Context, creds domain.Credentials) (domain.Session, error) {
	const op = "AuthAPI.Login"

	body := map[string]string{
		"email":    creds.Email,
		"password": creds.Password,
	}

	var resp AuthResponse
	err := a.cl.doJSON(ctx, http.MethodPost, "/users/login", nil, body, &resp)
	if err != nil {
		return domain.Session{}, fmt.Errorf("%s: %w", op, err)
	}
	return resp.toDomain(), nil
}

func (a AuthAPI) Register(ctx context.Context, data domain.SignupData) (domain.Session, error) {
	const op = "AuthAPI.Register"

	body := map[string]string{
		"email":    data.Email,
		"password": data.Password,
		"name":     data.Name,
		"phone":    data.Phone,
	}

	var resp AuthResponse
	err := a.cl.doJSON(ctx, http.MethodPost, "/users/register", nil, body, &resp)
	if err != nil {
		return domain.Session{}, fmt.Errorf("%s: %w", op, err)
	}
	return resp.toDomain(), nil
}

func (a AuthAPI) VerifyOTP(ctx context.Context, email, otp string) error {
	const op = "AuthAPI.VerifyOTP"

	body := map[string]string{"email": email, "otp": otp}
	err := a.cl.doJSON(ctx, http.MethodPost, "/users/verify-otp", nil, body, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (a AuthAPI) ResendOTP(ctx context.Context, email string) error {
	const op = "AuthAPI.ResendOTP"

	q := url.Values{"email": {email}}
	err := a.cl.doJSON(ctx, http.MethodPost, "/users/resend-otp", q, nil, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
