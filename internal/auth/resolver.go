package auth

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/forevershop/orders-ecom/internal/resilience"
)

// HTTPResolver verifies bearer tokens against the identity provider's
// introspection endpoint. The provider performs the actual signature and
// expiry checks; we only interpret its verdict.
type HTTPResolver struct {
	client  *resty.Client
	breaker *resilience.CircuitBreaker
}

func NewHTTPResolver(baseURL string) *HTTPResolver {
	return &HTTPResolver{
		client: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(5 * time.Second).
			SetRetryCount(0),
		breaker: resilience.NewCircuitBreaker("identity-resolver"),
	}
}

type verifyResponse struct {
	Subject string `json:"sub"`
	Role    string `json:"role"`
}

func (r *HTTPResolver) Resolve(ctx context.Context, token string) (Identity, error) {
	if token == "" {
		return Identity{}, ErrMissingCredential
	}

	out, err := r.breaker.Execute(func() (interface{}, error) {
		var body verifyResponse
		res, err := r.client.R().
			SetContext(ctx).
			SetAuthToken(token).
			SetResult(&body).
			Post("/v1/tokens/verify")
		if err != nil {
			return nil, err
		}
		switch res.StatusCode() {
		case http.StatusOK:
			return body, nil
		case http.StatusUnauthorized, http.StatusForbidden:
			return nil, ErrInvalidCredential
		default:
			return nil, fmt.Errorf("verify token: unexpected status %s", res.Status())
		}
	})
	if err != nil {
		if err == ErrInvalidCredential {
			return Identity{}, err
		}
		if resilience.Open(err) {
			return Identity{}, fmt.Errorf("%w: circuit open", ErrUnavailable)
		}
		return Identity{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	body := out.(verifyResponse)
	if body.Subject == "" {
		return Identity{}, ErrInvalidCredential
	}
	return Identity{Subject: body.Subject, Role: body.Role}, nil
}
