// Package catalog is a read-only client for the product catalog. It is
// consulted at order creation to fill item snapshot fields and is never
// mutated from here.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"

	"github.com/forevershop/orders-ecom/internal/resilience"
)

var (
	ErrNotFound    = errors.New("product not found")
	ErrUnavailable = errors.New("catalog unavailable")
)

type Product struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Image string          `json:"image"`
}

type Client struct {
	http    *resty.Client
	breaker *resilience.CircuitBreaker
}

func NewClient(baseURL string) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(5 * time.Second).
			SetRetryCount(0),
		breaker: resilience.NewCircuitBreaker("catalog"),
	}
}

func (c *Client) GetProduct(ctx context.Context, id string) (*Product, error) {
	out, err := c.breaker.Execute(func() (interface{}, error) {
		var p Product
		res, err := c.http.R().
			SetContext(ctx).
			SetResult(&p).
			Get(fmt.Sprintf("/products/%s", id))
		if err != nil {
			return nil, err
		}
		switch res.StatusCode() {
		case http.StatusOK:
			return &p, nil
		case http.StatusNotFound:
			return nil, ErrNotFound
		default:
			return nil, fmt.Errorf("fetch product: unexpected status %s", res.Status())
		}
	})
	if err != nil {
		if err == ErrNotFound {
			return nil, err
		}
		if resilience.Open(err) {
			return nil, fmt.Errorf("%w: circuit open", ErrUnavailable)
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return out.(*Product), nil
}
