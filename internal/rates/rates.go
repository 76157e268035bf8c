// Package rates converts operation amounts to roubles through an exchange-rate API.
package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bankview/bankview/internal/model"
)

// Converter converts an operation amount to RUB.
type Converter interface {
	ToRUB(ctx context.Context, amount model.OperationAmount) (decimal.Decimal, error)
}

// Client calls the apilayer exchangerates_data convert endpoint.
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewClient creates a Client. baseURL is the API root without a trailing slash.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type convertResponse struct {
	Success *bool           `json:"success,omitempty"`
	Result  decimal.Decimal `json:"result"`
}

// ToRUB returns the amount in roubles. RUB amounts are returned unchanged
// without a request; a non-200 response also yields the unconverted amount.
func (c *Client) ToRUB(ctx context.Context, amount model.OperationAmount) (decimal.Decimal, error) {
	value, err := amount.Decimal()
	if err != nil {
		return decimal.Decimal{}, err
	}
	code := amount.Currency.Code
	if code == model.CurrencyRUB || code == "" {
		return value, nil
	}

	q := url.Values{}
	q.Set("to", model.CurrencyRUB)
	q.Set("from", code)
	q.Set("amount", value.String())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/convert?"+q.Encode(), nil)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("building rates request: %w", err)
	}
	req.Header.Set("apikey", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("requesting %s conversion: %w", code, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return value, nil
	}

	var body convertResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return decimal.Decimal{}, fmt.Errorf("decoding rates response: %w", err)
	}
	if body.Success != nil && !*body.Success {
		return value, nil
	}
	return body.Result, nil
}
