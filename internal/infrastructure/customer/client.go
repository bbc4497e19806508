// Package customer is the HTTP client for the customer service's
// existence check.
package customer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/ficommerce/payment-service/internal/application"
	"github.com/ficommerce/payment-service/internal/config"
)

type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

var _ application.CustomerValidator = (*HTTPClient)(nil)

func NewClient(cfg config.CustomerConfig) *HTTPClient {
	return &HTTPClient{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: cfg.ConnTimeout,
		},
	}
}

// ExistsByID asks the customer service whether the customer is known.
// Any transport failure or unparsable answer is reported as an error;
// the engine treats those as "not found".
func (c *HTTPClient) ExistsByID(ctx context.Context, customerID string) (bool, error) {
	url := fmt.Sprintf("%s/api/v1/customers/exists/%s", c.baseURL, customerID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, fmt.Errorf("error creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var exists bool
		if err := json.NewDecoder(resp.Body).Decode(&exists); err != nil {
			return false, fmt.Errorf("error decoding response: %w", err)
		}
		return exists, nil
	case http.StatusNotFound:
		return false, nil
	default:
		return false, fmt.Errorf("customer service returned status %d", resp.StatusCode)
	}
}
