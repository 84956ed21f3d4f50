package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"time"

	"pricecheck-web/internal/models"
)

// MarketCheckService queries the external market intelligence endpoint for
// live competitor prices on a single product.
type MarketCheckService struct {
	client  *http.Client
	baseURL string
	apiKey  string
}

func NewMarketCheckService(baseURL, apiKey string, timeout time.Duration) *MarketCheckService {
	return &MarketCheckService{
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
		apiKey:  apiKey,
	}
}

// Enabled reports whether the service is configured. The endpoint is
// optional; handlers return 503 when it is off.
func (s *MarketCheckService) Enabled() bool {
	return s.baseURL != "" && s.apiKey != ""
}

type marketCheckRequest struct {
	SKU         string `json:"sku"`
	ProductName string `json:"product_name"`
}

type marketCheckResponse struct {
	Prices []struct {
		Competitor string  `json:"competitor"`
		Price      float64 `json:"price"`
	} `json:"prices"`
}

// CheckProduct asks the market endpoint which competitors currently list the
// product and at what price.
func (s *MarketCheckService) CheckProduct(ctx context.Context, sku, productName string) ([]models.CompetitorPrice, error) {
	if !s.Enabled() {
		return nil, fmt.Errorf("market check is not configured")
	}

	payload, err := json.Marshal(marketCheckRequest{SKU: sku, ProductName: productName})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal market check request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build market check request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("market check request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("market check returned status %d", resp.StatusCode)
	}

	var parsed marketCheckResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode market check response: %w", err)
	}

	prices := make([]models.CompetitorPrice, 0, len(parsed.Prices))
	for _, p := range parsed.Prices {
		prices = append(prices, models.CompetitorPrice{
			Competitor: p.Competitor,
			PriceCents: int64(math.Round(p.Price * 100)),
		})
	}
	return prices, nil
}
