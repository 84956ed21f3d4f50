package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestMarketCheckDisabled(t *testing.T) {
	svc := NewMarketCheckService("", "", time.Second)
	if svc.Enabled() {
		t.Error("unconfigured service should be disabled")
	}
	if _, err := svc.CheckProduct(context.Background(), "NK-001", "Air Force 1"); err == nil {
		t.Error("expected error when disabled")
	}
}

func TestMarketCheckProduct(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization = %q", got)
		}
		var req marketCheckRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		if req.SKU != "NK-001" {
			t.Errorf("request SKU = %q", req.SKU)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"prices": []map[string]interface{}{
				{"competitor": "ShoeDepot", "price": 99.99},
				{"competitor": "KickStop", "price": 110.0},
			},
		})
	}))
	defer server.Close()

	svc := NewMarketCheckService(server.URL, "test-key", 5*time.Second)
	prices, err := svc.CheckProduct(context.Background(), "NK-001", "Air Force 1")
	if err != nil {
		t.Fatalf("CheckProduct failed: %v", err)
	}
	if len(prices) != 2 {
		t.Fatalf("expected 2 prices, got %d", len(prices))
	}
	if prices[0].Competitor != "ShoeDepot" || prices[0].PriceCents != 9999 {
		t.Errorf("prices[0] = %+v", prices[0])
	}
	if prices[1].PriceCents != 11000 {
		t.Errorf("prices[1] = %+v", prices[1])
	}
}

func TestMarketCheckUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	svc := NewMarketCheckService(server.URL, "test-key", 5*time.Second)
	if _, err := svc.CheckProduct(context.Background(), "NK-001", ""); err == nil {
		t.Error("expected error for non-200 upstream response")
	}
}
