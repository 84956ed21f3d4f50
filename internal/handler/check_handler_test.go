package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"pricecheck-web/internal/config"
	"pricecheck-web/internal/models"
	"pricecheck-web/internal/service"

	"github.com/gofiber/fiber/v2"
)

func testApp(t *testing.T, store service.RunStore) *fiber.App {
	t.Helper()
	cfg := &config.Config{AppName: "test", ExportPath: t.TempDir()}
	settings := service.NewSettingsService(nil, nil)
	runService := service.NewRunService(service.NewSheetService(0), service.NewPriceCheckEngine())
	h := NewCheckHandler(cfg, settings, runService, store, nil)

	app := fiber.New()
	checks := app.Group("/api/v1/checks")
	checks.Post("/", h.StartCheck)
	checks.Get("/:code", h.GetRun)
	checks.Get("/:code/results", h.GetResults)
	checks.Get("/:code/summary", h.GetSummary)
	checks.Get("/:code/export", h.ExportResults)
	return app
}

func seedRun(t *testing.T, store service.RunStore) {
	t.Helper()
	stored := models.StoredRun{
		Run: models.CheckRun{RunCode: "RUN-SEED", Status: models.RunCompleted, TotalProducts: 3, ViolationCount: 1},
		Products: []models.EvaluatedProduct{
			{SKU: "NK-001", ProductName: "Air Force 1", Brand: "Nike", Status: models.StatusOK, MAPPrice: models.NewCents(11000)},
			{SKU: "NK-002", ProductName: "Dunk Low", Brand: "Nike", Status: models.StatusViolation, MAPPrice: models.NewCents(11500), ViolatingPrice: models.NewCents(8999), ViolatingSource: models.ChannelWebSale},
			{SKU: "AD-001", ProductName: "Stan Smith", Brand: "Adidas", Status: models.StatusMAPMissing},
		},
	}
	if err := store.SaveRun(context.Background(), stored); err != nil {
		t.Fatalf("failed to seed run: %v", err)
	}
}

func TestGetResultsFiltersAndPaginates(t *testing.T) {
	store := service.NewMemoryRunStore()
	seedRun(t, store)
	app := testApp(t, store)

	req := httptest.NewRequest("GET", "/api/v1/checks/RUN-SEED/results?brands=Nike&statuses=VIOLATION", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var body struct {
		Success bool `json:"success"`
		Data    struct {
			Products []models.EvaluatedProduct `json:"products"`
		} `json:"data"`
		Pagination struct {
			Total int64 `json:"total"`
		} `json:"pagination"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !body.Success {
		t.Error("expected success envelope")
	}
	if len(body.Data.Products) != 1 || body.Data.Products[0].SKU != "NK-002" {
		t.Errorf("filtered products = %+v", body.Data.Products)
	}
	if body.Pagination.Total != 1 {
		t.Errorf("pagination total = %d", body.Pagination.Total)
	}
}

func TestGetResultsLatestAlias(t *testing.T) {
	store := service.NewMemoryRunStore()
	seedRun(t, store)
	app := testApp(t, store)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/checks/latest/results", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}
}

func TestGetResultsUnknownRun(t *testing.T) {
	app := testApp(t, service.NewMemoryRunStore())

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/checks/RUN-NOPE/results", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestGetSummary(t *testing.T) {
	store := service.NewMemoryRunStore()
	seedRun(t, store)
	app := testApp(t, store)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/checks/RUN-SEED/summary", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var body struct {
		Data models.Summary `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.Data.TotalProducts != 3 || body.Data.ViolationCount != 1 {
		t.Errorf("summary = %+v", body.Data)
	}
	if body.Data.TopBrand != "Nike" {
		t.Errorf("TopBrand = %q", body.Data.TopBrand)
	}
}

func TestExportResultsCSV(t *testing.T) {
	store := service.NewMemoryRunStore()
	seedRun(t, store)
	app := testApp(t, store)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/checks/RUN-SEED/export?format=rics", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("Content-Type = %q", ct)
	}
	if cd := resp.Header.Get("Content-Disposition"); !strings.Contains(cd, "attachment") {
		t.Errorf("Content-Disposition = %q", cd)
	}

	data, _ := io.ReadAll(resp.Body)
	text := string(data)
	if !strings.Contains(text, "NK-001,110.00") {
		t.Errorf("export body missing MAP row:\n%s", text)
	}
	// MAP_MISSING product exports with an empty MAP cell.
	if !strings.Contains(text, "AD-001,") {
		t.Errorf("export body missing MAP_MISSING row:\n%s", text)
	}
}

func TestExportResultsUnknownFormat(t *testing.T) {
	store := service.NewMemoryRunStore()
	seedRun(t, store)
	app := testApp(t, store)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/checks/RUN-SEED/export?format=pdf", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestStartCheckInline(t *testing.T) {
	store := service.NewMemoryRunStore()
	app := testApp(t, store)

	resp, err := app.Test(httptest.NewRequest("POST", "/api/v1/checks/", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusAccepted {
		t.Fatalf("status = %d, want 202", resp.StatusCode)
	}

	var body struct {
		RunCode string `json:"run_code"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.RunCode == "" {
		t.Error("expected a run code")
	}

	// The queued progress record is visible immediately.
	run, err := store.GetProgress(context.Background(), body.RunCode)
	if err != nil {
		t.Fatalf("GetProgress failed: %v", err)
	}
	if run.Status != models.RunQueued && run.Status != models.RunRunning && run.Status != models.RunFailed {
		t.Errorf("run status = %q", run.Status)
	}
}
