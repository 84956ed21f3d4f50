package handler

import (
	"strings"

	"pricecheck-web/internal/service"
	"pricecheck-web/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type MarketHandler struct {
	marketCheck *service.MarketCheckService
}

func NewMarketHandler(marketCheck *service.MarketCheckService) *MarketHandler {
	return &MarketHandler{marketCheck: marketCheck}
}

type marketCheckRequest struct {
	SKU         string `json:"sku"`
	ProductName string `json:"product_name"`
}

// CheckProduct looks up live competitor prices for one product.
func (h *MarketHandler) CheckProduct(c *fiber.Ctx) error {
	if !h.marketCheck.Enabled() {
		return utils.ErrorResponse(c, fiber.StatusServiceUnavailable, "Market check is not configured", nil)
	}

	var req marketCheckRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	req.SKU = strings.TrimSpace(req.SKU)
	if req.SKU == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "SKU is required", nil)
	}

	prices, err := h.marketCheck.CheckProduct(c.Context(), req.SKU, req.ProductName)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadGateway, "Market check failed", err)
	}

	return utils.SuccessResponse(c, "Market check completed", fiber.Map{
		"sku":    req.SKU,
		"prices": prices,
	})
}
