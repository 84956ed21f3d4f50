package handler

import (
	"strconv"
	"strings"

	"pricecheck-web/internal/config"
	"pricecheck-web/internal/models"
	"pricecheck-web/internal/repository"
	"pricecheck-web/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type ToleranceHandler struct {
	toleranceRepo *repository.ToleranceRepository
}

// NewToleranceHandler wires the brand tolerance endpoints. toleranceRepo may
// be nil when no settings database is configured; reads then serve the
// built-in defaults and writes are rejected.
func NewToleranceHandler(toleranceRepo *repository.ToleranceRepository) *ToleranceHandler {
	return &ToleranceHandler{toleranceRepo: toleranceRepo}
}

func (h *ToleranceHandler) GetTolerances(c *fiber.Ctx) error {
	if h.toleranceRepo == nil {
		return utils.SuccessResponse(c, "Brand tolerances retrieved successfully", config.DefaultTolerances())
	}

	params := utils.GetPaginationParams(c)
	offset := utils.GetOffset(params.Page, params.Limit)

	tolerances, total, err := h.toleranceRepo.GetTolerances(params.Limit, offset, params.Search)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to retrieve brand tolerances", err)
	}

	pagination := utils.CalculatePagination(params.Page, params.Limit, int64(total))

	responseData := fiber.Map{
		"tolerances": tolerances,
		"pagination": pagination,
	}
	return utils.PaginatedResponseBuilder(c, "Brand tolerances retrieved successfully", responseData, pagination)
}

func (h *ToleranceHandler) GetTolerance(c *fiber.Ctx) error {
	if h.toleranceRepo == nil {
		return h.settingsUnavailable(c)
	}

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid tolerance ID", err)
	}

	tolerance, err := h.toleranceRepo.GetToleranceByID(id)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Brand tolerance not found", err)
	}

	return utils.SuccessResponse(c, "Brand tolerance retrieved successfully", tolerance)
}

func (h *ToleranceHandler) CreateTolerance(c *fiber.Ctx) error {
	if h.toleranceRepo == nil {
		return h.settingsUnavailable(c)
	}

	var req models.BrandToleranceRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	// Validation
	req.BrandName = strings.TrimSpace(req.BrandName)
	if req.BrandName == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Brand name is required", nil)
	}
	if req.ToleranceCents < 0 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Tolerance must not be negative", nil)
	}

	tolerance := &models.BrandTolerance{
		BrandName:      req.BrandName,
		ToleranceCents: req.ToleranceCents,
	}
	if err := h.toleranceRepo.CreateTolerance(tolerance); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create brand tolerance", err)
	}

	return utils.SuccessResponse(c, "Brand tolerance created successfully", tolerance)
}

func (h *ToleranceHandler) UpdateTolerance(c *fiber.Ctx) error {
	if h.toleranceRepo == nil {
		return h.settingsUnavailable(c)
	}

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid tolerance ID", err)
	}

	var req models.BrandToleranceRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	req.BrandName = strings.TrimSpace(req.BrandName)
	if req.BrandName == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Brand name is required", nil)
	}
	if req.ToleranceCents < 0 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Tolerance must not be negative", nil)
	}

	tolerance, err := h.toleranceRepo.GetToleranceByID(id)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Brand tolerance not found", err)
	}

	tolerance.BrandName = req.BrandName
	tolerance.ToleranceCents = req.ToleranceCents

	if err := h.toleranceRepo.UpdateTolerance(tolerance); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update brand tolerance", err)
	}

	return utils.SuccessResponse(c, "Brand tolerance updated successfully", tolerance)
}

func (h *ToleranceHandler) DeleteTolerance(c *fiber.Ctx) error {
	if h.toleranceRepo == nil {
		return h.settingsUnavailable(c)
	}

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid tolerance ID", err)
	}

	if err := h.toleranceRepo.DeleteTolerance(id); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete brand tolerance", err)
	}

	return utils.SuccessResponse(c, "Brand tolerance deleted successfully", nil)
}

func (h *ToleranceHandler) settingsUnavailable(c *fiber.Ctx) error {
	return utils.ErrorResponse(c, fiber.StatusServiceUnavailable, "Settings database is not configured", nil)
}
