package handler

import (
	"net/url"
	"strconv"
	"strings"

	"pricecheck-web/internal/config"
	"pricecheck-web/internal/models"
	"pricecheck-web/internal/repository"
	"pricecheck-web/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type SourceHandler struct {
	sourceRepo *repository.SourceRepository
}

// NewSourceHandler wires the data source endpoints. sourceRepo may be nil
// when no settings database is configured; reads then serve the built-in
// defaults and writes are rejected.
func NewSourceHandler(sourceRepo *repository.SourceRepository) *SourceHandler {
	return &SourceHandler{sourceRepo: sourceRepo}
}

type sourceRequest struct {
	Name           string            `json:"name"`
	SheetURL       string            `json:"sheet_url"`
	HeaderRow      int               `json:"header_row"`
	IsMaster       bool              `json:"is_master"`
	Position       int               `json:"position"`
	ColumnMappings map[string]string `json:"column_mappings"`
}

func (h *SourceHandler) GetSources(c *fiber.Ctx) error {
	if h.sourceRepo == nil {
		return utils.SuccessResponse(c, "Data sources retrieved successfully", config.DefaultDataSources())
	}

	sources, err := h.sourceRepo.GetSources()
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to retrieve data sources", err)
	}
	return utils.SuccessResponse(c, "Data sources retrieved successfully", sources)
}

func (h *SourceHandler) GetSource(c *fiber.Ctx) error {
	if h.sourceRepo == nil {
		return h.settingsUnavailable(c)
	}

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid source ID", err)
	}

	source, err := h.sourceRepo.GetSourceByID(id)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Data source not found", err)
	}
	return utils.SuccessResponse(c, "Data source retrieved successfully", source)
}

func (h *SourceHandler) CreateSource(c *fiber.Ctx) error {
	if h.sourceRepo == nil {
		return h.settingsUnavailable(c)
	}

	req, err := h.parseSourceRequest(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
	}

	source := &models.DataSource{
		Name:           req.Name,
		SheetURL:       req.SheetURL,
		HeaderRow:      req.HeaderRow,
		IsMaster:       req.IsMaster,
		Position:       req.Position,
		ColumnMappings: req.ColumnMappings,
	}
	if err := h.sourceRepo.CreateSource(source); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create data source", err)
	}

	return utils.SuccessResponse(c, "Data source created successfully", source)
}

func (h *SourceHandler) UpdateSource(c *fiber.Ctx) error {
	if h.sourceRepo == nil {
		return h.settingsUnavailable(c)
	}

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid source ID", err)
	}

	req, err := h.parseSourceRequest(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
	}

	source, err := h.sourceRepo.GetSourceByID(id)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Data source not found", err)
	}

	source.Name = req.Name
	source.SheetURL = req.SheetURL
	source.HeaderRow = req.HeaderRow
	source.IsMaster = req.IsMaster
	source.Position = req.Position
	source.ColumnMappings = req.ColumnMappings

	if err := h.sourceRepo.UpdateSource(source); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update data source", err)
	}

	return utils.SuccessResponse(c, "Data source updated successfully", source)
}

func (h *SourceHandler) DeleteSource(c *fiber.Ctx) error {
	if h.sourceRepo == nil {
		return h.settingsUnavailable(c)
	}

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid source ID", err)
	}

	if err := h.sourceRepo.DeleteSource(id); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete data source", err)
	}

	return utils.SuccessResponse(c, "Data source deleted successfully", nil)
}

func (h *SourceHandler) parseSourceRequest(c *fiber.Ctx) (*sourceRequest, error) {
	var req sourceRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	req.Name = strings.TrimSpace(req.Name)
	req.SheetURL = strings.TrimSpace(req.SheetURL)

	if req.Name == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Source name is required")
	}
	if _, err := url.ParseRequestURI(req.SheetURL); err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "A valid sheet URL is required")
	}
	if req.HeaderRow < 1 {
		req.HeaderRow = 1
	}
	if req.ColumnMappings == nil {
		req.ColumnMappings = map[string]string{}
	}
	return &req, nil
}

func (h *SourceHandler) settingsUnavailable(c *fiber.Ctx) error {
	return utils.ErrorResponse(c, fiber.StatusServiceUnavailable, "Settings database is not configured", nil)
}
