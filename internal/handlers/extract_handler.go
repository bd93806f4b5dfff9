package handlers

import (
	"strings"

	"github.com/ahmetcoskunkizilkaya/ncr-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/ncr-backend/internal/extraction"
	"github.com/gofiber/fiber/v2"
)

const (
	msgTextRequired   = "Text is required"
	msgExtractFailed  = "Error extracting data"
	maxExtractTextLen = 20000
)

type ExtractHandler struct {
	extractor extraction.Extractor
}

func NewExtractHandler(extractor extraction.Extractor) *ExtractHandler {
	return &ExtractHandler{extractor: extractor}
}

// Extract handles POST /api/extract and returns a draft for review. Nothing is stored.
func (h *ExtractHandler) Extract(c *fiber.Ctx) error {
	var req dto.ExtractRequest
	if err := c.BodyParser(&req); err != nil || strings.TrimSpace(req.Text) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: msgTextRequired})
	}
	if len(req.Text) > maxExtractTextLen {
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(dto.ErrorResponse{Error: "Text is too long"})
	}

	draft, err := h.extractor.Extract(c.UserContext(), req.Text)
	if err != nil {
		return fail(c, fiber.StatusBadGateway, "extract", msgExtractFailed, err)
	}
	return c.JSON(draft)
}

// ExtractUnavailable answers an extraction whose identity check could not complete.
func ExtractUnavailable(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: msgExtractFailed})
}
