package handlers

import (
	"errors"

	"github.com/ahmetcoskunkizilkaya/ncr-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/ncr-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/ncr-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

const (
	msgFieldsRequired = "All fields are required"
	msgSaveFailed     = "Error saving report"
	msgListFailed     = "Error fetching reports"
)

type ReportHandler struct {
	reportService *services.ReportService
}

func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// SaveReport handles POST /api/saveReport. Authentication already ran.
func (h *ReportHandler) SaveReport(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Authentication failed"})
	}

	var req dto.SaveReportRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: msgFieldsRequired})
	}

	report, err := h.reportService.Create(c.UserContext(), user.ID, &req)
	if err != nil {
		if errors.Is(err, services.ErrFieldsRequired) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: msgFieldsRequired})
		}
		return fail(c, fiber.StatusInternalServerError, "save_report", msgSaveFailed, err)
	}

	return c.Status(fiber.StatusCreated).JSON(report)
}

// GetReports handles GET /api/getReports.
func (h *ReportHandler) GetReports(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Authentication failed"})
	}

	reports, err := h.reportService.ListForUser(c.UserContext(), user.ID)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "list_reports", msgListFailed, err)
	}
	return c.JSON(reports)
}

// SaveUnavailable answers a save whose identity check could not complete.
func SaveUnavailable(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: msgSaveFailed})
}

// ListUnavailable answers a listing whose identity check could not complete.
func ListUnavailable(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: msgListFailed})
}
