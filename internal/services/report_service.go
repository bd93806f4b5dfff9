package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ahmetcoskunkizilkaya/ncr-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/ncr-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrFieldsRequired = errors.New("all fields are required")

// ReportService owns the reports table. It only ever inserts and reads.
type ReportService struct {
	db      *gorm.DB
	timeout time.Duration
}

func NewReportService(db *gorm.DB, timeout time.Duration) *ReportService {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &ReportService{db: db, timeout: timeout}
}

// Create validates req and inserts exactly one row owned by userID.
func (s *ReportService) Create(ctx context.Context, userID uuid.UUID, req *dto.SaveReportRequest) (*models.Report, error) {
	if req == nil {
		return nil, ErrFieldsRequired
	}
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFieldsRequired, err)
	}
	if userID == uuid.Nil {
		return nil, errors.New("owner is required")
	}

	report := models.Report{
		UserID:       userID,
		OriginalText: req.OriginalText,
		WhatHappened: req.WhatHappened,
		WhenHappened: req.WhenHappened,
		WhoInvolved:  req.WhoInvolved,
		Outcome:      req.Outcome,
		NextSteps:    req.NextSteps,
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.db.WithContext(ctx).Create(&report).Error; err != nil {
		return nil, fmt.Errorf("failed to create report: %w", err)
	}
	return &report, nil
}

// ListForUser returns every report owned by userID, oldest first.
func (s *ReportService) ListForUser(ctx context.Context, userID uuid.UUID) ([]models.Report, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	reports := make([]models.Report, 0)
	if err := s.db.WithContext(ctx).Scopes(OwnedBy(userID)).Order("id ASC").Find(&reports).Error; err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	return reports, nil
}

// OwnedBy returns a GORM scope that filters by user_id.
func OwnedBy(userID uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("user_id = ?", userID)
	}
}
