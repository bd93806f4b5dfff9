package models

import (
	"time"

	"github.com/google/uuid"
)

// Report is a submitted non-conformance report. Rows are insert-only.
type Report struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;index" json:"userId"`
	OriginalText string    `gorm:"type:text;not null" json:"originalText"`
	WhatHappened string    `gorm:"type:text;not null" json:"whatHappened"`
	WhenHappened string    `gorm:"type:text;not null" json:"whenHappened"`
	WhoInvolved  string    `gorm:"type:text;not null" json:"whoInvolved"`
	Outcome      string    `gorm:"type:text;not null" json:"outcome"`
	NextSteps    string    `gorm:"type:text;not null" json:"nextSteps"`
	CreatedAt    time.Time `gorm:"not null;default:now()" json:"createdAt"`
}

func (Report) TableName() string {
	return "reports"
}
