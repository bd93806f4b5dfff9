package dto

import (
	vd "github.com/go-ozzo/ozzo-validation/v4"
)

// SaveReportRequest is the submission body. Field names follow the extraction
// draft so a client can send the draft as-is next to originalText.
type SaveReportRequest struct {
	OriginalText string `json:"originalText"`
	WhatHappened string `json:"what_happened"`
	WhenHappened string `json:"when_happened"`
	WhoInvolved  string `json:"who_involved"`
	Outcome      string `json:"outcome"`
	NextSteps    string `json:"next_steps"`
}

// Validate requires every field to be a non-empty string.
func (r SaveReportRequest) Validate() error {
	return vd.ValidateStruct(&r,
		vd.Field(&r.OriginalText, vd.Required),
		vd.Field(&r.WhatHappened, vd.Required),
		vd.Field(&r.WhenHappened, vd.Required),
		vd.Field(&r.WhoInvolved, vd.Required),
		vd.Field(&r.Outcome, vd.Required),
		vd.Field(&r.NextSteps, vd.Required),
	)
}

func (r *SaveReportRequest) Complete() bool {
	return r != nil && r.Validate() == nil
}

type ExtractRequest struct {
	Text string `json:"text"`
}
