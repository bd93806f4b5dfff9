package session

import (
	"errors"
	"slices"
	"strings"

	"github.com/ahmetcoskunkizilkaya/ncr-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/ncr-backend/internal/extraction"
	"github.com/ahmetcoskunkizilkaya/ncr-backend/internal/identity"
	"github.com/ahmetcoskunkizilkaya/ncr-backend/internal/models"
)

var (
	ErrBusy             = errors.New("a request is already in flight")
	ErrNothingToAnalyze = errors.New("input text is empty")
	ErrNoDraft          = errors.New("no draft to save")
	ErrSignedOut        = errors.New("not signed in")
)

// State is the review flow of one signed-in user. Transitions return a new
// State and never mutate the receiver's slices.
type State struct {
	User      *identity.User    `json:"user,omitempty"`
	InputText string            `json:"inputText"`
	Draft     *extraction.Draft `json:"draft,omitempty"`
	Busy      bool              `json:"busy"`
	Reports   []models.Report   `json:"reports"`
}

func (s State) SignedIn() bool {
	return s.User != nil
}

// CanAnalyze is true when there is text to send and nothing in flight.
func (s State) CanAnalyze() bool {
	return s.SignedIn() && strings.TrimSpace(s.InputText) != "" && !s.Busy
}

// CanSave is true once a draft exists and nothing is in flight.
func (s State) CanSave() bool {
	return s.SignedIn() && s.Draft != nil && !s.Busy
}

// WithIdentity applies a sign-in change. Signing out, or signing in as someone
// else, drops everything held for the previous user.
func (s State) WithIdentity(u *identity.User) State {
	if u == nil {
		return State{}
	}
	if s.User != nil && s.User.ID == u.ID {
		s.User = u
		return s
	}
	return State{User: u}
}

func (s State) WithInput(text string) State {
	s.InputText = text
	return s
}

func (s State) WithReports(reports []models.Report) State {
	s.Reports = slices.Clone(reports)
	if s.Reports == nil {
		s.Reports = []models.Report{}
	}
	return s
}

// ReviseDraft replaces the draft under review, e.g. after the user corrected a field.
func (s State) ReviseDraft(d extraction.Draft) (State, error) {
	if s.Busy {
		return s, ErrBusy
	}
	if s.Draft == nil {
		return s, ErrNoDraft
	}
	s.Draft = &d
	return s, nil
}

// StartAnalyze discards the previous draft and marks the session busy.
func (s State) StartAnalyze() (State, error) {
	if !s.SignedIn() {
		return s, ErrSignedOut
	}
	if s.Busy {
		return s, ErrBusy
	}
	if strings.TrimSpace(s.InputText) == "" {
		return s, ErrNothingToAnalyze
	}
	s.Draft = nil
	s.Busy = true
	return s, nil
}

// FinishAnalyze clears the busy flag and keeps the draft only on success.
func (s State) FinishAnalyze(d *extraction.Draft, err error) State {
	s.Busy = false
	if err == nil && d != nil {
		draft := *d
		s.Draft = &draft
	}
	return s
}

// StartSave marks the session busy and returns the submission built from the
// input text and the reviewed draft.
func (s State) StartSave() (State, *dto.SaveReportRequest, error) {
	if !s.SignedIn() {
		return s, nil, ErrSignedOut
	}
	if s.Busy {
		return s, nil, ErrBusy
	}
	if s.Draft == nil {
		return s, nil, ErrNoDraft
	}
	req := &dto.SaveReportRequest{
		OriginalText: s.InputText,
		WhatHappened: s.Draft.WhatHappened,
		WhenHappened: s.Draft.WhenHappened,
		WhoInvolved:  s.Draft.WhoInvolved,
		Outcome:      s.Draft.Outcome,
		NextSteps:    s.Draft.NextSteps,
	}
	s.Busy = true
	return s, req, nil
}

// FinishSave clears the busy flag. On success the confirmed report is appended
// and the input and draft are cleared; on failure both are kept for a retry.
func (s State) FinishSave(r *models.Report, err error) State {
	s.Busy = false
	if err != nil || r == nil {
		return s
	}
	s.Reports = append(slices.Clone(s.Reports), *r)
	s.InputText = ""
	s.Draft = nil
	return s
}
