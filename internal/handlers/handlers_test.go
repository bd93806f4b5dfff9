package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ahmetcoskunkizilkaya/ncr-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/ncr-backend/internal/extraction"
	"github.com/ahmetcoskunkizilkaya/ncr-backend/internal/testutils"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingExtractor struct{ calls int }

func (e *countingExtractor) Name() string { return "counting" }

func (e *countingExtractor) Extract(context.Context, string) (*extraction.Draft, error) {
	e.calls++
	return &extraction.Draft{WhatHappened: "a", WhenHappened: "b", WhoInvolved: "c", Outcome: "d", NextSteps: "e"}, nil
}

func TestHealthCheck(t *testing.T) {
	db, _ := testutils.SetupTestDB(t)
	app := fiber.New()
	app.Get("/api/health", NewHealthHandler(db).Check)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/health", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body dto.HealthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, "ok", body.DB)
	assert.NotEmpty(t, body.Timestamp)
}

func TestExtract_TextTooLong(t *testing.T) {
	ext := &countingExtractor{}
	app := fiber.New()
	app.Post("/api/extract", NewExtractHandler(ext).Extract)

	payload, _ := json.Marshal(dto.ExtractRequest{Text: strings.Repeat("x", maxExtractTextLen+1)})
	req := httptest.NewRequest(http.MethodPost, "/api/extract", strings.NewReader(string(payload)))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
	assert.Equal(t, 0, ext.calls)
}

func TestMe_WithoutIdentity(t *testing.T) {
	app := fiber.New()
	app.Get("/api/me", Me)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/me", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
