package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/ncr-backend/internal/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL+"/", "VALID", time.Second)
}

func TestSaveReport(t *testing.T) {
	userID := uuid.New()
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/saveReport", r.URL.Path)
		assert.Equal(t, "Bearer VALID", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "text", body["originalText"])
		assert.Equal(t, "what", body["what_happened"])

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":5,"userId":"` + userID.String() + `","originalText":"text","whatHappened":"what","whenHappened":"when","whoInvolved":"who","outcome":"out","nextSteps":"next","createdAt":"2024-03-01T14:00:00Z"}`))
	})

	report, err := c.SaveReport(context.Background(), &dto.SaveReportRequest{
		OriginalText: "text", WhatHappened: "what", WhenHappened: "when",
		WhoInvolved: "who", Outcome: "out", NextSteps: "next",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(5), report.ID)
	assert.Equal(t, userID, report.UserID)
	assert.Equal(t, "next", report.NextSteps)
	assert.Equal(t, 2024, report.CreatedAt.Year())
}

func TestSaveReport_ErrorBody(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"All fields are required"}`))
	})

	_, err := c.SaveReport(context.Background(), &dto.SaveReportRequest{})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "All fields are required", apiErr.Message)
	assert.False(t, IsUnauthorized(err))
}

func TestUnauthorized(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"Authentication failed"}`))
	})

	_, err := c.Me(context.Background())
	assert.True(t, IsUnauthorized(err))
}

func TestNonJSONError(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		_, _ = w.Write([]byte("Method GET Not Allowed"))
	})

	_, err := c.Extract(context.Background(), "text")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Method GET Not Allowed", apiErr.Message)
}

func TestListReports(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/getReports", r.URL.Path)
		_, _ = w.Write([]byte(`[{"id":1,"outcome":"a"},{"id":2,"outcome":"b"}]`))
	})

	reports, err := c.ListReports(context.Background())
	require.NoError(t, err)
	require.Len(t, reports, 2)
	assert.Equal(t, "b", reports[1].Outcome)
}

func TestExtractAndMe(t *testing.T) {
	userID := uuid.New()
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/extract":
			var body dto.ExtractRequest
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "Forklift nearly hit a worker.", body.Text)
			_, _ = w.Write([]byte(`{"what_happened":"a","when_happened":"b","who_involved":"c","outcome":"d","next_steps":"e"}`))
		case "/api/me":
			_, _ = w.Write([]byte(`{"id":"` + userID.String() + `","email":"op@example.com"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	draft, err := c.Extract(context.Background(), "Forklift nearly hit a worker.")
	require.NoError(t, err)
	assert.Equal(t, "d", draft.Outcome)

	user, err := c.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, userID, user.ID)
	assert.Equal(t, "op@example.com", user.Email)
}
