package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/ahmetcoskunkizilkaya/ncr-backend/internal/testutils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMultiHandler_FansOutByLevel(t *testing.T) {
	var info, errs bytes.Buffer
	infoHandler := slog.NewJSONHandler(&info, &slog.HandlerOptions{Level: slog.LevelInfo})
	errHandler := slog.NewJSONHandler(&errs, &slog.HandlerOptions{Level: slog.LevelError})

	logger := slog.New(NewMultiHandler(infoHandler, errHandler)).With("request_id", "req-1")
	logger.Info("report saved")
	logger.Error("save failed", "action", "save_report")

	assert.Equal(t, 2, bytes.Count(info.Bytes(), []byte("\n")))
	assert.Equal(t, 1, bytes.Count(errs.Bytes(), []byte("\n")))

	var line map[string]any
	require.NoError(t, json.Unmarshal(errs.Bytes(), &line))
	assert.Equal(t, "req-1", line["request_id"])
	assert.Equal(t, "save_report", line["action"])
}

func TestMultiHandler_DisabledBelowEveryHandler(t *testing.T) {
	h := NewMultiHandler(slog.NewJSONHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelWarn}))
	assert.False(t, h.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, h.Enabled(context.Background(), slog.LevelError))
}

func TestPGHandler_MapsKnownKeys(t *testing.T) {
	db, _ := testutils.SetupTestDB(t)
	h := NewPGHandler(db, time.Hour)
	t.Cleanup(func() {
		h.ticker.Stop()
	})

	userID := uuid.NewString()
	logger := slog.New(h).With("request_id", "req-9")
	logger.Info("ignored")
	logger.Error("Error saving report",
		"action", "save_report",
		"user_id", userID,
		"error", "connection reset",
		"latency_ms", 42,
		"path", "/api/saveReport",
	)

	h.mu.Lock()
	defer h.mu.Unlock()
	require.Len(t, h.buffer, 1)
	entry := h.buffer[0]
	assert.Equal(t, "ERROR", entry.Level)
	assert.Equal(t, "Error saving report", entry.Message)
	assert.Equal(t, "req-9", entry.RequestID)
	assert.Equal(t, "save_report", entry.Action)
	require.NotNil(t, entry.UserID)
	assert.Equal(t, userID, *entry.UserID)
	assert.Equal(t, "connection reset", entry.Error)
	assert.Equal(t, 42, entry.LatencyMs)
	assert.JSONEq(t, `{"path":"/api/saveReport"}`, string(entry.Extra))
}

func TestPGHandler_StopFlushesBuffer(t *testing.T) {
	db, mock := testutils.SetupTestDB(t)
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "system_logs"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New()))
	mock.ExpectCommit()

	h := NewPGHandler(db, time.Hour)
	slog.New(h).Error("Error fetching reports", "action", "list_reports")
	assert.Equal(t, 1, h.Pending())

	h.Stop()
	h.Stop()

	assert.Eventually(t, func() bool {
		return mock.ExpectationsWereMet() == nil
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, 0, h.Pending())
}

func TestSweep(t *testing.T) {
	db, mock := testutils.SetupTestDB(t)
	cutoff := time.Now().Add(-720 * time.Hour)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "system_logs" WHERE timestamp < \$1`).
		WithArgs(cutoff).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	deleted, err := Sweep(db, cutoff)
	require.NoError(t, err)
	assert.Equal(t, int64(3), deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

type failingHandler struct{}

func (failingHandler) Enabled(context.Context, slog.Level) bool  { return true }
func (failingHandler) Handle(context.Context, slog.Record) error { return errors.New("sink down") }
func (f failingHandler) WithAttrs([]slog.Attr) slog.Handler      { return f }
func (f failingHandler) WithGroup(string) slog.Handler           { return f }

func TestMultiHandler_FailureDoesNotStarveOthers(t *testing.T) {
	var out bytes.Buffer
	h := NewMultiHandler(failingHandler{}, slog.NewJSONHandler(&out, nil))

	err := h.Handle(context.Background(), slog.NewRecord(time.Now(), slog.LevelError, "boom", 0))
	assert.EqualError(t, err, "sink down")
	assert.Contains(t, out.String(), `"msg":"boom"`)
}
