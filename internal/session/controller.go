package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/ahmetcoskunkizilkaya/ncr-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/ncr-backend/internal/extraction"
	"github.com/ahmetcoskunkizilkaya/ncr-backend/internal/identity"
	"github.com/ahmetcoskunkizilkaya/ncr-backend/internal/models"
)

// API is the server surface the review flow needs.
type API interface {
	Extract(ctx context.Context, text string) (*extraction.Draft, error)
	SaveReport(ctx context.Context, req *dto.SaveReportRequest) (*models.Report, error)
	ListReports(ctx context.Context) ([]models.Report, error)
}

// Controller drives a State against an API and follows sign-in changes
// published on an identity.Notifier until Close is called.
type Controller struct {
	api            API
	refreshTimeout time.Duration

	mu    sync.Mutex
	state State
	// epoch changes with every identity change; results of requests started
	// under an older epoch are dropped.
	epoch uint64

	unsubscribe func()
}

func NewController(api API, notifier *identity.Notifier, refreshTimeout time.Duration) *Controller {
	c := &Controller{api: api, refreshTimeout: refreshTimeout}
	c.unsubscribe = notifier.Subscribe(c.onIdentity)
	if u := notifier.Current(); u != nil {
		c.onIdentity(identity.Event{Current: u})
	}
	return c
}

// Close stops following identity changes. Safe to call more than once.
func (c *Controller) Close() {
	c.unsubscribe()
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.WithReports(c.state.Reports)
}

func (c *Controller) SetInput(text string) {
	c.mu.Lock()
	c.state = c.state.WithInput(text)
	c.mu.Unlock()
}

func (c *Controller) ReviseDraft(d extraction.Draft) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	next, err := c.state.ReviseDraft(d)
	if err != nil {
		return err
	}
	c.state = next
	return nil
}

// Analyze sends the input text for extraction and stores the resulting draft.
func (c *Controller) Analyze(ctx context.Context) (*extraction.Draft, error) {
	c.mu.Lock()
	next, err := c.state.StartAnalyze()
	if err != nil {
		c.mu.Unlock()
		return nil, err
	}
	c.state = next
	epoch := c.epoch
	text := next.InputText
	c.mu.Unlock()

	draft, err := c.api.Extract(ctx, text)

	c.mu.Lock()
	defer c.mu.Unlock()
	if epoch != c.epoch {
		return nil, ErrSignedOut
	}
	c.state = c.state.FinishAnalyze(draft, err)
	if err != nil {
		return nil, err
	}
	return draft, nil
}

// Save submits the reviewed draft and appends the confirmed report.
func (c *Controller) Save(ctx context.Context) (*models.Report, error) {
	c.mu.Lock()
	next, req, err := c.state.StartSave()
	if err != nil {
		c.mu.Unlock()
		return nil, err
	}
	c.state = next
	epoch := c.epoch
	c.mu.Unlock()

	report, err := c.api.SaveReport(ctx, req)

	c.mu.Lock()
	defer c.mu.Unlock()
	if epoch != c.epoch {
		return nil, ErrSignedOut
	}
	c.state = c.state.FinishSave(report, err)
	if err != nil {
		return nil, err
	}
	return report, nil
}

// Refresh replaces the held report list with the server's.
func (c *Controller) Refresh(ctx context.Context) error {
	c.mu.Lock()
	if !c.state.SignedIn() {
		c.mu.Unlock()
		return ErrSignedOut
	}
	epoch := c.epoch
	c.mu.Unlock()

	reports, err := c.api.ListReports(ctx)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if epoch != c.epoch {
		return ErrSignedOut
	}
	c.state = c.state.WithReports(reports)
	return nil
}

func (c *Controller) onIdentity(ev identity.Event) {
	c.mu.Lock()
	prev := c.state.User
	c.state = c.state.WithIdentity(ev.Current)
	changed := prev == nil || ev.Current == nil || prev.ID != ev.Current.ID
	if changed {
		c.epoch++
	}
	signedIn := changed && ev.Current != nil
	c.mu.Unlock()

	if !signedIn {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), c.refreshTimeout)
	defer cancel()
	if err := c.Refresh(ctx); err != nil {
		slog.Error("report list refresh failed", "action", "list_reports", "user_id", ev.Current.ID.String(), "error", err.Error())
	}
}
