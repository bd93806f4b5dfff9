package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// SupabaseProvider validates access tokens against the Supabase auth API.
type SupabaseProvider struct {
	baseURL    string
	anonKey    string
	httpClient *http.Client
}

type supabaseUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

func NewSupabaseProvider(baseURL, anonKey string, timeout time.Duration) *SupabaseProvider {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &SupabaseProvider{
		baseURL:    baseURL,
		anonKey:    anonKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (p *SupabaseProvider) ValidateToken(ctx context.Context, token string) (*User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/auth/v1/user", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("apikey", p.anonKey)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("supabase user lookup: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		return nil, ErrInvalidToken
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("supabase returned %d: %s", resp.StatusCode, string(body))
	}

	var su supabaseUser
	if err := json.NewDecoder(resp.Body).Decode(&su); err != nil {
		return nil, fmt.Errorf("failed to decode supabase user: %w", err)
	}

	id, err := uuid.Parse(su.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: user id %q is not a uuid", ErrInvalidToken, su.ID)
	}
	return &User{ID: id, Email: su.Email}, nil
}
