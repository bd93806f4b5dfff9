package dto

import "github.com/google/uuid"

type ErrorResponse struct {
	Error string `json:"error"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"db"`
}

type IdentityResponse struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email,omitempty"`
}
