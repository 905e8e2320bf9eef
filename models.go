package main

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/muhammadolammi/resumecritic/internal/critique"
	"github.com/muhammadolammi/resumecritic/internal/database"
	"github.com/streadway/amqp"
	"google.golang.org/adk/runner"
	"google.golang.org/adk/session"
)

type R2Config struct {
	AccountID string
	Bucket    string
	AccessKey string
	SecretKey string
}

type WorkerConfig struct {
	DB          *database.Queries
	RabbitConn  *amqp.Connection
	RABBITMQUrl string
	// Download fetches an uploaded resume by object key.
	Download func(ctx context.Context, key string) ([]byte, error)
	// Coaching is optional; CoachRunner is nil when no GOOGLE_API_KEY is set.
	CoachRunner         *runner.Runner
	CoachSessionService session.Service
	CoachName           string
	Ingest              IngestOptions
	ProcessingDelay     time.Duration
}

type Rewrite struct {
	Original string `json:"original"`
	Improved string `json:"improved"`
}

// Coaching is the optional model-written advice stored next to a heuristic result.
type Coaching struct {
	Summary  string    `json:"summary"`
	Rewrites []Rewrite `json:"rewrites"`
}

type CritiqueResult struct {
	ResumeID uuid.UUID        `json:"resume_id"`
	Filename string           `json:"filename"`
	Result   *critique.Result `json:"result,omitempty"`
	Coaching *Coaching        `json:"coaching,omitempty"`
	// Error result entry
	IsErrorResult bool   `json:"is_error_result"`
	Error         string `json:"error,omitempty"`
}

type CritiqueResults struct {
	ID        uuid.UUID        `json:"id"`
	Results   []CritiqueResult `json:"results" db:"results"`
	CreatedAt time.Time        `json:"created_at"`
	SessionID uuid.UUID        `json:"session_id"`
	UpdatedAt time.Time        `json:"updated_at"`
}

type Session struct {
	ID             uuid.UUID `json:"id"`
	CreatedAt      time.Time `json:"created_at"`
	Name           string    `json:"name"`
	UserID         uuid.UUID `json:"user_id"`
	Status         string    `json:"status"`
	JobTitle       string    `json:"job_title"`
	JobDescription string    `json:"job_description"`
}
