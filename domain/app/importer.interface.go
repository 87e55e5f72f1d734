package app

import (
	"context"
	"time"
)

type ImportRequest struct {
	FileName string
	Content  []byte
	Table    string
	Database string
	// Truncate and HasHeader override the configured defaults when set.
	Truncate  *bool
	HasHeader *bool
	Sheet     string
}

type ImportStatus string

const (
	ImportSucceeded ImportStatus = "succeeded"
	ImportFailed    ImportStatus = "failed"
)

type ImportResult struct {
	ID         string       `json:"id"`
	Status     ImportStatus `json:"status"`
	FileName   string       `json:"file_name"`
	Sheet      string       `json:"sheet,omitempty"`
	Database   string       `json:"database"`
	Table      string       `json:"table"`
	Columns    []string     `json:"columns,omitempty"`
	Total      int          `json:"total"`
	Inserted   int          `json:"inserted"`
	Failures   []RowFailure `json:"failures,omitempty"`
	Truncated  bool         `json:"truncated"`
	Created    bool         `json:"created"`
	Error      string       `json:"error,omitempty"`
	StartedAt  time.Time    `json:"started_at"`
	FinishedAt time.Time    `json:"finished_at"`
}

type ImporterService interface {
	Import(ctx context.Context, req ImportRequest) (*ImportResult, error)
	Get(ctx context.Context, id string) (*ImportResult, error)
}

type OutcomeStore interface {
	Save(ctx context.Context, res *ImportResult) error
	Get(ctx context.Context, id string) (*ImportResult, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, res *ImportResult) error
}

type AuditService interface {
	Record(ctx context.Context, res *ImportResult) error
}
