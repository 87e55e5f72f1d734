package app

import (
	"context"

	"github.com/init-pkg/sheet-loader/internal/record"
)

type LoadOptions struct {
	Truncate           bool
	FailIfTableMissing bool
	TextParams         bool
	ProgressEvery      int
}

type LoadRequest struct {
	Database string
	Table    string
	Columns  []string
	Records  []record.Record
	Options  LoadOptions
}

// RowFailure is a record that could not be inserted. Row is the 1-based
// position of the record in the load request.
type RowFailure struct {
	Row   int    `json:"row"`
	Error string `json:"error"`
}

type LoadOutcome struct {
	Database  string       `json:"database"`
	Table     string       `json:"table"`
	Total     int          `json:"total"`
	Inserted  int          `json:"inserted"`
	Failures  []RowFailure `json:"failures,omitempty"`
	Truncated bool         `json:"truncated"`
	Created   bool         `json:"created"`
}

type LoaderService interface {
	Load(ctx context.Context, req LoadRequest) (*LoadOutcome, error)
}
