package app

import (
	"context"

	"github.com/init-pkg/sheet-loader/internal/record"
)

type ParseExcelOptions struct {
	// Sheet selects a worksheet by name. Empty means the first worksheet.
	Sheet       string
	NoHeaderRow bool
}

type ParseExcelResult struct {
	Sheet     string
	Columns   []string
	Records   []record.Record
	TotalRows int
	BlankRows int
}

type ExcelParserService interface {
	Parse(ctx context.Context, file []byte, opts ParseExcelOptions) (*ParseExcelResult, error)
}
