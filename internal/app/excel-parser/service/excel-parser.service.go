package excel_parser_service

import (
	"bytes"
	"context"
	"log/slog"
	"slices"

	"github.com/init-pkg/sheet-loader/domain/app"
	"github.com/init-pkg/sheet-loader/internal/errs"
	"github.com/init-pkg/sheet-loader/internal/record"

	"github.com/xuri/excelize/v2"
)

type ExcelParserService struct {
	log *slog.Logger
}

var _ app.ExcelParserService = &ExcelParserService{}

func New(log *slog.Logger) *ExcelParserService {
	return &ExcelParserService{log}
}

func (this *ExcelParserService) Parse(ctx context.Context, file []byte, opts app.ParseExcelOptions) (*app.ParseExcelResult, error) {
	const op = "excel_parser.parse"

	f, err := excelize.OpenReader(bytes.NewReader(file))
	if err != nil {
		return nil, errs.Wrap(errs.KindParse, op, err, "unreadable spreadsheet")
	}
	defer func() {
		if err := f.Close(); err != nil {
			this.log.Warn("failed to close workbook", "error", err)
		}
	}()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errs.New(errs.KindParse, op, "workbook has no worksheets")
	}
	sheet := sheets[0]
	if opts.Sheet != "" {
		if !slices.Contains(sheets, opts.Sheet) {
			return nil, errs.New(errs.KindParse, op, "worksheet "+opts.Sheet+" not found")
		}
		sheet = opts.Sheet
	}

	this.log.Info("Excel parsing started", "sheet", sheet, "noHeaderRow", opts.NoHeaderRow)

	grid, err := newCellReader(f, sheet)
	if err != nil {
		return nil, errs.Wrap(errs.KindParse, op, err, "cannot read worksheet "+sheet)
	}
	if grid.width == 0 || (!opts.NoHeaderRow && len(grid.rows) < 2) {
		return nil, errs.New(errs.KindParse, op, "no data in worksheet "+sheet)
	}

	var (
		columns  []string
		firstRow = 0
	)
	if opts.NoHeaderRow {
		columns = record.PlaceholderColumns(grid.width)
	} else {
		columns = record.SanitizeHeader(grid.header())
		firstRow = 1
	}
	header := record.NewHeader(columns)

	result := &app.ParseExcelResult{
		Sheet:   sheet,
		Columns: columns,
	}
	for r := firstRow; r < len(grid.rows); r++ {
		if r%1000 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		result.TotalRows++
		values := make([]record.Value, grid.width)
		for c := range values {
			values[c] = record.Coerce(grid.scalar(r, c))
		}

		rec := record.NewRecord(header, values)
		if rec.IsBlank() {
			result.BlankRows++
			continue
		}
		result.Records = append(result.Records, rec)
	}

	if len(result.Records) == 0 {
		return nil, errs.New(errs.KindParse, op, "no data in worksheet "+sheet)
	}

	this.log.Info("Excel parsing completed",
		"sheet", sheet,
		"columns", len(columns),
		"rows", result.TotalRows,
		"records", len(result.Records),
		"blankRows", result.BlankRows)
	return result, nil
}
