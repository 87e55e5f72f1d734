package loader_service

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/init-pkg/sheet-loader/domain/app"
	database_client "github.com/init-pkg/sheet-loader/internal/clients/database"
	"github.com/init-pkg/sheet-loader/internal/errs"
	"github.com/init-pkg/sheet-loader/internal/record"

	"gorm.io/gorm"
)

const (
	DefaultProgressEvery = 100
	rowSavepoint         = "sheet_loader_row"
)

var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

// ValidTableName reports whether name is a plain or schema-qualified
// identifier.
func ValidTableName(name string) bool {
	return len(name) <= 128 && tableNamePattern.MatchString(name)
}

type LoaderService struct {
	registry *database_client.Registry
	log      *slog.Logger
}

var _ app.LoaderService = &LoaderService{}

func New(registry *database_client.Registry, log *slog.Logger) *LoaderService {
	return &LoaderService{registry, log}
}

// Load inserts req.Records into req.Table inside one transaction. Rows that
// fail on their own are rolled back to a savepoint and reported in the
// outcome; any other failure rolls back everything.
func (this *LoaderService) Load(ctx context.Context, req app.LoadRequest) (outcome *app.LoadOutcome, err error) {
	const op = "loader.load"

	if !ValidTableName(req.Table) {
		return nil, errs.New(errs.KindInvalidInput, op, fmt.Sprintf("invalid table name %q", req.Table))
	}
	if len(req.Columns) == 0 {
		return nil, errs.New(errs.KindInvalidInput, op, "no columns to load")
	}
	every := req.Options.ProgressEvery
	if every <= 0 {
		every = DefaultProgressEvery
	}

	db, dbName, err := this.registry.DB(ctx, req.Database)
	if err != nil {
		return nil, err
	}
	log := this.log.With("database", dbName, "table", req.Table)

	outcome = &app.LoadOutcome{
		Database: dbName,
		Table:    req.Table,
		Total:    len(req.Records),
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, errs.Wrap(errs.KindConnection, op, tx.Error, "cannot begin transaction")
	}

	committed := false
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
		if committed {
			return
		}
		if rbErr := tx.Rollback().Error; rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			log.Error("rollback failed", "error", rbErr)
		}
		log.Info("load rolled back", "error", err)
	}()

	columns, created, err := this.prepareTable(tx, req)
	if err != nil {
		return nil, err
	}
	outcome.Created = created

	if req.Options.Truncate && !created {
		if err := truncate(tx, req.Table); err != nil {
			return nil, errs.Wrap(errs.KindTransaction, op, err, "cannot truncate "+req.Table)
		}
		outcome.Truncated = true
		log.Info("table truncated")
	}

	for i, rec := range req.Records {
		row := i + 1
		if err := ctx.Err(); err != nil {
			return nil, errs.Wrap(errs.KindTransaction, op, err, fmt.Sprintf("aborted at row %d", row))
		}

		if rowErr := insertRow(tx, req.Table, columns, rec, req.Options.TextParams); rowErr != nil {
			if isFatal(ctx, rowErr) {
				return nil, errs.Wrap(errs.KindTransaction, op, rowErr, fmt.Sprintf("aborted at row %d", row))
			}
			log.Warn("row insert failed, skipping", "row", row, "error", rowErr)
			outcome.Failures = append(outcome.Failures, app.RowFailure{
				Row:   row,
				Error: errs.Wrap(errs.KindRowInsert, "", rowErr).Error(),
			})
			continue
		}
		outcome.Inserted++

		if row%every == 0 {
			log.Info("load progress", "rows", row, "total", outcome.Total, "inserted", outcome.Inserted)
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, errs.Wrap(errs.KindTransaction, op, err, "commit failed")
	}
	committed = true

	log.Info("load committed",
		"total", outcome.Total,
		"inserted", outcome.Inserted,
		"failed", len(outcome.Failures),
		"truncated", outcome.Truncated,
		"created", outcome.Created)
	return outcome, nil
}

// prepareTable makes sure the table exists and maps every record column to
// the table's own spelling of it.
func (this *LoaderService) prepareTable(tx *gorm.DB, req app.LoadRequest) (map[string]string, bool, error) {
	const op = "loader.verify_table"

	if !tx.Migrator().HasTable(req.Table) {
		// HasTable hides query errors, so tell a dead connection apart from
		// an absent table before reporting it missing.
		if err := tx.Exec("SELECT 1").Error; err != nil {
			return nil, false, errs.Wrap(errs.KindConnection, op, err, "schema lookup failed")
		}
		if req.Options.FailIfTableMissing {
			return nil, false, errs.New(errs.KindSchema, op, "table "+req.Table+" does not exist")
		}
		if err := createTable(tx, req.Table, req.Columns, req.Records); err != nil {
			return nil, false, errs.Wrap(errs.KindSchema, op, err, "cannot create table "+req.Table)
		}
		this.log.Info("table created", "table", req.Table, "columns", req.Columns)

		columns := make(map[string]string, len(req.Columns))
		for _, c := range req.Columns {
			columns[c] = c
		}
		return columns, true, nil
	}

	types, err := tx.Migrator().ColumnTypes(req.Table)
	if err != nil {
		return nil, false, errs.Wrap(errs.KindSchema, op, err, "cannot read columns of "+req.Table)
	}
	existing := make(map[string]string, len(types))
	for _, t := range types {
		existing[strings.ToLower(t.Name())] = t.Name()
	}

	columns := make(map[string]string, len(req.Columns))
	var missing []string
	for _, c := range req.Columns {
		name, ok := existing[strings.ToLower(c)]
		if !ok {
			missing = append(missing, c)
			continue
		}
		columns[c] = name
	}
	if len(missing) > 0 {
		return nil, false, errs.New(errs.KindSchema, op, fmt.Sprintf("table %s has no column(s) %s", req.Table, strings.Join(missing, ", ")))
	}
	return columns, false, nil
}

type fatalError struct {
	err error
}

func (e fatalError) Error() string { return e.err.Error() }
func (e fatalError) Unwrap() error { return e.err }

func insertRow(tx *gorm.DB, table string, columns map[string]string, rec record.Record, textParams bool) error {
	if err := tx.Session(&gorm.Session{}).SavePoint(rowSavepoint).Error; err != nil {
		return fatalError{err}
	}

	params := make(map[string]any, rec.Len())
	for i := 0; i < rec.Len(); i++ {
		params[columns[rec.Header().Name(i)]] = rec.At(i).Param(textParams)
	}

	if err := tx.Table(table).Create(params).Error; err != nil {
		if rbErr := tx.Session(&gorm.Session{}).RollbackTo(rowSavepoint).Error; rbErr != nil {
			return fatalError{errors.Join(err, rbErr)}
		}
		return err
	}

	if err := tx.Exec("RELEASE SAVEPOINT " + rowSavepoint).Error; err != nil {
		return fatalError{err}
	}
	return nil
}

// isFatal tells a failure of the transaction itself from a failure of one
// row's data.
func isFatal(ctx context.Context, err error) bool {
	var fe fatalError
	switch {
	case errors.As(err, &fe):
		return true
	case ctx.Err() != nil:
		return true
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return true
	case errors.Is(err, sql.ErrTxDone), errors.Is(err, sql.ErrConnDone), errors.Is(err, driver.ErrBadConn):
		return true
	}
	return false
}
