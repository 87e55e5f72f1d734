package loader_service

import (
	"strings"

	"github.com/init-pkg/sheet-loader/internal/record"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// truncate empties table inside the current transaction. MySQL commits
// implicitly on TRUNCATE and SQLite has no TRUNCATE, so both use DELETE.
func truncate(tx *gorm.DB, table string) error {
	stmt := "DELETE FROM ?"
	if tx.Dialector.Name() == "postgres" {
		stmt = "TRUNCATE TABLE ?"
	}
	return tx.Exec(stmt, clause.Table{Name: table}).Error
}

func createTable(tx *gorm.DB, table string, columns []string, records []record.Record) error {
	kinds := inferKinds(len(columns), records)
	dialect := tx.Dialector.Name()

	defs := make([]string, len(columns))
	for i, col := range columns {
		defs[i] = tx.Statement.Quote(col) + " " + columnType(dialect, kinds[i])
	}
	return tx.Exec("CREATE TABLE " + tx.Statement.Quote(table) + " (" + strings.Join(defs, ", ") + ")").Error
}

// inferKinds picks one kind per column from the non-null values, widening
// Int to Float to Decimal and falling back to Text on any other mix.
func inferKinds(width int, records []record.Record) []record.Kind {
	kinds := make([]record.Kind, width)
	for _, rec := range records {
		for i := 0; i < width && i < rec.Len(); i++ {
			kinds[i] = widen(kinds[i], rec.At(i).Kind())
		}
	}
	for i, k := range kinds {
		if k == record.Null {
			kinds[i] = record.Text
		}
	}
	return kinds
}

func widen(have, next record.Kind) record.Kind {
	switch {
	case next == record.Null || have == next:
		return have
	case have == record.Null:
		return next
	case isNumeric(have) && isNumeric(next):
		if have == record.Decimal || next == record.Decimal {
			return record.Decimal
		}
		return record.Float
	}
	return record.Text
}

func isNumeric(k record.Kind) bool {
	return k == record.Int || k == record.Float || k == record.Decimal
}

func columnType(dialect string, kind record.Kind) string {
	switch dialect {
	case "postgres":
		switch kind {
		case record.Int:
			return "bigint"
		case record.Float:
			return "double precision"
		case record.Decimal:
			return "numeric"
		case record.Bool:
			return "boolean"
		case record.DateTime:
			return "timestamp"
		}
		return "text"
	case "mysql":
		switch kind {
		case record.Int:
			return "bigint"
		case record.Float:
			return "double"
		case record.Decimal:
			return "decimal(38,10)"
		case record.Bool:
			return "boolean"
		case record.DateTime:
			return "datetime(6)"
		}
		return "longtext"
	}

	switch kind {
	case record.Int:
		return "integer"
	case record.Float:
		return "real"
	case record.Decimal:
		return "numeric"
	case record.Bool:
		return "boolean"
	case record.DateTime:
		return "datetime"
	}
	return "text"
}
