package importer_service

import (
	"path/filepath"
	"strings"

	loader_service "github.com/init-pkg/sheet-loader/internal/app/loader/service"
	"github.com/init-pkg/sheet-loader/internal/config"
	"github.com/init-pkg/sheet-loader/internal/errs"
)

type Target struct {
	Database string
	Table    string
}

// ResolveTarget fills in whatever the caller left empty from the first rule
// whose keyword occurs in the file name. Explicit values always win.
func ResolveTarget(rules []config.TargetRule, fileName, table, database string) (Target, error) {
	const op = "importer.resolve_target"

	t := Target{
		Database: strings.TrimSpace(database),
		Table:    strings.TrimSpace(table),
	}

	if t.Table == "" || t.Database == "" {
		name := strings.ToLower(filepath.Base(fileName))
		for _, rule := range rules {
			kw := strings.ToLower(strings.TrimSpace(rule.Keyword))
			if kw == "" || !strings.Contains(name, kw) {
				continue
			}
			if t.Table == "" {
				t.Table = rule.Table
			}
			if t.Database == "" {
				t.Database = rule.Database
			}
			break
		}
	}

	if t.Table == "" {
		return t, errs.New(errs.KindInvalidInput, op, "no target table given and none matches file "+fileName)
	}
	if !loader_service.ValidTableName(t.Table) {
		return t, errs.New(errs.KindInvalidInput, op, "invalid table name "+t.Table)
	}
	return t, nil
}
