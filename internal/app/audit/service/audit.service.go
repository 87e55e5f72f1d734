package audit_service

import (
	"context"
	"log/slog"

	"github.com/init-pkg/sheet-loader/domain/app"
	database_client "github.com/init-pkg/sheet-loader/internal/clients/database"
	"github.com/init-pkg/sheet-loader/internal/config"
	"github.com/init-pkg/sheet-loader/internal/errs"
)

// AuditService appends one row per finished import to the audit table.
type AuditService struct {
	registry *database_client.Registry
	cfg      config.AuditConfig
	log      *slog.Logger
}

var _ app.AuditService = &AuditService{}

func New(registry *database_client.Registry, cfg *config.Config, log *slog.Logger) *AuditService {
	return &AuditService{registry, cfg.Audit, log}
}

func (this *AuditService) Record(ctx context.Context, res *app.ImportResult) error {
	const op = "audit.record"

	if !this.cfg.Enabled {
		return nil
	}

	db, _, err := this.registry.DB(ctx, this.cfg.Database)
	if err != nil {
		return err
	}

	var errText any
	if res.Error != "" {
		errText = res.Error
	}
	var sheet any
	if res.Sheet != "" {
		sheet = res.Sheet
	}

	row := map[string]any{
		"id":            res.ID,
		"status":        string(res.Status),
		"file_name":     res.FileName,
		"sheet":         sheet,
		"database_name": res.Database,
		"table_name":    res.Table,
		"total":         res.Total,
		"inserted":      res.Inserted,
		"failed":        len(res.Failures),
		"truncated":     res.Truncated,
		"created":       res.Created,
		"error":         errText,
		"started_at":    res.StartedAt,
		"finished_at":   res.FinishedAt,
	}
	if err := db.Table(this.cfg.Table).Create(row).Error; err != nil {
		return errs.Wrap(errs.KindRowInsert, op, err, "cannot write audit row")
	}
	return nil
}
