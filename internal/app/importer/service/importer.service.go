package importer_service

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/init-pkg/sheet-loader/domain/app"
	"github.com/init-pkg/sheet-loader/internal/config"
	"github.com/init-pkg/sheet-loader/internal/errs"

	"github.com/google/uuid"
)

const sideEffectTimeout = 5 * time.Second

type ImporterService struct {
	cfg    *config.Config
	parser app.ExcelParserService
	loader app.LoaderService
	store  app.OutcomeStore
	events app.EventPublisher
	audit  app.AuditService
	log    *slog.Logger
}

var _ app.ImporterService = &ImporterService{}

func New(
	cfg *config.Config,
	parser app.ExcelParserService,
	loader app.LoaderService,
	store app.OutcomeStore,
	events app.EventPublisher,
	audit app.AuditService,
	log *slog.Logger,
) *ImporterService {
	return &ImporterService{cfg, parser, loader, store, events, audit, log}
}

// Import runs one upload through extraction and loading. Input errors are
// returned before an import id is assigned; once extraction starts, the
// result is stored and announced whether the import succeeds or not.
func (this *ImporterService) Import(ctx context.Context, req app.ImportRequest) (*app.ImportResult, error) {
	if err := this.validate(req); err != nil {
		return nil, err
	}

	target, err := ResolveTarget(this.cfg.Targets, req.FileName, req.Table, req.Database)
	if err != nil {
		return nil, err
	}

	res := &app.ImportResult{
		ID:        uuid.NewString(),
		FileName:  req.FileName,
		Database:  target.Database,
		Table:     target.Table,
		StartedAt: time.Now().UTC(),
	}
	log := this.log.With("import_id", res.ID, "file", req.FileName, "table", target.Table)
	log.Info("import started", "size", len(req.Content))

	runCtx := ctx
	if this.cfg.Import.CommandTimeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, this.cfg.Import.CommandTimeout)
		defer cancel()
	}

	err = this.run(runCtx, req, target, res)
	res.FinishedAt = time.Now().UTC()
	if err != nil {
		res.Status = app.ImportFailed
		res.Error = errs.Message(err)
		log.Error("import failed", "kind", errs.KindOf(err), "error", err)
	} else {
		res.Status = app.ImportSucceeded
		log.Info("import finished",
			"total", res.Total,
			"inserted", res.Inserted,
			"failed", len(res.Failures),
			"duration", res.FinishedAt.Sub(res.StartedAt))
	}

	this.finish(ctx, log, res)
	return res, err
}

func (this *ImporterService) run(ctx context.Context, req app.ImportRequest, target Target, res *app.ImportResult) error {
	noHeader := this.cfg.Import.NoHeaderRow
	if req.HasHeader != nil {
		noHeader = !*req.HasHeader
	}

	parsed, err := this.parser.Parse(ctx, req.Content, app.ParseExcelOptions{
		Sheet:       req.Sheet,
		NoHeaderRow: noHeader,
	})
	if err != nil {
		return err
	}
	res.Sheet = parsed.Sheet
	res.Columns = parsed.Columns
	res.Total = len(parsed.Records)

	outcome, err := this.loader.Load(ctx, app.LoadRequest{
		Database: target.Database,
		Table:    target.Table,
		Columns:  parsed.Columns,
		Records:  parsed.Records,
		Options: app.LoadOptions{
			Truncate:           this.truncate(req),
			FailIfTableMissing: !this.cfg.Import.CreateMissingTables,
			TextParams:         this.cfg.Import.TextParams,
			ProgressEvery:      this.cfg.Import.ProgressEvery,
		},
	})
	if err != nil {
		return err
	}

	res.Database = outcome.Database
	res.Inserted = outcome.Inserted
	res.Failures = outcome.Failures
	res.Truncated = outcome.Truncated
	res.Created = outcome.Created
	return nil
}

func (this *ImporterService) truncate(req app.ImportRequest) bool {
	if req.Truncate == nil || this.cfg.Import.LockTruncate {
		return this.cfg.Import.Truncate
	}
	return *req.Truncate
}

func (this *ImporterService) validate(req app.ImportRequest) error {
	const op = "importer.validate"

	if req.FileName == "" || len(req.Content) == 0 {
		return errs.New(errs.KindInvalidInput, op, "no file uploaded")
	}
	if ext := filepath.Ext(req.FileName); !this.cfg.Import.IsAllowedExtension(ext) {
		return errs.New(errs.KindInvalidInput, op, "unsupported file type "+ext)
	}
	if limit := this.cfg.Import.MaxFileSize; limit > 0 && int64(len(req.Content)) > limit {
		return errs.New(errs.KindInvalidInput, op, "file exceeds the maximum upload size")
	}
	return nil
}

// finish stores, announces and audits the result. None of these may fail
// the import, and they still run when the request context is gone.
func (this *ImporterService) finish(ctx context.Context, log *slog.Logger, res *app.ImportResult) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sideEffectTimeout)
	defer cancel()

	if err := this.store.Save(ctx, res); err != nil {
		log.Warn("cannot store import outcome", "error", err)
	}
	if err := this.events.Publish(ctx, res); err != nil {
		log.Warn("cannot publish import event", "error", err)
	}
	if err := this.audit.Record(ctx, res); err != nil {
		log.Warn("cannot write audit row", "error", err)
	}
}

func (this *ImporterService) Get(ctx context.Context, id string) (*app.ImportResult, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, errs.New(errs.KindInvalidInput, "importer.get", "malformed import id "+id)
	}
	return this.store.Get(ctx, id)
}
