package importer_http_handler

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/init-pkg/sheet-loader/domain/app"
	"github.com/init-pkg/sheet-loader/domain/dtos"
	"github.com/init-pkg/sheet-loader/internal/config"
	"github.com/init-pkg/sheet-loader/internal/errs"

	"github.com/gofiber/fiber/v3"
)

type ImporterHttpHandler struct {
	service app.ImporterService
	cfg     *config.Config
	log     *slog.Logger
}

func New(service app.ImporterService, cfg *config.Config, log *slog.Logger) *ImporterHttpHandler {
	return &ImporterHttpHandler{service, cfg, log}
}

func (this *ImporterHttpHandler) Register(mainApp *fiber.App) {
	var app = mainApp.Group("/imports")

	app.Post("/upload", this.upload)
	app.Get("/:id", this.get)
}

// upload godoc
//
//	@Summary		Import a spreadsheet
//	@Description	Loads the first worksheet of an .xlsx/.xlsm file into a table in one transaction.
//	@Tags			imports
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			file		formData	file	true	"Spreadsheet"
//	@Param			table		formData	string	false	"Target table; inferred from the file name when empty"
//	@Param			database	formData	string	false	"Logical database name"
//	@Param			sheet		formData	string	false	"Worksheet name; first worksheet when empty"
//	@Param			truncate	formData	string	false	"Empty the table first (true/false)"
//	@Param			has_header	formData	string	false	"Row 1 holds column names (true/false)"
//	@Success		200			{object}	dtos.ImportResponse
//	@Failure		400			{object}	dtos.ErrorResponse
//	@Failure		500			{object}	dtos.ImportResponse
//	@Router			/imports/upload [post]
func (this *ImporterHttpHandler) upload(fctx fiber.Ctx) error {
	const op = "http.upload"
	var ctx = fctx.Context()

	var form dtos.ImportUploadRequest
	if err := fctx.Bind().WithoutAutoHandling().Form(&form); err != nil {
		return errs.Wrap(errs.KindInvalidInput, op, err, "invalid form")
	}

	fh, err := fctx.FormFile("file")
	if err != nil {
		return errs.New(errs.KindInvalidInput, op, "no file uploaded")
	}
	if limit := this.cfg.Import.MaxFileSize; limit > 0 && fh.Size > limit {
		return errs.New(errs.KindInvalidInput, op, "file exceeds the maximum upload size")
	}

	f, err := fh.Open()
	if err != nil {
		return errs.Wrap(errs.KindInvalidInput, op, err, "cannot read upload")
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return errs.Wrap(errs.KindInvalidInput, op, err, "cannot read upload")
	}

	res, err := this.service.Import(ctx, app.ImportRequest{
		FileName:  fh.Filename,
		Content:   content,
		Table:     form.Table,
		Database:  form.Database,
		Sheet:     form.Sheet,
		Truncate:  optionalBool(form.Truncate),
		HasHeader: optionalBool(form.HasHeader),
	})
	if err != nil && res == nil {
		return err
	}

	body := toResponse(res)
	if err != nil {
		body.Success = false
		body.Message = errs.Message(err)
		return fctx.Status(errs.HTTPStatus(err)).JSON(body)
	}
	return fctx.JSON(body)
}

// get godoc
//
//	@Summary	Get an import outcome
//	@Tags		imports
//	@Produce	json
//	@Param		id	path		string	true	"Import id"
//	@Success	200	{object}	app.ImportResult
//	@Failure	404	{object}	dtos.ErrorResponse
//	@Router		/imports/{id} [get]
func (this *ImporterHttpHandler) get(fctx fiber.Ctx) error {
	res, err := this.service.Get(fctx.Context(), fctx.Params("id"))
	if err != nil {
		return err
	}
	return fctx.JSON(res)
}

func optionalBool(s string) *bool {
	v, err := strconv.ParseBool(s)
	if err != nil {
		return nil
	}
	return &v
}

func toResponse(res *app.ImportResult) dtos.ImportResponse {
	body := dtos.ImportResponse{
		Success:  true,
		Message:  fmt.Sprintf("imported %d of %d rows into %s", res.Inserted, res.Total, res.Table),
		ImportId: res.ID,
		Imported: res.Inserted,
		Total:    res.Total,
		Failed:   len(res.Failures),
		Table:    res.Table,
		Database: res.Database,
	}
	for _, f := range res.Failures {
		body.Failures = append(body.Failures, dtos.RowFailureResponse{Row: f.Row, Error: f.Error})
	}
	return body
}
