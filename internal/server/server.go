package server

import (
	"errors"
	"log/slog"

	"github.com/init-pkg/sheet-loader/domain/dtos"
	"github.com/init-pkg/sheet-loader/internal/config"
	"github.com/init-pkg/sheet-loader/internal/errs"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

// formOverhead is what a multipart body may carry on top of the file itself.
const formOverhead = 1 << 20

type structValidator struct {
	validate *validator.Validate
}

func (v structValidator) Validate(out any) error {
	return v.validate.Struct(out)
}

func New(cfg *config.Config, log *slog.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:         "sheet-loader",
		BodyLimit:       int(cfg.Import.MaxFileSize) + formOverhead,
		ReadTimeout:     cfg.Http.ReadTimeout,
		WriteTimeout:    cfg.Http.WriteTimeout,
		ErrorHandler:    ErrorHandler(log),
		StructValidator: structValidator{validator.New(validator.WithRequiredStructEnabled())},
	})

	registerSystemRoutes(app)
	return app
}

// ErrorHandler renders every error returned by a handler as an ErrorResponse.
func ErrorHandler(log *slog.Logger) fiber.ErrorHandler {
	return func(c fiber.Ctx, err error) error {
		status := errs.HTTPStatus(err)
		message := errs.Message(err)

		var fe *fiber.Error
		if errs.KindOf(err) == errs.KindUnknown && errors.As(err, &fe) {
			status = fe.Code
			message = fe.Message
		}

		if status >= fiber.StatusInternalServerError {
			log.Error("request failed", "method", c.Method(), "path", c.Path(), "error", err)
		} else {
			log.Info("request rejected", "method", c.Method(), "path", c.Path(), "status", status, "error", err)
		}

		return c.Status(status).JSON(dtos.ErrorResponse{
			Success: false,
			Message: message,
			Kind:    string(errs.KindOf(err)),
		})
	}
}
