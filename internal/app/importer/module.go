package importer_module

import (
	"github.com/init-pkg/sheet-loader/domain/app"
	importer_service "github.com/init-pkg/sheet-loader/internal/app/importer/service"
	importer_http_handler "github.com/init-pkg/sheet-loader/internal/app/importer/transports/http"
	"go.uber.org/fx"
)

func Register() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(importer_service.New, fx.As(new(app.ImporterService))),
			importer_http_handler.New,
		),
		fx.Invoke(
			(*importer_http_handler.ImporterHttpHandler).Register,
		),
	)
}
