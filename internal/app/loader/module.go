package loader_module

import (
	"github.com/init-pkg/sheet-loader/domain/app"
	loader_service "github.com/init-pkg/sheet-loader/internal/app/loader/service"
	"go.uber.org/fx"
)

func Register() fx.Option {
	return fx.Provide(
		fx.Annotate(loader_service.New, fx.As(new(app.LoaderService))),
	)
}
