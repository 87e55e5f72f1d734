package outcome_module

import (
	"github.com/init-pkg/sheet-loader/domain/app"
	outcome_service "github.com/init-pkg/sheet-loader/internal/app/outcome/service"
	"go.uber.org/fx"
)

func Register() fx.Option {
	return fx.Provide(
		fx.Annotate(outcome_service.New, fx.As(new(app.OutcomeStore))),
	)
}
