package events_module

import (
	"github.com/init-pkg/sheet-loader/domain/app"
	events_service "github.com/init-pkg/sheet-loader/internal/app/events/service"
	"go.uber.org/fx"
)

func Register() fx.Option {
	return fx.Provide(
		fx.Annotate(events_service.New, fx.As(new(app.EventPublisher))),
	)
}
