package bootstrap

import (
	database_client "github.com/init-pkg/sheet-loader/internal/clients/database"
	rabbitmq_client "github.com/init-pkg/sheet-loader/internal/clients/rabbitmq"
	redis_client "github.com/init-pkg/sheet-loader/internal/clients/redis"
	"go.uber.org/fx"
)

func clientsOptions() fx.Option {
	return fx.Options(
		fx.Provide(
			database_client.New,
			redis_client.New,
			rabbitmq_client.New,
		),
		fx.Invoke(func(lc fx.Lifecycle, registry *database_client.Registry) {
			lc.Append(fx.StopHook(registry.Close))
		}),
	)
}
