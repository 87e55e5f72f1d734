package bootstrap

import (
	"go.uber.org/fx"
)

// Options is the whole service graph: config, logging and HTTP first, then
// the clients, then the feature modules.
func Options() fx.Option {
	return fx.Options(
		coreOptions(),
		clientsOptions(),
		appOptions(),
	)
}

func Run() {
	app := fx.New(Options())

	app.Run()
}
