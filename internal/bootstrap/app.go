package bootstrap

import (
	audit_module "github.com/init-pkg/sheet-loader/internal/app/audit"
	events_module "github.com/init-pkg/sheet-loader/internal/app/events"
	excel_parser_module "github.com/init-pkg/sheet-loader/internal/app/excel-parser"
	importer_module "github.com/init-pkg/sheet-loader/internal/app/importer"
	loader_module "github.com/init-pkg/sheet-loader/internal/app/loader"
	outcome_module "github.com/init-pkg/sheet-loader/internal/app/outcome"
	"go.uber.org/fx"
)

func appOptions() fx.Option {
	return fx.Options(
		excel_parser_module.Register(),
		loader_module.Register(),
		outcome_module.Register(),
		events_module.Register(),
		audit_module.Register(),
		importer_module.Register(),
	)
}
