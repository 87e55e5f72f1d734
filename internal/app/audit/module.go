package audit_module

import (
	"github.com/init-pkg/sheet-loader/domain/app"
	audit_service "github.com/init-pkg/sheet-loader/internal/app/audit/service"
	"go.uber.org/fx"
)

func Register() fx.Option {
	return fx.Provide(
		fx.Annotate(audit_service.New, fx.As(new(app.AuditService))),
	)
}
