package ticket

import (
	"github.com/smallbiznis/portal/internal/ticket/service"
	"go.uber.org/fx"
)

var Module = fx.Module("ticket.service",
	fx.Provide(service.NewService),
)
