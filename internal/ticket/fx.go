package ticket

import (
	"github.com/talleraustral/taller/internal/ticket/repository"
	"github.com/talleraustral/taller/internal/ticket/service"
	"go.uber.org/fx"
)

var Module = fx.Module("ticket.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
