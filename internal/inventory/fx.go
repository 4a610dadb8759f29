package inventory

import (
	"github.com/talleraustral/taller/internal/inventory/repository"
	"github.com/talleraustral/taller/internal/inventory/service"
	"go.uber.org/fx"
)

var Module = fx.Module("inventory.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
