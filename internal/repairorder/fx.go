package repairorder

import (
	"github.com/talleraustral/taller/internal/repairorder/repository"
	"github.com/talleraustral/taller/internal/repairorder/service"
	"go.uber.org/fx"
)

var Module = fx.Module("repairorder.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
