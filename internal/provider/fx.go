package provider

import (
	"github.com/talleraustral/taller/internal/provider/repository"
	"github.com/talleraustral/taller/internal/provider/service"
	"go.uber.org/fx"
)

var Module = fx.Module("provider.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
