package document

import (
	"github.com/talleraustral/taller/internal/document/repository"
	"github.com/talleraustral/taller/internal/document/service"
	"go.uber.org/fx"
)

var Module = fx.Module("document.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
