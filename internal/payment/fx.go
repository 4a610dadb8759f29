package payment

import (
	"github.com/talleraustral/taller/internal/payment/repository"
	"github.com/talleraustral/taller/internal/payment/service"
	"go.uber.org/fx"
)

var Module = fx.Module("payment.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
