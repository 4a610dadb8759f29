package migration

import (
	"github.com/talleraustral/taller/internal/actionhistory"
	clientdomain "github.com/talleraustral/taller/internal/client/domain"
	"github.com/talleraustral/taller/internal/config"
	documentdomain "github.com/talleraustral/taller/internal/document/domain"
	inventorydomain "github.com/talleraustral/taller/internal/inventory/domain"
	paymentdomain "github.com/talleraustral/taller/internal/payment/domain"
	providerdomain "github.com/talleraustral/taller/internal/provider/domain"
	repairorderdomain "github.com/talleraustral/taller/internal/repairorder/domain"
	"github.com/talleraustral/taller/internal/seed"
	"github.com/talleraustral/taller/internal/sysconfig"
	ticketdomain "github.com/talleraustral/taller/internal/ticket/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// All core tables are created automatically on startup so the service is
// usable out of the box for local and self-hosted environments.
var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if err := conn.AutoMigrate(
			&clientdomain.Client{},
			&repairorderdomain.RepairOrder{},
			&inventorydomain.Item{},
			&documentdomain.Document{},
			&providerdomain.Provider{},
			&paymentdomain.Payment{},
			&ticketdomain.Ticket{},
			&sysconfig.Setting{},
			&actionhistory.Entry{},
		); err != nil {
			return err
		}

		if cfg.SeedDemoData {
			return seed.EnsureDemoData(conn)
		}
		return nil
	}),
)
