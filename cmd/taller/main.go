package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/talleraustral/taller/internal/clock"
	"github.com/talleraustral/taller/internal/config"
	"github.com/talleraustral/taller/internal/migration"
	"github.com/talleraustral/taller/internal/querycache"
	"github.com/talleraustral/taller/internal/server"
	"github.com/talleraustral/taller/pkg/db"
	"github.com/talleraustral/taller/pkg/log"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		log.Module,
		fx.Provide(registerSnowflake),
		db.Module,
		clock.Module,
		querycache.Module,
		server.Module,
		migration.Module,
	)

	app.Run()
}

func registerSnowflake() (*snowflake.Node, error) {
	return snowflake.NewNode(1)
}
