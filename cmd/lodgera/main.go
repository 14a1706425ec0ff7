package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/lodgera/internal/agent"
	"github.com/smallbiznis/lodgera/internal/availability"
	"github.com/smallbiznis/lodgera/internal/clock"
	"github.com/smallbiznis/lodgera/internal/commission"
	"github.com/smallbiznis/lodgera/internal/config"
	"github.com/smallbiznis/lodgera/internal/customer"
	"github.com/smallbiznis/lodgera/internal/ledger"
	"github.com/smallbiznis/lodgera/internal/logger"
	"github.com/smallbiznis/lodgera/internal/migration"
	"github.com/smallbiznis/lodgera/internal/observability/metrics"
	"github.com/smallbiznis/lodgera/internal/reconciler"
	"github.com/smallbiznis/lodgera/internal/reservation"
	"github.com/smallbiznis/lodgera/internal/resource"
	"github.com/smallbiznis/lodgera/internal/server"
	"github.com/smallbiznis/lodgera/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		logger.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		metrics.Module,
		migration.Module,

		// Domains
		resource.Module,
		customer.Module,
		agent.Module,
		availability.Module,
		reservation.Module,
		commission.Module,
		ledger.Module,

		// HTTP surface and background sweep
		server.Module,
		reconciler.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
