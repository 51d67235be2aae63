package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/portal/internal/client"
	"github.com/smallbiznis/portal/internal/config"
	"github.com/smallbiznis/portal/internal/invoice"
	obsmetrics "github.com/smallbiznis/portal/internal/observability/metrics"
	"github.com/smallbiznis/portal/internal/providers/pdf"
	"github.com/smallbiznis/portal/internal/seed"
	"github.com/smallbiznis/portal/internal/server"
	"github.com/smallbiznis/portal/internal/ticket"
	"github.com/smallbiznis/portal/pkg/db"
	"github.com/smallbiznis/portal/pkg/log"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		log.Module,
		db.Module,
		obsmetrics.Module,
		fx.Provide(RegisterSnowflake),

		pdf.Module,
		client.Module,
		invoice.Module,
		ticket.Module,

		seed.Module,
		server.Module,
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
