package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	clientdomain "github.com/smallbiznis/portal/internal/client/domain"
	"github.com/smallbiznis/portal/internal/config"
	invoicedomain "github.com/smallbiznis/portal/internal/invoice/domain"
	obsmetrics "github.com/smallbiznis/portal/internal/observability/metrics"
	ticketdomain "github.com/smallbiznis/portal/internal/ticket/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Module wires the HTTP surface.
var Module = fx.Module("http.server",
	fx.Provide(NewEngine),
	fx.Provide(NewServer),
	fx.Invoke(func(s *Server) { s.RegisterRoutes() }),
	fx.Invoke(RunHTTP),
)

func NewEngine(httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

// RunHTTP starts the HTTP listener under the fx lifecycle.
func RunHTTP(lc fx.Lifecycle, r *gin.Engine, cfg config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal("http server failed", zap.Error(err))
				}
			}()
			log.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine     *gin.Engine
	cfg        config.Config
	log        *zap.Logger
	invoiceSvc invoicedomain.Service
	ticketSvc  ticketdomain.Service
	clientSvc  clientdomain.Service
}

type ServerParams struct {
	fx.In

	Gin        *gin.Engine
	Cfg        config.Config
	Log        *zap.Logger
	InvoiceSvc invoicedomain.Service
	TicketSvc  ticketdomain.Service
	ClientSvc  clientdomain.Service
}

func NewServer(p ServerParams) *Server {
	return &Server{
		engine:     p.Gin,
		cfg:        p.Cfg,
		log:        p.Log.Named("server"),
		invoiceSvc: p.InvoiceSvc,
		ticketSvc:  p.TicketSvc,
		clientSvc:  p.ClientSvc,
	}
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// RegisterRoutes mounts the client-facing API and the thin admin surface.
func (s *Server) RegisterRoutes() {
	api := s.engine.Group("/api")

	// -------- Invoices --------
	api.GET("/invoices", s.ListInvoices)
	api.POST("/invoices/search", s.SearchInvoices)
	api.GET("/invoices/filter-options", s.ListInvoiceFilterOptions)
	api.GET("/invoices/:id", s.GetInvoiceByID)
	api.GET("/invoices/:id/pdf", s.ExportInvoicePDF)

	// -------- Tickets --------
	api.GET("/tickets", s.ListTickets)
	api.POST("/tickets/search", s.SearchTickets)
	api.GET("/tickets/filter-options", s.ListTicketFilterOptions)
	api.GET("/tickets/:id", s.GetTicketByID)

	// -------- Admin --------
	admin := s.engine.Group("/admin")
	admin.GET("/clients", s.ListClients)
	admin.POST("/clients", s.CreateClient)
	admin.GET("/clients/:id", s.GetClientByID)
	admin.PUT("/clients/:id", s.UpdateClient)
	admin.DELETE("/clients/:id", s.DeleteClient)
}
