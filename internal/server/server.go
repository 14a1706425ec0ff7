package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	agentdomain "github.com/smallbiznis/lodgera/internal/agent/domain"
	availabilitydomain "github.com/smallbiznis/lodgera/internal/availability/domain"
	commissiondomain "github.com/smallbiznis/lodgera/internal/commission/domain"
	"github.com/smallbiznis/lodgera/internal/config"
	obsmetrics "github.com/smallbiznis/lodgera/internal/observability/metrics"
	reservationdomain "github.com/smallbiznis/lodgera/internal/reservation/domain"
	resourcedomain "github.com/smallbiznis/lodgera/internal/resource/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(log *zap.Logger, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLoggingMiddleware(log))
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(log *zap.Logger, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(log, httpMetrics)
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
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
	engine *gin.Engine
	cfg    config.Config

	reservationSvc  reservationdomain.Service
	availabilitySvc availabilitydomain.Service
	resourceSvc     resourcedomain.Service
	agentSvc        agentdomain.Service
	commissionSvc   commissiondomain.Service
}

type ServerParams struct {
	fx.In

	Gin *gin.Engine
	Cfg config.Config

	ReservationSvc  reservationdomain.Service
	AvailabilitySvc availabilitydomain.Service
	ResourceSvc     resourcedomain.Service
	AgentSvc        agentdomain.Service
	CommissionSvc   commissiondomain.Service
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:          p.Gin,
		cfg:             p.Cfg,
		reservationSvc:  p.ReservationSvc,
		availabilitySvc: p.AvailabilitySvc,
		resourceSvc:     p.ResourceSvc,
		agentSvc:        p.AgentSvc,
		commissionSvc:   p.CommissionSvc,
	}

	svc.registerAPIRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	v1 := s.engine.Group("/v1")

	v1.POST("/resources", s.CreateResource)
	v1.GET("/resources", s.ListResources)
	v1.GET("/resources/:id", s.GetResourceByID)
	v1.DELETE("/resources/:id", s.DeactivateResource)

	v1.POST("/agents", s.CreateAgent)
	v1.GET("/agents/:id", s.GetAgentByID)

	v1.GET("/availability", s.CheckAvailability)

	v1.POST("/reservations", s.CreateReservation)
	v1.GET("/reservations", s.ListReservations)
	v1.GET("/reservations/:id", s.GetReservationByID)
	v1.PATCH("/reservations/:id/status", s.UpdateReservationStatus)

	v1.POST("/commissions/:id/pay", s.MarkCommissionPaid)
}
