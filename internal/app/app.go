package app

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/shelfshare/notesum/internal/config"
	"github.com/shelfshare/notesum/internal/middleware"
	"github.com/shelfshare/notesum/internal/modules/inference"
	"go.uber.org/zap"
)

// App holds all application dependencies.
type App struct {
	cfg     *config.AppConfig
	router  *gin.Engine
	gateway inference.Gateway
	logger  *zap.Logger
}

// New initializes the application: inference gateway → router → routes.
func New(logger *zap.Logger, cfg *config.AppConfig) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	gateway, err := inference.New(cfg.Inference)
	if err != nil {
		return nil, fmt.Errorf("inference: %w", err)
	}
	return NewWithGateway(logger, cfg, gateway), nil
}

// NewWithGateway builds the application around an existing gateway.
func NewWithGateway(logger *zap.Logger, cfg *config.AppConfig, gateway inference.Gateway) *App {
	if logger == nil {
		logger = zap.NewNop()
	}

	if cfg.IsDev() {
		gin.SetMode(gin.DebugMode)
		gin.DebugPrintRouteFunc = func(method, path, handler string, _ int) {
			logger.Debug("route", zap.String("method", method), zap.String("path", path), zap.String("handler", handler))
		}
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(middleware.RequestID())
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.Logger(logger))
	router.Use(cors.New(corsConfig(cfg)))

	app := &App{cfg: cfg, router: router, gateway: gateway, logger: logger}
	app.registerRoutes()
	return app
}

func corsConfig(cfg *config.AppConfig) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", middleware.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", middleware.RequestIDHeader},
	}
	if len(cfg.AllowedOrigins) > 0 && !cfg.IsDev() {
		patterns := cfg.AllowedOrigins
		c.AllowOriginFunc = func(origin string) bool {
			host := extractOriginHost(origin)
			for _, pattern := range patterns {
				if matchOriginPattern(pattern, host) {
					return true
				}
			}
			return false
		}
	} else {
		c.AllowOriginFunc = func(origin string) bool { return true }
	}
	return c
}

// Addr returns the listen address.
func (a *App) Addr() string { return a.cfg.Addr() }

// Router returns the HTTP handler.
func (a *App) Router() http.Handler { return a.router }
