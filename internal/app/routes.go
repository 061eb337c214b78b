package app

import (
	"github.com/gin-gonic/gin"
	"github.com/shelfshare/notesum/internal/modules/notes"
	"github.com/shelfshare/notesum/internal/modules/system/health"
	"github.com/shelfshare/notesum/internal/pkg/response"
)

func (a *App) registerRoutes() {
	r := a.router

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c)
	})
	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})

	root := r.Group("")
	health.RegisterRoutes(root, health.Info{
		Provider:     a.cfg.Inference.Provider,
		SummaryModel: a.cfg.Inference.SummaryModel,
		TitleModel:   a.cfg.Inference.TitleModel,
	})

	notesSvc := notes.NewService(a.gateway, notes.Models{
		Summary: a.cfg.Inference.SummaryModel,
		Title:   a.cfg.Inference.TitleModel,
	}, a.logger)
	notes.NewHandler(notesSvc, a.logger).RegisterRoutes(root)
}
