// Package api wires the HTTP routes of the DCF service.
package api

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"property-dcf/internal/api/handlers"
	"property-dcf/internal/api/middleware"
	"property-dcf/internal/cache"
	"property-dcf/internal/dcf"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Deps are the collaborators the router needs.
type Deps struct {
	Engine      *dcf.Engine
	Store       cache.Store
	PresetDir   string
	StaticDir   string
	CORSOrigins []string
	Logger      *zap.Logger
}

// NewRouter builds the gin engine with middleware and all /api/v1 routes.
func NewRouter(d Deps) *gin.Engine {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.Engine == nil {
		d.Engine = dcf.New(dcf.WithLogger(d.Logger))
	}
	if d.Store == nil {
		d.Store = cache.NewMemoryStore(time.Hour, 0)
	}

	router := gin.New()
	router.Use(middleware.CORS(d.CORSOrigins))
	router.Use(middleware.Logger(d.Logger))
	router.Use(middleware.ErrorHandler(d.Logger))

	presetHandler := handlers.NewPresetHandler(d.PresetDir, d.Logger)
	analysisHandler := handlers.NewAnalysisHandler(d.Engine, d.Store, presetHandler.Dir(), d.Logger)
	irrHandler := handlers.NewIRRMethodsHandler(d.Engine.Settings().Numerics)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	{
		api.POST("/analyses", analysisHandler.RunAnalysis)
		api.POST("/analyses/compare", analysisHandler.CompareAnalyses)
		api.GET("/analyses/:id", analysisHandler.GetAnalysis)

		api.POST("/validate", analysisHandler.Validate)

		api.GET("/presets", presetHandler.ListPresets)
		api.GET("/presets/:id", presetHandler.GetPreset)

		api.GET("/irr-methods", irrHandler.ListMethods)
	}

	serveStatic(router, d.StaticDir, d.Logger)

	return router
}

// serveStatic mounts a built single-page frontend when dir exists. Unknown
// non-API paths fall through to index.html; everything else gets a JSON 404.
func serveStatic(router *gin.Engine, dir string, logger *zap.Logger) {
	notFound := func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"code": "NOT_FOUND", "message": "Not found"}})
	}

	if dir == "" {
		router.NoRoute(notFound)
		return
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		logger.Info("static directory not found, skipping static file serving", zap.String("dir", dir))
		router.NoRoute(notFound)
		return
	}

	router.Static("/assets", filepath.Join(dir, "assets"))
	router.StaticFile("/favicon.ico", filepath.Join(dir, "favicon.ico"))
	index := filepath.Join(dir, "index.html")
	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			notFound(c)
			return
		}
		c.File(index)
	})
	logger.Info("serving static files", zap.String("dir", dir))
}
