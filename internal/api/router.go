package api

import (
	"github.com/labstack/echo/v5"
	"github.com/labstack/echo/v5/middleware"
	"github.com/voiceflow/voiceflowd/internal/api/controllers"
	"github.com/voiceflow/voiceflowd/internal/app"
)

func RegisterRoutes(e *echo.Echo, app *app.Context) {

	// Middleware: Request Logger
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(c *echo.Context, v middleware.RequestLoggerValues) error {
			app.Logger.Info("%s %s | %d | %s", v.Method, v.URI, v.Status, v.Latency)
			return nil
		},
	}))

	modelsCtrl := &controllers.ModelsController{App: app}
	setupCtrl := &controllers.SetupController{App: app}

	// Catalog and local state, for the app's model pickers
	e.GET("/api/models", modelsCtrl.List)
	e.GET("/api/profiles", modelsCtrl.Profiles)
	e.GET("/api/jobs", modelsCtrl.Jobs)
	e.GET("/api/history", modelsCtrl.History)

	// Setup orchestration
	e.POST("/api/setup/preflight", setupCtrl.Preflight)
	e.POST("/api/setup", setupCtrl.Start)
	e.GET("/api/setup/status", setupCtrl.Status)
	e.POST("/api/setup/cancel", setupCtrl.Cancel)
}
