package controllers

import (
	"net/http"

	"github.com/labstack/echo/v5"
	"github.com/voiceflow/voiceflowd/internal/app"
)

type ModelsController struct {
	App *app.Context
}

// List returns every catalog asset with its current downloaded state. The
// downloaded flag is probed fresh on every request so the picker never
// shows stale state after a failed or deleted download.
func (ctrl *ModelsController) List(c *echo.Context) error {
	assets := ctrl.App.Catalog.Assets()

	out := make([]ModelStatus, 0, len(assets))
	for _, a := range assets {
		out = append(out, ModelStatus{
			Asset:      a,
			Downloaded: ctrl.App.Prober.Complete(a),
		})
	}

	return c.JSON(http.StatusOK, ModelListResponse{
		ModelsDir: ctrl.App.Config.Models.Root,
		Models:    out,
	})
}

// Profiles returns the selectable presets plus the auto-pick for this host.
func (ctrl *ModelsController) Profiles(c *echo.Context) error {
	return c.JSON(http.StatusOK, ProfilesResponse{
		Profiles:     ctrl.App.Catalog.Profiles(),
		AutoSelected: ctrl.App.Resolver.AutoSelect(ctrl.App.Caps),
		Host:         ctrl.App.Caps,
	})
}

// Jobs returns the live per-family download job table.
func (ctrl *ModelsController) Jobs(c *echo.Context) error {
	return c.JSON(http.StatusOK, ctrl.App.Fetcher.Jobs().Snapshot())
}

// History returns recent acquisition attempts from the local store.
func (ctrl *ModelsController) History(c *echo.Context) error {
	if ctrl.App.Store == nil {
		return c.JSON(http.StatusOK, []struct{}{})
	}

	jobs, err := ctrl.App.Store.RecentAcquisitions(50)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, jobs)
}
