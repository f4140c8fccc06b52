package controllers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v5"
	"github.com/voiceflow/voiceflowd/internal/app"
	"github.com/voiceflow/voiceflowd/internal/domain"
	"github.com/voiceflow/voiceflowd/internal/orchestrator"
)

type SetupController struct {
	App *app.Context
}

// Preflight resolves a setup request without starting anything and tells
// the UI whether it must show the optional-runtime warning first.
func (ctrl *SetupController) Preflight(c *echo.Context) error {
	var req orchestrator.Request
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}

	warn, sel, err := ctrl.App.Orchestrator.Preflight(req)
	if err != nil {
		return ctrl.setupError(c, err)
	}

	return c.JSON(http.StatusOK, PreflightResponse{
		Selection:      sel,
		RuntimeWarning: warn,
	})
}

// Start kicks off one background setup run. A run already in flight is
// rejected, not queued.
func (ctrl *SetupController) Start(c *echo.Context) error {
	var req orchestrator.Request
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}

	if err := ctrl.App.Orchestrator.Start(req, nil); err != nil {
		return ctrl.setupError(c, err)
	}

	return c.JSON(http.StatusAccepted, ctrl.statusResponse())
}

// Status reports the current stage, progress and the sticky restart flag.
// The UI polls this while its progress sheet is open.
func (ctrl *SetupController) Status(c *echo.Context) error {
	return c.JSON(http.StatusOK, ctrl.statusResponse())
}

// Cancel aborts the in-flight run, if any.
func (ctrl *SetupController) Cancel(c *echo.Context) error {
	if !ctrl.App.Orchestrator.Cancel() {
		return c.JSON(http.StatusConflict, ErrorResponse{Error: "no setup run in flight"})
	}
	return c.JSON(http.StatusOK, ctrl.statusResponse())
}

func (ctrl *SetupController) statusResponse() SetupStatusResponse {
	return SetupStatusResponse{
		Event:           ctrl.App.Orchestrator.Status(),
		Running:         ctrl.App.Orchestrator.Running(),
		Selection:       ctrl.App.Orchestrator.Selection(),
		RestartRequired: ctrl.App.Committer.RestartRequired(),
	}
}

func (ctrl *SetupController) setupError(c *echo.Context, err error) error {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, domain.ErrSetupRunning), errors.Is(err, domain.ErrDownloadInFlight):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrUnknownAsset), errors.Is(err, domain.ErrUnknownProfile):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrRuntimeNotAcknowledged):
		status = http.StatusPreconditionRequired
	}

	return c.JSON(status, ErrorResponse{Error: err.Error()})
}
