package controllers

import (
	"github.com/voiceflow/voiceflowd/internal/domain"
	"github.com/voiceflow/voiceflowd/internal/orchestrator"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type ModelStatus struct {
	domain.Asset
	Downloaded bool `json:"downloaded"`
}

type ModelListResponse struct {
	ModelsDir string        `json:"models_dir"`
	Models    []ModelStatus `json:"models"`
}

type ProfilesResponse struct {
	Profiles     []domain.Profile        `json:"profiles"`
	AutoSelected string                  `json:"auto_selected"`
	Host         domain.HostCapabilities `json:"host"`
}

type PreflightResponse struct {
	Selection      domain.EffectiveSelection `json:"selection"`
	RuntimeWarning bool                      `json:"runtime_warning"`
}

type SetupStatusResponse struct {
	orchestrator.Event
	Running         bool                      `json:"running"`
	Selection       domain.EffectiveSelection `json:"selection"`
	RestartRequired bool                      `json:"restart_required"`
}
