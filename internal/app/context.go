package app

import (
	"github.com/voiceflow/voiceflowd/internal/activation"
	"github.com/voiceflow/voiceflowd/internal/domain"
	"github.com/voiceflow/voiceflowd/internal/fetch"
	"github.com/voiceflow/voiceflowd/internal/infra/config"
	"github.com/voiceflow/voiceflowd/internal/infra/logger"
	"github.com/voiceflow/voiceflowd/internal/orchestrator"
	"github.com/voiceflow/voiceflowd/internal/probe"
	"github.com/voiceflow/voiceflowd/internal/resolver"
	"github.com/voiceflow/voiceflowd/internal/store"
)

// Context holds the core environment and shared services of voiceflowd.
// It acts as the single source of truth the API controllers and CLI
// commands pull their collaborators from.
type Context struct {
	Config *config.Config
	Logger *logger.Logger

	Catalog      domain.Catalog
	Prober       *probe.Prober
	Fetcher      *fetch.Fetcher
	Resolver     *resolver.Resolver
	Orchestrator *orchestrator.Orchestrator
	Committer    *activation.Committer

	// Store is nil when history persistence is disabled.
	Store *store.PersistentStore

	Caps domain.HostCapabilities
}
