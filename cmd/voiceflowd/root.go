package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/voiceflow/voiceflowd/internal/activation"
	"github.com/voiceflow/voiceflowd/internal/app"
	"github.com/voiceflow/voiceflowd/internal/catalog"
	"github.com/voiceflow/voiceflowd/internal/fetch"
	"github.com/voiceflow/voiceflowd/internal/host"
	"github.com/voiceflow/voiceflowd/internal/infra/config"
	"github.com/voiceflow/voiceflowd/internal/infra/logger"
	"github.com/voiceflow/voiceflowd/internal/orchestrator"
	"github.com/voiceflow/voiceflowd/internal/probe"
	"github.com/voiceflow/voiceflowd/internal/resolver"
	"github.com/voiceflow/voiceflowd/internal/store"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:          "voiceflowd",
	Short:        "VoiceFlow model manager daemon",
	Long:         "voiceflowd downloads, verifies and activates the speech and language models used by the VoiceFlow dictation app.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to voiceflowd.yaml")
}

// buildContext wires every service the commands share. The sqlite history
// store is best-effort: a broken database must not block model setup.
func buildContext() (*app.Context, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	log, err := logger.New(cfg.Log.Path, logger.ParseLevel(cfg.Log.Level), cfg.Log.IncludeStdout)
	if err != nil {
		return nil, fmt.Errorf("logger error: %w", err)
	}

	cat := catalog.Default(cfg.Models.HFMirror)
	prober := probe.New(cfg.Models.Root, catalog.MinSingleFileBytes)
	fetcher := fetch.New(prober, fetch.NewJobs(), log)

	settings := activation.NewTOMLSettings(cfg.Settings.Path)
	committer := activation.NewCommitter(cat, prober, settings, cfg.Settings.PipelineMode, log)

	caps := host.Detect(cfg.Host)
	log.Debug("Host capabilities: ram=%dGB runtime=%v", caps.PhysicalMemoryGB, caps.OptionalRuntimeAvailable)

	var history orchestrator.History
	db, err := store.NewPersistentStore(cfg.Store.SQLitePath)
	if err != nil {
		log.Warn("Acquisition history disabled: %v", err)
		db = nil
	} else {
		history = db
	}

	orch := orchestrator.New(cat, prober, fetcher, committer, history, caps, log)

	return &app.Context{
		Config:       cfg,
		Logger:       log,
		Catalog:      cat,
		Prober:       prober,
		Fetcher:      fetcher,
		Resolver:     resolver.New(cat),
		Orchestrator: orch,
		Committer:    committer,
		Store:        db,
		Caps:         caps,
	}, nil
}
