package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/voiceflow/voiceflowd/internal/domain"
	"github.com/voiceflow/voiceflowd/internal/orchestrator"
)

var (
	setupProfile string
	setupStt     string
	setupLlm     string
	setupAuto    bool
	setupYes     bool
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Download and activate a model profile",
	Long: `Download the models of a profile (or a manual model pair) and make
them the active configuration.

Examples:
  voiceflowd setup --auto
  voiceflowd setup --profile balanced
  voiceflowd setup --stt moonshine-base --llm phi-2`,
	RunE: func(cmd *cobra.Command, args []string) error {
		appCtx, err := buildContext()
		if err != nil {
			return err
		}
		if appCtx.Store != nil {
			defer appCtx.Store.Close()
		}

		req := orchestrator.Request{
			ProfileID: setupProfile,
			Overrides: domain.Overrides{
				SttAssetID: setupStt,
				LlmAssetID: setupLlm,
			},
			AcknowledgeRuntime: setupYes,
		}

		if setupAuto && req.ProfileID == "" {
			req.ProfileID = appCtx.Resolver.AutoSelect(appCtx.Caps)
			fmt.Printf("Auto-selected profile: %s\n", req.ProfileID)
		}

		warn, sel, err := appCtx.Orchestrator.Preflight(req)
		if err != nil {
			return err
		}

		if warn && !setupYes {
			fmt.Printf("The %s model needs the optional interpreter runtime, which was not found on this machine.\n", sel.SttAssetID)
			fmt.Println("Re-run with --yes to download anyway.")
			return domain.ErrRuntimeNotAcknowledged
		}

		// Ctrl+C cancels the in-flight transfer; completed files stay
		// so a re-run resumes where this one stopped.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		err = appCtx.Orchestrator.Run(ctx, req, renderProgress)
		fmt.Println()
		if err != nil {
			return err
		}

		fmt.Printf("Active models: stt=%s llm=%s\n", sel.SttAssetID, sel.LlmAssetID)
		if appCtx.Committer.RestartRequired() {
			fmt.Println("Restart VoiceFlow to pick up the new models.")
		}
		return nil
	},
}

var stageLabels = map[orchestrator.Stage]string{
	orchestrator.StageResolvingProfile: "Resolving",
	orchestrator.StageProbingStt:       "Checking speech model",
	orchestrator.StageDownloadingStt:   "Downloading speech model",
	orchestrator.StageProbingLlm:       "Checking language model",
	orchestrator.StageDownloadingLlm:   "Downloading language model",
	orchestrator.StageCommitting:       "Activating",
	orchestrator.StageComplete:         "Done",
	orchestrator.StageFailed:           "Failed",
}

// renderProgress draws a single-line bar: [=====>    ]  42.0% Downloading...
func renderProgress(ev orchestrator.Event) {
	if ev.Stage == orchestrator.StageFailed {
		fmt.Printf("\nError: %s\n", ev.Error)
		return
	}

	const barWidth = 20
	completedWidth := int(ev.Fraction * barWidth)
	if completedWidth > barWidth {
		completedWidth = barWidth
	}

	bar := strings.Repeat("=", completedWidth)
	if completedWidth < barWidth {
		bar += ">" + strings.Repeat(" ", barWidth-completedWidth-1)
	}

	label := stageLabels[ev.Stage]
	if label == "" {
		label = string(ev.Stage)
	}

	fmt.Printf("\r[%s] %5.1f%% | %-28s", bar, ev.Fraction*100, label)
}

func init() {
	setupCmd.Flags().StringVar(&setupProfile, "profile", "", "profile id (lightweight, balanced, accuracy)")
	setupCmd.Flags().StringVar(&setupStt, "stt", "", "speech model id, overrides the profile")
	setupCmd.Flags().StringVar(&setupLlm, "llm", "", "language model id, overrides the profile")
	setupCmd.Flags().BoolVar(&setupAuto, "auto", false, "pick the profile for this machine's memory")
	setupCmd.Flags().BoolVar(&setupYes, "yes", false, "acknowledge the optional-runtime warning")
	rootCmd.AddCommand(setupCmd)
}
