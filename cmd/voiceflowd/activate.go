package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/voiceflow/voiceflowd/internal/domain"
)

var activateCmd = &cobra.Command{
	Use:   "activate <stt-model-id> <llm-model-id>",
	Short: "Activate an already-downloaded model pair without downloading",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		appCtx, err := buildContext()
		if err != nil {
			return err
		}
		if appCtx.Store != nil {
			defer appCtx.Store.Close()
		}

		sel := domain.EffectiveSelection{
			SttAssetID: args[0],
			LlmAssetID: args[1],
		}

		if err := appCtx.Committer.Commit(sel); err != nil {
			return err
		}

		fmt.Printf("Active models: stt=%s llm=%s\n", sel.SttAssetID, sel.LlmAssetID)
		if appCtx.Committer.RestartRequired() {
			fmt.Println("Restart VoiceFlow to pick up the new models.")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(activateCmd)
}
