package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List catalog models and their local state",
	RunE: func(cmd *cobra.Command, args []string) error {
		appCtx, err := buildContext()
		if err != nil {
			return err
		}
		if appCtx.Store != nil {
			defer appCtx.Store.Close()
		}

		fmt.Printf("Models directory: %s\n\n", appCtx.Config.Models.Root)
		fmt.Printf("%-24s %-14s %-24s %10s  %s\n", "ID", "FAMILY", "NAME", "SIZE", "STATE")

		for _, a := range appCtx.Catalog.Assets() {
			state := "missing"
			if appCtx.Prober.Complete(a) {
				state = "downloaded"
			}
			fmt.Printf("%-24s %-14s %-24s %10s  %s\n",
				a.ID, a.Family, a.DisplayName, formatSize(a.SizeEstimate), state)
		}

		return nil
	},
}

func formatSize(bytes int64) string {
	switch {
	case bytes >= 1<<30:
		return fmt.Sprintf("%.1f GB", float64(bytes)/(1<<30))
	case bytes >= 1<<20:
		return fmt.Sprintf("%.0f MB", float64(bytes)/(1<<20))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

func init() {
	rootCmd.AddCommand(modelsCmd)
}
