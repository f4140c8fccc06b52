package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v5"
	"github.com/spf13/cobra"
	"github.com/voiceflow/voiceflowd/internal/api"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API the desktop app talks to",
	RunE: func(cmd *cobra.Command, args []string) error {
		appCtx, err := buildContext()
		if err != nil {
			return err
		}
		if appCtx.Store != nil {
			defer appCtx.Store.Close()
		}

		e := echo.New()
		api.RegisterRoutes(e, appCtx)

		srv := &http.Server{
			Addr:    ":" + appCtx.Config.Port,
			Handler: e,
		}

		// Shut down cleanly on Ctrl+C / SIGTERM
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			appCtx.Logger.Info("Listening on %s", srv.Addr)
			errCh <- srv.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
		case <-ctx.Done():
			appCtx.Logger.Info("Shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
