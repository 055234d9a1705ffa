package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/LordAlokPortfolio/KVProductionGlassLine/internal/handlers"
	"github.com/LordAlokPortfolio/KVProductionGlassLine/internal/labeling"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start web server for label intake",
		Long: `Starts the Glassline web interface on the specified port.

Operators photograph damaged glass labels, pick a reason and quantity, and
add them to a batch. Each photo is transcribed by the configured OCR provider
(OCR_PROVIDER: openai, ollama, gemini or tesseract) and the label fields are
extracted for review.`,
		Example: `  # Start server on default port 8888
  glassline serve

  # Start server on custom port
  glassline serve --port 3000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := labeling.NewServiceFromEnv()
			if err != nil {
				return err
			}
			handler := handlers.New(svc)

			addr := ":" + port
			server := &http.Server{
				Addr:              addr,
				Handler:           handler.Routes(),
				ReadHeaderTimeout: 10 * time.Second,
			}

			// Start server in goroutine
			serverErr := make(chan error, 1)
			go func() {
				slog.Info("Glassline interface available", "addr", addr, "url", "http://localhost"+addr)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverErr <- err
				}
			}()

			// Wait for context cancellation (Ctrl+C) or server error
			select {
			case <-cmd.Context().Done():
				slog.Info("Shutting down server...")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := server.Shutdown(shutdownCtx); err != nil {
					slog.Error("Server shutdown failed", "err", err)
					return err
				}
				slog.Info("Server stopped")
				return nil
			case err := <-serverErr:
				return err
			}
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "8888", "Port to listen on")

	return cmd
}
