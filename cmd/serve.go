package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/georgiajedi/catalog/internal/config"
	"github.com/georgiajedi/catalog/internal/handlers"
	"github.com/spf13/cobra"
)

func newServeCmd(configPath *string) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the catalog web server",
		Long: `Starts the catalog API and static site on the specified port.

Endpoints: /api/records (filtered table pages), /api/image (watermarked
renders), /api/export (downloads), /api/admin (session flag).`,
		Example: `  # Start server on default port 8888
  catalog serve

  # Start server on custom port
  catalog serve --port 3000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			if port != "" {
				cfg.Port = port
			}

			handler := handlers.New(cfg)

			// Set up routes
			mux := http.NewServeMux()
			mux.HandleFunc("/api/records", handler.HandleRecords)
			mux.HandleFunc("/api/image", handler.HandleImage)
			mux.HandleFunc("/api/export", handler.HandleExport)
			mux.HandleFunc("/api/admin", handler.HandleAdmin)
			mux.HandleFunc("/", handler.HandleStatic)
			mux.HandleFunc("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
				if _, err := w.Write([]byte("OK")); err != nil {
					slog.Error("Unable to write healthcheck", "err", err)
				}
			})

			addr := ":" + cfg.Port
			server := &http.Server{
				Addr:    addr,
				Handler: mux,
			}

			// Start server in goroutine
			serverErr := make(chan error, 1)
			go func() {
				slog.Info("Catalog available", "addr", addr, "url", "http://localhost"+addr)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverErr <- err
				}
			}()

			// Wait for context cancellation (Ctrl+C) or server error
			select {
			case <-cmd.Context().Done():
				slog.Info("Shutting down server...")
				// Give server 5 seconds to shut down gracefully
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

	cmd.Flags().StringVarP(&port, "port", "p", "", "Port to listen on (overrides config)")

	return cmd
}
