package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"niche/internal/apihandlers"
)

const shutdownTimeout = 10 * time.Second

var (
	serveAddr string // Listen address
	servePort int    // Listen port
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run niche as an HTTP API server",
	Long: `Starts an HTTP server exposing categorization, creator records and background
jobs via a JSON API, plus /health and /metrics.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}
		cfg := appInstance.Config

		addr := cfg.Server.Addr
		if cmd.Flags().Changed("addr") {
			addr = serveAddr
		}
		port := cfg.Server.Port
		if cmd.Flags().Changed("port") {
			port = servePort
		}
		listenAddr := addr + ":" + strconv.Itoa(port)

		srv := &http.Server{
			Addr:              listenAddr,
			Handler:           apihandlers.NewRouter(appInstance),
			ReadHeaderTimeout: 10 * time.Second,
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			log.Infof("Starting niche API server on http://%s", listenAddr)
			errCh <- srv.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			log.Errorf("Failed to run API server: %v", err)
			return fmt.Errorf("failed to run API server: %w", err)
		case <-ctx.Done():
		}

		log.Info("Shutdown signal received, stopping API server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("API server shutdown: %w", err)
		}
		log.Info("niche API server stopped.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Address to listen on (default server.addr)")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default server.port)")
}
