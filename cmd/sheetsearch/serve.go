package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gcbaptista/go-sheet-search/api"
	"github.com/gcbaptista/go-sheet-search/config"
	"github.com/gcbaptista/go-sheet-search/internal/engine"
	"github.com/gcbaptista/go-sheet-search/internal/workbook"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(v *viper.Viper) *cobra.Command {
	var preload string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Example: `  sheetsearch serve                       # Start server on default port 8080
  sheetsearch serve --port 9000           # Start server on port 9000
  sheetsearch serve --load inventory.xlsx # Load a workbook at startup`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadWith(v, cfgFile)
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg, preload)
		},
	}
	cmd.Flags().String("port", config.DefaultPort, "port to run the server on")
	cmd.Flags().StringVar(&preload, "load", "", "workbook to load at startup")
	_ = v.BindPFlag("port", cmd.Flags().Lookup("port"))
	return cmd
}

func serve(ctx context.Context, cfg config.ServerConfig, preload string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	session := engine.NewSession(cfg.Search, cfg.JobWorkers)
	defer session.Close()

	if preload != "" {
		wb, err := workbook.Open(preload)
		if err != nil {
			return err
		}
		if _, err := session.Load(ctx, wb); err != nil {
			return err
		}
	}

	router := gin.Default()
	api.SetupRoutes(router, session, cfg.MaxUploadBytes)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Starting server on port %s...", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Printf("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	return nil
}
