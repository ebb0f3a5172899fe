package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/KirkDiggler/booster-sim/internal/handlers/web"
)

var (
	httpAddr    string
	corsOrigins []string
)

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Start the HTTP server",
	Long:  `Serve packs as JSON under /sets and as an HTML page at /.`,
	RunE:  runWeb,
}

func init() {
	webCmd.Flags().StringVar(&httpAddr, "addr", "", "listen address (overrides BOOSTER_HTTP_ADDR)")
	webCmd.Flags().StringSliceVar(&corsOrigins, "cors-origin", nil, "allowed CORS origins (default any)")
}

func runWeb(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.shutdown()
	a.warm(ctx)

	if !a.logger.Enabled(ctx, slog.LevelDebug) {
		gin.SetMode(gin.ReleaseMode)
	}
	router, err := web.NewRouter(&web.Config{
		PacksService: a.packs,
		Logger:       a.logger,
		AllowOrigins: corsOrigins,
	})
	if err != nil {
		return fmt.Errorf("failed to create web handler: %w", err)
	}

	addr := cfg.HTTPAddr
	if httpAddr != "" {
		addr = httpAddr
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting", "addr", addr, "default_set", a.defaultSet.Code)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("failed to serve: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			a.logger.Warn("graceful shutdown failed", "error", err)
			return srv.Close()
		}
		return nil
	case err := <-errChan:
		return err
	}
}
