package commands

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/livp123/mongolog/internal/shipper"
	"github.com/livp123/mongolog/internal/utils/logger"
)

var shipCmd = &cobra.Command{
	Use:   "ship",
	Short: "Tail the configured files and forward every line",
	// Short: 跟踪配置的文件并转发每一行
	Long: `Tail every file listed under ship.files and append one event per line
until SIGINT or SIGTERM. Serves /metrics when metrics.enabled is set.
跟踪 ship.files 中列出的每个文件，每行追加一个事件，直到收到 SIGINT 或 SIGTERM。
启用 metrics.enabled 时提供 /metrics。`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if len(cfg.Ship.Files) == 0 {
			return errors.New("no files configured under ship.files")
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		log := logger.Get(ctx)

		app, err := newAppender(ctx, cfg)
		if err != nil {
			return err
		}

		var srv *http.Server
		if cfg.Metrics.Enabled {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			srv = &http.Server{
				Addr:              cfg.Metrics.Addr,
				Handler:           mux,
				ReadHeaderTimeout: 5 * time.Second,
			}
			go func() {
				log.Infow("📊 Metrics server listening", "addr", cfg.Metrics.Addr)
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Errorw("Metrics server failed", "error", err)
				}
			}()
		}

		s := shipper.New(app, cfg.Ship.Files)
		s.Start(ctx)
		log.Infow("🚚 Shipping", "files", len(cfg.Ship.Files), "collection", cfg.Mongo.Collection)

		<-ctx.Done()
		log.Info("👋 Shutting down...")

		s.Stop()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if srv != nil {
			_ = srv.Shutdown(shutdownCtx)
		}
		st := app.Stats()
		log.Infow("Shipper stopped", "appended", st.Appended, "failed", st.Failed, "suppressed", st.Suppressed)
		return app.Close(shutdownCtx)
	},
}
