package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"life-dashboard/internal/api"
	"life-dashboard/internal/bot"
	"life-dashboard/internal/config"
	"life-dashboard/internal/handler"
	"life-dashboard/internal/service"
)

const (
	shutdownTimeout = 10 * time.Second
	jobTimeout      = 30 * time.Second
)

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API, scheduler and optional Telegram bot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := rootOpts.load()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.HTTP.Addr = addr
			}
			return runServe(cmd.Context(), cfg, logger)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address override, e.g. :3001")
	return cmd
}

func runServe(ctx context.Context, cfg config.Config, logger *log.Logger) error {
	a, err := newApp(cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	scheduler := service.NewSchedulerService(a.loc, logger.WithPrefix("cron"))
	if err := scheduleJobs(ctx, scheduler, cfg, a, logger); err != nil {
		return err
	}
	scheduler.Start()
	defer scheduler.Stop()

	h := handler.NewHandler(a.services, a.now, logger.WithPrefix("http"))
	server := &http.Server{
		Addr: cfg.HTTP.Addr,
		Handler: api.SetupRoutes(h, api.Options{
			AllowedOrigins: cfg.HTTP.CORSOrigins,
			Logger:         logger.WithPrefix("http"),
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server started", "addr", cfg.HTTP.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	logger.Info("shutdown complete")
	return nil
}

// scheduleJobs registers the weather refresh and the daily report. A zero
// refresh interval disables the refresh. The bot, when configured, polls
// until ctx ends.
func scheduleJobs(ctx context.Context, scheduler *service.SchedulerService, cfg config.Config, a *app, logger *log.Logger) error {
	if cfg.Weather.RefreshInterval > 0 {
		if _, err := scheduler.ScheduleInterval(cfg.Weather.RefreshInterval, func() {
			jobCtx, cancel := context.WithTimeout(ctx, jobTimeout)
			defer cancel()
			if err := a.services.Weather.Refresh(jobCtx); err != nil {
				logger.Warn("weather refresh", "err", err)
			}
		}); err != nil {
			return fmt.Errorf("schedule weather refresh: %w", err)
		}
	}

	report := func(jobCtx context.Context) error {
		r, err := a.services.Reports.Build(jobCtx)
		if err != nil {
			return err
		}
		logger.Info("due report", "overdue", len(r.Overdue), "due_soon", len(r.DueSoon))
		return nil
	}

	if cfg.TelegramEnabled() {
		telegramBot, err := bot.New(cfg.Telegram.Token, bot.Deps{
			Chores:  a.services.Chores,
			Plants:  a.services.Plants,
			Reports: a.services.Reports,
		}, cfg.Telegram.ChatIDs, logger.WithPrefix("bot"))
		if err != nil {
			return err
		}
		report = telegramBot.SendDailyReports
		go func() {
			if err := telegramBot.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("bot stopped with error", "err", err)
			}
		}()
	}

	id, err := scheduler.ScheduleDaily(cfg.Report.Time, func() {
		jobCtx, cancel := context.WithTimeout(ctx, jobTimeout)
		defer cancel()
		if err := report(jobCtx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("daily report", "err", err)
		}
	})
	if err != nil {
		return fmt.Errorf("schedule daily report: %w", err)
	}
	logger.Debug("daily report scheduled", "entry", id, "time", cfg.Report.Time)
	return nil
}
