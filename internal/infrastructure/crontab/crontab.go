package crontab

import (
	"context"
	"fmt"
	"time"

	"github.com/mileusna/crontab"
	"go.opentelemetry.io/otel/attribute"

	"crm-server/internal/config"
	"crm-server/internal/domain/task"
	"crm-server/internal/infrastructure/logger"
	"crm-server/internal/infrastructure/metrics"
	"crm-server/internal/infrastructure/observability"
	"crm-server/internal/utils/platformerrors"
)

const (
	DefaultReminderInterval = 15               // in minutes
	CronJobTimeout          = 10 * time.Minute // Timeout for each cron job execution
)

type Crontab struct {
	ctab  *crontab.Crontab
	tasks *task.Service
}

func NewCrontab(tasks *task.Service) *Crontab {
	return &Crontab{
		ctab:  crontab.New(),
		tasks: tasks,
	}
}

func (c *Crontab) Run(ctx context.Context) error {
	log := logger.GetLogger()

	cfg := config.GetGlobal()
	if cfg != nil && cfg.TaskReminderEnabled {
		// execute once on server start
		c.sweepDueTasks(ctx, cfg.TaskReminderWindow)

		interval := cfg.TaskReminderIntervalMinutes
		if interval <= 0 {
			interval = DefaultReminderInterval
		}

		cronExpr := fmt.Sprintf("*/%d * * * *", interval)
		window := cfg.TaskReminderWindow
		if err := c.ctab.AddJob(cronExpr, func() {
			jobCtx, cancel := context.WithTimeout(context.Background(), CronJobTimeout)
			defer cancel()
			c.sweepDueTasks(jobCtx, window)
		}); err != nil {
			return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to add task reminder job")
		}
		log.Warn().Msgf("Task reminder sweep scheduled: every %d minute(s)", interval)
	}

	<-ctx.Done()
	c.ctab.Shutdown()
	return nil
}

func (c *Crontab) sweepDueTasks(ctx context.Context, window time.Duration) {
	log := logger.GetLogger()

	ctx, span := observability.StartSpan(ctx, "crontab", "task.reminder_sweep")
	defer span.End()
	observability.AddSpanAttributes(ctx, attribute.String("reminder.window", window.String()))

	sent, err := c.tasks.RemindDueWithin(ctx, window)
	if err != nil {
		observability.RecordError(ctx, err)
		log.Error().Err(err).Msg("Failed to sweep due tasks")
		metrics.RecordTaskReminder("error")
		return
	}
	observability.AddSpanAttributes(ctx, attribute.Int("reminder.sent", sent))

	if sent > 0 {
		log.Info().Msgf("Delivered %d task reminder(s)", sent)
	}
	for i := 0; i < sent; i++ {
		metrics.RecordTaskReminder("sent")
	}
}
