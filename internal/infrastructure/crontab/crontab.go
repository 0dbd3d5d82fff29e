package crontab

import (
	"context"
	"fmt"

	"github.com/mileusna/crontab"

	"tripmind/internal/config"
	"tripmind/internal/domain/planner"
	"tripmind/internal/infrastructure/logger"
	"tripmind/internal/infrastructure/metrics"
	"tripmind/internal/utils/platformerrors"
)

const defaultSweepIntervalMinutes = 10

type Crontab struct {
	ctab     *crontab.Crontab
	sessions *planner.SessionStore
}

func NewCrontab(sessions *planner.SessionStore) *Crontab {
	return &Crontab{
		ctab:     crontab.New(),
		sessions: sessions,
	}
}

func (c *Crontab) Run(ctx context.Context) error {
	log := logger.GetLogger()

	sweepInterval := defaultSweepIntervalMinutes
	if cfg := config.GetGlobal(); cfg != nil && cfg.SessionSweepIntervalMinutes > 0 {
		sweepInterval = cfg.SessionSweepIntervalMinutes
	}

	cronExpr := fmt.Sprintf("*/%d * * * *", sweepInterval)
	if err := c.ctab.AddJob(cronExpr, func() {
		remaining := c.sessions.Sweep()
		metrics.SetActiveSessions(remaining)
		log.Debug().Int("active_sessions", remaining).Msg("swept expired dialogue sessions")
	}); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerInfrastructure, err, "failed to add session sweep job")
	}

	// Schedule environment reload job
	if err := c.ctab.AddJob("* * * * *", func() {
		if _, err := config.Load(); err != nil {
			log.Error().Err(err).Msg("env reload failed")
		}
	}); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerInfrastructure, err, "failed to add env reload job")
	}

	<-ctx.Done()
	c.ctab.Shutdown()
	return nil
}
