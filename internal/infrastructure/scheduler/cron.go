package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Job runs under a context that is cancelled when the scheduler stops.
type Job func(ctx context.Context) error

type Scheduler struct {
	c      *cron.Cron
	ctx    context.Context
	cancel context.CancelFunc
}

// New builds a scheduler whose internal messages go to logrus. Overlapping
// runs of the same job are skipped.
func New() *Scheduler {
	logger := cron.VerbosePrintfLogger(logrus.StandardLogger().WithField("component", "cron"))
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		c: cron.New(
			cron.WithLogger(logger),
			cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
		),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Add registers job on spec (standard 5-field cron or descriptors like @daily).
func (s *Scheduler) Add(name, spec string, job Job) error {
	_, err := s.c.AddFunc(spec, func() {
		start := time.Now()
		entry := logrus.WithField("job", name)
		if err := job(s.ctx); err != nil {
			entry.WithError(err).Error("scheduled job failed")
			return
		}
		entry.WithField("took_ms", time.Since(start).Milliseconds()).Info("scheduled job done")
	})
	if err != nil {
		return fmt.Errorf("schedule %s (%q): %w", name, spec, err)
	}
	return nil
}

func (s *Scheduler) Start() { s.c.Start() }

// Stop cancels running jobs and waits for them, up to ctx.
func (s *Scheduler) Stop(ctx context.Context) {
	s.cancel()
	done := s.c.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
	}
}
