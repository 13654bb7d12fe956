package scheduler

import (
	"context"

	"github.com/beldeveloper/go-errors-context"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Job is one named entry of the schedule table. Spec accepts either a fixed
// interval ("@every 1h") or a cron expression ("30 2 * * 6").
type Job struct {
	Name string
	Spec string
	Do   func(ctx context.Context) error
}

// NewCron creates a new instance of the periodic driver.
func NewCron() Cron {
	return Cron{cron: cron.New()}
}

// Cron fires the schedule table built once at startup; it only enqueues or
// runs reconciliation scans and never waits on worker availability.
type Cron struct {
	cron *cron.Cron
}

// Register installs the schedule table. It must be called once before Start.
func (c Cron) Register(ctx context.Context, jobs []Job) error {
	for _, j := range jobs {
		j := j
		_, err := c.cron.AddFunc(j.Spec, func() {
			err := j.Do(ctx)
			if err != nil {
				log.Error().Err(err).Str("job", j.Name).Msg("periodic job failed")
				return
			}
			log.Debug().Str("job", j.Name).Msg("periodic job finished")
		})
		if err != nil {
			return errors.WrapContext(err, errors.Context{
				Path:   "service.scheduler.Cron.Register",
				Params: errors.Params{"job": j.Name, "spec": j.Spec},
			})
		}
	}
	return nil
}

// Start launches the driver in its own goroutine.
func (c Cron) Start() {
	c.cron.Start()
}

// Stop halts the driver; in-flight jobs complete on their own.
func (c Cron) Stop() {
	c.cron.Stop()
}
