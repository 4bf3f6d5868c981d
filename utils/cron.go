package utils

import (
	"fmt"
	"sync"

	"github.com/go-home-io/sip-bridge/plugins/common"
	"github.com/go-home-io/sip-bridge/providers"
	"gopkg.in/robfig/cron.v2"
)

const logCronSystem = "cron"

// Scheduler shared by the cache flush and valve countdowns.
type cronProvider struct {
	sync.Mutex
	logger  common.ILoggerProvider
	cron    *cron.Cron
	stopped bool
}

// NewCron creates a new scheduler.
// Panicking jobs are logged and keep their schedule.
func NewCron(logger common.ILoggerProvider) providers.ICronProvider {
	p := &cronProvider{
		logger: logger,
		cron:   cron.New(),
	}

	p.cron.Start()
	return p
}

// AddFunc schedules a new job.
func (p *cronProvider) AddFunc(spec string, cmd func()) (int, error) {
	p.Lock()
	defer p.Unlock()

	if p.stopped {
		return 0, &ErrCronStopped{Spec: spec}
	}

	id, err := p.cron.AddFunc(spec, p.guard(spec, cmd))
	return int(id), err
}

// RemoveFunc removes scheduled job from cron.
func (p *cronProvider) RemoveFunc(id int) {
	p.cron.Remove(cron.EntryID(id))
}

// Stop halts the scheduler. Running jobs are not interrupted.
func (p *cronProvider) Stop() {
	p.Lock()
	defer p.Unlock()

	if p.stopped {
		return
	}

	p.stopped = true
	p.cron.Stop()
	p.logger.Debug("Scheduler stopped", common.LogSystemToken, logCronSystem)
}

func (p *cronProvider) guard(spec string, cmd func()) func() {
	return func() {
		defer func() {
			if r := recover(); r != nil {
				p.logger.Error("Scheduled job failed", &ErrCronJobPanic{Spec: spec, Cause: fmt.Sprint(r)},
					common.LogSystemToken, logCronSystem)
			}
		}()

		cmd()
	}
}
