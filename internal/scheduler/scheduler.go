// Package scheduler re-runs the due-date check on a cron schedule and
// reports the digest whenever it changes.
package scheduler

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/manav03panchal/smarttask/internal/errors"
	"github.com/manav03panchal/smarttask/internal/logging"
	"github.com/manav03panchal/smarttask/internal/model"
	"github.com/manav03panchal/smarttask/internal/notify"
)

// Checker runs one due-date check. *app.Controller satisfies it.
type Checker interface {
	Check(dueSoonDays int) (*notify.Digest, int, error)
}

// Report is delivered to the notifier after a check whose digest differs
// from the previous one.
type Report struct {
	Digest *notify.Digest
	Marked int
	At     time.Time
}

// Options configures a Scheduler.
type Options struct {
	// Schedule is a standard five-field cron expression or a descriptor
	// such as "@every 1m".
	Schedule    string
	DueSoonDays int
	// Notify receives changed digests. It runs on the cron goroutine.
	Notify func(Report)
	Logger *slog.Logger
	Now    func() time.Time
}

// Scheduler owns a cron instance with a single check job.
type Scheduler struct {
	cron    *cron.Cron
	checker Checker
	opts    Options
	logger  *slog.Logger
	entry   cron.EntryID

	mu          sync.Mutex
	fingerprint string
	runs        int
	lastCheck   time.Time
}

// ScheduleFor turns a refresh interval into a cron descriptor.
func ScheduleFor(interval time.Duration) string {
	return "@every " + interval.String()
}

// New validates the schedule and registers the check job. The job does not
// fire until Start.
func New(checker Checker, opts Options) (*Scheduler, error) {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Logger()
	}

	s := &Scheduler{
		cron: cron.New(cron.WithChain(
			cron.Recover(cron.DiscardLogger),
			cron.SkipIfStillRunning(cron.DiscardLogger),
		)),
		checker: checker,
		opts:    opts,
		logger:  logger,
	}

	id, err := s.cron.AddFunc(opts.Schedule, func() {
		if _, _, err := s.RunOnce(); err != nil {
			s.logger.Warn("scheduled check failed", logging.KeyError, err)
		}
	})
	if err != nil {
		return nil, errors.NewUserErrorWithField("schedule", opts.Schedule,
			"Invalid schedule",
			`Use a cron expression like "*/5 * * * *" or a descriptor like "@every 1m"`).WithCause(err)
	}
	s.entry = id
	return s, nil
}

// RunOnce performs a check now. changed reports whether the digest differs
// from the last one seen; the notifier is only called in that case.
func (s *Scheduler) RunOnce() (*notify.Digest, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.opts.Now()
	digest, marked, err := s.checker.Check(s.opts.DueSoonDays)
	if err != nil {
		return nil, false, err
	}
	s.runs++
	s.lastCheck = now

	fp := Fingerprint(digest)
	changed := fp != s.fingerprint || marked > 0
	s.fingerprint = fp

	s.logger.Debug("due-date check",
		logging.KeyCount, len(digest.Overdue)+len(digest.DueToday)+len(digest.DueSoon),
		"marked", marked,
		"changed", changed)

	if changed && s.opts.Notify != nil {
		s.opts.Notify(Report{Digest: digest, Marked: marked, At: now})
	}
	return digest, changed, nil
}

// Start begins running the job in the background.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Debug("scheduler started", "schedule", s.opts.Schedule, "next", s.NextRun())
}

// Stop halts the cron loop and waits for a running check to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Debug("scheduler stopped", "runs", s.Runs())
}

// NextRun is zero before Start.
func (s *Scheduler) NextRun() time.Time {
	return s.cron.Entry(s.entry).Next
}

// Runs counts completed checks.
func (s *Scheduler) Runs() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runs
}

// LastCheck is the time of the most recent completed check.
func (s *Scheduler) LastCheck() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastCheck
}

// Fingerprint identifies a digest by its day and the ids in each group.
func Fingerprint(d *notify.Digest) string {
	var b strings.Builder
	b.WriteString(d.Day)
	for _, group := range [][]*model.Task{d.Overdue, d.DueToday, d.DueSoon} {
		b.WriteByte('|')
		for _, t := range group {
			fmt.Fprintf(&b, "%d,", t.ID)
		}
	}
	return b.String()
}
