package scheduler

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manav03panchal/smarttask/internal/errors"
	"github.com/manav03panchal/smarttask/internal/model"
	"github.com/manav03panchal/smarttask/internal/notify"
)

type fakeChecker struct {
	mu     sync.Mutex
	digest *notify.Digest
	marked int
	err    error
	days   []int
}

func (f *fakeChecker) Check(days int) (*notify.Digest, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.days = append(f.days, days)
	if f.err != nil {
		return nil, 0, f.err
	}
	marked := f.marked
	f.marked = 0
	return f.digest, marked, nil
}

func (f *fakeChecker) set(d *notify.Digest, marked int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.digest, f.marked = d, marked
}

func digest(day string, overdue ...int64) *notify.Digest {
	d := &notify.Digest{Day: day}
	for _, id := range overdue {
		d.Overdue = append(d.Overdue, &model.Task{ID: id, Title: fmt.Sprintf("task %d", id)})
	}
	return d
}

type recorder struct {
	mu      sync.Mutex
	reports []Report
}

func (r *recorder) notify(rep Report) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reports = append(r.reports, rep)
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.reports)
}

func TestNew_InvalidSchedule(t *testing.T) {
	_, err := New(&fakeChecker{}, Options{Schedule: "every minute please"})
	require.Error(t, err)
	ue, ok := errors.AsUserError(err)
	require.True(t, ok)
	assert.Equal(t, "schedule", ue.Field)
}

func TestRunOnce_NotifiesOnChange(t *testing.T) {
	checker := &fakeChecker{digest: digest("2026-03-10", 1)}
	rec := &recorder{}
	at := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	s, err := New(checker, Options{
		Schedule:    "@every 1m",
		DueSoonDays: 5,
		Notify:      rec.notify,
		Now:         func() time.Time { return at },
	})
	require.NoError(t, err)

	d, changed, err := s.RunOnce()
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Len(t, d.Overdue, 1)
	require.Equal(t, 1, rec.count())
	assert.Equal(t, at, rec.reports[0].At)

	_, changed, err = s.RunOnce()
	require.NoError(t, err)
	assert.False(t, changed, "same digest is not reported twice")
	assert.Equal(t, 1, rec.count())

	checker.set(digest("2026-03-10", 1, 2), 0)
	_, changed, err = s.RunOnce()
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, 2, rec.count())

	assert.Equal(t, []int{5, 5, 5}, checker.days)
	assert.Equal(t, 3, s.Runs())
	assert.Equal(t, at, s.LastCheck())
}

func TestRunOnce_MarkedAlwaysReported(t *testing.T) {
	checker := &fakeChecker{digest: digest("2026-03-10", 1)}
	rec := &recorder{}
	s, err := New(checker, Options{Schedule: "@every 1m", Notify: rec.notify})
	require.NoError(t, err)

	_, _, err = s.RunOnce()
	require.NoError(t, err)

	checker.set(digest("2026-03-10", 1), 1)
	_, changed, err := s.RunOnce()
	require.NoError(t, err)
	assert.True(t, changed)
	require.Equal(t, 2, rec.count())
	assert.Equal(t, 1, rec.reports[1].Marked)
}

func TestRunOnce_Error(t *testing.T) {
	checker := &fakeChecker{err: errors.ErrDatabaseCorrupted}
	rec := &recorder{}
	s, err := New(checker, Options{Schedule: "@every 1m", Notify: rec.notify})
	require.NoError(t, err)

	_, _, err = s.RunOnce()
	assert.ErrorIs(t, err, errors.ErrDatabaseCorrupted)
	assert.Zero(t, rec.count())
	assert.Zero(t, s.Runs())
}

func TestStartStop(t *testing.T) {
	checker := &fakeChecker{digest: digest("2026-03-10", 7)}
	rec := &recorder{}
	s, err := New(checker, Options{Schedule: "@every 1s", Notify: rec.notify})
	require.NoError(t, err)

	assert.True(t, s.NextRun().IsZero())
	s.Start()
	assert.False(t, s.NextRun().IsZero())

	assert.Eventually(t, func() bool { return s.Runs() > 0 }, 5*time.Second, 50*time.Millisecond)
	s.Stop()
	assert.Equal(t, 1, rec.count())
}

func TestScheduleFor(t *testing.T) {
	assert.Equal(t, "@every 1m0s", ScheduleFor(time.Minute))
	assert.Equal(t, "@every 30s", ScheduleFor(30*time.Second))

	_, err := New(&fakeChecker{}, Options{Schedule: ScheduleFor(90 * time.Second)})
	assert.NoError(t, err)
}

func TestFingerprint(t *testing.T) {
	a := digest("2026-03-10", 1, 2)
	b := digest("2026-03-10", 1, 2)
	assert.Equal(t, Fingerprint(a), Fingerprint(b))

	assert.NotEqual(t, Fingerprint(a), Fingerprint(digest("2026-03-11", 1, 2)))
	assert.NotEqual(t, Fingerprint(a), Fingerprint(digest("2026-03-10", 1)))

	moved := digest("2026-03-10", 1)
	moved.DueToday = []*model.Task{{ID: 2}}
	assert.NotEqual(t, Fingerprint(a), Fingerprint(moved))
}
