package sync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	stdsync "sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler control errors.
var (
	ErrUnknownJob = errors.New("sync: unknown job")
	ErrJobRunning = errors.New("sync: job already running")
)

// JobFunc executes one run of a job.
type JobFunc func(ctx context.Context) (Report, error)

// Job is a named unit of recomputation. Jobs with a positive Interval run on
// that fixed cadence; jobs with Interval 0 are manual-only.
type Job struct {
	Name     string
	Interval time.Duration
	Run      JobFunc
}

// JobStatus is the control-surface view of a registered job.
type JobStatus struct {
	Name     string        `json:"name"`
	Interval time.Duration `json:"interval"`
	Running  bool          `json:"running"`
	LastRun  *JobRun       `json:"last_run,omitempty"`
}

type registeredJob struct {
	job     Job
	running bool
	lastRun *JobRun
}

// Scheduler runs jobs on fixed intervals with single-flight semantics: a
// tick that fires while the same job's previous run is still going is a
// no-op. Different jobs run concurrently; they touch disjoint derived
// fields, so no cross-job locking is needed.
type Scheduler struct {
	cron     *cron.Cron
	logger   *slog.Logger
	notifier *Notifier

	mu      stdsync.Mutex
	jobs    map[string]*registeredJob
	order   []string
	baseCtx context.Context
}

// NewScheduler creates an empty scheduler.
func NewScheduler(logger *slog.Logger) *Scheduler {
	s := &Scheduler{
		logger:   logger,
		notifier: &Notifier{},
		jobs:     make(map[string]*registeredJob),
		baseCtx:  context.Background(),
	}
	s.cron = cron.New(cron.WithChain(cron.Recover(cronLogger{logger})))
	s.notifier.Subscribe(observeRun)
	return s
}

// Subscribe registers a listener for job run notifications.
func (s *Scheduler) Subscribe(l Listener) {
	s.notifier.Subscribe(l)
}

// Register adds a job. Jobs with a positive interval are scheduled; all
// registered jobs are runnable on demand through RunJob.
func (s *Scheduler) Register(job Job) {
	s.mu.Lock()
	s.jobs[job.Name] = &registeredJob{job: job}
	s.order = append(s.order, job.Name)
	s.mu.Unlock()

	if job.Interval > 0 {
		name := job.Name
		s.cron.Schedule(cron.Every(job.Interval), cron.FuncJob(func() {
			if _, err := s.runJob(s.baseCtx, name); err != nil && !errors.Is(err, ErrJobRunning) {
				// Failures are already logged by runJob; the timer stays alive.
				return
			}
		}))
	}
}

// Start begins the timers. The context is the base context for all
// scheduled runs; canceling it does not stop the timers, Stop does.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	s.baseCtx = ctx
	n := len(s.order)
	s.mu.Unlock()

	s.cron.Start()
	s.logger.Info("sync scheduler started", slog.Int("jobs", n))
}

// Stop halts the timers and waits for in-flight runs started by cron to
// finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Info("sync scheduler stopped")
}

// RunJob runs one job immediately, outside its fixed cadence. It returns
// ErrJobRunning if that job is already in flight and ErrUnknownJob for an
// unregistered name.
func (s *Scheduler) RunJob(ctx context.Context, name string) (Report, error) {
	return s.runJob(ctx, name)
}

// Jobs returns the status of every registered job, in registration order.
func (s *Scheduler) Jobs() []JobStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]JobStatus, 0, len(s.order))
	for _, name := range s.order {
		reg := s.jobs[name]
		status := JobStatus{Name: name, Interval: reg.job.Interval, Running: reg.running}
		if reg.lastRun != nil {
			run := *reg.lastRun
			status.LastRun = &run
		}
		out = append(out, status)
	}
	return out
}

func (s *Scheduler) runJob(ctx context.Context, name string) (Report, error) {
	s.mu.Lock()
	reg, ok := s.jobs[name]
	if !ok {
		s.mu.Unlock()
		return Report{}, fmt.Errorf("%w: %s", ErrUnknownJob, name)
	}
	if reg.running {
		s.mu.Unlock()
		s.logger.Info("job still running, skipping tick", slog.String("job", name))
		return Report{}, ErrJobRunning
	}
	reg.running = true
	s.mu.Unlock()

	start := time.Now()
	s.logger.Info("job started", slog.String("job", name))

	report, err := reg.job.Run(ctx)

	run := JobRun{
		Job:       name,
		Start:     start,
		Duration:  time.Since(start),
		Processed: report.Processed,
		Failures:  report.Failures,
		Err:       err,
	}

	s.mu.Lock()
	reg.running = false
	reg.lastRun = &run
	s.mu.Unlock()

	if err != nil {
		s.logger.Error("job failed",
			slog.String("job", name),
			slog.Duration("duration", run.Duration),
			slog.String("error", err.Error()),
		)
	} else {
		s.logger.Info("job finished",
			slog.String("job", name),
			slog.Duration("duration", run.Duration),
			slog.Int("processed", report.Processed),
			slog.Int("failures", report.Failures),
		)
	}

	s.notifier.Publish(run)
	return report, err
}

// cronLogger adapts slog to the cron logger interface; it is only used for
// panic recovery output.
type cronLogger struct {
	logger *slog.Logger
}

func (c cronLogger) Info(msg string, keysAndValues ...any) {
	c.logger.Debug(msg, slog.Any("cron", keysAndValues))
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...any) {
	c.logger.Error(msg, slog.String("error", err.Error()), slog.Any("cron", keysAndValues))
}
