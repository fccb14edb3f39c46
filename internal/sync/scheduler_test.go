package sync

import (
	"context"
	"errors"
	"io"
	"log/slog"
	stdsync "sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestScheduler_RunJob(t *testing.T) {
	s := NewScheduler(testLogger())
	var calls int
	s.Register(Job{
		Name: "recount",
		Run: func(ctx context.Context) (Report, error) {
			calls++
			return Report{Processed: 7}, nil
		},
	})

	report, err := s.RunJob(context.Background(), "recount")
	require.NoError(t, err)
	assert.Equal(t, 7, report.Processed)
	assert.Equal(t, 1, calls)
}

func TestScheduler_RunJob_Unknown(t *testing.T) {
	s := NewScheduler(testLogger())

	_, err := s.RunJob(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrUnknownJob)
}

func TestScheduler_SingleFlight(t *testing.T) {
	s := NewScheduler(testLogger())

	started := make(chan struct{})
	release := make(chan struct{})
	var startedOnce stdsync.Once
	s.Register(Job{
		Name: "slow",
		Run: func(ctx context.Context) (Report, error) {
			startedOnce.Do(func() { close(started) })
			<-release
			return Report{}, nil
		},
	})

	var wg stdsync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, _ = s.RunJob(context.Background(), "slow")
	}()

	<-started
	_, err := s.RunJob(context.Background(), "slow")
	assert.ErrorIs(t, err, ErrJobRunning)

	close(release)
	wg.Wait()

	// After the first run completes the job is runnable again.
	done := make(chan struct{})
	go func() {
		_, _ = s.RunJob(context.Background(), "slow")
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("job did not rerun after completion")
	}
}

func TestScheduler_JobsReportsStatusInRegistrationOrder(t *testing.T) {
	s := NewScheduler(testLogger())
	s.Register(Job{Name: "b-job", Interval: time.Hour, Run: func(ctx context.Context) (Report, error) { return Report{}, nil }})
	s.Register(Job{Name: "a-job", Run: func(ctx context.Context) (Report, error) { return Report{Processed: 2}, nil }})

	statuses := s.Jobs()
	require.Len(t, statuses, 2)
	assert.Equal(t, "b-job", statuses[0].Name)
	assert.Equal(t, time.Hour, statuses[0].Interval)
	assert.Equal(t, "a-job", statuses[1].Name)
	assert.Nil(t, statuses[1].LastRun)

	_, err := s.RunJob(context.Background(), "a-job")
	require.NoError(t, err)

	statuses = s.Jobs()
	require.NotNil(t, statuses[1].LastRun)
	assert.Equal(t, 2, statuses[1].LastRun.Processed)
	assert.False(t, statuses[1].Running)
}

func TestScheduler_FailedRunIsRecorded(t *testing.T) {
	s := NewScheduler(testLogger())
	bang := errors.New("bang")
	s.Register(Job{Name: "fails", Run: func(ctx context.Context) (Report, error) {
		return Report{Failures: 1}, bang
	}})

	report, err := s.RunJob(context.Background(), "fails")
	assert.ErrorIs(t, err, bang)
	assert.Equal(t, 1, report.Failures)

	statuses := s.Jobs()
	require.NotNil(t, statuses[0].LastRun)
	assert.ErrorIs(t, statuses[0].LastRun.Err, bang)
}

func TestScheduler_NotifierDeliversRunsInOrder(t *testing.T) {
	s := NewScheduler(testLogger())
	var runs []JobRun
	s.Subscribe(func(run JobRun) { runs = append(runs, run) })

	s.Register(Job{Name: "one", Run: func(ctx context.Context) (Report, error) {
		return Report{Processed: 1}, nil
	}})

	_, err := s.RunJob(context.Background(), "one")
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "one", runs[0].Job)
	assert.Equal(t, 1, runs[0].Processed)
}
