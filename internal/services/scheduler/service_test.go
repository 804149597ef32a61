package scheduler

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
)

func newTestScheduler() *Service {
	return NewService(arbor.NewLogger())
}

func TestStartValidatesInput(t *testing.T) {
	tests := []struct {
		name     string
		cronExpr string
		task     func()
	}{
		{"empty expression", "", func() {}},
		{"invalid expression", "not a cron", func() {}},
		{"nil task", "* * * * *", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestScheduler()
			err := s.Start(tt.cronExpr, tt.task)
			assert.Error(t, err)
			assert.False(t, s.IsRunning())
		})
	}
}

func TestStartTwiceFails(t *testing.T) {
	s := newTestScheduler()
	defer s.Stop()

	require.NoError(t, s.Start("0 7 * * MON-FRI", func() {}))
	require.True(t, s.IsRunning())

	err := s.Start("0 7 * * MON-FRI", func() {})
	assert.Error(t, err)
}

func TestStopBeforeStartIsNoop(t *testing.T) {
	s := newTestScheduler()
	s.Stop()
	s.Stop()
	assert.False(t, s.IsRunning())
}

func TestStopHaltsScheduler(t *testing.T) {
	s := newTestScheduler()
	require.NoError(t, s.Start("0 7 * * *", func() {}))

	s.Stop()
	assert.False(t, s.IsRunning())
}

func TestSchedulerFiresTask(t *testing.T) {
	s := newTestScheduler()
	defer s.Stop()

	fired := make(chan struct{}, 1)
	require.NoError(t, s.Start("@every 10ms", func() {
		select {
		case fired <- struct{}{}:
		default:
		}
	}))

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("task did not fire within 2s")
	}
}

func TestOverlappingRunsAreSkipped(t *testing.T) {
	s := newTestScheduler()

	var runs atomic.Int32
	release := make(chan struct{})
	started := make(chan struct{}, 1)

	require.NoError(t, s.Start("@every 10ms", func() {
		runs.Add(1)
		select {
		case started <- struct{}{}:
		default:
		}
		<-release
	}))

	select {
	case <-started:
	case <-time.After(2 * time.Second):
		t.Fatal("first run did not start within 2s")
	}

	// Several ticks elapse while the first run is still blocked.
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(1), runs.Load())

	close(release)
	s.Stop()
}

func TestPanicInTaskIsRecovered(t *testing.T) {
	s := newTestScheduler()

	fired := make(chan struct{}, 1)
	first := true
	require.NoError(t, s.Start("@every 10ms", func() {
		if first {
			first = false
			panic("boom")
		}
		select {
		case fired <- struct{}{}:
		default:
		}
	}))

	// The scheduler survives the panic and keeps firing.
	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler stopped firing after panic")
	}

	s.Stop()
}
