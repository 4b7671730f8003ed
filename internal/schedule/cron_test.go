package schedule

import (
	"testing"
	"time"

	"go.uber.org/zap"

	"fitness-planner/internal/model"
)

func TestBuildWeeklySpec(t *testing.T) {
	spec, err := buildWeeklySpec(model.Sunday, "20:30")
	if err != nil {
		t.Fatalf("build spec: %v", err)
	}
	if spec != "0 30 20 * * Sun" {
		t.Fatalf("unexpected spec %q", spec)
	}
	if _, err := buildWeeklySpec(model.Weekday("Xyz"), "20:30"); err == nil {
		t.Fatalf("expected invalid weekday error")
	}
	if _, err := buildWeeklySpec(model.Monday, "25:00"); err == nil {
		t.Fatalf("expected invalid time error")
	}
}

func TestCronEveryRejectsSubSecondInterval(t *testing.T) {
	c := NewCron(time.UTC, zap.NewNop())
	for _, interval := range []time.Duration{0, -time.Second, 500 * time.Millisecond, 999 * time.Millisecond} {
		if _, err := c.Every(interval, func() {}); err == nil {
			t.Fatalf("expected error for %v interval", interval)
		}
	}
	handle, err := c.Every(time.Second, func() {})
	if err != nil {
		t.Fatalf("one second interval: %v", err)
	}
	handle.Stop()
}

func TestCronEveryRunsUntilStopped(t *testing.T) {
	c := NewCron(time.UTC, zap.NewNop())
	c.Start()
	defer c.Stop()

	ticks := make(chan struct{}, 8)
	handle, err := c.Every(time.Second, func() { ticks <- struct{}{} })
	if err != nil {
		t.Fatalf("every: %v", err)
	}

	select {
	case <-ticks:
	case <-time.After(3 * time.Second):
		t.Fatalf("expected job to run")
	}

	handle.Stop()
	handle.Stop()
	time.Sleep(100 * time.Millisecond)
	for len(ticks) > 0 {
		<-ticks
	}
	select {
	case <-ticks:
		t.Fatalf("expected no ticks after stop")
	case <-time.After(1500 * time.Millisecond):
	}
}

func TestManualFireAndStop(t *testing.T) {
	m := NewManual()
	var a, b int
	ha, _ := m.Every(time.Second, func() { a++ })
	_, _ = m.Every(time.Minute, func() { b++ })

	if n := m.Fire(); n != 2 {
		t.Fatalf("expected 2 jobs fired, got %d", n)
	}
	ha.Stop()
	m.Fire()
	if a != 1 || b != 2 {
		t.Fatalf("unexpected counts a=%d b=%d", a, b)
	}
	if m.Active() != 1 {
		t.Fatalf("expected 1 active job, got %d", m.Active())
	}
}

func TestManualJobMayStopItself(t *testing.T) {
	m := NewManual()
	var handle Handle
	runs := 0
	handle, _ = m.Every(time.Second, func() {
		runs++
		handle.Stop()
	})
	m.Fire()
	m.Fire()
	if runs != 1 {
		t.Fatalf("expected single run, got %d", runs)
	}
}
