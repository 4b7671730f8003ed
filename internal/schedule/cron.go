package schedule

import (
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"fitness-planner/internal/model"
)

// Cron wraps cron-based jobs.
type Cron struct {
	cron *cron.Cron
}

func NewCron(loc *time.Location, log *zap.Logger) *Cron {
	logger := cron.PrintfLogger(zap.NewStdLog(log.Named("cron")))
	return &Cron{
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithSeconds(),
			cron.WithLogger(logger),
			cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
		),
	}
}

func (s *Cron) Start() {
	s.cron.Start()
}

// Stop halts the scheduler and waits for running jobs.
func (s *Cron) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// Every registers a job that runs once per interval until its handle is stopped.
// Intervals below one second are rejected.
func (s *Cron) Every(interval time.Duration, job func()) (Handle, error) {
	if interval < time.Second {
		return nil, fmt.Errorf("interval %v is below the one second cron resolution", interval)
	}
	id := s.cron.Schedule(cron.Every(interval), cron.FuncJob(job))
	return &cronEntry{cron: s.cron, id: id}, nil
}

// Weekly registers a job on the given weekday at an HH:MM time.
func (s *Cron) Weekly(day model.Weekday, timeStr string, job func()) (Handle, error) {
	spec, err := buildWeeklySpec(day, timeStr)
	if err != nil {
		return nil, err
	}
	id, err := s.cron.AddFunc(spec, job)
	if err != nil {
		return nil, fmt.Errorf("add weekly job: %w", err)
	}
	return &cronEntry{cron: s.cron, id: id}, nil
}

type cronEntry struct {
	cron *cron.Cron
	id   cron.EntryID
	once sync.Once
}

func (e *cronEntry) Stop() {
	e.once.Do(func() {
		e.cron.Remove(e.id)
	})
}

func buildWeeklySpec(day model.Weekday, timeStr string) (string, error) {
	if !day.Valid() {
		return "", fmt.Errorf("invalid weekday %q", day)
	}
	tod, err := model.ParseTimeOfDay(timeStr)
	if err != nil {
		return "", err
	}
	// cron format: second minute hour dom month dow
	return fmt.Sprintf("0 %d %d * * %s", tod.Minute, tod.Hour, day), nil
}
