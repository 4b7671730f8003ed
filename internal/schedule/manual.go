package schedule

import (
	"sort"
	"sync"
	"time"
)

// Manual is a Runner whose jobs only run when Fire is called.
type Manual struct {
	mu   sync.Mutex
	next int
	jobs map[int]*manualJob
}

type manualJob struct {
	interval time.Duration
	run      func()
}

func NewManual() *Manual {
	return &Manual{jobs: make(map[int]*manualJob)}
}

func (m *Manual) Every(interval time.Duration, job func()) (Handle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	m.jobs[m.next] = &manualJob{interval: interval, run: job}
	return &manualHandle{owner: m, id: m.next}, nil
}

// Fire runs every active job once, in registration order, and returns how many ran.
func (m *Manual) Fire() int {
	m.mu.Lock()
	ids := make([]int, 0, len(m.jobs))
	for id := range m.jobs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	jobs := make([]func(), 0, len(ids))
	for _, id := range ids {
		jobs = append(jobs, m.jobs[id].run)
	}
	m.mu.Unlock()

	for _, job := range jobs {
		job()
	}
	return len(jobs)
}

// Active returns the number of jobs that have not been stopped.
func (m *Manual) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.jobs)
}

// Intervals returns the intervals of active jobs.
func (m *Manual) Intervals() []time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]time.Duration, 0, len(m.jobs))
	for _, job := range m.jobs {
		out = append(out, job.interval)
	}
	return out
}

type manualHandle struct {
	owner *Manual
	id    int
}

func (h *manualHandle) Stop() {
	h.owner.mu.Lock()
	defer h.owner.mu.Unlock()
	delete(h.owner.jobs, h.id)
}
