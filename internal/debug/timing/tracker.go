package timing

import (
	"sort"
	"sync"
	"time"
)

const maxSamples = 100

// Summary aggregates the recorded durations of one operation.
type Summary struct {
	Operation string
	Count     int
	Last      time.Duration
	Average   time.Duration
	Max       time.Duration
}

// Tracker keeps the most recent durations per operation.
type Tracker struct {
	timings map[string][]time.Duration
	mu      sync.RWMutex
}

func NewTracker() *Tracker {
	return &Tracker{
		timings: make(map[string][]time.Duration),
	}
}

func (tt *Tracker) Record(operation string, duration time.Duration) {
	tt.mu.Lock()
	defer tt.mu.Unlock()

	samples := append(tt.timings[operation], duration)
	if len(samples) > maxSamples {
		samples = samples[len(samples)-maxSamples:]
	}
	tt.timings[operation] = samples
}

// Time runs fn and records its duration.
func (tt *Tracker) Time(operation string, fn func() error) error {
	start := time.Now()
	err := fn()
	tt.Record(operation, time.Since(start))
	return err
}

func (tt *Tracker) Summary(operation string) (Summary, bool) {
	tt.mu.RLock()
	defer tt.mu.RUnlock()

	samples, ok := tt.timings[operation]
	if !ok || len(samples) == 0 {
		return Summary{}, false
	}

	summary := Summary{
		Operation: operation,
		Count:     len(samples),
		Last:      samples[len(samples)-1],
	}

	var total time.Duration
	for _, d := range samples {
		total += d
		if d > summary.Max {
			summary.Max = d
		}
	}
	summary.Average = total / time.Duration(len(samples))

	return summary, true
}

// Summaries returns one summary per operation, sorted by name.
func (tt *Tracker) Summaries() []Summary {
	tt.mu.RLock()
	operations := make([]string, 0, len(tt.timings))
	for op := range tt.timings {
		operations = append(operations, op)
	}
	tt.mu.RUnlock()

	sort.Strings(operations)

	summaries := make([]Summary, 0, len(operations))
	for _, op := range operations {
		if s, ok := tt.Summary(op); ok {
			summaries = append(summaries, s)
		}
	}
	return summaries
}

func (tt *Tracker) Reset() {
	tt.mu.Lock()
	defer tt.mu.Unlock()

	tt.timings = make(map[string][]time.Duration)
}
