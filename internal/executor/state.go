package executor

import (
	"sort"
	"sync"
)

// Progress is an observability snapshot of a run in flight.
type Progress struct {
	Total     int
	Completed int
	Failed    int
	// Current is the name of the module whose attempt started most recently.
	Current string
}

// runState tracks one orchestration run. It is created fresh at the start of
// every Initialize call and mutated from the goroutines of the batch in
// flight, so every access goes through the mutex.
type runState struct {
	mu           sync.Mutex
	total        int
	current      string
	initializing map[string]bool
	initialized  map[string]any
	failed       map[string]error
	// order records completion order of successful modules; cleanup walks it
	// backwards.
	order []string
}

func newRunState(total int) *runState {
	return &runState{
		total:        total,
		initializing: make(map[string]bool),
		initialized:  make(map[string]any),
		failed:       make(map[string]error),
	}
}

// beginAttempt marks a module as in flight. It returns false when the module
// already completed or another attempt is running, which makes duplicate
// concurrent starts a no-op rather than an error.
func (s *runState) beginAttempt(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.initializing[name] {
		return false
	}
	if _, done := s.initialized[name]; done {
		return false
	}
	s.initializing[name] = true
	s.current = name
	return true
}

// endAttempt removes the in-flight mark after a failed attempt, before the
// retry delay.
func (s *runState) endAttempt(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.initializing, name)
}

func (s *runState) markInitialized(name string, instance any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.initializing, name)
	s.initialized[name] = instance
	s.order = append(s.order, name)
}

func (s *runState) markFailed(name string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.initializing, name)
	s.failed[name] = err
}

func (s *runState) instance(name string) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.initialized[name]
	return v, ok
}

func (s *runState) initializedNames() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.initialized))
	for name := range s.initialized {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func (s *runState) failedNames() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.failed))
	for name := range s.failed {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// completionOrder returns the successful modules in the order they finished.
func (s *runState) completionOrder() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string{}, s.order...)
}

func (s *runState) progress() Progress {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Progress{
		Total:     s.total,
		Completed: len(s.initialized),
		Failed:    len(s.failed),
		Current:   s.current,
	}
}
