package random

import "sync"

// Scripted replays a fixed list of samples, wrapping around when it runs out.
// Every Float64 or IntN call consumes one sample; IntN scales the sample into
// [0,n).
type Scripted struct {
	mu      sync.Mutex
	samples []float64
	next    int
	calls   int
}

// NewScripted creates a source that replays samples. With no samples every
// call returns 0.
func NewScripted(samples ...float64) *Scripted {
	return &Scripted{samples: samples}
}

// Calls returns how many samples have been consumed
func (s *Scripted) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// Float64 implements Source
func (s *Scripted) Float64() float64 {
	return s.take()
}

// IntN implements Source
func (s *Scripted) IntN(n int) int {
	i := int(s.take() * float64(n))
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}

func (s *Scripted) take() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls++
	if len(s.samples) == 0 {
		return 0
	}
	v := s.samples[s.next]
	s.next = (s.next + 1) % len(s.samples)
	return v
}
