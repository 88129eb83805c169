package mocks

import (
	"github.com/vovakirdan/tilematch/internal/games/match3/core"
)

// MockSource is a scripted core.Source for tests.
type MockSource struct {
	// IntnResults is a queue of results to return from Intn
	IntnResults []int
	intnIndex   int

	fallback core.Source
	calls    int
}

// Ensure MockSource implements core.Source
var _ core.Source = (*MockSource)(nil)

// NewMockSource creates a MockSource. Once the queue is drained, results
// come from a math/rand source seeded with 1 so cascades still settle.
func NewMockSource(values ...int) *MockSource {
	return &MockSource{
		IntnResults: values,
		fallback:    core.NewSource(1),
	}
}

// Intn returns the next queued result modulo n.
func (s *MockSource) Intn(n int) int {
	s.calls++
	if s.intnIndex >= len(s.IntnResults) {
		return s.fallback.Intn(n)
	}
	result := s.IntnResults[s.intnIndex] % n
	s.intnIndex++
	return result
}

// QueueIntn adds values to the Intn result queue
func (s *MockSource) QueueIntn(values ...int) {
	s.IntnResults = append(s.IntnResults, values...)
}

// Remaining returns how many queued values have not been used.
func (s *MockSource) Remaining() int {
	return len(s.IntnResults) - s.intnIndex
}

// Calls returns how many times Intn was called.
func (s *MockSource) Calls() int {
	return s.calls
}

// Reset clears all queued results
func (s *MockSource) Reset() {
	s.IntnResults = nil
	s.intnIndex = 0
	s.calls = 0
}
