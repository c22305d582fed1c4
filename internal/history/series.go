// Package history keeps bounded sample series between polls.
package history

// Series is a bounded FIFO of integer percentages. Once full, each Push drops
// the oldest sample.
type Series struct {
	buf   []int
	start int
	n     int
}

// NewSeries returns a series keeping at most capacity samples. A capacity
// below one is raised to one.
func NewSeries(capacity int) *Series {
	if capacity < 1 {
		capacity = 1
	}
	return &Series{buf: make([]int, capacity)}
}

// Push appends v as the newest sample.
func (s *Series) Push(v int) {
	if s.n < len(s.buf) {
		s.buf[(s.start+s.n)%len(s.buf)] = v
		s.n++
		return
	}
	s.buf[s.start] = v
	s.start = (s.start + 1) % len(s.buf)
}

// Values returns a copy of the samples, oldest first.
func (s *Series) Values() []int {
	out := make([]int, s.n)
	for i := range out {
		out[i] = s.buf[(s.start+i)%len(s.buf)]
	}
	return out
}

// Last returns the newest sample.
func (s *Series) Last() (int, bool) {
	if s.n == 0 {
		return 0, false
	}
	return s.buf[(s.start+s.n-1)%len(s.buf)], true
}

func (s *Series) Len() int { return s.n }
func (s *Series) Cap() int { return len(s.buf) }

// Resize changes the capacity, keeping the newest samples.
func (s *Series) Resize(capacity int) {
	if capacity < 1 {
		capacity = 1
	}
	vals := s.Values()
	if len(vals) > capacity {
		vals = vals[len(vals)-capacity:]
	}
	s.buf = make([]int, capacity)
	s.start = 0
	s.n = copy(s.buf, vals)
}
