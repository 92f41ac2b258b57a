package mark

// Stream is a seeded xorshift generator producing floats in [0, 1).
//
// The Nth draw is a pure function of the seed text and N. A Stream is not
// safe for concurrent use; each generation owns exactly one.
type Stream struct {
	state uint32
	n     int
	rec   *[]Draw
}

// NewStream seeds a stream from the hash of seed.
func NewStream(seed string) *Stream {
	return newStreamState(Hash(seed))
}

// newStreamState seeds a stream from a raw state. Zero is a fixed point of
// the xorshift update and is replaced with 1.
func newStreamState(state uint32) *Stream {
	if state == 0 {
		state = 1
	}
	return &Stream{state: state}
}

// Draw advances the state and returns the next value in [0, 1).
func (s *Stream) Draw() float64 {
	x := s.state
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	s.state = x
	s.n++
	return float64(x%1_000_000) / 1_000_000
}

// Draws returns the number of values drawn so far.
func (s *Stream) Draws() int { return s.n }

// next draws a value and records it under stage when the stream is traced.
func (s *Stream) next(stage string, layer int) float64 {
	v := s.Draw()
	if s.rec != nil {
		*s.rec = append(*s.rec, Draw{Index: s.n - 1, Stage: stage, Layer: layer, Value: v})
	}
	return v
}

// Pick returns options[floor(Draw()*len(options))]. The order of options is
// part of the contract. Pick panics if options is empty.
func Pick[T any](s *Stream, options []T) T {
	return pick(s, "pick", -1, options)
}

func pick[T any](s *Stream, stage string, layer int, options []T) T {
	return options[int(s.next(stage, layer)*float64(len(options)))]
}
