package mark

// Draw is one value consumed from a traced stream.
type Draw struct {
	Index int     `json:"index"`
	Stage string  `json:"stage"`
	Layer int     `json:"layer"` // -1 for planning draws
	Value float64 `json:"value"`
}

// Trace records how a scene was derived from its seed composite.
type Trace struct {
	Composite    string   `json:"composite"`
	Hash         uint32   `json:"hash"`
	InitialState uint32   `json:"initialState"`
	Decision     Decision `json:"decision"`
	Draws        []Draw   `json:"draws"`
	Elements     int      `json:"elements"`
}

// Coerced reports whether the composite hashed to the degenerate zero state.
func (t *Trace) Coerced() bool { return t.Hash == 0 }

// Layer returns the draws consumed by layer i, in order.
func (t *Trace) Layer(i int) []Draw {
	var out []Draw
	for _, d := range t.Draws {
		if d.Layer == i {
			out = append(out, d)
		}
	}
	return out
}
