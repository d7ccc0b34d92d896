package nn

// pingPong is the two-slot value buffer of the recurrent phenotypes. Each
// call reads the previous step from one slot and writes the current step to
// the other; advance swaps the roles once per call.
type pingPong struct {
	bufs   [2][]float64
	active int
}

func newPingPong(size int) pingPong {
	return pingPong{bufs: [2][]float64{make([]float64, size), make([]float64, size)}}
}

// previous is the buffer holding the last step's values.
func (p *pingPong) previous() []float64 {
	return p.bufs[p.active]
}

// current is the buffer the next step writes to.
func (p *pingPong) current() []float64 {
	return p.bufs[1-p.active]
}

// advance returns the (previous, current) pair for this step and flips the
// buffers, so this step's current becomes the next step's previous.
func (p *pingPong) advance() (prev, cur []float64) {
	prev, cur = p.previous(), p.current()
	p.active = 1 - p.active
	return prev, cur
}

func (p *pingPong) reset() {
	for _, b := range p.bufs {
		zero(b)
	}
	p.active = 0
}

func zero(values []float64) {
	for i := range values {
		values[i] = 0
	}
}
