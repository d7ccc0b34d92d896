package nn

import (
	"fmt"

	"github.com/baldhumanity/modneat-go/neat"
)

// weightState holds the mutable weights of one phenotype. Links address
// their weight by index; external callers address it by (source, target)
// through the topology's index.
type weightState struct {
	topo    *topology
	current []float64
}

func newWeightState(t *topology) *weightState {
	w := &weightState{topo: t, current: make([]float64, len(t.initial))}
	copy(w.current, t.initial)
	return w
}

func (w *weightState) at(l *link) float64 {
	return w.current[l.weight]
}

func (w *weightState) add(l *link, delta float64) {
	w.current[l.weight] += delta
}

// apply adds delta to the weight of the compiled connection source -> target.
func (w *weightState) apply(source, target int, delta float64) error {
	i, ok := w.topo.index[neat.ConnectionKey{InNodeID: source, OutNodeID: target}]
	if !ok {
		return fmt.Errorf("%w: %d->%d", neat.ErrUnknownConnection, source, target)
	}
	w.current[i] += delta
	return nil
}

func (w *weightState) lookup(source, target int) (float64, bool) {
	i, ok := w.topo.index[neat.ConnectionKey{InNodeID: source, OutNodeID: target}]
	if !ok {
		return 0, false
	}
	return w.current[i], true
}

func (w *weightState) snapshot() map[neat.ConnectionKey]float64 {
	out := make(map[neat.ConnectionKey]float64, len(w.topo.index))
	for k, i := range w.topo.index {
		out[k] = w.current[i]
	}
	return out
}

// reset restores the weights the phenotype was compiled with.
func (w *weightState) reset() {
	copy(w.current, w.topo.initial)
}
