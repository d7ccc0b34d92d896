package nn

import (
	"fmt"
	"math"

	"github.com/baldhumanity/modneat-go/neat"
)

// splitFunc divides a node's activation into its standard output and its
// modulatory signal.
type splitFunc func(activation, ratio float64) (output, signal float64)

// splitBool routes everything to the signal when ratio > 0.5, otherwise to the output.
func splitBool(activation, ratio float64) (float64, float64) {
	if ratio > 0.5 {
		return 0.0, activation
	}
	return activation, 0.0
}

func splitFloat(activation, ratio float64) (float64, float64) {
	return activation * (1.0 - ratio), activation * ratio
}

func splitterFor(mode neat.ModulatoryMode) (splitFunc, error) {
	switch mode {
	case neat.ModulatoryBool:
		return splitBool, nil
	case neat.ModulatoryFloat:
		return splitFloat, nil
	default:
		return nil, fmt.Errorf("%w: modulatory mode %s", neat.ErrInvalidMode, mode)
	}
}

// ModulatedNetwork is a recurrent phenotype whose nodes also emit a
// modulatory signal. The signal arriving at a node gates the plasticity of
// its incoming weights through tanh(modulated / 2).
type ModulatedNetwork struct {
	InputKeys  []int
	OutputKeys []int

	topo    *topology
	weights *weightState
	buffers pingPong
	split   splitFunc
	scratch []float64

	// signal and modulated are single-buffered: both are recomputed from
	// scratch on every call.
	signal    []float64
	modulated []float64
}

// CreateModulatedNetwork builds a modulated recurrent network from a genome.
// The modulatory mode and plasticity-parameter scope are resolved here.
func CreateModulatedNetwork(g *neat.Genome, config *neat.Config) (*ModulatedNetwork, error) {
	if config == nil {
		return nil, fmt.Errorf("genome and config are required")
	}
	mode, err := neat.ParseModulatoryMode(config.Neat.ModulatoryMode)
	if err != nil {
		return nil, err
	}
	split, err := splitterFor(mode)
	if err != nil {
		return nil, err
	}
	topo, err := recurrentTopology(g, config)
	if err != nil {
		return nil, err
	}

	net := &ModulatedNetwork{
		InputKeys:  topo.inputKeys,
		OutputKeys: topo.outputKeys,
		topo:       topo,
		weights:    newWeightState(topo),
		buffers:    newPingPong(topo.numSlots()),
		split:      split,
		scratch:    make([]float64, 0, topo.maxFan),
		signal:     make([]float64, topo.numSlots()),
		modulated:  make([]float64, topo.numSlots()),
	}
	config.Log().Debug("compiled phenotype",
		"kind", KindModulated.String(), "genome", g.Key,
		"nodes", len(topo.nodes), "links", len(topo.initial),
		"modulatory_mode", mode.String(), "evoparam_mode", topo.scope.String())
	return net, nil
}

// Activate advances the network one step and applies the modulated update.
func (net *ModulatedNetwork) Activate(inputs []float64) ([]float64, error) {
	return net.ActivateUpdate(inputs, true)
}

// ActivateUpdate advances the network one step. When applyUpdate is false
// the weights are left untouched, which makes the call pure inference.
func (net *ModulatedNetwork) ActivateUpdate(inputs []float64, applyUpdate bool) ([]float64, error) {
	if err := net.topo.checkArity(inputs); err != nil {
		return nil, err
	}
	nodes := net.topo.nodes
	for i := range nodes {
		if r := nodes[i].Modulatory; !(r >= 0.0 && r <= 1.0) {
			return nil, fmt.Errorf("%w: node %d has modulatory ratio %g", neat.ErrModulatoryRange, nodes[i].Key, r)
		}
	}

	prev, cur := net.buffers.advance()
	for i, s := range net.topo.inputSlots {
		prev[s] = inputs[i]
		cur[s] = inputs[i]
	}

	for i := range nodes {
		n := &nodes[i]
		var a float64
		a, net.scratch = n.activate(prev, net.weights, net.scratch)
		cur[n.slot], net.signal[n.slot] = net.split(a, n.Modulatory)
	}

	for i := range nodes {
		n := &nodes[i]
		m := net.topo.modulationBias(n)
		for j := range n.Links {
			l := &n.Links[j]
			m += net.signal[l.sourceSlot] * net.weights.at(l)
		}
		net.modulated[n.slot] = m
	}

	if applyUpdate {
		for i := range nodes {
			n := &nodes[i]
			gain := math.Tanh(net.modulated[n.slot] / 2.0)
			post := cur[n.slot]
			for j := range n.Links {
				l := &n.Links[j]
				p := net.topo.params(l)
				net.weights.add(l, gain*p.Eta*p.Term(prev[l.sourceSlot], post))
			}
		}
	}

	out := net.topo.outputs(cur)
	net.topo.trace(KindModulated, out)
	return out, nil
}

// Reset restores the compiled weights and zeroes every buffer, including the
// modulatory signal and modulated values.
func (net *ModulatedNetwork) Reset() {
	net.weights.reset()
	net.buffers.reset()
	zero(net.signal)
	zero(net.modulated)
}

// ModulatorySignal returns the modulatory signal node key emitted on the last call.
func (net *ModulatedNetwork) ModulatorySignal(key int) float64 {
	if s, ok := net.topo.slots[key]; ok {
		return net.signal[s]
	}
	return 0
}

// ModulatedValue returns the modulated value computed for node key on the last call.
func (net *ModulatedNetwork) ModulatedValue(key int) float64 {
	if s, ok := net.topo.slots[key]; ok {
		return net.modulated[s]
	}
	return 0
}

// Weight returns the current weight of the compiled connection source -> target.
func (net *ModulatedNetwork) Weight(source, target int) (float64, bool) {
	return net.weights.lookup(source, target)
}

// Weights returns a snapshot of all compiled weights.
func (net *ModulatedNetwork) Weights() map[neat.ConnectionKey]float64 {
	return net.weights.snapshot()
}

// ApplyWeightDelta adds delta to the weight of the compiled connection source -> target.
func (net *ModulatedNetwork) ApplyWeightDelta(source, target int, delta float64) error {
	return net.weights.apply(source, target, delta)
}
