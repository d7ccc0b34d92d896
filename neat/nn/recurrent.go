package nn

import (
	"fmt"
	"sort"

	"github.com/baldhumanity/modneat-go/neat"
)

// RecurrentNetwork is a phenotype with one-step recurrence. Every node reads
// its sources from the previous step's buffer and writes into the current
// one, so arbitrary cycles are allowed.
type RecurrentNetwork struct {
	InputKeys  []int
	OutputKeys []int

	topo    *topology
	weights *weightState
	buffers pingPong
	scratch []float64
}

// recurrentTopology compiles the nodes required for the outputs, in key order.
func recurrentTopology(g *neat.Genome, config *neat.Config) (*topology, error) {
	if g == nil || config == nil {
		return nil, fmt.Errorf("genome and config are required")
	}
	gc := &config.Genome
	required := neat.RequiredForOutput(gc.InputKeys, gc.OutputKeys, g.EnabledConnectionKeys())

	inputSet := make(map[int]bool, len(gc.InputKeys))
	for _, k := range gc.InputKeys {
		inputSet[k] = true
	}
	order := make([]int, 0, len(required))
	for k := range required {
		if !inputSet[k] {
			order = append(order, k)
		}
	}
	sort.Ints(order)

	topo, err := compile(g, config, order, func(src int) bool { return required[src] })
	if err != nil {
		return nil, fmt.Errorf("failed to compile genome %d: %w", g.Key, err)
	}
	return topo, nil
}

// CreateRecurrentNetwork builds a plastic recurrent network from a genome.
func CreateRecurrentNetwork(g *neat.Genome, config *neat.Config) (*RecurrentNetwork, error) {
	topo, err := recurrentTopology(g, config)
	if err != nil {
		return nil, err
	}
	net := &RecurrentNetwork{
		InputKeys:  topo.inputKeys,
		OutputKeys: topo.outputKeys,
		topo:       topo,
		weights:    newWeightState(topo),
		buffers:    newPingPong(topo.numSlots()),
		scratch:    make([]float64, 0, topo.maxFan),
	}
	config.Log().Debug("compiled phenotype",
		"kind", KindRecurrent.String(), "genome", g.Key,
		"nodes", len(topo.nodes), "links", len(topo.initial))
	return net, nil
}

// Activate advances the network one step. Node values are computed from the
// previous step, then each weight is updated with the ABCD rule using the
// previous-step source value and the current-step target value.
func (net *RecurrentNetwork) Activate(inputs []float64) ([]float64, error) {
	if err := net.topo.checkArity(inputs); err != nil {
		return nil, err
	}

	prev, cur := net.buffers.advance()
	for i, s := range net.topo.inputSlots {
		prev[s] = inputs[i]
		cur[s] = inputs[i]
	}

	nodes := net.topo.nodes
	for i := range nodes {
		n := &nodes[i]
		var v float64
		v, net.scratch = n.activate(prev, net.weights, net.scratch)
		cur[n.slot] = v
	}

	for i := range nodes {
		n := &nodes[i]
		post := cur[n.slot]
		for j := range n.Links {
			l := &n.Links[j]
			net.weights.add(l, net.topo.params(l).Delta(prev[l.sourceSlot], post))
		}
	}

	out := net.topo.outputs(cur)
	net.topo.trace(KindRecurrent, out)
	return out, nil
}

// Reset restores the compiled weights, zeroes both buffers and rewinds the
// buffer toggle.
func (net *RecurrentNetwork) Reset() {
	net.weights.reset()
	net.buffers.reset()
}

// Weight returns the current weight of the compiled connection source -> target.
func (net *RecurrentNetwork) Weight(source, target int) (float64, bool) {
	return net.weights.lookup(source, target)
}

// Weights returns a snapshot of all compiled weights.
func (net *RecurrentNetwork) Weights() map[neat.ConnectionKey]float64 {
	return net.weights.snapshot()
}

// ApplyWeightDelta adds delta to the weight of the compiled connection source -> target.
func (net *RecurrentNetwork) ApplyWeightDelta(source, target int, delta float64) error {
	return net.weights.apply(source, target, delta)
}
