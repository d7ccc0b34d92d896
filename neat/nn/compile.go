// Package nn compiles genomes into plastic phenotypes and runs them.
package nn

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/baldhumanity/modneat-go/neat"
)

// link is one incoming connection of a compiled node.
type link struct {
	Source     int
	sourceSlot int // index of the source value in the state buffers
	weight     int // index into the weight state

	// params are the local coefficients stored alongside the link.
	params neat.PlasticityParams
}

// nodeEval describes how to compute one node and update its incoming weights.
// Activation and aggregation are resolved at compile time.
type nodeEval struct {
	Key         int
	slot        int
	Modulatory  float64
	Activation  neat.ActivationType
	Aggregation neat.AggregationType
	Bias        float64
	Response    float64
	Links       []link
}

// activate computes activation(bias + response * aggregation(values[src] * w)).
// scratch is reused for the weighted inputs and returned for the next call.
func (n *nodeEval) activate(values []float64, w *weightState, scratch []float64) (float64, []float64) {
	scratch = scratch[:0]
	for i := range n.Links {
		l := &n.Links[i]
		scratch = append(scratch, values[l.sourceSlot]*w.at(l))
	}
	s := n.Aggregation(scratch)
	return n.Activation(n.Bias + n.Response*s), scratch
}

// topology is the immutable part of a phenotype: evaluation order, resolved
// functions, biases and the weights it was compiled with. Mutable weights
// live in a weightState built from it.
type topology struct {
	inputKeys   []int
	outputKeys  []int
	inputSlots  []int
	outputSlots []int
	slots       map[int]int
	nodes       []nodeEval

	global neat.PlasticityParams
	scope  neat.ParamScope
	params func(l *link) *neat.PlasticityParams

	index   map[neat.ConnectionKey]int
	initial []float64
	maxFan  int

	logger *slog.Logger
}

func (t *topology) slotFor(key int) int {
	if s, ok := t.slots[key]; ok {
		return s
	}
	s := len(t.slots)
	t.slots[key] = s
	return s
}

func (t *topology) numSlots() int {
	return len(t.slots)
}

func (t *topology) globalParams(*link) *neat.PlasticityParams {
	return &t.global
}

func localParams(l *link) *neat.PlasticityParams {
	return &l.params
}

// modulationBias is the m_d term of a node's modulated value. In local scope
// every incoming link contributes its own m_d.
func (t *topology) modulationBias(n *nodeEval) float64 {
	if t.scope == neat.ScopeGlobal {
		return t.global.MD
	}
	bias := 0.0
	for i := range n.Links {
		bias += n.Links[i].params.MD
	}
	return bias
}

// compile builds the evaluation records for the nodes in order. A node gets
// a record only if at least one enabled incoming connection has a source
// accepted by accept; connections from rejected sources are dropped.
func compile(g *neat.Genome, config *neat.Config, order []int, accept func(src int) bool) (*topology, error) {
	if g == nil || config == nil {
		return nil, fmt.Errorf("genome and config are required")
	}
	scope, err := config.CheckScope()
	if err != nil {
		return nil, err
	}

	gc := &config.Genome
	t := &topology{
		inputKeys:  append([]int(nil), gc.InputKeys...),
		outputKeys: append([]int(nil), gc.OutputKeys...),
		slots:      make(map[int]int),
		global:     g.Global,
		scope:      scope,
		index:      make(map[neat.ConnectionKey]int),
		logger:     config.Log(),
	}
	if scope == neat.ScopeLocal {
		t.params = localParams
	} else {
		t.params = t.globalParams
	}
	for _, k := range t.inputKeys {
		t.inputSlots = append(t.inputSlots, t.slotFor(k))
	}
	for _, k := range t.outputKeys {
		t.outputSlots = append(t.outputSlots, t.slotFor(k))
	}

	incoming := make(map[int][]neat.ConnectionKey)
	for _, ck := range g.EnabledConnectionKeys() {
		incoming[ck.OutNodeID] = append(incoming[ck.OutNodeID], ck)
	}

	for _, key := range order {
		var conns []neat.ConnectionKey
		for _, ck := range incoming[key] {
			if accept(ck.InNodeID) {
				conns = append(conns, ck)
			}
		}
		if len(conns) == 0 {
			continue
		}

		ng, ok := g.Nodes[key]
		if !ok {
			return nil, fmt.Errorf("%w: node %d of genome %d", neat.ErrMissingNode, key, g.Key)
		}
		actFn, err := gc.ActivationFunction(ng.Activation)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve activation for node %d: %w", key, err)
		}
		aggFn, err := gc.AggregationFunction(ng.Aggregation)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve aggregation for node %d: %w", key, err)
		}

		rec := nodeEval{
			Key:         key,
			slot:        t.slotFor(key),
			Modulatory:  ng.Modulatory,
			Activation:  actFn,
			Aggregation: aggFn,
			Bias:        ng.Bias,
			Response:    ng.Response,
			Links:       make([]link, 0, len(conns)),
		}
		for _, ck := range conns {
			cg := g.Connections[ck]
			var params neat.PlasticityParams
			switch {
			case cg.Plasticity != nil:
				params = *cg.Plasticity
			case ng.Plasticity != nil:
				params = *ng.Plasticity
			}
			t.index[ck] = len(t.initial)
			rec.Links = append(rec.Links, link{
				Source:     ck.InNodeID,
				sourceSlot: t.slotFor(ck.InNodeID),
				weight:     len(t.initial),
				params:     params,
			})
			t.initial = append(t.initial, cg.Weight)
		}
		if len(rec.Links) > t.maxFan {
			t.maxFan = len(rec.Links)
		}
		t.nodes = append(t.nodes, rec)
	}
	return t, nil
}

// trace logs one activation step at neat.LevelTrace.
func (t *topology) trace(kind Kind, outputs []float64) {
	ctx := context.Background()
	if !t.logger.Enabled(ctx, neat.LevelTrace) {
		return
	}
	t.logger.Log(ctx, neat.LevelTrace, "activated phenotype", "kind", kind.String(), "outputs", outputs)
}

// checkArity validates the number of inputs passed to Activate.
func (t *topology) checkArity(inputs []float64) error {
	if len(inputs) != len(t.inputKeys) {
		return fmt.Errorf("%w: expected %d inputs, got %d", neat.ErrInputArity, len(t.inputKeys), len(inputs))
	}
	return nil
}

// outputs copies the output values out of a state buffer, in output-key order.
func (t *topology) outputs(values []float64) []float64 {
	out := make([]float64, len(t.outputSlots))
	for i, s := range t.outputSlots {
		out[i] = values[s]
	}
	return out
}
