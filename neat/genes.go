package neat

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
)

// PlasticityParams are the coefficients of the ABCD Hebbian rule
// dw = Eta * (A*x*y + B*x + C*y + D), plus MD, the bias of the modulated value.
type PlasticityParams struct {
	Eta float64
	A   float64
	B   float64
	C   float64
	D   float64
	MD  float64
}

// AsMap returns the parameters keyed by their configuration names.
func (p PlasticityParams) AsMap() map[string]float64 {
	return map[string]float64{
		"eta": p.Eta,
		"a":   p.A,
		"b":   p.B,
		"c":   p.C,
		"d":   p.D,
		"m_d": p.MD,
	}
}

// Delta evaluates the ABCD rule for pre-synaptic value x and post-synaptic value y.
func (p *PlasticityParams) Delta(x, y float64) float64 {
	return p.Eta * p.Term(x, y)
}

// Term is the bracketed part of the rule, A*x*y + B*x + C*y + D.
func (p *PlasticityParams) Term(x, y float64) float64 {
	return p.A*x*y + p.B*x + p.C*y + p.D
}

func (p PlasticityParams) String() string {
	return fmt.Sprintf("Plasticity(eta: %.3f, a: %.3f, b: %.3f, c: %.3f, d: %.3f, m_d: %.3f)",
		p.Eta, p.A, p.B, p.C, p.D, p.MD)
}

// NewPlasticityParams draws a parameter record from the plasticity init settings.
func NewPlasticityParams(config *GenomeConfig, rng *rand.Rand) PlasticityParams {
	draw := func(mean, stdev float64) float64 {
		return initFloatAttribute(rng, mean, stdev, config.PlasticityInitType, config.PlasticityMinValue, config.PlasticityMaxValue)
	}
	return PlasticityParams{
		Eta: draw(config.EtaInitMean, config.EtaInitStdev),
		A:   draw(config.AInitMean, config.AInitStdev),
		B:   draw(config.BInitMean, config.BInitStdev),
		C:   draw(config.CInitMean, config.CInitStdev),
		D:   draw(config.DInitMean, config.DInitStdev),
		MD:  draw(config.MDInitMean, config.MDInitStdev),
	}
}

// --------------------------- NodeGene ---------------------------

// NodeGene represents a node (neuron) in the neural network genome.
type NodeGene struct {
	Key         int // negative for inputs, >=0 for outputs/hidden
	Bias        float64
	Response    float64
	Activation  string // Name of the activation function
	Aggregation string // Name of the aggregation function

	// Modulatory is the share of the activation routed to the modulatory
	// signal in modulated networks. It must lie in [0, 1].
	Modulatory float64

	// Plasticity holds optional node-level local coefficients. Incoming
	// connections without their own coefficients inherit these.
	Plasticity *PlasticityParams
}

// NewNodeGene creates a new NodeGene with attributes initialized according to the config.
func NewNodeGene(key int, config *GenomeConfig, rng *rand.Rand) *NodeGene {
	ng := &NodeGene{
		Key:         key,
		Activation:  initStringAttribute(rng, config.ActivationDefault, config.ActivationOptions),
		Aggregation: initStringAttribute(rng, config.AggregationDefault, config.AggregationOptions),
	}
	ng.Bias = initFloatAttribute(rng, config.BiasInitMean, config.BiasInitStdev, config.BiasInitType, config.BiasMinValue, config.BiasMaxValue)
	ng.Response = initFloatAttribute(rng, config.ResponseInitMean, config.ResponseInitStdev, config.ResponseInitType, config.ResponseMinValue, config.ResponseMaxValue)
	ng.Modulatory = initFloatAttribute(rng, config.ModulatoryInitMean, config.ModulatoryInitStdev, config.ModulatoryInitType, config.ModulatoryMinValue, config.ModulatoryMaxValue)
	return ng
}

// String returns a string representation of the NodeGene.
func (ng *NodeGene) String() string {
	return fmt.Sprintf("NodeGene(Key: %d, Bias: %.3f, Response: %.3f, Activation: %s, Aggregation: %s, Modulatory: %.3f)",
		ng.Key, ng.Bias, ng.Response, ng.Activation, ng.Aggregation, ng.Modulatory)
}

// Copy creates a deep copy of the NodeGene.
func (ng *NodeGene) Copy() *NodeGene {
	c := *ng
	if ng.Plasticity != nil {
		p := *ng.Plasticity
		c.Plasticity = &p
	}
	return &c
}

// --------------------------- ConnectionGene ---------------------------

// ConnectionKey uniquely identifies a connection gene (innovation).
type ConnectionKey struct {
	InNodeID  int
	OutNodeID int
}

func (k ConnectionKey) String() string {
	return fmt.Sprintf("%d->%d", k.InNodeID, k.OutNodeID)
}

// ConnectionGene represents a connection between two nodes in the genome.
type ConnectionGene struct {
	Key     ConnectionKey
	Weight  float64
	Enabled bool

	// Plasticity holds optional local coefficients, used when the
	// plasticity-parameter scope is local.
	Plasticity *PlasticityParams
}

// NewConnectionGene creates a new ConnectionGene with attributes initialized according to the config.
func NewConnectionGene(key ConnectionKey, config *GenomeConfig, rng *rand.Rand) *ConnectionGene {
	cg := &ConnectionGene{
		Key:     key,
		Enabled: parseBoolAttribute(rng, config.EnabledDefault),
	}
	cg.Weight = initFloatAttribute(rng, config.WeightInitMean, config.WeightInitStdev, config.WeightInitType, config.WeightMinValue, config.WeightMaxValue)
	return cg
}

// String returns a string representation of the ConnectionGene.
func (cg *ConnectionGene) String() string {
	return fmt.Sprintf("ConnGene(Key: %s, Weight: %.3f, Enabled: %t)", cg.Key, cg.Weight, cg.Enabled)
}

// Copy creates a deep copy of the ConnectionGene.
func (cg *ConnectionGene) Copy() *ConnectionGene {
	c := *cg
	if cg.Plasticity != nil {
		p := *cg.Plasticity
		c.Plasticity = &p
	}
	return &c
}

// --------------------------- Attribute Helpers ---------------------------

func initFloatAttribute(rng *rand.Rand, mean, stdev float64, initType string, minVal, maxVal float64) float64 {
	var val float64
	switch strings.ToLower(initType) {
	case "uniform":
		// Uniform over mean +/- 2 stdev, intersected with [min, max].
		rangeMin := math.Max(minVal, mean-(2*stdev))
		rangeMax := math.Min(maxVal, mean+(2*stdev))
		if rangeMax < rangeMin {
			rangeMax = rangeMin
		}
		val = rng.Float64()*(rangeMax-rangeMin) + rangeMin
	default:
		val = rng.NormFloat64()*stdev + mean
	}
	return clamp(val, minVal, maxVal)
}

// parseBoolAttribute parses common string representations of booleans.
// "random" and "none" flip a coin.
func parseBoolAttribute(rng *rand.Rand, valStr string) bool {
	switch strings.ToLower(strings.TrimSpace(valStr)) {
	case "true", "yes", "on", "1":
		return true
	case "random", "none":
		return rng.Float64() < 0.5
	default:
		return false
	}
}

func initStringAttribute(rng *rand.Rand, defaultVal string, options []string) string {
	if len(options) == 0 {
		return defaultVal
	}
	switch strings.ToLower(defaultVal) {
	case "random", "none", "":
		return options[rng.Intn(len(options))]
	}
	return defaultVal
}
