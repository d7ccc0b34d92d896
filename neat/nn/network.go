package nn

import (
	"fmt"
	"strings"

	"github.com/baldhumanity/modneat-go/neat"
)

// Network is the behaviour shared by all compiled phenotypes.
type Network interface {
	Activate(inputs []float64) ([]float64, error)
	Reset()
	Weight(source, target int) (float64, bool)
	Weights() map[neat.ConnectionKey]float64
	ApplyWeightDelta(source, target int, delta float64) error
}

var (
	_ Network = (*FeedForwardNetwork)(nil)
	_ Network = (*RecurrentNetwork)(nil)
	_ Network = (*ModulatedNetwork)(nil)
)

// Kind selects which phenotype a genome is compiled into.
type Kind int

const (
	KindFeedForward Kind = iota
	KindRecurrent
	KindModulated
)

func (k Kind) String() string {
	switch k {
	case KindFeedForward:
		return "feedforward"
	case KindRecurrent:
		return "recurrent"
	case KindModulated:
		return "modulated"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind maps a network_type config value to a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "feedforward":
		return KindFeedForward, nil
	case "recurrent":
		return KindRecurrent, nil
	case "modulated":
		return KindModulated, nil
	default:
		return 0, fmt.Errorf("%w: network type %q", neat.ErrInvalidMode, s)
	}
}

// Create compiles g into the phenotype selected by kind.
func Create(kind Kind, g *neat.Genome, config *neat.Config) (Network, error) {
	var (
		net Network
		err error
	)
	switch kind {
	case KindFeedForward:
		var ffn *FeedForwardNetwork
		ffn, err = CreateFeedForwardNetwork(g, config)
		net = ffn
	case KindRecurrent:
		var rnn *RecurrentNetwork
		rnn, err = CreateRecurrentNetwork(g, config)
		net = rnn
	case KindModulated:
		var mod *ModulatedNetwork
		mod, err = CreateModulatedNetwork(g, config)
		net = mod
	default:
		return nil, fmt.Errorf("%w: network kind %s", neat.ErrInvalidMode, kind)
	}
	if err != nil {
		return nil, err
	}
	return net, nil
}

// CreateFromConfig compiles g into the phenotype named by the network_type setting.
func CreateFromConfig(g *neat.Genome, config *neat.Config) (Network, error) {
	kind, err := ParseKind(config.Neat.NetworkType)
	if err != nil {
		return nil, err
	}
	return Create(kind, g, config)
}
