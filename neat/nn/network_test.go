package nn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baldhumanity/modneat-go/neat"
)

func TestParseKind(t *testing.T) {
	for _, kind := range []Kind{KindFeedForward, KindRecurrent, KindModulated} {
		got, err := ParseKind(kind.String())
		require.NoError(t, err)
		assert.Equal(t, kind, got)
	}
	got, err := ParseKind(" Recurrent ")
	require.NoError(t, err)
	assert.Equal(t, KindRecurrent, got)

	_, err = ParseKind("hopfield")
	assert.ErrorIs(t, err, neat.ErrInvalidMode)
}

func TestCreateEveryKind(t *testing.T) {
	config := testConfig(1, 1)
	g := chainGenome(config)

	for _, kind := range []Kind{KindFeedForward, KindRecurrent, KindModulated} {
		t.Run(kind.String(), func(t *testing.T) {
			net, err := Create(kind, g, config)
			require.NoError(t, err)
			require.NotNil(t, net)

			_, err = net.Activate([]float64{1.0})
			require.NoError(t, err)
			assert.Len(t, net.Weights(), 2)
		})
	}

	_, err := Create(Kind(42), g, config)
	assert.ErrorIs(t, err, neat.ErrInvalidMode)
}

func TestCreateReturnsNilOnError(t *testing.T) {
	config := testConfig(1, 1)
	g := chainGenome(config)
	g.AddConnection(0, 1, 1.0)

	net, err := Create(KindFeedForward, g, config)
	assert.ErrorIs(t, err, neat.ErrCycle)
	assert.Nil(t, net)
}

func TestCreateFromConfig(t *testing.T) {
	config := testConfig(1, 1)
	config.Neat.NetworkType = "modulated"

	net, err := CreateFromConfig(chainGenome(config), config)
	require.NoError(t, err)
	_, ok := net.(*ModulatedNetwork)
	assert.True(t, ok)
}

func TestApplyWeightDelta(t *testing.T) {
	config := testConfig(1, 1)
	g := chainGenome(config)

	for _, kind := range []Kind{KindFeedForward, KindRecurrent, KindModulated} {
		t.Run(kind.String(), func(t *testing.T) {
			net, err := Create(kind, g, config)
			require.NoError(t, err)

			require.NoError(t, net.ApplyWeightDelta(1, 0, 0.25))
			w, ok := net.Weight(1, 0)
			require.True(t, ok)
			assert.Equal(t, 1.25, w)

			err = net.ApplyWeightDelta(0, 1, 1.0)
			assert.ErrorIs(t, err, neat.ErrUnknownConnection)

			net.Reset()
			w, _ = net.Weight(1, 0)
			assert.Equal(t, 1.0, w)
		})
	}
}

func TestValidatedConfigCompiles(t *testing.T) {
	config := testConfig(2, 1)
	config.Genome.NumHidden = 2
	config.Genome.FeedForward = true
	config.Genome.InitialConnection = "full_direct"
	config.Genome.ActivationDefault = "tanh"
	config.Genome.ActivationOptions = []string{"tanh"}
	require.NoError(t, config.Validate())

	g := neat.NewGenome(7, &config.Genome)
	require.NoError(t, g.ConfigureNew(newRand(3)))

	for _, kind := range []Kind{KindFeedForward, KindRecurrent, KindModulated} {
		net, err := Create(kind, g, config)
		require.NoError(t, err, kind.String())
		out, err := net.Activate([]float64{0.5, -0.5})
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.GreaterOrEqual(t, out[0], -1.0)
		assert.LessOrEqual(t, out[0], 1.0)
	}
}

func TestResetMatchesFreshPhenotype(t *testing.T) {
	config := testConfig(2, 2)
	config.Genome.NumHidden = 3
	config.Genome.InitialConnection = "full_direct"
	config.Genome.ModulatoryInitStdev = 0.4
	config.Genome.ModulatoryInitMean = 0.5
	config.Genome.EtaInitMean = 0.2
	config.Genome.AInitStdev = 0.5
	config.Genome.MDInitStdev = 0.5
	require.NoError(t, config.Validate())

	g := neat.NewGenome(3, &config.Genome)
	require.NoError(t, g.ConfigureNew(newRand(11)))
	inputs := [][]float64{{0.2, -0.7}, {1, 0}, {0.5, 0.5}}

	for _, kind := range []Kind{KindRecurrent, KindModulated} {
		t.Run(kind.String(), func(t *testing.T) {
			used, err := Create(kind, g, config)
			require.NoError(t, err)
			for _, in := range inputs {
				_, err := used.Activate(in)
				require.NoError(t, err)
			}
			used.Reset()

			fresh, err := Create(kind, g, config)
			require.NoError(t, err)
			for _, in := range inputs {
				want, err := fresh.Activate(in)
				require.NoError(t, err)
				got, err := used.Activate(in)
				require.NoError(t, err)
				assert.Equal(t, want, got)
			}
			assert.Equal(t, fresh.Weights(), used.Weights())
		})
	}
}
