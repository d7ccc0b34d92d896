package neat

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfigFile = `
[NEAT]
network_type    = modulated
modulatory_mode = float   # split proportionally
evoparam_mode   = local
log_level       = debug

[DefaultGenome]
num_inputs         = 3
num_outputs        = 2
num_hidden         = 1
feed_forward       = False
initial_connection = partial_direct 0.5

compatibility_global_param_coefficient = 0.0
compatibility_local_param_coefficient  = 1.5

activation_default = tanh
activation_options = tanh sigmoid   ; two options
aggregation_default = sum
aggregation_options = sum

modulatory_init_type = uniform
modulatory_init_mean = 0.5
modulatory_init_stdev = 0.2

eta_init_mean  = 0.1
eta_init_stdev = 0.05
m_d_init_mean  = -0.2
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.ini")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	config, err := LoadConfig(writeConfig(t, testConfigFile))
	require.NoError(t, err)

	assert.Equal(t, "modulated", config.Neat.NetworkType)
	assert.Equal(t, "float", config.Neat.ModulatoryMode)
	assert.Equal(t, "local", config.Neat.EvoparamMode)
	assert.Equal(t, "debug", config.Neat.LogLevel)

	gc := config.Genome
	assert.Equal(t, 3, gc.NumInputs)
	assert.Equal(t, 2, gc.NumOutputs)
	assert.Equal(t, 1, gc.NumHidden)
	assert.False(t, gc.FeedForward)
	assert.Equal(t, "partial_direct 0.5", gc.InitialConnection)
	assert.Equal(t, 1.5, gc.CompatibilityLocalParamCoefficient)
	assert.Equal(t, []string{"tanh", "sigmoid"}, gc.ActivationOptions)
	assert.Equal(t, 0.5, gc.ModulatoryInitMean)
	assert.Equal(t, 0.1, gc.EtaInitMean)
	assert.Equal(t, -0.2, gc.MDInitMean)

	assert.Equal(t, []int{-1, -2, -3}, gc.InputKeys)
	assert.Equal(t, []int{0, 1}, gc.OutputKeys)
	assert.Equal(t, 2, gc.NodeKeyIndex)

	// Keys absent from the file keep their defaults.
	assert.Equal(t, 30.0, gc.WeightMaxValue)
	assert.Equal(t, "True", gc.EnabledDefault)

	scope, err := config.CheckScope()
	require.NoError(t, err)
	assert.Equal(t, ScopeLocal, scope)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.ini"))
	assert.Error(t, err)
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	base := "[NEAT]\n%s\n[DefaultGenome]\nnum_inputs = 1\nnum_outputs = 1\n%s\n"
	cases := []struct {
		name    string
		neat    string
		genome  string
		wantErr error
	}{
		{"modulatory mode", "modulatory_mode = fuzzy", "", ErrInvalidMode},
		{"evoparam mode", "evoparam_mode = shared", "", ErrInvalidMode},
		{"network type", "network_type = hopfield", "", ErrInvalidMode},
		{"scope", "evoparam_mode = global", "compatibility_local_param_coefficient = 1.0", ErrScopeConsistency},
		{"modulatory range", "", "modulatory_max_value = 1.5", ErrModulatoryRange},
		{"activation", "", "activation_options = sigmoid nope", ErrUnknownFunction},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeConfig(t, fmt.Sprintf(base, tc.neat, tc.genome))
			_, err := LoadConfig(path)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestValidateCounts(t *testing.T) {
	assert.Error(t, NewConfig(0, 1).Validate())
	assert.Error(t, NewConfig(1, 0).Validate())
	assert.NoError(t, NewConfig(1, 1).Validate())
}

func TestParseInitialConnection(t *testing.T) {
	base, fraction, err := parseInitialConnection("partial_nodirect 0.25")
	require.NoError(t, err)
	assert.Equal(t, "partial_nodirect", base)
	assert.Equal(t, 0.25, fraction)

	base, fraction, err = parseInitialConnection("full")
	require.NoError(t, err)
	assert.Equal(t, "full", base)
	assert.Equal(t, 1.0, fraction)

	_, _, err = parseInitialConnection("partial")
	assert.Error(t, err)
	_, _, err = parseInitialConnection("partial 1.5")
	assert.Error(t, err)
	_, _, err = parseInitialConnection("sparse")
	assert.Error(t, err)
}

func TestModesRoundTrip(t *testing.T) {
	for _, m := range []ModulatoryMode{ModulatoryBool, ModulatoryFloat} {
		got, err := ParseModulatoryMode(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}
	for _, s := range []ParamScope{ScopeGlobal, ScopeLocal} {
		got, err := ParseParamScope(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
}

func TestCheckScope(t *testing.T) {
	config := NewConfig(1, 1)
	config.Neat.EvoparamMode = "local"
	config.Genome.CompatibilityLocalParamCoefficient = 2.0
	scope, err := config.CheckScope()
	require.NoError(t, err)
	assert.Equal(t, ScopeLocal, scope)

	config.Genome.CompatibilityGlobalParamCoefficient = 0.1
	_, err = config.CheckScope()
	assert.ErrorIs(t, err, ErrScopeConsistency)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger("trace", &buf)
	logger.Log(context.Background(), LevelTrace, "step")
	assert.Contains(t, buf.String(), "level=TRACE")

	buf.Reset()
	logger = NewLogger("warn", &buf)
	logger.Info("hidden")
	assert.Empty(t, buf.String())

	assert.Equal(t, slog.LevelInfo, ParseLevel("bogus"))
	assert.NotNil(t, (*Config)(nil).Log())
}
