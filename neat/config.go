package neat

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"gopkg.in/ini.v1"
)

// Config stores the configuration the phenotype compilers read.
type Config struct {
	Neat   NeatConfig
	Genome GenomeConfig

	// Logger receives compile-time diagnostics. Nil discards them.
	Logger *slog.Logger
}

// NeatConfig holds the run-level selectors of the [NEAT] section.
type NeatConfig struct {
	NetworkType    string `ini:"network_type"`
	ModulatoryMode string `ini:"modulatory_mode"`
	EvoparamMode   string `ini:"evoparam_mode"`
	LogLevel       string `ini:"log_level"`
}

// GenomeConfig holds parameters for genome structure and attribute initialization.
type GenomeConfig struct {
	// --- Top-level Genome parameters ---
	NumInputs         int    `ini:"num_inputs"`
	NumOutputs        int    `ini:"num_outputs"`
	NumHidden         int    `ini:"num_hidden"`
	FeedForward       bool   `ini:"feed_forward"`
	InitialConnection string `ini:"initial_connection"`

	// Compatibility weightings of the plasticity parameters. Only one of them
	// may be nonzero, matching the selected evoparam_mode.
	CompatibilityGlobalParamCoefficient float64 `ini:"compatibility_global_param_coefficient"`
	CompatibilityLocalParamCoefficient  float64 `ini:"compatibility_local_param_coefficient"`

	// --- Node Gene parameters ---
	BiasInitMean  float64 `ini:"bias_init_mean"`
	BiasInitStdev float64 `ini:"bias_init_stdev"`
	BiasInitType  string  `ini:"bias_init_type"`
	BiasMaxValue  float64 `ini:"bias_max_value"`
	BiasMinValue  float64 `ini:"bias_min_value"`

	ResponseInitMean  float64 `ini:"response_init_mean"`
	ResponseInitStdev float64 `ini:"response_init_stdev"`
	ResponseInitType  string  `ini:"response_init_type"`
	ResponseMaxValue  float64 `ini:"response_max_value"`
	ResponseMinValue  float64 `ini:"response_min_value"`

	ModulatoryInitMean  float64 `ini:"modulatory_init_mean"`
	ModulatoryInitStdev float64 `ini:"modulatory_init_stdev"`
	ModulatoryInitType  string  `ini:"modulatory_init_type"`
	ModulatoryMaxValue  float64 `ini:"modulatory_max_value"`
	ModulatoryMinValue  float64 `ini:"modulatory_min_value"`

	ActivationDefault  string   `ini:"activation_default"`
	ActivationOptions  []string `ini:"activation_options" delim:" "`
	AggregationDefault string   `ini:"aggregation_default"`
	AggregationOptions []string `ini:"aggregation_options" delim:" "`

	// --- Connection Gene parameters ---
	WeightInitMean  float64 `ini:"weight_init_mean"`
	WeightInitStdev float64 `ini:"weight_init_stdev"`
	WeightInitType  string  `ini:"weight_init_type"`
	WeightMaxValue  float64 `ini:"weight_max_value"`
	WeightMinValue  float64 `ini:"weight_min_value"`

	EnabledDefault string `ini:"enabled_default"`

	// --- Plasticity parameters (global record or per connection) ---
	EtaInitMean        float64 `ini:"eta_init_mean"`
	EtaInitStdev       float64 `ini:"eta_init_stdev"`
	AInitMean          float64 `ini:"a_init_mean"`
	AInitStdev         float64 `ini:"a_init_stdev"`
	BInitMean          float64 `ini:"b_init_mean"`
	BInitStdev         float64 `ini:"b_init_stdev"`
	CInitMean          float64 `ini:"c_init_mean"`
	CInitStdev         float64 `ini:"c_init_stdev"`
	DInitMean          float64 `ini:"d_init_mean"`
	DInitStdev         float64 `ini:"d_init_stdev"`
	MDInitMean         float64 `ini:"m_d_init_mean"`
	MDInitStdev        float64 `ini:"m_d_init_stdev"`
	PlasticityInitType string  `ini:"plasticity_init_type"`
	PlasticityMaxValue float64 `ini:"plasticity_max_value"`
	PlasticityMinValue float64 `ini:"plasticity_min_value"`

	// --- Calculated/Derived ---
	InputKeys    []int `ini:"-"`
	OutputKeys   []int `ini:"-"`
	NodeKeyIndex int   `ini:"-"`

	// Function tables used to resolve node activation/aggregation names.
	ActivationDefs  map[string]ActivationType  `ini:"-"`
	AggregationDefs map[string]AggregationType `ini:"-"`
}

// NewConfig returns a configuration with defaults for a network with the
// given number of inputs and outputs. Input keys are -1..-numInputs and
// output keys are 0..numOutputs-1.
func NewConfig(numInputs, numOutputs int) *Config {
	c := &Config{
		Neat: NeatConfig{
			NetworkType:    "recurrent",
			ModulatoryMode: "bool",
			EvoparamMode:   "global",
			LogLevel:       "info",
		},
		Genome: GenomeConfig{
			NumInputs:          numInputs,
			NumOutputs:         numOutputs,
			InitialConnection:  "unconnected",
			BiasInitType:       "gaussian",
			BiasInitStdev:      1.0,
			BiasMaxValue:       30.0,
			BiasMinValue:       -30.0,
			ResponseInitMean:   1.0,
			ResponseInitType:   "gaussian",
			ResponseMaxValue:   30.0,
			ResponseMinValue:   -30.0,
			ModulatoryInitMean: 0.0,
			ModulatoryInitType: "uniform",
			ModulatoryMaxValue: 1.0,
			ModulatoryMinValue: 0.0,
			ActivationDefault:  "sigmoid",
			ActivationOptions:  []string{"sigmoid"},
			AggregationDefault: "sum",
			AggregationOptions: []string{"sum"},
			WeightInitType:     "gaussian",
			WeightInitStdev:    1.0,
			WeightMaxValue:     30.0,
			WeightMinValue:     -30.0,
			EnabledDefault:     "True",
			PlasticityInitType: "gaussian",
			PlasticityMaxValue: 1.0,
			PlasticityMinValue: -1.0,
		},
	}
	c.Genome.derive()
	return c
}

// derive fills in the keys and function tables computed from the counts.
func (gc *GenomeConfig) derive() {
	gc.InputKeys = make([]int, gc.NumInputs)
	for i := 0; i < gc.NumInputs; i++ {
		gc.InputKeys[i] = -(i + 1)
	}
	gc.OutputKeys = make([]int, gc.NumOutputs)
	for i := 0; i < gc.NumOutputs; i++ {
		gc.OutputKeys[i] = i
	}
	// Hidden node keys start after the output keys.
	gc.NodeKeyIndex = gc.NumOutputs

	gc.ActivationDefs = make(map[string]ActivationType, len(ActivationFunctions))
	for name, fn := range ActivationFunctions {
		gc.ActivationDefs[name] = fn
	}
	gc.AggregationDefs = make(map[string]AggregationType, len(AggregationFunctions))
	for name, fn := range AggregationFunctions {
		gc.AggregationDefs[name] = fn
	}
}

// LoadConfig loads configuration parameters from an INI file. Keys absent
// from the file keep the defaults of NewConfig.
func LoadConfig(filePath string) (*Config, error) {
	cfg, err := ini.LoadSources(ini.LoadOptions{
		IgnoreInlineComment:         true,
		UnescapeValueCommentSymbols: true,
	}, filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file '%s': %w", filePath, err)
	}

	config := NewConfig(0, 0)

	if err := cfg.Section("NEAT").MapTo(&config.Neat); err != nil {
		return nil, fmt.Errorf("failed to map [NEAT] section: %w", err)
	}
	if err := cfg.Section("DefaultGenome").MapTo(&config.Genome); err != nil {
		return nil, fmt.Errorf("failed to map [DefaultGenome] section: %w", err)
	}

	// Inline comments are kept by the loader; strip them from string values.
	config.Neat.NetworkType = cleanIniString(config.Neat.NetworkType)
	config.Neat.ModulatoryMode = cleanIniString(config.Neat.ModulatoryMode)
	config.Neat.EvoparamMode = cleanIniString(config.Neat.EvoparamMode)
	config.Neat.LogLevel = cleanIniString(config.Neat.LogLevel)
	config.Genome.InitialConnection = cleanIniString(config.Genome.InitialConnection)
	config.Genome.BiasInitType = cleanIniString(config.Genome.BiasInitType)
	config.Genome.ResponseInitType = cleanIniString(config.Genome.ResponseInitType)
	config.Genome.ModulatoryInitType = cleanIniString(config.Genome.ModulatoryInitType)
	config.Genome.ActivationDefault = cleanIniString(config.Genome.ActivationDefault)
	config.Genome.AggregationDefault = cleanIniString(config.Genome.AggregationDefault)
	config.Genome.WeightInitType = cleanIniString(config.Genome.WeightInitType)
	config.Genome.EnabledDefault = cleanIniString(config.Genome.EnabledDefault)
	config.Genome.PlasticityInitType = cleanIniString(config.Genome.PlasticityInitType)
	config.Genome.ActivationOptions = cleanIniList(config.Genome.ActivationOptions)
	config.Genome.AggregationOptions = cleanIniList(config.Genome.AggregationOptions)

	config.Genome.derive()

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks value ranges and the names of modes and initializers.
func (c *Config) Validate() error {
	gc := &c.Genome
	if gc.NumInputs <= 0 {
		return fmt.Errorf("config error: num_inputs must be positive")
	}
	if gc.NumOutputs <= 0 {
		return fmt.Errorf("config error: num_outputs must be positive")
	}
	if gc.NumHidden < 0 {
		return fmt.Errorf("config error: num_hidden cannot be negative")
	}
	if gc.CompatibilityGlobalParamCoefficient < 0 {
		return fmt.Errorf("config error: compatibility_global_param_coefficient cannot be negative")
	}
	if gc.CompatibilityLocalParamCoefficient < 0 {
		return fmt.Errorf("config error: compatibility_local_param_coefficient cannot be negative")
	}
	if gc.BiasMaxValue < gc.BiasMinValue {
		return fmt.Errorf("config error: bias_max_value cannot be less than bias_min_value")
	}
	if gc.ResponseMaxValue < gc.ResponseMinValue {
		return fmt.Errorf("config error: response_max_value cannot be less than response_min_value")
	}
	if gc.WeightMaxValue < gc.WeightMinValue {
		return fmt.Errorf("config error: weight_max_value cannot be less than weight_min_value")
	}
	if gc.PlasticityMaxValue < gc.PlasticityMinValue {
		return fmt.Errorf("config error: plasticity_max_value cannot be less than plasticity_min_value")
	}
	if gc.ModulatoryMaxValue < gc.ModulatoryMinValue {
		return fmt.Errorf("config error: modulatory_max_value cannot be less than modulatory_min_value")
	}
	if gc.ModulatoryMinValue < 0 || gc.ModulatoryMaxValue > 1 {
		return fmt.Errorf("%w: modulatory_min_value and modulatory_max_value must lie in [0, 1]", ErrModulatoryRange)
	}

	if len(gc.ActivationOptions) == 0 {
		return fmt.Errorf("config error: activation_options must be specified")
	}
	for _, name := range gc.ActivationOptions {
		if _, err := gc.ActivationFunction(name); err != nil {
			return fmt.Errorf("config error: activation_options: %w", err)
		}
	}
	if len(gc.AggregationOptions) == 0 {
		return fmt.Errorf("config error: aggregation_options must be specified")
	}
	for _, name := range gc.AggregationOptions {
		if _, err := gc.AggregationFunction(name); err != nil {
			return fmt.Errorf("config error: aggregation_options: %w", err)
		}
	}

	for _, initType := range []string{gc.BiasInitType, gc.ResponseInitType, gc.ModulatoryInitType, gc.WeightInitType, gc.PlasticityInitType} {
		if !validInitTypes[strings.ToLower(initType)] {
			return fmt.Errorf("config error: invalid init_type '%s', must be 'gaussian' or 'uniform'", initType)
		}
	}

	if _, _, err := parseInitialConnection(gc.InitialConnection); err != nil {
		return err
	}
	if _, err := ParseModulatoryMode(c.Neat.ModulatoryMode); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if _, err := c.CheckScope(); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if !validNetworkTypes[strings.ToLower(c.Neat.NetworkType)] {
		return fmt.Errorf("config error: %w: network_type '%s', must be one of 'feedforward', 'recurrent', 'modulated'",
			ErrInvalidMode, c.Neat.NetworkType)
	}
	return nil
}

var validInitTypes = map[string]bool{"gaussian": true, "normal": true, "uniform": true, "": true}

var validNetworkTypes = map[string]bool{"feedforward": true, "recurrent": true, "modulated": true}

var validConnections = map[string]bool{
	"unconnected": true, "fs_neat_nohidden": true, "fs_neat": true, "fs_neat_hidden": true,
	"full_nodirect": true, "full": true, "full_direct": true,
	"partial_nodirect": true, "partial": true, "partial_direct": true,
}

// parseInitialConnection splits an initial_connection value such as
// "partial_direct 0.5" into its type and connection fraction.
func parseInitialConnection(s string) (string, float64, error) {
	parts := strings.Fields(s)
	if len(parts) == 0 {
		return "unconnected", 1.0, nil
	}
	base := parts[0]
	if !validConnections[base] {
		return "", 0, fmt.Errorf("config error: invalid initial_connection type '%s'", base)
	}
	if !strings.HasPrefix(base, "partial") {
		return base, 1.0, nil
	}
	if len(parts) != 2 {
		return "", 0, fmt.Errorf("config error: initial_connection '%s' requires a connection fraction", base)
	}
	fraction, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return "", 0, fmt.Errorf("config error: invalid connection fraction '%s': %w", parts[1], err)
	}
	if fraction < 0 || fraction > 1 {
		return "", 0, fmt.Errorf("config error: connection fraction must be between 0 and 1, got %g", fraction)
	}
	return base, fraction, nil
}

// GetNewNodeKey returns the next unused hidden node key.
func (gc *GenomeConfig) GetNewNodeKey() int {
	key := gc.NodeKeyIndex
	gc.NodeKeyIndex++
	return key
}

// cleanIniString removes inline comments and trims whitespace from a string read from INI.
func cleanIniString(s string) string {
	if idx := strings.IndexAny(s, "#;"); idx != -1 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}

// cleanIniList re-splits a space-delimited list after stripping an inline comment.
func cleanIniList(values []string) []string {
	return strings.Fields(cleanIniString(strings.Join(values, " ")))
}
