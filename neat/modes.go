package neat

import (
	"fmt"
	"strings"
)

// ParamScope selects where the Hebbian coefficients of a connection come from.
type ParamScope int

const (
	// ScopeGlobal shares the genome's single global-parameter record across all connections.
	ScopeGlobal ParamScope = iota
	// ScopeLocal uses the coefficients stored on each connection.
	ScopeLocal
)

// ParseParamScope converts an evoparam_mode value ("global" or "local").
func ParseParamScope(s string) (ParamScope, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "global":
		return ScopeGlobal, nil
	case "local":
		return ScopeLocal, nil
	default:
		return 0, fmt.Errorf("%w: evoparam_mode must be 'global' or 'local', got '%s'", ErrInvalidMode, s)
	}
}

func (s ParamScope) String() string {
	switch s {
	case ScopeGlobal:
		return "global"
	case ScopeLocal:
		return "local"
	default:
		return fmt.Sprintf("ParamScope(%d)", int(s))
	}
}

// ModulatoryMode selects how a node's activation is split between its
// standard output and its modulatory signal.
type ModulatoryMode int

const (
	// ModulatoryBool routes the whole activation to the modulatory signal when
	// the ratio is above 0.5, and to the standard output otherwise.
	ModulatoryBool ModulatoryMode = iota
	// ModulatoryFloat splits the activation proportionally to the ratio.
	ModulatoryFloat
)

// ParseModulatoryMode converts a modulatory_mode value ("bool" or "float").
func ParseModulatoryMode(s string) (ModulatoryMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bool":
		return ModulatoryBool, nil
	case "float":
		return ModulatoryFloat, nil
	default:
		return 0, fmt.Errorf("%w: modulatory_mode must be 'bool' or 'float', got '%s'", ErrInvalidMode, s)
	}
}

func (m ModulatoryMode) String() string {
	switch m {
	case ModulatoryBool:
		return "bool"
	case ModulatoryFloat:
		return "float"
	default:
		return fmt.Sprintf("ModulatoryMode(%d)", int(m))
	}
}

// CheckScope verifies that the selected scope does not coexist with a
// nonzero compatibility weighting for the other scope. The genome-management
// side owns this contract; a violation is reported, never corrected.
func (c *Config) CheckScope() (ParamScope, error) {
	scope, err := ParseParamScope(c.Neat.EvoparamMode)
	if err != nil {
		return 0, err
	}
	switch scope {
	case ScopeLocal:
		if c.Genome.CompatibilityGlobalParamCoefficient != 0 {
			return 0, fmt.Errorf("%w: evoparam_mode is 'local', but compatibility_global_param_coefficient is %g",
				ErrScopeConsistency, c.Genome.CompatibilityGlobalParamCoefficient)
		}
	case ScopeGlobal:
		if c.Genome.CompatibilityLocalParamCoefficient != 0 {
			return 0, fmt.Errorf("%w: evoparam_mode is 'global', but compatibility_local_param_coefficient is %g",
				ErrScopeConsistency, c.Genome.CompatibilityLocalParamCoefficient)
		}
	}
	return scope, nil
}
