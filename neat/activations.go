package neat

import (
	"fmt"
	"math"
)

// ActivationType defines the type for activation functions.
type ActivationType func(input float64, params ...float64) float64

// ActivationFunctions is the default name -> function table copied into
// every GenomeConfig. The curves follow neat-python, including its input
// scaling and clamping.
var ActivationFunctions = map[string]ActivationType{
	"sigmoid":  Sigmoid,
	"tanh":     Tanh,
	"sin":      Sine,
	"sine":     Sine,
	"cosine":   Cosine,
	"gauss":    Gaussian,
	"gaussian": Gaussian,
	"relu":     ReLU,
	"elu":      ELU,
	"lelu":     LeakyReLU,
	"selu":     SELU,
	"softplus": Softplus,
	"identity": Identity,
	"clamped":  Clamped,
	"inv":      Inv,
	"log":      Log,
	"exp":      Exp,
	"abs":      Absolute,
	"absolute": Absolute,
	"hat":      Hat,
	"square":   Square,
	"cube":     Cube,
}

// GetActivation retrieves an activation function from the default table.
func GetActivation(name string) (ActivationType, error) {
	if fn, ok := ActivationFunctions[name]; ok {
		return fn, nil
	}
	return nil, fmt.Errorf("%w: activation '%s'", ErrUnknownFunction, name)
}

// ActivationFunction resolves an activation name through the config's table.
func (gc *GenomeConfig) ActivationFunction(name string) (ActivationType, error) {
	if gc.ActivationDefs == nil {
		return GetActivation(name)
	}
	if fn, ok := gc.ActivationDefs[name]; ok {
		return fn, nil
	}
	return nil, fmt.Errorf("%w: activation '%s'", ErrUnknownFunction, name)
}

// --- Standard Activation Function Implementations ---

// Sigmoid is the logistic function of 5x, with the argument clamped to [-60, 60].
func Sigmoid(x float64, params ...float64) float64 {
	z := clamp(5.0*x, -60.0, 60.0)
	return 1.0 / (1.0 + math.Exp(-z))
}

// Tanh is tanh(2.5x), with the argument clamped to [-60, 60].
func Tanh(x float64, params ...float64) float64 {
	return math.Tanh(clamp(2.5*x, -60.0, 60.0))
}

// Sine is sin(5x), with the argument clamped to [-60, 60].
func Sine(x float64, params ...float64) float64 {
	return math.Sin(clamp(5.0*x, -60.0, 60.0))
}

func Cosine(x float64, params ...float64) float64 {
	return math.Cos(clamp(5.0*x, -60.0, 60.0))
}

// Gaussian is exp(-5x^2), with x clamped to [-3.4, 3.4].
func Gaussian(x float64, params ...float64) float64 {
	z := clamp(x, -3.4, 3.4)
	return math.Exp(-5.0 * z * z)
}

func ReLU(x float64, params ...float64) float64 {
	return math.Max(0, x)
}

func ELU(x float64, params ...float64) float64 {
	if x > 0 {
		return x
	}
	return math.Exp(x) - 1
}

func LeakyReLU(x float64, params ...float64) float64 {
	if x > 0 {
		return x
	}
	return 0.005 * x
}

func SELU(x float64, params ...float64) float64 {
	const lam = 1.0507009873554804934193349852946
	const alpha = 1.6732632423543772848170429916717
	if x > 0 {
		return lam * x
	}
	return lam * alpha * (math.Exp(x) - 1)
}

// Softplus is 0.2*log(1+exp(5x)), with the argument clamped to [-60, 60].
func Softplus(x float64, params ...float64) float64 {
	z := clamp(5.0*x, -60.0, 60.0)
	return 0.2 * math.Log(1+math.Exp(z))
}

// Identity activation function (linear).
func Identity(x float64, params ...float64) float64 {
	return x
}

// Clamped clamps its input to [-1, 1].
func Clamped(x float64, params ...float64) float64 {
	return clamp(x, -1.0, 1.0)
}

// Inv returns 1/x, or 0 for x == 0.
func Inv(x float64, params ...float64) float64 {
	if x == 0.0 {
		return 0.0
	}
	return 1.0 / x
}

// Log returns log(max(1e-7, x)).
func Log(x float64, params ...float64) float64 {
	return math.Log(math.Max(1e-7, x))
}

// Exp returns e^x with x clamped to [-60, 60].
func Exp(x float64, params ...float64) float64 {
	return math.Exp(clamp(x, -60.0, 60.0))
}

func Absolute(x float64, params ...float64) float64 {
	return math.Abs(x)
}

// Hat is a triangular pulse centered at 0.
func Hat(x float64, params ...float64) float64 {
	return math.Max(0.0, 1.0-math.Abs(x))
}

func Square(x float64, params ...float64) float64 {
	return x * x
}

func Cube(x float64, params ...float64) float64 {
	return x * x * x
}
