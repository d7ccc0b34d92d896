package neat

import (
	"fmt"
	"math"
)

// AggregationType defines the type for aggregation functions.
type AggregationType func(inputs []float64) float64

// AggregationFunctions is the default name -> function table copied into
// every GenomeConfig.
var AggregationFunctions = map[string]AggregationType{
	"sum":     AggregateSum,
	"product": AggregateProduct,
	"min":     AggregateMin,
	"max":     AggregateMax,
	"maxabs":  AggregateMaxAbs,
	"mean":    AggregateMean,
	"median":  AggregateMedian,
	"average": AggregateMean,
}

// GetAggregation retrieves an aggregation function from the default table.
func GetAggregation(name string) (AggregationType, error) {
	if fn, ok := AggregationFunctions[name]; ok {
		return fn, nil
	}
	return nil, fmt.Errorf("%w: aggregation '%s'", ErrUnknownFunction, name)
}

// AggregationFunction resolves an aggregation name through the config's table.
func (gc *GenomeConfig) AggregationFunction(name string) (AggregationType, error) {
	if gc.AggregationDefs == nil {
		return GetAggregation(name)
	}
	if fn, ok := gc.AggregationDefs[name]; ok {
		return fn, nil
	}
	return nil, fmt.Errorf("%w: aggregation '%s'", ErrUnknownFunction, name)
}

// --- Standard Aggregation Function Implementations ---

func AggregateSum(inputs []float64) float64 {
	return Sum(inputs)
}

// AggregateProduct multiplies the inputs. The empty product is 1.
func AggregateProduct(inputs []float64) float64 {
	product := 1.0
	for _, v := range inputs {
		product *= v
	}
	return product
}

// AggregateMin returns the smallest input, or 0 for no inputs.
func AggregateMin(inputs []float64) float64 {
	if len(inputs) == 0 {
		return 0.0
	}
	return MinFloat(inputs)
}

// AggregateMax returns the largest input, or 0 for no inputs.
func AggregateMax(inputs []float64) float64 {
	if len(inputs) == 0 {
		return 0.0
	}
	return MaxFloat(inputs)
}

// AggregateMaxAbs returns the input with the largest magnitude, keeping its sign.
func AggregateMaxAbs(inputs []float64) float64 {
	if len(inputs) == 0 {
		return 0.0
	}
	best := inputs[0]
	for _, v := range inputs[1:] {
		if math.Abs(v) > math.Abs(best) {
			best = v
		}
	}
	return best
}

func AggregateMean(inputs []float64) float64 {
	return Mean(inputs)
}

// AggregateMedian returns the median input, or 0 for no inputs.
func AggregateMedian(inputs []float64) float64 {
	if len(inputs) == 0 {
		return 0.0
	}
	return Median(inputs)
}
