// Package stats provides the undefined-aware numeric primitives shared by
// every derived-metric computation: a Value that is either a float or
// undefined, a safe division that never panics or silently yields zero, and
// min-max scaling helpers built on gonum.
package stats

import (
	"math"
	"strconv"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Value is a float64 that may be undefined. Undefined is not an error: it
// marks "no data" so it can never be confused with a real zero.
type Value struct {
	val     float64
	defined bool
}

// Of returns a defined Value. NaN and infinities are treated as undefined.
func Of(v float64) Value {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Value{}
	}
	return Value{val: v, defined: true}
}

// Undefined returns the undefined Value.
func Undefined() Value {
	return Value{}
}

// Defined reports whether the value carries data.
func (v Value) Defined() bool {
	return v.defined
}

// Float returns the underlying float and whether it is defined.
func (v Value) Float() (float64, bool) {
	return v.val, v.defined
}

// Or returns the value, or fallback when undefined.
func (v Value) Or(fallback float64) float64 {
	if !v.defined {
		return fallback
	}
	return v.val
}

// Div divides a by b, undefined when b is zero.
func Div(a, b float64) Value {
	if b == 0 {
		return Undefined()
	}
	return Of(a / b)
}

// DivBy divides the value by b, undefined when either operand is.
func (v Value) DivBy(b Value) Value {
	bv, ok := b.Float()
	if !v.defined || !ok || bv == 0 {
		return Undefined()
	}
	return Of(v.val / bv)
}

// Scale scales the value by f, undefined stays undefined.
func (v Value) Scale(f float64) Value {
	if !v.defined {
		return Undefined()
	}
	return Of(v.val * f)
}

// String renders the value for tabular output: an empty cell when undefined.
func (v Value) String() string {
	if !v.defined {
		return ""
	}
	return strconv.FormatFloat(v.val, 'f', -1, 64)
}

// Parse reads a tabular cell. Empty cells and unparsable text are undefined.
func Parse(s string) Value {
	if s == "" {
		return Undefined()
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Undefined()
	}
	return Of(f)
}

// Mean is the arithmetic mean, undefined for an empty slice.
func Mean(xs []float64) Value {
	if len(xs) == 0 {
		return Undefined()
	}
	return Of(stat.Mean(xs, nil))
}

// MeanDefined averages the defined entries only, undefined when none are.
func MeanDefined(xs []Value) Value {
	vals := make([]float64, 0, len(xs))
	for _, x := range xs {
		if f, ok := x.Float(); ok {
			vals = append(vals, f)
		}
	}
	return Mean(vals)
}

// MinMax returns the extremes of xs, ok=false for an empty slice.
func MinMax(xs []float64) (min, max float64, ok bool) {
	if len(xs) == 0 {
		return 0, 0, false
	}
	return floats.Min(xs), floats.Max(xs), true
}

// Scale01 maps v from [min,max] onto [0,1]. A zero-width range maps to 0.
func Scale01(v, min, max float64) float64 {
	if max-min == 0 {
		return 0
	}
	return (v - min) / (max - min)
}

// ScaleRange maps v from [min,max] onto [lo,hi]. A zero-width range maps to
// the midpoint of the target range.
func ScaleRange(v, min, max, lo, hi float64) float64 {
	if max-min == 0 {
		return (lo + hi) / 2
	}
	return lo + (hi-lo)*(v-min)/(max-min)
}
