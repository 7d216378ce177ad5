package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOf_NonFiniteIsUndefined(t *testing.T) {
	assert.True(t, Of(1.5).Defined())
	assert.False(t, Of(math.NaN()).Defined())
	assert.False(t, Of(math.Inf(1)).Defined())
	assert.False(t, Of(math.Inf(-1)).Defined())
}

func TestDiv_ZeroDenominator(t *testing.T) {
	v := Div(10, 4)
	f, ok := v.Float()
	require.True(t, ok)
	assert.InDelta(t, 2.5, f, 1e-12)

	assert.False(t, Div(10, 0).Defined())
}

func TestDivBy_UndefinedPropagates(t *testing.T) {
	assert.False(t, Undefined().DivBy(Of(2)).Defined())
	assert.False(t, Of(2).DivBy(Undefined()).Defined())
	assert.False(t, Of(2).DivBy(Of(0)).Defined())
	assert.Equal(t, 4.0, Of(8).DivBy(Of(2)).Or(0))
}

func TestOr(t *testing.T) {
	assert.Equal(t, 3.0, Of(3).Or(99))
	assert.Equal(t, 99.0, Undefined().Or(99))
}

func TestStringParse_EmptyCell(t *testing.T) {
	assert.Equal(t, "", Undefined().String())
	assert.Equal(t, "2.5", Of(2.5).String())

	assert.False(t, Parse("").Defined())
	assert.False(t, Parse("n/a").Defined())
	assert.Equal(t, 2.5, Parse("2.5").Or(0))
}

func TestMeanDefined_SkipsUndefined(t *testing.T) {
	m := MeanDefined([]Value{Of(1), Undefined(), Of(3)})
	f, ok := m.Float()
	require.True(t, ok)
	assert.InDelta(t, 2.0, f, 1e-12)

	assert.False(t, MeanDefined([]Value{Undefined(), Undefined()}).Defined())
	assert.False(t, Mean(nil).Defined())
}

func TestScale01_CollapsedRange(t *testing.T) {
	assert.Equal(t, 0.5, Scale01(5, 0, 10))
	assert.Equal(t, 0.0, Scale01(7, 7, 7))
}

func TestScaleRange_CollapsedRangeMapsToMidpoint(t *testing.T) {
	assert.Equal(t, 1.0, ScaleRange(0, 0, 10, 1, 5))
	assert.Equal(t, 5.0, ScaleRange(10, 0, 10, 1, 5))
	assert.Equal(t, 3.0, ScaleRange(4, 4, 4, 1, 5))
}
