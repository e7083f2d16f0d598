package numeric

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRound(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0.29, Round(2.0/7.0, 2))
	assert.Equal(t, 3.3, Round(10.0/3.0, 1))
	assert.Equal(t, 67.0, Round(200.0/3.0, 0))
}

func TestRatio(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0.5, Ratio(1, 2))
	assert.Equal(t, 0.0, Ratio(1, 0))
	assert.False(t, math.IsNaN(Ratio(0, 0)))
}

func TestClampMeanAbs(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 1.0, Clamp(3, 0, 1))
	assert.Equal(t, 0.0, Clamp(-1, 0, 1))
	assert.Equal(t, 0.5, Clamp(0.5, 0, 1))

	assert.Equal(t, 0.0, Mean(nil))
	assert.Equal(t, 2.0, Mean([]float64{1, 2, 3}))

	assert.Equal(t, 3, Abs(-3))
	assert.Equal(t, 3, Abs(3))
}
