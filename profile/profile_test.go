package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConcentrationPivot(t *testing.T) {
	cs := Concentration([]float64{12, 13})
	assert.InDelta(t, ConcentrationNorm, cs[0], 1e-12)
	assert.Less(t, cs[1], cs[0], "concentration should fall with mass")
}

func TestCumulativeNFWBounds(t *testing.T) {
	for _, c := range []float64{1, 5, 10, 20} {
		assert.InDelta(t, 0, CumulativeNFW(0, c), 1e-12)
		assert.InDelta(t, 1, CumulativeNFW(1, c), 1e-12)
	}
}

func TestInverseCumulativeNFW(t *testing.T) {
	c := 8.0
	for _, x := range []float64{0.01, 0.1, 0.3, 0.77, 0.99} {
		u := CumulativeNFW(x, c)
		assert.InDelta(t, x, InverseCumulativeNFW(u, c), 1e-8)
	}
	assert.Equal(t, 0.0, InverseCumulativeNFW(-0.1, c))
	assert.Equal(t, 1.0, InverseCumulativeNFW(1.5, c))
}
