package afsk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func Test_SinSample_symmetricAroundHalfCycle(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		i := rapid.IntRange(0, SinLen-1).Draw(t, "i")
		sum := int(SinSample(i)) + int(SinSample((i+SinLen/2)%SinLen))
		assert.Equal(t, 255, sum)
	})
}

func Test_SinSample_outOfRangePanics(t *testing.T) {
	assert.Panics(t, func() { SinSample(-1) })
	assert.Panics(t, func() { SinSample(SinLen) })
}

func Test_SinSample_knownValues(t *testing.T) {
	assert.Equal(t, uint8(128), SinSample(0))
	assert.Equal(t, uint8(255), SinSample(SinLen/4))
	assert.Equal(t, uint8(127), SinSample(SinLen/2))
	assert.Equal(t, uint8(0), SinSample(3*SinLen/4))
}
