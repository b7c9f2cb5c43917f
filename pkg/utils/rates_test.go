package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGrowthRate(t *testing.T) {
	assert.Equal(t, 12.0, GrowthRate(12, 100))
	assert.Equal(t, 33.3, GrowthRate(1, 3))
	assert.Equal(t, 66.7, GrowthRate(2, 3))
	assert.Equal(t, 0.0, GrowthRate(5, 0))
	assert.Equal(t, 100.0, GrowthRate(4, 4))
}

func TestWholePercent(t *testing.T) {
	assert.Equal(t, int64(33), WholePercent(1, 3))
	assert.Equal(t, int64(67), WholePercent(2, 3))
	assert.Equal(t, int64(0), WholePercent(1, 0))
}
