package satmath

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdd(t *testing.T) {
	assert.Equal(t, uint64(150), Add(100, 50))
	assert.Equal(t, uint64(math.MaxUint64), Add(math.MaxUint64, 1))
}

func TestSub(t *testing.T) {
	assert.Equal(t, uint64(50), Sub(100, 50))
	assert.Equal(t, uint64(0), Sub(50, 100))
}

func TestAddSub(t *testing.T) {
	assert.Equal(t, uint64(120), AddSub(100, 50, 30))
	assert.Equal(t, uint64(0), AddSub(100, 50, 200))
}
