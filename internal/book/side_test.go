package book

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"matchbook/internal/common"
)

func TestSide_BestPrice_BidsDescending(t *testing.T) {
	s := NewSide(common.Buy)
	s.Append(1, 99, 10)
	s.Append(2, 101, 5)
	s.Append(3, 100, 7)

	best, ok := s.BestPrice()
	assert.True(t, ok)
	assert.Equal(t, common.Price(101), best, "best bid is the highest resting price")
}

func TestSide_BestPrice_AsksAscending(t *testing.T) {
	s := NewSide(common.Sell)
	s.Append(1, 99, 10)
	s.Append(2, 101, 5)
	s.Append(3, 100, 7)

	best, ok := s.BestPrice()
	assert.True(t, ok)
	assert.Equal(t, common.Price(99), best, "best ask is the lowest resting price")
}

func TestSide_BestPrice_Empty(t *testing.T) {
	s := NewSide(common.Buy)
	_, ok := s.BestPrice()
	assert.False(t, ok)
	assert.True(t, s.IsEmpty())
}

func TestSide_AppendAccumulatesVolumeAtSamePrice(t *testing.T) {
	s := NewSide(common.Buy)
	s.Append(1, 100, 10)
	s.Append(2, 100, 5)

	assert.Equal(t, common.Quantity(15), s.TotalVolume)
	depth := s.Depth(10)
	assert.Len(t, depth, 1)
	assert.Equal(t, common.Quantity(15), depth[0].Volume)
}

func TestSide_RemoveDropsEmptyLevel(t *testing.T) {
	s := NewSide(common.Buy)
	s.Append(1, 100, 10)

	s.Remove(1, 100, 10)

	assert.True(t, s.IsEmpty())
	assert.Equal(t, common.Quantity(0), s.TotalVolume)
}

func TestSide_TakeAndPutQueue(t *testing.T) {
	s := NewSide(common.Buy)
	s.Append(1, 100, 10)

	lvl, ok := s.TakeQueue(100)
	assert.True(t, ok)
	assert.True(t, s.IsEmpty(), "level is detached, the tree no longer has it")

	s.PutQueue(lvl)
	assert.False(t, s.IsEmpty())
	best, _ := s.BestPrice()
	assert.Equal(t, common.Price(100), best)
}

func TestSide_PutQueueIgnoresEmptyLevel(t *testing.T) {
	s := NewSide(common.Buy)
	s.Append(1, 100, 10)
	lvl, _ := s.TakeQueue(100)
	lvl.Remove(1, 10)

	s.PutQueue(lvl)

	assert.True(t, s.IsEmpty(), "an emptied level must never be reattached")
}

func TestSide_DepthBestFirstAndLimit(t *testing.T) {
	s := NewSide(common.Sell)
	s.Append(1, 102, 1)
	s.Append(2, 100, 1)
	s.Append(3, 101, 1)

	depth := s.Depth(2)
	assert.Len(t, depth, 2)
	assert.Equal(t, common.Price(100), depth[0].Price)
	assert.Equal(t, common.Price(101), depth[1].Price)
}

func TestSide_WalkBestFirstStopsEarly(t *testing.T) {
	s := NewSide(common.Buy)
	s.Append(1, 99, 1)
	s.Append(2, 101, 1)
	s.Append(3, 100, 1)

	var seen []common.Price
	s.WalkBestFirst(func(lvl *Level) bool {
		seen = append(seen, lvl.Price)
		return lvl.Price != 100
	})

	assert.Equal(t, []common.Price{101, 100}, seen)
}
