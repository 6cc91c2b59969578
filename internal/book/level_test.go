package book

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"matchbook/internal/common"
)

func TestLevel_AppendAndHead(t *testing.T) {
	lvl := newLevel(100)

	lvl.Append(1, 10)
	lvl.Append(2, 5)

	head, ok := lvl.Head()
	assert.True(t, ok)
	assert.Equal(t, common.OrderID(1), head)
	assert.Equal(t, common.Quantity(15), lvl.Volume())
	assert.False(t, lvl.IsEmpty())
	assert.Equal(t, []common.OrderID{1, 2}, lvl.OrderIDs())
}

func TestLevel_PopHead(t *testing.T) {
	lvl := newLevel(100)
	lvl.Append(1, 10)
	lvl.Append(2, 5)

	lvl.PopHead()

	head, ok := lvl.Head()
	assert.True(t, ok)
	assert.Equal(t, common.OrderID(2), head)
}

func TestLevel_RemoveFromMiddle(t *testing.T) {
	lvl := newLevel(100)
	lvl.Append(1, 10)
	lvl.Append(2, 5)
	lvl.Append(3, 7)

	lvl.Remove(2, 5)

	assert.Equal(t, []common.OrderID{1, 3}, lvl.OrderIDs())
	assert.Equal(t, common.Quantity(17), lvl.Volume())
}

func TestLevel_RemoveUnknownIsNoop(t *testing.T) {
	lvl := newLevel(100)
	lvl.Append(1, 10)

	lvl.Remove(99, 3)

	assert.Equal(t, []common.OrderID{1}, lvl.OrderIDs())
	assert.Equal(t, common.Quantity(10), lvl.Volume())
}

func TestLevel_Shrink(t *testing.T) {
	lvl := newLevel(100)
	lvl.Append(1, 10)

	lvl.Shrink(4)

	assert.Equal(t, common.Quantity(6), lvl.Volume())
	head, ok := lvl.Head()
	assert.True(t, ok)
	assert.Equal(t, common.OrderID(1), head)
}

func TestLevel_IsEmpty(t *testing.T) {
	lvl := newLevel(100)
	assert.True(t, lvl.IsEmpty())

	lvl.Append(1, 10)
	assert.False(t, lvl.IsEmpty())

	lvl.Remove(1, 10)
	assert.True(t, lvl.IsEmpty())
}
