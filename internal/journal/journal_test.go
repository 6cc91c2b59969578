package journal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"matchbook/internal/common"
	"matchbook/internal/engine"
)

func engineStateFixture() engine.State {
	return engine.State{
		Orders: map[common.OrderID]common.Order{
			1: {ID: 1, Side: common.Buy, Price: 100, OrigQty: 10},
		},
		Bids:   map[common.Price][]common.OrderID{100: {1}},
		Asks:   map[common.Price][]common.OrderID{},
		NextID: 2,
		LastOp: 1,
	}
}

func TestLog_AppendIgnoresNilEntries(t *testing.T) {
	l := NewLog()
	l.Append(nil)
	assert.Equal(t, 0, l.Len())
}

func TestLog_AppendAndEntriesPreservesOrder(t *testing.T) {
	l := NewLog()
	l.Append(&common.JournalLog{OpID: 1, Op: common.JournalMarket})
	l.Append(&common.JournalLog{OpID: 2, Op: common.JournalLimit})

	entries := l.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, uint64(1), entries[0].OpID)
	assert.Equal(t, uint64(2), entries[1].OpID)
}

func TestLog_EntriesReturnsACopy(t *testing.T) {
	l := NewLog()
	l.Append(&common.JournalLog{OpID: 1})

	entries := l.Entries()
	entries[0].OpID = 99

	assert.Equal(t, uint64(1), l.Entries()[0].OpID, "mutating the returned slice must not affect the log")
}

func TestLog_Truncate(t *testing.T) {
	l := NewLog()
	l.Append(&common.JournalLog{OpID: 1})
	l.Truncate()
	assert.Equal(t, 0, l.Len())
}

func TestSorted_OrdersByOpIDRegardlessOfInputOrder(t *testing.T) {
	in := []common.JournalLog{
		{OpID: 3},
		{OpID: 1},
		{OpID: 2},
	}

	out := Sorted(in)

	require.Len(t, out, 3)
	assert.Equal(t, uint64(1), out[0].OpID)
	assert.Equal(t, uint64(2), out[1].OpID)
	assert.Equal(t, uint64(3), out[2].OpID)
	assert.Equal(t, uint64(3), in[0].OpID, "Sorted must not mutate its input")
}

func TestSnapshot_StateRoundTrip(t *testing.T) {
	orig := engineStateFixture()

	snap := FromState("TEST", 12345, orig)
	assert.Equal(t, "TEST", snap.Symbol)
	assert.Equal(t, int64(12345), snap.TS)

	back := snap.ToState()
	assert.Equal(t, orig.NextID, back.NextID)
	assert.Equal(t, orig.LastOp, back.LastOp)
	assert.Equal(t, orig.Orders, back.Orders)
}
