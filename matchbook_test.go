package matchbook

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClock() func() int64 {
	tick := int64(0)
	return func() int64 {
		tick++
		return tick
	}
}

func newTestBook() *Book {
	return New("ACME", WithClock(testClock()))
}

func TestNew_AssignsInstanceIDAndSymbol(t *testing.T) {
	b := newTestBook()
	assert.Equal(t, "ACME", b.Symbol())
	assert.NotEqual(t, uuid.Nil, b.InstanceID)
}

func TestSubmitLimit_JournalsAcceptedOrders(t *testing.T) {
	b := newTestBook()

	_, err := b.SubmitLimit(Buy, 10, 99, GTC, false)
	require.NoError(t, err)

	entries := b.JournalEntries()
	require.Len(t, entries, 1)
	assert.Equal(t, "limit", entries[0].Op.String())
}

func TestSubmitLimit_RejectedOrdersAreNotJournaled(t *testing.T) {
	b := newTestBook()

	_, err := b.SubmitLimit(Buy, 0, 99, GTC, false)
	require.Error(t, err)
	assert.Equal(t, 0, len(b.JournalEntries()))
}

func TestCancelAndModify_EachProduceOneJournalEntry(t *testing.T) {
	b := newTestBook()

	report, err := b.SubmitLimit(Buy, 10, 99, GTC, false)
	require.NoError(t, err)

	newPrice := Price(98)
	modified, err := b.Modify(report.OrderID, &newPrice, nil)
	require.NoError(t, err)

	_, err = b.Cancel(modified.OrderID)
	require.NoError(t, err)

	entries := b.JournalEntries()
	require.Len(t, entries, 3)
	assert.Equal(t, "limit", entries[0].Op.String())
	assert.Equal(t, "modify", entries[1].Op.String())
	assert.Equal(t, "cancel", entries[2].Op.String())
}

func TestSnapshotAndRestoreSnapshot_RoundTrip(t *testing.T) {
	b := newTestBook()
	_, err := b.SubmitLimit(Buy, 10, 99, GTC, false)
	require.NoError(t, err)
	_, err = b.SubmitLimit(Sell, 5, 101, GTC, false)
	require.NoError(t, err)

	snap := b.Snapshot()
	b.DiscardJournal()
	assert.Equal(t, 0, len(b.JournalEntries()))

	restored := New("ACME")
	err = restored.RestoreSnapshot(snap)
	require.NoError(t, err)

	bid, ok := restored.BestBid()
	require.True(t, ok)
	assert.Equal(t, Price(99), bid)
}

func TestRestoreSnapshot_RejectsMismatchedSymbol(t *testing.T) {
	b := newTestBook()
	snap := b.Snapshot()

	other := New("OTHER")
	err := other.RestoreSnapshot(snap)
	assert.Error(t, err)
}

func TestReplay_ReproducesIdenticalState(t *testing.T) {
	source := newTestBook()
	_, err := source.SubmitLimit(Sell, 10, 100, GTC, false)
	require.NoError(t, err)
	_, err = source.SubmitLimit(Buy, 4, 100, GTC, false)
	require.NoError(t, err)
	_, err = source.SubmitLimit(Buy, 20, 99, GTC, false)
	require.NoError(t, err)

	entries := source.JournalEntries()

	dest := New("ACME")
	err = dest.Replay(entries)
	require.NoError(t, err)

	srcBid, _ := source.BestBid()
	dstBid, _ := dest.BestBid()
	assert.Equal(t, srcBid, dstBid)

	srcAsk, srcOk := source.BestAsk()
	dstAsk, dstOk := dest.BestAsk()
	assert.Equal(t, srcOk, dstOk)
	assert.Equal(t, srcAsk, dstAsk)

	assert.Equal(t, 0, len(dest.JournalEntries()), "replay must not itself re-journal")
}

func TestDepth_PassesThroughToEngine(t *testing.T) {
	b := newTestBook()
	_, err := b.SubmitLimit(Buy, 10, 99, GTC, false)
	require.NoError(t, err)

	d := b.Depth(5)
	require.Len(t, d.Bids, 1)
	assert.Equal(t, Price(99), d.Bids[0].Price)
}
