// Package journal implements the book's two persistence primitives: a
// point-in-time Snapshot of book state, and an append-only Log of the
// journal entries each accepted command produces. Replaying a Log against
// a fresh book (or against a restored Snapshot) must reproduce the same
// final state. This package only holds the data and the bookkeeping
// around it; the replay loop itself lives in the matchbook façade, which
// is the only place that can legally resubmit commands.
package journal

import (
	"sort"

	"matchbook/internal/common"
	"matchbook/internal/engine"
)

// Snapshot is the serializable, point-in-time state of one book. It
// round-trips through encoding/json without any custom marshaling: every
// field is already a plain map, slice, or the package's own JSON-aware
// enum types.
type Snapshot struct {
	Symbol string                            `json:"symbol"`
	TS     int64                             `json:"ts"`
	Orders map[common.OrderID]common.Order   `json:"orders"`
	Bids   map[common.Price][]common.OrderID `json:"bids"`
	Asks   map[common.Price][]common.OrderID `json:"asks"`
	NextID common.OrderID                    `json:"next_id"`
	LastOp uint64                            `json:"last_op"`
}

// FromState builds a Snapshot from an engine.State, stamping it with the
// owning symbol and the time it was taken.
func FromState(symbol string, ts int64, st engine.State) Snapshot {
	return Snapshot{
		Symbol: symbol,
		TS:     ts,
		Orders: st.Orders,
		Bids:   st.Bids,
		Asks:   st.Asks,
		NextID: st.NextID,
		LastOp: st.LastOp,
	}
}

// ToState converts a Snapshot back into the engine.State shape that
// (*engine.OrderBook).RestoreState consumes.
func (s Snapshot) ToState() engine.State {
	return engine.State{
		Orders: s.Orders,
		Bids:   s.Bids,
		Asks:   s.Asks,
		NextID: s.NextID,
		LastOp: s.LastOp,
	}
}

// Log is an in-memory, append-only record of every journal entry an
// OrderBook has produced. It never reorders or drops entries; callers
// that need a bounded log should truncate externally after a successful
// Snapshot.
type Log struct {
	entries []common.JournalLog
}

// NewLog returns an empty Log.
func NewLog() *Log {
	return &Log{}
}

// Append records one entry. Entries with a nil Log field (journaling
// disabled on the call that produced them) are ignored.
func (l *Log) Append(entry *common.JournalLog) {
	if entry == nil {
		return
	}
	l.entries = append(l.entries, *entry)
}

// Entries returns every recorded entry, oldest first.
func (l *Log) Entries() []common.JournalLog {
	out := make([]common.JournalLog, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len reports how many entries are recorded.
func (l *Log) Len() int {
	return len(l.entries)
}

// Truncate drops every recorded entry, called after a Snapshot has been
// taken and persisted so the two never have to be replayed together.
func (l *Log) Truncate() {
	l.entries = nil
}

// Sorted returns a copy of logs ordered by OpID ascending, the order
// replay must apply them in regardless of how they were collected.
func Sorted(logs []common.JournalLog) []common.JournalLog {
	out := make([]common.JournalLog, len(logs))
	copy(out, logs)
	sort.Slice(out, func(i, j int) bool { return out[i].OpID < out[j].OpID })
	return out
}
