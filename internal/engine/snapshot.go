package engine

import (
	"matchbook/internal/book"
	"matchbook/internal/common"
)

// State is a deep copy of everything needed to reconstruct an OrderBook:
// every resting order plus the per-side FIFO ordering at each price, and
// the book-level counters. internal/journal wraps this in its own
// serializable Snapshot type; engine only knows how to produce and
// consume it.
type State struct {
	Orders map[common.OrderID]common.Order
	Bids   map[common.Price][]common.OrderID
	Asks   map[common.Price][]common.OrderID
	NextID common.OrderID
	LastOp uint64
}

// ExportState takes a deep-copy snapshot of the book's current state.
func (b *OrderBook) ExportState() State {
	orders := make(map[common.OrderID]common.Order, b.idx.len())
	for id, o := range b.idx.orders {
		orders[id] = o
	}
	return State{
		Orders: orders,
		Bids:   exportSide(b.Bids),
		Asks:   exportSide(b.Asks),
		NextID: b.nextID,
		LastOp: b.lastOp,
	}
}

func exportSide(s *book.Side) map[common.Price][]common.OrderID {
	out := make(map[common.Price][]common.OrderID)
	for _, lvl := range s.Levels() {
		out[lvl.Price] = lvl.OrderIDs()
	}
	return out
}

// RestoreState discards the book's current contents and rebuilds it from
// a previously exported State, preserving per-level FIFO order and side
// volume exactly. Every order is put back into the index with its stored
// execution state, then each ID is re-appended to its side book in the
// same order it was recorded in.
func (b *OrderBook) RestoreState(st State) {
	b.idx = newIndex()
	b.Bids = book.NewSide(common.Buy)
	b.Asks = book.NewSide(common.Sell)
	b.nextID = st.NextID
	b.lastOp = st.LastOp

	for id, o := range st.Orders {
		b.idx.put(o)
		_ = id
	}
	restoreSide(b.Bids, st.Bids, st.Orders)
	restoreSide(b.Asks, st.Asks, st.Orders)
}

func restoreSide(s *book.Side, levels map[common.Price][]common.OrderID, orders map[common.OrderID]common.Order) {
	for price, ids := range levels {
		for _, id := range ids {
			o, ok := orders[id]
			if !ok {
				continue
			}
			s.Append(id, price, o.RemainingQty())
		}
	}
}
