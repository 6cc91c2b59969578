// Package book implements the price-level FIFO queues and the per-side
// ordered collection of price levels that back the matching engine.
package book

import (
	"github.com/gammazero/deque"

	"matchbook/internal/common"
	"matchbook/internal/satmath"
)

// Level is the FIFO queue of order IDs resting at one price, plus the
// cached aggregate volume of the orders it references. Insertion order is
// preserved under every operation; it is never violated, not even by
// Remove, which only ever drops an element, never reorders the rest.
type Level struct {
	Price  common.Price
	ids    deque.Deque[common.OrderID]
	volume common.Quantity
}

func newLevel(price common.Price) *Level {
	return &Level{Price: price}
}

// Append pushes id to the tail of the queue and adds qty to the cached
// aggregate volume.
func (l *Level) Append(id common.OrderID, qty common.Quantity) {
	l.ids.PushBack(id)
	l.volume = common.Quantity(satmath.Add(uint64(l.volume), uint64(qty)))
}

// Head returns the earliest arrival without removing it.
func (l *Level) Head() (common.OrderID, bool) {
	if l.ids.Len() == 0 {
		return 0, false
	}
	return l.ids.Front(), true
}

// PopHead removes the earliest arrival. The caller is responsible for
// adjusting the cached volume (the amount removed may differ from the
// order's full remaining quantity when only part of it filled).
func (l *Level) PopHead() {
	if l.ids.Len() == 0 {
		return
	}
	l.ids.PopFront()
}

// Remove drops id from wherever it sits in the queue via linear search,
// and subtracts qty from the cached aggregate volume.
func (l *Level) Remove(id common.OrderID, qty common.Quantity) {
	idx := l.ids.Index(func(v common.OrderID) bool { return v == id })
	if idx < 0 {
		return
	}
	l.ids.Remove(idx)
	l.volume = common.Quantity(satmath.Sub(uint64(l.volume), uint64(qty)))
}

// Shrink reduces the cached aggregate volume by qty without touching the
// queue itself. Used when the head order is partially, not fully,
// consumed and so stays at the front of the line.
func (l *Level) Shrink(qty common.Quantity) {
	l.volume = common.Quantity(satmath.Sub(uint64(l.volume), uint64(qty)))
}

// Volume is the cached aggregate resting quantity at this level.
func (l *Level) Volume() common.Quantity {
	return l.volume
}

// IsEmpty reports whether the queue holds no orders.
func (l *Level) IsEmpty() bool {
	return l.ids.Len() == 0
}

// OrderIDs returns the resting IDs, earliest first.
func (l *Level) OrderIDs() []common.OrderID {
	out := make([]common.OrderID, l.ids.Len())
	for i := 0; i < l.ids.Len(); i++ {
		out[i] = l.ids.At(i)
	}
	return out
}
