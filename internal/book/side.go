package book

import (
	"github.com/tidwall/btree"

	"matchbook/internal/common"
	"matchbook/internal/satmath"
)

// Side is one side (bids or asks) of the book: an ordered collection of
// price levels, traversable best-first, plus a running total of resting
// volume across all of its levels.
//
// Bids are kept in descending-price order (best = highest); asks in
// ascending-price order (best = lowest). Both are modeled with the same
// underlying btree.BTreeG by flipping the comparator so Min always yields
// the best price for that side.
type Side struct {
	side        common.Side
	levels      *btree.BTreeG[*Level]
	TotalVolume common.Quantity
}

// NewSide builds an empty Side for the given market side.
func NewSide(side common.Side) *Side {
	var less func(a, b *Level) bool
	if side == common.Buy {
		// Sorted so that Min() yields the highest price: the best bid.
		less = func(a, b *Level) bool { return a.Price > b.Price }
	} else {
		// Sorted so that Min() yields the lowest price: the best ask.
		less = func(a, b *Level) bool { return a.Price < b.Price }
	}
	return &Side{
		side:   side,
		levels: btree.NewBTreeG(less),
	}
}

// BestPrice returns the best resting price for this side, if any.
func (s *Side) BestPrice() (common.Price, bool) {
	lvl, ok := s.levels.Min()
	if !ok {
		return 0, false
	}
	return lvl.Price, true
}

// IsEmpty reports whether this side has no resting levels.
func (s *Side) IsEmpty() bool {
	return s.levels.Len() == 0
}

// Append inserts id at the tail of the queue for price, creating the
// level if this is the first order to arrive at that price.
func (s *Side) Append(id common.OrderID, price common.Price, qty common.Quantity) {
	lvl, ok := s.levels.Get(&Level{Price: price})
	if !ok {
		lvl = newLevel(price)
		s.levels.Set(lvl)
	}
	lvl.Append(id, qty)
	s.TotalVolume = common.Quantity(satmath.Add(uint64(s.TotalVolume), uint64(qty)))
}

// Remove drops id from the queue at price, dropping the level entirely if
// it becomes empty.
func (s *Side) Remove(id common.OrderID, price common.Price, qty common.Quantity) {
	lvl, ok := s.levels.Get(&Level{Price: price})
	if !ok {
		return
	}
	lvl.Remove(id, qty)
	if lvl.IsEmpty() {
		s.levels.Delete(&Level{Price: price})
	}
	s.TotalVolume = common.Quantity(satmath.Sub(uint64(s.TotalVolume), uint64(qty)))
}

// TakeQueue detaches the level at price from the side, so the matching
// engine can walk and mutate it without aliasing concerns, then reattach
// (or drop) it once the walk completes.
func (s *Side) TakeQueue(price common.Price) (*Level, bool) {
	return s.levels.Delete(&Level{Price: price})
}

// PutQueue reattaches a level previously detached with TakeQueue. A level
// that ended up empty is simply not reattached; no empty queue may ever
// be present in the side.
func (s *Side) PutQueue(lvl *Level) {
	if lvl == nil || lvl.IsEmpty() {
		return
	}
	s.levels.Set(lvl)
}

// AdjustVolume subtracts consumed from the side's cached total volume,
// saturating at 0. Used by the matching loop as it drains levels without
// going through Append/Remove (which also touch the level's own volume).
func (s *Side) AdjustVolume(consumed common.Quantity) {
	s.TotalVolume = common.Quantity(satmath.Sub(uint64(s.TotalVolume), uint64(consumed)))
}

// Depth returns up to limit levels, best-first, as (price, volume) pairs.
// If limit exceeds the number of resting levels, all levels are returned.
func (s *Side) Depth(limit int) []DepthLevel {
	if limit <= 0 {
		return nil
	}
	out := make([]DepthLevel, 0, limit)
	s.levels.Scan(func(lvl *Level) bool {
		out = append(out, DepthLevel{Price: lvl.Price, Volume: lvl.Volume()})
		return len(out) < limit
	})
	return out
}

// DepthLevel is one aggregated (price, volume) pair in a depth snapshot.
type DepthLevel struct {
	Price  common.Price
	Volume common.Quantity
}

// WalkBestFirst scans levels in best-first order until visit returns
// false or the levels are exhausted, without mutating the tree. Used by
// the FOK feasibility pre-scan.
func (s *Side) WalkBestFirst(visit func(lvl *Level) bool) {
	s.levels.Scan(func(lvl *Level) bool {
		return visit(lvl)
	})
}

// Levels returns every resting level, in no particular guaranteed order.
// Used by snapshot export, where the destination is itself a map keyed by
// price.
func (s *Side) Levels() []*Level {
	out := make([]*Level, 0, s.levels.Len())
	s.levels.Scan(func(lvl *Level) bool {
		out = append(out, lvl)
		return true
	})
	return out
}
