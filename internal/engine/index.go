package engine

import "matchbook/internal/common"

// index maps OrderID to the order record it backs, by value. An ID is
// present here iff it appears in exactly one side-book queue.
type index struct {
	orders map[common.OrderID]common.Order
}

func newIndex() *index {
	return &index{orders: make(map[common.OrderID]common.Order)}
}

func (ix *index) put(o common.Order) {
	ix.orders[o.ID] = o
}

func (ix *index) get(id common.OrderID) (common.Order, bool) {
	o, ok := ix.orders[id]
	return o, ok
}

func (ix *index) delete(id common.OrderID) {
	delete(ix.orders, id)
}

func (ix *index) len() int {
	return len(ix.orders)
}
