package common

// Price is a non-negative tick count. 0 is reserved to mean "not
// applicable", used only in execution reports for market orders, which
// have no limit price of their own.
type Price uint64

// Quantity is a non-negative unit count. 0 means "fully consumed".
type Quantity uint64

// OrderID is a monotonically increasing identifier assigned by the book on
// acceptance. Never reused within a book's lifetime.
type OrderID uint64

// Order is the book's resting record for a limit order. Market orders are
// never stored; they are fully described by their ExecutionReport.
//
// Invariant: ExecutedQty + RemainingQty() == OrigQty at all times.
type Order struct {
	ID          OrderID
	Side        Side
	Price       Price
	OrigQty     Quantity
	ExecutedQty Quantity
	Type        OrderType
	TIF         TimeInForce
	PostOnly    bool
	Status      OrderStatus
	CreatedTS   int64
}

// RemainingQty derives the quantity still available to match or cancel.
func (o Order) RemainingQty() Quantity {
	if o.ExecutedQty > o.OrigQty {
		return 0
	}
	return o.OrigQty - o.ExecutedQty
}

// View is the read-only projection returned by GetOrder /
// GetOrdersAtPrice, a clone of the stored record, safe to hand to callers.
type View struct {
	ID           OrderID     `json:"id"`
	Side         Side        `json:"side"`
	Price        Price       `json:"price"`
	OrigQty      Quantity    `json:"orig_qty"`
	ExecutedQty  Quantity    `json:"executed_qty"`
	RemainingQty Quantity    `json:"remaining_qty"`
	Type         OrderType   `json:"type"`
	TIF          TimeInForce `json:"tif"`
	PostOnly     bool        `json:"post_only"`
	Status       OrderStatus `json:"status"`
	CreatedTS    int64       `json:"created_ts"`
}

// ToView clones an Order into its public projection.
func (o Order) ToView() View {
	return View{
		ID:           o.ID,
		Side:         o.Side,
		Price:        o.Price,
		OrigQty:      o.OrigQty,
		ExecutedQty:  o.ExecutedQty,
		RemainingQty: o.RemainingQty(),
		Type:         o.Type,
		TIF:          o.TIF,
		PostOnly:     o.PostOnly,
		Status:       o.Status,
		CreatedTS:    o.CreatedTS,
	}
}

// Fill describes one trade event produced during matching: a resting
// (maker) order being consumed, in whole or in part, by the taker.
type Fill struct {
	OrderID  OrderID     `json:"order_id"`
	Price    Price       `json:"price"`
	Quantity Quantity    `json:"quantity"`
	Status   OrderStatus `json:"status"`
}

// JournalLog is an append-only record of one accepted, state-changing
// command. Payload carries the original inputs, not derived fields.
type JournalLog struct {
	OpID    uint64      `json:"op_id"`
	TS      int64       `json:"ts"`
	Op      JournalOp   `json:"op"`
	Payload interface{} `json:"payload"`
}

// ExecutionReport is returned for every accepted submit/cancel/modify call.
type ExecutionReport struct {
	OrderID      OrderID     `json:"order_id"`
	OrigQty      Quantity    `json:"orig_qty"`
	ExecutedQty  Quantity    `json:"executed_qty"`
	RemainingQty Quantity    `json:"remaining_qty"`
	TakerQty     Quantity    `json:"taker_qty"`
	MakerQty     Quantity    `json:"maker_qty"`
	OrderType    OrderType   `json:"order_type"`
	Side         Side        `json:"side"`
	Price        Price       `json:"price"`
	Status       OrderStatus `json:"status"`
	TIF          TimeInForce `json:"tif"`
	PostOnly     bool        `json:"post_only"`
	Fills        []Fill      `json:"fills"`
	Log          *JournalLog `json:"log,omitempty"`
}

// MarketJournalPayload is the payload recorded for a JournalMarket entry.
type MarketJournalPayload struct {
	Side     Side     `json:"side"`
	Quantity Quantity `json:"quantity"`
}

// LimitJournalPayload is the payload recorded for a JournalLimit entry.
type LimitJournalPayload struct {
	Side     Side        `json:"side"`
	Quantity Quantity    `json:"quantity"`
	Price    Price       `json:"price"`
	TIF      TimeInForce `json:"tif"`
	PostOnly bool        `json:"post_only"`
}

// CancelJournalPayload is the payload recorded for a JournalCancel entry.
type CancelJournalPayload struct {
	OrderID OrderID `json:"order_id"`
}

// ModifyJournalPayload is the payload recorded for a JournalModify entry.
type ModifyJournalPayload struct {
	OldID       OrderID   `json:"old_id"`
	NewPrice    *Price    `json:"new_price,omitempty"`
	NewQuantity *Quantity `json:"new_quantity,omitempty"`
}
