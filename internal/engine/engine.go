// Package engine implements the matching engine: the order index, the
// price-time-priority matching algorithm, time-in-force and post-only
// validation, and the book-level counters (next_id, last_op) that the
// snapshot/journal mechanism in internal/journal persists and restores.
package engine

import (
	"github.com/rs/zerolog"

	"matchbook/internal/book"
	"matchbook/internal/clock"
	"matchbook/internal/common"
	"matchbook/internal/satmath"
)

// OrderBook is one single-symbol matching engine instance. It is not safe
// for concurrent use - callers serialize access per instance, one per
// symbol.
type OrderBook struct {
	Symbol string
	Bids   *book.Side
	Asks   *book.Side

	idx    *index
	nextID common.OrderID
	lastOp uint64

	journaling bool
	now        clock.Func
	log        zerolog.Logger
}

// New builds an empty OrderBook for symbol.
func New(symbol string, now clock.Func, journaling bool, log zerolog.Logger) *OrderBook {
	return &OrderBook{
		Symbol:     symbol,
		Bids:       book.NewSide(common.Buy),
		Asks:       book.NewSide(common.Sell),
		idx:        newIndex(),
		nextID:     1,
		journaling: journaling,
		now:        now,
		log:        log,
	}
}

func (b *OrderBook) sideFor(s common.Side) *book.Side {
	if s == common.Buy {
		return b.Bids
	}
	return b.Asks
}

func (b *OrderBook) oppositeSideFor(s common.Side) *book.Side {
	if s == common.Buy {
		return b.Asks
	}
	return b.Bids
}

func (b *OrderBook) assignID() common.OrderID {
	id := b.nextID
	b.nextID++
	return id
}

func (b *OrderBook) bumpOp() uint64 {
	b.lastOp = satmath.Add(b.lastOp, 1)
	return b.lastOp
}

// consumeQueue walks lvl from the head, consuming up to *want units of
// resting liquidity, mutating order records through idx and emitting one
// Fill per order touched. It never reorders the queue; an order that is
// only partially consumed stays at the front.
func consumeQueue(idx *index, lvl *book.Level, want *common.Quantity) []common.Fill {
	var fills []common.Fill
	for *want > 0 && !lvl.IsEmpty() {
		headID, ok := lvl.Head()
		if !ok {
			break
		}
		ho, ok := idx.get(headID)
		if !ok {
			// Index/queue desynchronization is a programming error, never
			// reachable via public inputs. Abort loudly rather than limp on.
			panic("engine: queue references an order missing from the index")
		}
		headRemaining := ho.RemainingQty()

		if *want < headRemaining {
			ho.ExecutedQty = common.Quantity(satmath.Add(uint64(ho.ExecutedQty), uint64(*want)))
			ho.Status = common.PartiallyFilled
			idx.put(ho)
			lvl.Shrink(*want)
			fills = append(fills, common.Fill{
				OrderID:  headID,
				Price:    lvl.Price,
				Quantity: *want,
				Status:   common.PartiallyFilled,
			})
			*want = 0
			continue
		}

		consumed := headRemaining
		ho.ExecutedQty = ho.OrigQty
		ho.Status = common.Filled
		idx.delete(headID)
		lvl.Remove(headID, consumed)
		fills = append(fills, common.Fill{
			OrderID:  headID,
			Price:    lvl.Price,
			Quantity: consumed,
			Status:   common.Filled,
		})
		*want = common.Quantity(satmath.Sub(uint64(*want), uint64(consumed)))
	}
	return fills
}

// walkAndMatch walks opposite best-first, consuming levels while the
// taker's limit (if any) still permits a cross, and returns every fill
// produced along the way. Emptied levels are dropped; levels left with
// resting volume are reattached.
func (b *OrderBook) walkAndMatch(opposite *book.Side, takerSide common.Side, want *common.Quantity, limitPrice *common.Price) []common.Fill {
	var all []common.Fill
	for *want > 0 {
		bestPrice, ok := opposite.BestPrice()
		if !ok {
			break
		}
		if limitPrice != nil {
			if takerSide == common.Buy && bestPrice > *limitPrice {
				break
			}
			if takerSide == common.Sell && bestPrice < *limitPrice {
				break
			}
		}

		lvl, ok := opposite.TakeQueue(bestPrice)
		if !ok {
			break
		}
		before := lvl.Volume()
		fills := consumeQueue(b.idx, lvl, want)
		consumed := satmath.Sub(uint64(before), uint64(lvl.Volume()))
		opposite.AdjustVolume(common.Quantity(consumed))
		opposite.PutQueue(lvl)

		all = append(all, fills...)
	}
	return all
}

// SubmitMarket accepts a market order. Quantity left unfilled when the
// opposite side runs dry is silently dropped; market orders are never
// posted, regardless of remainder.
func (b *OrderBook) SubmitMarket(side common.Side, qty common.Quantity) (common.ExecutionReport, error) {
	if qty == 0 {
		return common.ExecutionReport{}, NewError(CodeInvalidQuantity)
	}
	opposite := b.oppositeSideFor(side)
	if opposite.IsEmpty() {
		return common.ExecutionReport{}, NewError(CodeOrderBookEmpty)
	}

	id := b.assignID()
	want := qty
	fills := b.walkAndMatch(opposite, side, &want, nil)
	executed := common.Quantity(satmath.Sub(uint64(qty), uint64(want)))

	status := common.Filled
	if want > 0 {
		status = common.PartiallyFilled
	}

	report := common.ExecutionReport{
		OrderID:      id,
		OrigQty:      qty,
		ExecutedQty:  executed,
		RemainingQty: want,
		TakerQty:     executed,
		MakerQty:     0,
		OrderType:    common.Market,
		Side:         side,
		Price:        0,
		Status:       status,
		TIF:          common.IOC,
		PostOnly:     false,
		Fills:        fills,
	}

	if b.journaling {
		report.Log = &common.JournalLog{
			OpID: b.bumpOp(),
			TS:   b.now(),
			Op:   common.JournalMarket,
			Payload: common.MarketJournalPayload{
				Side:     side,
				Quantity: qty,
			},
		}
	}

	b.log.Debug().
		Str("symbol", b.Symbol).
		Uint64("order_id", uint64(id)).
		Str("side", side.String()).
		Str("status", status.String()).
		Int("fills", len(fills)).
		Msg("market order accepted")

	return report, nil
}

// SubmitLimit accepts a limit order, validates it, matches what it can
// against resting opposite-side liquidity, and either rests the residual
// (GTC) or cancels it (IOC).
func (b *OrderBook) SubmitLimit(side common.Side, qty common.Quantity, price common.Price, tif common.TimeInForce, postOnly bool) (common.ExecutionReport, error) {
	if qty == 0 {
		return common.ExecutionReport{}, NewError(CodeInvalidQuantity)
	}
	if price == 0 {
		return common.ExecutionReport{}, NewError(CodeInvalidPrice)
	}

	opposite := b.oppositeSideFor(side)

	if tif == common.FOK {
		if !b.isFillable(side, qty, price) {
			return common.ExecutionReport{}, NewError(CodeOrderFOK)
		}
	}

	if postOnly && wouldCross(opposite, side, price) {
		return common.ExecutionReport{}, NewError(CodeOrderPostOnly)
	}

	id := b.assignID()
	want := qty
	limitPrice := price
	fills := b.walkAndMatch(opposite, side, &want, &limitPrice)

	executed := common.Quantity(satmath.Sub(uint64(qty), uint64(want)))
	takerQty := executed
	makerQty := want

	var status common.OrderStatus
	resting := false
	switch {
	case want == 0:
		status = common.Filled
	case tif == common.IOC:
		status = common.Canceled
	default:
		// GTC with a residual; FOK cannot reach here given the pre-scan.
		status = common.PartiallyFilled
		resting = true
	}

	if resting {
		order := common.Order{
			ID:          id,
			Side:        side,
			Price:       price,
			OrigQty:     qty,
			ExecutedQty: executed,
			Type:        common.Limit,
			TIF:         tif,
			PostOnly:    postOnly,
			Status:      status,
			CreatedTS:   b.now(),
		}
		b.idx.put(order)
		b.sideFor(side).Append(id, price, want)
	}

	report := common.ExecutionReport{
		OrderID:      id,
		OrigQty:      qty,
		ExecutedQty:  executed,
		RemainingQty: want,
		TakerQty:     takerQty,
		MakerQty:     makerQty,
		OrderType:    common.Limit,
		Side:         side,
		Price:        price,
		Status:       status,
		TIF:          tif,
		PostOnly:     postOnly,
		Fills:        fills,
	}

	if b.journaling {
		report.Log = &common.JournalLog{
			OpID: b.bumpOp(),
			TS:   b.now(),
			Op:   common.JournalLimit,
			Payload: common.LimitJournalPayload{
				Side:     side,
				Quantity: qty,
				Price:    price,
				TIF:      tif,
				PostOnly: postOnly,
			},
		}
	}

	b.log.Debug().
		Str("symbol", b.Symbol).
		Uint64("order_id", uint64(id)).
		Str("side", side.String()).
		Str("status", status.String()).
		Bool("resting", resting).
		Int("fills", len(fills)).
		Msg("limit order accepted")

	return report, nil
}

// wouldCross reports whether a limit order on side at price would match
// immediately against the opposite side's best price.
func wouldCross(opposite *book.Side, side common.Side, price common.Price) bool {
	best, ok := opposite.BestPrice()
	if !ok {
		return false
	}
	if side == common.Buy {
		return price >= best
	}
	return price <= best
}

// isFillable pre-scans the opposite side best-first, summing resting
// volume priced at or better than price, to decide whether an FOK order
// could be filled in full before committing to the match.
func (b *OrderBook) isFillable(side common.Side, qty common.Quantity, price common.Price) bool {
	opposite := b.oppositeSideFor(side)
	if opposite.TotalVolume < qty {
		return false
	}
	var cumulative uint64
	done := false
	opposite.WalkBestFirst(func(lvl *book.Level) bool {
		if done {
			return false
		}
		eligible := (side == common.Buy && lvl.Price <= price) || (side == common.Sell && lvl.Price >= price)
		if !eligible {
			done = true
			return false
		}
		cumulative = satmath.Add(cumulative, uint64(lvl.Volume()))
		if cumulative >= uint64(qty) {
			done = true
			return false
		}
		return true
	})
	return cumulative >= uint64(qty)
}

// Cancel removes a resting order from the book entirely.
func (b *OrderBook) Cancel(id common.OrderID) (common.ExecutionReport, error) {
	o, ok := b.idx.get(id)
	if !ok {
		return common.ExecutionReport{}, NewError(CodeOrderNotFound)
	}

	b.sideFor(o.Side).Remove(id, o.Price, o.RemainingQty())
	b.idx.delete(id)

	o.Status = common.Canceled
	report := common.ExecutionReport{
		OrderID:      o.ID,
		OrigQty:      o.OrigQty,
		ExecutedQty:  o.ExecutedQty,
		RemainingQty: o.RemainingQty(),
		TakerQty:     0,
		MakerQty:     0,
		OrderType:    o.Type,
		Side:         o.Side,
		Price:        o.Price,
		Status:       common.Canceled,
		TIF:          o.TIF,
		PostOnly:     o.PostOnly,
	}

	if b.journaling {
		report.Log = &common.JournalLog{
			OpID:    b.bumpOp(),
			TS:      b.now(),
			Op:      common.JournalCancel,
			Payload: common.CancelJournalPayload{OrderID: id},
		}
	}

	b.log.Debug().
		Str("symbol", b.Symbol).
		Uint64("order_id", uint64(id)).
		Msg("order canceled")

	return report, nil
}

// cancelNoJournal is Cancel without the journaling side effect, used
// internally by Modify so that a modify produces exactly one journal
// entry rather than the cancel-then-limit pair it is implemented with.
func (b *OrderBook) cancelNoJournal(id common.OrderID) (common.Order, error) {
	o, ok := b.idx.get(id)
	if !ok {
		return common.Order{}, NewError(CodeOrderNotFound)
	}
	b.sideFor(o.Side).Remove(id, o.Price, o.RemainingQty())
	b.idx.delete(id)
	return o, nil
}

// submitLimitNoJournal is SubmitLimit without the journaling side effect.
func (b *OrderBook) submitLimitNoJournal(side common.Side, qty common.Quantity, price common.Price, tif common.TimeInForce, postOnly bool) (common.ExecutionReport, error) {
	wasJournaling := b.journaling
	b.journaling = false
	report, err := b.SubmitLimit(side, qty, price, tif, postOnly)
	b.journaling = wasJournaling
	return report, err
}

// Modify replaces a resting order with a cancel-and-replace: the old
// order is canceled (preserving side/TIF/post-only), then a new limit
// order is submitted with the updated price and/or quantity. The new
// order loses time priority and receives a fresh ID. If the replace half
// fails, the book is left in the post-cancel state and the error is
// returned to the caller.
func (b *OrderBook) Modify(id common.OrderID, newPrice *common.Price, newQty *common.Quantity) (common.ExecutionReport, error) {
	if newPrice == nil && newQty == nil {
		return common.ExecutionReport{}, NewError(CodeInvalidPriceOrQuantity)
	}

	old, err := b.cancelNoJournal(id)
	if err != nil {
		return common.ExecutionReport{}, err
	}

	price := old.Price
	if newPrice != nil {
		price = *newPrice
	}
	qty := old.RemainingQty()
	if newQty != nil {
		qty = *newQty
	}

	report, err := b.submitLimitNoJournal(old.Side, qty, price, old.TIF, old.PostOnly)
	if err != nil {
		return report, err
	}

	if b.journaling {
		report.Log = &common.JournalLog{
			OpID: b.bumpOp(),
			TS:   b.now(),
			Op:   common.JournalModify,
			Payload: common.ModifyJournalPayload{
				OldID:       id,
				NewPrice:    newPrice,
				NewQuantity: newQty,
			},
		}
	}

	b.log.Debug().
		Str("symbol", b.Symbol).
		Uint64("old_order_id", uint64(id)).
		Uint64("new_order_id", uint64(report.OrderID)).
		Msg("order modified")

	return report, nil
}

// BestBid returns the highest resting buy price, if any.
func (b *OrderBook) BestBid() (common.Price, bool) { return b.Bids.BestPrice() }

// BestAsk returns the lowest resting sell price, if any.
func (b *OrderBook) BestAsk() (common.Price, bool) { return b.Asks.BestPrice() }

// MidPrice is the arithmetic mean of best bid and best ask, if both exist.
func (b *OrderBook) MidPrice() (common.Price, bool) {
	bid, ok1 := b.BestBid()
	ask, ok2 := b.BestAsk()
	if !ok1 || !ok2 {
		return 0, false
	}
	return (bid + ask) / 2, true
}

// Spread is best ask minus best bid, if both exist.
func (b *OrderBook) Spread() (common.Price, bool) {
	bid, ok1 := b.BestBid()
	ask, ok2 := b.BestAsk()
	if !ok1 || !ok2 {
		return 0, false
	}
	return ask - bid, true
}

// GetOrder returns a clone of the stored record for id.
func (b *OrderBook) GetOrder(id common.OrderID) (common.View, error) {
	o, ok := b.idx.get(id)
	if !ok {
		return common.View{}, NewError(CodeOrderNotFound)
	}
	return o.ToView(), nil
}

// GetOrdersAtPrice returns the resting orders at (side, price), earliest
// first.
func (b *OrderBook) GetOrdersAtPrice(side common.Side, price common.Price) []common.View {
	s := b.sideFor(side)
	var out []common.View
	s.WalkBestFirst(func(lvl *book.Level) bool {
		if lvl.Price != price {
			return true
		}
		for _, id := range lvl.OrderIDs() {
			if o, ok := b.idx.get(id); ok {
				out = append(out, o.ToView())
			}
		}
		return false
	})
	return out
}

// DepthResult is the aggregated, best-first view of both sides.
type DepthResult struct {
	Asks []book.DepthLevel
	Bids []book.DepthLevel
}

const defaultDepthLimit = 100

// Depth returns up to limit levels per side, best-first. A nil/zero limit
// defaults to 100; a limit larger than the number of resting levels
// simply returns what is available.
func (b *OrderBook) Depth(limit int) DepthResult {
	if limit <= 0 {
		limit = defaultDepthLimit
	}
	return DepthResult{
		Asks: b.Asks.Depth(limit),
		Bids: b.Bids.Depth(limit),
	}
}

// NextID returns the identifier that will be assigned to the next
// accepted order.
func (b *OrderBook) NextID() common.OrderID { return b.nextID }

// LastOp returns the most recently assigned journal operation id.
func (b *OrderBook) LastOp() uint64 { return b.lastOp }

// SetJournaling toggles whether accepted commands produce a JournalLog.
// Exported so the façade can suspend journaling while replaying a log;
// replay re-derives state, it must not re-record it.
func (b *OrderBook) SetJournaling(enabled bool) { b.journaling = enabled }
